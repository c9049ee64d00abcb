package config

import "image/color"

// PhysicsConfig contains physics-related configuration values
type PhysicsConfig struct {
	// Gravity in pixels per second squared
	Gravity float64

	// Collision probe
	TileSize   int // Pixel size of the collision grid
	ProbeDepth int // Cells inspected ahead of an entity per axis
}

// PlayerConfig contains all player-related configuration values
type PlayerConfig struct {
	// Movement (pixels per second)
	RunSpeed  float64
	JumpSpeed float64

	// Dimensions
	Width  int
	Height int

	// Spawn used when the map has no PlayerSpawn object
	SpawnX int
	SpawnY int

	// Scoring
	CoinScore   int
	StompScore  int
	StompBounce float64 // Fraction of JumpSpeed applied after a stomp
}

// EnemyConfig contains enemy configuration values
type EnemyConfig struct {
	PatrolSpeed float64
	PatrolRange int // Pixels either side of the spawn when the map gives none
	Width       int
	Height      int
}

// CollisionConfig contains collider registry configuration
type CollisionConfig struct {
	MaxColliders int
	CellSize     int // resolv space cell size
	SpaceWidth   int // Default resolv space size when no map is loaded
	SpaceHeight  int
}

// CameraConfig contains camera behavior configuration
type CameraConfig struct {
	Step         int // Pixels the camera moves per frame while the target is outside the margin
	MarginTilesX int
	MarginTilesY int
}

// TransitionConfig contains fade configuration
type TransitionConfig struct {
	Frames       float64 // Default frames for each half of a fade
	OverlayColor color.RGBA
}

// ScreenConfig contains logo and title screen configuration
type ScreenConfig struct {
	LogoSeconds     float64
	BackgroundColor color.RGBA
	TextColor       color.RGBA
}

// Config holds general game configuration
type Config struct {
	Width  int
	Height int
}

// Global configuration instances
var C *Config
var Physics PhysicsConfig
var Player PlayerConfig
var Enemy EnemyConfig
var Collision CollisionConfig
var Camera CameraConfig
var Transition TransitionConfig
var Screen ScreenConfig

// Shared RGBA color constants
var (
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Orange = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	Red    = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Green  = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Blue   = color.RGBA{R: 0, G: 100, B: 255, A: 255}
	Black  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
)

func init() {
	C = &Config{
		Width:  1280,
		Height: 720,
	}

	Physics = PhysicsConfig{
		Gravity:    950.0,
		TileSize:   64,
		ProbeDepth: 5,
	}

	Player = PlayerConfig{
		RunSpeed:    300.0,
		JumpSpeed:   600.0,
		Width:       64,
		Height:      64,
		SpawnX:      1600,
		SpawnY:      5120,
		CoinScore:   100,
		StompScore:  200,
		StompBounce: 0.5,
	}

	Enemy = EnemyConfig{
		PatrolSpeed: 120.0,
		PatrolRange: 192,
		Width:       64,
		Height:      64,
	}

	Collision = CollisionConfig{
		MaxColliders: 75,
		CellSize:     64,
		SpaceWidth:   8192,
		SpaceHeight:  8192,
	}

	Camera = CameraConfig{
		Step:         5,
		MarginTilesX: 10,
		MarginTilesY: 6,
	}

	Transition = TransitionConfig{
		Frames:       60,
		OverlayColor: Black,
	}

	Screen = ScreenConfig{
		LogoSeconds:     2.0,
		BackgroundColor: color.RGBA{R: 15, G: 25, B: 50, A: 255},
		TextColor:       Orange,
	}
}
