package components

import (
	"github.com/automoto/tilequest/collision"
	"github.com/automoto/tilequest/engine"
	"github.com/automoto/tilequest/input"
	"github.com/automoto/tilequest/physics"
	"github.com/automoto/tilequest/tilemap"
	"github.com/yohamta/donburi"
)

// LevelData is the singleton holding what systems need outside the world
type LevelData struct {
	Map        *tilemap.Map
	Resolver   *physics.Resolver
	Collisions *collision.Collisions
	Input      *input.Input
	Renderer   engine.Renderer

	Width, Height             int // World size in pixels
	ScreenWidth, ScreenHeight int
	Dt                        float64

	Seconds float64
	Minutes int

	SaveRequested bool
	Debug         bool
}

var Level = donburi.NewComponentType[LevelData]()
