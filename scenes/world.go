package scenes

import (
	"fmt"
	"image"
	"log"

	"github.com/automoto/tilequest/collision"
	"github.com/automoto/tilequest/components"
	cfg "github.com/automoto/tilequest/config"
	"github.com/automoto/tilequest/engine"
	"github.com/automoto/tilequest/input"
	"github.com/automoto/tilequest/physics"
	"github.com/automoto/tilequest/systems"
	"github.com/automoto/tilequest/systems/factory"
	"github.com/automoto/tilequest/tilemap"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Object groups read from the map
const (
	PlayerSpawnGroup = "PlayerSpawn"
	EnemySpawnGroup  = "EnemySpawn"
	CoinsGroup       = "Coins"
)

type sceneSettings struct {
	Map string `json:"map"`
}

// Scene is the gameplay module. It owns the ECS world and drives the map,
// the collider registry and the player for as long as it is active.
type Scene struct {
	engine.Base

	settings sceneSettings

	ecs        *ecs.ECS
	level      *donburi.Entry
	tiles      []*collision.Collider
	mapModule  *tilemap.Map
	collisions *collision.Collisions
	input      *input.Input
}

func NewScene() *Scene {
	return &Scene{Base: engine.NewBase("scene")}
}

func (s *Scene) Init() {
	s.SetActive(false)
	s.settings.Map = "level1.tmx"
}

func (s *Scene) Awake(ctx *engine.Context, section cfg.Section) error {
	log.Println("Loading Scene")
	if err := section.Decode(&s.settings); err != nil {
		return fmt.Errorf("scene config: %w", err)
	}
	return nil
}

// World exposes the ECS world while the scene runs
func (s *Scene) World() donburi.World {
	if s.ecs == nil {
		return nil
	}
	return s.ecs.World
}

func (s *Scene) Start(ctx *engine.Context) error {
	var err error
	if s.mapModule, err = engine.Lookup[*tilemap.Map](ctx, "map"); err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	if s.collisions, err = engine.Lookup[*collision.Collisions](ctx, "collisions"); err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	if s.input, err = engine.Lookup[*input.Input](ctx, "input"); err != nil {
		return fmt.Errorf("scene: %w", err)
	}

	if err := engine.Enable(ctx, s.mapModule); err != nil {
		return fmt.Errorf("scene: enable map: %w", err)
	}
	if err := s.mapModule.Load(s.settings.Map); err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	width, height, err := s.mapModule.WorldSize()
	if err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	s.collisions.Resize(width, height)

	s.configure(ctx, width, height)
	return s.populate(ctx)
}

func (s *Scene) configure(ctx *engine.Context, width, height int) {
	e := ecs.NewECS(donburi.NewWorld())

	e.AddSystem(systems.UpdateInput)
	e.AddSystem(systems.UpdatePlayer)
	e.AddSystem(systems.UpdateEnemies)
	e.AddSystem(systems.UpdatePhysics)
	e.AddSystem(systems.UpdateColliders)
	e.AddSystem(systems.UpdateAnimations)
	e.AddSystem(systems.UpdateCamera)
	e.AddSystem(systems.UpdateTimer)

	// Draw calls are queued in order, so these run last
	e.AddSystem(systems.ApplyCamera)
	e.AddSystem(systems.DrawLevel)
	e.AddSystem(systems.DrawPickups)
	e.AddSystem(systems.DrawCharacters)
	e.AddSystem(systems.DrawDebug)
	e.AddSystem(systems.DrawHUD)

	s.ecs = e

	screenW, screenH := cfg.C.Width, cfg.C.Height
	var renderer engine.Renderer
	if ctx != nil {
		renderer = ctx.Renderer
		if sized, ok := ctx.Renderer.(interface{ Size() (int, int) }); ok {
			screenW, screenH = sized.Size()
		}
	}

	s.level = factory.CreateLevel(e, components.LevelData{
		Map:          s.mapModule,
		Resolver:     physics.NewResolver(s.mapModule),
		Collisions:   s.collisions,
		Input:        s.input,
		Renderer:     renderer,
		Width:        width,
		Height:       height,
		ScreenWidth:  screenW,
		ScreenHeight: screenH,
	})
	factory.CreateCamera(e, 0, 0)
}

// populate spawns entities from the map's object groups and registers
// colliders for tiles that carry pickups, checkpoints or hazards.
func (s *Scene) populate(ctx *engine.Context) error {
	var textures engine.Textures
	if ctx != nil {
		textures = ctx.Textures
	}
	data := s.mapModule.Data()

	x, y := cfg.Player.SpawnX, cfg.Player.SpawnY
	if spawns := data.ObjectsIn(PlayerSpawnGroup); len(spawns) > 0 {
		x, y = int(spawns[0].X), int(spawns[0].Y)
	} else {
		log.Printf("Warning: no %s object, using %d,%d", PlayerSpawnGroup, x, y)
	}
	if _, err := factory.CreatePlayer(s.ecs, x, y, textures, systems.NewPlayerContacts(s.ecs)); err != nil {
		return fmt.Errorf("scene: spawn player: %w", err)
	}

	for id, obj := range data.ObjectsIn(EnemySpawnGroup) {
		left, right := 0, 0
		if int(obj.Width) > cfg.Enemy.Width {
			left, right = int(obj.X), int(obj.X+obj.Width)-cfg.Enemy.Width
		}
		if _, err := factory.CreateEnemy(s.ecs, id, int(obj.X), int(obj.Y), left, right, textures); err != nil {
			log.Printf("Warning: enemy %d not spawned: %v", id, err)
		}
	}

	coinID := 0
	for _, obj := range data.ObjectsIn(CoinsGroup) {
		rect := physics.Rect{X: int(obj.X), Y: int(obj.Y), W: int(obj.Width), H: int(obj.Height)}
		if rect.W == 0 || rect.H == 0 {
			rect.W, rect.H = data.TileWidth, data.TileHeight
		}
		if _, err := factory.CreateCoin(s.ecs, coinID, rect, false, image.Point{}); err != nil {
			log.Printf("Warning: coin %d not spawned: %v", coinID, err)
		}
		coinID++
	}

	var pain *painRun
	s.mapModule.Cells(collision.PropertyName, func(tx, ty, value int) {
		wx, wy := s.mapModule.MapToWorld(tx, ty)
		rect := physics.Rect{X: wx, Y: wy, W: data.TileWidth, H: data.TileHeight}
		cell := image.Pt(tx, ty)

		switch collision.Type(value) {
		case collision.Coin:
			if _, err := factory.CreateCoin(s.ecs, coinID, rect, true, cell); err != nil {
				log.Printf("Warning: coin tile %v not registered: %v", cell, err)
			}
			coinID++
		case collision.Checkpoint:
			if _, err := factory.CreateCheckpoint(s.ecs, rect, cell); err != nil {
				log.Printf("Warning: checkpoint %v not registered: %v", cell, err)
			}
		case collision.Pain:
			if pain != nil && pain.extends(rect) {
				pain.rect.W += rect.W
				return
			}
			s.addPain(pain)
			pain = &painRun{rect: rect}
		}
	})
	s.addPain(pain)

	systems.CenterCamera(s.ecs)
	log.Printf("Scene ready: %d colliders in use", s.collisions.Count())
	return nil
}

// painRun merges horizontally adjacent hazard tiles into one collider
type painRun struct {
	rect physics.Rect
}

func (p *painRun) extends(r physics.Rect) bool {
	return r.Y == p.rect.Y && r.X == p.rect.X+p.rect.W && r.H == p.rect.H
}

func (s *Scene) addPain(run *painRun) {
	if run == nil {
		return
	}
	col, err := s.collisions.Add(run.rect.Bounds(), collision.Pain, nil)
	if err != nil {
		log.Printf("Warning: hazard at %d,%d not registered: %v", run.rect.X, run.rect.Y, err)
		return
	}
	s.tiles = append(s.tiles, col)
}

func (s *Scene) levelData() *components.LevelData {
	return components.Level.Get(s.level)
}

func (s *Scene) Update(ctx *engine.Context, dt float64) error {
	if s.ecs == nil {
		return nil
	}
	level := s.levelData()
	level.Dt = dt
	s.ecs.Update()

	if level.SaveRequested {
		level.SaveRequested = false
		ctx.RequestSave()
	}
	if s.input.JustPressed(cfg.ActionSave) {
		ctx.RequestSave()
	}
	if s.input.JustPressed(cfg.ActionLoad) {
		ctx.RequestLoad()
	}
	return nil
}

func (s *Scene) PostUpdate(ctx *engine.Context) error {
	if s.input != nil && s.input.JustPressed(cfg.ActionExit) {
		return engine.ErrExit
	}
	return nil
}

func (s *Scene) CleanUp(ctx *engine.Context) error {
	log.Println("Freeing scene")
	if s.collisions != nil {
		if s.ecs != nil {
			components.Collider.Each(s.ecs.World, func(entry *donburi.Entry) {
				s.collisions.Remove(components.Collider.Get(entry).Collider)
			})
		}
		for _, col := range s.tiles {
			s.collisions.Remove(col)
		}
		s.collisions.Reclaim()
	}
	s.tiles = nil
	s.ecs = nil
	s.level = nil

	if s.mapModule == nil {
		return nil
	}
	if err := engine.Disable(ctx, s.mapModule); err != nil {
		return fmt.Errorf("scene: disable map: %w", err)
	}
	return nil
}
