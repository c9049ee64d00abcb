package systems

import (
	"testing"

	"github.com/automoto/tilequest/collision"
	"github.com/automoto/tilequest/components"
	"github.com/automoto/tilequest/config"
	"github.com/automoto/tilequest/input"
	"github.com/automoto/tilequest/systems/factory"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

type fixture struct {
	ecs    *ecs.ECS
	level  *components.LevelData
	source *input.Scripted
	player *donburi.Entry
}

// newFixture builds a world with the level singleton, a camera at the
// origin and a player at x, y. The world is 4000x4000 with a 1280x720 screen.
func newFixture(t *testing.T, x, y int) *fixture {
	t.Helper()
	e := ecs.NewECS(donburi.NewWorld())

	cols := collision.New()
	cols.Init()
	source := &input.Scripted{}

	factory.CreateLevel(e, components.LevelData{
		Collisions:   cols,
		Input:        input.New(source),
		Width:        4000,
		Height:       4000,
		ScreenWidth:  1280,
		ScreenHeight: 720,
	})
	factory.CreateCamera(e, 0, 0)
	player, err := factory.CreatePlayer(e, x, y, nil, nil)
	if err != nil {
		t.Fatalf("CreatePlayer failed: %v", err)
	}
	return &fixture{ecs: e, level: levelData(e), source: source, player: player}
}

func (f *fixture) camera() *components.CameraData {
	return components.Camera.Get(components.Camera.MustFirst(f.ecs.World))
}

func TestUpdateTimerRollsOverMinutes(t *testing.T) {
	f := newFixture(t, 0, 0)
	f.level.Seconds = 1
	f.level.Dt = 59.5

	UpdateTimer(f.ecs)
	if f.level.Minutes != 1 || f.level.Seconds != 0.5 {
		t.Errorf("Expected 1 minute 0.5 seconds, got %d %f", f.level.Minutes, f.level.Seconds)
	}
}

func TestCenterCameraClampsToWorld(t *testing.T) {
	f := newFixture(t, 32, 32)
	CenterCamera(f.ecs)
	if pos := f.camera().Position; pos.X != 0 || pos.Y != 0 {
		t.Errorf("Expected camera clamped at origin, got %v", pos)
	}

	obj := components.Object.Get(f.player)
	obj.X, obj.Y = 3900, 3900
	CenterCamera(f.ecs)
	if pos := f.camera().Position; pos.X != 4000-1280 || pos.Y != 4000-720 {
		t.Errorf("Expected camera clamped at far corner, got %v", pos)
	}
}

func TestUpdateCameraStepsNearEdge(t *testing.T) {
	prev := config.Camera
	defer func() { config.Camera = prev }()
	config.Camera.MarginTilesX, config.Camera.MarginTilesY = 2, 1

	f := newFixture(t, 550, 800)
	cam := f.camera()
	cam.Position.X, cam.Position.Y = 500, 500

	UpdateCamera(f.ecs)
	if cam.Position.X != 500-float64(config.Camera.Step) {
		t.Errorf("Expected camera to step left, got %f", cam.Position.X)
	}
	if cam.Position.Y != 500 {
		t.Errorf("Expected camera to hold vertically, got %f", cam.Position.Y)
	}
}

func TestUpdateInputMovesAndJumps(t *testing.T) {
	f := newFixture(t, 0, 0)
	body := components.Physics.Get(f.player)
	body.OnGround = true

	f.source.Press(config.ActionMoveLeft, config.ActionJump)
	f.level.Input.Poll()
	UpdateInput(f.ecs)

	if body.Speed.X != -config.Player.RunSpeed || !body.GoingLeft {
		t.Errorf("Expected running left, got %f left=%v", body.Speed.X, body.GoingLeft)
	}
	if body.Speed.Y != -config.Player.JumpSpeed || body.OnGround {
		t.Errorf("Expected jump, got %f onGround=%v", body.Speed.Y, body.OnGround)
	}

	// Holding jump in the air does nothing
	body.Speed.Y = 10
	f.level.Input.Poll()
	UpdateInput(f.ecs)
	if body.Speed.Y != 10 {
		t.Errorf("Expected no second jump, got %f", body.Speed.Y)
	}

	f.source.Release(config.ActionMoveLeft, config.ActionJump)
	f.level.Input.Poll()
	UpdateInput(f.ecs)
	if body.Speed.X != 0 {
		t.Errorf("Expected stop, got %f", body.Speed.X)
	}
}

func TestCharacterState(t *testing.T) {
	f := newFixture(t, 0, 0)
	body := components.Physics.Get(f.player)

	cases := []struct {
		onGround bool
		vx, vy   float64
		want     config.StateID
	}{
		{true, 0, 0, config.Idle},
		{true, 300, 0, config.Running},
		{false, 0, -100, config.Jump},
		{false, 0, 100, config.Fall},
	}
	for _, c := range cases {
		body.OnGround, body.Speed.X, body.Speed.Y = c.onGround, c.vx, c.vy
		if got := characterState(f.player); got != c.want {
			t.Errorf("Expected %s, got %s", c.want, got)
		}
	}
}
