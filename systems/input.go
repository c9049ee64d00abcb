package systems

import (
	"github.com/automoto/tilequest/components"
	cfg "github.com/automoto/tilequest/config"
	"github.com/automoto/tilequest/tags"
	"github.com/yohamta/donburi/ecs"
)

// UpdateInput turns held actions into player velocity
func UpdateInput(e *ecs.ECS) {
	level := levelData(e)
	if level == nil || level.Input == nil {
		return
	}
	in := level.Input

	if in.JustPressed(cfg.ActionDebug) {
		level.Debug = !level.Debug
	}

	playerEntry, ok := tags.Player.First(e.World)
	if !ok {
		return
	}
	physics := components.Physics.Get(playerEntry)

	left, right := in.Held(cfg.ActionMoveLeft), in.Held(cfg.ActionMoveRight)
	switch {
	case left && !right:
		physics.Speed.X = -cfg.Player.RunSpeed
		physics.GoingLeft = true
	case right && !left:
		physics.Speed.X = cfg.Player.RunSpeed
		physics.GoingLeft = false
	default:
		physics.Speed.X = 0
	}

	if in.JustPressed(cfg.ActionJump) && physics.OnGround {
		physics.Speed.Y = -cfg.Player.JumpSpeed
		physics.OnGround = false
	}
}
