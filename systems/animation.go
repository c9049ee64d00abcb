package systems

import (
	"github.com/automoto/tilequest/components"
	cfg "github.com/automoto/tilequest/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateAnimations picks each character's state from its motion and advances the frame
func UpdateAnimations(e *ecs.ECS) {
	components.Animation.Each(e.World, func(entry *donburi.Entry) {
		anim := components.Animation.Get(entry)
		anim.SetAnimation(characterState(entry))
		if anim.CurrentAnimation != nil {
			anim.CurrentAnimation.Update()
		}
	})
}

func characterState(entry *donburi.Entry) cfg.StateID {
	if entry.HasComponent(components.Enemy) {
		if components.Enemy.Get(entry).Alive {
			return cfg.Running
		}
		return cfg.Dead
	}
	physics := components.Physics.Get(entry)
	switch {
	case !physics.OnGround && physics.Speed.Y < 0:
		return cfg.Jump
	case !physics.OnGround:
		return cfg.Fall
	case physics.Speed.X != 0:
		return cfg.Running
	}
	return cfg.Idle
}
