package components

import (
	"github.com/automoto/tilequest/assets/animations"
	"github.com/automoto/tilequest/config"
	"github.com/automoto/tilequest/engine"
	"github.com/yohamta/donburi"
)

type AnimationData struct {
	CurrentAnimation *animations.Animation
	Sheet            engine.Texture
	Rows             map[config.StateID]int
	CurrentSheet     config.StateID
	FrameWidth       int
	FrameHeight      int
	Animations       map[config.StateID]*animations.Animation
}

func (a *AnimationData) SetAnimation(state config.StateID) {
	if a.CurrentSheet == state && (a.CurrentAnimation != nil || a.Animations[state] == nil) {
		return
	}

	anim, ok := a.Animations[state]
	if ok {
		if a.CurrentAnimation != anim {
			a.CurrentAnimation = anim
			a.CurrentSheet = state
			a.CurrentAnimation.Restart()
			a.CurrentAnimation.Looped = false
		}
	} else {
		// No animation for this state, clear current
		a.CurrentAnimation = nil
		a.CurrentSheet = state
	}
}

var Animation = donburi.NewComponentType[AnimationData]()
