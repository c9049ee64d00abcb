package animations

import (
	"image"

	"github.com/automoto/tilequest/config"
)

// Animation walks a range of frame indices on a sprite sheet row.
// SpeedInTps is the number of updates each frame is held for.
type Animation struct {
	First            int
	Last             int
	Step             int
	SpeedInTps       float32
	FreezeOnComplete bool // Stay on Last instead of wrapping to First
	Looped           bool

	frameCounter float32
	frame        int
}

func NewAnimation(first, last, step int, speed float32) *Animation {
	a := &Animation{First: first, Last: last, Step: step, SpeedInTps: speed}
	a.Restart()
	return a
}

// FromDef builds an animation from its configuration entry
func FromDef(def config.AnimationDef) *Animation {
	return NewAnimation(def.First, def.Last, def.Step, def.Speed)
}

// Set builds one animation per state of a character's definitions
func Set(character string) map[config.StateID]*Animation {
	defs := config.CharacterAnimations[character]
	out := make(map[config.StateID]*Animation, len(defs))
	for state, def := range defs {
		out[state] = FromDef(def)
	}
	return out
}

func (a *Animation) Update() {
	if a.Step == 0 || a.First == a.Last {
		return
	}
	a.frameCounter--
	if a.frameCounter >= 0 {
		return
	}
	a.frameCounter = a.SpeedInTps
	a.frame += a.Step
	if a.frame > a.Last {
		a.Looped = true
		if a.FreezeOnComplete {
			a.frame = a.Last
		} else {
			a.frame = a.First
		}
	}
}

func (a *Animation) Frame() int {
	return a.frame
}

func (a *Animation) Restart() {
	a.frame = a.First
	a.frameCounter = a.SpeedInTps
	a.Looped = false
}

// Src is the source rectangle of the current frame on the given sheet row
func (a *Animation) Src(row, frameWidth, frameHeight int) image.Rectangle {
	x := a.frame * frameWidth
	y := row * frameHeight
	return image.Rect(x, y, x+frameWidth, y+frameHeight)
}
