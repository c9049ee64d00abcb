package physics

import (
	"image"

	"github.com/automoto/tilequest/config"
)

// Rect is an integer world-space rectangle, top-left origin
type Rect struct {
	X, Y, W, H int
}

// Bounds converts the rect to an image.Rectangle
func (r Rect) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// Vec is a velocity in pixels per second
type Vec struct {
	X, Y float64
}

// Body carries the motion state of one entity
type Body struct {
	Speed   Vec
	Gravity float64
	AxisX   bool
	AxisY   bool

	// PositiveSpeedY is true while falling or at rest, false while rising
	PositiveSpeedY bool
	// OnGround is set by Resolve when a solid tile stopped a fall this frame
	OnGround bool
}

// NewBody returns a body with both axes enabled and the configured gravity
func NewBody() Body {
	return Body{
		Gravity:        config.Physics.Gravity,
		AxisX:          true,
		AxisY:          true,
		PositiveSpeedY: true,
	}
}

// Integrate advances pos by one step: explicit on X, Verlet on Y.
func (b *Body) Integrate(pos Rect, dt float64) Rect {
	if b.AxisX {
		pos.X += int(b.Speed.X * dt)
	}
	if b.AxisY {
		pos.Y += int(b.Speed.Y*dt + b.Gravity*dt*dt*0.5)
		b.Speed.Y += b.Gravity * dt
	}
	return pos
}

// CheckDirection refreshes PositiveSpeedY from the vertical speed
func (b *Body) CheckDirection() {
	b.PositiveSpeedY = b.Speed.Y >= 0
}
