package components

import (
	"github.com/automoto/tilequest/collision"
	"github.com/yohamta/donburi"
)

// ColliderData links an entity to its slot in the collider registry.
// Collider is nil once the slot was released.
type ColliderData struct {
	Collider *collision.Collider
	Skin     int // Pixels the collider extends past the object on every side
}

var Collider = donburi.NewComponentType[ColliderData]()
