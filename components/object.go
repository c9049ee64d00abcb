package components

import (
	"github.com/automoto/tilequest/physics"
	"github.com/yohamta/donburi"
)

// ObjectData is an entity's world rectangle in pixels
type ObjectData struct {
	physics.Rect
}

var Object = donburi.NewComponentType[ObjectData]()
