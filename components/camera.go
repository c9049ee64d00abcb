package components

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

type CameraData struct {
	Position math.Vec2 // World position of the screen's top-left corner
}

var Camera = donburi.NewComponentType[CameraData]()
