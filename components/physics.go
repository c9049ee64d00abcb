package components

import (
	"github.com/automoto/tilequest/physics"
	"github.com/yohamta/donburi"
)

type PhysicsData struct {
	physics.Body
	GoingLeft bool // Last horizontal facing, used by the post-move wall check
}

var Physics = donburi.NewComponentType[PhysicsData]()
