package components

import (
	"image"

	"github.com/yohamta/donburi"
)

type CheckpointData struct {
	Cell      image.Point
	Activated bool
}

var Checkpoint = donburi.NewComponentType[CheckpointData]()
