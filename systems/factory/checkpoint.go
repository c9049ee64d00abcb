package factory

import (
	"image"

	"github.com/automoto/tilequest/archetypes"
	"github.com/automoto/tilequest/collision"
	"github.com/automoto/tilequest/components"
	"github.com/automoto/tilequest/physics"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateCheckpoint creates a checkpoint entity over a map cell
func CreateCheckpoint(ecs *ecs.ECS, rect physics.Rect, cell image.Point) (*donburi.Entry, error) {
	checkpoint := archetypes.Checkpoint.Spawn(ecs)

	components.Object.SetValue(checkpoint, components.ObjectData{Rect: rect})
	components.Checkpoint.SetValue(checkpoint, components.CheckpointData{Cell: cell})

	if err := AttachCollider(ecs, checkpoint, collision.Checkpoint, 0, nil); err != nil {
		ecs.World.Remove(checkpoint.Entity())
		return nil, err
	}
	return checkpoint, nil
}
