package systems

import (
	"github.com/automoto/tilequest/collision"
	"github.com/automoto/tilequest/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func levelData(e *ecs.ECS) *components.LevelData {
	entry, ok := components.Level.First(e.World)
	if !ok {
		return nil
	}
	return components.Level.Get(entry)
}

// UpdateTimer advances the play clock by the frame's delta
func UpdateTimer(e *ecs.ECS) {
	level := levelData(e)
	if level == nil {
		return
	}
	level.Seconds += level.Dt
	for level.Seconds >= 60 {
		level.Seconds -= 60
		level.Minutes++
	}
}

// entryOf returns the live entity a collider belongs to, or nil
func entryOf(world donburi.World, col *collision.Collider) *donburi.Entry {
	entity, ok := col.Data.(donburi.Entity)
	if !ok || !world.Valid(entity) {
		return nil
	}
	return world.Entry(entity)
}

// releaseCollider frees an entity's registry slot at the end of the frame
func releaseCollider(level *components.LevelData, entry *donburi.Entry) {
	ref := components.Collider.Get(entry)
	if ref.Collider == nil {
		return
	}
	level.Collisions.Remove(ref.Collider)
	ref.Collider = nil
}
