package factory

import (
	"github.com/automoto/tilequest/archetypes"
	"github.com/automoto/tilequest/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateLevel spawns the level singleton. It must exist before any entity with a collider.
func CreateLevel(ecs *ecs.ECS, data components.LevelData) *donburi.Entry {
	level := archetypes.Level.Spawn(ecs)
	components.Level.SetValue(level, data)
	return level
}
