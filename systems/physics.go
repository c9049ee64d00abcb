package systems

import (
	"github.com/automoto/tilequest/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdatePhysics integrates every body and corrects the result against the tile grid
func UpdatePhysics(e *ecs.ECS) {
	level := levelData(e)
	if level == nil {
		return
	}
	components.Physics.Each(e.World, func(entry *donburi.Entry) {
		if entry.HasComponent(components.Enemy) && !components.Enemy.Get(entry).Alive {
			return
		}

		physics := components.Physics.Get(entry)
		obj := components.Object.Get(entry)

		next := physics.Integrate(obj.Rect, level.Dt)
		if level.Resolver != nil {
			level.Resolver.Resolve(&obj.Rect, next, physics.GoingLeft, &physics.Body)
		} else {
			obj.Rect = next
		}

		// Fell out of the world
		if level.Height > 0 && obj.Y > level.Height {
			if entry.HasComponent(components.Player) {
				components.Player.Get(entry).Respawn = true
			} else if entry.HasComponent(components.Enemy) {
				killEnemy(level, entry)
			}
		}
	})
}
