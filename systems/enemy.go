package systems

import (
	"github.com/automoto/tilequest/collision"
	"github.com/automoto/tilequest/components"
	"github.com/automoto/tilequest/physics"
	"github.com/automoto/tilequest/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateEnemies walks each live enemy between its patrol bounds. An enemy
// also turns when a wall stopped it or when the ground ends ahead of it.
func UpdateEnemies(e *ecs.ECS) {
	level := levelData(e)
	tags.Enemy.Each(e.World, func(entry *donburi.Entry) {
		enemy := components.Enemy.Get(entry)
		if !enemy.Alive {
			return
		}
		obj := components.Object.Get(entry)
		body := components.Physics.Get(entry)

		turn := false
		switch {
		case body.GoingLeft && obj.X <= enemy.PatrolLeft:
			turn = true
		case !body.GoingLeft && obj.X >= enemy.PatrolRight:
			turn = true
		case body.Speed.X == 0:
			turn = true
		case body.OnGround && level != nil && level.Resolver != nil && !groundAhead(level, obj, body.GoingLeft):
			turn = true
		}
		if turn {
			body.GoingLeft = !body.GoingLeft
		}

		body.Speed.X = WalkSpeed(enemy, body.GoingLeft)
	})
}

// WalkSpeed is the horizontal patrol velocity for the given facing
func WalkSpeed(enemy *components.EnemyData, left bool) float64 {
	if left {
		return -enemy.Speed
	}
	return enemy.Speed
}

func groundAhead(level *components.LevelData, obj *components.ObjectData, left bool) bool {
	ts := level.Resolver.TileSize
	x := obj.X + obj.W
	if left {
		x = obj.X - 1
	}
	tx := physics.FloorDiv(x, ts)
	ty := physics.FloorDiv(obj.Y+obj.H, ts)
	return level.Resolver.TypeAt(tx, ty) == collision.Solid
}

// killEnemy stops an enemy and releases its collider
func killEnemy(level *components.LevelData, entry *donburi.Entry) {
	enemy := components.Enemy.Get(entry)
	if !enemy.Alive {
		return
	}
	enemy.Alive = false
	components.Physics.Get(entry).Speed.X = 0
	releaseCollider(level, entry)
}
