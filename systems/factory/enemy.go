package factory

import (
	"github.com/automoto/tilequest/archetypes"
	"github.com/automoto/tilequest/collision"
	"github.com/automoto/tilequest/components"
	cfg "github.com/automoto/tilequest/config"
	"github.com/automoto/tilequest/engine"
	"github.com/automoto/tilequest/physics"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateEnemy spawns a patrolling enemy. A zero patrol range falls back to
// the configured distance either side of the spawn.
func CreateEnemy(ecs *ecs.ECS, id, x, y, patrolLeft, patrolRight int, textures engine.Textures) (*donburi.Entry, error) {
	enemy := archetypes.Enemy.Spawn(ecs)

	components.Object.SetValue(enemy, components.ObjectData{
		Rect: physics.Rect{X: x, Y: y, W: cfg.Enemy.Width, H: cfg.Enemy.Height},
	})

	if patrolLeft == patrolRight {
		patrolLeft = x - cfg.Enemy.PatrolRange
		patrolRight = x + cfg.Enemy.PatrolRange
	}
	components.Enemy.SetValue(enemy, components.EnemyData{
		ID:          id,
		PatrolLeft:  patrolLeft,
		PatrolRight: patrolRight,
		Speed:       cfg.Enemy.PatrolSpeed,
		Alive:       true,
	})

	// Start walking left, like the player's default facing is right
	body := physics.NewBody()
	body.Speed.X = -cfg.Enemy.PatrolSpeed
	components.Physics.SetValue(enemy, components.PhysicsData{Body: body, GoingLeft: true})

	animData := GenerateAnimations("enemy", textures)
	animData.SetAnimation(cfg.Running)
	components.Animation.Set(enemy, animData)

	if err := AttachCollider(ecs, enemy, collision.Enemy, 0, nil); err != nil {
		ecs.World.Remove(enemy.Entity())
		return nil, err
	}
	return enemy, nil
}
