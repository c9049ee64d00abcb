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

// PlayerSkin lets the player's collider touch tiles the resolver stops it against
const PlayerSkin = 1

func CreatePlayer(ecs *ecs.ECS, x, y int, textures engine.Textures, listener collision.Listener) (*donburi.Entry, error) {
	player := archetypes.Player.Spawn(ecs)

	components.Object.SetValue(player, components.ObjectData{
		Rect: physics.Rect{X: x, Y: y, W: cfg.Player.Width, H: cfg.Player.Height},
	})
	components.Physics.SetValue(player, components.PhysicsData{Body: physics.NewBody()})
	components.Player.SetValue(player, components.PlayerData{
		RespawnX: x,
		RespawnY: y,
	})

	animData := GenerateAnimations("player", textures)
	animData.SetAnimation(cfg.Idle)
	components.Animation.Set(player, animData)

	if err := AttachCollider(ecs, player, collision.Player, PlayerSkin, listener); err != nil {
		ecs.World.Remove(player.Entity())
		return nil, err
	}
	return player, nil
}
