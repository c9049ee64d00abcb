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

// CreateCoin spawns a pickup. Tile coins remember their cell so the map can hide it.
func CreateCoin(ecs *ecs.ECS, id int, rect physics.Rect, tile bool, cell image.Point) (*donburi.Entry, error) {
	coin := archetypes.Coin.Spawn(ecs)

	components.Object.SetValue(coin, components.ObjectData{Rect: rect})
	components.Coin.SetValue(coin, components.CoinData{
		ID:   id,
		Tile: tile,
		Cell: cell,
	})

	if err := AttachCollider(ecs, coin, collision.Coin, 0, nil); err != nil {
		ecs.World.Remove(coin.Entity())
		return nil, err
	}
	return coin, nil
}
