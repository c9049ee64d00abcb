package systems

import (
	"log"

	"github.com/automoto/tilequest/components"
	"github.com/automoto/tilequest/physics"
	"github.com/automoto/tilequest/tags"
	"github.com/yohamta/donburi/ecs"
)

// UpdatePlayer applies a respawn requested by a contact callback
func UpdatePlayer(e *ecs.ECS) {
	playerEntry, ok := tags.Player.First(e.World)
	if !ok {
		return
	}
	player := components.Player.Get(playerEntry)
	if !player.Respawn {
		return
	}
	player.Respawn = false

	obj := components.Object.Get(playerEntry)
	obj.X, obj.Y = player.RespawnX, player.RespawnY

	body := components.Physics.Get(playerEntry)
	body.Speed = physics.Vec{}
	body.OnGround = false
	log.Printf("Player respawned at %d,%d", obj.X, obj.Y)
}
