package systems

import (
	"log"

	"github.com/automoto/tilequest/collision"
	"github.com/automoto/tilequest/components"
	cfg "github.com/automoto/tilequest/config"
	"github.com/automoto/tilequest/systems/factory"
	"github.com/automoto/tilequest/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateColliders moves the registry rectangles of moving entities to their objects
func UpdateColliders(e *ecs.ECS) {
	level := levelData(e)
	if level == nil || level.Collisions == nil {
		return
	}
	components.Collider.Each(e.World, func(entry *donburi.Entry) {
		ref := components.Collider.Get(entry)
		if ref.Collider == nil || !entry.HasComponent(components.Physics) {
			return
		}
		obj := components.Object.Get(entry)
		level.Collisions.SetRect(ref.Collider, factory.ColliderRect(obj.Rect, ref.Skin))
	})
}

// PlayerContacts reacts to the player's collider touching pickups, checkpoints and hazards
type PlayerContacts struct {
	ecs *ecs.ECS
}

func NewPlayerContacts(e *ecs.ECS) *PlayerContacts {
	return &PlayerContacts{ecs: e}
}

func (c *PlayerContacts) OnCollision(self, other *collision.Collider) {
	playerEntry, ok := tags.Player.First(c.ecs.World)
	if !ok {
		return
	}
	level := levelData(c.ecs)
	if level == nil {
		return
	}
	player := components.Player.Get(playerEntry)

	switch other.Type {
	case collision.Coin:
		if coinEntry := entryOf(c.ecs.World, other); coinEntry != nil {
			collectCoin(level, player, coinEntry)
		}
	case collision.Checkpoint:
		if cpEntry := entryOf(c.ecs.World, other); cpEntry != nil {
			activateCheckpoint(level, player, cpEntry)
		}
	case collision.Pain:
		player.Respawn = true
	case collision.Enemy:
		if enemyEntry := entryOf(c.ecs.World, other); enemyEntry != nil {
			touchEnemy(level, playerEntry, enemyEntry)
		}
	}
}

func collectCoin(level *components.LevelData, player *components.PlayerData, coinEntry *donburi.Entry) {
	coin := components.Coin.Get(coinEntry)
	if coin.Collected {
		return
	}
	coin.Collected = true
	player.Coins++
	player.Score += cfg.Player.CoinScore
	releaseCollider(level, coinEntry)
	if coin.Tile && level.Map != nil {
		level.Map.SetHidden(coin.Cell.X, coin.Cell.Y, true)
	}
}

func activateCheckpoint(level *components.LevelData, player *components.PlayerData, cpEntry *donburi.Entry) {
	cp := components.Checkpoint.Get(cpEntry)
	if cp.Activated {
		return
	}
	cp.Activated = true

	obj := components.Object.Get(cpEntry)
	player.Checkpoint = true
	player.RespawnX = obj.X
	player.RespawnY = obj.Y + obj.H - cfg.Player.Height
	level.SaveRequested = true
	log.Printf("Checkpoint reached at %d,%d", cp.Cell.X, cp.Cell.Y)
}

// touchEnemy kills the enemy when the player lands on it from above, otherwise the player respawns
func touchEnemy(level *components.LevelData, playerEntry, enemyEntry *donburi.Entry) {
	if !components.Enemy.Get(enemyEntry).Alive {
		return
	}
	player := components.Player.Get(playerEntry)
	body := components.Physics.Get(playerEntry)
	playerObj := components.Object.Get(playerEntry)
	enemyObj := components.Object.Get(enemyEntry)

	stomp := body.Speed.Y > 0 && playerObj.Y+playerObj.H <= enemyObj.Y+enemyObj.H/2
	if !stomp {
		player.Respawn = true
		return
	}
	killEnemy(level, enemyEntry)
	player.Score += cfg.Player.StompScore
	body.Speed.Y = -cfg.Player.JumpSpeed * cfg.Player.StompBounce
}
