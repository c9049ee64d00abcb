package scenes

import (
	"fmt"
	"image"
	"log"

	"github.com/automoto/tilequest/collision"
	"github.com/automoto/tilequest/components"
	cfg "github.com/automoto/tilequest/config"
	"github.com/automoto/tilequest/engine"
	"github.com/automoto/tilequest/physics"
	"github.com/automoto/tilequest/systems"
	"github.com/automoto/tilequest/systems/factory"
	"github.com/automoto/tilequest/tags"
	"github.com/yohamta/donburi"
)

type playerState struct {
	X          int  `json:"x"`
	Y          int  `json:"y"`
	FacingLeft bool `json:"facing_left"`
	Checkpoint bool `json:"checkpoint"`
	Coins      int  `json:"coins"`
	Score      int  `json:"score"`
	RespawnX   int  `json:"respawn_x"`
	RespawnY   int  `json:"respawn_y"`
}

type enemyState struct {
	ID         int  `json:"id"`
	X          int  `json:"x"`
	Y          int  `json:"y"`
	FacingLeft bool `json:"facing_left"`
	Alive      bool `json:"alive"`
}

// SavedScene is the scene's section of the save document
type SavedScene struct {
	Player      playerState   `json:"player"`
	Enemies     []enemyState  `json:"enemies"`
	Coins       []int         `json:"collected_coins"`
	Checkpoints []image.Point `json:"checkpoints"`
	Seconds     float64       `json:"seconds"`
	Minutes     int           `json:"minutes"`
}

func (s *Scene) SaveState(ctx *engine.Context) (cfg.Section, error) {
	if s.ecs == nil {
		return cfg.Section{}, nil
	}
	world := s.ecs.World
	playerEntry, ok := tags.Player.First(world)
	if !ok {
		return cfg.Section{}, fmt.Errorf("scene: no player to save")
	}

	obj := components.Object.Get(playerEntry)
	player := components.Player.Get(playerEntry)
	level := s.levelData()
	saved := SavedScene{
		Player: playerState{
			X:          obj.X,
			Y:          obj.Y,
			FacingLeft: components.Physics.Get(playerEntry).GoingLeft,
			Checkpoint: player.Checkpoint,
			Coins:      player.Coins,
			Score:      player.Score,
			RespawnX:   player.RespawnX,
			RespawnY:   player.RespawnY,
		},
		Seconds: level.Seconds,
		Minutes: level.Minutes,
	}

	tags.Enemy.Each(world, func(entry *donburi.Entry) {
		enemy := components.Enemy.Get(entry)
		enemyObj := components.Object.Get(entry)
		saved.Enemies = append(saved.Enemies, enemyState{
			ID:         enemy.ID,
			X:          enemyObj.X,
			Y:          enemyObj.Y,
			FacingLeft: components.Physics.Get(entry).GoingLeft,
			Alive:      enemy.Alive,
		})
	})
	tags.Coin.Each(world, func(entry *donburi.Entry) {
		if coin := components.Coin.Get(entry); coin.Collected {
			saved.Coins = append(saved.Coins, coin.ID)
		}
	})
	tags.Checkpoint.Each(world, func(entry *donburi.Entry) {
		if cp := components.Checkpoint.Get(entry); cp.Activated {
			saved.Checkpoints = append(saved.Checkpoints, cp.Cell)
		}
	})

	return cfg.NewSection(saved)
}

func (s *Scene) LoadState(ctx *engine.Context, state cfg.Section) error {
	if state.Empty() {
		return nil
	}
	if s.ecs == nil {
		log.Println("Warning: scene is not running, saved scene ignored")
		return nil
	}
	var saved SavedScene
	if err := state.Decode(&saved); err != nil {
		return fmt.Errorf("scene: decode save: %w", err)
	}

	world := s.ecs.World
	level := s.levelData()
	playerEntry, ok := tags.Player.First(world)
	if !ok {
		return fmt.Errorf("scene: no player to load into")
	}

	obj := components.Object.Get(playerEntry)
	obj.X, obj.Y = saved.Player.X, saved.Player.Y
	body := components.Physics.Get(playerEntry)
	body.Speed = physics.Vec{}
	body.OnGround = false
	body.GoingLeft = saved.Player.FacingLeft
	components.Player.SetValue(playerEntry, components.PlayerData{
		Coins:      saved.Player.Coins,
		Score:      saved.Player.Score,
		Checkpoint: saved.Player.Checkpoint,
		RespawnX:   saved.Player.RespawnX,
		RespawnY:   saved.Player.RespawnY,
	})

	enemies := make(map[int]enemyState, len(saved.Enemies))
	for _, e := range saved.Enemies {
		enemies[e.ID] = e
	}
	var loadErr error
	tags.Enemy.Each(world, func(entry *donburi.Entry) {
		enemy := components.Enemy.Get(entry)
		es, ok := enemies[enemy.ID]
		if !ok {
			return
		}
		enemyObj := components.Object.Get(entry)
		enemyObj.X, enemyObj.Y = es.X, es.Y
		enemyBody := components.Physics.Get(entry)
		enemyBody.GoingLeft = es.FacingLeft
		enemyBody.Speed = physics.Vec{}
		enemy.Alive = es.Alive
		if es.Alive {
			// A zero speed reads as blocked by a wall and would turn the enemy around
			enemyBody.Speed.X = systems.WalkSpeed(enemy, es.FacingLeft)
		}
		if err := s.syncCollider(entry, es.Alive, collision.Enemy); err != nil && loadErr == nil {
			loadErr = err
		}
	})

	collected := make(map[int]bool, len(saved.Coins))
	for _, id := range saved.Coins {
		collected[id] = true
	}
	tags.Coin.Each(world, func(entry *donburi.Entry) {
		coin := components.Coin.Get(entry)
		coin.Collected = collected[coin.ID]
		if coin.Tile {
			level.Map.SetHidden(coin.Cell.X, coin.Cell.Y, coin.Collected)
		}
		if err := s.syncCollider(entry, !coin.Collected, collision.Coin); err != nil && loadErr == nil {
			loadErr = err
		}
	})

	activated := make(map[image.Point]bool, len(saved.Checkpoints))
	for _, cell := range saved.Checkpoints {
		activated[cell] = true
	}
	tags.Checkpoint.Each(world, func(entry *donburi.Entry) {
		cp := components.Checkpoint.Get(entry)
		cp.Activated = activated[cp.Cell]
	})

	level.Seconds = saved.Seconds
	level.Minutes = saved.Minutes

	// The old positions must not raise contacts before the next sync
	systems.UpdateColliders(s.ecs)
	systems.CenterCamera(s.ecs)
	return loadErr
}

// syncCollider gives entry a registry slot when it should have one and frees it otherwise
func (s *Scene) syncCollider(entry *donburi.Entry, want bool, t collision.Type) error {
	ref := components.Collider.Get(entry)
	switch {
	case want && ref.Collider == nil:
		if err := factory.AttachCollider(s.ecs, entry, t, ref.Skin, nil); err != nil {
			return fmt.Errorf("scene: restore %s: %w", t, err)
		}
	case !want && ref.Collider != nil:
		s.collisions.Remove(ref.Collider)
		ref.Collider = nil
	}
	return nil
}
