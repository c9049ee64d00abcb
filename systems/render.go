package systems

import (
	"image/color"

	"github.com/automoto/tilequest/collision"
	"github.com/automoto/tilequest/components"
	"github.com/automoto/tilequest/config"
	"github.com/automoto/tilequest/engine"
	"github.com/automoto/tilequest/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var debugColors = map[collision.Type]color.RGBA{
	collision.Pain:       config.Red,
	collision.Coin:       config.Yellow,
	collision.Checkpoint: config.Green,
	collision.Player:     config.Blue,
	collision.Enemy:      config.Orange,
}

// DrawLevel queues the tile layers
func DrawLevel(e *ecs.ECS) {
	level := levelData(e)
	if level == nil || level.Map == nil || level.Renderer == nil {
		return
	}
	level.Map.Draw(level.Renderer)
}

// DrawPickups queues object coins. Tile coins are drawn with the map.
func DrawPickups(e *ecs.ECS) {
	level := levelData(e)
	if level == nil || level.Renderer == nil {
		return
	}
	tags.Coin.Each(e.World, func(entry *donburi.Entry) {
		coin := components.Coin.Get(entry)
		if coin.Collected || coin.Tile {
			return
		}
		obj := components.Object.Get(entry)
		level.Renderer.DrawRect(obj.Bounds().Inset(obj.W/4), config.Yellow, true)
	})
}

// DrawCharacters queues the player and live enemies, from their sheet when one loaded
func DrawCharacters(e *ecs.ECS) {
	level := levelData(e)
	if level == nil || level.Renderer == nil {
		return
	}
	tags.Enemy.Each(e.World, func(entry *donburi.Entry) {
		if components.Enemy.Get(entry).Alive {
			drawCharacter(level.Renderer, entry, config.Red)
		}
	})
	if playerEntry, ok := tags.Player.First(e.World); ok {
		drawCharacter(level.Renderer, playerEntry, config.Blue)
	}
}

func drawCharacter(r engine.Renderer, entry *donburi.Entry, fallback color.Color) {
	obj := components.Object.Get(entry)
	anim := components.Animation.Get(entry)
	if anim.Sheet == 0 || anim.CurrentAnimation == nil {
		r.DrawRect(obj.Bounds(), fallback, true)
		return
	}
	row := anim.Rows[anim.CurrentSheet]
	src := anim.CurrentAnimation.Src(row, anim.FrameWidth, anim.FrameHeight)
	// Sheets may be taller than the collision box; feet stay on the box bottom
	r.DrawTexture(anim.Sheet, obj.X+(obj.W-anim.FrameWidth)/2, obj.Y+obj.H-anim.FrameHeight, src)
}

// DrawDebug outlines every live collider while debug drawing is on
func DrawDebug(e *ecs.ECS) {
	level := levelData(e)
	if level == nil || !level.Debug || level.Renderer == nil || level.Collisions == nil {
		return
	}
	for i := 0; i < level.Collisions.Capacity(); i++ {
		col, ok := level.Collisions.Get(i)
		if !ok {
			continue
		}
		c, ok := debugColors[col.Type]
		if !ok {
			c = config.White
		}
		level.Renderer.DrawRect(col.Rect, c, false)
	}
}
