package systems

import (
	"image"

	"github.com/automoto/tilequest/components"
	"github.com/automoto/tilequest/config"
	"github.com/automoto/tilequest/tags"
	"github.com/yohamta/donburi/ecs"
)

// UpdateCamera nudges the camera a fixed step whenever the player gets
// closer to a screen edge than the configured margin of tiles.
func UpdateCamera(e *ecs.ECS) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return
	}
	camera := components.Camera.Get(cameraEntry)

	playerEntry, ok := tags.Player.First(e.World)
	if !ok {
		return
	}
	level := levelData(e)
	if level == nil {
		return
	}
	obj := components.Object.Get(playerEntry)

	tileW, tileH := tileSize(level)
	marginX := float64(tileW * config.Camera.MarginTilesX)
	marginY := float64(tileH * config.Camera.MarginTilesY)
	step := float64(config.Camera.Step)
	screenW, screenH := float64(level.ScreenWidth), float64(level.ScreenHeight)

	left := float64(obj.X) - camera.Position.X
	top := float64(obj.Y) - camera.Position.Y
	if left < marginX {
		camera.Position.X -= step
	}
	if left+float64(obj.W) > screenW-marginX {
		camera.Position.X += step
	}
	if top < marginY {
		camera.Position.Y -= step
	}
	if top+float64(obj.H) > screenH-marginY {
		camera.Position.Y += step
	}
	clampCamera(level, camera)
}

// CenterCamera puts the player in the middle of the screen, used after spawning and loading
func CenterCamera(e *ecs.ECS) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return
	}
	playerEntry, ok := tags.Player.First(e.World)
	if !ok {
		return
	}
	level := levelData(e)
	if level == nil {
		return
	}
	camera := components.Camera.Get(cameraEntry)
	obj := components.Object.Get(playerEntry)
	camera.Position.X = float64(obj.X + obj.W/2 - level.ScreenWidth/2)
	camera.Position.Y = float64(obj.Y + obj.H/2 - level.ScreenHeight/2)
	clampCamera(level, camera)
}

// clampCamera keeps the screen inside the world on axes where the world is larger
func clampCamera(level *components.LevelData, camera *components.CameraData) {
	if maxX := float64(level.Width - level.ScreenWidth); maxX > 0 {
		camera.Position.X = min(max(camera.Position.X, 0), maxX)
	}
	if maxY := float64(level.Height - level.ScreenHeight); maxY > 0 {
		camera.Position.Y = min(max(camera.Position.Y, 0), maxY)
	}
}

func tileSize(level *components.LevelData) (int, int) {
	if level.Map != nil {
		if data := level.Map.Data(); data != nil && data.TileWidth > 0 && data.TileHeight > 0 {
			return data.TileWidth, data.TileHeight
		}
	}
	return config.Physics.TileSize, config.Physics.TileSize
}

type cameraTarget interface {
	SetCamera(p image.Point)
}

// ApplyCamera hands the camera position to the renderer before anything is drawn
func ApplyCamera(e *ecs.ECS) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return
	}
	level := levelData(e)
	if level == nil {
		return
	}
	target, ok := level.Renderer.(cameraTarget)
	if !ok {
		return
	}
	pos := components.Camera.Get(cameraEntry).Position
	target.SetCamera(image.Pt(int(pos.X), int(pos.Y)))
}
