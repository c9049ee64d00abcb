package systems

import (
	"fmt"

	"github.com/automoto/tilequest/components"
	"github.com/automoto/tilequest/config"
	"github.com/automoto/tilequest/tags"
	"github.com/yohamta/donburi/ecs"
)

const (
	hudMargin     = 10
	hudLineHeight = 22
)

// DrawHUD queues the coin, score and time counters in the top-left corner.
func DrawHUD(e *ecs.ECS) {
	level := levelData(e)
	if level == nil || level.Renderer == nil {
		return
	}
	playerEntry, ok := tags.Player.First(e.World)
	if !ok {
		return
	}
	player := components.Player.Get(playerEntry)

	lines := []string{
		fmt.Sprintf("Coins: %d", player.Coins),
		fmt.Sprintf("Score: %d", player.Score),
		fmt.Sprintf("Time: %02d:%02d", level.Minutes, int(level.Seconds)),
	}
	if player.Checkpoint {
		lines = append(lines, "Checkpoint")
	}
	for i, line := range lines {
		level.Renderer.DrawText(line, hudMargin, hudMargin+i*hudLineHeight, config.Screen.TextColor)
	}
}
