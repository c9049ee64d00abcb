package factory

import (
	"log"

	"github.com/automoto/tilequest/assets/animations"
	"github.com/automoto/tilequest/components"
	cfg "github.com/automoto/tilequest/config"
	"github.com/automoto/tilequest/engine"
)

// GenerateAnimations creates an AnimationData component for a character key
// (e.g., "player") from its sheet and animation definitions in config. When the
// sheet cannot be loaded the entity keeps Sheet zero and is drawn as a rectangle.
func GenerateAnimations(key string, textures engine.Textures) *components.AnimationData {
	sheet := cfg.CharacterSheets[key]
	animData := &components.AnimationData{
		Animations:   animations.Set(key),
		Rows:         sheet.Rows,
		FrameWidth:   sheet.FrameWidth,
		FrameHeight:  sheet.FrameHeight,
		CurrentSheet: cfg.StateNone,
	}

	if textures == nil || sheet.Path == "" {
		return animData
	}
	tex, err := textures.Load(sheet.Path)
	if err != nil {
		log.Printf("Warning: no sprite sheet for %s: %v", key, err)
		return animData
	}
	animData.Sheet = tex
	return animData
}
