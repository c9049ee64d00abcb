package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/automoto/tilequest/config"
	"github.com/automoto/tilequest/engine"
	"github.com/automoto/tilequest/fonts"
	"github.com/automoto/tilequest/input"
	"github.com/automoto/tilequest/transition"
)

// screen is the shared part of the full-screen text modules
type screen struct {
	engine.Base
	input      *input.Input
	transition *transition.Transition
}

func (s *screen) lookup(ctx *engine.Context) error {
	var err error
	if s.input, err = engine.Lookup[*input.Input](ctx, "input"); err != nil {
		return fmt.Errorf("%s: %w", s.Name(), err)
	}
	if s.transition, err = engine.Lookup[*transition.Transition](ctx, "transition"); err != nil {
		return fmt.Errorf("%s: %w", s.Name(), err)
	}
	return nil
}

// drawCentered queues text horizontally centered on the screen
func drawCentered(ctx *engine.Context, text string, face fonts.FontName, y int, c color.Color) {
	if ctx == nil || ctx.Renderer == nil {
		return
	}
	width := config.C.Width
	if sized, ok := ctx.Renderer.(interface{ Size() (int, int) }); ok {
		width, _ = sized.Size()
	}
	x := width / 2
	if fonts.Loaded(face) {
		x -= fonts.Width(face, text) / 2
	}
	if styled, ok := ctx.Renderer.(interface {
		DrawTextWith(font, s string, x, y int, c color.Color)
	}); ok {
		styled.DrawTextWith(string(face), text, x, y, c)
		return
	}
	ctx.Renderer.DrawText(text, x, y, c)
}

// Logo shows the studio card, then fades to the title screen
type Logo struct {
	screen
	elapsed float64
	seconds float64
}

func NewLogo() *Logo {
	return &Logo{screen: screen{Base: engine.NewBase("logo")}}
}

func (l *Logo) Init() {
	l.seconds = config.Screen.LogoSeconds
}

func (l *Logo) Awake(ctx *engine.Context, section config.Section) error {
	var settings struct {
		Seconds *float64 `json:"seconds"`
	}
	if err := section.Decode(&settings); err != nil {
		return fmt.Errorf("logo config: %w", err)
	}
	if settings.Seconds != nil {
		l.seconds = *settings.Seconds
	}
	return nil
}

func (l *Logo) Start(ctx *engine.Context) error {
	if err := l.lookup(ctx); err != nil {
		return err
	}
	l.elapsed = 0
	l.transition.Fade(nil, nil, true, 0)
	return nil
}

func (l *Logo) Update(ctx *engine.Context, dt float64) error {
	l.elapsed += dt
	skip := l.input != nil && l.input.JustPressed(config.ActionConfirm)
	if l.elapsed >= l.seconds || skip {
		title, ok := ctx.Module("title")
		if !ok {
			return fmt.Errorf("logo: module not found: title")
		}
		l.transition.Fade(l, title, false, 0)
	}
	drawCentered(ctx, "automoto", fonts.Title, config.C.Height/2, config.Screen.TextColor)
	return nil
}

// Title waits for confirm and fades into the gameplay scene
type Title struct {
	screen
}

func NewTitle() *Title {
	return &Title{screen: screen{Base: engine.NewBase("title")}}
}

func (t *Title) Init() {
	t.SetActive(false)
}

func (t *Title) Start(ctx *engine.Context) error {
	log.Println("Title screen")
	return t.lookup(ctx)
}

func (t *Title) Update(ctx *engine.Context, dt float64) error {
	if t.input.JustPressed(config.ActionConfirm) {
		scene, ok := ctx.Module("scene")
		if !ok {
			return fmt.Errorf("title: module not found: scene")
		}
		t.transition.Fade(t, scene, false, 0)
	}
	drawCentered(ctx, "Tile Quest", fonts.Title, config.C.Height/3, config.Screen.TextColor)
	drawCentered(ctx, "Press Enter", fonts.Regular, config.C.Height/2, config.White)
	return nil
}
