package transition

import (
	"fmt"
	"image/color"
	"log"

	"github.com/automoto/tilequest/config"
	"github.com/automoto/tilequest/engine"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Step is the phase of a fade
type Step int

const (
	None Step = iota
	ToBlack
	FromBlack
)

// Transition is the fade module. A fade darkens the screen, swaps which
// module is active at full black, then clears again. Durations are in frames.
type Transition struct {
	engine.Base

	step    Step
	tween   *gween.Tween
	frames  float32
	opacity float32

	toDisable engine.Module
	toEnable  engine.Module
	overlay   color.RGBA
}

func New() *Transition {
	return &Transition{Base: engine.NewBase("transition")}
}

func (t *Transition) Init() {
	t.overlay = config.Transition.OverlayColor
}

// Fade begins a fade from toDisable to toEnable. With onlyFadeIn the
// screen starts black and clears without swapping modules. A request made
// while a fade is running is ignored and returns false.
func (t *Transition) Fade(toDisable, toEnable engine.Module, onlyFadeIn bool, frames float64) bool {
	if t.step != None {
		return false
	}
	if frames <= 0 {
		frames = config.Transition.Frames
	}
	t.frames = float32(frames)

	if onlyFadeIn {
		t.step = FromBlack
		t.tween = gween.New(1, 0, t.frames, ease.Linear)
		t.opacity = 1
		return true
	}

	t.step = ToBlack
	t.tween = gween.New(0, 1, t.frames, ease.Linear)
	t.opacity = 0
	t.toDisable = toDisable
	t.toEnable = toEnable
	return true
}

// Running reports whether a fade is in progress
func (t *Transition) Running() bool { return t.step != None }

// Current returns the fade phase and overlay opacity (0 clear, 1 black)
func (t *Transition) Current() (Step, float32) { return t.step, t.opacity }

func (t *Transition) Update(ctx *engine.Context, dt float64) error {
	if t.step == None {
		return nil
	}

	var finished bool
	t.opacity, finished = t.tween.Update(1)
	if !finished {
		return nil
	}

	switch t.step {
	case ToBlack:
		if err := t.swap(ctx); err != nil {
			t.step = None
			return err
		}
		t.step = FromBlack
		t.tween = gween.New(1, 0, t.frames, ease.Linear)
	case FromBlack:
		t.step = None
		t.opacity = 0
	}
	return nil
}

func (t *Transition) swap(ctx *engine.Context) error {
	if t.toDisable != nil {
		if err := engine.Disable(ctx, t.toDisable); err != nil {
			return fmt.Errorf("transition: disable %s: %w", t.toDisable.Name(), err)
		}
	}
	if t.toEnable != nil {
		log.Printf("Transition to %s", t.toEnable.Name())
		if err := engine.Enable(ctx, t.toEnable); err != nil {
			return fmt.Errorf("transition: enable %s: %w", t.toEnable.Name(), err)
		}
	}
	t.toDisable, t.toEnable = nil, nil
	return nil
}

func (t *Transition) PostUpdate(ctx *engine.Context) error {
	if t.step == None || ctx == nil || ctx.Renderer == nil {
		return nil
	}
	c := color.NRGBA{R: t.overlay.R, G: t.overlay.G, B: t.overlay.B, A: uint8(clamp01(t.opacity) * 255)}
	ctx.Renderer.FillScreen(c)
	return nil
}

func (t *Transition) CleanUp(ctx *engine.Context) error {
	t.step = None
	t.tween = nil
	t.toDisable, t.toEnable = nil, nil
	return nil
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
