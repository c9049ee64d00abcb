package transition

import (
	"image"
	"image/color"
	"testing"

	"github.com/automoto/tilequest/engine"
)

type screen struct {
	engine.Base
	starts, cleanups int
}

func (s *screen) Start(ctx *engine.Context) error   { s.starts++; return nil }
func (s *screen) CleanUp(ctx *engine.Context) error { s.cleanups++; return nil }

type fills struct{ colors []color.Color }

func (f *fills) DrawTexture(tex engine.Texture, x, y int, src image.Rectangle) {}
func (f *fills) DrawRect(rect image.Rectangle, c color.Color, filled bool)     {}
func (f *fills) DrawText(s string, x, y int, c color.Color)                    {}
func (f *fills) FillScreen(c color.Color)                                      { f.colors = append(f.colors, c) }

func TestFadeSwapsModulesAtBlack(t *testing.T) {
	title := &screen{Base: engine.NewBase("title")}
	scene := &screen{Base: engine.NewBase("scene")}
	scene.SetActive(false)

	tr := New()
	tr.Init()
	ctx := &engine.Context{}

	if !tr.Fade(title, scene, false, 3) {
		t.Fatal("Expected fade to start")
	}
	if tr.Fade(scene, title, false, 3) {
		t.Error("A second fade must be ignored while one is running")
	}

	for i := 0; i < 2; i++ {
		tr.Update(ctx, 0.016)
	}
	if !title.Active() || scene.Active() {
		t.Fatal("Modules swapped before reaching black")
	}

	tr.Update(ctx, 0.016)
	if title.Active() || !scene.Active() {
		t.Fatal("Expected modules swapped at full black")
	}
	if title.cleanups != 1 || scene.starts != 1 {
		t.Errorf("Expected CleanUp on title and Start on scene, got %d/%d", title.cleanups, scene.starts)
	}
	if step, opacity := tr.Current(); step != FromBlack || opacity != 1 {
		t.Errorf("Expected from-black at opacity 1, got %d %f", step, opacity)
	}

	for i := 0; i < 3; i++ {
		tr.Update(ctx, 0.016)
	}
	if tr.Running() {
		t.Error("Expected fade to finish")
	}
}

func TestOnlyFadeIn(t *testing.T) {
	tr := New()
	tr.Init()
	r := &fills{}
	ctx := &engine.Context{Renderer: r}

	tr.Fade(nil, nil, true, 2)
	tr.PostUpdate(ctx)
	if len(r.colors) != 1 {
		t.Fatalf("Expected overlay while fading, got %d fills", len(r.colors))
	}
	if _, _, _, a := r.colors[0].RGBA(); a != 0xffff {
		t.Errorf("Expected opaque overlay at start, got alpha %d", a)
	}

	tr.Update(ctx, 0)
	tr.Update(ctx, 0)
	if tr.Running() {
		t.Fatal("Expected fade-in to finish")
	}
	tr.PostUpdate(ctx)
	if len(r.colors) != 1 {
		t.Error("No overlay once the fade is over")
	}
}
