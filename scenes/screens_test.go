package scenes

import (
	"testing"
	"time"

	"github.com/automoto/tilequest/config"
	"github.com/automoto/tilequest/engine"
	"github.com/automoto/tilequest/input"
	"github.com/automoto/tilequest/transition"
)

func TestLogoFadesToTitleThenScene(t *testing.T) {
	clock := engine.NewManualClock()
	source := &input.Scripted{}
	in := input.New(source)
	logo, title := NewLogo(), NewTitle()
	target := &idle{Base: engine.NewBase("scene")}

	app := engine.NewApp(nil, engine.WithClock(clock), engine.WithSleep(nil))
	tr := transition.New()
	app.MustRegister(in, logo, title, target, tr)

	doc, _ := config.Parse([]byte(`{"logo": {"seconds": 0.5}}`))
	if err := app.Awake(doc); err != nil {
		t.Fatalf("Awake failed: %v", err)
	}
	if err := app.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !logo.Active() || title.Active() {
		t.Fatal("Expected the logo first")
	}

	steps := 0
	for !title.Active() && steps < 1000 {
		clock.Advance(100 * time.Millisecond)
		if err := app.Step(); err != nil {
			t.Fatalf("Step failed: %v", err)
		}
		steps++
	}
	if !title.Active() || logo.Active() {
		t.Fatalf("Expected the title after the logo, got logo=%t title=%t", logo.Active(), title.Active())
	}

	// A confirm during the fade-in is ignored, so wait until the title is settled
	for tr.Running() && steps < 1000 {
		if err := app.Step(); err != nil {
			t.Fatalf("Step failed: %v", err)
		}
		steps++
	}
	if tr.Running() {
		t.Fatal("Expected the fade into the title to finish")
	}

	source.Press(config.ActionConfirm)
	for !target.Active() && steps < 2000 {
		if err := app.Step(); err != nil {
			t.Fatalf("Step failed: %v", err)
		}
		source.Release(config.ActionConfirm)
		steps++
	}
	if !target.Active() || title.Active() {
		t.Error("Expected confirm on the title to fade into the scene")
	}
}

type idle struct {
	engine.Base
}

func (i *idle) Init() { i.SetActive(false) }
