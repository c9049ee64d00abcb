package render

import (
	"fmt"
	"log"

	"github.com/automoto/tilequest/config"
	"github.com/automoto/tilequest/engine"
)

// WindowSettings is the "window" configuration section
type WindowSettings struct {
	Width      int  `json:"width"`
	Height     int  `json:"height"`
	Fullscreen bool `json:"fullscreen"`
	Resizable  bool `json:"resizable"`
}

// Window is the window module. It holds the window settings and the
// title the App refreshes every frame; the driver mirrors both to the OS window.
type Window struct {
	engine.Base

	Settings WindowSettings
	title    string
	dirty    bool
}

func NewWindow() *Window {
	return &Window{Base: engine.NewBase("window")}
}

func (w *Window) Init() {
	w.Settings = WindowSettings{Width: config.C.Width, Height: config.C.Height, Resizable: true}
}

func (w *Window) Awake(ctx *engine.Context, cfg config.Section) error {
	log.Println("Init window")
	if err := cfg.Decode(&w.Settings); err != nil {
		return fmt.Errorf("window config: %w", err)
	}
	if w.Settings.Width <= 0 || w.Settings.Height <= 0 {
		return fmt.Errorf("window config: invalid size %dx%d", w.Settings.Width, w.Settings.Height)
	}
	if ctx != nil && ctx.App() != nil && w.title == "" {
		app := ctx.App()
		w.SetTitle(app.Title())
	}
	return nil
}

// SetTitle implements engine.Window
func (w *Window) SetTitle(title string) {
	if title == w.title {
		return
	}
	w.title = title
	w.dirty = true
}

// Title returns the current title
func (w *Window) Title() string { return w.title }

// TakeTitle returns the title and whether it changed since the last call
func (w *Window) TakeTitle() (string, bool) {
	changed := w.dirty
	w.dirty = false
	return w.title, changed
}

func (w *Window) CleanUp(ctx *engine.Context) error {
	log.Println("Destroying window")
	return nil
}
