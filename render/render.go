package render

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/automoto/tilequest/config"
	"github.com/automoto/tilequest/engine"
)

// Kind identifies a queued draw command
type Kind int

const (
	KindFill Kind = iota
	KindTexture
	KindRect
	KindText
)

// Command is one queued draw call in screen coordinates
type Command struct {
	Kind    Kind
	Texture engine.Texture
	X, Y    int
	Src     image.Rectangle // KindTexture: source rect in the sheet
	Rect    image.Rectangle // KindRect: destination rect
	Filled  bool
	Color   color.Color
	Text    string
	Font    string // KindText: face name, empty for the default face
}

type settings struct {
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	Background [3]uint8 `json:"background"`
	Culling    *bool    `json:"culling"`
}

// Render is the renderer module. Modules queue draw calls during the frame;
// PostUpdate publishes the queue as the finished frame, which the driver
// replays onto the screen. Registered last so everything else has drawn.
type Render struct {
	engine.Base

	// Camera is the world position shown at the top-left of the screen
	Camera image.Point

	settings   settings
	background color.RGBA
	culling    bool

	queue []Command
	frame []Command
}

// New creates the renderer module sized to the configured screen
func New() *Render {
	return &Render{Base: engine.NewBase("renderer")}
}

func (r *Render) Init() {
	r.settings.Width = config.C.Width
	r.settings.Height = config.C.Height
	r.background = config.Screen.BackgroundColor
	r.culling = true
}

func (r *Render) Awake(ctx *engine.Context, cfg config.Section) error {
	log.Println("Create render queue")
	if err := cfg.Decode(&r.settings); err != nil {
		return fmt.Errorf("renderer config: %w", err)
	}
	if r.settings.Width <= 0 || r.settings.Height <= 0 {
		return fmt.Errorf("renderer config: invalid size %dx%d", r.settings.Width, r.settings.Height)
	}
	if bg := r.settings.Background; bg != [3]uint8{} {
		r.background = color.RGBA{R: bg[0], G: bg[1], B: bg[2], A: 255}
	}
	if r.settings.Culling != nil {
		r.culling = *r.settings.Culling
	}
	return nil
}

// SetCamera moves the world origin used by DrawTexture and DrawRect
func (r *Render) SetCamera(p image.Point) { r.Camera = p }

// Size is the screen size in pixels
func (r *Render) Size() (int, int) {
	return r.settings.Width, r.settings.Height
}

// Viewport is the world rectangle currently on screen
func (r *Render) Viewport() image.Rectangle {
	return image.Rect(r.Camera.X, r.Camera.Y, r.Camera.X+r.settings.Width, r.Camera.Y+r.settings.Height)
}

func (r *Render) PreUpdate(ctx *engine.Context) error {
	r.queue = r.queue[:0]
	r.FillScreen(r.background)
	return nil
}

func (r *Render) PostUpdate(ctx *engine.Context) error {
	r.frame = append(r.frame[:0], r.queue...)
	return nil
}

// Frame returns the last published frame
func (r *Render) Frame() []Command {
	return r.frame
}

// Pending returns the commands queued so far this frame
func (r *Render) Pending() []Command {
	return r.queue
}

func (r *Render) DrawTexture(tex engine.Texture, x, y int, src image.Rectangle) {
	dst := image.Rect(x, y, x+src.Dx(), y+src.Dy())
	if r.culling && !dst.Overlaps(r.Viewport()) {
		return
	}
	r.queue = append(r.queue, Command{
		Kind:    KindTexture,
		Texture: tex,
		X:       x - r.Camera.X,
		Y:       y - r.Camera.Y,
		Src:     src,
	})
}

func (r *Render) DrawRect(rect image.Rectangle, c color.Color, filled bool) {
	if r.culling && !rect.Overlaps(r.Viewport()) {
		return
	}
	r.queue = append(r.queue, Command{
		Kind:   KindRect,
		Rect:   rect.Sub(r.Camera),
		Color:  c,
		Filled: filled,
	})
}

func (r *Render) DrawText(s string, x, y int, c color.Color) {
	r.queue = append(r.queue, Command{Kind: KindText, Text: s, X: x, Y: y, Color: c})
}

// DrawTextWith queues screen-space text in a named face
func (r *Render) DrawTextWith(font, s string, x, y int, c color.Color) {
	r.queue = append(r.queue, Command{Kind: KindText, Text: s, X: x, Y: y, Color: c, Font: font})
}

func (r *Render) FillScreen(c color.Color) {
	r.queue = append(r.queue, Command{Kind: KindFill, Color: c})
}

func (r *Render) CleanUp(ctx *engine.Context) error {
	log.Println("Destroying render queue")
	r.queue = nil
	r.frame = nil
	return nil
}
