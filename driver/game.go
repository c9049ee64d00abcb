package driver

import (
	"image"
	"image/color"
	"log"

	"github.com/automoto/tilequest/assets"
	"github.com/automoto/tilequest/engine"
	"github.com/automoto/tilequest/fonts"
	"github.com/automoto/tilequest/render"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Game adapts the App to ebiten: Update steps one frame and Draw replays
// the frame the renderer published.
type Game struct {
	app      *engine.App
	renderer *render.Render
	window   *render.Window
	textures *assets.Textures

	images map[engine.Texture]*ebiten.Image
	op     ebiten.DrawImageOptions
}

func NewGame(app *engine.App, renderer *render.Render, window *render.Window, textures *assets.Textures) *Game {
	return &Game{
		app:      app,
		renderer: renderer,
		window:   window,
		textures: textures,
		images:   make(map[engine.Texture]*ebiten.Image),
	}
}

// Configure applies the window settings and frame cap before ebiten starts
func (g *Game) Configure() {
	width, height := g.renderer.Size()
	if g.window != nil {
		s := g.window.Settings
		width, height = s.Width, s.Height
		ebiten.SetFullscreen(s.Fullscreen)
		if s.Resizable {
			ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
		} else {
			ebiten.SetWindowResizingMode(ebiten.WindowResizingModeOnlyFullscreenEnabled)
		}
		ebiten.SetWindowTitle(g.window.Title())
	}
	ebiten.SetWindowSize(width, height)

	if ms := g.app.CappedMs(); ms > 0 {
		ebiten.SetTPS(int(1000 / ms))
	}
}

func (g *Game) Update() error {
	err := g.app.Step()
	if g.window != nil {
		if title, changed := g.window.TakeTitle(); changed {
			ebiten.SetWindowTitle(title)
		}
	}
	if err == nil {
		return nil
	}
	if engine.IsCleanStop(err) {
		log.Printf("Leaving game loop: %v", err)
		return ebiten.Termination
	}
	return err
}

func (g *Game) Draw(screen *ebiten.Image) {
	for _, cmd := range g.renderer.Frame() {
		switch cmd.Kind {
		case render.KindFill:
			g.fill(screen, cmd.Color)
		case render.KindTexture:
			g.drawTexture(screen, cmd)
		case render.KindRect:
			drawRect(screen, cmd.Rect, cmd.Color, cmd.Filled)
		case render.KindText:
			drawText(screen, cmd)
		}
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.renderer.Size()
}

// fill clears the screen for opaque colors and blends translucent ones over it
func (g *Game) fill(screen *ebiten.Image, c color.Color) {
	if _, _, _, a := c.RGBA(); a == 0xffff {
		screen.Fill(c)
		return
	}
	w, h := g.renderer.Size()
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), c, false)
}

func (g *Game) drawTexture(screen *ebiten.Image, cmd render.Command) {
	img := g.image(cmd.Texture)
	if img == nil {
		return
	}
	g.op.GeoM.Reset()
	g.op.GeoM.Translate(float64(cmd.X), float64(cmd.Y))
	screen.DrawImage(img.SubImage(cmd.Src).(*ebiten.Image), &g.op)
}

// image uploads a decoded sheet to the GPU the first time it is drawn
func (g *Game) image(tex engine.Texture) *ebiten.Image {
	if img, ok := g.images[tex]; ok {
		return img
	}
	src := g.textures.Image(tex)
	if src == nil {
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	g.images[tex] = img
	return img
}

func drawRect(screen *ebiten.Image, r image.Rectangle, c color.Color, filled bool) {
	x, y := float32(r.Min.X), float32(r.Min.Y)
	w, h := float32(r.Dx()), float32(r.Dy())
	if filled {
		vector.DrawFilledRect(screen, x, y, w, h, c, false)
		return
	}
	vector.StrokeRect(screen, x, y, w, h, 1, c, false)
}

// drawText takes the top-left corner of the text, like the other commands
func drawText(screen *ebiten.Image, cmd render.Command) {
	name := fonts.FontName(cmd.Font)
	if name == "" || !fonts.Loaded(name) {
		name = fonts.Regular
	}
	if !fonts.Loaded(name) {
		return
	}
	face := name.Get()
	ascent := face.Metrics().Ascent.Ceil()
	text.Draw(screen, cmd.Text, face, cmd.X, cmd.Y+ascent, cmd.Color)
}
