package engine

import (
	"fmt"
	"image"
	"image/color"
)

// Texture is a handle issued by a Textures collaborator. Zero is no texture.
type Texture int

// Textures loads image sheets and reports their size
type Textures interface {
	Load(path string) (Texture, error)
	Size(tex Texture) (w, h int)
}

// Renderer queues draw calls for the current frame.
// DrawTexture and DrawRect take world coordinates; DrawText and FillScreen are screen space.
type Renderer interface {
	DrawTexture(tex Texture, x, y int, src image.Rectangle)
	DrawRect(rect image.Rectangle, c color.Color, filled bool)
	DrawText(s string, x, y int, c color.Color)
	FillScreen(c color.Color)
}

// Window receives the per-frame statistics title
type Window interface {
	SetTitle(title string)
}

// Context carries collaborator handles into every lifecycle call.
// It is built once at startup and replaces any process-wide singleton.
type Context struct {
	Textures Textures
	Renderer Renderer
	Window   Window

	app *App
}

// App returns the scheduler that owns this context
func (c *Context) App() *App {
	return c.app
}

// Module finds a registered module by name
func (c *Context) Module(name string) (Module, bool) {
	if c.app == nil {
		return nil, false
	}
	return c.app.Module(name)
}

// RequestSave asks the App to save at the end of the current frame
func (c *Context) RequestSave() {
	if c.app != nil {
		c.app.RequestSave()
	}
}

// RequestLoad asks the App to load at the end of the current frame
func (c *Context) RequestLoad() {
	if c.app != nil {
		c.app.RequestLoad()
	}
}

// Lookup retrieves a module by name and casts it to T
func Lookup[T any](c *Context, name string) (T, error) {
	var zero T
	m, ok := c.Module(name)
	if !ok {
		return zero, fmt.Errorf("module not found: %s", name)
	}
	typed, ok := m.(T)
	if !ok {
		return zero, fmt.Errorf("module %s: type mismatch, got %T", name, m)
	}
	return typed, nil
}

// MustLookup is Lookup that panics, for wiring that cannot be absent
func MustLookup[T any](c *Context, name string) T {
	typed, err := Lookup[T](c, name)
	if err != nil {
		panic(err)
	}
	return typed
}
