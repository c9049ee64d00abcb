package engine

import "github.com/automoto/tilequest/config"

// Module is a subsystem driven by the App lifecycle.
//
// Order of calls:
//  1. Init - once, at registration
//  2. Awake(section) - once, with the module's configuration section
//  3. Start - once, only if the module is active
//  4. PreUpdate / Update / PostUpdate - every frame while active
//  5. CleanUp - once, in reverse registration order
type Module interface {
	Name() string
	Active() bool
	SetActive(active bool)

	Init()
	Awake(ctx *Context, cfg config.Section) error
	Start(ctx *Context) error
	PreUpdate(ctx *Context) error
	Update(ctx *Context, dt float64) error
	PostUpdate(ctx *Context) error
	CleanUp(ctx *Context) error

	// SaveState returns the module's section of the save document.
	// An empty section means the module has nothing to persist.
	SaveState(ctx *Context) (config.Section, error)
	LoadState(ctx *Context, state config.Section) error
}

// Base provides no-op lifecycle methods. Embed it and override what you need.
type Base struct {
	name   string
	active bool
}

// NewBase returns an active Base with the given module name
func NewBase(name string) Base {
	return Base{name: name, active: true}
}

func (b *Base) Name() string          { return b.name }
func (b *Base) Active() bool          { return b.active }
func (b *Base) SetActive(active bool) { b.active = active }

// Enable activates the module and runs Start if it was inactive.
func Enable(ctx *Context, m Module) error {
	if m.Active() {
		return nil
	}
	m.SetActive(true)
	return m.Start(ctx)
}

// Disable deactivates the module and runs CleanUp if it was active.
func Disable(ctx *Context, m Module) error {
	if !m.Active() {
		return nil
	}
	m.SetActive(false)
	return m.CleanUp(ctx)
}

func (b *Base) Init()                                        {}
func (b *Base) Awake(ctx *Context, cfg config.Section) error { return nil }
func (b *Base) Start(ctx *Context) error                     { return nil }
func (b *Base) PreUpdate(ctx *Context) error                 { return nil }
func (b *Base) Update(ctx *Context, dt float64) error        { return nil }
func (b *Base) PostUpdate(ctx *Context) error                { return nil }
func (b *Base) CleanUp(ctx *Context) error                   { return nil }

func (b *Base) SaveState(ctx *Context) (config.Section, error) {
	return config.Section{}, nil
}

func (b *Base) LoadState(ctx *Context, state config.Section) error { return nil }
