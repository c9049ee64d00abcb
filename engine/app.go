package engine

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/automoto/tilequest/config"
)

var (
	// ErrExit is returned (possibly wrapped) by a module asking for a clean shutdown
	ErrExit = errors.New("exit requested")
	// ErrQuit is returned by Step when the window asked to close
	ErrQuit = errors.New("quit requested")
	// ErrDuplicate is returned when registering a second module with the same name
	ErrDuplicate = errors.New("module already registered")
)

// QuitSource reports a window-close request
type QuitSource interface {
	QuitRequested() bool
}

// App owns the ordered module list and drives the frame loop.
type App struct {
	ctx     *Context
	modules []Module
	byName  map[string]Module

	clock Clock
	sleep func(time.Duration)
	quit  QuitSource
	store SaveStore

	title        string
	organization string
	cappedMs     int64

	startupTime      Timer
	frameTime        Timer
	lastSecFrameTime Timer
	frameCount       uint64
	lastSecFrames    int
	prevLastSecCount int
	dt               float64
	stats            FrameStats

	saveRequest bool
	loadRequest bool
}

// Option configures an App
type Option func(*App)

// WithClock replaces the wall clock
func WithClock(c Clock) Option {
	return func(a *App) { a.clock = c }
}

// WithSleep replaces the frame cap sleep. Pass nil to disable capping sleeps.
func WithSleep(sleep func(time.Duration)) Option {
	return func(a *App) { a.sleep = sleep }
}

// WithQuitSource sets where window-close requests come from
func WithQuitSource(q QuitSource) Option {
	return func(a *App) { a.quit = q }
}

// WithSaveStore sets the backend used by SaveGame and LoadGame
func WithSaveStore(s SaveStore) Option {
	return func(a *App) { a.store = s }
}

// NewApp creates an App bound to ctx. A nil ctx gets an empty Context.
func NewApp(ctx *Context, opts ...Option) *App {
	if ctx == nil {
		ctx = &Context{}
	}
	a := &App{
		ctx:    ctx,
		byName: make(map[string]Module),
		clock:  SystemClock,
		sleep:  time.Sleep,
	}
	for _, opt := range opts {
		opt(a)
	}
	ctx.app = a

	a.startupTime = NewTimer(a.clock)
	a.frameTime = NewTimer(a.clock)
	a.lastSecFrameTime = NewTimer(a.clock)
	return a
}

// Context returns the context passed to every module
func (a *App) Context() *Context { return a.ctx }

// Register runs the module's Init and appends it to the update order.
func (a *App) Register(m Module) error {
	if _, exists := a.byName[m.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicate, m.Name())
	}
	m.Init()
	a.modules = append(a.modules, m)
	a.byName[m.Name()] = m
	return nil
}

// MustRegister is Register that panics, for startup wiring
func (a *App) MustRegister(modules ...Module) {
	for _, m := range modules {
		if err := a.Register(m); err != nil {
			panic(err)
		}
	}
}

// Module finds a registered module by name
func (a *App) Module(name string) (Module, bool) {
	m, ok := a.byName[name]
	return m, ok
}

// Modules returns the registration order
func (a *App) Modules() []Module {
	return a.modules
}

func (a *App) Title() string        { return a.title }
func (a *App) Organization() string { return a.organization }

// CappedMs is the target frame duration, 0 when uncapped
func (a *App) CappedMs() int64 { return a.cappedMs }

// Stats returns the statistics computed at the end of the last frame
func (a *App) Stats() FrameStats { return a.stats }

func (a *App) RequestSave() { a.saveRequest = true }
func (a *App) RequestLoad() { a.loadRequest = true }

// Awake reads the app block and hands every module its section, stopping at the first failure.
func (a *App) Awake(doc *config.Document) error {
	if doc == nil {
		return errors.New("awake: no configuration document")
	}

	a.title = doc.App.Title
	a.organization = doc.App.Organization
	a.cappedMs = 0
	if doc.App.FramerateCap > 0 {
		a.cappedMs = int64(1000 / doc.App.FramerateCap)
	}

	for _, m := range a.modules {
		if err := m.Awake(a.ctx, doc.Section(m.Name())); err != nil {
			return fmt.Errorf("awake %s: %w", m.Name(), err)
		}
	}
	return nil
}

// Start runs Start on active modules, stopping at the first failure.
func (a *App) Start() error {
	a.startupTime.Start()
	a.frameTime.Start()
	a.lastSecFrameTime.Start()
	return a.each("start", func(m Module) error {
		return m.Start(a.ctx)
	})
}

// Step runs one frame. It returns nil to keep going, an error wrapping
// ErrQuit or ErrExit for a clean stop, and any other error for a failure.
func (a *App) Step() error {
	a.prepareUpdate()

	var err error
	if a.quit != nil && a.quit.QuitRequested() {
		err = ErrQuit
	}
	if err == nil {
		err = a.each("preupdate", func(m Module) error {
			return m.PreUpdate(a.ctx)
		})
	}
	if err == nil {
		err = a.each("update", func(m Module) error {
			return m.Update(a.ctx, a.dt)
		})
	}
	if err == nil {
		err = a.each("postupdate", func(m Module) error {
			return m.PostUpdate(a.ctx)
		})
	}

	a.finishUpdate()
	return err
}

// IsCleanStop reports whether a Step error is a requested shutdown rather than a failure
func IsCleanStop(err error) bool {
	return errors.Is(err, ErrQuit) || errors.Is(err, ErrExit)
}

// CleanUp visits every module in reverse registration order and joins their failures.
func (a *App) CleanUp() error {
	var errs []error
	for i := len(a.modules) - 1; i >= 0; i-- {
		m := a.modules[i]
		if err := m.CleanUp(a.ctx); err != nil {
			log.Printf("Warning: cleanup %s failed: %v", m.Name(), err)
			errs = append(errs, fmt.Errorf("cleanup %s: %w", m.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Run performs Awake, Start, the frame loop and CleanUp.
func (a *App) Run(doc *config.Document) error {
	runErr := a.Awake(doc)
	if runErr == nil {
		runErr = a.Start()
	}
	if runErr == nil {
		runErr = a.loop()
	}
	if runErr != nil {
		log.Printf("App failure: %v", runErr)
	}
	return errors.Join(runErr, a.CleanUp())
}

func (a *App) loop() error {
	for {
		err := a.Step()
		if err == nil {
			continue
		}
		if IsCleanStop(err) {
			log.Printf("Leaving game loop: %v", err)
			return nil
		}
		return err
	}
}

// each runs fn on active modules in order. The active flag is read at
// visit time so a module toggled earlier in the same pass is honoured.
func (a *App) each(phase string, fn func(Module) error) error {
	for _, m := range a.modules {
		if !m.Active() {
			continue
		}
		if err := fn(m); err != nil {
			return fmt.Errorf("%s %s: %w", phase, m.Name(), err)
		}
	}
	return nil
}

func (a *App) prepareUpdate() {
	a.frameCount++
	a.lastSecFrames++

	a.dt = a.frameTime.ReadSec()
	a.frameTime.Start()
}

func (a *App) finishUpdate() {
	// One persistence request per frame; a pending load waits for the next one.
	if a.saveRequest {
		a.saveRequest = false
		if err := a.SaveGame(); err != nil {
			log.Printf("Warning: Could not save game: %v", err)
		}
	} else if a.loadRequest {
		a.loadRequest = false
		if err := a.LoadGame(); err != nil {
			log.Printf("Warning: Could not load game: %v", err)
		}
	}

	if a.lastSecFrameTime.ReadMs() > 1000 {
		a.lastSecFrameTime.Start()
		a.prevLastSecCount = a.lastSecFrames
		a.lastSecFrames = 0
	}

	sinceStartup := a.startupTime.ReadSec()
	lastFrameMs := a.frameTime.ReadMs()

	var averageFps float64
	if sinceStartup > 0 {
		averageFps = float64(a.frameCount) / sinceStartup
	}

	a.stats = FrameStats{
		FrameCount:    a.frameCount,
		LastSecFrames: a.prevLastSecCount,
		AverageFPS:    averageFps,
		LastFrameMs:   lastFrameMs,
		Dt:            a.dt,
		SinceStartup:  sinceStartup,
	}

	if a.ctx.Window != nil {
		a.ctx.Window.SetTitle(fmt.Sprintf(
			"%s | Av.FPS: %.2f Last Frame Ms: %02d Last sec frames: %d Last dt: %.3f Time since startup: %.3f Frame Count: %d",
			a.title, averageFps, lastFrameMs, a.prevLastSecCount, a.dt, sinceStartup, a.frameCount))
	}

	if a.sleep != nil && a.cappedMs > lastFrameMs {
		a.sleep(time.Duration(a.cappedMs-lastFrameMs) * time.Millisecond)
	}
}
