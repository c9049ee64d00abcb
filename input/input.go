package input

import (
	"log"

	"github.com/automoto/tilequest/config"
	"github.com/automoto/tilequest/engine"
)

// KeyState is the per-frame state of one action
type KeyState int

const (
	Idle   KeyState = iota // not held
	Down                   // pressed this frame
	Repeat                 // held since an earlier frame
	Up                     // released this frame
)

// Source reports raw device state. The ebiten driver polls keyboard and
// gamepads; tests use Scripted.
type Source interface {
	Pressed(action config.ActionID) bool
	CloseRequested() bool
}

// Input is the input module. PreUpdate samples the Source once per frame
// so every later module sees the same states.
type Input struct {
	engine.Base

	source Source
	states [config.ActionCount]KeyState
	quit   bool
}

// New creates the input module over source
func New(source Source) *Input {
	return &Input{Base: engine.NewBase("input"), source: source}
}

func (in *Input) Awake(ctx *engine.Context, cfg config.Section) error {
	log.Println("Init input event system")
	return nil
}

func (in *Input) PreUpdate(ctx *engine.Context) error {
	in.Poll()
	return nil
}

// Poll advances every action one frame
func (in *Input) Poll() {
	if in.source == nil {
		return
	}
	for id := config.ActionID(0); id < config.ActionCount; id++ {
		in.states[id] = next(in.states[id], in.source.Pressed(id))
	}
	if in.source.CloseRequested() {
		in.quit = true
	}
}

func next(prev KeyState, pressed bool) KeyState {
	if pressed {
		if prev == Idle || prev == Up {
			return Down
		}
		return Repeat
	}
	if prev == Down || prev == Repeat {
		return Up
	}
	return Idle
}

// State returns the current state of an action
func (in *Input) State(id config.ActionID) KeyState {
	if id < 0 || id >= config.ActionCount {
		return Idle
	}
	return in.states[id]
}

// JustPressed is true only on the frame the action went down
func (in *Input) JustPressed(id config.ActionID) bool {
	return in.State(id) == Down
}

// Held is true while the action is down, including the first frame
func (in *Input) Held(id config.ActionID) bool {
	s := in.State(id)
	return s == Down || s == Repeat
}

// JustReleased is true only on the frame the action went up
func (in *Input) JustReleased(id config.ActionID) bool {
	return in.State(id) == Up
}

// QuitRequested implements engine.QuitSource
func (in *Input) QuitRequested() bool {
	return in.quit
}

// RequestQuit marks the window as closing, as if the source had reported it
func (in *Input) RequestQuit() {
	in.quit = true
}

func (in *Input) CleanUp(ctx *engine.Context) error {
	log.Println("Quitting input event subsystem")
	in.states = [config.ActionCount]KeyState{}
	return nil
}
