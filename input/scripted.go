package input

import "github.com/automoto/tilequest/config"

// Scripted is a Source driven by code: tests press and release actions
// directly, and headless runs close after a fixed number of polls.
type Scripted struct {
	pressed [config.ActionCount]bool
	closed  bool

	// CloseAfter closes the window once this many polls happened, 0 disables it
	CloseAfter int
	polls      int
}

func (s *Scripted) Press(ids ...config.ActionID) {
	for _, id := range ids {
		s.pressed[id] = true
	}
}

func (s *Scripted) Release(ids ...config.ActionID) {
	for _, id := range ids {
		s.pressed[id] = false
	}
}

// Close reports a window-close on the next poll
func (s *Scripted) Close() { s.closed = true }

func (s *Scripted) Pressed(id config.ActionID) bool {
	return s.pressed[id]
}

// CloseRequested is called once per poll, after every Pressed query
func (s *Scripted) CloseRequested() bool {
	s.polls++
	if s.CloseAfter > 0 && s.polls >= s.CloseAfter {
		s.closed = true
	}
	return s.closed
}
