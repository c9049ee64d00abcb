package engine

import (
	"sync"
	"time"
)

// ManualClock is a Clock advanced by hand, for tests and headless replays
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock starts at an arbitrary fixed instant
func NewManualClock() *ManualClock {
	return &ManualClock{now: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// MemoryStore is an in-memory SaveStore
type MemoryStore struct {
	Items map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{Items: make(map[string][]byte)}
}

func (s *MemoryStore) LoadItem(itemKey string) ([]byte, error) {
	return s.Items[itemKey], nil
}

func (s *MemoryStore) SaveItem(itemKey string, data []byte) error {
	s.Items[itemKey] = append([]byte(nil), data...)
	return nil
}
