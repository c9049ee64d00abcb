package collision

import (
	"errors"
	"image"
	"testing"

	"github.com/automoto/tilequest/config"
)

type hit struct{ self, other int }

type recordingListener struct {
	hits []hit
	// onHit runs after recording, used to remove colliders mid-pass
	onHit func(self, other *Collider)
}

func (l *recordingListener) OnCollision(self, other *Collider) {
	l.hits = append(l.hits, hit{self.Index(), other.Index()})
	if l.onHit != nil {
		l.onHit(self, other)
	}
}

func newTestCollisions(t *testing.T, max int) *Collisions {
	t.Helper()
	c := New()
	c.Init()
	section, err := config.NewSection(map[string]int{"max_colliders": max, "width": 1024, "height": 1024})
	if err != nil {
		t.Fatalf("NewSection failed: %v", err)
	}
	if err := c.Awake(nil, section); err != nil {
		t.Fatalf("Awake failed: %v", err)
	}
	return c
}

func rect(x, y, w, h int) image.Rectangle {
	return image.Rect(x, y, x+w, y+h)
}

func TestIntersectsEdgesDoNotOverlap(t *testing.T) {
	a := rect(0, 0, 64, 64)
	if Intersects(a, rect(64, 0, 64, 64)) {
		t.Error("Touching rectangles should not intersect")
	}
	if !Intersects(a, rect(63, 63, 10, 10)) {
		t.Error("Expected one pixel overlap to intersect")
	}
}

func TestMatrixRequiresBothDirections(t *testing.T) {
	var m Matrix
	m.Set(Player, Coin, true)
	if m.Interacts(Player, Coin) {
		t.Error("One-sided entry should not interact")
	}
	m.Set(Coin, Player, true)
	if !m.Interacts(Player, Coin) || !m.Interacts(Coin, Player) {
		t.Error("Expected interaction once both entries are set")
	}
	if m.Interacts(None, Player) {
		t.Error("None never interacts")
	}
}

func TestAddFailsWhenFull(t *testing.T) {
	c := newTestCollisions(t, 2)
	for i := 0; i < 2; i++ {
		if _, err := c.Add(rect(0, 0, 10, 10), Coin, nil); err != nil {
			t.Fatalf("Add %d failed: %v", i, err)
		}
	}
	if _, err := c.Add(rect(0, 0, 10, 10), Coin, nil); !errors.Is(err, ErrFull) {
		t.Fatalf("Expected ErrFull, got %v", err)
	}
}

func TestListenersReceiveSelfFirst(t *testing.T) {
	c := newTestCollisions(t, 10)
	playerListener := &recordingListener{}
	coinListener := &recordingListener{}

	player, _ := c.Add(rect(0, 0, 64, 64), Player, playerListener)
	coin, _ := c.Add(rect(32, 32, 64, 64), Coin, coinListener)

	if err := c.PreUpdate(nil); err != nil {
		t.Fatalf("PreUpdate failed: %v", err)
	}

	if len(playerListener.hits) != 1 || playerListener.hits[0] != (hit{player.Index(), coin.Index()}) {
		t.Errorf("Unexpected player hits %v", playerListener.hits)
	}
	if len(coinListener.hits) != 1 || coinListener.hits[0] != (hit{coin.Index(), player.Index()}) {
		t.Errorf("Unexpected coin hits %v", coinListener.hits)
	}
}

func TestDisallowedPairsAreIgnored(t *testing.T) {
	c := newTestCollisions(t, 10)
	l := &recordingListener{}
	c.Add(rect(0, 0, 64, 64), Coin, l)
	c.Add(rect(0, 0, 64, 64), Coin, l)
	c.Add(rect(0, 0, 64, 64), Solid, l)

	c.PreUpdate(nil)
	if len(l.hits) != 0 {
		t.Errorf("Expected no callbacks, got %v", l.hits)
	}
}

func TestRemovedColliderIsReclaimedAfterFrame(t *testing.T) {
	c := newTestCollisions(t, 1)
	playerListener := &recordingListener{}
	player, _ := c.Add(rect(0, 0, 64, 64), Player, playerListener)
	if got, ok := c.Get(player.Index()); !ok || got != player {
		t.Fatalf("Expected slot %d to hold the player", player.Index())
	}
	c.Remove(player)

	// Slot is still held until PostUpdate
	if _, err := c.Add(rect(0, 0, 1, 1), Coin, nil); !errors.Is(err, ErrFull) {
		t.Fatalf("Expected slot to stay occupied before reclaim, got %v", err)
	}

	c.PreUpdate(nil)
	if len(playerListener.hits) != 0 {
		t.Errorf("Pending collider should be skipped, got %v", playerListener.hits)
	}

	c.PostUpdate(nil)
	if c.Count() != 0 {
		t.Fatalf("Expected empty table after reclaim, got %d", c.Count())
	}
	if _, ok := c.Get(player.Index()); ok {
		t.Error("Expected the reclaimed slot to be empty")
	}
	if _, err := c.Add(rect(0, 0, 1, 1), Coin, nil); err != nil {
		t.Errorf("Expected reclaimed slot to be reusable, got %v", err)
	}
}

func TestRemovalDuringCallbacksSkipsLaterPairs(t *testing.T) {
	c := newTestCollisions(t, 10)
	playerListener := &recordingListener{}
	player, _ := c.Add(rect(0, 0, 64, 64), Player, playerListener)
	c.Add(rect(10, 10, 16, 16), Coin, nil)
	c.Add(rect(20, 20, 16, 16), Coin, nil)

	playerListener.onHit = func(self, other *Collider) {
		c.Remove(self)
	}
	c.PreUpdate(nil)

	if len(playerListener.hits) != 1 {
		t.Errorf("Expected one callback before the player was removed, got %v", playerListener.hits)
	}
	if !player.PendingDelete() {
		t.Error("Expected player to be pending delete")
	}
}

func TestSetRectMovesCollider(t *testing.T) {
	c := newTestCollisions(t, 10)
	l := &recordingListener{}
	player, _ := c.Add(rect(0, 0, 64, 64), Player, l)
	c.Add(rect(500, 500, 64, 64), Coin, nil)

	c.PreUpdate(nil)
	if len(l.hits) != 0 {
		t.Fatalf("Expected no overlap before move, got %v", l.hits)
	}

	c.SetRect(player, rect(480, 480, 64, 64))
	c.PreUpdate(nil)
	if len(l.hits) != 1 {
		t.Errorf("Expected overlap after move, got %v", l.hits)
	}
}

func TestOverlappingFiltersTypes(t *testing.T) {
	c := newTestCollisions(t, 10)
	c.Add(rect(0, 0, 64, 64), Coin, nil)
	c.Add(rect(0, 0, 64, 64), Pain, nil)

	if got := c.Overlapping(rect(10, 10, 5, 5), Coin); len(got) != 1 || got[0].Type != Coin {
		t.Errorf("Expected one coin, got %v", got)
	}
	if got := c.Overlapping(rect(10, 10, 5, 5)); len(got) != 2 {
		t.Errorf("Expected two colliders, got %d", len(got))
	}
}

func TestCleanUpFreesEverything(t *testing.T) {
	c := newTestCollisions(t, 3)
	c.Add(rect(0, 0, 1, 1), Coin, nil)
	c.Add(rect(0, 0, 1, 1), Coin, nil)
	if err := c.CleanUp(nil); err != nil {
		t.Fatalf("CleanUp failed: %v", err)
	}
	if c.Count() != 0 {
		t.Errorf("Expected 0 colliders after cleanup, got %d", c.Count())
	}
	if c.Capacity() != 3 {
		t.Errorf("Expected capacity 3, got %d", c.Capacity())
	}
}
