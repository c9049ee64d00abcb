package collision

import (
	"errors"
	"fmt"
	"image"
	"log"
	"sort"

	"github.com/automoto/tilequest/config"
	"github.com/automoto/tilequest/engine"
	"github.com/solarlune/resolv"
)

// ErrFull is returned by Add when every slot is taken
var ErrFull = errors.New("collider table full")

// Listener receives collision callbacks. self is always the listener's own collider.
type Listener interface {
	OnCollision(self, other *Collider)
}

// Collider is an axis-aligned rectangle registered in the Collisions table
type Collider struct {
	Rect     image.Rectangle
	Type     Type
	Listener Listener
	// Data is an owner payload, typically the entity the collider belongs to
	Data any

	index         int
	pendingDelete bool
	object        *resolv.Object
}

// Index is the collider's stable slot number
func (c *Collider) Index() int { return c.index }

// PendingDelete reports whether the collider was removed this frame
func (c *Collider) PendingDelete() bool { return c.pendingDelete }

// Intersects tests c against r
func (c *Collider) Intersects(r image.Rectangle) bool {
	return Intersects(c.Rect, r)
}

type settings struct {
	MaxColliders int `json:"max_colliders"`
	CellSize     int `json:"cell_size"`
	Width        int `json:"width"`
	Height       int `json:"height"`
}

// Collisions is the collider registry module. Colliders live in fixed slots;
// removal only marks them, and slots are reclaimed in PostUpdate so that
// iteration during the frame never sees the table shrink.
type Collisions struct {
	engine.Base

	matrix Matrix
	slots  []*Collider
	free   []int
	space  *resolv.Space

	settings settings
	pairs    [][2]*Collider
}

// New creates the collisions module with the default interaction matrix
func New() *Collisions {
	return &Collisions{Base: engine.NewBase("collisions")}
}

func (c *Collisions) Init() {
	c.matrix = DefaultMatrix()
	c.settings = settings{
		MaxColliders: config.Collision.MaxColliders,
		CellSize:     config.Collision.CellSize,
		Width:        config.Collision.SpaceWidth,
		Height:       config.Collision.SpaceHeight,
	}
}

func (c *Collisions) Awake(ctx *engine.Context, cfg config.Section) error {
	log.Println("Loading Collisions")
	if err := cfg.Decode(&c.settings); err != nil {
		return fmt.Errorf("collisions config: %w", err)
	}
	if c.settings.MaxColliders <= 0 {
		return fmt.Errorf("collisions config: max_colliders must be positive, got %d", c.settings.MaxColliders)
	}
	if c.settings.CellSize <= 0 {
		c.settings.CellSize = config.Collision.CellSize
	}
	c.reset(c.settings.Width, c.settings.Height)
	return nil
}

// Matrix exposes the interaction table for adjustment
func (c *Collisions) Matrix() *Matrix { return &c.matrix }

// Capacity is the fixed slot count
func (c *Collisions) Capacity() int { return len(c.slots) }

// Resize rebuilds the broad-phase space for a new world size, keeping live colliders
func (c *Collisions) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.settings.Width, c.settings.Height = width, height
	space := resolv.NewSpace(width, height, c.settings.CellSize, c.settings.CellSize)
	for _, col := range c.slots {
		if col != nil {
			space.Add(col.object)
		}
	}
	c.space = space
}

func (c *Collisions) reset(width, height int) {
	c.slots = make([]*Collider, c.settings.MaxColliders)
	c.free = c.free[:0]
	for i := len(c.slots) - 1; i >= 0; i-- {
		c.free = append(c.free, i)
	}
	c.space = resolv.NewSpace(width, height, c.settings.CellSize, c.settings.CellSize)
}

// Add registers a collider in the first free slot
func (c *Collisions) Add(rect image.Rectangle, t Type, listener Listener) (*Collider, error) {
	if c.slots == nil {
		c.reset(c.settings.Width, c.settings.Height)
	}
	if len(c.free) == 0 {
		return nil, fmt.Errorf("%w (%d slots)", ErrFull, len(c.slots))
	}
	index := c.free[len(c.free)-1]
	c.free = c.free[:len(c.free)-1]

	col := &Collider{Rect: rect, Type: t, Listener: listener, index: index}
	col.object = resolv.NewObject(
		float64(rect.Min.X), float64(rect.Min.Y),
		float64(rect.Dx()), float64(rect.Dy()),
		t.String(),
	)
	col.object.Data = col
	c.space.Add(col.object)
	c.slots[index] = col
	return col, nil
}

// SetRect moves a collider and refreshes its broad-phase cells
func (c *Collisions) SetRect(col *Collider, rect image.Rectangle) {
	col.Rect = rect
	col.object.X = float64(rect.Min.X)
	col.object.Y = float64(rect.Min.Y)
	col.object.W = float64(rect.Dx())
	col.object.H = float64(rect.Dy())
	col.object.Update()
}

// Remove marks the collider; it is reclaimed at the end of the frame
func (c *Collisions) Remove(col *Collider) {
	if col != nil {
		col.pendingDelete = true
	}
}

// Get returns the live collider at a slot index
func (c *Collisions) Get(index int) (*Collider, bool) {
	if index < 0 || index >= len(c.slots) || c.slots[index] == nil {
		return nil, false
	}
	return c.slots[index], true
}

// Count returns the number of occupied slots, pending ones included
func (c *Collisions) Count() int {
	return len(c.slots) - len(c.free)
}

// Overlapping returns live colliders intersecting rect whose type is in types (any type when empty)
func (c *Collisions) Overlapping(rect image.Rectangle, types ...Type) []*Collider {
	var found []*Collider
	for _, col := range c.slots {
		if col == nil || col.pendingDelete || !col.Intersects(rect) {
			continue
		}
		if len(types) == 0 || containsType(types, col.Type) {
			found = append(found, col)
		}
	}
	return found
}

func (c *Collisions) PreUpdate(ctx *engine.Context) error {
	for _, pair := range c.Pairs() {
		a, b := pair[0], pair[1]
		// A listener may remove colliders; later pairs must not see them.
		if a.pendingDelete || b.pendingDelete {
			continue
		}
		if a.Listener != nil {
			a.Listener.OnCollision(a, b)
		}
		if b.Listener != nil && !b.pendingDelete && !a.pendingDelete {
			b.Listener.OnCollision(b, a)
		}
	}
	return nil
}

// Pairs returns every interacting, overlapping pair once, ordered by slot index
func (c *Collisions) Pairs() [][2]*Collider {
	c.pairs = c.pairs[:0]
	for _, a := range c.slots {
		if a == nil || a.pendingDelete {
			continue
		}
		check := a.object.Check(0, 0)
		if check == nil {
			continue
		}
		candidates := make([]*Collider, 0, len(check.Objects))
		for _, obj := range check.Objects {
			b, ok := obj.Data.(*Collider)
			if !ok || b.index <= a.index || b.pendingDelete {
				continue
			}
			candidates = append(candidates, b)
		}
		sort.Slice(candidates, func(i, j int) bool {
			return candidates[i].index < candidates[j].index
		})
		for _, b := range candidates {
			if !c.matrix.Interacts(a.Type, b.Type) || !Intersects(a.Rect, b.Rect) {
				continue
			}
			c.pairs = append(c.pairs, [2]*Collider{a, b})
		}
	}
	return c.pairs
}

// PostUpdate reclaims colliders removed during the frame
func (c *Collisions) PostUpdate(ctx *engine.Context) error {
	c.Reclaim()
	return nil
}

// Reclaim frees the slots of pending colliders
func (c *Collisions) Reclaim() {
	for i, col := range c.slots {
		if col == nil || !col.pendingDelete {
			continue
		}
		c.space.Remove(col.object)
		c.slots[i] = nil
		c.free = append(c.free, i)
	}
}

func (c *Collisions) CleanUp(ctx *engine.Context) error {
	log.Println("Freeing all colliders")
	for i, col := range c.slots {
		if col == nil {
			continue
		}
		c.space.Remove(col.object)
		c.slots[i] = nil
	}
	c.free = c.free[:0]
	for i := len(c.slots) - 1; i >= 0; i-- {
		c.free = append(c.free, i)
	}
	return nil
}

func containsType(types []Type, t Type) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}
