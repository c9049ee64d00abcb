package collision

import "image"

// Type classifies what a collider or tile means for gameplay.
// The integer values are the ones stored in the TMX "Collider" tile property.
type Type int

const (
	None Type = iota - 1
	Air
	Solid
	Pain
	Coin
	Box
	Checkpoint
	Player
	Enemy
	Attack
	TypeCount // Must be last - used for matrix sizing
)

// PropertyName is the tile property holding a Type value
const PropertyName = "Collider"

var typeNames = [...]string{"air", "solid", "pain", "coin", "box", "checkpoint", "player", "enemy", "attack"}

func (t Type) String() string {
	if t < 0 || t >= TypeCount {
		return "none"
	}
	return typeNames[t]
}

// Passable reports whether a tile of this type lets a probe continue through it
func (t Type) Passable() bool {
	return t == Air || t == Box || t == Checkpoint
}

// Matrix declares which pairs of types may interact. Everything starts disallowed.
type Matrix [TypeCount][TypeCount]bool

// Allow enables a <-> b in both directions
func (m *Matrix) Allow(a, b Type) {
	m[a][b] = true
	m[b][a] = true
}

// Set changes a single directed entry
func (m *Matrix) Set(a, b Type, allowed bool) {
	m[a][b] = allowed
}

// Interacts reports whether both directed entries allow the pair
func (m *Matrix) Interacts(a, b Type) bool {
	if a < 0 || b < 0 || a >= TypeCount || b >= TypeCount {
		return false
	}
	return m[a][b] && m[b][a]
}

// DefaultMatrix is the interaction table used by the game
func DefaultMatrix() Matrix {
	var m Matrix
	m.Allow(Player, Coin)
	m.Allow(Player, Checkpoint)
	m.Allow(Player, Pain)
	m.Allow(Player, Enemy)
	m.Allow(Player, Box)
	m.Allow(Attack, Enemy)
	m.Allow(Attack, Box)
	m.Allow(Enemy, Pain)
	return m
}

// Intersects is the standard axis-aligned overlap test. Touching edges do not overlap.
func Intersects(a, b image.Rectangle) bool {
	return a.Min.X < b.Max.X && b.Min.X < a.Max.X &&
		a.Min.Y < b.Max.Y && b.Min.Y < a.Max.Y
}
