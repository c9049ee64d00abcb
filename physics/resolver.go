package physics

import (
	"github.com/automoto/tilequest/collision"
	"github.com/automoto/tilequest/config"
)

// TileQuerier answers per-cell property lookups. *tilemap.Map satisfies it.
type TileQuerier interface {
	TileProperty(x, y int, name string, def int) int
}

// Resolver corrects entity motion against the tile grid, one axis at a time.
type Resolver struct {
	Tiles      TileQuerier
	TileSize   int
	ProbeDepth int
}

// NewResolver uses the configured tile size and probe depth
func NewResolver(tiles TileQuerier) *Resolver {
	return &Resolver{
		Tiles:      tiles,
		TileSize:   config.Physics.TileSize,
		ProbeDepth: config.Physics.ProbeDepth,
	}
}

// TypeAt classifies a cell. Cells without a Collider property, and cells
// outside the map, are air.
func (r *Resolver) TypeAt(tx, ty int) collision.Type {
	if r.Tiles == nil {
		return collision.Air
	}
	return collision.Type(r.Tiles.TileProperty(tx, ty, collision.PropertyName, int(collision.Air)))
}

// Resolve moves cur toward next without entering blocking tiles and
// updates body velocity when a solid tile stops it.
//
// The probe direction of each axis comes from the requested displacement.
// goingLeft and the sign of the vertical speed pick the sides checked for
// blocking tiles afterwards.
func (r *Resolver) Resolve(cur *Rect, next Rect, goingLeft bool, body *Body) {
	body.CheckDirection()
	body.OnGround = false

	dx := r.resolveX(*cur, next.X-cur.X)
	cur.X += dx

	dy := r.resolveY(*cur, next.Y-cur.Y)
	cur.Y += dy

	r.postCorrect(cur, dx, dy, goingLeft, body)
}

// resolveX returns the horizontal displacement allowed for a request of want pixels
func (r *Resolver) resolveX(cur Rect, want int) int {
	ts := r.TileSize
	top, bottom := FloorDiv(cur.Y, ts), FloorDiv(cur.Y+cur.H-1, ts)
	passable := func(tx int) bool {
		for ty := top; ty <= bottom; ty++ {
			if !r.TypeAt(tx, ty).Passable() {
				return false
			}
		}
		return true
	}

	switch {
	case want > 0:
		edge := cur.X + cur.W
		tx := FloorDiv(edge, ts)
		i := r.probe(func(i int) bool { return passable(tx + i) })
		return min(want, max((tx+i)*ts-edge, 0))
	case want < 0:
		edge := cur.X
		tx := FloorDiv(edge-1, ts)
		i := r.probe(func(i int) bool { return passable(tx - i) })
		return -min(-want, max(edge-(tx-i+1)*ts, 0))
	}
	return 0
}

// resolveY returns the vertical displacement allowed for a request of want pixels
func (r *Resolver) resolveY(cur Rect, want int) int {
	ts := r.TileSize
	left, right := FloorDiv(cur.X, ts), FloorDiv(cur.X+cur.W-1, ts)
	passable := func(ty int) bool {
		for tx := left; tx <= right; tx++ {
			if !r.TypeAt(tx, ty).Passable() {
				return false
			}
		}
		return true
	}

	switch {
	case want > 0:
		edge := cur.Y + cur.H
		ty := FloorDiv(edge, ts)
		i := r.probe(func(i int) bool { return passable(ty + i) })
		return min(want, max((ty+i)*ts-edge, 0))
	case want < 0:
		edge := cur.Y
		ty := FloorDiv(edge-1, ts)
		i := r.probe(func(i int) bool { return passable(ty - i) })
		return -min(-want, max(edge-(ty-i+1)*ts, 0))
	}
	return 0
}

// probe counts consecutive passable cells, stopping at ProbeDepth.
// The returned count is the offset of the first blocking cell, or the depth.
func (r *Resolver) probe(passable func(i int) bool) int {
	i := 0
	for i < r.ProbeDepth && passable(i) {
		i++
	}
	return i
}

// postCorrect stops velocity against solid tiles touching the leading edges
// and undoes an axis that still ended inside a solid tile.
func (r *Resolver) postCorrect(cur *Rect, dx, dy int, goingLeft bool, body *Body) {
	ts := r.TileSize
	rows := [2]int{FloorDiv(cur.Y, ts), FloorDiv(cur.Y+cur.H-1, ts)}
	cols := [2]int{FloorDiv(cur.X, ts), FloorDiv(cur.X+cur.W-1, ts)}

	solidColumn := func(tx int) bool {
		for ty := rows[0]; ty <= rows[1]; ty++ {
			if r.TypeAt(tx, ty) == collision.Solid {
				return true
			}
		}
		return false
	}
	solidRow := func(ty int) bool {
		for tx := cols[0]; tx <= cols[1]; tx++ {
			if r.TypeAt(tx, ty) == collision.Solid {
				return true
			}
		}
		return false
	}

	left := dx < 0 || (dx == 0 && goingLeft)
	inner, ahead := cols[1], FloorDiv(cur.X+cur.W, ts)
	if left {
		inner, ahead = cols[0], FloorDiv(cur.X-1, ts)
	}
	if dx != 0 && solidColumn(inner) {
		cur.X -= dx
		body.Speed.X = 0
	} else if solidColumn(ahead) && movingToward(body.Speed.X, left) {
		body.Speed.X = 0
	}

	// Column span may have changed if X was undone
	cols = [2]int{FloorDiv(cur.X, ts), FloorDiv(cur.X+cur.W-1, ts)}

	falling := dy > 0 || (dy == 0 && body.PositiveSpeedY)
	inner, ahead = rows[1], FloorDiv(cur.Y+cur.H, ts)
	if !falling {
		inner, ahead = rows[0], FloorDiv(cur.Y-1, ts)
	}
	if dy != 0 && solidRow(inner) {
		cur.Y -= dy
		body.Speed.Y = 0
	} else if solidRow(ahead) {
		body.Speed.Y = 0
	}
	if falling && solidRow(FloorDiv(cur.Y+cur.H, ts)) {
		body.OnGround = true
	}
}

func movingToward(speed float64, left bool) bool {
	if left {
		return speed < 0
	}
	return speed > 0
}

// FloorDiv rounds toward negative infinity so cells left of and above the origin resolve correctly
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
