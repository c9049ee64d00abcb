package tilemap

import (
	"image"
	"strconv"

	"github.com/automoto/tilequest/engine"
	"github.com/lafriks/go-tiled"
)

// Orientation of the map grid. Only orthogonal maps are projected; the
// others are parsed and drawn as if they were orthogonal.
type Orientation int

const (
	Unknown Orientation = iota
	Orthogonal
	Isometric
	Staggered
)

func parseOrientation(s string) Orientation {
	switch s {
	case "orthogonal":
		return Orthogonal
	case "isometric":
		return Isometric
	case "staggered":
		return Staggered
	}
	return Unknown
}

func (o Orientation) String() string {
	switch o {
	case Orthogonal:
		return "orthogonal"
	case Isometric:
		return "isometric"
	case Staggered:
		return "staggered"
	}
	return "unknown"
}

// Properties holds the integer-valued properties of a tile or layer.
// Boolean Tiled properties are stored as 0 or 1.
type Properties map[string]int

// Get returns the named value, or def when it is absent
func (p Properties) Get(name string, def int) int {
	if v, ok := p[name]; ok {
		return v
	}
	return def
}

func convertProperties(props tiled.Properties) Properties {
	if len(props) == 0 {
		return nil
	}
	out := make(Properties, len(props))
	for _, prop := range props {
		if v, err := strconv.Atoi(prop.Value); err == nil {
			out[prop.Name] = v
			continue
		}
		if b, err := strconv.ParseBool(prop.Value); err == nil {
			if b {
				out[prop.Name] = 1
			} else {
				out[prop.Name] = 0
			}
		}
	}
	return out
}

// TileSet is one image sheet and the gid range it covers
type TileSet struct {
	Name       string
	FirstGID   uint32
	TileWidth  int
	TileHeight int
	Margin     int
	Spacing    int

	ImageSource string
	Texture     engine.Texture
	TexWidth    int
	TexHeight   int
	Columns     int
	Rows        int

	tiles map[uint32]Properties
}

// TileProperties returns the properties of a tile by local id
func (ts *TileSet) TileProperties(localID uint32) Properties {
	return ts.tiles[localID]
}

// TileRect is the source rectangle of gid inside the sheet
func (ts *TileSet) TileRect(gid uint32) image.Rectangle {
	local := int(gid - ts.FirstGID)
	cols := max(ts.Columns, 1)
	x := ts.Margin + (ts.TileWidth+ts.Spacing)*(local%cols)
	y := ts.Margin + (ts.TileHeight+ts.Spacing)*(local/cols)
	return image.Rect(x, y, x+ts.TileWidth, y+ts.TileHeight)
}

// Layer is one grid of global tile ids, 0 meaning empty
type Layer struct {
	Name       string
	Width      int
	Height     int
	Data       []uint32
	Properties Properties
}

// Get returns the gid at a cell, 0 when empty or out of bounds
func (l *Layer) Get(x, y int) uint32 {
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return 0
	}
	return l.Data[y*l.Width+x]
}

// Drawable reports the layer's "Drawable" property, true when unset
func (l *Layer) Drawable() bool {
	return l.Properties.Get("Drawable", 1) != 0
}

// Object is a placed object from an object group (spawn points, zones)
type Object struct {
	Group      string
	Name       string
	Class      string
	X, Y       float64
	Width      float64
	Height     float64
	Properties map[string]string
}

// MapData is everything parsed from a map document
type MapData struct {
	Width       int
	Height      int
	TileWidth   int
	TileHeight  int
	Orientation Orientation

	TileSets []*TileSet
	Layers   []*Layer
	Objects  []Object
}

// ObjectsIn returns the objects of one object group in document order
func (d *MapData) ObjectsIn(group string) []Object {
	var out []Object
	for _, o := range d.Objects {
		if o.Group == group {
			out = append(out, o)
		}
	}
	return out
}
