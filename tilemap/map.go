package tilemap

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log"
	"path"

	"github.com/automoto/tilequest/config"
	"github.com/automoto/tilequest/engine"
	"github.com/automoto/tilequest/physics"
	"github.com/lafriks/go-tiled"
)

var (
	// ErrNotLoaded is returned by queries that need a loaded map
	ErrNotLoaded = errors.New("map not loaded")
	// ErrNoTileset is returned when no tileset covers a gid
	ErrNoTileset = errors.New("no tileset for tile id")
)

type settings struct {
	Folder string `json:"folder"`
}

// Map is the tile map store module. It owns the parsed map and answers
// cell queries. It starts inactive; the scene enables it.
type Map struct {
	engine.Base

	fsys     fs.FS
	settings settings
	textures engine.Textures

	data   MapData
	name   string
	loaded bool
	hidden map[image.Point]bool
}

// New creates the map module reading documents from fsys
func New(fsys fs.FS) *Map {
	return &Map{Base: engine.NewBase("map"), fsys: fsys}
}

func (m *Map) Init() {
	m.SetActive(false)
}

func (m *Map) Awake(ctx *engine.Context, cfg config.Section) error {
	log.Println("Loading Map Parser")
	if err := cfg.Decode(&m.settings); err != nil {
		return fmt.Errorf("map config: %w", err)
	}
	if ctx != nil {
		m.textures = ctx.Textures
	}
	return nil
}

// Folder is the directory map names are resolved against
func (m *Map) Folder() string { return m.settings.Folder }

// SetFolder overrides the configured folder
func (m *Map) SetFolder(folder string) { m.settings.Folder = folder }

// SetTextures sets the collaborator tileset images are loaded through
func (m *Map) SetTextures(t engine.Textures) { m.textures = t }

// Loaded reports whether a map is available to queries
func (m *Map) Loaded() bool { return m.loaded }

// MapName is the name passed to the last successful Load
func (m *Map) MapName() string {
	if !m.loaded {
		return ""
	}
	return m.name
}

// Data exposes the parsed map. It is nil until a load succeeds.
func (m *Map) Data() *MapData {
	if !m.loaded {
		return nil
	}
	return &m.data
}

// Load parses folder/name. On failure the previously loaded map, if any, stays in place.
func (m *Map) Load(name string) error {
	if m.fsys == nil {
		return errors.New("map: no filesystem")
	}
	file := path.Join(m.settings.Folder, name)

	doc, err := tiled.LoadFile(file, tiled.WithFileSystem(m.fsys))
	if err != nil {
		log.Printf("Could not load map file %s: %v", file, err)
		return fmt.Errorf("load TMX %s: %w", file, err)
	}

	data, err := m.build(doc)
	if err != nil {
		log.Printf("Could not load map file %s: %v", file, err)
		return fmt.Errorf("load TMX %s: %w", file, err)
	}

	m.data = data
	m.name = name
	m.loaded = true
	m.hidden = nil
	m.logInfo()
	return nil
}

func (m *Map) build(doc *tiled.Map) (MapData, error) {
	data := MapData{
		Width:       doc.Width,
		Height:      doc.Height,
		TileWidth:   doc.TileWidth,
		TileHeight:  doc.TileHeight,
		Orientation: parseOrientation(doc.Orientation),
	}
	if data.TileWidth <= 0 || data.TileHeight <= 0 {
		return MapData{}, fmt.Errorf("invalid tile size %dx%d", data.TileWidth, data.TileHeight)
	}

	for _, src := range doc.Tilesets {
		ts, err := m.loadTileSet(src)
		if err != nil {
			return MapData{}, err
		}
		data.TileSets = append(data.TileSets, ts)
	}

	for _, src := range doc.Layers {
		layer, err := loadLayer(src, data.Width, data.Height)
		if err != nil {
			return MapData{}, err
		}
		data.Layers = append(data.Layers, layer)
	}

	for _, og := range doc.ObjectGroups {
		for _, o := range og.Objects {
			obj := Object{
				Group:  og.Name,
				Name:   o.Name,
				Class:  o.Class,
				X:      o.X,
				Y:      o.Y,
				Width:  o.Width,
				Height: o.Height,
			}
			if len(o.Properties) > 0 {
				obj.Properties = make(map[string]string, len(o.Properties))
				for _, p := range o.Properties {
					obj.Properties[p.Name] = p.Value
				}
			}
			data.Objects = append(data.Objects, obj)
		}
	}

	return data, nil
}

func (m *Map) loadTileSet(src *tiled.Tileset) (*TileSet, error) {
	ts := &TileSet{
		Name:       src.Name,
		FirstGID:   src.FirstGID,
		TileWidth:  src.TileWidth,
		TileHeight: src.TileHeight,
		Margin:     src.Margin,
		Spacing:    src.Spacing,
		tiles:      make(map[uint32]Properties),
	}
	if ts.TileWidth <= 0 || ts.TileHeight <= 0 {
		return nil, fmt.Errorf("tileset %q: invalid tile size %dx%d", ts.Name, ts.TileWidth, ts.TileHeight)
	}

	for _, tile := range src.Tiles {
		if props := convertProperties(tile.Properties); props != nil {
			ts.tiles[tile.ID] = props
		}
	}

	if src.Image == nil || src.Image.Source == "" {
		return nil, fmt.Errorf("tileset %q: missing image", ts.Name)
	}
	ts.ImageSource = src.GetFileFullPath(src.Image.Source)
	ts.TexWidth, ts.TexHeight = src.Image.Width, src.Image.Height

	if m.textures != nil {
		tex, err := m.textures.Load(ts.ImageSource)
		if err != nil {
			return nil, fmt.Errorf("tileset %q: %w", ts.Name, err)
		}
		ts.Texture = tex
		if w, h := m.textures.Size(tex); w > 0 && h > 0 {
			ts.TexWidth, ts.TexHeight = w, h
		}
	}

	ts.Columns = (ts.TexWidth - 2*ts.Margin + ts.Spacing) / (ts.TileWidth + ts.Spacing)
	ts.Rows = (ts.TexHeight - 2*ts.Margin + ts.Spacing) / (ts.TileHeight + ts.Spacing)
	if ts.Columns <= 0 || ts.Rows <= 0 {
		return nil, fmt.Errorf("tileset %q: image %dx%d smaller than one tile", ts.Name, ts.TexWidth, ts.TexHeight)
	}
	return ts, nil
}

func loadLayer(src *tiled.Layer, width, height int) (*Layer, error) {
	layer := &Layer{
		Name:       src.Name,
		Width:      width,
		Height:     height,
		Data:       make([]uint32, width*height),
		Properties: convertProperties(src.Properties),
	}
	if len(src.Tiles) != len(layer.Data) {
		return nil, fmt.Errorf("layer %q: expected %d cells, got %d", src.Name, len(layer.Data), len(src.Tiles))
	}
	for i, tile := range src.Tiles {
		if tile == nil || tile.IsNil() || tile.Tileset == nil {
			continue
		}
		layer.Data[i] = tile.Tileset.FirstGID + tile.ID
	}
	return layer, nil
}

func (m *Map) logInfo() {
	log.Printf("Successfully parsed map %s: %dx%d tiles of %dx%d (%s)",
		m.name, m.data.Width, m.data.Height, m.data.TileWidth, m.data.TileHeight, m.data.Orientation)
	for _, ts := range m.data.TileSets {
		log.Printf("Tileset %q firstgid: %d tile: %dx%d margin: %d spacing: %d sheet: %dx%d (%d columns, %d rows)",
			ts.Name, ts.FirstGID, ts.TileWidth, ts.TileHeight, ts.Margin, ts.Spacing,
			ts.TexWidth, ts.TexHeight, ts.Columns, ts.Rows)
	}
	for _, l := range m.data.Layers {
		log.Printf("Layer %q %dx%d drawable: %t", l.Name, l.Width, l.Height, l.Drawable())
	}
	if len(m.data.Objects) > 0 {
		log.Printf("Objects: %d", len(m.data.Objects))
	}
}

// MapToWorld converts a cell to the world position of its top-left corner
func (m *Map) MapToWorld(x, y int) (int, int) {
	return x * m.data.TileWidth, y * m.data.TileHeight
}

// WorldToMap converts a world position to the cell containing it
func (m *Map) WorldToMap(x, y int) (int, int) {
	if m.data.TileWidth <= 0 || m.data.TileHeight <= 0 {
		return 0, 0
	}
	return physics.FloorDiv(x, m.data.TileWidth), physics.FloorDiv(y, m.data.TileHeight)
}

// WorldSize is the map extent in pixels
func (m *Map) WorldSize() (int, int, error) {
	if !m.loaded {
		return 0, 0, ErrNotLoaded
	}
	return m.data.Width * m.data.TileWidth, m.data.Height * m.data.TileHeight, nil
}

// TilesetFromTileID finds the tileset with the greatest firstgid not above gid
func (m *Map) TilesetFromTileID(gid uint32) (*TileSet, error) {
	sets := m.data.TileSets
	for i := len(sets) - 1; i >= 0; i-- {
		if sets[i].FirstGID <= gid {
			return sets[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrNoTileset, gid)
}

// TileProperty looks up a named property of the tile at a cell. Layers are
// searched in document order and the first tile carrying the property wins.
// Missing tiles, missing properties and cells outside the map return def.
func (m *Map) TileProperty(x, y int, name string, def int) int {
	if !m.loaded || m.hidden[image.Pt(x, y)] {
		return def
	}
	for _, layer := range m.data.Layers {
		gid := layer.Get(x, y)
		if gid == 0 {
			continue
		}
		ts, err := m.TilesetFromTileID(gid)
		if err != nil {
			continue
		}
		if v, ok := ts.TileProperties(gid - ts.FirstGID)[name]; ok {
			return v
		}
	}
	return def
}

// SetHidden removes a cell from drawing and property queries, or restores it.
// Collected pickups placed as tiles are hidden this way; a new Load clears the set.
func (m *Map) SetHidden(x, y int, hidden bool) {
	if !hidden {
		delete(m.hidden, image.Pt(x, y))
		return
	}
	if m.hidden == nil {
		m.hidden = make(map[image.Point]bool)
	}
	m.hidden[image.Pt(x, y)] = true
}

// Hidden reports whether SetHidden removed the cell
func (m *Map) Hidden(x, y int) bool { return m.hidden[image.Pt(x, y)] }

// Cells calls fn for every non-empty cell whose tile has the named property
func (m *Map) Cells(name string, fn func(x, y, value int)) {
	if !m.loaded {
		return
	}
	for y := 0; y < m.data.Height; y++ {
		for x := 0; x < m.data.Width; x++ {
			if v := m.TileProperty(x, y, name, -1); v != -1 {
				fn(x, y, v)
			}
		}
	}
}

// Draw emits one texture draw per non-empty cell of every drawable layer
func (m *Map) Draw(r engine.Renderer) {
	if !m.loaded || r == nil {
		return
	}
	for _, layer := range m.data.Layers {
		if !layer.Drawable() {
			continue
		}
		for y := 0; y < layer.Height; y++ {
			for x := 0; x < layer.Width; x++ {
				gid := layer.Get(x, y)
				if gid == 0 || m.hidden[image.Pt(x, y)] {
					continue
				}
				ts, err := m.TilesetFromTileID(gid)
				if err != nil {
					continue
				}
				wx, wy := m.MapToWorld(x, y)
				r.DrawTexture(ts.Texture, wx, wy, ts.TileRect(gid))
			}
		}
	}
}

// CleanUp drops the parsed map. Safe to call when nothing is loaded.
func (m *Map) CleanUp(ctx *engine.Context) error {
	if m.loaded {
		log.Printf("Unloading map %s", m.name)
	}
	m.data = MapData{}
	m.name = ""
	m.loaded = false
	m.hidden = nil
	return nil
}
