package tilemap

import (
	"errors"
	"image"
	"image/color"
	"path"
	"reflect"
	"testing"
	"testing/fstest"

	"github.com/automoto/tilequest/engine"
)

const levelTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="4" height="3" tilewidth="64" tileheight="64" infinite="0">
 <tileset firstgid="1" name="world" tilewidth="64" tileheight="64" tilecount="49" columns="7">
  <image source="world.png" width="448" height="448"/>
  <tile id="1">
   <properties>
    <property name="Collider" type="int" value="1"/>
   </properties>
  </tile>
 </tileset>
 <tileset firstgid="50" name="hazards" tilewidth="64" tileheight="64" spacing="2" margin="1" tilecount="70" columns="10">
  <image source="hazards.png" width="660" height="462"/>
  <tile id="0">
   <properties>
    <property name="Collider" type="int" value="2"/>
   </properties>
  </tile>
 </tileset>
 <tileset firstgid="120" source="props.tsx"/>
 <layer id="1" name="ground" width="4" height="3">
  <data encoding="csv">
0,0,0,120,
50,0,0,0,
2,2,2,2
</data>
 </layer>
 <layer id="2" name="decor" width="4" height="3">
  <properties>
   <property name="Drawable" type="bool" value="false"/>
  </properties>
  <data encoding="csv">
1,0,0,0,
0,0,0,0,
0,0,0,51
</data>
 </layer>
 <layer id="3" name="collision" width="4" height="3">
  <properties>
   <property name="Drawable" type="int" value="0"/>
  </properties>
  <data encoding="csv">
2,0,0,0,
0,0,0,0,
0,0,0,0
</data>
 </layer>
 <objectgroup id="4" name="PlayerSpawn">
  <object id="1" name="start" x="64" y="64" width="64" height="64"/>
 </objectgroup>
</map>
`

const propsTSX = `<?xml version="1.0" encoding="UTF-8"?>
<tileset version="1.10" name="props" tilewidth="64" tileheight="64" tilecount="4" columns="2">
 <image source="props.png" width="128" height="128"/>
 <tile id="0">
  <properties>
   <property name="Collider" type="int" value="4"/>
  </properties>
 </tile>
</tileset>
`

const noImageTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" width="1" height="1" tilewidth="64" tileheight="64">
 <tileset firstgid="1" name="broken" tilewidth="64" tileheight="64" tilecount="1" columns="1"/>
 <layer id="1" name="ground" width="1" height="1">
  <data encoding="csv">
1
</data>
 </layer>
</map>
`

// fakeTextures hands out one handle per sheet, sized by file name
type fakeTextures struct {
	sizes   map[string]image.Point
	handles map[string]engine.Texture
	loads   int
}

func newFakeTextures() *fakeTextures {
	return &fakeTextures{
		sizes: map[string]image.Point{
			"world.png":   {448, 448},
			"hazards.png": {660, 462},
			"props.png":   {128, 128},
		},
		handles: make(map[string]engine.Texture),
	}
}

func (f *fakeTextures) Load(p string) (engine.Texture, error) {
	f.loads++
	name := path.Base(p)
	if _, ok := f.sizes[name]; !ok {
		return 0, errors.New("no such texture: " + p)
	}
	if tex, ok := f.handles[name]; ok {
		return tex, nil
	}
	tex := engine.Texture(len(f.handles) + 1)
	f.handles[name] = tex
	return tex, nil
}

func (f *fakeTextures) Size(tex engine.Texture) (int, int) {
	for name, h := range f.handles {
		if h == tex {
			s := f.sizes[name]
			return s.X, s.Y
		}
	}
	return 0, 0
}

type drawCall struct {
	tex  engine.Texture
	x, y int
	src  image.Rectangle
}

type recordingRenderer struct {
	calls []drawCall
}

func (r *recordingRenderer) DrawTexture(tex engine.Texture, x, y int, src image.Rectangle) {
	r.calls = append(r.calls, drawCall{tex, x, y, src})
}
func (r *recordingRenderer) DrawRect(rect image.Rectangle, c color.Color, filled bool) {}
func (r *recordingRenderer) DrawText(s string, x, y int, c color.Color)                {}
func (r *recordingRenderer) FillScreen(c color.Color)                                  {}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"maps/level1.tmx":  {Data: []byte(levelTMX)},
		"maps/props.tsx":   {Data: []byte(propsTSX)},
		"maps/noimage.tmx": {Data: []byte(noImageTMX)},
	}
}

func loadTestMap(t *testing.T) (*Map, *fakeTextures) {
	t.Helper()
	m := New(testFS())
	m.Init()
	m.SetFolder("maps")
	textures := newFakeTextures()
	m.SetTextures(textures)
	if err := m.Load("level1.tmx"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return m, textures
}

func TestMapStartsInactive(t *testing.T) {
	m := New(testFS())
	m.Init()
	if m.Active() {
		t.Error("Map module should start inactive")
	}
	if m.Name() != "map" {
		t.Errorf("Expected module name map, got %q", m.Name())
	}
}

func TestLoadParsesDocument(t *testing.T) {
	m, textures := loadTestMap(t)
	data := m.Data()

	if data.Width != 4 || data.Height != 3 || data.TileWidth != 64 || data.TileHeight != 64 {
		t.Errorf("Unexpected geometry %+v", data)
	}
	if data.Orientation != Orthogonal {
		t.Errorf("Expected orthogonal, got %s", data.Orientation)
	}
	if len(data.TileSets) != 3 || len(data.Layers) != 3 {
		t.Fatalf("Expected 3 tilesets and 3 layers, got %d and %d", len(data.TileSets), len(data.Layers))
	}
	if textures.loads != 3 {
		t.Errorf("Expected one texture load per tileset, got %d", textures.loads)
	}

	hazards := data.TileSets[1]
	if hazards.Columns != 10 || hazards.Rows != 7 {
		t.Errorf("Expected 10x7 hazard sheet, got %dx%d", hazards.Columns, hazards.Rows)
	}
	props := data.TileSets[2]
	if props.Name != "props" || props.FirstGID != 120 || props.Columns != 2 {
		t.Errorf("Unexpected external tileset %+v", props)
	}

	ground := data.Layers[0]
	want := []uint32{0, 0, 0, 120, 50, 0, 0, 0, 2, 2, 2, 2}
	if !reflect.DeepEqual(ground.Data, want) {
		t.Errorf("Expected ground %v, got %v", want, ground.Data)
	}
	if !ground.Drawable() || data.Layers[1].Drawable() || data.Layers[2].Drawable() {
		t.Error("Drawable flags not parsed")
	}

	spawns := data.ObjectsIn("PlayerSpawn")
	if len(spawns) != 1 || spawns[0].X != 64 || spawns[0].Name != "start" {
		t.Errorf("Unexpected spawns %+v", spawns)
	}
}

func TestTilesetFromTileID(t *testing.T) {
	m, _ := loadTestMap(t)

	cases := map[uint32]uint32{1: 1, 49: 1, 50: 50, 75: 50, 119: 50, 120: 120, 500: 120}
	for gid, firstgid := range cases {
		ts, err := m.TilesetFromTileID(gid)
		if err != nil {
			t.Fatalf("TilesetFromTileID(%d) failed: %v", gid, err)
		}
		if ts.FirstGID != firstgid {
			t.Errorf("TilesetFromTileID(%d): expected firstgid %d, got %d", gid, firstgid, ts.FirstGID)
		}
	}

	if _, err := m.TilesetFromTileID(0); !errors.Is(err, ErrNoTileset) {
		t.Errorf("Expected ErrNoTileset for gid 0, got %v", err)
	}
}

func TestMapToWorld(t *testing.T) {
	m, _ := loadTestMap(t)
	if x, y := m.MapToWorld(3, 2); x != 192 || y != 128 {
		t.Errorf("Expected (192,128), got (%d,%d)", x, y)
	}
	if x, y := m.WorldToMap(191, 128); x != 2 || y != 2 {
		t.Errorf("Expected (2,2), got (%d,%d)", x, y)
	}
	if x, y := m.WorldToMap(-1, -65); x != -1 || y != -2 {
		t.Errorf("Expected (-1,-2), got (%d,%d)", x, y)
	}
}

func TestTileProperty(t *testing.T) {
	m, _ := loadTestMap(t)

	if v := m.TileProperty(2, 2, "Collider", 0); v != 1 {
		t.Errorf("Expected solid floor, got %d", v)
	}
	if v := m.TileProperty(0, 1, "Collider", 0); v != 2 {
		t.Errorf("Expected pain tile, got %d", v)
	}
	if v := m.TileProperty(3, 0, "Collider", 0); v != 4 {
		t.Errorf("Expected coin from external tileset, got %d", v)
	}
	// Later layer supplies the property when earlier tiles lack it
	if v := m.TileProperty(0, 0, "Collider", 0); v != 1 {
		t.Errorf("Expected property from collision layer, got %d", v)
	}
	if v := m.TileProperty(1, 1, "Collider", -7); v != -7 {
		t.Errorf("Expected default for empty cell, got %d", v)
	}
	if v := m.TileProperty(3, 2, "Missing", 9); v != 9 {
		t.Errorf("Expected default for missing property, got %d", v)
	}
}

func TestTilePropertyOutOfBoundsReturnsDefault(t *testing.T) {
	m, _ := loadTestMap(t)
	for _, cell := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {-100, 100}, {1 << 20, 1 << 20}} {
		if v := m.TileProperty(cell[0], cell[1], "Collider", 42); v != 42 {
			t.Errorf("TileProperty(%d,%d) = %d, want default", cell[0], cell[1], v)
		}
	}

	empty := New(testFS())
	if v := empty.TileProperty(0, 0, "Collider", 3); v != 3 {
		t.Errorf("Expected default before load, got %d", v)
	}
}

func TestDrawSkipsHiddenLayers(t *testing.T) {
	m, textures := loadTestMap(t)
	r := &recordingRenderer{}
	m.Draw(r)

	if len(r.calls) != 6 {
		t.Fatalf("Expected 6 draw calls from the ground layer, got %d", len(r.calls))
	}

	// Row-major: the first call is the prop at (3,0), then the hazard at (0,1)
	prop := drawCall{textures.handles["props.png"], 192, 0, image.Rect(0, 0, 64, 64)}
	if r.calls[0] != prop {
		t.Errorf("Expected %+v, got %+v", prop, r.calls[0])
	}
	hazard := drawCall{textures.handles["hazards.png"], 0, 64, image.Rect(1, 1, 65, 65)}
	if r.calls[1] != hazard {
		t.Errorf("Expected %+v, got %+v", hazard, r.calls[1])
	}
	floor := drawCall{textures.handles["world.png"], 0, 128, image.Rect(64, 0, 128, 64)}
	if r.calls[2] != floor {
		t.Errorf("Expected %+v, got %+v", floor, r.calls[2])
	}
}

func TestTileRectWithSpacing(t *testing.T) {
	ts := &TileSet{FirstGID: 50, TileWidth: 64, TileHeight: 64, Margin: 1, Spacing: 2, Columns: 10}
	if got := ts.TileRect(50 + 11); got != image.Rect(67, 67, 131, 131) {
		t.Errorf("Unexpected rect %v", got)
	}
}

func TestLoadCleanUpLoadIsIdempotent(t *testing.T) {
	m, _ := loadTestMap(t)
	first := snapshot(m.Data())

	if err := m.CleanUp(nil); err != nil {
		t.Fatalf("CleanUp failed: %v", err)
	}
	if m.Loaded() || m.Data() != nil {
		t.Fatal("Expected map to be unloaded")
	}
	if err := m.Load("level1.tmx"); err != nil {
		t.Fatalf("Second load failed: %v", err)
	}

	if second := snapshot(m.Data()); !reflect.DeepEqual(first, second) {
		t.Errorf("Reload differs:\nfirst  %+v\nsecond %+v", first, second)
	}
}

type mapSnapshot struct {
	tilesets []uint32
	layers   [][]uint32
}

func snapshot(d *MapData) mapSnapshot {
	var s mapSnapshot
	for _, ts := range d.TileSets {
		s.tilesets = append(s.tilesets, ts.FirstGID)
	}
	for _, l := range d.Layers {
		s.layers = append(s.layers, append([]uint32(nil), l.Data...))
	}
	return s
}

func TestLoadFailures(t *testing.T) {
	m := New(testFS())
	m.Init()
	m.SetFolder("maps")
	m.SetTextures(newFakeTextures())

	if err := m.Load("missing.tmx"); err == nil {
		t.Error("Expected error for missing file")
	}
	if err := m.Load("noimage.tmx"); err == nil {
		t.Error("Expected error for tileset without image")
	}
	if m.Loaded() {
		t.Fatal("Failed loads must not mark the map loaded")
	}

	if err := m.Load("level1.tmx"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := m.Load("noimage.tmx"); err == nil {
		t.Fatal("Expected error for tileset without image")
	}
	if !m.Loaded() || m.MapName() != "level1.tmx" {
		t.Error("A failed load should keep the previous map")
	}
}

func TestCleanUpWhenEmpty(t *testing.T) {
	m := New(testFS())
	if err := m.CleanUp(nil); err != nil {
		t.Errorf("CleanUp on empty map failed: %v", err)
	}
	m.Draw(&recordingRenderer{})
}

func TestCells(t *testing.T) {
	m, _ := loadTestMap(t)
	var coins [][2]int
	m.Cells("Collider", func(x, y, value int) {
		if value == 4 {
			coins = append(coins, [2]int{x, y})
		}
	})
	if !reflect.DeepEqual(coins, [][2]int{{3, 0}}) {
		t.Errorf("Expected one coin cell at (3,0), got %v", coins)
	}
}

func TestSetHiddenMasksCell(t *testing.T) {
	m, _ := loadTestMap(t)
	if got := m.TileProperty(3, 0, "Collider", -1); got != 4 {
		t.Fatalf("Expected coin at (3,0), got %d", got)
	}
	m.SetHidden(3, 0, true)
	if got := m.TileProperty(3, 0, "Collider", -1); got != -1 {
		t.Errorf("Hidden cell should answer the default, got %d", got)
	}
	r := &recordingRenderer{}
	m.Draw(r)
	for _, c := range r.calls {
		if c.x == 192 && c.y == 0 {
			t.Error("Hidden cell was drawn")
		}
	}

	m.SetHidden(3, 0, false)
	if m.Hidden(3, 0) {
		t.Error("Expected cell restored")
	}
	m.SetHidden(1, 1, true)
	if err := m.Load("level1.tmx"); err != nil {
		t.Fatal(err)
	}
	if m.Hidden(1, 1) {
		t.Error("Load should clear hidden cells")
	}
}
