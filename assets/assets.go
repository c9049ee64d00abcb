package assets

import (
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"log"
	"path"

	"github.com/automoto/tilequest/config"
	"github.com/automoto/tilequest/engine"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

type settings struct {
	Root string `json:"root"`
}

// Textures is the texture module. It decodes sheet images from an fs.FS
// once per path and hands out integer handles; the driver uploads the
// decoded images to the GPU lazily.
type Textures struct {
	engine.Base

	fsys     fs.FS
	settings settings

	images []image.Image // index = handle - 1
	byPath map[string]engine.Texture
}

// New creates the texture module reading from fsys
func New(fsys fs.FS) *Textures {
	return &Textures{
		Base:   engine.NewBase("textures"),
		fsys:   fsys,
		byPath: make(map[string]engine.Texture),
	}
}

func (t *Textures) Awake(ctx *engine.Context, cfg config.Section) error {
	log.Println("Init image library")
	if err := cfg.Decode(&t.settings); err != nil {
		return fmt.Errorf("textures config: %w", err)
	}
	return nil
}

// Load decodes an image, returning the cached handle for a path already loaded
func (t *Textures) Load(p string) (engine.Texture, error) {
	p = path.Clean(path.Join(t.settings.Root, p))
	if tex, ok := t.byPath[p]; ok {
		return tex, nil
	}
	if t.fsys == nil {
		return 0, fmt.Errorf("load texture %s: no filesystem", p)
	}

	f, err := t.fsys.Open(p)
	if err != nil {
		return 0, fmt.Errorf("load texture %s: %w", p, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return 0, fmt.Errorf("decode texture %s: %w", p, err)
	}

	t.images = append(t.images, img)
	tex := engine.Texture(len(t.images))
	t.byPath[p] = tex
	log.Printf("Loaded texture %s (%s %dx%d)", p, format, img.Bounds().Dx(), img.Bounds().Dy())
	return tex, nil
}

// Size returns the pixel size of a texture, 0x0 for an unknown handle
func (t *Textures) Size(tex engine.Texture) (int, int) {
	img := t.Image(tex)
	if img == nil {
		return 0, 0
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

// Image returns the decoded image behind a handle
func (t *Textures) Image(tex engine.Texture) image.Image {
	i := int(tex) - 1
	if i < 0 || i >= len(t.images) {
		return nil
	}
	return t.images[i]
}

// Count is the number of decoded textures
func (t *Textures) Count() int { return len(t.images) }

// Handles lists every live handle in load order
func (t *Textures) Handles() []engine.Texture {
	out := make([]engine.Texture, len(t.images))
	for i := range t.images {
		out[i] = engine.Texture(i + 1)
	}
	return out
}

// CleanUp releases every texture. Handles issued before are invalid afterwards.
func (t *Textures) CleanUp(ctx *engine.Context) error {
	log.Printf("Freeing textures and image library (%d)", len(t.images))
	t.images = nil
	t.byPath = make(map[string]engine.Texture)
	return nil
}
