package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

type FontName string

const (
	Regular FontName = "regular"
	Title   FontName = "title"
	Small   FontName = "small"
)

func (f FontName) Get() font.Face {
	return getFont(f)
}

var (
	mu    sync.RWMutex
	fonts = map[FontName]font.Face{}
)

// LoadDefaults registers the Go font faces used for queued text
func LoadDefaults() error {
	if err := LoadFontWithSize(Regular, goregular.TTF, 18); err != nil {
		return err
	}
	if err := LoadFontWithSize(Small, goregular.TTF, 12); err != nil {
		return err
	}
	return LoadFontWithSize(Title, gobold.TTF, 48)
}

func LoadFont(name FontName, ttf []byte) error {
	return LoadFontWithSize(name, ttf, 10)
}

func LoadFontWithSize(name FontName, ttf []byte, size float64) error {
	fontData, err := truetype.Parse(ttf)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", name, err)
	}
	mu.Lock()
	fonts[name] = truetype.NewFace(fontData, &truetype.Options{Size: size})
	mu.Unlock()
	return nil
}

// Loaded reports whether a face was registered under name
func Loaded(name FontName) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := fonts[name]
	return ok
}

// Width is the advance width of s in pixels
func Width(name FontName, s string) int {
	return font.MeasureString(getFont(name), s).Ceil()
}

func getFont(name FontName) font.Face {
	mu.RLock()
	f, ok := fonts[name]
	mu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("Font %s not found", name))
	}
	return f
}
