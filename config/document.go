package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
)

// AppConfig is the top-level "app" section of the configuration document
type AppConfig struct {
	Title        string `json:"title"`
	Organization string `json:"organization"`
	FramerateCap int    `json:"framerate_cap"` // <= 0 means uncapped
}

// DefaultSaveName is used when the app block names neither organization nor title
const DefaultSaveName = "tilequest"

// SaveName folds organization and title into one lowercase name for the
// save directory, e.g. "automoto_tile_quest".
func (a AppConfig) SaveName() string {
	var b strings.Builder
	for _, part := range []string{a.Organization, a.Title} {
		for _, r := range strings.ToLower(part) {
			switch {
			case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
				b.WriteRune(r)
			case b.Len() > 0 && !strings.HasSuffix(b.String(), "_"):
				b.WriteByte('_')
			}
		}
		if b.Len() > 0 && !strings.HasSuffix(b.String(), "_") {
			b.WriteByte('_')
		}
	}
	name := strings.TrimSuffix(b.String(), "_")
	if name == "" {
		return DefaultSaveName
	}
	return name
}

// Section is one named block of a configuration or save document.
// Each module decodes its own section and nobody else looks inside it.
type Section struct {
	raw json.RawMessage
}

// NewSection encodes v as a section.
func NewSection(v any) (Section, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Section{}, err
	}
	return Section{raw: data}, nil
}

// Empty reports whether the section carries no data
func (s Section) Empty() bool {
	trimmed := bytes.TrimSpace(s.raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// Decode unmarshals the section into v. An empty section leaves v untouched,
// so callers can pre-fill defaults.
func (s Section) Decode(v any) error {
	if s.Empty() {
		return nil
	}
	return json.Unmarshal(s.raw, v)
}

func (s Section) MarshalJSON() ([]byte, error) {
	if s.Empty() {
		return []byte("null"), nil
	}
	return s.raw, nil
}

func (s *Section) UnmarshalJSON(data []byte) error {
	s.raw = append(s.raw[:0], data...)
	return nil
}

// Document is the parsed configuration file: the "app" block plus one
// section per module, looked up by module name.
type Document struct {
	App      AppConfig
	sections map[string]Section
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var sections map[string]Section
	if err := json.Unmarshal(data, &sections); err != nil {
		return err
	}
	if app, ok := sections["app"]; ok {
		if err := app.Decode(&d.App); err != nil {
			return fmt.Errorf("app section: %w", err)
		}
		delete(sections, "app")
	}
	d.sections = sections
	return nil
}

// Section returns the named module section, empty when absent.
func (d *Document) Section(name string) Section {
	if d == nil {
		return Section{}
	}
	return d.sections[name]
}

// Parse decodes a configuration document.
func Parse(data []byte) (*Document, error) {
	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Load reads and parses the configuration document at path within fsys.
func Load(fsys fs.FS, path string) (*Document, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return doc, nil
}
