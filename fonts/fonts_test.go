package fonts

import "testing"

func TestLoadDefaults(t *testing.T) {
	if err := LoadDefaults(); err != nil {
		t.Fatalf("LoadDefaults failed: %v", err)
	}
	for _, name := range []FontName{Regular, Small, Title} {
		if !Loaded(name) {
			t.Errorf("Expected %s to be loaded", name)
		}
	}
	if Width(Title, "Tile Quest") <= Width(Small, "Tile Quest") {
		t.Error("Title face should be wider than the small face")
	}
}

func TestLoadFontRejectsGarbage(t *testing.T) {
	if err := LoadFont("broken", []byte("nope")); err == nil {
		t.Error("Expected parse error")
	}
}
