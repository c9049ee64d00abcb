package engine

import (
	"errors"
	"testing"

	"github.com/automoto/tilequest/config"
)

type failingSaver struct {
	Base
}

func (f *failingSaver) SaveState(ctx *Context) (config.Section, error) {
	return config.Section{}, errors.New("disk on fire")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	journal := &[]string{}
	app := NewApp(nil, WithClock(NewManualClock()), WithSleep(nil), WithSaveStore(store))

	scene := newRecorder("scene", journal)
	scene.saved = map[string]int{"coins": 3, "score": 300}
	idle := newRecorder("input", journal)
	app.MustRegister(idle, scene)

	if err := app.SaveGame(); err != nil {
		t.Fatalf("SaveGame failed: %v", err)
	}

	scene.saved = map[string]int{"coins": 0}
	if err := app.LoadGame(); err != nil {
		t.Fatalf("LoadGame failed: %v", err)
	}

	if scene.saved["coins"] != 3 || scene.saved["score"] != 300 {
		t.Errorf("Expected restored counters, got %v", scene.saved)
	}
	if idle.saved != nil {
		t.Errorf("Module without state should not receive data, got %v", idle.saved)
	}
}

func TestSaveFailureKeepsPreviousSave(t *testing.T) {
	store := NewMemoryStore()
	store.Items[SaveItemKey] = []byte(`{"scene":{"coins":7}}`)

	app := NewApp(nil, WithClock(NewManualClock()), WithSleep(nil), WithSaveStore(store))
	journal := &[]string{}
	scene := newRecorder("scene", journal)
	scene.saved = map[string]int{"coins": 1}
	app.MustRegister(scene, &failingSaver{Base: NewBase("broken")})

	if err := app.SaveGame(); err == nil {
		t.Fatal("Expected save failure")
	}
	if string(store.Items[SaveItemKey]) != `{"scene":{"coins":7}}` {
		t.Errorf("Previous save was overwritten: %s", store.Items[SaveItemKey])
	}
}

func TestLoadWithoutSave(t *testing.T) {
	app := NewApp(nil, WithClock(NewManualClock()), WithSleep(nil), WithSaveStore(NewMemoryStore()))
	if err := app.LoadGame(); !errors.Is(err, ErrNoSave) {
		t.Errorf("Expected ErrNoSave, got %v", err)
	}
}

func TestFinishUpdateSaveWinsOverLoad(t *testing.T) {
	store := NewMemoryStore()
	app := NewApp(nil, WithClock(NewManualClock()), WithSleep(nil), WithSaveStore(store))
	journal := &[]string{}
	scene := newRecorder("scene", journal)
	scene.saved = map[string]int{"coins": 2}
	app.MustRegister(scene)

	app.RequestSave()
	app.RequestLoad()
	if err := app.Step(); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if _, ok := store.Items[SaveItemKey]; !ok {
		t.Fatal("Expected save on first frame")
	}

	// The load is still pending and runs on the next frame
	scene.saved["coins"] = 99
	if err := app.Step(); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if scene.saved["coins"] != 2 {
		t.Errorf("Expected load on second frame to restore 2 coins, got %d", scene.saved["coins"])
	}
}
