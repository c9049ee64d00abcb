package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/automoto/tilequest/config"
)

// SaveItemKey is the store item holding the save document
const SaveItemKey = "savegame"

// ErrNoSave is returned by LoadGame when nothing was saved yet
var ErrNoSave = errors.New("no saved game")

// SaveStore persists opaque items by key. *gdata.Manager satisfies it.
type SaveStore interface {
	LoadItem(itemKey string) ([]byte, error)
	SaveItem(itemKey string, data []byte) error
}

// SaveGame asks every module, in registration order, for its section and
// writes the document. A module failure aborts before anything is written,
// so the previous save stays intact.
func (a *App) SaveGame() error {
	if a.store == nil {
		return errors.New("save: no save store")
	}

	doc := make(map[string]config.Section, len(a.modules))
	for _, m := range a.modules {
		section, err := m.SaveState(a.ctx)
		if err != nil {
			return fmt.Errorf("save %s: %w", m.Name(), err)
		}
		if !section.Empty() {
			doc[m.Name()] = section
		}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("save: encode document: %w", err)
	}
	if err := a.store.SaveItem(SaveItemKey, data); err != nil {
		return fmt.Errorf("save: write %s: %w", SaveItemKey, err)
	}
	log.Printf("Game saved (%d sections)", len(doc))
	return nil
}

// LoadGame reads the save document and hands each module its section in
// registration order. A module failure stops the pass; modules already
// loaded keep the loaded state.
func (a *App) LoadGame() error {
	if a.store == nil {
		return errors.New("load: no save store")
	}

	data, err := a.store.LoadItem(SaveItemKey)
	if err != nil {
		return fmt.Errorf("load: read %s: %w", SaveItemKey, err)
	}
	if len(data) == 0 {
		return ErrNoSave
	}

	var doc map[string]config.Section
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("load: decode document: %w", err)
	}

	for _, m := range a.modules {
		if err := m.LoadState(a.ctx, doc[m.Name()]); err != nil {
			return fmt.Errorf("load %s: %w", m.Name(), err)
		}
	}
	log.Printf("Game loaded (%d sections)", len(doc))
	return nil
}
