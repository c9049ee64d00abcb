package factory

import (
	"fmt"
	"image"

	"github.com/automoto/tilequest/collision"
	"github.com/automoto/tilequest/components"
	"github.com/automoto/tilequest/physics"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// AttachCollider registers a collider for entry's object rectangle grown by skin
func AttachCollider(e *ecs.ECS, entry *donburi.Entry, t collision.Type, skin int, listener collision.Listener) error {
	level := components.Level.Get(components.Level.MustFirst(e.World))
	obj := components.Object.Get(entry)

	col, err := level.Collisions.Add(ColliderRect(obj.Rect, skin), t, listener)
	if err != nil {
		return fmt.Errorf("%s collider: %w", t, err)
	}
	col.Data = entry.Entity()
	components.Collider.SetValue(entry, components.ColliderData{Collider: col, Skin: skin})
	return nil
}

// ColliderRect is the registry rectangle for an object with the given skin
func ColliderRect(r physics.Rect, skin int) image.Rectangle {
	return r.Bounds().Inset(-skin)
}
