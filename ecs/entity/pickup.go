package entity

import (
	"fmt"

	"github.com/milk9111/robotboss/ecs"
	"github.com/milk9111/robotboss/ecs/component"
	"github.com/milk9111/robotboss/prefabs"
	"golang.org/x/image/colornames"
)

// NewPickup drops a collectible at (x, y). It falls under gravity until it
// rests on the floor.
func NewPickup(w *ecs.World, spec prefabs.PickupSpec, x, y float64) (ecs.Entity, error) {
	size := spec.Size
	if size <= 0 {
		size = 0.5
	}
	radius := spec.Radius
	if radius <= 0 {
		radius = size
	}

	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.PickupComponent.Kind(), &component.Pickup{
		Item:   spec.Item,
		Radius: radius,
		Size:   size,
		Color:  spec.Color.Or(colornames.Gold),
	}); err != nil {
		return 0, fmt.Errorf("pickup %q: add pickup: %w", spec.Item, err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		return 0, fmt.Errorf("pickup %q: add transform: %w", spec.Item, err)
	}

	if err := ecs.Add(w, entity, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:    size,
		Height:   size,
		Mass:     0.2,
		Friction: 0.9,
	}); err != nil {
		return 0, fmt.Errorf("pickup %q: add physics body: %w", spec.Item, err)
	}

	return entity, nil
}
