package entity

import (
	"fmt"

	"github.com/milk9111/robotboss/ecs"
	"github.com/milk9111/robotboss/ecs/component"
	"github.com/milk9111/robotboss/prefabs"
)

// NewArena adds the arena bounds the physics system turns into a floor and
// walls.
func NewArena(w *ecs.World, spec *prefabs.ArenaSpec) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("arena: nil spec")
	}

	entity := ecs.CreateEntity(w)
	if err := ecs.Add(w, entity, component.ArenaBoundsComponent.Kind(), &component.ArenaBounds{
		Width:  spec.Width,
		Height: spec.Height,
		FloorY: spec.FloorY,
	}); err != nil {
		return 0, fmt.Errorf("arena: add bounds: %w", err)
	}
	return entity, nil
}
