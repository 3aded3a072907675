package system

import (
	"github.com/milk9111/robotboss/ecs"
	"github.com/milk9111/robotboss/ecs/component"
)

// EffectSystem ages visual effects; TTLSystem removes them.
type EffectSystem struct{}

func NewEffectSystem() *EffectSystem { return &EffectSystem{} }

func (s *EffectSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.EffectComponent.Kind(), func(_ ecs.Entity, fx *component.Effect) {
		if fx.Elapsed < fx.Frames {
			fx.Elapsed++
		}
	})
}
