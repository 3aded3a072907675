package system

import (
	"github.com/milk9111/robotboss/ecs"
	"github.com/milk9111/robotboss/ecs/component"
)

// InvulnerableSystem counts down timed invulnerability and removes it at
// zero. Frames == 0 is left alone.
type InvulnerableSystem struct{}

func NewInvulnerableSystem() *InvulnerableSystem { return &InvulnerableSystem{} }

func (s *InvulnerableSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.InvulnerableComponent.Kind(), func(e ecs.Entity, inv *component.Invulnerable) {
		if inv.Frames <= 0 {
			return
		}
		inv.Frames--
		if inv.Frames == 0 {
			_ = ecs.Remove(w, e, component.InvulnerableComponent.Kind())
		}
	})
}
