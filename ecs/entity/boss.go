package entity

import (
	"fmt"

	"github.com/milk9111/robotboss/ecs"
	"github.com/milk9111/robotboss/ecs/component"
	"github.com/milk9111/robotboss/prefabs"
)

func NewBoss(w *ecs.World) (ecs.Entity, error) {
	spec, err := prefabs.LoadBossSpec()
	if err != nil {
		return 0, fmt.Errorf("boss: load spec: %w", err)
	}
	return NewBossFromSpec(w, spec)
}

// NewBossFromSpec builds a boss entity. The controller itself is created by
// the boss system on its first update.
func NewBossFromSpec(w *ecs.World, spec *prefabs.BossSpec) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("boss: nil spec")
	}
	cfg, err := spec.Config()
	if err != nil {
		return 0, fmt.Errorf("boss: config: %w", err)
	}

	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.BossTagComponent.Kind(), &component.BossTag{}); err != nil {
		return 0, fmt.Errorf("boss: add boss tag: %w", err)
	}

	if err := ecs.Add(w, entity, component.BossComponent.Kind(), &component.Boss{
		Config: cfg,
		Script: spec.Script,
	}); err != nil {
		return 0, fmt.Errorf("boss: add boss component: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{
		X:          spec.Transform.X,
		Y:          spec.Transform.Y,
		FacingLeft: true,
	}); err != nil {
		return 0, fmt.Errorf("boss: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:     spec.Collider.Width,
		Height:    spec.Collider.Height,
		Friction:  spec.Collider.Friction,
		Kinematic: true,
	}); err != nil {
		return 0, fmt.Errorf("boss: add physics body: %w", err)
	}

	if err := ecs.Add(w, entity, component.HealthComponent.Kind(), &component.Health{
		Current: cfg.MaxHealth,
		Max:     cfg.MaxHealth,
	}); err != nil {
		return 0, fmt.Errorf("boss: add health: %w", err)
	}

	if err := ecs.Add(w, entity, component.AnimationComponent.Kind(), &component.Animation{}); err != nil {
		return 0, fmt.Errorf("boss: add animation: %w", err)
	}

	if err := ecs.Add(w, entity, component.AudioComponent.Kind(), &component.Audio{Volume: 1}); err != nil {
		return 0, fmt.Errorf("boss: add audio: %w", err)
	}

	if err := ecs.Add(w, entity, component.TintComponent.Kind(), &component.Tint{}); err != nil {
		return 0, fmt.Errorf("boss: add tint: %w", err)
	}

	return entity, nil
}
