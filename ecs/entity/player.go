package entity

import (
	"fmt"

	"github.com/milk9111/robotboss/ecs"
	"github.com/milk9111/robotboss/ecs/component"
	"github.com/milk9111/robotboss/prefabs"
)

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return 0, fmt.Errorf("player: load spec: %w", err)
	}
	return NewPlayerFromSpec(w, spec)
}

func NewPlayerFromSpec(w *ecs.World, spec *prefabs.PlayerSpec) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("player: nil spec")
	}

	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}

	if err := ecs.Add(w, entity, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed:         spec.MoveSpeed,
		JumpSpeed:         spec.JumpSpeed,
		CoyoteFrames:      spec.CoyoteFrames,
		DashSpeed:         spec.DashSpeed,
		DashFrames:        spec.DashFrames,
		DashCooldown:      spec.DashCooldown,
		AttackRange:       spec.AttackRange,
		AttackDamage:      spec.AttackDamage,
		AttackFrames:      spec.AttackFrames,
		AttackCooldown:    spec.AttackCooldown,
		InvulnerableAfter: spec.InvulnerableFrames,
		DashDirection:     1,
	}); err != nil {
		return 0, fmt.Errorf("player: add player component: %w", err)
	}

	if err := ecs.Add(w, entity, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{
		X: spec.Transform.X,
		Y: spec.Transform.Y,
	}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:    spec.Collider.Width,
		Height:   spec.Collider.Height,
		Mass:     spec.Collider.Mass,
		Friction: spec.Collider.Friction,
	}); err != nil {
		return 0, fmt.Errorf("player: add physics body: %w", err)
	}

	if err := ecs.Add(w, entity, component.GroundComponent.Kind(), &component.Ground{}); err != nil {
		return 0, fmt.Errorf("player: add ground: %w", err)
	}

	if err := ecs.Add(w, entity, component.HealthComponent.Kind(), &component.Health{
		Current: spec.Health,
		Max:     spec.Health,
	}); err != nil {
		return 0, fmt.Errorf("player: add health: %w", err)
	}

	if err := ecs.Add(w, entity, component.AnimationComponent.Kind(), &component.Animation{
		Current: "idle",
		Loop:    true,
	}); err != nil {
		return 0, fmt.Errorf("player: add animation: %w", err)
	}

	if err := ecs.Add(w, entity, component.AudioComponent.Kind(), &component.Audio{Volume: 1}); err != nil {
		return 0, fmt.Errorf("player: add audio: %w", err)
	}

	if err := ecs.Add(w, entity, component.InventoryComponent.Kind(), &component.Inventory{}); err != nil {
		return 0, fmt.Errorf("player: add inventory: %w", err)
	}

	return entity, nil
}
