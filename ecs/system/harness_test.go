package system

import (
	"testing"

	"github.com/milk9111/robotboss/boss"
	"github.com/milk9111/robotboss/ecs"
	"github.com/milk9111/robotboss/ecs/component"
	"github.com/milk9111/robotboss/ecs/entity"
	"github.com/milk9111/robotboss/prefabs"
)

const testDT = 1.0 / 60

type arenaHarness struct {
	w       *ecs.World
	arena   *prefabs.ArenaSpec
	physics *PhysicsSystem
	bosses  *BossSystem
	scripts *BossScriptSystem
}

func newArenaHarness(t *testing.T) *arenaHarness {
	t.Helper()
	w := ecs.NewWorld()
	arena := &prefabs.ArenaSpec{
		Name:   "test",
		Width:  30,
		Height: 17,
		FloorY: 15,
		Effects: []prefabs.EffectSpec{
			{Name: "landing_shockwave", Radius: 4, Frames: 10},
			{Name: "explosion", Radius: 3, Frames: 10, Shake: 0.5},
		},
		Pickups: []prefabs.PickupSpec{{Item: "coin", Size: 0.5, Radius: 0.8}},
	}
	if _, err := entity.NewArena(w, arena); err != nil {
		t.Fatalf("NewArena: %v", err)
	}
	physics := NewPhysicsSystem(testDT)
	return &arenaHarness{
		w:       w,
		arena:   arena,
		physics: physics,
		bosses:  NewBossSystem(physics, testDT, arena),
		scripts: NewBossScriptSystem(arena),
	}
}

func (h *arenaHarness) spawnBoss(t *testing.T, x float64, mutate func(*prefabs.BossSpec)) ecs.Entity {
	t.Helper()
	spec := prefabs.DefaultBossSpec()
	spec.Transform = prefabs.TransformSpec{X: x, Y: 13.5}
	spec.HitReact = 0
	if mutate != nil {
		mutate(&spec)
	}
	e, err := entity.NewBossFromSpec(h.w, &spec)
	if err != nil {
		t.Fatalf("NewBossFromSpec: %v", err)
	}
	return e
}

func (h *arenaHarness) spawnPlayer(t *testing.T, x float64) ecs.Entity {
	t.Helper()
	e, err := entity.NewPlayerFromSpec(h.w, &prefabs.PlayerSpec{
		Name:               "player",
		Health:             100,
		MoveSpeed:          8,
		JumpSpeed:          16,
		CoyoteFrames:       6,
		DashSpeed:          20,
		DashFrames:         9,
		DashCooldown:       40,
		AttackRange:        2.5,
		AttackDamage:       5,
		AttackFrames:       12,
		AttackCooldown:     20,
		InvulnerableFrames: 60,
		Transform:          prefabs.TransformSpec{X: x, Y: 14},
		Collider:           prefabs.ColliderSpec{Width: 1, Height: 2, Mass: 1},
	})
	if err != nil {
		t.Fatalf("NewPlayerFromSpec: %v", err)
	}
	return e
}

func (h *arenaHarness) spawnPickup(t *testing.T, item string, x, y float64) ecs.Entity {
	t.Helper()
	spec, _ := h.arena.Pickup(item)
	e, err := entity.NewPickup(h.w, spec, x, y)
	if err != nil {
		t.Fatalf("NewPickup: %v", err)
	}
	return e
}

func (h *arenaHarness) frames(n int) {
	for i := 0; i < n; i++ {
		h.physics.Update(h.w)
		h.bosses.Update(h.w)
		h.scripts.Update(h.w)
	}
}

func (h *arenaHarness) agent(t *testing.T, e ecs.Entity) *boss.Agent {
	t.Helper()
	bc, ok := ecs.Get(h.w, e, component.BossComponent.Kind())
	if !ok || bc.Agent == nil {
		t.Fatalf("boss %v has no agent", e)
	}
	return bc.Agent
}

func (h *arenaHarness) drainTypes() []string {
	var types []string
	for _, ev := range h.w.Events().Drain() {
		types = append(types, ev.Type)
	}
	return types
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
