package system

import (
	"testing"

	"github.com/milk9111/robotboss/boss"
	"github.com/milk9111/robotboss/ecs"
	"github.com/milk9111/robotboss/ecs/component"
	"github.com/milk9111/robotboss/prefabs"
)

func TestBossAgentCreatedOnFirstFrame(t *testing.T) {
	h := newArenaHarness(t)
	e := h.spawnBoss(t, 20, nil)

	h.frames(1)

	a := h.agent(t, e)
	if a.Position().X != 20 || a.Position().Y != 13.5 {
		t.Fatalf("expected agent at the spawn point, got %v", a.Position())
	}
	hp, _ := ecs.Get(h.w, e, component.HealthComponent.Kind())
	if hp.Current != 100 || hp.Max != 100 {
		t.Fatalf("expected health mirrored as 100/100, got %d/%d", hp.Current, hp.Max)
	}
	anim, _ := ecs.Get(h.w, e, component.AnimationComponent.Kind())
	if anim.Current != "idle" {
		t.Fatalf("expected idle pose without a player, got %q", anim.Current)
	}
}

func TestBossChasesPlayerAcrossFloor(t *testing.T) {
	h := newArenaHarness(t)
	e := h.spawnBoss(t, 20, nil)
	h.spawnPlayer(t, 10)

	h.frames(31)

	a := h.agent(t, e)
	if a.Busy() != boss.Idle {
		t.Fatalf("expected chase to keep the agent idle, got %v", a.Busy())
	}
	tr, _ := ecs.Get(h.w, e, component.TransformComponent.Kind())
	if tr.X > 18.6 || tr.X < 18.4 {
		t.Fatalf("expected boss near x=18.5 after half a second of chase, got %v", tr.X)
	}
	if !tr.FacingLeft {
		t.Fatalf("expected boss to face the player")
	}
	anim, _ := ecs.Get(h.w, e, component.AnimationComponent.Kind())
	if anim.Current != "walk" {
		t.Fatalf("expected walk pose, got %q", anim.Current)
	}
	if contains(h.drainTypes(), EventBossPrefix+string(boss.EventAggro)) {
		t.Fatalf("expected chase without aggro")
	}
}

func TestBossMeleeHitsPlayerOnce(t *testing.T) {
	h := newArenaHarness(t)
	e := h.spawnBoss(t, 14, nil)
	player := h.spawnPlayer(t, 11)

	h.frames(2)

	a := h.agent(t, e)
	if a.Busy() != boss.Attacking {
		t.Fatalf("expected melee, got %v", a.Busy())
	}
	hp, _ := ecs.Get(h.w, player, component.HealthComponent.Kind())
	if hp.Current != 90 {
		t.Fatalf("expected one 10 point hit, got health %d", hp.Current)
	}
	if !ecs.Has(h.w, player, component.InvulnerableComponent.Kind()) {
		t.Fatalf("expected the player to be invulnerable after the hit")
	}
	audio, _ := ecs.Get(h.w, e, component.AudioComponent.Kind())
	if !contains(audio.Queue, "attack") {
		t.Fatalf("expected attack sfx queued, got %v", audio.Queue)
	}
}

func TestBossExpiresAndIsDestroyed(t *testing.T) {
	h := newArenaHarness(t)
	e := h.spawnBoss(t, 20, func(s *prefabs.BossSpec) {
		s.DeathGrace = 0.1
		s.Drops = prefabs.DropTableSpec{}
	})
	h.frames(1)
	h.agent(t, e).TakeDamage(1000)
	h.frames(1)

	if !ecs.IsAlive(h.w, e) {
		t.Fatalf("expected the boss to linger during its death grace")
	}
	if got := ecs.Count(h.w, component.EffectComponent.Kind()); got != 1 {
		t.Fatalf("expected one death effect, got %d", got)
	}
	if ecs.Count(h.w, component.CameraShakeRequestComponent.Kind()) != 1 {
		t.Fatalf("expected the explosion to request a camera shake")
	}

	h.frames(10)

	if ecs.IsAlive(h.w, e) {
		t.Fatalf("expected the boss to be destroyed after its death grace")
	}
	types := h.drainTypes()
	for _, want := range []string{EventBossPrefix + string(boss.EventDeath), EventBossExpired} {
		if !contains(types, want) {
			t.Fatalf("expected %q in %v", want, types)
		}
	}
}

func TestBossDropsSpawnPickups(t *testing.T) {
	h := newArenaHarness(t)
	e := h.spawnBoss(t, 20, func(s *prefabs.BossSpec) {
		s.Drops = prefabs.DropTableSpec{
			Guaranteed: []prefabs.DropSpec{{Item: "coin", Min: 2, Max: 2}},
			Delay:      0.05,
			Interval:   0.05,
			Radius:     1,
			Height:     1,
		}
	})
	h.frames(1)
	h.agent(t, e).TakeDamage(1000)
	h.frames(30)

	if got := ecs.Count(h.w, component.PickupComponent.Kind()); got != 2 {
		t.Fatalf("expected 2 coins, got %d", got)
	}
	ecs.ForEach(h.w, component.PickupComponent.Kind(), func(_ ecs.Entity, p *component.Pickup) {
		if p.Item != "coin" || p.Radius != 0.8 {
			t.Fatalf("expected coin pickup from the arena catalog, got %+v", p)
		}
	})
}

func TestBossReloadAppliesConfig(t *testing.T) {
	h := newArenaHarness(t)
	e := h.spawnBoss(t, 20, nil)
	h.frames(1)

	cfg := h.agent(t, e).Config()
	cfg.MaxHealth = 40
	if n := h.bosses.Reload(h.w, cfg); n != 1 {
		t.Fatalf("expected one boss reloaded, got %d", n)
	}
	h.frames(1)

	hp, _ := ecs.Get(h.w, e, component.HealthComponent.Kind())
	if hp.Current != 40 || hp.Max != 40 {
		t.Fatalf("expected health clamped to 40/40, got %d/%d", hp.Current, hp.Max)
	}

	cfg.JumpDuration = 0
	if n := h.bosses.Reload(h.w, cfg); n != 0 {
		t.Fatalf("expected invalid config to be rejected")
	}
}

func TestBossJumpLandingDamagesThroughPhysics(t *testing.T) {
	cases := []struct {
		name     string
		maxLeap  float64
		wantHP   int
		wantTier string
	}{
		{"inner_ring", 20, 75, "inner"},
		{"outer_ring", 3, 90, "outer"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newArenaHarness(t)
			e := h.spawnBoss(t, 16, func(s *prefabs.BossSpec) {
				s.Jump.Threshold = 1
				s.Jump.Duration = 0.25
				s.Jump.MaxLeap = c.maxLeap
			})
			player := h.spawnPlayer(t, 10)

			h.frames(1)
			h.agent(t, e).TakeDamage(1)
			h.frames(1)
			if got := h.agent(t, e).Busy(); got != boss.Jumping {
				t.Fatalf("expected jump attack, got %v", got)
			}
			h.frames(20)

			hp, _ := ecs.Get(h.w, player, component.HealthComponent.Kind())
			if hp.Current != c.wantHP {
				t.Fatalf("expected player health %d after landing, got %d", c.wantHP, hp.Current)
			}

			var lands []boss.Event
			for _, ev := range h.w.Events().Drain() {
				if ev.Type != EventBossPrefix+string(boss.EventLand) {
					continue
				}
				if data, ok := ev.Data.(boss.Event); ok {
					lands = append(lands, data)
				}
			}
			if len(lands) != 1 {
				t.Fatalf("expected one landing, got %d", len(lands))
			}
			if lands[0].Hits != 1 {
				t.Fatalf("expected the player charged once on the %s ring, got %d hits", c.wantTier, lands[0].Hits)
			}
		})
	}
}
