package system

import (
	"fmt"
	"testing"

	"github.com/milk9111/robotboss/boss"
	"github.com/milk9111/robotboss/ecs"
	"github.com/milk9111/robotboss/ecs/component"
	"github.com/milk9111/robotboss/prefabs"
)

const testScript = `
on_event := func(engine, state, ev) {
	if is_undefined(state.count) {
		state.count = 0
	}
	state.count += 1
	if ev.kind == "hit" {
		engine.play_sfx("scripted_" + string(state.count))
		engine.shake(0.3)
	}
	if ev.kind == "death" {
		engine.spawn_effect("landing_shockwave", ev.x, ev.y)
	}
}
`

func scriptedHarness(t *testing.T, src string) (*arenaHarness, ecs.Entity) {
	t.Helper()
	h := newArenaHarness(t)
	h.scripts.load = func(name string) ([]byte, error) {
		if name != "test.tengo" {
			return nil, fmt.Errorf("unknown script %q", name)
		}
		return []byte(src), nil
	}
	e := h.spawnBoss(t, 20, func(s *prefabs.BossSpec) {
		s.Script = "test.tengo"
		s.Drops = prefabs.DropTableSpec{}
	})
	h.frames(1)
	return h, e
}

func TestBossScriptReceivesEvents(t *testing.T) {
	h, e := scriptedHarness(t, testScript)

	h.agent(t, e).TakeDamage(5)
	h.frames(1)

	audio, _ := ecs.Get(h.w, e, component.AudioComponent.Kind())
	if !contains(audio.Queue, "scripted_1") {
		t.Fatalf("expected scripted sfx after the hit, got %v", audio.Queue)
	}
	if got := ecs.Count(h.w, component.CameraShakeRequestComponent.Kind()); got != 1 {
		t.Fatalf("expected one shake request, got %d", got)
	}
	bc, _ := ecs.Get(h.w, e, component.BossComponent.Kind())
	if len(bc.Events) != 0 {
		t.Fatalf("expected events consumed, got %v", bc.Events)
	}
}

func TestBossScriptStatePersists(t *testing.T) {
	h, e := scriptedHarness(t, testScript)

	h.agent(t, e).TakeDamage(1)
	h.frames(1)
	h.agent(t, e).TakeDamage(1)
	h.frames(1)

	audio, _ := ecs.Get(h.w, e, component.AudioComponent.Kind())
	if !contains(audio.Queue, "scripted_1") || !contains(audio.Queue, "scripted_2") {
		t.Fatalf("expected the counter to survive between frames, got %v", audio.Queue)
	}
}

func TestBossScriptSpawnsEffectOnDeath(t *testing.T) {
	h, e := scriptedHarness(t, testScript)
	before := ecs.Count(h.w, component.EffectComponent.Kind())

	h.agent(t, e).TakeDamage(1000)
	h.frames(1)

	// death effect from the agent plus the scripted shockwave
	if got := ecs.Count(h.w, component.EffectComponent.Kind()) - before; got != 2 {
		t.Fatalf("expected 2 new effects, got %d", got)
	}
}

func TestBossScriptCompileErrorIsContained(t *testing.T) {
	h, e := scriptedHarness(t, "on_event := func(engine, state, ev) {")

	h.agent(t, e).TakeDamage(5)
	h.frames(2)

	if h.agent(t, e).Health() != 95 {
		t.Fatalf("expected the agent to keep working")
	}
	if !h.scripts.failed["test.tengo"] {
		t.Fatalf("expected the failure to be remembered")
	}

	h.scripts.load = func(string) ([]byte, error) { return []byte(testScript), nil }
	h.scripts.Reload("test.tengo")
	h.agent(t, e).TakeDamage(5)
	h.frames(1)

	audio, _ := ecs.Get(h.w, e, component.AudioComponent.Kind())
	if !contains(audio.Queue, "scripted_1") {
		t.Fatalf("expected the reloaded script to run, got %v", audio.Queue)
	}
}

func TestBossScriptSkippedAfterCompileErrorUntilReload(t *testing.T) {
	h, e := scriptedHarness(t, "on_event := func(engine, state, ev) {")
	loads := 0
	h.scripts.load = func(string) ([]byte, error) {
		loads++
		return []byte("on_event := func(engine, state, ev) {"), nil
	}

	for i := 0; i < 3; i++ {
		h.agent(t, e).TakeDamage(1)
		h.frames(1)
	}
	if loads != 1 {
		t.Fatalf("expected one compile attempt before reload, got %d", loads)
	}

	h.scripts.Reload("test.tengo")
	h.agent(t, e).TakeDamage(1)
	h.frames(1)
	if loads != 2 {
		t.Fatalf("expected reload to allow one more compile attempt, got %d", loads)
	}
}

func TestBundledScriptHandlesEveryEvent(t *testing.T) {
	h := newArenaHarness(t)
	e := h.spawnBoss(t, 20, func(s *prefabs.BossSpec) {
		s.Script = "robot_boss.tengo"
	})
	h.frames(1)

	rt, err := h.scripts.runtime(e, "robot_boss.tengo")
	if err != nil {
		t.Fatalf("compile bundled script: %v", err)
	}
	engine := h.scripts.buildEngine(h.w, e, h.agent(t, e))
	for _, kind := range []boss.EventKind{
		boss.EventAggro, boss.EventAttack, boss.EventJump, boss.EventLand,
		boss.EventHealStart, boss.EventHealEnd, boss.EventHit, boss.EventDeath, boss.EventDrop,
	} {
		if err := rt.dispatch(engine, boss.Event{Kind: kind, Position: boss.Vec2{X: 20, Y: 15}}); err != nil {
			t.Fatalf("on_event(%s): %v", kind, err)
		}
	}
}
