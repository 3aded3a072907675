package system

import (
	"image/color"
	"log"

	"github.com/milk9111/robotboss/boss"
	"github.com/milk9111/robotboss/ecs"
	"github.com/milk9111/robotboss/ecs/component"
	"github.com/milk9111/robotboss/ecs/entity"
	"github.com/milk9111/robotboss/prefabs"
)

// playerTarget exposes a player entity to a boss controller.
type playerTarget struct {
	w *ecs.World
	e ecs.Entity
}

func (p playerTarget) ID() uint64 { return uint64(p.e) }

func (p playerTarget) Position() boss.Vec2 {
	t, ok := ecs.Get(p.w, p.e, component.TransformComponent.Kind())
	if !ok {
		return boss.Vec2{}
	}
	return boss.Vec2{X: t.X, Y: t.Y}
}

func (p playerTarget) IsAlive() bool {
	if !ecs.IsAlive(p.w, p.e) {
		return false
	}
	h, ok := ecs.Get(p.w, p.e, component.HealthComponent.Kind())
	return ok && h.Current > 0
}

func (p playerTarget) Velocity() boss.Vec2 {
	body, ok := ecs.Get(p.w, p.e, component.PhysicsBodyComponent.Kind())
	if !ok || body.Body == nil {
		return boss.Vec2{}
	}
	return body.Body.Velocity()
}

func (p playerTarget) IsEvading() bool {
	player, ok := ecs.Get(p.w, p.e, component.PlayerComponent.Kind())
	return ok && player.Dashing()
}

func (p playerTarget) DealDamage(amount int) {
	DamagePlayer(p.w, p.e, amount)
}

type animationPort struct {
	w *ecs.World
	e ecs.Entity
}

func (a animationPort) Play(id string, loop bool) {
	anim, ok := ecs.Get(a.w, a.e, component.AnimationComponent.Kind())
	if !ok {
		return
	}
	playAnimation(anim, id, loop)
}

func playAnimation(anim *component.Animation, id string, loop bool) {
	anim.Current = id
	anim.Loop = loop
	anim.Frame = 0
	anim.Elapsed = 0
	anim.Done = false
	anim.Plays++
}

type audioPort struct {
	w *ecs.World
	e ecs.Entity
}

func (a audioPort) PlaySFX(id string) {
	queueSound(a.w, a.e, id)
}

func queueSound(w *ecs.World, e ecs.Entity, id string) {
	if id == "" {
		return
	}
	audioComp, ok := ecs.Get(w, e, component.AudioComponent.Kind())
	if !ok {
		return
	}
	audioComp.Queue = append(audioComp.Queue, id)
}

type effectPort struct {
	w     *ecs.World
	arena *prefabs.ArenaSpec
}

func (p effectPort) Spawn(id string, at boss.Vec2) {
	spawnEffect(p.w, p.arena, id, at.X, at.Y)
}

func spawnEffect(w *ecs.World, arena *prefabs.ArenaSpec, id string, x, y float64) {
	if id == "" {
		return
	}
	spec := prefabs.EffectSpec{Name: id}
	if arena != nil {
		spec, _ = arena.Effect(id)
	}
	if _, err := entity.NewEffect(w, spec, x, y); err != nil {
		log.Printf("boss: spawn effect %q: %v", id, err)
	}
}

type itemSpawner struct {
	w     *ecs.World
	arena *prefabs.ArenaSpec
}

func (s itemSpawner) SpawnItem(item string, at boss.Vec2) {
	spec := prefabs.PickupSpec{Item: item}
	if s.arena != nil {
		spec, _ = s.arena.Pickup(item)
	}
	if _, err := entity.NewPickup(s.w, spec, at.X, at.Y); err != nil {
		log.Printf("boss: spawn item %q: %v", item, err)
	}
}

// spatialQuery finds players through the physics space.
type spatialQuery struct {
	w       *ecs.World
	physics *PhysicsSystem
}

func (q spatialQuery) FindInRadius(center boss.Vec2, radius float64) []boss.TargetHandle {
	var out []boss.TargetHandle
	for _, e := range q.physics.QueryRadius(center, radius) {
		if !ecs.Has(q.w, e, component.PlayerTagComponent.Kind()) {
			continue
		}
		out = append(out, playerTarget{w: q.w, e: e})
	}
	return out
}

type groundSensor struct {
	physics *PhysicsSystem
	e       ecs.Entity
}

func (g groundSensor) IsGrounded() bool { return g.physics.OnGround(g.e) }

type tinter struct {
	w *ecs.World
	e ecs.Entity
}

func (t tinter) SetTint(c color.Color) {
	tint, ok := ecs.Get(t.w, t.e, component.TintComponent.Kind())
	if !ok {
		return
	}
	tint.Color = c
}

// eventSink records agent events on the component and forwards them to the
// world queue.
type eventSink struct {
	w  *ecs.World
	bc *component.Boss
}

func (s eventSink) OnAgentEvent(ev boss.Event) {
	s.bc.Events = append(s.bc.Events, ev)
	s.w.Events().Push(ecs.Event{Type: EventBossPrefix + string(ev.Kind), Data: ev})
}
