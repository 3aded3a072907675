package system

import (
	"testing"

	"github.com/milk9111/robotboss/ecs"
	"github.com/milk9111/robotboss/ecs/component"
	"github.com/milk9111/robotboss/ecs/entity"
	"github.com/milk9111/robotboss/prefabs"
)

func TestTTLDestroysAtZero(t *testing.T) {
	w := ecs.NewWorld()
	e, err := entity.NewEffect(w, prefabs.EffectSpec{Name: "spark", Frames: 3}, 1, 1)
	if err != nil {
		t.Fatalf("NewEffect: %v", err)
	}
	ttl, effects := NewTTLSystem(), NewEffectSystem()
	for i := 0; i < 2; i++ {
		effects.Update(w)
		ttl.Update(w)
	}
	fx, ok := ecs.Get(w, e, component.EffectComponent.Kind())
	if !ok {
		t.Fatalf("expected the effect to live for 3 frames")
	}
	if fx.Progress() < 0.6 {
		t.Fatalf("expected progress 2/3, got %v", fx.Progress())
	}
	ttl.Update(w)
	if ecs.IsAlive(w, e) {
		t.Fatalf("expected the effect to be destroyed")
	}
}

func TestInvulnerableCountsDown(t *testing.T) {
	w := ecs.NewWorld()
	timed := ecs.CreateEntity(w)
	forever := ecs.CreateEntity(w)
	_ = ecs.Add(w, timed, component.InvulnerableComponent.Kind(), &component.Invulnerable{Frames: 2})
	_ = ecs.Add(w, forever, component.InvulnerableComponent.Kind(), &component.Invulnerable{})

	s := NewInvulnerableSystem()
	s.Update(w)
	if !ecs.Has(w, timed, component.InvulnerableComponent.Kind()) {
		t.Fatalf("expected one frame left")
	}
	s.Update(w)
	if ecs.Has(w, timed, component.InvulnerableComponent.Kind()) {
		t.Fatalf("expected timed invulnerability removed")
	}
	if !ecs.Has(w, forever, component.InvulnerableComponent.Kind()) {
		t.Fatalf("expected indefinite invulnerability kept")
	}
}

func TestWhiteFlashToggles(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.WhiteFlashComponent.Kind(), &component.WhiteFlash{Frames: 4, Interval: 2})

	s := NewWhiteFlashSystem()
	var states []bool
	for i := 0; i < 4; i++ {
		wf, ok := ecs.Get(w, e, component.WhiteFlashComponent.Kind())
		if !ok {
			break
		}
		s.Update(w)
		states = append(states, wf.On)
	}
	want := []bool{false, true, true, false}
	for i := range want {
		if i >= len(states) || states[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, states)
		}
	}
	if ecs.Has(w, e, component.WhiteFlashComponent.Kind()) {
		t.Fatalf("expected the flash to end")
	}
}

func TestAnimationAdvances(t *testing.T) {
	w := ecs.NewWorld()
	loop := ecs.CreateEntity(w)
	once := ecs.CreateEntity(w)
	_ = ecs.Add(w, loop, component.AnimationComponent.Kind(), &component.Animation{Current: "walk", Loop: true, FPS: 30, FrameCount: 4})
	_ = ecs.Add(w, once, component.AnimationComponent.Kind(), &component.Animation{Current: "dead", FPS: 30, FrameCount: 4})

	s := NewAnimationSystem()
	for i := 0; i < 11; i++ {
		s.Update(w)
	}

	a, _ := ecs.Get(w, loop, component.AnimationComponent.Kind())
	if a.Done || a.Frame != 1 {
		t.Fatalf("expected looping pose on frame 1, got frame %d done=%t", a.Frame, a.Done)
	}
	b, _ := ecs.Get(w, once, component.AnimationComponent.Kind())
	if !b.Done || b.Frame != 3 {
		t.Fatalf("expected one-shot pose held on frame 3, got frame %d done=%t", b.Frame, b.Done)
	}
}

func TestCameraShakeDecays(t *testing.T) {
	w := ecs.NewWorld()
	entity.RequestShake(w, 1, 3)
	entity.RequestShake(w, 0.5, 10)

	req, _ := ecs.Get(w, mustFirst(t, w), component.CameraShakeRequestComponent.Kind())
	if req.Intensity != 1 || req.Frames != 10 {
		t.Fatalf("expected merged request 1/10, got %+v", req)
	}

	s := NewCameraShakeSystem()
	for i := 0; i < 10; i++ {
		s.Update(w)
		if s.OffsetX > 1 || s.OffsetX < -1 || s.OffsetY > 1 || s.OffsetY < -1 {
			t.Fatalf("offset out of range: %v,%v", s.OffsetX, s.OffsetY)
		}
	}
	s.Update(w)
	if s.OffsetX != 0 || s.OffsetY != 0 {
		t.Fatalf("expected the shake to stop")
	}
	if ecs.Count(w, component.CameraShakeRequestComponent.Kind()) != 0 {
		t.Fatalf("expected the request to be removed")
	}
}

func mustFirst(t *testing.T, w *ecs.World) ecs.Entity {
	t.Helper()
	e, ok := ecs.First(w, component.CameraShakeRequestComponent.Kind())
	if !ok {
		t.Fatalf("no shake request")
	}
	return e
}

type fakeSounds struct {
	played []string
}

func (f *fakeSounds) Play(name string, volume float64) bool {
	if name == "missing" {
		return false
	}
	f.played = append(f.played, name)
	return true
}

func TestAudioSystemDrainsQueues(t *testing.T) {
	w := ecs.NewWorld()
	a := ecs.CreateEntity(w)
	b := ecs.CreateEntity(w)
	_ = ecs.Add(w, a, component.AudioComponent.Kind(), &component.Audio{Queue: []string{"hit", "land", "missing"}, Volume: 1})
	_ = ecs.Add(w, b, component.AudioComponent.Kind(), &component.Audio{Queue: []string{"hit"}, Volume: 1})

	sounds := &fakeSounds{}
	NewAudioSystem(sounds).Update(w)

	if len(sounds.played) != 2 || sounds.played[0] != "hit" || sounds.played[1] != "land" {
		t.Fatalf("expected hit and land once each, got %v", sounds.played)
	}
	for _, e := range []ecs.Entity{a, b} {
		audio, _ := ecs.Get(w, e, component.AudioComponent.Kind())
		if len(audio.Queue) != 0 {
			t.Fatalf("expected queue drained, got %v", audio.Queue)
		}
	}
}
