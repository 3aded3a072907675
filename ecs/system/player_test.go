package system

import (
	"testing"

	"github.com/milk9111/robotboss/ecs"
	"github.com/milk9111/robotboss/ecs/component"
)

func TestDamagePlayer(t *testing.T) {
	h := newArenaHarness(t)
	player := h.spawnPlayer(t, 5)

	if !DamagePlayer(h.w, player, 30) {
		t.Fatalf("expected the first hit to land")
	}
	if DamagePlayer(h.w, player, 30) {
		t.Fatalf("expected invulnerability to block the second hit")
	}
	hp, _ := ecs.Get(h.w, player, component.HealthComponent.Kind())
	if hp.Current != 70 {
		t.Fatalf("expected 70 health, got %d", hp.Current)
	}
	if !ecs.Has(h.w, player, component.WhiteFlashComponent.Kind()) {
		t.Fatalf("expected the player to flash")
	}

	_ = ecs.Remove(h.w, player, component.InvulnerableComponent.Kind())
	if !DamagePlayer(h.w, player, 500) {
		t.Fatalf("expected the killing blow to land")
	}
	if hp.Current != 0 {
		t.Fatalf("expected health clamped at 0, got %d", hp.Current)
	}
	if DamagePlayer(h.w, player, 1) {
		t.Fatalf("expected a dead player to ignore damage")
	}
	if !contains(h.drainTypes(), EventPlayerDied) {
		t.Fatalf("expected a player death event")
	}
}

func TestPlayerStrikeDamagesBossInFront(t *testing.T) {
	cases := []struct {
		name       string
		playerX    float64
		facingLeft bool
		want       int
	}{
		{"in_front", 18, false, 95},
		{"behind", 18, true, 100},
		{"out_of_reach", 15, false, 100},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newArenaHarness(t)
			b := h.spawnBoss(t, 20, nil)
			player := h.spawnPlayer(t, c.playerX)
			h.frames(1)
			// keep the boss from swinging back
			h.agent(t, b).SetTarget(nil)

			tr, _ := ecs.Get(h.w, player, component.TransformComponent.Kind())
			tr.FacingLeft = c.facingLeft
			input, _ := ecs.Get(h.w, player, component.InputComponent.Kind())
			input.AttackPressed = true

			NewPlayerControllerSystem().Update(h.w)

			if got := h.agent(t, b).Health(); got != c.want {
				t.Fatalf("expected boss health %d, got %d", c.want, got)
			}
		})
	}
}

func TestPlayerDashSetsEvasion(t *testing.T) {
	h := newArenaHarness(t)
	player := h.spawnPlayer(t, 5)
	h.physics.Update(h.w)

	input, _ := ecs.Get(h.w, player, component.InputComponent.Kind())
	input.DashPressed = true
	controller := NewPlayerControllerSystem()
	controller.Update(h.w)

	target := playerTarget{w: h.w, e: player}
	if !target.IsEvading() {
		t.Fatalf("expected the dash to count as evading")
	}
	body, _ := ecs.Get(h.w, player, component.PhysicsBodyComponent.Kind())
	if v := body.Body.Velocity(); v.X != 20 {
		t.Fatalf("expected dash velocity 20, got %v", v.X)
	}

	input.DashPressed = false
	for i := 0; i < 9; i++ {
		controller.Update(h.w)
	}
	if target.IsEvading() {
		t.Fatalf("expected the dash to end after its frames")
	}
}

func TestPickupCollect(t *testing.T) {
	h := newArenaHarness(t)
	player := h.spawnPlayer(t, 5)
	near := h.spawnPickup(t, "coin", 5.9, 14)
	far := h.spawnPickup(t, "coin", 12, 14)

	NewPickupCollectSystem().Update(h.w)

	if ecs.IsAlive(h.w, near) {
		t.Fatalf("expected the near coin to be collected")
	}
	if !ecs.IsAlive(h.w, far) {
		t.Fatalf("expected the far coin to stay")
	}
	inv, _ := ecs.Get(h.w, player, component.InventoryComponent.Kind())
	if inv.Items["coin"] != 1 {
		t.Fatalf("expected 1 coin, got %v", inv.Items)
	}
	audio, _ := ecs.Get(h.w, player, component.AudioComponent.Kind())
	if !contains(audio.Queue, "pickup") {
		t.Fatalf("expected pickup sfx, got %v", audio.Queue)
	}
	events := h.w.Events().Drain()
	if len(events) != 1 || events[0].Type != EventItemCollected {
		t.Fatalf("expected one collect event, got %v", events)
	}
	if got := events[0].Data.(ItemCollected); got.Item != "coin" || got.Total != 1 {
		t.Fatalf("unexpected payload %+v", got)
	}
}
