package system

import (
	"math"

	"github.com/milk9111/robotboss/ecs"
	"github.com/milk9111/robotboss/ecs/component"
)

const (
	whiteFlashInterval = 4
	attackReachY       = 2.0
)

type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach4(w,
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, player *component.Player, input *component.Input, bodyComp *component.PhysicsBody, t *component.Transform) {
			if bodyComp.Body == nil {
				return
			}

			vel := bodyComp.Body.Velocity()
			if hp, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && hp.Current <= 0 {
				vel.X = 0
				bodyComp.Body.SetVelocityVector(vel)
				return
			}

			if g, ok := ecs.Get(w, e, component.GroundComponent.Kind()); ok && g.Grounded {
				player.AirFrames = 0
			} else {
				player.AirFrames++
			}
			if player.DashReady > 0 {
				player.DashReady--
			}
			if player.AttackReady > 0 {
				player.AttackReady--
			}

			if input.MoveX != 0 && !player.Dashing() {
				t.FacingLeft = input.MoveX < 0
			}

			if input.DashPressed && player.DashReady == 0 && !player.Dashing() && player.DashFrames > 0 {
				player.DashLeft = player.DashFrames
				player.DashReady = player.DashCooldown
				player.DashDirection = 1
				if t.FacingLeft {
					player.DashDirection = -1
				}
			}

			if player.Dashing() {
				vel.X = player.DashDirection * player.DashSpeed
				vel.Y = 0
				player.DashLeft--
			} else {
				vel.X = input.MoveX * player.MoveSpeed
				if input.JumpPressed && player.AirFrames <= player.CoyoteFrames {
					vel.Y = -player.JumpSpeed
					player.AirFrames = player.CoyoteFrames + 1
				}
			}

			if input.AttackPressed && player.AttackReady == 0 && player.AttackLeft == 0 {
				player.AttackLeft = player.AttackFrames
				player.AttackReady = player.AttackCooldown
				player.AttackConsumed = false
			}
			if player.AttackLeft > 0 {
				if !player.AttackConsumed {
					strikeBosses(w, t, player)
					player.AttackConsumed = true
				}
				player.AttackLeft--
			}

			bodyComp.Body.SetVelocityVector(vel)
			if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
				if pose, loop := playerPose(player, vel.X, player.AirFrames > 0); pose != anim.Current {
					playAnimation(anim, pose, loop)
				}
			}
		})
}

// strikeBosses damages every boss in front of the player within reach.
func strikeBosses(w *ecs.World, t *component.Transform, player *component.Player) {
	ecs.ForEach2(w, component.BossComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bc *component.Boss, bt *component.Transform) {
		if bc.Agent == nil || bc.Agent.Dead() {
			return
		}
		dx := bt.X - t.X
		if math.Abs(dx) > player.AttackRange || math.Abs(bt.Y-t.Y) > attackReachY {
			return
		}
		if dx != 0 && (dx < 0) != t.FacingLeft {
			return
		}
		bc.Agent.TakeDamage(player.AttackDamage)
	})
}

func playerPose(player *component.Player, vx float64, airborne bool) (string, bool) {
	switch {
	case player.AttackLeft > 0:
		return "attack", false
	case player.Dashing():
		return "dash", false
	case airborne:
		return "jump", true
	case vx != 0:
		return "run", true
	}
	return "idle", true
}

// DamagePlayer applies amount to a player unless it is invulnerable or
// already dead. It reports whether the damage landed.
func DamagePlayer(w *ecs.World, e ecs.Entity, amount int) bool {
	if amount <= 0 || !ecs.IsAlive(w, e) {
		return false
	}
	hp, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok || hp.Current <= 0 {
		return false
	}
	if ecs.Has(w, e, component.InvulnerableComponent.Kind()) {
		return false
	}

	hp.Current -= amount
	if hp.Current < 0 {
		hp.Current = 0
	}
	queueSound(w, e, "player_hurt")

	if hp.Current == 0 {
		if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
			playAnimation(anim, "dead", false)
		}
		w.Events().Push(ecs.Event{Type: EventPlayerDied, Data: e})
		return true
	}

	if player, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok && player.InvulnerableAfter > 0 {
		_ = ecs.Add(w, e, component.InvulnerableComponent.Kind(), &component.Invulnerable{Frames: player.InvulnerableAfter})
		_ = ecs.Add(w, e, component.WhiteFlashComponent.Kind(), &component.WhiteFlash{
			Frames:   player.InvulnerableAfter,
			Interval: whiteFlashInterval,
		})
	}
	return true
}
