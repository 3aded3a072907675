// Package boss implements a tick-driven boss controller: perception, a
// priority arbiter and resumable action executors.
package boss

import (
	"fmt"
	"math"
)

// Agent is a boss-type hostile controlled by a per-tick priority arbiter.
// It is not safe for concurrent use; the host drives it from its simulation
// tick.
type Agent struct {
	cfg  Config
	deps Deps

	target TargetHandle

	now      float64
	health   int
	position Vec2
	facing   Facing

	busy    BusyState
	pending *PendingAction

	aggro     Aggro
	cooldowns map[ActionKind]float64

	invincible bool
	dead       bool
	diedAt     float64

	// perception, refreshed every tick
	targetValid bool
	distance    float64
	inRange     bool

	anim     string
	animLoop bool
	hitUntil float64

	flash  flash
	drops  dropTimeline
	patrol int
}

// New creates an agent at full health standing at pos.
func New(cfg Config, pos Vec2, deps Deps) (*Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("boss: new %q: %w", cfg.Name, err)
	}
	a := &Agent{
		cfg:       cfg,
		deps:      deps.withDefaults(),
		health:    cfg.MaxHealth,
		position:  pos,
		cooldowns: make(map[ActionKind]float64, 3),
		distance:  math.Inf(1),
	}
	a.play(cfg.Animations.Idle, true)
	return a, nil
}

func (a *Agent) Config() Config { return a.cfg }
func (a *Agent) Now() float64 { return a.now }
func (a *Agent) Health() int { return a.health }
func (a *Agent) MaxHealth() int { return a.cfg.MaxHealth }
func (a *Agent) Position() Vec2 { return a.position }
func (a *Agent) Facing() Facing { return a.facing }
func (a *Agent) Busy() BusyState { return a.busy }
func (a *Agent) Aggro() Aggro { return a.aggro }
func (a *Agent) Invincible() bool { return a.invincible }
func (a *Agent) Dead() bool { return a.dead }
func (a *Agent) Target() TargetHandle { return a.target }

// Distance is the distance to the target sampled by the last tick, or +Inf
// when there was no live target.
func (a *Agent) Distance() float64 { return a.distance }

func (a *Agent) HealthFraction() float64 {
	return float64(a.health) / float64(a.cfg.MaxHealth)
}

// Pending returns a copy of the in-flight executor state.
func (a *Agent) Pending() (PendingAction, bool) {
	if a.pending == nil {
		return PendingAction{}, false
	}
	return *a.pending, true
}

// LastUsed returns when an action last completed.
func (a *Agent) LastUsed(kind ActionKind) (float64, bool) {
	at, ok := a.cooldowns[kind]
	return at, ok
}

// Expired reports that the death grace period is over and every drop has
// been spawned; the host should remove the agent.
func (a *Agent) Expired() bool {
	if !a.dead {
		return false
	}
	return a.now-a.diedAt+timeEpsilon >= a.cfg.DeathGrace && a.drops.done()
}

// SetTarget replaces the opponent the agent perceives. nil is allowed.
func (a *Agent) SetTarget(t TargetHandle) {
	a.target = t
}

// SetConfig swaps tunables in place. Runtime state is kept; health is clamped
// to the new maximum.
func (a *Agent) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("boss: reload %q: %w", cfg.Name, err)
	}
	a.cfg = cfg
	if a.health > cfg.MaxHealth {
		a.health = cfg.MaxHealth
	}
	return nil
}

// Tick advances the agent by dt seconds: perception, then either the arbiter
// or one step of the in-flight executor.
func (a *Agent) Tick(dt float64) {
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	a.now += dt
	if a.dead {
		a.drops.step(a, dt)
		return
	}

	a.perceive()
	a.flash.step(a, dt)

	if a.busy == Idle {
		a.arbitrate(dt)
		return
	}
	a.step(dt)
}

// TakeDamage applies amount to the agent unless it is healing or dead.
func (a *Agent) TakeDamage(amount int) {
	if a.dead || amount <= 0 {
		return
	}
	if a.invincible {
		a.logf("ignoring %d damage while healing", amount)
		return
	}

	a.health -= amount
	if a.health < 0 {
		a.health = 0
	}
	a.deps.Audio.PlaySFX(a.cfg.Sounds.Hit)
	a.emit(Event{Kind: EventHit, Amount: amount})

	if a.health == 0 {
		a.die()
		return
	}

	a.setAggro()
	if a.busy == Idle {
		a.hitUntil = a.now + a.cfg.HitReactDuration
		a.play(a.cfg.Animations.Hit, false)
	}
}

// Touch resolves body contact with t. Contact damage is suppressed while
// jumping.
func (a *Agent) Touch(t TargetHandle) {
	if a.dead || t == nil || !t.IsAlive() || a.cfg.ContactDamage <= 0 {
		return
	}
	if a.busy == Jumping {
		return
	}
	t.DealDamage(a.cfg.ContactDamage)
}

// Snapshot renders the agent state on one line.
func (a *Agent) Snapshot() string {
	phase := "-"
	if a.pending != nil {
		phase = a.pending.Phase.String()
	}
	return fmt.Sprintf("%s t=%.2f hp=%d/%d busy=%s phase=%s pos=(%.1f,%.1f) facing=%s dist=%.1f aggro=%t invincible=%t dead=%t",
		a.cfg.Name, a.now, a.health, a.cfg.MaxHealth, a.busy, phase,
		a.position.X, a.position.Y, a.facing, a.distance, a.aggro.Active, a.invincible, a.dead)
}

func (a *Agent) step(dt float64) {
	p := a.pending
	if p == nil {
		a.busy = Idle
		return
	}
	switch p.Kind {
	case ActionAttack:
		a.stepMelee(p, dt)
	case ActionJumpAttack:
		a.stepJump(p, dt)
	case ActionHeal:
		a.stepHeal(p, dt)
	}
}

// begin hands the agent to an executor. The arbiter only calls it while
// idle, which keeps busy states exclusive.
func (a *Agent) begin(kind ActionKind, phase Phase) *PendingAction {
	a.pending = &PendingAction{Kind: kind, Phase: phase, StartedAt: a.now}
	a.busy = kind.busy()
	return a.pending
}

// finish releases the agent back to the arbiter and starts kind's cooldown.
func (a *Agent) finish(kind ActionKind) {
	a.cooldowns[kind] = a.now
	a.pending = nil
	a.busy = Idle
}

func (a *Agent) ready(kind ActionKind, cooldown float64) bool {
	last, ok := a.cooldowns[kind]
	if !ok {
		return true
	}
	return a.now-last+timeEpsilon >= cooldown
}

func (a *Agent) grounded() bool {
	return a.deps.Ground.IsGrounded()
}

func (a *Agent) setAggro() {
	if a.target == nil || !a.target.IsAlive() {
		return
	}
	was := a.aggro.Active
	a.aggro = Aggro{Active: true, ExpiresAt: a.now + a.cfg.AggroTime}
	if !was {
		a.emit(Event{Kind: EventAggro})
	}
}

func (a *Agent) faceTowards(x float64) {
	dx := x - a.position.X
	if dx < 0 {
		a.facing = FacingLeft
	} else if dx > 0 {
		a.facing = FacingRight
	}
}

// play forwards an animation request. A looping pose already playing is not
// restarted, and nothing overrides the death pose.
func (a *Agent) play(id string, loop bool) {
	if id == "" {
		return
	}
	if a.dead && id != a.cfg.Animations.Death {
		return
	}
	if loop && a.animLoop && a.anim == id {
		return
	}
	a.anim = id
	a.animLoop = loop
	a.deps.Animation.Play(id, loop)
}

// pose is play for arbiter-driven poses, which wait out a hit reaction.
func (a *Agent) pose(id string, loop bool) {
	if a.now < a.hitUntil {
		return
	}
	a.play(id, loop)
}

func (a *Agent) logf(format string, args ...any) {
	a.deps.Logger.Printf("boss: %s: "+format, append([]any{a.cfg.Name}, args...)...)
}
