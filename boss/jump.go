package boss

import "math"

// startJump commits the landing point and leaves the ground. The landing X is
// sampled here once; the target can still dodge a committed leap.
func (a *Agent) startJump() {
	p := a.begin(ActionJumpAttack, PhaseFlight)
	p.Origin = a.position
	p.Committed = Vec2{X: a.aimLanding(), Y: a.position.Y}

	a.faceTowards(p.Committed.X)
	a.play(a.cfg.Animations.Jump, false)
	a.deps.Audio.PlaySFX(a.cfg.Sounds.Jump)
	a.emitAt(Event{Kind: EventJump}, p.Committed)
}

// aimLanding predicts where the target will be when the agent lands.
func (a *Agent) aimLanding() float64 {
	origin := a.position.X
	pos := a.target.Position()
	vel := a.target.Velocity()

	var x float64
	if a.target.IsEvading() {
		x = pos.X + vel.X*a.cfg.EvadeDuration
	} else {
		x = pos.X + vel.X*a.cfg.JumpDuration*a.cfg.LeadFactor
		away := pos.X - origin
		if math.Abs(away) > a.cfg.EscapeDistance && away*vel.X > 0 {
			x += math.Copysign(a.cfg.EscapeBias, vel.X)
		}
	}

	if a.cfg.MaxLeap > 0 {
		x = math.Max(origin-a.cfg.MaxLeap, math.Min(origin+a.cfg.MaxLeap, x))
	}
	return x
}

func (a *Agent) stepJump(p *PendingAction, dt float64) {
	if a.dead {
		return
	}
	switch p.Phase {
	case PhaseFlight:
		p.Elapsed += dt
		t := math.Min(p.Elapsed/a.cfg.JumpDuration, 1)
		if p.Elapsed+timeEpsilon >= a.cfg.JumpDuration {
			t = 1
		}
		a.position = Vec2{
			X: p.Origin.X + (p.Committed.X-p.Origin.X)*t,
			Y: p.Origin.Y - 4*a.cfg.JumpHeight*t*(1-t),
		}
		if t < 1 {
			return
		}
		a.position = p.Committed
		a.land(p)
		p.enter(PhaseSettle)
	case PhaseSettle:
		timedOut := p.advance(dt, a.cfg.LandTimeout)
		if !a.grounded() && !timedOut {
			return
		}
		if timedOut && !a.grounded() {
			a.logf("gave up waiting for ground after %.2fs", p.Elapsed)
		}
		a.setAggro()
		a.play(a.cfg.Animations.Idle, true)
		a.finish(ActionJumpAttack)
	}
}

func (a *Agent) land(p *PendingAction) {
	a.deps.Effects.Spawn(a.cfg.Effects.Land, p.Committed)
	a.deps.Audio.PlaySFX(a.cfg.Sounds.Land)
	report := a.resolveLanding(p.Committed)
	a.emitAt(Event{Kind: EventLand, Hits: len(report.Inner) + len(report.Outer)}, p.Committed)
}
