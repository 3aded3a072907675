package boss

// startMelee faces the target and lands the single hit of the attack. The
// hit is not re-checked later in the sequence.
func (a *Agent) startMelee() {
	a.begin(ActionAttack, PhaseAnimation)
	a.faceTowards(a.target.Position().X)
	a.play(a.cfg.Animations.Attack, false)
	a.deps.Audio.PlaySFX(a.cfg.Sounds.Attack)

	hits := 0
	if a.distance <= a.cfg.AttackRange {
		a.target.DealDamage(a.cfg.AttackDamage)
		hits = 1
	}
	a.emit(Event{Kind: EventAttack, Amount: a.cfg.AttackDamage, Hits: hits})
}

// stepMelee runs animation then recovery. The attack cooldown starts when
// recovery ends, not when the hit landed.
func (a *Agent) stepMelee(p *PendingAction, dt float64) {
	if a.dead {
		return
	}
	if p.Phase == PhaseAnimation {
		if !p.advance(dt, a.cfg.AttackAnimDuration) {
			return
		}
		p.enter(PhaseCooldown)
		a.play(a.cfg.Animations.Idle, true)
		dt = 0
	}
	if p.Phase == PhaseCooldown && p.advance(dt, a.cfg.attackRecovery()) {
		a.finish(ActionAttack)
	}
}
