package boss

// die is terminal. Any executor is dropped where it stands, so a jump that
// has not landed never spawns its landing effect or deals its damage.
func (a *Agent) die() {
	if a.dead {
		return
	}
	if a.pending != nil {
		a.logf("%s interrupted by death in phase %s", a.pending.Kind, a.pending.Phase)
	}
	a.endHeal()
	a.pending = nil
	a.busy = Idle
	a.aggro = Aggro{}

	a.dead = true
	a.diedAt = a.now
	a.play(a.cfg.Animations.Death, false)
	a.deps.Audio.PlaySFX(a.cfg.Sounds.Death)
	a.deps.Effects.Spawn(a.cfg.Effects.Death, a.position)
	a.emit(Event{Kind: EventDeath})

	a.drops.schedule(a.cfg.Drops.Roll(a.deps.Rand), a.position)
}
