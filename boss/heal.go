package boss

import "image/color"

// startHeal makes the agent invincible and shows the prepare pose for the
// heal delay before healing starts.
func (a *Agent) startHeal() {
	p := a.begin(ActionHeal, PhasePrepare)
	p.HealTicks = a.cfg.healTicks()
	a.invincible = true
	a.play(a.cfg.Animations.Prepare, true)
	a.emit(Event{Kind: EventHealStart})
	a.stepHeal(p, 0)
}

func (a *Agent) stepHeal(p *PendingAction, dt float64) {
	if a.dead {
		a.endHeal()
		return
	}

	if p.Phase == PhasePrepare {
		if !p.advance(dt, a.cfg.HealDelay) {
			return
		}
		p.enter(PhaseHealing)
		a.play(a.cfg.Animations.Heal, true)
		a.deps.Audio.PlaySFX(a.cfg.Sounds.Heal)
		a.flash.start(a)
		dt = 0
	}

	p.Elapsed += dt
	for p.HealDone < p.HealTicks && a.health < a.cfg.MaxHealth && p.Elapsed+timeEpsilon >= a.cfg.HealTick {
		p.Elapsed -= a.cfg.HealTick
		p.HealDone++
		gain := min(a.cfg.HealAmount, a.cfg.MaxHealth-a.health)
		a.health += gain
		p.Healed += gain
	}
	if p.HealDone < p.HealTicks && a.health < a.cfg.MaxHealth {
		return
	}

	healed := p.Healed
	a.endHeal()
	a.play(a.cfg.Animations.Idle, true)
	a.setAggro()
	a.finish(ActionHeal)
	a.emit(Event{Kind: EventHealEnd, Amount: healed})
}

func (a *Agent) endHeal() {
	a.flash.stop(a)
	a.invincible = false
}

// flash alternates the agent tint between two colors while it heals.
type flash struct {
	active  bool
	elapsed float64
	second  bool
}

func (f *flash) start(a *Agent) {
	*f = flash{active: true}
	a.deps.Tint.SetTint(a.flashColor(false))
}

func (f *flash) step(a *Agent, dt float64) {
	if !f.active || a.cfg.FlashPeriod <= 0 {
		return
	}
	f.elapsed += dt
	toggled := false
	for f.elapsed+timeEpsilon >= a.cfg.FlashPeriod {
		f.elapsed -= a.cfg.FlashPeriod
		f.second = !f.second
		toggled = true
	}
	if toggled {
		a.deps.Tint.SetTint(a.flashColor(f.second))
	}
}

func (f *flash) stop(a *Agent) {
	if !f.active {
		return
	}
	*f = flash{}
	a.deps.Tint.SetTint(nil)
}

func (a *Agent) flashColor(second bool) color.Color {
	if second {
		return a.cfg.FlashColors[1]
	}
	return a.cfg.FlashColors[0]
}
