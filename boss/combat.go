package boss

// LandingReport lists the target ids damaged by each tier of a landing.
type LandingReport struct {
	Inner []uint64
	Outer []uint64
}

func (r LandingReport) Miss() bool {
	return len(r.Inner) == 0 && len(r.Outer) == 0
}

// resolveLanding applies the two-tier area damage around center. A target is
// charged at most once; anything hit by the inner ring is skipped by the
// outer one.
func (a *Agent) resolveLanding(center Vec2) LandingReport {
	var report LandingReport
	hit := make(map[uint64]struct{})

	charge := func(radius float64, damage int, into *[]uint64) {
		for _, t := range a.deps.Query.FindInRadius(center, radius) {
			if t == nil || !t.IsAlive() {
				continue
			}
			id := t.ID()
			if _, done := hit[id]; done {
				continue
			}
			hit[id] = struct{}{}
			t.DealDamage(damage)
			*into = append(*into, id)
		}
	}

	charge(a.cfg.JumpInnerRadius, a.cfg.JumpDamage, &report.Inner)
	if a.cfg.JumpOuterRadius > a.cfg.JumpInnerRadius {
		charge(a.cfg.JumpOuterRadius, a.cfg.JumpOuterDamage, &report.Outer)
	}

	if report.Miss() {
		a.logf("jump attack missed at (%.1f, %.1f)", center.X, center.Y)
	}
	return report
}
