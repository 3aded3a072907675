package boss

import "math"

// perceive samples the target. A missing or dead target leaves the agent
// without a distance, which stops arbitration but not a running executor.
func (a *Agent) perceive() {
	if a.aggro.Active && a.now > a.aggro.ExpiresAt {
		a.aggro = Aggro{}
	}

	a.targetValid = a.target != nil && a.target.IsAlive()
	if !a.targetValid {
		a.distance = math.Inf(1)
		a.inRange = false
		return
	}

	a.distance = a.position.Distance(a.target.Position())
	a.inRange = a.distance < a.cfg.DetectRange || a.aggro.Active
}
