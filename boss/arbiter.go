package boss

import "math"

// arbitrate picks the single behavior for an idle agent. Rules are checked
// in fixed precedence: heal, jump attack, melee attack, chase, idle.
func (a *Agent) arbitrate(dt float64) {
	if !a.targetValid {
		a.idle(dt)
		return
	}

	frac := a.HealthFraction()
	grounded := a.grounded()

	switch {
	case frac < a.cfg.TiredThreshold && a.ready(ActionHeal, a.cfg.HealCooldown):
		a.startHeal()
	case frac < a.cfg.JumpThreshold && a.ready(ActionJumpAttack, a.cfg.JumpCooldown) &&
		a.distance <= a.cfg.JumpRange && grounded:
		a.startJump()
	case a.inRange && a.distance <= a.cfg.AttackRange && a.ready(ActionAttack, a.cfg.AttackCooldown):
		a.startMelee()
	case a.inRange && a.distance > a.cfg.AttackRange && grounded:
		a.chase(dt)
	default:
		a.idle(dt)
	}
}

// chase walks toward the target. Below the tired threshold the agent crawls.
func (a *Agent) chase(dt float64) {
	tx := a.target.Position().X
	a.faceTowards(tx)

	speed, anim := a.cfg.MoveSpeed, a.cfg.Animations.Walk
	if a.HealthFraction() < a.cfg.TiredThreshold {
		speed, anim = a.cfg.TiredSpeed, a.cfg.Animations.WalkTired
	}
	a.moveTowardsX(tx, speed*dt)
	a.pose(anim, true)
}

func (a *Agent) idle(dt float64) {
	if a.cfg.PatrolA != nil && a.cfg.PatrolB != nil && !a.inRange && a.grounded() {
		a.patrolStep(dt)
		return
	}
	a.pose(a.cfg.Animations.Idle, true)
}

// patrolStep walks back and forth between the patrol points.
func (a *Agent) patrolStep(dt float64) {
	points := [2]Vec2{*a.cfg.PatrolA, *a.cfg.PatrolB}
	dest := points[a.patrol%2].X
	if math.Abs(dest-a.position.X) <= timeEpsilon {
		a.patrol++
		dest = points[a.patrol%2].X
	}
	a.faceTowards(dest)
	a.moveTowardsX(dest, a.cfg.MoveSpeed*dt)
	a.pose(a.cfg.Animations.Walk, true)
}

// moveTowardsX moves horizontally by at most step without overshooting x.
func (a *Agent) moveTowardsX(x, step float64) {
	dx := x - a.position.X
	if math.Abs(dx) <= step {
		a.position.X = x
		return
	}
	a.position.X += math.Copysign(step, dx)
}
