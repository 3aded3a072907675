package component

// Player holds the controller tunables (speeds in units per second,
// durations in frames) and its runtime counters.
type Player struct {
	MoveSpeed         float64
	JumpSpeed         float64
	CoyoteFrames      int
	DashSpeed         float64
	DashFrames        int
	DashCooldown      int
	AttackRange       float64
	AttackDamage      int
	AttackFrames      int
	AttackCooldown    int
	InvulnerableAfter int

	AirFrames      int
	DashLeft       int
	DashReady      int
	AttackLeft     int
	AttackReady    int
	DashDirection  float64
	AttackConsumed bool
}

func (p *Player) Dashing() bool {
	return p != nil && p.DashLeft > 0
}

var PlayerComponent = NewComponent[Player]()
