package boss

// timeEpsilon absorbs float drift when summing fixed tick deltas.
const timeEpsilon = 1e-9

// BusyState says which long-running action owns the agent. Only one value
// can be held at a time.
type BusyState uint8

const (
	Idle BusyState = iota
	Attacking
	Jumping
	Healing
)

func (s BusyState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Attacking:
		return "attacking"
	case Jumping:
		return "jumping"
	case Healing:
		return "healing"
	}
	return "unknown"
}

// ActionKind identifies an executor and keys its cooldown.
type ActionKind uint8

const (
	ActionAttack ActionKind = iota + 1
	ActionJumpAttack
	ActionHeal
)

func (k ActionKind) String() string {
	switch k {
	case ActionAttack:
		return "attack"
	case ActionJumpAttack:
		return "jump_attack"
	case ActionHeal:
		return "heal"
	}
	return "unknown"
}

func (k ActionKind) busy() BusyState {
	switch k {
	case ActionAttack:
		return Attacking
	case ActionJumpAttack:
		return Jumping
	case ActionHeal:
		return Healing
	}
	return Idle
}

type Facing int8

const (
	FacingRight Facing = iota
	FacingLeft
)

func (f Facing) String() string {
	if f == FacingLeft {
		return "left"
	}
	return "right"
}

type Aggro struct {
	Active    bool
	ExpiresAt float64
}

// Phase is the resume point of an in-flight executor.
type Phase uint8

const (
	PhaseAnimation Phase = iota + 1
	PhaseCooldown
	PhaseFlight
	PhaseSettle
	PhasePrepare
	PhaseHealing
)

func (p Phase) String() string {
	switch p {
	case PhaseAnimation:
		return "animation"
	case PhaseCooldown:
		return "cooldown"
	case PhaseFlight:
		return "flight"
	case PhaseSettle:
		return "settle"
	case PhasePrepare:
		return "prepare"
	case PhaseHealing:
		return "healing"
	}
	return "unknown"
}

// PendingAction is the resumable state of the executor that owns the agent.
// Elapsed counts seconds spent in the current Phase.
type PendingAction struct {
	Kind      ActionKind
	Phase     Phase
	StartedAt float64
	Elapsed   float64

	// Origin is where a jump took off; Committed is its landing point,
	// sampled once when the jump starts.
	Origin    Vec2
	Committed Vec2

	HealTicks int
	HealDone  int
	Healed    int
}

// advance adds dt to the phase clock and reports whether dur has passed.
func (p *PendingAction) advance(dt, dur float64) bool {
	p.Elapsed += dt
	return p.Elapsed+timeEpsilon >= dur
}

func (p *PendingAction) enter(phase Phase) {
	p.Phase = phase
	p.Elapsed = 0
}
