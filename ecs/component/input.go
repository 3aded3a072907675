package component

// Input stores per-frame input state for an entity.
type Input struct {
	MoveX         float64
	JumpPressed   bool
	DashPressed   bool
	AttackPressed bool
}

var InputComponent = NewComponent[Input]()
