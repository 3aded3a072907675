package component

// Ground is the contact state the physics system reports for dynamic
// bodies. GroundGrace counts down the frames a body still counts as
// grounded after leaving a ledge.
type Ground struct {
	Grounded    bool
	GroundGrace int
}

var GroundComponent = NewComponent[Ground]()
