package component

// Invulnerable marks an entity as temporarily immune to damage.
// If Frames > 0 the system counts down each tick and removes the component
// at zero. Frames == 0 means indefinite invulnerability until removed.
type Invulnerable struct {
	Frames int
}

var InvulnerableComponent = NewComponent[Invulnerable]()
