package boss

type EventKind string

const (
	EventAggro     EventKind = "aggro"
	EventAttack    EventKind = "attack"
	EventJump      EventKind = "jump"
	EventLand      EventKind = "land"
	EventHealStart EventKind = "heal_start"
	EventHealEnd   EventKind = "heal_end"
	EventHit       EventKind = "hit"
	EventDeath     EventKind = "death"
	EventDrop      EventKind = "drop"
)

// Event is published to the Listener port when something noteworthy happens.
type Event struct {
	Kind     EventKind
	At       float64
	Position Vec2
	Amount   int
	Hits     int
	Item     string
}

func (a *Agent) emit(ev Event) {
	a.emitAt(ev, a.position)
}

func (a *Agent) emitAt(ev Event, at Vec2) {
	ev.At = a.now
	ev.Position = at
	a.deps.Listener.OnAgentEvent(ev)
}
