package component

// WhiteFlash blinks an entity while it is invulnerable. On toggles every
// Interval frames until Frames runs out.
type WhiteFlash struct {
	Frames   int
	Interval int
	Timer    int
	On       bool
}

var WhiteFlashComponent = NewComponent[WhiteFlash]()
