package component

import "image/color"

// Effect is a short-lived visual such as a landing shockwave. Radius is the
// size it grows to over Frames.
type Effect struct {
	Name    string
	Radius  float64
	Frames  int
	Elapsed int
	Color   color.Color
}

func (e *Effect) Progress() float64 {
	if e == nil || e.Frames <= 0 {
		return 1
	}
	return float64(e.Elapsed) / float64(e.Frames)
}

var EffectComponent = NewComponent[Effect]()
