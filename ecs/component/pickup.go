package component

import "image/color"

// Pickup is a collectible dropped into the arena. Radius is how close the
// player must get to collect it.
type Pickup struct {
	Item   string
	Radius float64
	Size   float64
	Color  color.Color
}

var PickupComponent = NewComponent[Pickup]()
