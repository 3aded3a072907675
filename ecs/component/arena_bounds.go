package component

// ArenaBounds is the playable rectangle in world units, anchored at the
// origin. FloorY is the top surface of the floor.
type ArenaBounds struct {
	Width  float64
	Height float64
	FloorY float64
}

var ArenaBoundsComponent = NewComponent[ArenaBounds]()
