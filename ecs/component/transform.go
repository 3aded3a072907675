package component

// Transform is the center of an entity in world units. Y grows down.
type Transform struct {
	X          float64
	Y          float64
	FacingLeft bool
}

var TransformComponent = NewComponent[Transform]()
