package component

import "image/color"

// Tint overrides an entity's draw color. A nil Color means no override.
type Tint struct {
	Color color.Color
}

var TintComponent = NewComponent[Tint]()
