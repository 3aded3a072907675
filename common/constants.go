package common

const (
	BaseWidth  = 960
	BaseHeight = 540

	// PixelsPerUnit converts world units to screen pixels.
	PixelsPerUnit = 32.0

	// Gravity in world units per second squared; +Y is down.
	Gravity = 40.0

	TPS = 60
)
