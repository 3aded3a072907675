package component

// Animation tracks the pose requested by gameplay code. Frame advances at
// FPS; a non-looping pose holds its last frame and sets Done.
type Animation struct {
	Current    string
	Loop       bool
	Frame      int
	FrameCount int
	FPS        float64
	Elapsed    float64
	Done       bool
	Plays      int
}

var AnimationComponent = NewComponent[Animation]()
