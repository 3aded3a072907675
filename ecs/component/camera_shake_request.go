package component

// CameraShakeRequest asks the renderer to shake the view. Intensity is in
// world units; the system counts Frames down and removes the request.
type CameraShakeRequest struct {
	Frames    int
	Intensity float64
}

var CameraShakeRequestComponent = NewComponent[CameraShakeRequest]()
