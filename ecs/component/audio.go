package component

// Audio queues sound effect names for the audio backend to play.
type Audio struct {
	Queue  []string
	Volume float64
}

var AudioComponent = NewComponent[Audio]()
