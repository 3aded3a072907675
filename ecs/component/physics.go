package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Kinematic bodies are moved by their owner and ignore gravity.
type PhysicsBody struct {
	Body      *cp.Body
	Shape     *cp.Shape
	Width     float64
	Height    float64
	Mass      float64
	Friction  float64
	Static    bool
	Kinematic bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
