package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/robotboss/common"
	"github.com/milk9111/robotboss/ecs"
	"github.com/milk9111/robotboss/ecs/component"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypePlayerGround
	collisionTypeSolid
	collisionTypeBoss
	collisionTypePickup
)

const (
	groundGraceFrames = 6
	groundProbe       = 0.1
	wallThickness     = 1.0
)

// Touch is a boss/player contact that began during the last step.
type Touch struct {
	Boss   ecs.Entity
	Player ecs.Entity
}

type PhysicsSystem struct {
	space         *cp.Space
	dt            float64
	handlersReady bool

	entities     map[ecs.Entity]*bodyInfo
	owners       map[*cp.Shape]ecs.Entity
	playerShapes map[*cp.Shape]ecs.Entity
	groundShapes map[*cp.Shape]ecs.Entity
	solidShapes  map[*cp.Shape]struct{}
	contacts     map[ecs.Entity]*contactState
	touches      []Touch
	bounds       *bodyInfo
}

type bodyInfo struct {
	body        *cp.Body
	mainShape   *cp.Shape
	groundShape *cp.Shape
	shapes      []*cp.Shape
	static      bool
	kinematic   bool
	disabled    bool
	height      float64
}

type contactState struct {
	grounded    bool
	groundGrace int
}

// NewPhysicsSystem steps the space by dt seconds per update.
func NewPhysicsSystem(dt float64) *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})
	return &PhysicsSystem{
		space:        space,
		dt:           dt,
		entities:     make(map[ecs.Entity]*bodyInfo),
		owners:       make(map[*cp.Shape]ecs.Entity),
		playerShapes: make(map[*cp.Shape]ecs.Entity),
		groundShapes: make(map[*cp.Shape]ecs.Entity),
		solidShapes:  make(map[*cp.Shape]struct{}),
		contacts:     make(map[ecs.Entity]*contactState),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.syncArenaBounds(w)
	ps.resetContacts(w)
	ps.touches = ps.touches[:0]

	ps.space.Step(ps.dt)

	ps.syncTransforms(w)
	ps.flushContacts(w)
}

// Touches returns the boss/player contacts that began during the last step.
func (ps *PhysicsSystem) Touches() []Touch {
	return ps.touches
}

// QueryRadius returns every entity with a solid collider within radius of
// center. Sensors and arena geometry are skipped.
func (ps *PhysicsSystem) QueryRadius(center cp.Vector, radius float64) []ecs.Entity {
	if ps == nil || ps.space == nil {
		return nil
	}
	seen := make(map[ecs.Entity]struct{})
	var out []ecs.Entity
	ps.shapesNear(center, radius, func(shape *cp.Shape) {
		e, ok := ps.owners[shape]
		if !ok {
			return
		}
		if _, dup := seen[e]; dup {
			return
		}
		seen[e] = struct{}{}
		out = append(out, e)
	})
	return out
}

// shapesNear calls fn for every shape whose closest point lies within
// radius of center.
func (ps *PhysicsSystem) shapesNear(center cp.Vector, radius float64, fn func(*cp.Shape)) {
	bb := cp.BB{L: center.X - radius, B: center.Y - radius, R: center.X + radius, T: center.Y + radius}
	ps.space.BBQuery(bb, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, data interface{}) {
		if shape.PointQuery(center).Distance <= radius {
			fn(shape)
		}
	}, nil)
}

// OnGround reports whether e stands on arena geometry. Dynamic bodies use
// their ground sensor; kinematic bodies probe just below their feet.
func (ps *PhysicsSystem) OnGround(e ecs.Entity) bool {
	info := ps.entities[e]
	if info == nil || info.body == nil {
		return false
	}
	if !info.kinematic {
		st := ps.contacts[e]
		return st != nil && (st.grounded || st.groundGrace > 0)
	}

	pos := info.body.Position()
	feet := cp.Vector{X: pos.X, Y: pos.Y + info.height/2 + groundProbe/2}
	grounded := false
	ps.shapesNear(feet, groundProbe, func(shape *cp.Shape) {
		if _, ok := ps.solidShapes[shape]; ok {
			grounded = true
		}
	})
	return grounded
}

// MoveKinematic gives a kinematic body the velocity that carries it to pos
// during the next step, so contacts see it moving.
func (ps *PhysicsSystem) MoveKinematic(e ecs.Entity, pos cp.Vector) {
	info := ps.entities[e]
	if info == nil || !info.kinematic || info.body == nil || ps.dt <= 0 {
		return
	}
	info.body.SetVelocityVector(pos.Sub(info.body.Position()).Mult(1 / ps.dt))
}

// Disable removes e's shapes from the space while keeping its body record,
// so a dying boss stops colliding.
func (ps *PhysicsSystem) Disable(e ecs.Entity) {
	info := ps.entities[e]
	if info == nil || info.disabled {
		return
	}
	for _, shape := range info.shapes {
		ps.space.RemoveShape(shape)
		delete(ps.owners, shape)
		delete(ps.playerShapes, shape)
	}
	info.disabled = true
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}

	groundHandler := ps.space.NewCollisionHandler(collisionTypePlayerGround, collisionTypeSolid)
	groundHandler.UserData = ps
	groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		ent, okA := sys.groundShapes[shapeA]
		if !okA {
			var okB bool
			ent, okB = sys.groundShapes[shapeB]
			if !okB {
				return true
			}
		}

		n := arb.Normal()
		if !okA {
			n = n.Neg()
		}
		// grounded only when the contact normal points down from the body
		// into the floor (positive Y in screen-down coordinates)
		if n.Y <= 0.5 {
			return true
		}
		st := sys.contacts[ent]
		if st == nil {
			st = &contactState{}
			sys.contacts[ent] = st
		}
		st.grounded = true
		st.groundGrace = groundGraceFrames
		return true
	}

	touchHandler := ps.space.NewCollisionHandler(collisionTypeBoss, collisionTypePlayer)
	touchHandler.UserData = ps
	touchHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		a, okA := sys.owners[shapeA]
		b, okB := sys.owners[shapeB]
		if !okA || !okB {
			return true
		}
		if _, isPlayer := sys.playerShapes[shapeA]; isPlayer {
			a, b = b, a
		}
		sys.touches = append(sys.touches, Touch{Boss: a, Player: b})
		return true
	}
	// the boss walks through the player; contact only deals damage
	touchHandler.PreSolveFunc = ignoreContact

	for _, pair := range [][2]cp.CollisionType{
		{collisionTypePickup, collisionTypePlayer},
		{collisionTypePickup, collisionTypeBoss},
		{collisionTypePickup, collisionTypePickup},
	} {
		h := ps.space.NewCollisionHandler(pair[0], pair[1])
		h.PreSolveFunc = ignoreContact
	}

	ps.handlersReady = true
}

func ignoreContact(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
	return false
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if info := ps.entities[e]; info != nil {
			return
		}

		kind := collisionTypeFor(w, e)
		info := ps.createBodyInfo(transform, bodyComp, kind)
		ps.entities[e] = info
		for _, shape := range info.shapes {
			if shape == info.groundShape {
				ps.groundShapes[shape] = e
				continue
			}
			ps.owners[shape] = e
			if kind == collisionTypePlayer {
				ps.playerShapes[shape] = e
			}
			if info.static {
				ps.solidShapes[shape] = struct{}{}
			}
		}
		bodyComp.Body = info.body
		bodyComp.Shape = info.mainShape
	})
}

func collisionTypeFor(w *ecs.World, e ecs.Entity) cp.CollisionType {
	switch {
	case ecs.Has(w, e, component.PlayerTagComponent.Kind()):
		return collisionTypePlayer
	case ecs.Has(w, e, component.BossTagComponent.Kind()):
		return collisionTypeBoss
	case ecs.Has(w, e, component.PickupComponent.Kind()):
		return collisionTypePickup
	}
	return collisionTypeSolid
}

func (ps *PhysicsSystem) createBodyInfo(transform *component.Transform, bodyComp *component.PhysicsBody, kind cp.CollisionType) *bodyInfo {
	width, height := bodyComp.Width, bodyComp.Height
	if width <= 0 || height <= 0 {
		width, height = 1, 1
	}

	info := &bodyInfo{static: bodyComp.Static, kinematic: bodyComp.Kinematic, height: height}

	if bodyComp.Static {
		bb := cp.BB{L: transform.X - width/2, B: transform.Y - height/2, R: transform.X + width/2, T: transform.Y + height/2}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(bodyComp.Friction)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)

		info.body = ps.space.StaticBody
		info.mainShape = shape
		info.shapes = []*cp.Shape{shape}
		return info
	}

	var body *cp.Body
	if bodyComp.Kinematic {
		body = cp.NewKinematicBody()
	} else {
		mass := bodyComp.Mass
		if mass <= 0 {
			mass = 1
		}
		// infinite moment keeps characters upright
		body = cp.NewBody(mass, math.Inf(1))
	}
	body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(bodyComp.Friction)
	shape.SetCollisionType(kind)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	info.body = body
	info.mainShape = shape
	info.shapes = []*cp.Shape{shape}

	if !bodyComp.Kinematic {
		groundShape := createGroundSensor(width, height, body)
		ps.space.AddShape(groundShape)
		info.groundShape = groundShape
		info.shapes = append(info.shapes, groundShape)
	}

	return info
}

func createGroundSensor(width, height float64, body *cp.Body) *cp.Shape {
	groundBB := cp.BB{
		L: -width * 0.45,
		B: height / 2.0,
		R: width * 0.45,
		T: height/2.0 + groundProbe,
	}

	groundShape := cp.NewBox2(body, groundBB, 0)
	groundShape.SetSensor(true)
	groundShape.SetCollisionType(collisionTypePlayerGround)
	return groundShape
}

// syncArenaBounds adds the floor and side walls once an arena exists.
func (ps *PhysicsSystem) syncArenaBounds(w *ecs.World) {
	if ps.bounds != nil {
		return
	}
	arenaEnt, ok := ecs.First(w, component.ArenaBoundsComponent.Kind())
	if !ok {
		return
	}
	bounds, _ := ecs.Get(w, arenaEnt, component.ArenaBoundsComponent.Kind())
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}

	floor := bounds.FloorY
	if floor <= 0 {
		floor = bounds.Height
	}
	boxes := []cp.BB{
		{L: -wallThickness, B: floor, R: bounds.Width + wallThickness, T: floor + wallThickness},
		{L: -wallThickness, B: 0, R: 0, T: floor},
		{L: bounds.Width, B: 0, R: bounds.Width + wallThickness, T: floor},
	}

	info := &bodyInfo{static: true, body: ps.space.StaticBody}
	for _, bb := range boxes {
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		ps.solidShapes[shape] = struct{}{}
		info.shapes = append(info.shapes, shape)
	}
	ps.bounds = info
}

func (ps *PhysicsSystem) resetContacts(w *ecs.World) {
	seen := make(map[ecs.Entity]struct{})
	ecs.ForEach(w, component.GroundComponent.Kind(), func(e ecs.Entity, g *component.Ground) {
		seen[e] = struct{}{}
		st := ps.contacts[e]
		if st == nil {
			st = &contactState{}
			ps.contacts[e] = st
		}
		st.groundGrace = g.GroundGrace
		if st.groundGrace > 0 {
			st.groundGrace--
		}
		st.grounded = false
	})

	for e := range ps.contacts {
		if _, ok := seen[e]; !ok {
			delete(ps.contacts, e)
		}
	}
}

func (ps *PhysicsSystem) flushContacts(w *ecs.World) {
	for e, st := range ps.contacts {
		g, ok := ecs.Get(w, e, component.GroundComponent.Kind())
		if !ok {
			continue
		}
		g.Grounded = st.grounded
		g.GroundGrace = st.groundGrace
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Body == nil || bodyComp.Static || bodyComp.Kinematic {
			return
		}
		pos := bodyComp.Body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}

		for _, shape := range info.shapes {
			if !info.disabled {
				ps.space.RemoveShape(shape)
			}
			delete(ps.owners, shape)
			delete(ps.playerShapes, shape)
			delete(ps.groundShapes, shape)
			delete(ps.solidShapes, shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}

		delete(ps.entities, e)
		delete(ps.contacts, e)
	}
}
