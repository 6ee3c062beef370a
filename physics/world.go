// Package physics is a 2.5-D rigid body world. Chipmunk resolves collisions
// in the horizontal XZ plane (world Z maps to chipmunk Y) while heights,
// gravity and the floor plane are handled here.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

type Config struct {
	Gravity   float64
	FloorY    float64
	FixedStep float64
}

func DefaultConfig() Config {
	return Config{Gravity: -9.81, FixedStep: 1.0 / 60.0}
}

type World struct {
	cfg      Config
	space    *cp.Space
	bodies   []*Body
	triggers []*Trigger
	floor    *Body
	ray      rayQuery
}

// contactSkin is the overlap left after pushing a body out of a collider so
// the contact stays reported on the next step.
const contactSkin = 0.002

const maxResolvePasses = 3

func NewWorld(cfg Config) *World {
	if cfg.FixedStep <= 0 {
		cfg.FixedStep = 1.0 / 60.0
	}
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetCollisionSlop(contactSkin)
	w := &World{
		cfg:   cfg,
		space: space,
	}
	w.floor = &Body{world: w, kind: BodyStatic, group: StaticFilter, y: cfg.FloorY}
	w.ensureHandlers()
	return w
}

// Floor is the infinite static plane every dynamic body rests on.
func (w *World) Floor() *Body {
	return w.floor
}

func (w *World) Bodies() []*Body {
	return w.bodies
}

func (w *World) Triggers() []*Trigger {
	return w.triggers
}

func (w *World) ensureHandlers() {
	handler := w.space.NewCollisionHandler(collisionTrigger, collisionDynamic)
	handler.UserData = w
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		if t, b := triggerPair(arb); t != nil && b != nil {
			t.addTouching(b)
		}
		return true
	}
	handler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		if t, b := triggerPair(arb); t != nil && b != nil {
			t.removeTouching(b)
		}
	}
}

func triggerPair(arb *cp.Arbiter) (*Trigger, *Body) {
	shapeA, shapeB := arb.Shapes()
	t, ok := shapeA.UserData.(*Trigger)
	if !ok {
		t, _ = shapeB.UserData.(*Trigger)
		shapeA, shapeB = shapeB, shapeA
	}
	b, _ := shapeB.UserData.(*Body)
	return t, b
}

// AddStaticBody places an immovable collider.
func (w *World) AddStaticBody(shape Shape, pos mgl64.Vec3, rot mgl64.Quat, group FilterGroup) *Body {
	body := cp.NewStaticBody()
	body.SetPosition(toPlane(pos))
	body.SetAngle(planeAngle(rot))
	w.space.AddBody(body)
	return w.attach(BodyStatic, body, shape, pos.Y(), group, collisionStatic)
}

// AddKinematicBody adds a body that is moved explicitly and pushes dynamic
// bodies without being pushed back.
func (w *World) AddKinematicBody(shape Shape, pos mgl64.Vec3, group FilterGroup) *Body {
	body := cp.NewKinematicBody()
	body.SetPosition(toPlane(pos))
	w.space.AddBody(body)
	return w.attach(BodyKinematic, body, shape, pos.Y(), group, collisionKinematic)
}

// AddDynamicBody adds a simulated body. It never rotates.
func (w *World) AddDynamicBody(shape Shape, mass float64, pos mgl64.Vec3, group FilterGroup) *Body {
	body := cp.NewBody(mass, cp.INFINITY)
	body.SetPosition(toPlane(pos))
	w.space.AddBody(body)
	return w.attach(BodyDynamic, body, shape, pos.Y(), group, collisionDynamic)
}

func (w *World) attach(kind BodyKind, body *cp.Body, shape Shape, y float64, group FilterGroup, ct cp.CollisionType) *Body {
	b := &Body{world: w, kind: kind, body: body, group: group, y: y, outline: shape.outline()}
	b.lo, b.hi = shape.extent()
	b.shape = shape.build(body)
	b.shape.SetFriction(0)
	b.shape.SetElasticity(0)
	b.shape.SetFilter(shapeFilter(group))
	b.shape.SetCollisionType(ct)
	b.shape.UserData = b
	w.space.AddShape(b.shape)
	w.bodies = append(w.bodies, b)
	return b
}

func (w *World) RemoveBody(b *Body) {
	if b == nil || b.world != w || b.body == nil {
		return
	}
	for _, t := range w.triggers {
		t.removeTouching(b)
	}
	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.body)
	for i, o := range w.bodies {
		if o == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	b.world = nil
}

func (w *World) AddTrigger(t *Trigger, group FilterGroup) {
	if t.world != nil {
		return
	}
	t.group = group
	t.shape.SetFilter(shapeFilter(group))
	w.space.AddBody(t.body)
	w.space.AddShape(t.shape)
	t.world = w
	w.triggers = append(w.triggers, t)
}

func (w *World) RemoveTrigger(t *Trigger) {
	if t == nil || t.world != w {
		return
	}
	w.space.RemoveShape(t.shape)
	w.space.RemoveBody(t.body)
	t.touching = t.touching[:0]
	t.overlapping = t.overlapping[:0]
	t.world = nil
	for i, o := range w.triggers {
		if o == t {
			w.triggers = append(w.triggers[:i], w.triggers[i+1:]...)
			return
		}
	}
}

// Step advances the simulation by dt in equal sub-steps no longer than the
// fixed step, capped at maxSubSteps.
func (w *World) Step(dt float64, maxSubSteps int) {
	if dt <= 0 {
		return
	}
	if maxSubSteps < 1 {
		maxSubSteps = 1
	}
	n := int(math.Ceil(dt/w.cfg.FixedStep - 1e-9))
	if n < 1 {
		n = 1
	}
	if n > maxSubSteps {
		n = maxSubSteps
	}
	h := dt / float64(n)
	for i := 0; i < n; i++ {
		w.space.Step(h)
		w.integrateHeights(h)
		w.resolvePenetrations()
	}
	w.collectContacts()
	for _, t := range w.triggers {
		t.refreshOverlaps()
	}
}

// resolvePenetrations pushes every dynamic body out of the static and
// kinematic colliders it overlaps and removes the velocity pointing into
// them. The solver alone lets a body whose velocity is set every frame sink
// into and through thin walls.
func (w *World) resolvePenetrations() {
	for _, b := range w.bodies {
		if b.kind != BodyDynamic {
			continue
		}
		for pass := 0; pass < maxResolvePasses; pass++ {
			var push cp.Vector
			vel := b.body.Velocity()
			w.space.ShapeQuery(b.shape, func(other *cp.Shape, set *cp.ContactPointSet) {
				if other.Sensor() || other.Body() == nil || other.Body().GetType() == cp.BODY_DYNAMIC {
					return
				}
				depth := 0.0
				for i := 0; i < set.Count; i++ {
					depth = math.Min(depth, set.Points[i].Distance)
				}
				// set.Normal points from b towards other.
				away := set.Normal.Neg()
				if d := -depth - contactSkin; d > 0 {
					push = push.Add(away.Mult(d))
				}
				if vn := vel.Dot(away); vn < 0 {
					vel = vel.Sub(away.Mult(vn))
				}
			})
			if vel != b.body.Velocity() {
				b.body.SetVelocityVector(vel)
			}
			if push.LengthSq() == 0 {
				break
			}
			b.body.SetPosition(b.body.Position().Add(push))
			b.shape.CacheBB()
		}
	}
}

func (w *World) integrateHeights(h float64) {
	for _, b := range w.bodies {
		if b.kind != BodyDynamic {
			continue
		}
		b.velY += w.cfg.Gravity * h
		b.y += b.velY * h
		b.onFloor = false
		if b.y+b.lo <= w.cfg.FloorY {
			b.y = w.cfg.FloorY - b.lo
			if b.velY < 0 {
				b.velY = 0
			}
			b.onFloor = true
		}
	}
}

func (w *World) collectContacts() {
	up := mgl64.Vec3{0, 1, 0}
	for _, b := range w.bodies {
		if b.kind != BodyDynamic {
			continue
		}
		b.contacts = b.contacts[:0]
		if b.onFloor {
			b.contacts = append(b.contacts, Contact{Normal: up, Other: w.floor})
		}
		w.space.ShapeQuery(b.shape, func(other *cp.Shape, set *cp.ContactPointSet) {
			if other.Sensor() {
				return
			}
			n := set.Normal.Neg()
			contact := Contact{Normal: mgl64.Vec3{n.X, 0, n.Y}}
			if obj, ok := other.UserData.(CollisionObject); ok {
				contact.Other = obj
			}
			b.contacts = append(b.contacts, contact)
		})
	}
}

// DrawSpace hands every collider and trigger to a chipmunk debug drawer.
// Coordinates are world X and Z.
func (w *World) DrawSpace(d cp.Drawer) {
	cp.DrawSpace(w.space, d)
}
