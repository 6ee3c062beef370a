package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

type BodyKind int

const (
	BodyStatic BodyKind = iota
	BodyKinematic
	BodyDynamic
)

// CollisionObject is anything a ray can hit: a Body or a Trigger.
type CollisionObject interface {
	Owner() any
	Group() FilterGroup
}

// Contact is a touching surface. Normal points from the other object towards
// the body.
type Contact struct {
	Normal mgl64.Vec3
	Other  CollisionObject
}

// Body is a rigid body. Its horizontal motion and collisions live in the
// chipmunk space; its height is integrated by the World.
type Body struct {
	world  *World
	kind   BodyKind
	body   *cp.Body
	shape  *cp.Shape
	group  FilterGroup
	owner  any
	y      float64
	lo, hi float64
	velY   float64

	onFloor  bool
	contacts []Contact
	outline  []cp.Vector
}

func (b *Body) Kind() BodyKind      { return b.kind }
func (b *Body) Group() FilterGroup  { return b.group }
func (b *Body) Owner() any          { return b.owner }
func (b *Body) SetOwner(owner any)  { b.owner = owner }
func (b *Body) Contacts() []Contact { return b.contacts }

// OnFloor reports whether the last step left the body resting on the floor plane.
func (b *Body) OnFloor() bool { return b.onFloor }

func (b *Body) Position() mgl64.Vec3 {
	if b.body == nil {
		return mgl64.Vec3{0, b.y, 0}
	}
	return fromPlane(b.body.Position(), b.y)
}

func (b *Body) SetPosition(p mgl64.Vec3) {
	b.y = p.Y()
	if b.body == nil {
		return
	}
	b.body.SetPosition(toPlane(p))
	if b.shape != nil {
		b.shape.CacheBB()
	}
}

func (b *Body) SetRotation(q mgl64.Quat) {
	if b.body == nil {
		return
	}
	b.body.SetAngle(planeAngle(q))
	if b.shape != nil {
		b.shape.CacheBB()
	}
}

func (b *Body) LinearVelocity() mgl64.Vec3 {
	if b.body == nil {
		return mgl64.Vec3{}
	}
	return fromPlane(b.body.Velocity(), b.velY)
}

// SetLinearVelocity sets the velocity minus any part pointing into a surface
// the body touched in the last step.
func (b *Body) SetLinearVelocity(v mgl64.Vec3) {
	if b.body == nil {
		return
	}
	for _, c := range b.contacts {
		if vn := v.Dot(c.Normal); vn < 0 {
			v = v.Sub(c.Normal.Mul(vn))
		}
	}
	b.body.SetVelocityVector(toPlane(v))
	b.velY = v.Y()
}

// Span returns the world-space vertical range of the body.
func (b *Body) Span() (lo, hi float64) {
	return b.y + b.lo, b.y + b.hi
}

// Outline returns the world-space footprint polygon.
func (b *Body) Outline() []mgl64.Vec3 {
	if b.body == nil {
		return nil
	}
	return worldOutline(b.body, b.outline, b.y+b.lo)
}

func worldOutline(body *cp.Body, local []cp.Vector, y float64) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(local))
	for i, v := range local {
		out[i] = fromPlane(body.LocalToWorld(v), y)
	}
	return out
}
