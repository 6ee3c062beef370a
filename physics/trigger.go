package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// Trigger is a sensor volume without contact response. It records the
// dynamic bodies currently inside it. Chipmunk reports footprint contact;
// a body only counts once its vertical span meets the trigger's too.
type Trigger struct {
	world  *World
	body   *cp.Body
	shape  *cp.Shape
	group  FilterGroup
	owner  any
	y      float64
	lo, hi float64

	touching    []*Body
	overlapping []*Body
	outline     []cp.Vector
}

// CreateTrigger builds a trigger from shape at the optional initial pose. The
// trigger is inert until added to a World.
func CreateTrigger(shape Shape, pos *mgl64.Vec3, rot *mgl64.Quat) *Trigger {
	body := cp.NewKinematicBody()
	t := &Trigger{body: body, group: SensorTrigger, outline: shape.outline()}
	t.lo, t.hi = shape.extent()
	if pos != nil {
		body.SetPosition(toPlane(*pos))
		t.y = pos.Y()
	}
	if rot != nil {
		body.SetAngle(planeAngle(*rot))
	}
	t.shape = shape.build(body)
	t.shape.SetSensor(true)
	t.shape.SetCollisionType(collisionTrigger)
	t.shape.UserData = t
	return t
}

func (t *Trigger) Group() FilterGroup { return t.group }
func (t *Trigger) Owner() any         { return t.owner }
func (t *Trigger) SetOwner(owner any) { t.owner = owner }

// Active reports whether the trigger is in a world.
func (t *Trigger) Active() bool {
	return t.world != nil
}

func (t *Trigger) Position() mgl64.Vec3 {
	return fromPlane(t.body.Position(), t.y)
}

func (t *Trigger) SetTransform(pos mgl64.Vec3, rot mgl64.Quat) {
	t.y = pos.Y()
	t.body.SetPosition(toPlane(pos))
	t.body.SetAngle(planeAngle(rot))
	t.shape.CacheBB()
}

func (t *Trigger) Span() (lo, hi float64) {
	return t.y + t.lo, t.y + t.hi
}

func (t *Trigger) Outline() []mgl64.Vec3 {
	return worldOutline(t.body, t.outline, t.y+t.lo)
}

// Overlapping returns the bodies touching the trigger as of the last step.
func (t *Trigger) Overlapping() []*Body {
	return t.overlapping
}

func (t *Trigger) addTouching(b *Body) {
	for _, o := range t.touching {
		if o == b {
			return
		}
	}
	t.touching = append(t.touching, b)
}

func (t *Trigger) removeTouching(b *Body) {
	t.touching = removeBody(t.touching, b)
	t.overlapping = removeBody(t.overlapping, b)
}

func removeBody(list []*Body, b *Body) []*Body {
	for i, o := range list {
		if o == b {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// refreshOverlaps rebuilds the overlap list from the bodies touching the
// footprint, keeping their order of arrival.
func (t *Trigger) refreshOverlaps() {
	t.overlapping = t.overlapping[:0]
	lo, hi := t.Span()
	for _, b := range t.touching {
		blo, bhi := b.Span()
		if blo <= hi && bhi >= lo {
			t.overlapping = append(t.overlapping, b)
		}
	}
}

// IsTriggerOverlapping reports whether body is among the trigger's overlaps.
func IsTriggerOverlapping(t *Trigger, body *Body) bool {
	if t == nil || body == nil {
		return false
	}
	for _, o := range t.overlapping {
		if o == body {
			return true
		}
	}
	return false
}
