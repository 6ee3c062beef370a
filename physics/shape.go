package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// Shape describes a collision volume before it is attached to a body. The
// horizontal footprint is resolved by chipmunk in the XZ plane; the vertical
// extent is kept alongside it.
type Shape interface {
	build(body *cp.Body) *cp.Shape
	// extent is the vertical range relative to the body origin.
	extent() (lo, hi float64)
	outline() []cp.Vector
}

type SphereShape struct {
	Radius float64
}

func (s SphereShape) build(body *cp.Body) *cp.Shape {
	return cp.NewCircle(body, s.Radius, cp.Vector{})
}

func (s SphereShape) extent() (float64, float64) { return -s.Radius, s.Radius }
func (s SphereShape) outline() []cp.Vector      { return circleOutline(s.Radius) }

// CylinderShape is an upright cylinder centered on the body origin. It also
// stands in for capsules.
type CylinderShape struct {
	Radius float64
	Height float64
}

func (s CylinderShape) build(body *cp.Body) *cp.Shape {
	return cp.NewCircle(body, s.Radius, cp.Vector{})
}

func (s CylinderShape) extent() (float64, float64) { return -s.Height / 2, s.Height / 2 }
func (s CylinderShape) outline() []cp.Vector      { return circleOutline(s.Radius) }

type BoxShape struct {
	HalfExtents mgl64.Vec3
}

func (s BoxShape) build(body *cp.Body) *cp.Shape {
	return cp.NewBox(body, 2*s.HalfExtents.X(), 2*s.HalfExtents.Z(), 0)
}

func (s BoxShape) extent() (float64, float64) { return -s.HalfExtents.Y(), s.HalfExtents.Y() }

func (s BoxShape) outline() []cp.Vector {
	hx, hz := s.HalfExtents.X(), s.HalfExtents.Z()
	return []cp.Vector{{X: hx, Y: -hz}, {X: hx, Y: hz}, {X: -hx, Y: hz}, {X: -hx, Y: -hz}}
}

func circleOutline(r float64) []cp.Vector {
	const segments = 12
	out := make([]cp.Vector, segments)
	for i := range out {
		a := 2 * math.Pi * float64(i) / segments
		out[i] = cp.Vector{X: r * math.Cos(a), Y: r * math.Sin(a)}
	}
	return out
}

func toPlane(v mgl64.Vec3) cp.Vector {
	return cp.Vector{X: v.X(), Y: v.Z()}
}

func fromPlane(v cp.Vector, y float64) mgl64.Vec3 {
	return mgl64.Vec3{v.X, y, v.Y}
}

// planeAngle converts a rotation to the chipmunk body angle of its yaw.
func planeAngle(q mgl64.Quat) float64 {
	r := q.Rotate(mgl64.Vec3{1, 0, 0})
	return math.Atan2(r.Z(), r.X())
}
