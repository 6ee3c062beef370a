package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// RayResult receives the closest hit of a CastRay call.
type RayResult struct {
	Point  mgl64.Vec3
	Normal mgl64.Vec3
	Object CollisionObject
}

type rayHit struct {
	alpha  float64
	point  mgl64.Vec3
	normal mgl64.Vec3
	object CollisionObject
}

type rayTarget struct {
	shape  *cp.Shape
	lo, hi float64
	object CollisionObject
}

// rayQuery is the per-call state of CastRay. The World keeps one so casts do
// not allocate.
type rayQuery struct {
	origin, dest mgl64.Vec3
	a, b         cp.Vector
	filter       cp.ShapeFilter
	best         rayHit
}

func (q *rayQuery) reset(origin, dest mgl64.Vec3, mask FilterGroup) {
	q.origin, q.dest = origin, dest
	q.a, q.b = toPlane(origin), toPlane(dest)
	q.filter = queryFilter(mask)
	q.best = rayHit{alpha: 2}
}

func (q *rayQuery) consider(t rayTarget) {
	if t.shape.Filter.Reject(q.filter) {
		return
	}
	if hit, ok := castAgainst(t, q.origin, q.dest, q.a, q.b); ok && hit.alpha < q.best.alpha {
		q.best = hit
	}
}

// CastRay finds the closest object between origin and dest whose group
// intersects mask. Objects containing the origin are ignored. On a hit the
// result is filled and true is returned. It is not safe for concurrent use.
func (w *World) CastRay(origin, dest mgl64.Vec3, mask FilterGroup, result *RayResult) bool {
	q := &w.ray
	q.reset(origin, dest, mask)

	for _, body := range w.bodies {
		lo, hi := body.Span()
		q.consider(rayTarget{shape: body.shape, lo: lo, hi: hi, object: body})
	}
	for _, t := range w.triggers {
		lo, hi := t.Span()
		q.consider(rayTarget{shape: t.shape, lo: lo, hi: hi, object: t})
	}

	if w.floor.group&mask != 0 {
		floorY := w.cfg.FloorY
		if origin.Y() > floorY && dest.Y() <= floorY {
			alpha := (origin.Y() - floorY) / (origin.Y() - dest.Y())
			if alpha < q.best.alpha {
				p := lerp3(origin, dest, alpha)
				q.best = rayHit{alpha: alpha, point: mgl64.Vec3{p.X(), floorY, p.Z()}, normal: mgl64.Vec3{0, 1, 0}, object: w.floor}
			}
		}
	}

	best := q.best
	q.best.object = nil
	if best.object == nil {
		return false
	}
	if result != nil {
		result.Point = best.point
		result.Normal = best.normal
		result.Object = best.object
	}
	return true
}

func castAgainst(t rayTarget, origin, dest mgl64.Vec3, a, b cp.Vector) (rayHit, bool) {
	dy := dest.Y() - origin.Y()
	if inside(t.shape, a) {
		if origin.Y() >= t.lo && origin.Y() <= t.hi {
			return rayHit{}, false
		}
		return capHit(t, origin, dest, 0)
	}

	var info cp.SegmentQueryInfo
	if !t.shape.SegmentQuery(a, b, 0, &info) {
		return rayHit{}, false
	}
	y := origin.Y() + dy*info.Alpha
	if y >= t.lo && y <= t.hi {
		return rayHit{
			alpha:  info.Alpha,
			point:  fromPlane(info.Point, y),
			normal: mgl64.Vec3{info.Normal.X, 0, info.Normal.Y},
			object: t.object,
		}, true
	}
	return capHit(t, origin, dest, info.Alpha)
}

// capHit tests the top or bottom face of a target the ray reaches from above
// or below, no earlier than minAlpha.
func capHit(t rayTarget, origin, dest mgl64.Vec3, minAlpha float64) (rayHit, bool) {
	dy := dest.Y() - origin.Y()
	var capY, ny float64
	switch {
	case origin.Y() > t.hi && dy < 0:
		capY, ny = t.hi, 1
	case origin.Y() < t.lo && dy > 0:
		capY, ny = t.lo, -1
	default:
		return rayHit{}, false
	}
	alpha := (capY - origin.Y()) / dy
	if alpha < minAlpha || alpha > 1 {
		return rayHit{}, false
	}
	p := lerp3(origin, dest, alpha)
	if !inside(t.shape, toPlane(p)) {
		return rayHit{}, false
	}
	return rayHit{alpha: alpha, point: mgl64.Vec3{p.X(), capY, p.Z()}, normal: mgl64.Vec3{0, ny, 0}, object: t.object}, true
}

func inside(shape *cp.Shape, p cp.Vector) bool {
	return shape.PointQuery(p).Distance <= 0
}

func lerp3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
