package physics

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// ConvexHullShape is an incrementally built convex prism. Points are
// collected by AddPoint; the footprint polygon is recomputed only when a point
// is added with recalc set.
type ConvexHullShape struct {
	points   []mgl64.Vec3
	hull     []cp.Vector
	lo, hi   float64
	recalcs  int
	hasRange bool
}

func (s *ConvexHullShape) AddPoint(p mgl64.Vec3, recalc bool) {
	s.points = append(s.points, p)
	if !s.hasRange {
		s.lo, s.hi = p.Y(), p.Y()
		s.hasRange = true
	} else {
		s.lo = math.Min(s.lo, p.Y())
		s.hi = math.Max(s.hi, p.Y())
	}
	if recalc {
		s.recalculate()
	}
}

func (s *ConvexHullShape) recalculate() {
	s.recalcs++
	s.hull = planarHull(s.points)
}

// Recalculations reports how many times the footprint has been rebuilt.
func (s *ConvexHullShape) Recalculations() int {
	return s.recalcs
}

func (s *ConvexHullShape) NumPoints() int {
	return len(s.points)
}

// Footprint returns the hull polygon in counter-clockwise order, as XZ points
// at the bottom of the prism.
func (s *ConvexHullShape) Footprint() []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(s.hull))
	for i, v := range s.hull {
		out[i] = fromPlane(v, s.lo)
	}
	return out
}

func (s *ConvexHullShape) build(body *cp.Body) *cp.Shape {
	if len(s.hull) == 0 && len(s.points) > 0 {
		s.recalculate()
	}
	return cp.NewPolyShapeRaw(body, len(s.hull), s.hull, 0)
}

func (s *ConvexHullShape) extent() (float64, float64) { return s.lo, s.hi }
func (s *ConvexHullShape) outline() []cp.Vector      { return s.hull }

// CreateConvexHullShape computes the convex hull of points and feeds the
// ordered hull vertices to a new ConvexHullShape, flagging the last one so the
// shape recomputes its footprint once.
func CreateConvexHullShape(points []mgl64.Vec3) *ConvexHullShape {
	shape := &ConvexHullShape{}
	if len(points) == 0 {
		return shape
	}

	lo, hi := points[0].Y(), points[0].Y()
	for _, p := range points[1:] {
		lo = math.Min(lo, p.Y())
		hi = math.Max(hi, p.Y())
	}

	hull := planarHull(points)
	verts := make([]mgl64.Vec3, 0, 2*len(hull))
	for _, v := range hull {
		verts = append(verts, fromPlane(v, lo), fromPlane(v, hi))
	}
	for i, v := range verts {
		shape.AddPoint(v, i == len(verts)-1)
	}
	return shape
}

// planarHull returns the counter-clockwise convex hull of the XZ projection of
// points using the monotone chain algorithm. Collinear points are dropped.
func planarHull(points []mgl64.Vec3) []cp.Vector {
	pts := make([]cp.Vector, 0, len(points))
	seen := make(map[cp.Vector]bool, len(points))
	for _, p := range points {
		v := toPlane(p)
		if seen[v] {
			continue
		}
		seen[v] = true
		pts = append(pts, v)
	}
	if len(pts) < 3 {
		return pts
	}

	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})

	cross := func(o, a, b cp.Vector) float64 {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}

	hull := make([]cp.Vector, 0, 2*len(pts))
	for _, p := range pts {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}
