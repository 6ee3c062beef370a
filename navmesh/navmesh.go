// Package navmesh answers path and reachability queries over a walkability
// grid laid on the level floor.
package navmesh

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

type Config struct {
	MinX, MinZ float64
	MaxX, MaxZ float64
	CellSize   float64
	// Height is the Y of every returned point.
	Height float64
}

type cell struct {
	x, z int
}

type Mesh struct {
	cfg     Config
	cols    int
	rows    int
	blocked []bool
	region  []int
	rng     *rand.Rand
}

func New(cfg Config, rng *rand.Rand) *Mesh {
	if cfg.CellSize <= 0 {
		cfg.CellSize = 0.5
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	cols := int(math.Ceil((cfg.MaxX - cfg.MinX) / cfg.CellSize))
	rows := int(math.Ceil((cfg.MaxZ - cfg.MinZ) / cfg.CellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	m := &Mesh{
		cfg:     cfg,
		cols:    cols,
		rows:    rows,
		blocked: make([]bool, cols*rows),
		region:  make([]int, cols*rows),
		rng:     rng,
	}
	m.Build()
	return m
}

func (m *Mesh) Size() (cols, rows int) {
	return m.cols, m.rows
}

func (m *Mesh) CellSize() float64 {
	return m.cfg.CellSize
}

func (m *Mesh) index(c cell) int {
	return c.z*m.cols + c.x
}

func (m *Mesh) inBounds(c cell) bool {
	return c.x >= 0 && c.z >= 0 && c.x < m.cols && c.z < m.rows
}

func (m *Mesh) walkable(c cell) bool {
	return m.inBounds(c) && !m.blocked[m.index(c)]
}

func (m *Mesh) cellOf(p mgl64.Vec3) cell {
	return cell{
		x: int(math.Floor((p.X() - m.cfg.MinX) / m.cfg.CellSize)),
		z: int(math.Floor((p.Z() - m.cfg.MinZ) / m.cfg.CellSize)),
	}
}

func (m *Mesh) center(c cell) mgl64.Vec3 {
	return mgl64.Vec3{
		m.cfg.MinX + (float64(c.x)+0.5)*m.cfg.CellSize,
		m.cfg.Height,
		m.cfg.MinZ + (float64(c.z)+0.5)*m.cfg.CellSize,
	}
}

// Walkable reports whether p lies on an unblocked cell.
func (m *Mesh) Walkable(p mgl64.Vec3) bool {
	return m.walkable(m.cellOf(p))
}

// BlockPolygon marks every cell whose center lies inside the convex XZ polygon
// grown by pad. Call Build once all obstacles are blocked.
func (m *Mesh) BlockPolygon(poly []mgl64.Vec3, pad float64) {
	if len(poly) == 0 {
		return
	}
	minX, minZ := math.Inf(1), math.Inf(1)
	maxX, maxZ := math.Inf(-1), math.Inf(-1)
	for _, p := range poly {
		minX, maxX = math.Min(minX, p.X()), math.Max(maxX, p.X())
		minZ, maxZ = math.Min(minZ, p.Z()), math.Max(maxZ, p.Z())
	}
	lo := m.cellOf(mgl64.Vec3{minX - pad, 0, minZ - pad})
	hi := m.cellOf(mgl64.Vec3{maxX + pad, 0, maxZ + pad})
	for z := lo.z; z <= hi.z; z++ {
		for x := lo.x; x <= hi.x; x++ {
			c := cell{x: x, z: z}
			if !m.inBounds(c) {
				continue
			}
			if polygonDistance(poly, m.center(c)) <= pad {
				m.blocked[m.index(c)] = true
			}
		}
	}
}

// Build labels connected walkable regions. Cells are connected through their
// eight neighbors without cutting blocked corners.
func (m *Mesh) Build() {
	for i := range m.region {
		m.region[i] = -1
	}
	next := 0
	stack := make([]cell, 0, 64)
	for z := 0; z < m.rows; z++ {
		for x := 0; x < m.cols; x++ {
			start := cell{x: x, z: z}
			idx := m.index(start)
			if m.blocked[idx] || m.region[idx] >= 0 {
				continue
			}
			m.region[idx] = next
			stack = append(stack[:0], start)
			for len(stack) > 0 {
				cur := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				for _, n := range m.neighbors(cur) {
					ni := m.index(n)
					if m.region[ni] < 0 {
						m.region[ni] = next
						stack = append(stack, n)
					}
				}
			}
			next++
		}
	}
}

var directions = [8][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

func (m *Mesh) neighbors(c cell) []cell {
	out := make([]cell, 0, 8)
	for _, d := range directions {
		n := cell{x: c.x + d[0], z: c.z + d[1]}
		if !m.walkable(n) {
			continue
		}
		if d[0] != 0 && d[1] != 0 {
			if !m.walkable(cell{x: c.x + d[0], z: c.z}) || !m.walkable(cell{x: c.x, z: c.z + d[1]}) {
				continue
			}
		}
		out = append(out, n)
	}
	return out
}

// nearestWalkable returns the walkable cell closest to p, searching outward
// ring by ring.
func (m *Mesh) nearestWalkable(p mgl64.Vec3) (cell, bool) {
	c := m.cellOf(p)
	if m.walkable(c) {
		return c, true
	}
	maxRing := m.cols
	if m.rows > maxRing {
		maxRing = m.rows
	}
	for r := 1; r <= maxRing; r++ {
		best, found := cell{}, false
		bestDist := math.Inf(1)
		for z := c.z - r; z <= c.z+r; z++ {
			for x := c.x - r; x <= c.x+r; x++ {
				if x != c.x-r && x != c.x+r && z != c.z-r && z != c.z+r {
					continue
				}
				n := cell{x: x, z: z}
				if !m.walkable(n) {
					continue
				}
				if d := m.center(n).Sub(p).LenSqr(); d < bestDist {
					best, bestDist, found = n, d, true
				}
			}
		}
		if found {
			return best, true
		}
	}
	return cell{}, false
}

// RandomReachablePoint picks a cell center connected to origin and no
// farther than radius from it.
func (m *Mesh) RandomReachablePoint(origin mgl64.Vec3, radius float64) (mgl64.Vec3, bool) {
	start, ok := m.nearestWalkable(origin)
	if !ok {
		return mgl64.Vec3{}, false
	}
	group := m.region[m.index(start)]
	r2 := radius * radius
	candidates := make([]cell, 0, 64)
	for z := 0; z < m.rows; z++ {
		for x := 0; x < m.cols; x++ {
			c := cell{x: x, z: z}
			idx := m.index(c)
			if m.blocked[idx] || m.region[idx] != group {
				continue
			}
			d := m.center(c).Sub(origin)
			if d.X()*d.X()+d.Z()*d.Z() <= r2 {
				candidates = append(candidates, c)
			}
		}
	}
	if len(candidates) == 0 {
		return m.center(start), true
	}
	return m.center(candidates[m.rng.Intn(len(candidates))]), true
}

func polygonDistance(poly []mgl64.Vec3, p mgl64.Vec3) float64 {
	px, pz := p.X(), p.Z()
	if len(poly) >= 3 && insideConvex(poly, px, pz) {
		return 0
	}
	best := math.Inf(1)
	for i := range poly {
		a, b := poly[i], poly[(i+1)%len(poly)]
		best = math.Min(best, segmentDistance(a.X(), a.Z(), b.X(), b.Z(), px, pz))
	}
	return best
}

func insideConvex(poly []mgl64.Vec3, px, pz float64) bool {
	sign := 0.0
	for i := range poly {
		a, b := poly[i], poly[(i+1)%len(poly)]
		cross := (b.X()-a.X())*(pz-a.Z()) - (b.Z()-a.Z())*(px-a.X())
		if cross == 0 {
			continue
		}
		if sign == 0 {
			sign = cross
			continue
		}
		if (cross > 0) != (sign > 0) {
			return false
		}
	}
	return true
}

func segmentDistance(ax, az, bx, bz, px, pz float64) float64 {
	dx, dz := bx-ax, bz-az
	l2 := dx*dx + dz*dz
	t := 0.0
	if l2 > 0 {
		t = ((px-ax)*dx + (pz-az)*dz) / l2
		t = math.Max(0, math.Min(1, t))
	}
	cx, cz := ax+t*dx-px, az+t*dz-pz
	return math.Sqrt(cx*cx + cz*cz)
}
