package navmesh

import (
	"container/heap"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// FindPath returns waypoints from just past from up to and including to. The
// path is empty when to cannot be reached from from.
func (m *Mesh) FindPath(from, to mgl64.Vec3) []mgl64.Vec3 {
	start, ok := m.nearestWalkable(from)
	if !ok {
		return nil
	}
	goal, ok := m.nearestWalkable(to)
	if !ok {
		return nil
	}
	if m.region[m.index(start)] != m.region[m.index(goal)] {
		return nil
	}

	end := m.center(goal)
	if m.cellOf(to) == goal {
		end = mgl64.Vec3{to.X(), m.cfg.Height, to.Z()}
	}
	if start == goal {
		return []mgl64.Vec3{end}
	}

	cells := m.astar(start, goal)
	if len(cells) == 0 {
		return nil
	}
	cells = m.smooth(cells)

	path := make([]mgl64.Vec3, 0, len(cells))
	for _, c := range cells[1 : len(cells)-1] {
		path = append(path, m.center(c))
	}
	return append(path, end)
}

func (m *Mesh) astar(start, goal cell) []cell {
	open := &openSet{}
	heap.Init(open)

	n := m.cols * m.rows
	cameFrom := make([]int, n)
	for i := range cameFrom {
		cameFrom[i] = -1
	}
	gScore := make([]float64, n)
	for i := range gScore {
		gScore[i] = math.Inf(1)
	}
	closed := make([]bool, n)

	startIdx := m.index(start)
	goalIdx := m.index(goal)
	gScore[startIdx] = 0
	heap.Push(open, &openItem{pos: start, f: heuristic(start, goal)})

	for open.Len() > 0 {
		cur := heap.Pop(open).(*openItem).pos
		curIdx := m.index(cur)
		if closed[curIdx] {
			continue
		}
		closed[curIdx] = true

		if curIdx == goalIdx {
			return m.reconstruct(cameFrom, startIdx, goalIdx)
		}

		for _, nb := range m.neighbors(cur) {
			idx := m.index(nb)
			if closed[idx] {
				continue
			}
			step := 1.0
			if nb.x != cur.x && nb.z != cur.z {
				step = math.Sqrt2
			}
			tentative := gScore[curIdx] + step
			if tentative < gScore[idx] {
				cameFrom[idx] = curIdx
				gScore[idx] = tentative
				heap.Push(open, &openItem{pos: nb, f: tentative + heuristic(nb, goal)})
			}
		}
	}
	return nil
}

func (m *Mesh) reconstruct(cameFrom []int, startIdx, goalIdx int) []cell {
	path := make([]cell, 0, 32)
	for cur := goalIdx; cur != -1; cur = cameFrom[cur] {
		path = append(path, cell{x: cur % m.cols, z: cur / m.cols})
		if cur == startIdx {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// smooth drops intermediate cells that are in direct line of sight of an
// earlier kept cell.
func (m *Mesh) smooth(cells []cell) []cell {
	if len(cells) <= 2 {
		return cells
	}
	out := []cell{cells[0]}
	anchor := 0
	for i := 2; i < len(cells); i++ {
		if !m.clearLine(cells[anchor], cells[i]) {
			anchor = i - 1
			out = append(out, cells[anchor])
		}
	}
	return append(out, cells[len(cells)-1])
}

func (m *Mesh) clearLine(a, b cell) bool {
	pa, pb := m.center(a), m.center(b)
	d := pb.Sub(pa)
	steps := int(math.Ceil(d.Len()/(m.cfg.CellSize/4))) + 1
	for i := 0; i <= steps; i++ {
		p := pa.Add(d.Mul(float64(i) / float64(steps)))
		// Probe a little to each side so the line keeps clear of corners.
		for _, off := range [][2]float64{{0, 0}, {0.25, 0.25}, {-0.25, 0.25}, {0.25, -0.25}, {-0.25, -0.25}} {
			q := mgl64.Vec3{p.X() + off[0]*m.cfg.CellSize, p.Y(), p.Z() + off[1]*m.cfg.CellSize}
			if !m.Walkable(q) {
				return false
			}
		}
	}
	return true
}

// octile distance for 8-way movement
func heuristic(a, b cell) float64 {
	dx := math.Abs(float64(a.x - b.x))
	dz := math.Abs(float64(a.z - b.z))
	return (dx + dz) + (math.Sqrt2-2)*math.Min(dx, dz)
}

type openItem struct {
	pos   cell
	f     float64
	index int
}

type openSet []*openItem

func (o openSet) Len() int           { return len(o) }
func (o openSet) Less(i, j int) bool { return o[i].f < o[j].f }
func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}
func (o *openSet) Push(x any) {
	item := x.(*openItem)
	item.index = len(*o)
	*o = append(*o, item)
}
func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]
	return item
}
