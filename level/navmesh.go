package level

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/milk9111/mutantfps/ecs"
	"github.com/milk9111/mutantfps/navmesh"
	"github.com/milk9111/mutantfps/prefabs"
)

// Navmesh answers path queries for agents on the level. The grid is built in
// Initialize from the obstacles of the LevelSetup on the same entity.
type Navmesh struct {
	ecs.Base
	cfg     navmesh.Config
	padding float64
	rng     *rand.Rand
	mesh    *navmesh.Mesh
}

func NewNavmesh(spec prefabs.LevelSpec, rng *rand.Rand) *Navmesh {
	b := BoundsOf(spec)
	return &Navmesh{
		cfg: navmesh.Config{
			MinX:     b.MinX,
			MinZ:     b.MinZ,
			MaxX:     b.MaxX,
			MaxZ:     b.MaxZ,
			CellSize: spec.Nav.CellSize,
			Height:   spec.Nav.Height,
		},
		padding: spec.Nav.Padding,
		rng:     rng,
	}
}

func (n *Navmesh) Kind() ecs.ComponentKind { return ecs.KindNavmesh }

func (n *Navmesh) Initialize() error {
	setup, err := ecs.Get[*LevelSetup](n.Parent(), ecs.KindLevelSetup)
	if err != nil {
		return err
	}
	n.mesh = navmesh.New(n.cfg, n.rng)
	for _, o := range setup.Obstacles() {
		n.mesh.BlockPolygon(o.Footprint, n.padding)
	}
	n.mesh.Build()

	cols, rows := n.mesh.Size()
	n.Parent().Logger().Debug("navmesh built", zap.Int("cols", cols), zap.Int("rows", rows))
	return nil
}

func (n *Navmesh) Mesh() *navmesh.Mesh {
	return n.mesh
}

// GetRandomNode returns a point reachable from p within rng meters, or p
// itself when nothing is reachable.
func (n *Navmesh) GetRandomNode(p mgl64.Vec3, rng float64) mgl64.Vec3 {
	if n.mesh == nil {
		return p
	}
	if q, ok := n.mesh.RandomReachablePoint(p, rng); ok {
		return q
	}
	return p
}

// FindPath returns the waypoints from a to b, empty when b is unreachable.
func (n *Navmesh) FindPath(a, b mgl64.Vec3) []mgl64.Vec3 {
	if n.mesh == nil {
		return nil
	}
	return n.mesh.FindPath(a, b)
}
