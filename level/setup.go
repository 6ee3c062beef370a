// Package level holds the components of the level entity: static colliders,
// the navigation mesh and bullet decals, plus the spawn layout.
package level

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/milk9111/mutantfps/common"
	"github.com/milk9111/mutantfps/ecs"
	"github.com/milk9111/mutantfps/physics"
	"github.com/milk9111/mutantfps/prefabs"
)

// Obstacle is a static collider of the level.
type Obstacle struct {
	shape physics.Shape
	pos   mgl64.Vec3
	rot   mgl64.Quat
	// Footprint is the world-space XZ outline used to block navigation.
	Footprint []mgl64.Vec3
	Body      *physics.Body
}

// LevelSetup adds the level geometry to the physics world as static bodies
// owned by the level entity.
type LevelSetup struct {
	ecs.Base
	world     *physics.World
	obstacles []*Obstacle
}

func NewLevelSetup(world *physics.World, spec prefabs.LevelSpec) *LevelSetup {
	ls := &LevelSetup{world: world}
	for _, w := range spec.Walls {
		rot := mgl64.QuatRotate(mgl64.DegToRad(w.YawDeg), common.Up)
		he := w.HalfExtents.Vec()
		ls.obstacles = append(ls.obstacles, &Obstacle{
			shape:     physics.BoxShape{HalfExtents: he},
			pos:       w.Center.Vec(),
			rot:       rot,
			Footprint: boxFootprint(w.Center.Vec(), he, rot),
		})
	}
	for _, c := range spec.Crates {
		points := make([]mgl64.Vec3, len(c.Points))
		for i, p := range c.Points {
			points[i] = p.Vec()
		}
		hull := physics.CreateConvexHullShape(points)
		ls.obstacles = append(ls.obstacles, &Obstacle{
			shape:     hull,
			rot:       mgl64.QuatIdent(),
			Footprint: hull.Footprint(),
		})
	}
	return ls
}

func (ls *LevelSetup) Kind() ecs.ComponentKind { return ecs.KindLevelSetup }

func (ls *LevelSetup) Obstacles() []*Obstacle {
	return ls.obstacles
}

func (ls *LevelSetup) Initialize() error {
	parent := ls.Parent()
	for _, o := range ls.obstacles {
		o.Body = ls.world.AddStaticBody(o.shape, o.pos, o.rot, physics.StaticFilter)
		o.Body.SetOwner(parent)
	}
	ls.world.Floor().SetOwner(parent)
	parent.Logger().Debug("level colliders added", zap.Int("count", len(ls.obstacles)))
	return nil
}

func boxFootprint(center, he mgl64.Vec3, rot mgl64.Quat) []mgl64.Vec3 {
	corners := [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	out := make([]mgl64.Vec3, 0, 4)
	for _, c := range corners {
		local := mgl64.Vec3{c[0] * he.X(), 0, c[1] * he.Z()}
		p := center.Add(rot.Rotate(local))
		out = append(out, mgl64.Vec3{p.X(), center.Y() - he.Y(), p.Z()})
	}
	return out
}

// Bounds is the walkable rectangle of the level.
type Bounds struct {
	MinX, MinZ, MaxX, MaxZ float64
}

func BoundsOf(spec prefabs.LevelSpec) Bounds {
	return Bounds{
		MinX: math.Min(spec.Bounds.Min[0], spec.Bounds.Max[0]),
		MinZ: math.Min(spec.Bounds.Min[1], spec.Bounds.Max[1]),
		MaxX: math.Max(spec.Bounds.Min[0], spec.Bounds.Max[0]),
		MaxZ: math.Max(spec.Bounds.Min[1], spec.Bounds.Max[1]),
	}
}
