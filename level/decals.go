package level

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/mutantfps/common"
	"github.com/milk9111/mutantfps/ecs"
	"github.com/milk9111/mutantfps/prefabs"
)

type Decal struct {
	Point  mgl64.Vec3
	Normal mgl64.Vec3
	// Orientation faces the decal along Normal.
	Orientation mgl64.Quat
	Size        float64
}

// BulletDecals records a decal wherever a shot hits the level. The oldest
// decal is recycled once Max are live.
type BulletDecals struct {
	ecs.Base
	max     int
	minSize float64
	maxSize float64
	rng     *rand.Rand
	decals  []Decal
	next    int
}

func NewBulletDecals(spec prefabs.DecalSpec, rng *rand.Rand) *BulletDecals {
	d := &BulletDecals{
		max:     spec.Max,
		minSize: spec.Size.Min,
		maxSize: spec.Size.Max,
		rng:     rng,
	}
	if d.max <= 0 {
		d.max = 256
	}
	if d.maxSize <= 0 {
		d.minSize, d.maxSize = 0.2, 0.5
	}
	if d.rng == nil {
		d.rng = rand.New(rand.NewSource(1))
	}
	return d
}

func (d *BulletDecals) Kind() ecs.ComponentKind { return ecs.KindBulletDecals }

func (d *BulletDecals) Initialize() error {
	d.Parent().RegisterEventHandler(ecs.TopicHit, d.hit)
	return nil
}

func (d *BulletDecals) Decals() []Decal {
	return d.decals
}

func (d *BulletDecals) hit(ev ecs.Event) {
	h, ok := ev.(ecs.HitEvent)
	if !ok {
		return
	}
	n := h.Result.Normal
	if n.Len() < 1e-9 {
		n = common.Up
	}
	n = n.Normalize()
	decal := Decal{
		Point:       h.Result.Point,
		Normal:      n,
		Orientation: common.FromUnitVectors(common.Forward, n),
		Size:        d.rng.Float64()*(d.maxSize-d.minSize) + d.minSize,
	}
	if len(d.decals) < d.max {
		d.decals = append(d.decals, decal)
		return
	}
	d.decals[d.next] = decal
	d.next = (d.next + 1) % d.max
}
