package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wallBox() BoxShape {
	return BoxShape{HalfExtents: mgl64.Vec3{0.5, 1, 0.5}}
}

func TestCastRay(t *testing.T) {
	w := NewWorld(DefaultConfig())
	near := w.AddStaticBody(wallBox(), mgl64.Vec3{5, 1, 0}, mgl64.QuatIdent(), StaticFilter)
	far := w.AddStaticBody(wallBox(), mgl64.Vec3{8, 1, 0}, mgl64.QuatIdent(), StaticFilter)
	low := w.AddStaticBody(BoxShape{HalfExtents: mgl64.Vec3{0.5, 0.25, 0.5}}, mgl64.Vec3{0, 0.25, 5}, mgl64.QuatIdent(), StaticFilter)
	near.SetOwner("near")

	cases := []struct {
		name       string
		origin     mgl64.Vec3
		dest       mgl64.Vec3
		mask       FilterGroup
		wantHit    bool
		wantObject CollisionObject
		wantPoint  mgl64.Vec3
		wantNormal mgl64.Vec3
	}{
		{
			name: "closest_of_two", origin: mgl64.Vec3{0, 1, 0}, dest: mgl64.Vec3{10, 1, 0}, mask: AllFilter,
			wantHit: true, wantObject: near, wantPoint: mgl64.Vec3{4.5, 1, 0}, wantNormal: mgl64.Vec3{-1, 0, 0},
		},
		{
			name: "from_other_side", origin: mgl64.Vec3{12, 1, 0}, dest: mgl64.Vec3{0, 1, 0}, mask: AllFilter,
			wantHit: true, wantObject: far, wantPoint: mgl64.Vec3{8.5, 1, 0}, wantNormal: mgl64.Vec3{1, 0, 0},
		},
		{
			name: "passes_over_low_box", origin: mgl64.Vec3{0, 1, 0}, dest: mgl64.Vec3{0, 1, 10}, mask: AllFilter,
			wantHit: false,
		},
		{
			name: "top_of_low_box", origin: mgl64.Vec3{0, 3, 4}, dest: mgl64.Vec3{0, -1, 6}, mask: AllFilter,
			wantHit: true, wantObject: low, wantPoint: mgl64.Vec3{0, 0.5, 5.25}, wantNormal: mgl64.Vec3{0, 1, 0},
		},
		{
			name: "floor", origin: mgl64.Vec3{0, 2, -2}, dest: mgl64.Vec3{0, -2, -6}, mask: AllFilter,
			wantHit: true, wantObject: w.Floor(), wantPoint: mgl64.Vec3{0, 0, -4}, wantNormal: mgl64.Vec3{0, 1, 0},
		},
		{
			name: "masked_out", origin: mgl64.Vec3{0, 1, 0}, dest: mgl64.Vec3{10, 1, 0}, mask: CharacterFilter,
			wantHit: false,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var res RayResult
			hit := w.CastRay(c.origin, c.dest, c.mask, &res)
			require.Equal(t, c.wantHit, hit)
			if !c.wantHit {
				return
			}
			assert.Same(t, c.wantObject, res.Object)
			for i := 0; i < 3; i++ {
				assert.InDelta(t, c.wantPoint[i], res.Point[i], 1e-6)
				assert.InDelta(t, c.wantNormal[i], res.Normal[i], 1e-6)
			}
		})
	}

	assert.Equal(t, "near", near.Owner())
}

func TestCastRayIgnoresVolumeContainingOrigin(t *testing.T) {
	w := NewWorld(DefaultConfig())
	self := w.AddKinematicBody(CylinderShape{Radius: 0.45, Height: 1.8}, mgl64.Vec3{0, 0.9, 0}, CharacterFilter)
	wall := w.AddStaticBody(wallBox(), mgl64.Vec3{3, 1, 0}, mgl64.QuatIdent(), StaticFilter)

	var res RayResult
	require.True(t, w.CastRay(mgl64.Vec3{0, 1.35, 0}, mgl64.Vec3{6, 1.35, 0}, AllFilter, &res))
	assert.Same(t, wall, res.Object)
	assert.NotSame(t, self, res.Object)
}

func TestCastRaySkipsSensorsWhenMasked(t *testing.T) {
	w := NewWorld(DefaultConfig())
	pos := mgl64.Vec3{2, 1, 0}
	trigger := CreateTrigger(SphereShape{Radius: 0.4}, &pos, nil)
	w.AddTrigger(trigger, SensorTrigger)
	wall := w.AddStaticBody(wallBox(), mgl64.Vec3{4, 1, 0}, mgl64.QuatIdent(), StaticFilter)

	var res RayResult
	require.True(t, w.CastRay(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{6, 1, 0}, AllFilter, &res))
	assert.Same(t, trigger, res.Object)

	require.True(t, w.CastRay(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{6, 1, 0}, AllFilter.Without(SensorTrigger), &res))
	assert.Same(t, wall, res.Object)
}

func TestCastRayMovingKinematicBody(t *testing.T) {
	w := NewWorld(DefaultConfig())
	npc := w.AddKinematicBody(CylinderShape{Radius: 0.45, Height: 1.8}, mgl64.Vec3{0, 0.9, 10}, CharacterFilter)

	origin, dest := mgl64.Vec3{0, 1, 0}, mgl64.Vec3{10, 1, 0}
	assert.False(t, w.CastRay(origin, dest, AllFilter, nil))

	npc.SetPosition(mgl64.Vec3{5, 0.9, 0})
	var res RayResult
	require.True(t, w.CastRay(origin, dest, AllFilter, &res))
	assert.Same(t, npc, res.Object)
	assert.InDelta(t, 4.55, res.Point.X(), 1e-6)
}

func TestCastRayRepeated(t *testing.T) {
	w := NewWorld(DefaultConfig())
	wall := w.AddStaticBody(wallBox(), mgl64.Vec3{5, 1, 0}, mgl64.QuatIdent(), StaticFilter)

	var res RayResult
	require.True(t, w.CastRay(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{10, 1, 0}, AllFilter, &res))
	assert.Same(t, wall, res.Object)

	miss := RayResult{}
	assert.False(t, w.CastRay(mgl64.Vec3{0, 1, 3}, mgl64.Vec3{10, 1, 3}, StaticFilter, &miss))
	assert.Nil(t, miss.Object)

	require.True(t, w.CastRay(mgl64.Vec3{10, 1, 0}, mgl64.Vec3{0, 1, 0}, AllFilter, &res))
	assert.InDelta(t, 5.5, res.Point.X(), 1e-9)
}
