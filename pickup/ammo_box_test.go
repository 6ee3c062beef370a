package pickup

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/mutantfps/ecs"
	"github.com/milk9111/mutantfps/physics"
	"github.com/milk9111/mutantfps/prefabs"
)

type fakePlayerPhysics struct {
	ecs.Base
	body *physics.Body
}

func (p *fakePlayerPhysics) Kind() ecs.ComponentKind { return ecs.KindPlayerPhysics }
func (p *fakePlayerPhysics) Body() *physics.Body     { return p.body }

func boxHull() prefabs.HullSpec {
	return prefabs.HullSpec{Points: []prefabs.Vec3{
		{-0.3, 0, -0.2}, {0.3, 0, -0.2}, {0.3, 0, 0.2}, {-0.3, 0, 0.2},
		{-0.3, 0.4, -0.2}, {0.3, 0.4, -0.2}, {0.3, 0.4, 0.2}, {-0.3, 0.4, 0.2},
	}}
}

func TestHullFromSpec(t *testing.T) {
	shape := HullFromSpec(boxHull())
	assert.Equal(t, 8, shape.NumPoints())
	assert.Equal(t, 1, shape.Recalculations())
	assert.Len(t, shape.Footprint(), 4)
}

func TestAmmoBoxPickup(t *testing.T) {
	tests := []struct {
		name      string
		playerAt  mgl64.Vec3
		collected bool
	}{
		{name: "walk in", playerAt: mgl64.Vec3{5.2, 0.95, 5}, collected: true},
		{name: "far away", playerAt: mgl64.Vec3{9, 0.95, 9}, collected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			world := physics.NewWorld(physics.DefaultConfig())
			m := ecs.NewEntityManager(nil)

			body := world.AddDynamicBody(physics.CylinderShape{Radius: 0.3, Height: 1.9}, 5, tt.playerAt, physics.DefaultFilter)
			player := ecs.NewNamedEntity("Player")
			require.NoError(t, player.AddComponent(&fakePlayerPhysics{body: body}))
			var pickups int
			player.RegisterEventHandler(ecs.TopicAmmoPickup, func(ecs.Event) { pickups++ })
			m.Add(player)

			boxEntity := ecs.NewNamedEntity("AmmoBox0")
			boxEntity.SetPosition(mgl64.Vec3{5, 0, 5})
			box := NewAmmoBox(world, HullFromSpec(boxHull()))
			require.NoError(t, boxEntity.AddComponent(box))
			m.Add(boxEntity)
			require.NoError(t, m.EndSetup())
			assert.Len(t, world.Triggers(), 1)

			for i := 0; i < 3; i++ {
				world.Step(1.0/60, 10)
				m.Update(1.0 / 60)
				m.PhysicsUpdate()
			}

			if tt.collected {
				assert.Equal(t, 1, pickups)
				assert.False(t, box.Active())
				assert.False(t, box.Trigger().Active())
				assert.Empty(t, world.Triggers())
				return
			}
			assert.Zero(t, pickups)
			assert.True(t, box.Active())
		})
	}
}

func TestAmmoBoxNeedsPlayer(t *testing.T) {
	m := ecs.NewEntityManager(nil)
	e := ecs.NewNamedEntity("AmmoBox0")
	require.NoError(t, e.AddComponent(NewAmmoBox(physics.NewWorld(physics.DefaultConfig()), HullFromSpec(boxHull()))))
	m.Add(e)
	assert.ErrorIs(t, m.EndSetup(), ecs.ErrNotFound)
}
