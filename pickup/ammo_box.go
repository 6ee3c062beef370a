// Package pickup holds collectible items placed in the level.
package pickup

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/mutantfps/ecs"
	"github.com/milk9111/mutantfps/physics"
	"github.com/milk9111/mutantfps/prefabs"
)

// BodyProvider exposes the physics body of the player.
type BodyProvider interface {
	Body() *physics.Body
}

// AmmoBox grants ammo the first time the player walks into it, then removes
// itself from the world.
type AmmoBox struct {
	ecs.Base
	world      *physics.World
	shape      *physics.ConvexHullShape
	trigger    *physics.Trigger
	player     *ecs.Entity
	playerBody BodyProvider
	active     bool
}

func NewAmmoBox(world *physics.World, shape *physics.ConvexHullShape) *AmmoBox {
	return &AmmoBox{world: world, shape: shape, active: true}
}

// HullFromSpec builds the box's trigger shape from its prefab points.
func HullFromSpec(spec prefabs.HullSpec) *physics.ConvexHullShape {
	points := make([]mgl64.Vec3, len(spec.Points))
	for i, p := range spec.Points {
		points[i] = p.Vec()
	}
	return physics.CreateConvexHullShape(points)
}

func (a *AmmoBox) Kind() ecs.ComponentKind { return ecs.KindAmmoBox }

func (a *AmmoBox) Initialize() error {
	var err error
	if a.player, err = a.FindEntity("Player"); err != nil {
		return err
	}
	if a.playerBody, err = ecs.Get[BodyProvider](a.player, ecs.KindPlayerPhysics); err != nil {
		return err
	}

	pos, rot := a.Parent().Position(), a.Parent().Rotation()
	a.trigger = physics.CreateTrigger(a.shape, &pos, &rot)
	a.trigger.SetOwner(a.Parent())
	a.world.AddTrigger(a.trigger, physics.SensorTrigger)
	return nil
}

func (a *AmmoBox) Disable() {
	a.active = false
	a.world.RemoveTrigger(a.trigger)
}

func (a *AmmoBox) Update(float64) {
	if !a.active {
		return
	}
	a.trigger.SetTransform(a.Parent().Position(), a.Parent().Rotation())

	if physics.IsTriggerOverlapping(a.trigger, a.playerBody.Body()) {
		a.player.Broadcast(ecs.AmmoPickupEvent{})
		a.Parent().Logger().Info("ammo box collected")
		a.Disable()
	}
}

func (a *AmmoBox) Active() bool {
	return a.active
}

func (a *AmmoBox) Trigger() *physics.Trigger {
	return a.trigger
}

