package npc

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/mutantfps/ecs"
	"github.com/milk9111/mutantfps/physics"
	"github.com/milk9111/mutantfps/prefabs"
)

// AttackTrigger is the melee hitbox in front of the NPC. It reports whether
// the player's body is inside it as of the last physics step.
type AttackTrigger struct {
	ecs.Base
	world       *physics.World
	radius      float64
	offset      mgl64.Vec3
	trigger     *physics.Trigger
	playerBody  BodyProvider
	overlapping bool
}

func NewAttackTrigger(world *physics.World, spec prefabs.SphereSpec) *AttackTrigger {
	return &AttackTrigger{
		world:  world,
		radius: spec.Radius,
		offset: spec.Offset.Vec(),
	}
}

func (a *AttackTrigger) Kind() ecs.ComponentKind { return ecs.KindAttackTrigger }

func (a *AttackTrigger) Initialize() error {
	player, err := a.FindEntity("Player")
	if err != nil {
		return err
	}
	if a.playerBody, err = ecs.Get[BodyProvider](player, ecs.KindPlayerPhysics); err != nil {
		return err
	}

	pos := a.worldPosition()
	a.trigger = physics.CreateTrigger(physics.SphereShape{Radius: a.radius}, &pos, nil)
	a.trigger.SetOwner(a.Parent())
	a.world.AddTrigger(a.trigger, physics.SensorTrigger)
	return nil
}

// worldPosition applies the local offset to the parent pose.
func (a *AttackTrigger) worldPosition() mgl64.Vec3 {
	p := a.Parent()
	return p.Position().Add(p.Rotation().Rotate(a.offset))
}

func (a *AttackTrigger) Update(float64) {
	a.trigger.SetTransform(a.worldPosition(), a.Parent().Rotation())
}

func (a *AttackTrigger) PhysicsUpdate() {
	a.overlapping = physics.IsTriggerOverlapping(a.trigger, a.playerBody.Body())
}

func (a *AttackTrigger) Overlapping() bool {
	return a.overlapping
}

func (a *AttackTrigger) Trigger() *physics.Trigger {
	return a.trigger
}
