package npc

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/mutantfps/ecs"
	"github.com/milk9111/mutantfps/physics"
	"github.com/milk9111/mutantfps/prefabs"
)

// CharacterCollision is the NPC's solid body. Weapon rays resolve to the NPC
// entity through the body's owner. The body leaves the world once disabled.
type CharacterCollision struct {
	ecs.Base
	world  *physics.World
	shape  physics.CylinderShape
	body   *physics.Body
	active bool
}

func NewCharacterCollision(world *physics.World, spec prefabs.CylinderSpec) *CharacterCollision {
	return &CharacterCollision{
		world: world,
		shape: physics.CylinderShape{Radius: spec.Radius, Height: spec.Height},
	}
}

func (c *CharacterCollision) Kind() ecs.ComponentKind { return ecs.KindCharacterCollision }

func (c *CharacterCollision) Initialize() error {
	c.body = c.world.AddKinematicBody(c.shape, c.center(), physics.CharacterFilter)
	c.body.SetOwner(c.Parent())
	c.active = true
	return nil
}

// Disable removes the body from the world.
func (c *CharacterCollision) Disable() {
	if !c.active {
		return
	}
	c.active = false
	c.world.RemoveBody(c.body)
}

func (c *CharacterCollision) Active() bool {
	return c.active
}

// center lifts the entity position, which sits at the feet, to the middle of
// the cylinder.
func (c *CharacterCollision) center() mgl64.Vec3 {
	return c.Parent().Position().Add(mgl64.Vec3{0, c.shape.Height / 2, 0})
}

func (c *CharacterCollision) Update(float64) {
	if !c.active {
		return
	}
	c.body.SetPosition(c.center())
	c.body.SetRotation(c.Parent().Rotation())
}

func (c *CharacterCollision) Body() *physics.Body {
	return c.body
}
