// Package player holds the components of the player entity: the physics
// capsule, first-person controls, the rifle and the health pool.
package player

import (
	"github.com/milk9111/mutantfps/common"
	"github.com/milk9111/mutantfps/ecs"
	"github.com/milk9111/mutantfps/physics"
	"github.com/milk9111/mutantfps/prefabs"
)

// PlayerPhysics owns the player's upright capsule. Height is the length of
// the cylindrical part; the body spans Height plus both caps.
type PlayerPhysics struct {
	ecs.Base
	world   *physics.World
	shape   physics.CylinderShape
	mass    float64
	body    *physics.Body
	canJump bool
}

func NewPlayerPhysics(world *physics.World, spec prefabs.PlayerSpec) *PlayerPhysics {
	return &PlayerPhysics{
		world: world,
		shape: physics.CylinderShape{Radius: spec.Radius, Height: spec.Height + 2*spec.Radius},
		mass:  spec.Mass,
	}
}

func (p *PlayerPhysics) Kind() ecs.ComponentKind { return ecs.KindPlayerPhysics }

func (p *PlayerPhysics) Initialize() error {
	p.body = p.world.AddDynamicBody(p.shape, p.mass, p.Parent().Position(), physics.DefaultFilter)
	p.body.SetOwner(p.Parent())
	return nil
}

func (p *PlayerPhysics) Body() *physics.Body {
	return p.body
}

func (p *PlayerPhysics) CanJump() bool {
	return p.canJump
}

func (p *PlayerPhysics) SetCanJump(v bool) {
	p.canJump = v
}

// QueryJump enables jumping when the body rests on a surface facing up. It
// leaves the flag alone while the body touches nothing.
func (p *PlayerPhysics) QueryJump() {
	for _, c := range p.body.Contacts() {
		p.canJump = c.Normal.Dot(common.Up) > 0.5
		if p.canJump {
			return
		}
	}
}

func (p *PlayerPhysics) PhysicsUpdate() {
	p.QueryJump()
}
