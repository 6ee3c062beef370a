package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/mutantfps/common"
	"github.com/milk9111/mutantfps/ecs"
	"github.com/milk9111/mutantfps/input"
	"github.com/milk9111/mutantfps/prefabs"
)

var xAxis = mgl64.Vec3{1, 0, 0}

// PlayerControls turns input into body velocity and drives the camera from
// the body. Mouse motion only turns the view while the cursor is locked.
type PlayerControls struct {
	ecs.Base
	input  *input.State
	camera *Camera

	maxSpeed     float64
	acceleration float64
	deceleration float64
	mouseSpeed   float64
	jumpVelocity float64
	yOffset      float64

	physics *PlayerPhysics
	pitch   float64
	yaw     float64
	yawQ    mgl64.Quat
	speed   mgl64.Vec3
}

func NewPlayerControls(in *input.State, camera *Camera, spec prefabs.PlayerSpec) *PlayerControls {
	return &PlayerControls{
		input:        in,
		camera:       camera,
		maxSpeed:     spec.MaxSpeed,
		acceleration: spec.MaxSpeed / spec.TimeZeroToMax,
		deceleration: spec.Deceleration,
		mouseSpeed:   spec.MouseSpeed,
		jumpVelocity: spec.JumpVelocity,
		yOffset:      spec.YOffset,
		yawQ:         mgl64.QuatIdent(),
	}
}

func (c *PlayerControls) Kind() ecs.ComponentKind { return ecs.KindPlayerControls }

func (c *PlayerControls) Initialize() error {
	var err error
	if c.physics, err = ecs.Get[*PlayerPhysics](c.Parent(), ecs.KindPlayerPhysics); err != nil {
		return err
	}
	f := c.Parent().Rotation().Rotate(mgl64.Vec3{0, 0, -1})
	c.pitch = math.Asin(common.Clamp(f.Y(), -1, 1))
	c.yaw = math.Atan2(-f.X(), -f.Z())
	c.updateRotation()
	return nil
}

func (c *PlayerControls) look() {
	if !c.input.Locked {
		return
	}
	dx, dy := c.input.MouseDelta()
	if dx == 0 && dy == 0 {
		return
	}
	c.yaw -= dx * c.mouseSpeed
	c.pitch -= dy * c.mouseSpeed
	c.pitch = common.Clamp(c.pitch, -math.Pi/2, math.Pi/2)
	c.updateRotation()
}

func (c *PlayerControls) updateRotation() {
	pitch := mgl64.QuatRotate(c.pitch, xAxis)
	c.yawQ = mgl64.QuatRotate(c.yaw, common.Up)
	rot := c.yawQ.Mul(pitch).Normalize()
	c.Parent().SetRotation(rot)
	c.camera.Rotation = rot
}

func (c *PlayerControls) accelerate(dir mgl64.Vec3, dt float64) {
	c.speed = c.speed.Add(dir.Mul(c.acceleration * dt))
	if l := c.speed.Len(); l > c.maxSpeed {
		c.speed = c.speed.Mul(c.maxSpeed / l)
	}
}

func (c *PlayerControls) decelerate(dt float64) {
	c.speed = c.speed.Add(c.speed.Mul(c.deceleration * dt))
}

func (c *PlayerControls) Update(dt float64) {
	c.look()

	forward := c.input.Value(input.KeyS) - c.input.Value(input.KeyW)
	right := c.input.Value(input.KeyD) - c.input.Value(input.KeyA)
	dir := mgl64.Vec3{right, 0, forward}
	if dir.LenSqr() > 0 {
		dir = dir.Normalize()
	}

	body := c.physics.Body()
	vel := body.LinearVelocity()
	if c.input.Down(input.KeySpace) && c.physics.CanJump() {
		vel[1] = c.jumpVelocity
		c.physics.SetCanJump(false)
	}

	c.decelerate(dt)
	c.accelerate(dir, dt)

	move := c.yawQ.Rotate(c.speed)
	vel[0], vel[2] = move.X(), move.Z()
	body.SetLinearVelocity(vel)

	c.camera.Position = body.Position().Add(mgl64.Vec3{0, c.yOffset, 0})
	c.Parent().SetPosition(c.camera.Position)
}

// Angles returns the view pitch and yaw in radians.
func (c *PlayerControls) Angles() (pitch, yaw float64) {
	return c.pitch, c.yaw
}

func (c *PlayerControls) Speed() mgl64.Vec3 {
	return c.speed
}
