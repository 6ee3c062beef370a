package player

import "github.com/go-gl/mathgl/mgl64"

// Camera is the first-person view. It looks down -Z in its local frame.
type Camera struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Near     float64
	Far      float64
}

func NewCamera(near, far float64) *Camera {
	return &Camera{Rotation: mgl64.QuatIdent(), Near: near, Far: far}
}

func (c *Camera) Forward() mgl64.Vec3 {
	return c.Rotation.Rotate(mgl64.Vec3{0, 0, -1})
}

// NearFar returns the points where the view axis crosses the near and far
// planes.
func (c *Camera) NearFar() (near, far mgl64.Vec3) {
	f := c.Forward()
	return c.Position.Add(f.Mul(c.Near)), c.Position.Add(f.Mul(c.Far))
}
