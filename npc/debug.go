package npc

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/mutantfps/common"
	"github.com/milk9111/mutantfps/ecs"
)

type Arrow struct {
	From   mgl64.Vec3
	Dir    mgl64.Vec3
	Length float64
}

// DirectionDebug tracks a unit arrow one meter above the entity pointing
// where it faces. The debug overlay draws it.
type DirectionDebug struct {
	ecs.Base
	arrow Arrow
}

func NewDirectionDebug() *DirectionDebug {
	return &DirectionDebug{}
}

func (d *DirectionDebug) Kind() ecs.ComponentKind { return ecs.KindDirectionDebug }

func (d *DirectionDebug) Update(float64) {
	p := d.Parent()
	d.arrow = Arrow{
		From:   p.Position().Add(mgl64.Vec3{0, 1, 0}),
		Dir:    p.Rotation().Rotate(common.Forward),
		Length: 1,
	}
}

func (d *DirectionDebug) Arrow() Arrow {
	return d.arrow
}
