package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestFromUnitVectorsRotatesForward(t *testing.T) {
	cases := []struct {
		name string
		to   mgl64.Vec3
	}{
		{"same", mgl64.Vec3{0, 0, 1}},
		{"right", mgl64.Vec3{1, 0, 0}},
		{"left", mgl64.Vec3{-1, 0, 0}},
		{"diagonal", mgl64.Vec3{1, 0, 1}.Normalize()},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := FromUnitVectors(Forward, c.to).Rotate(Forward)
			assert.InDelta(t, c.to.X(), got.X(), 1e-9)
			assert.InDelta(t, c.to.Y(), got.Y(), 1e-9)
			assert.InDelta(t, c.to.Z(), got.Z(), 1e-9)
		})
	}
}

func TestRotateTowardsLimitsStep(t *testing.T) {
	from := mgl64.QuatIdent()
	to := mgl64.QuatRotate(math.Pi/2, Up)

	half := RotateTowards(from, to, math.Pi/4)
	assert.InDelta(t, math.Pi/4, AngleTo(from, half), 1e-6)

	full := RotateTowards(from, to, math.Pi)
	assert.InDelta(t, 0, AngleTo(full, to), 1e-6)

	same := RotateTowards(to, to, 1)
	assert.Equal(t, to, same)
}

func TestYawOfFacesDirection(t *testing.T) {
	dir := mgl64.Vec3{3, 2, 0}
	got := YawOf(dir).Rotate(Forward)
	assert.InDelta(t, 1, got.X(), 1e-9)
	assert.InDelta(t, 0, got.Z(), 1e-9)
}

func TestClampAndLerp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1, 0, 1))
	assert.Equal(t, 1.0, Clamp(2, 0, 1))
	assert.Equal(t, 0.5, Lerp(0, 1, 0.5))
}
