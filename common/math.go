package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// Forward is the model-space facing direction of characters.
	Forward = mgl64.Vec3{0, 0, 1}
	Up      = mgl64.Vec3{0, 1, 0}
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FromUnitVectors returns the shortest-arc rotation taking unit vector from onto unit vector to.
func FromUnitVectors(from, to mgl64.Vec3) mgl64.Quat {
	return mgl64.QuatBetweenVectors(from, to).Normalize()
}

// AngleTo returns the angle in radians between two rotations.
func AngleTo(a, b mgl64.Quat) float64 {
	return 2 * math.Acos(math.Abs(Clamp(a.Dot(b), -1, 1)))
}

// Slerp interpolates from a to b with t clamped to [0,1].
func Slerp(a, b mgl64.Quat, t float64) mgl64.Quat {
	t = Clamp(t, 0, 1)
	if t == 0 {
		return a
	}
	if t == 1 {
		return b
	}
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl64.QuatSlerp(a, b, t).Normalize()
}

// RotateTowards rotates a towards b by at most step radians.
func RotateTowards(a, b mgl64.Quat, step float64) mgl64.Quat {
	angle := AngleTo(a, b)
	if angle == 0 {
		return a
	}
	return Slerp(a, b, math.Min(1, step/angle))
}

// YawOf returns the rotation about +Y that faces dir, ignoring its vertical part.
func YawOf(dir mgl64.Vec3) mgl64.Quat {
	return mgl64.QuatRotate(math.Atan2(dir.X(), dir.Z()), Up)
}

// Flat drops the vertical component of v.
func Flat(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}
