// Package anim plays keyframe-free animation clips: each clip has a duration
// and the root displacement it authors over one cycle. A Mixer advances the
// actions of its clips, blends their weights and drives a root bone.
package anim

import "github.com/go-gl/mathgl/mgl64"

type Clip struct {
	Name     string
	Duration float64
	// RootMotion is the root bone displacement over one full cycle, in the
	// model's local units.
	RootMotion mgl64.Vec3
}

// Bone is the single bone the mixer writes to. Position is recomputed on every
// Mixer.Update from RefPos and the weighted root motion of running actions.
type Bone struct {
	Name     string
	Position mgl64.Vec3
	RefPos   mgl64.Vec3
}

// Animation pairs a clip with the mixer action that plays it.
type Animation struct {
	Clip   *Clip
	Action *Action
}

// Bind creates one Animation per clip, keyed by the clip set's names.
func Bind(m *Mixer, clips map[string]*Clip) map[string]Animation {
	out := make(map[string]Animation, len(clips))
	for name, clip := range clips {
		out[name] = Animation{Clip: clip, Action: m.ClipAction(clip)}
	}
	return out
}
