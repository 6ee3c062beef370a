package anim

import "github.com/go-gl/mathgl/mgl64"

type Mixer struct {
	root     *Bone
	actions  []*Action
	byClip   map[*Clip]*Action
	finished []func(*Action)
}

// NewMixer returns a mixer driving root. root may be nil for rigs without
// root motion.
func NewMixer(root *Bone) *Mixer {
	return &Mixer{
		root:   root,
		byClip: make(map[*Clip]*Action),
	}
}

func (m *Mixer) Root() *Bone {
	return m.root
}

// ClipAction returns the action for clip, creating it on first use.
func (m *Mixer) ClipAction(clip *Clip) *Action {
	if a, ok := m.byClip[clip]; ok {
		return a
	}
	a := newAction(m, clip)
	m.byClip[clip] = a
	m.actions = append(m.actions, a)
	return a
}

// OnFinished registers fn to run when any loop-once action reaches its end.
func (m *Mixer) OnFinished(fn func(*Action)) {
	if fn == nil {
		return
	}
	m.finished = append(m.finished, fn)
}

func (m *Mixer) Update(dt float64) {
	var done []*Action
	for _, a := range m.actions {
		if !a.running || !a.enabled {
			continue
		}
		a.updateFade(dt)
		if !a.enabled {
			continue
		}
		if a.advance(dt) {
			done = append(done, a)
		}
	}

	m.pose()

	for _, a := range done {
		for _, fn := range m.finished {
			fn(a)
		}
	}
}

func (m *Mixer) pose() {
	if m.root == nil {
		return
	}
	var offset mgl64.Vec3
	total := 0.0
	for _, a := range m.actions {
		w := a.EffectiveWeight()
		if w <= 0 || a.clip == nil {
			continue
		}
		total += w
		offset = offset.Add(a.clip.RootMotion.Mul(w * a.progress()))
	}
	if total > 1 {
		offset = offset.Mul(1 / total)
	}
	m.root.Position = m.root.RefPos.Add(offset)
}
