package anim

// Action is the playback state of one clip on a mixer.
type Action struct {
	mixer *Mixer
	clip  *Clip

	time      float64
	timeScale float64
	weight    float64

	enabled  bool
	running  bool
	paused   bool
	loopOnce bool
	clamp    bool

	fading   bool
	fadeFrom float64
	fadeTo   float64
	fadeDur  float64
	fadeT    float64
	fade     float64
}

func newAction(m *Mixer, clip *Clip) *Action {
	return &Action{
		mixer:     m,
		clip:      clip,
		timeScale: 1,
		weight:    1,
		enabled:   true,
		fade:      1,
	}
}

func (a *Action) Clip() *Clip {
	return a.clip
}

// Play schedules the action on its mixer. A finished clamped action stays
// paused until its time is reset.
func (a *Action) Play() *Action {
	a.enabled = true
	a.running = true
	return a
}

// Stop halts playback and clears time and fades.
func (a *Action) Stop() *Action {
	a.running = false
	a.paused = false
	a.time = 0
	a.fading = false
	a.fade = 1
	return a
}

func (a *Action) Time() float64 {
	return a.time
}

// SetTime moves the playhead and resumes an action paused at its end.
func (a *Action) SetTime(t float64) *Action {
	a.time = t
	a.paused = false
	return a
}

func (a *Action) SetEnabled(enabled bool) *Action {
	a.enabled = enabled
	return a
}

func (a *Action) Enabled() bool {
	return a.enabled
}

func (a *Action) Running() bool {
	return a.running && a.enabled && !a.paused
}

func (a *Action) TimeScale() float64 {
	return a.timeScale
}

func (a *Action) SetTimeScale(s float64) *Action {
	a.timeScale = s
	return a
}

// SetEffectiveTimeScale sets the time scale outright.
func (a *Action) SetEffectiveTimeScale(s float64) *Action {
	return a.SetTimeScale(s)
}

// SetEffectiveWeight sets the base weight and cancels any running fade.
func (a *Action) SetEffectiveWeight(w float64) *Action {
	a.weight = w
	a.fading = false
	a.fade = 1
	return a
}

// EffectiveWeight is the weight the action contributes this frame.
func (a *Action) EffectiveWeight() float64 {
	if !a.enabled || !a.running {
		return 0
	}
	return a.weight * a.fade
}

func (a *Action) SetLoopOnce(once bool) *Action {
	a.loopOnce = once
	return a
}

func (a *Action) SetClampWhenFinished(clamp bool) *Action {
	a.clamp = clamp
	return a
}

func (a *Action) FadeIn(d float64) *Action {
	return a.scheduleFade(0, 1, d)
}

func (a *Action) FadeOut(d float64) *Action {
	return a.scheduleFade(a.fade, 0, d)
}

// CrossFadeFrom fades other out and this action in over d seconds. A nil or
// identical other only fades this action in.
func (a *Action) CrossFadeFrom(other *Action, d float64) *Action {
	if other != nil && other != a {
		other.FadeOut(d)
	}
	return a.FadeIn(d)
}

func (a *Action) scheduleFade(from, to, d float64) *Action {
	if d <= 0 {
		a.fading = false
		a.fade = to
		if to == 0 {
			a.enabled = false
		}
		return a
	}
	a.fading = true
	a.fadeFrom, a.fadeTo = from, to
	a.fadeDur, a.fadeT = d, 0
	a.fade = from
	return a
}

func (a *Action) updateFade(dt float64) {
	if !a.fading {
		return
	}
	a.fadeT += dt
	if a.fadeT >= a.fadeDur {
		a.fading = false
		a.fade = a.fadeTo
		if a.fadeTo == 0 {
			a.enabled = false
		}
		return
	}
	a.fade = a.fadeFrom + (a.fadeTo-a.fadeFrom)*a.fadeT/a.fadeDur
}

// advance moves the playhead and reports whether a loop-once clip reached its
// end during this step.
func (a *Action) advance(dt float64) bool {
	if a.paused || a.clip == nil || a.clip.Duration <= 0 {
		return false
	}
	d := a.clip.Duration
	a.time += dt * a.timeScale

	if a.loopOnce {
		if a.time >= d {
			a.time = d
			if a.clamp {
				a.paused = true
			} else {
				a.enabled = false
			}
			return true
		}
		if a.time < 0 {
			a.time = 0
		}
		return false
	}

	for a.time >= d {
		a.time -= d
	}
	for a.time < 0 {
		a.time += d
	}
	return false
}

// progress is the fraction of the clip cycle played so far.
func (a *Action) progress() float64 {
	if a.clip == nil || a.clip.Duration <= 0 {
		return 0
	}
	return a.time / a.clip.Duration
}
