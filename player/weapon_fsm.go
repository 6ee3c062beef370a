package player

import (
	"github.com/milk9111/mutantfps/anim"
	"github.com/milk9111/mutantfps/fsm"
)

type animated interface {
	Animation() anim.Animation
}

func newWeaponFSM(w *Weapon) (*fsm.Machine, error) {
	m := fsm.New()
	for _, s := range []fsm.State{
		&weaponIdle{w: w},
		&weaponShoot{w: w},
		&weaponReload{w: w},
	} {
		if err := m.AddState(s.Name(), s); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// enter restarts the state's clip at normal speed, cross-fading from the
// previous state's clip.
func enter(action *anim.Action, prev fsm.State) {
	if p, ok := prev.(animated); ok {
		action.SetTime(0).SetEnabled(true).SetEffectiveTimeScale(1)
		action.CrossFadeFrom(p.Animation().Action, 0.1)
	}
}

type weaponIdle struct{ w *Weapon }

func (s *weaponIdle) Name() string              { return "idle" }
func (s *weaponIdle) Animation() anim.Animation { return s.w.animation("idle") }
func (s *weaponIdle) Exit()                     {}

func (s *weaponIdle) Enter(prev fsm.State) {
	action := s.Animation().Action
	enter(action, prev)
	action.Play()
}

func (s *weaponIdle) Update(float64) {
	if s.w.shoot && s.w.magAmmo > 0 {
		s.w.setState("shoot")
	}
}

type weaponShoot struct{ w *Weapon }

func (s *weaponShoot) Name() string              { return "shoot" }
func (s *weaponShoot) Animation() anim.Animation { return s.w.animation("shoot") }
func (s *weaponShoot) Exit()                     {}

func (s *weaponShoot) Enter(prev fsm.State) {
	action := s.Animation().Action
	enter(action, prev)
	action.SetTimeScale(s.w.spec.ShootSpeed)
	action.Play()
}

func (s *weaponShoot) Update(float64) {
	if !s.w.shoot || s.w.magAmmo == 0 {
		s.w.setState("idle")
	}
}

// weaponReload leaves through the mixer's finished notification.
type weaponReload struct{ w *Weapon }

func (s *weaponReload) Name() string              { return "reload" }
func (s *weaponReload) Animation() anim.Animation { return s.w.animation("reload") }
func (s *weaponReload) Exit()                     {}
func (s *weaponReload) Update(float64)            {}

func (s *weaponReload) Enter(prev fsm.State) {
	action := s.Animation().Action
	action.SetLoopOnce(true)
	enter(action, prev)
	action.Play()
}
