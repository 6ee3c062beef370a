package npc

import (
	"github.com/milk9111/mutantfps/anim"
	"github.com/milk9111/mutantfps/fsm"
)

// animated is implemented by every character state so the next state can
// cross-fade out of the clip the previous one was playing.
type animated interface {
	Animation() anim.Animation
}

func newCharacterFSM(c *CharacterController) (*fsm.Machine, error) {
	m := fsm.New()
	states := []fsm.State{
		&idleState{c: c},
		&patrolState{c: c},
		&chaseState{c: c},
		&attackState{c: c},
		&deadState{c: c},
	}
	for _, s := range states {
		if err := m.AddState(s.Name(), s); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// fadeFrom restarts action and cross-fades into it from the clip of prev.
// It does nothing on the first transition.
func fadeFrom(action *anim.Action, prev fsm.State, d float64) {
	p, ok := prev.(animated)
	if !ok {
		return
	}
	action.SetTime(0).SetEnabled(true)
	action.CrossFadeFrom(p.Animation().Action, d)
}

type idleState struct {
	c    *CharacterController
	wait float64
}

func (s *idleState) Name() string              { return "idle" }
func (s *idleState) Animation() anim.Animation { return s.c.animation("idle") }
func (s *idleState) Exit()                     {}

func (s *idleState) Enter(prev fsm.State) {
	s.c.canMove = false
	action := s.Animation().Action
	fadeFrom(action, prev, 0.5)
	action.Play()

	w := s.c.spec.IdleWait
	s.wait = s.c.rng.Float64()*(w.Max-w.Min) + w.Min
}

func (s *idleState) Update(dt float64) {
	if s.wait <= 0 {
		s.c.setState("patrol")
		return
	}
	s.wait -= dt

	if s.c.CanSeeThePlayer() {
		s.c.setState("chase")
	}
}

type patrolState struct {
	c *CharacterController
}

func (s *patrolState) Name() string              { return "patrol" }
func (s *patrolState) Animation() anim.Animation { return s.c.animation("walk") }
func (s *patrolState) Exit()                     {}

func (s *patrolState) Enter(prev fsm.State) {
	s.c.canMove = true
	action := s.Animation().Action
	fadeFrom(action, prev, 0.5)
	action.Play()

	s.c.NavigateToRandomPoint()
}

func (s *patrolState) Update(float64) {
	if s.c.CanSeeThePlayer() {
		s.c.setState("chase")
	} else if len(s.c.path) == 0 {
		s.c.setState("idle")
	}
}

type chaseState struct {
	c           *CharacterController
	updateTimer float64
	switchDelay float64
}

func (s *chaseState) Name() string              { return "chase" }
func (s *chaseState) Animation() anim.Animation { return s.c.animation("run") }
func (s *chaseState) Exit()                     {}

func (s *chaseState) Enter(prev fsm.State) {
	s.c.canMove = true
	s.updateTimer = 0
	s.switchDelay = s.c.spec.SwitchDelay

	action := s.Animation().Action
	if p, ok := prev.(animated); ok {
		action.SetTime(0).SetEnabled(true)
		action.SetEffectiveTimeScale(1).SetEffectiveWeight(1)
		action.CrossFadeFrom(p.Animation().Action, 0.2)
	}
	action.SetTimeScale(1.5)
	action.Play()
}

func (s *chaseState) Update(dt float64) {
	if s.updateTimer <= 0 {
		s.c.NavigateToPlayer()
		s.updateTimer = s.c.spec.RepathInterval
	}

	if s.c.IsCloseToPlayer() {
		if s.switchDelay <= 0 {
			s.c.setState("attack")
		}
		s.c.ClearPath()
		s.switchDelay -= dt
	} else {
		s.switchDelay = s.c.spec.SwitchDelay
	}

	s.updateTimer -= dt
}

type attackState struct {
	c           *CharacterController
	attackTime  float64
	attackEvent float64
	canHit      bool
}

func (s *attackState) Name() string              { return "attack" }
func (s *attackState) Animation() anim.Animation { return s.c.animation("attack") }
func (s *attackState) Exit()                     {}

func (s *attackState) Enter(prev fsm.State) {
	s.c.canMove = false
	s.attackTime = s.Animation().Clip.Duration
	s.attackEvent = s.attackTime * s.c.spec.AttackEvent
	s.canHit = true

	action := s.Animation().Action
	fadeFrom(action, prev, 0.1)
	action.Play()
}

func (s *attackState) Update(dt float64) {
	s.c.FacePlayer(dt, s.c.spec.FaceRate)

	if !s.c.IsCloseToPlayer() && s.attackTime <= 0 {
		s.c.setState("chase")
		return
	}

	if s.canHit && s.attackTime <= s.attackEvent && s.c.IsPlayerInHitbox() {
		s.c.HitPlayer()
		s.canHit = false
	}

	if s.attackTime <= 0 {
		s.attackTime = s.Animation().Clip.Duration
		s.canHit = true
	}

	s.attackTime -= dt
}

// deadState is terminal.
type deadState struct {
	c *CharacterController
}

func (s *deadState) Name() string              { return "dead" }
func (s *deadState) Animation() anim.Animation { return s.c.animation("die") }
func (s *deadState) Exit()                     {}
func (s *deadState) Update(float64)            {}

func (s *deadState) Enter(prev fsm.State) {
	s.c.canMove = false
	s.c.ClearPath()
	s.c.collision.Disable()

	action := s.Animation().Action
	// clips already faded out never play again
	for _, a := range s.c.animations {
		if a.Action != action && a.Action.EffectiveWeight() == 0 {
			a.Action.Stop()
		}
	}
	action.SetLoopOnce(true).SetClampWhenFinished(true)
	fadeFrom(action, prev, 0.1)
	action.Play()
}
