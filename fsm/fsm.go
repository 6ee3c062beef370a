// Package fsm implements a small named-state machine driven once per frame.
package fsm

import (
	"github.com/pkg/errors"
)

var (
	ErrUnknownState   = errors.New("fsm: unknown state")
	ErrDuplicateState = errors.New("fsm: state already registered")
)

// State is one behavior of a Machine. Enter receives the state being left,
// which is nil on the first transition.
type State interface {
	Name() string
	Enter(prev State)
	Exit()
	Update(dt float64)
}

// Machine keeps at most one active state. Transitions run Exit on the
// outgoing state before Enter on the incoming one.
type Machine struct {
	states  map[string]State
	current State
}

func New() *Machine {
	return &Machine{states: make(map[string]State)}
}

func (m *Machine) AddState(name string, s State) error {
	if _, ok := m.states[name]; ok {
		return errors.Wrapf(ErrDuplicateState, "add %q", name)
	}
	m.states[name] = s
	return nil
}

// SetState switches to the named state. Switching to the current state is a no-op.
func (m *Machine) SetState(name string) error {
	next, ok := m.states[name]
	if !ok {
		return errors.Wrapf(ErrUnknownState, "set %q", name)
	}

	prev := m.current
	if prev == next {
		return nil
	}
	if prev != nil {
		prev.Exit()
	}

	m.current = next
	next.Enter(prev)
	return nil
}

func (m *Machine) Update(dt float64) {
	if m.current == nil {
		return
	}
	m.current.Update(dt)
}

func (m *Machine) Current() State {
	return m.current
}

func (m *Machine) CurrentName() string {
	if m.current == nil {
		return ""
	}
	return m.current.Name()
}
