// Package input holds the per-frame keyboard and mouse state components read
// from. The game owns one State and refreshes it from a Source every frame.
package input

type Key int

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeySpace
	KeyR
	KeyEscape
	KeyF9
	keyCount
)

// State is a snapshot of the devices for one frame. Pressed and released
// edges and mouse motion only last until the next BeginFrame.
type State struct {
	down     [keyCount]bool
	pressed  [keyCount]bool
	released [keyCount]bool

	mouseDown     bool
	mousePressed  bool
	mouseReleased bool
	dx, dy        float64

	// Locked is true while the cursor is captured for mouse-look.
	Locked bool
}

func NewState() *State {
	return &State{}
}

// BeginFrame clears the edges and motion of the previous frame.
func (s *State) BeginFrame() {
	s.pressed = [keyCount]bool{}
	s.released = [keyCount]bool{}
	s.mousePressed = false
	s.mouseReleased = false
	s.dx, s.dy = 0, 0
}

func (s *State) SetKey(k Key, down bool) {
	if k < 0 || k >= keyCount {
		return
	}
	if down && !s.down[k] {
		s.pressed[k] = true
	}
	if !down && s.down[k] {
		s.released[k] = true
	}
	s.down[k] = down
}

func (s *State) SetMouseButton(down bool) {
	if down && !s.mouseDown {
		s.mousePressed = true
	}
	if !down && s.mouseDown {
		s.mouseReleased = true
	}
	s.mouseDown = down
}

// MoveMouse accumulates relative motion in pixels.
func (s *State) MoveMouse(dx, dy float64) {
	s.dx += dx
	s.dy += dy
}

func (s *State) Down(k Key) bool {
	return k >= 0 && k < keyCount && s.down[k]
}

// Value is 1 while k is held, else 0.
func (s *State) Value(k Key) float64 {
	if s.Down(k) {
		return 1
	}
	return 0
}

func (s *State) Pressed(k Key) bool {
	return k >= 0 && k < keyCount && s.pressed[k]
}

func (s *State) Released(k Key) bool {
	return k >= 0 && k < keyCount && s.released[k]
}

func (s *State) MouseDown() bool     { return s.mouseDown }
func (s *State) MousePressed() bool  { return s.mousePressed }
func (s *State) MouseReleased() bool { return s.mouseReleased }

func (s *State) MouseDelta() (dx, dy float64) {
	return s.dx, s.dy
}

// Source fills a State once per frame.
type Source interface {
	Poll(s *State)
}
