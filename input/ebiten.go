package input

import (
	"github.com/hajimehoshi/ebiten/v2"
)

var keyMap = [keyCount]ebiten.Key{
	KeyW:      ebiten.KeyW,
	KeyA:      ebiten.KeyA,
	KeyS:      ebiten.KeyS,
	KeyD:      ebiten.KeyD,
	KeySpace:  ebiten.KeySpace,
	KeyR:      ebiten.KeyR,
	KeyEscape: ebiten.KeyEscape,
	KeyF9:     ebiten.KeyF9,
}

// EbitenSource polls the ebiten keyboard and mouse.
type EbitenSource struct {
	lastX, lastY int
	primed       bool
}

func NewEbitenSource() *EbitenSource {
	return &EbitenSource{}
}

func (e *EbitenSource) Poll(s *State) {
	s.BeginFrame()
	for k := Key(0); k < keyCount; k++ {
		s.SetKey(k, ebiten.IsKeyPressed(keyMap[k]))
	}
	s.SetMouseButton(ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))

	s.Locked = ebiten.CursorMode() == ebiten.CursorModeCaptured

	x, y := ebiten.CursorPosition()
	if e.primed && s.Locked {
		s.MoveMouse(float64(x-e.lastX), float64(y-e.lastY))
	}
	e.lastX, e.lastY = x, y
	e.primed = true
}
