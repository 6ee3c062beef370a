// Package hud draws the in-game readout: ammo counts and the health bar.
package hud

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/mutantfps/ecs"
)

var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

// UIManager keeps the values the HUD shows. Other components push updates
// through SetAmmo and SetHealth.
type UIManager struct {
	ecs.Base
	mag     int
	reserve int
	health  float64
	visible bool
}

func NewUIManager() *UIManager {
	return &UIManager{health: 100}
}

func (u *UIManager) Kind() ecs.ComponentKind { return ecs.KindUIManager }

func (u *UIManager) Initialize() error {
	u.visible = true
	return nil
}

func (u *UIManager) SetAmmo(mag, rest int) {
	u.mag, u.reserve = mag, rest
}

// SetHealth sets the bar fill in percent.
func (u *UIManager) SetHealth(health float64) {
	u.health = health
}

func (u *UIManager) Ammo() (mag, rest int) { return u.mag, u.reserve }
func (u *UIManager) Health() float64       { return u.health }
func (u *UIManager) Visible() bool         { return u.visible }

// AmmoText is the counter as drawn, "mag / rest".
func (u *UIManager) AmmoText() string {
	return fmt.Sprintf("%d / %d", u.mag, u.reserve)
}

func (u *UIManager) Draw(screen *ebiten.Image) {
	if !u.visible {
		return
	}
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()

	const barW, barH = 200, 12
	x, y := float32(16), float32(h-28)
	vector.DrawFilledRect(screen, x, y, barW, barH, color.NRGBA{0x30, 0x30, 0x30, 0xc0}, false)
	fill := float32(u.health / 100 * barW)
	if fill < 0 {
		fill = 0
	}
	vector.DrawFilledRect(screen, x, y, fill, barH, color.NRGBA{0xd0, 0x30, 0x30, 0xff}, false)

	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(float64(w-110), float64(h-30))
	op.ColorScale.ScaleWithColor(color.White)
	ebtext.Draw(screen, u.AmmoText(), face, op)

	cx, cy := float32(w)/2, float32(h)/2
	vector.StrokeLine(screen, cx-6, cy, cx+6, cy, 1, color.White, false)
	vector.StrokeLine(screen, cx, cy-6, cx, cy+6, 1, color.White, false)
}
