package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/mutantfps/common"
	"github.com/milk9111/mutantfps/physics"
	"github.com/milk9111/mutantfps/scene"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 0.1
	// pixels per world unit of the top-down view
	mapZoom = 24.0
)

var (
	floorColor  = color.NRGBA{R: 0x1b, G: 0x1d, B: 0x22, A: 0xff}
	decalColor  = color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}
	pathColor   = color.NRGBA{R: 0x40, G: 0x90, B: 0xff, A: 0xc0}
	arrowColor  = color.NRGBA{R: 0xff, G: 0xff, B: 0x40, A: 0xff}
	playerColor = color.NRGBA{R: 0x40, G: 0xff, B: 0x80, A: 0xff}
)

// drawScene renders a top-down view centered on the player, heading up.
func drawScene(screen *ebiten.Image, s *scene.Scene, debug bool) {
	screen.Fill(floorColor)

	pos := s.Player().Position()
	_, yaw := s.Controls().Angles()
	d := &worldDrawer{
		screen: screen,
		center: plane(pos),
		angle:  yaw,
		zoom:   mapZoom,
	}

	for _, decal := range s.Decals() {
		d.drawCircle(plane(decal.Point), decal.Size/2, decalColor)
	}
	s.World().DrawSpace(d)

	if debug {
		for _, c := range s.NPCs() {
			path := c.Path()
			for i := 1; i < len(path); i++ {
				d.drawLine(plane(path[i-1]), plane(path[i]), pathColor)
			}
		}
		for _, a := range s.Arrows() {
			arrow := a.Arrow()
			tip := arrow.From.Add(arrow.Dir.Mul(arrow.Length))
			d.drawLine(plane(arrow.From), plane(tip), arrowColor)
		}
	}

	fwd := common.Flat(s.Camera().Forward())
	if fwd.Len() > 0 {
		fwd = fwd.Normalize()
	}
	d.drawCircle(plane(pos), 0.3, playerColor)
	d.drawLine(plane(pos), plane(pos.Add(fwd)), playerColor)

	if flash := s.Weapon().Flash(); flash.Opacity > 0 {
		tip := plane(pos.Add(fwd.Mul(0.6)))
		c := color.NRGBA{R: 0xff, G: 0xd0, B: 0x60, A: uint8(flash.Opacity * 255)}
		d.drawCircle(tip, 0.15*flash.Scale, c)
	}

	s.UI().Draw(screen)

	if debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.1f\n%s", ebiten.ActualFPS(), s.Report()), 10, 10)
	}
}

func plane(v mgl64.Vec3) cp.Vector {
	return cp.Vector{X: v.X(), Y: v.Z()}
}

// worldDrawer draws chipmunk shapes from the XZ plane onto the screen.
type worldDrawer struct {
	screen *ebiten.Image
	center cp.Vector
	angle  float64
	zoom   float64
}

func (d *worldDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawCircle(pos, radius, toNRGBA(outline))
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, toNRGBA(outline))
}

func (d *worldDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, toNRGBA(fill))
}

func (d *worldDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, toNRGBA(outline))
	if radius > 0 {
		d.drawCircle(a, radius, toNRGBA(outline))
		d.drawCircle(b, radius, toNRGBA(outline))
	}
}

func (d *worldDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], toNRGBA(outline))
}

func (d *worldDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	half := debugDotSize / 2
	c := toNRGBA(fill)
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, c)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, c)
}

func (d *worldDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *worldDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

// ShapeColor tells triggers, movers and level geometry apart.
func (d *worldDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	switch obj := shape.UserData.(type) {
	case *physics.Trigger:
		return cp.FColor{R: 1, G: 0.8, B: 0.1, A: 0.9}
	case *physics.Body:
		if obj.Kind() != physics.BodyStatic {
			return cp.FColor{R: 1, G: 0.3, B: 0.3, A: 0.9}
		}
	}
	return cp.FColor{R: 0.6, G: 0.6, B: 0.65, A: 1}
}

func (d *worldDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *worldDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *worldDrawer) Data() interface{} {
	return nil
}

func (d *worldDrawer) drawLine(a, b cp.Vector, c color.Color) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	vector.StrokeLine(d.screen, x1, y1, x2, y2, 1, c, true)
}

func (d *worldDrawer) drawPolygon(verts []cp.Vector, c color.Color) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *worldDrawer) drawCircle(center cp.Vector, radius float64, c color.Color) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, c)
}

// toScreen rotates by the view yaw so the view direction points up.
func (d *worldDrawer) toScreen(v cp.Vector) (float32, float32) {
	rel := v.Sub(d.center).Rotate(cp.ForAngle(d.angle))
	x := baseWidth/2 + rel.X*d.zoom
	y := baseHeight/2 + rel.Y*d.zoom
	return float32(x), float32(y)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	return min(max(v, 0), 1)
}
