package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/gravityballs/common"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

var backgroundColor = colornames.Black

// screenCanvas paints bodies onto the ebiten screen image.
type screenCanvas struct {
	screen *ebiten.Image
	face   ebtext.Face
}

func newScreenCanvas() *screenCanvas {
	return &screenCanvas{face: ebtext.NewGoXFace(basicfont.Face7x13)}
}

func (c *screenCanvas) target(screen *ebiten.Image) *screenCanvas {
	c.screen = screen
	return c
}

func (c *screenCanvas) Clear() {
	c.screen.Fill(backgroundColor)
}

func (c *screenCanvas) FillCircle(center common.Vector2, radius float64, clr color.Color) {
	vector.FillCircle(c.screen, float32(center.X), float32(center.Y), float32(radius), clr, true)
}

func (c *screenCanvas) StrokeLine(from, to common.Vector2, width float64, clr color.Color) {
	vector.StrokeLine(c.screen, float32(from.X), float32(from.Y), float32(to.X), float32(to.Y), float32(width), clr, true)
}

func (c *screenCanvas) DrawText(s string, at common.Vector2, clr color.Color) {
	if s == "" {
		return
	}
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(at.X, at.Y-c.face.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(clr)
	ebtext.Draw(c.screen, s, c.face, op)
}
