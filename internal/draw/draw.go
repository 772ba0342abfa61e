// Package draw provides the terminal rendering surface: a colour half-block
// canvas with line, polygon, circle and text primitives, plus ANSI output helpers.
package draw

import (
	"math"

	"github.com/gdamore/tcell/v2"
)

// Point represents a 2D coordinate in logical (world) space.
type Point struct {
	X, Y float64
}

// Color is a terminal colour. The zero value (tcell.ColorDefault) means "unset".
type Color = tcell.Color

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
	BlockEmpty     = ' '
)

// Palette used by entities and screens.
var (
	White    = tcell.NewRGBColor(255, 255, 255)
	Gray     = tcell.NewRGBColor(128, 128, 128)
	DarkGray = tcell.NewRGBColor(70, 70, 80)
	Red      = tcell.NewRGBColor(255, 60, 60)
	Orange   = tcell.NewRGBColor(255, 150, 40)
	Yellow   = tcell.NewRGBColor(255, 230, 80)
	Green    = tcell.NewRGBColor(80, 255, 120)
	Cyan     = tcell.NewRGBColor(80, 220, 255)
	Blue     = tcell.NewRGBColor(80, 140, 255)
	Purple   = tcell.NewRGBColor(190, 100, 255)
	Magenta  = tcell.NewRGBColor(255, 80, 220)
	Brown    = tcell.NewRGBColor(150, 110, 80)
)

// NewRGB returns a 24-bit colour.
func NewRGB(r, g, b int32) Color {
	return tcell.NewRGBColor(r, g, b)
}

// Surface is what entities draw themselves onto. Coordinates are logical.
type Surface interface {
	SetPixel(p Point, c Color)
	DrawLine(p1, p2 Point, c Color)
	DrawPolygon(points []Point, filled bool, c Color)
	DrawCircle(center Point, radius float64, filled bool, c Color)
	BorrowPoints(n int) []Point
}

// Fade scales the brightness of c by alpha in [0, 1].
func Fade(c Color, alpha float64) Color {
	if alpha >= 1 {
		return c
	}
	if alpha < 0 {
		alpha = 0
	}
	r, g, b := c.RGB()
	if r < 0 {
		return c
	}
	return tcell.NewRGBColor(
		int32(math.Round(float64(r)*alpha)),
		int32(math.Round(float64(g)*alpha)),
		int32(math.Round(float64(b)*alpha)),
	)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
