package draw

import (
	"io"
	"math"
	"sort"
	"strconv"
	"unicode/utf8"
)

// Cell is one composed terminal cell.
type Cell struct {
	Ch rune
	Fg Color
	Bg Color
}

// Canvas is a drawing buffer with 2x vertical resolution using half-block
// characters. Game objects draw in logical coordinates which are scaled to the
// terminal. A text layer in terminal cells sits on top of the pixels.
type Canvas struct {
	termWidth      int
	termHeight     int
	subPixelHeight int
	pixels         []Color // [y*termWidth + x], zero means empty
	text           []Cell  // [row*termWidth + col], Ch == 0 means empty

	logicalWidth  float64
	logicalHeight float64
	scaleX        float64
	scaleY        float64

	// Last rendered frame for diff output; nil forces a full redraw.
	prev []Cell
	cur  []Cell

	scaledBuf       []Point
	intersectionBuf []float64
	polygonBuf      []Point
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
// A size change forces the next Render to redraw every cell.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]Color, c.subPixelHeight*termWidth)
		c.text = make([]Cell, termHeight*termWidth)
		c.cur = make([]Cell, termHeight*termWidth)
		c.prev = nil
	}

	c.scaleX = float64(c.termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// ForceRedraw makes the next Render emit every cell.
func (c *Canvas) ForceRedraw() {
	c.prev = nil
}

// NeedsFullRedraw reports whether the next Render will emit every cell.
func (c *Canvas) NeedsFullRedraw() bool {
	return c.prev == nil
}

// Clear resets all pixels and text.
func (c *Canvas) Clear() {
	clear(c.pixels)
	clear(c.text)
}

// setPixel sets a pixel at actual terminal sub-pixel coordinates.
func (c *Canvas) setPixel(x, y int, col Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = col
	}
}

// Pixel returns the colour at sub-pixel (x, y); zero when unset or out of range.
func (c *Canvas) Pixel(x, y int) Color {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return 0
	}
	return c.pixels[y*c.termWidth+x]
}

// SetPixel sets a single pixel at logical coordinates.
func (c *Canvas) SetPixel(p Point, col Color) {
	c.setPixel(int(math.Round(p.X*c.scaleX)), int(math.Round(p.Y*c.scaleY)), col)
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(p1, p2 Point, col Color) {
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, col)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws a polygon outline, filling the interior when filled is set.
func (c *Canvas) DrawPolygon(points []Point, filled bool, col Color) {
	if len(points) < 3 {
		return
	}

	if filled {
		c.fillPolygon(points, col)
	}

	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n], col)
	}
}

// circleSegments is the polygon resolution used to approximate circles.
const circleSegments = 16

// DrawCircle draws a circle as a polygon. Circles smaller than a sub-pixel
// collapse to a single pixel.
func (c *Canvas) DrawCircle(center Point, radius float64, filled bool, col Color) {
	if radius*c.scaleX < 1 && radius*c.scaleY < 1 {
		c.SetPixel(center, col)
		return
	}

	points := c.BorrowPoints(circleSegments)
	for i := range points {
		a := float64(i) / circleSegments * 2 * math.Pi
		points[i] = Point{X: center.X + math.Cos(a)*radius, Y: center.Y + math.Sin(a)*radius}
	}
	c.DrawPolygon(points, filled, col)
}

// fillPolygon fills a polygon using a scanline pass in pixel space.
func (c *Canvas) fillPolygon(points []Point, col Color) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]

	for i, p := range points {
		scaled[i] = Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	yStart := max(int(math.Floor(minY)), 0)
	yEnd := min(int(math.Ceil(maxY)), c.subPixelHeight-1)

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]
		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i]))
			xEnd := int(math.Floor(intersections[i+1]))
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y, col)
			}
		}
	}
}

// DrawText writes s into the text layer starting at the 0-based terminal cell (col, row).
func (c *Canvas) DrawText(col, row int, s string, fg Color) {
	if row < 0 || row >= c.termHeight {
		return
	}
	for _, r := range s {
		if col >= 0 && col < c.termWidth {
			c.text[row*c.termWidth+col] = Cell{Ch: r, Fg: fg}
		}
		col++
	}
}

// DrawTextCentered writes s horizontally centred on the given row.
func (c *Canvas) DrawTextCentered(row int, s string, fg Color) {
	c.DrawText((c.termWidth-utf8.RuneCountInString(s))/2, row, s, fg)
}

// compose merges the pixel and text layers into c.cur.
func (c *Canvas) compose() {
	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			idx := row*c.termWidth + col
			if t := c.text[idx]; t.Ch != 0 {
				c.cur[idx] = t
				continue
			}

			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]

			switch {
			case top != 0 && bottom != 0:
				if top == bottom {
					c.cur[idx] = Cell{Ch: BlockFull, Fg: top}
				} else {
					c.cur[idx] = Cell{Ch: BlockUpperHalf, Fg: top, Bg: bottom}
				}
			case top != 0:
				c.cur[idx] = Cell{Ch: BlockUpperHalf, Fg: top}
			case bottom != 0:
				c.cur[idx] = Cell{Ch: BlockLowerHalf, Fg: bottom}
			default:
				c.cur[idx] = Cell{Ch: BlockEmpty}
			}
		}
	}
}

// Cells composes the frame and calls fn for every cell. Used by frontends
// that own their own screen buffer.
func (c *Canvas) Cells(fn func(col, row int, cell Cell)) {
	c.compose()
	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			fn(col, row, c.cur[row*c.termWidth+col])
		}
	}
}

// Render writes the ANSI sequences for every cell that changed since the last
// Render. Pass a ChunkWriter to batch the output for network flow.
func (c *Canvas) Render(w io.Writer) error {
	c.compose()

	var buf []byte
	var lastFg, lastBg Color
	styled := false
	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			idx := row*c.termWidth + col
			cell := c.cur[idx]
			if c.prev != nil && c.prev[idx] == cell {
				continue
			}

			buf = append(buf, "\033["...)
			buf = strconv.AppendInt(buf, int64(row+1), 10)
			buf = append(buf, ';')
			buf = strconv.AppendInt(buf, int64(col+1), 10)
			buf = append(buf, 'H')

			if !styled || cell.Fg != lastFg || cell.Bg != lastBg {
				buf = appendStyle(buf, cell.Fg, cell.Bg)
				lastFg, lastBg = cell.Fg, cell.Bg
				styled = true
			}
			buf = utf8.AppendRune(buf, cell.Ch)
		}
	}
	if styled {
		buf = append(buf, "\033[0m"...)
	}

	if c.prev == nil {
		c.prev = make([]Cell, len(c.cur))
	}
	copy(c.prev, c.cur)

	if len(buf) == 0 {
		return nil
	}
	_, err := w.Write(buf)
	return err
}

// appendStyle appends an SGR sequence selecting fg and bg as 24-bit colours.
func appendStyle(buf []byte, fg, bg Color) []byte {
	buf = append(buf, "\033[0"...)
	if r, g, b := fg.RGB(); r >= 0 {
		buf = append(buf, ";38;2;"...)
		buf = appendRGB(buf, r, g, b)
	}
	if r, g, b := bg.RGB(); r >= 0 {
		buf = append(buf, ";48;2;"...)
		buf = appendRGB(buf, r, g, b)
	}
	return append(buf, 'm')
}

func appendRGB(buf []byte, r, g, b int32) []byte {
	buf = strconv.AppendInt(buf, int64(r), 10)
	buf = append(buf, ';')
	buf = strconv.AppendInt(buf, int64(g), 10)
	buf = append(buf, ';')
	return strconv.AppendInt(buf, int64(b), 10)
}

// LogicalWidth returns the logical width.
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height.
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to a 0-based terminal cell.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px, py / 2
}

// BorrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}

var _ Surface = (*Canvas)(nil)
