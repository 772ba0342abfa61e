// Package tui presents the game through a tcell screen and feeds its key
// events into an input stream.
package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/stellarclash/internal/draw"
	"github.com/tomz197/stellarclash/internal/input"
)

// Display draws canvases on a tcell screen.
type Display struct {
	screen tcell.Screen
	stream *input.Stream
}

// New opens the controlling terminal.
func New() (*Display, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen)
}

// NewWithScreen initialises screen and starts forwarding its key events.
func NewWithScreen(screen tcell.Screen) (*Display, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()
	screen.Clear()

	d := &Display{screen: screen, stream: input.NewStream()}
	go d.poll()
	return d, nil
}

// Stream returns the input stream fed by the screen's key events. It closes
// when the screen is finalised.
func (d *Display) Stream() *input.Stream {
	return d.stream
}

func (d *Display) poll() {
	defer d.stream.Close()
	for {
		ev := d.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if k := KeyFromEvent(ev); k != input.KeyNone {
				d.stream.Push(k)
			}
		case *tcell.EventResize:
			d.screen.Sync()
		}
	}
}

// KeyFromEvent maps a tcell key event to a logical key.
func KeyFromEvent(ev *tcell.EventKey) input.Key {
	switch ev.Key() {
	case tcell.KeyUp:
		return input.KeyUp
	case tcell.KeyDown:
		return input.KeyDown
	case tcell.KeyLeft:
		return input.KeyLeft
	case tcell.KeyRight:
		return input.KeyRight
	case tcell.KeyEnter:
		return input.KeyEnter
	case tcell.KeyEscape:
		return input.KeyPause
	case tcell.KeyCtrlC:
		return input.KeyQuit
	case tcell.KeyRune:
		if r := ev.Rune(); r < 0x80 {
			return input.ParseByte(byte(r))
		}
	}
	return input.KeyNone
}

// Size returns the screen size in cells.
func (d *Display) Size() (int, int, error) {
	w, h := d.screen.Size()
	return w, h, nil
}

// Present copies the composed canvas cells to the screen.
func (d *Display) Present(c *draw.Canvas) error {
	c.Cells(func(col, row int, cell draw.Cell) {
		style := tcell.StyleDefault.Foreground(cell.Fg).Background(cell.Bg)
		d.screen.SetContent(col, row, cell.Ch, nil, style)
	})
	d.screen.Show()
	return nil
}

// Close restores the terminal.
func (d *Display) Close() {
	d.screen.Fini()
}
