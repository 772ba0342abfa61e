package draw

import (
	"bufio"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// maxChunkSize is the maximum bytes written at once. Matches a typical MTU
// for smooth SSH transmission.
const maxChunkSize = 1400

// ChunkWriter accumulates terminal output and writes it in MTU-sized chunks.
type ChunkWriter struct {
	buf  strings.Builder
	bufw *bufio.Writer
}

// NewChunkWriter creates a ChunkWriter that writes to w.
func NewChunkWriter(w io.Writer) *ChunkWriter {
	return &ChunkWriter{bufw: bufio.NewWriterSize(w, 8192)}
}

// Write implements io.Writer.
func (cw *ChunkWriter) Write(p []byte) (n int, err error) {
	return cw.buf.Write(p)
}

// WriteString appends a string to the buffer.
func (cw *ChunkWriter) WriteString(s string) (int, error) {
	return cw.buf.WriteString(s)
}

// Flush writes the accumulated buffer in chunks and resets it.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := cw.bufw.WriteString(chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return cw.bufw.Flush()
}

// TermSizeFunc returns the terminal dimensions in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns the terminal size of os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

const (
	seqClearScreen = "\033[0m\033[H\033[2J"
	seqHideCursor  = "\033[?25l"
	seqShowCursor  = "\033[?25h"
)

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	io.WriteString(w, seqClearScreen)
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	io.WriteString(w, seqHideCursor)
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	io.WriteString(w, seqShowCursor)
}

// TerminalDisplay presents canvases on an ANSI terminal stream, such as a raw
// stdout or an SSH session.
type TerminalDisplay struct {
	w    io.Writer
	out  *ChunkWriter
	size TermSizeFunc
}

// NewTerminalDisplay creates a display writing to w. size reports the
// terminal dimensions; nil uses DefaultTermSizeFunc.
func NewTerminalDisplay(w io.Writer, size TermSizeFunc) *TerminalDisplay {
	if size == nil {
		size = DefaultTermSizeFunc
	}
	return &TerminalDisplay{w: w, out: NewChunkWriter(w), size: size}
}

// Open hides the cursor and clears the screen.
func (d *TerminalDisplay) Open() error {
	_, err := io.WriteString(d.w, seqHideCursor+seqClearScreen)
	return err
}

// Close restores the cursor and clears the screen.
func (d *TerminalDisplay) Close() error {
	_, err := io.WriteString(d.w, seqClearScreen+seqShowCursor)
	return err
}

// Size returns the current terminal size.
func (d *TerminalDisplay) Size() (int, int, error) {
	return d.size()
}

// Present renders the changed cells of c.
func (d *TerminalDisplay) Present(c *Canvas) error {
	if c.NeedsFullRedraw() {
		d.out.WriteString(seqClearScreen)
	}
	if err := c.Render(d.out); err != nil {
		return err
	}
	return d.out.Flush()
}
