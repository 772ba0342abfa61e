package loop

import (
	"context"
	"time"

	"github.com/tomz197/stellarclash/internal/draw"
	"github.com/tomz197/stellarclash/internal/input"
)

// Display is where frames are presented: a raw ANSI terminal, an SSH session
// or a tcell screen.
type Display interface {
	// Size reports the terminal size in cells.
	Size() (width, height int, err error)
	// Present shows the canvas.
	Present(c *draw.Canvas) error
}

// Run drives e with the standard Input → Update → Draw cycle at TargetFPS
// until the player quits or ctx is cancelled. Only display failures are
// returned.
func Run(ctx context.Context, e *Engine, stream *input.Stream, display Display) error {
	termWidth, termHeight, err := display.Size()
	if err != nil {
		return err
	}
	canvas := draw.NewScaledCanvas(termWidth, termHeight, ScreenWidth, ScreenHeight)

	ticker := time.NewTicker(targetFrameTime)
	defer ticker.Stop()

	lastTime := time.Now()
	lastMode := e.Mode

	for e.Running() {
		frameStart := time.Now()
		delta := min(frameStart.Sub(lastTime), maxFrameDelta)
		lastTime = frameStart

		// ===== INPUT PHASE =====
		in := input.ReadInput(stream)

		// ===== UPDATE PHASE =====
		e.Update(delta, in)
		if e.Mode != lastMode {
			// Held directions from the previous screen must not leak into the next.
			stream.Reset()
			lastMode = e.Mode
		}

		if w, h, err := display.Size(); err == nil {
			canvas.Resize(w, h)
		}

		// ===== DRAW PHASE =====
		e.Draw(canvas)
		if err := display.Present(canvas); err != nil {
			return err
		}

		// ===== FRAME TIMING =====
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}

	return nil
}
