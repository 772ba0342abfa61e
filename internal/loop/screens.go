package loop

import (
	"fmt"
	"strings"

	"github.com/tomz197/stellarclash/internal/draw"
	"github.com/tomz197/stellarclash/internal/object"
	"github.com/tomz197/stellarclash/internal/physics"
)

// Draw renders the current mode onto c. Paused draws the frozen scene under
// its overlay.
func (e *Engine) Draw(c *draw.Canvas) {
	c.Clear()

	ctx := object.DrawContext{
		Surface: c,
		Offset:  e.Shake.Offset(),
		Time:    e.elapsed,
	}

	for _, s := range e.Stars {
		s.Draw(ctx)
	}

	switch e.Mode {
	case ModeMenu:
		e.drawMenu(c, ctx)
	case ModePlaying:
		e.drawScene(ctx)
		e.drawHUD(c)
	case ModePaused:
		e.drawScene(ctx)
		e.drawHUD(c)
		e.drawPaused(c)
	case ModeGameOver:
		e.drawScene(ctx)
		e.drawGameOver(c)
	}
}

// drawScene draws every entity and effect, back to front.
func (e *Engine) drawScene(ctx object.DrawContext) {
	for _, p := range e.PowerUps {
		p.Draw(ctx)
	}
	for _, a := range e.Asteroids {
		a.Draw(ctx)
	}
	for _, en := range e.Enemies {
		en.Draw(ctx)
	}
	for _, b := range e.Bullets {
		b.Draw(ctx)
	}
	for _, b := range e.EnemyBullets {
		b.Draw(ctx)
	}
	e.Player.Draw(ctx)
	for _, ex := range e.Explosions {
		ex.Draw(ctx.Surface, ctx.Offset)
	}
}

// drawHUD draws score, high score, wave, health and active power-ups.
func (e *Engine) drawHUD(c *draw.Canvas) {
	p := e.Player

	c.DrawText(1, 0, fmt.Sprintf("Score: %d", e.Score), draw.White)
	c.DrawText(1, 1, fmt.Sprintf("High: %d", e.HighScore), draw.Yellow)
	c.DrawText(1, 2, fmt.Sprintf("Wave: %d", e.Wave), draw.Cyan)

	health := strings.Repeat("♥", max(p.Health, 0)) + strings.Repeat("·", max(p.MaxHealth-p.Health, 0))
	label := fmt.Sprintf("%s %s", p.Stats.Name, health)
	c.DrawText(c.TerminalWidth()-len([]rune(label))-1, 0, label, draw.Red)

	row := 1
	if p.TripleShotTimer > 0 {
		text := fmt.Sprintf("Triple shot %.1fs", p.TripleShotTimer)
		c.DrawText(c.TerminalWidth()-len(text)-1, row, text, draw.Yellow)
		row++
	}
	if p.ShieldActive {
		text := "Shield"
		c.DrawText(c.TerminalWidth()-len(text)-1, row, text, draw.Cyan)
	}
}

// drawMenu draws the title, the ship list and the controls.
func (e *Engine) drawMenu(c *draw.Canvas, ctx object.DrawContext) {
	rows := c.TerminalHeight()
	top := rows / 4

	c.DrawTextCentered(top, "S T E L L A R C L A S H", draw.Cyan)
	if e.HighScore > 0 {
		c.DrawTextCentered(top+2, fmt.Sprintf("High score: %d", e.HighScore), draw.Yellow)
	}

	row := top + 4
	for i, ship := range object.ShipTypes() {
		stats := ship.Stats()
		marker := "  "
		color := draw.Gray
		if ship == e.Ship {
			marker = "> "
			color = draw.White
		}
		c.DrawTextCentered(row+i, fmt.Sprintf("%s%d %-8s %s", marker, i+1, stats.Name, stats.Description), color)
	}

	demo := object.NewPlayer(physics.Vec(e.Screen.Width/2, e.Screen.Height*0.62), e.Ship)
	demo.Draw(ctx)

	if object.ShouldRenderBlink(e.elapsed+1, menuBlinkFrequency) {
		c.DrawTextCentered(rows*3/4, "Press SPACE to start", draw.White)
	}
	c.DrawTextCentered(rows*3/4+2,
		"Move: WASD / IJKL / arrows   Fire: SPACE   Pause: ESC/P   Ship: 1-5   Quit: Q", draw.Gray)
}

func (e *Engine) drawPaused(c *draw.Canvas) {
	mid := c.TerminalHeight() / 2
	c.DrawTextCentered(mid, "P A U S E D", draw.White)
	c.DrawTextCentered(mid+2, "Press ESC to resume", draw.Gray)
}

// drawGameOver shows the final score and, after a short delay, the prompts.
func (e *Engine) drawGameOver(c *draw.Canvas) {
	rows := c.TerminalHeight()
	top := rows / 3

	c.DrawTextCentered(top, "G A M E   O V E R", draw.Red)
	c.DrawTextCentered(top+2, fmt.Sprintf("Score: %d   Wave: %d", e.Score, e.Wave), draw.White)
	if e.NewHighScore {
		c.DrawTextCentered(top+4, "NEW HIGH SCORE!", draw.Yellow)
	} else {
		c.DrawTextCentered(top+4, fmt.Sprintf("High score: %d", e.HighScore), draw.Yellow)
	}

	if e.gameOverTimer > gameOverPromptDelay {
		c.DrawTextCentered(top+7, "Press R to play again", draw.White)
		c.DrawTextCentered(top+8, "Press ESC for the menu", draw.Gray)
	}
}
