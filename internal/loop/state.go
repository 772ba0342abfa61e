package loop

import (
	"github.com/tomz197/stellarclash/internal/audio"
	"github.com/tomz197/stellarclash/internal/input"
	"github.com/tomz197/stellarclash/internal/object"
)

// Mode represents the current game phase.
type Mode int

const (
	ModeMenu     Mode = iota // Title screen and ship selection
	ModePlaying              // Active gameplay
	ModePaused               // Simulation frozen under an overlay
	ModeGameOver             // Player died, show restart prompt
)

func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModePlaying:
		return "playing"
	case ModePaused:
		return "paused"
	case ModeGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// updateMenu handles the title screen: ship selection and start.
func (e *Engine) updateMenu(dt float64, in input.Input) {
	e.updateStars(dt)

	if in.Number > 0 {
		if ship, err := object.ShipFromNumber(in.Number); err == nil {
			e.Ship = ship
			e.logger.Debug("ship selected", "ship", ship)
		}
	}

	if in.Fire || in.Enter {
		e.StartGame()
	}
}

// updatePaused only watches for the resume key; nothing advances.
func (e *Engine) updatePaused(in input.Input) {
	if in.Pause {
		e.setMode(ModePlaying)
	}
}

// updateGameOver lets the death explosion play out and waits for restart or back.
func (e *Engine) updateGameOver(dt float64, in input.Input) {
	e.gameOverTimer += dt
	e.updateStars(dt)
	e.updateExplosions(dt)
	e.Shake.Update(dt)

	switch {
	case in.Restart:
		e.StartGame()
	case in.Pause:
		e.setMode(ModeMenu)
	}
}

// gameOver ends the run and persists the high score if it was beaten.
func (e *Engine) gameOver() {
	if e.Mode != ModePlaying {
		return
	}
	e.setMode(ModeGameOver)
	e.gameOverTimer = 0
	e.addExplosion(e.Player.Pos, playerDeathExplosion, false)
	e.sound.Play(audio.Explosion)

	e.logger.Info("game over", "score", e.Score, "wave", e.Wave, "ship", e.Ship)

	if e.Score > e.HighScore {
		e.HighScore = e.Score
		e.NewHighScore = true
		e.saveHighScore()
	}
}

func (e *Engine) setMode(m Mode) {
	if e.Mode != m {
		e.logger.Debug("mode change", "from", e.Mode, "to", m)
	}
	e.Mode = m
}
