// Package loop runs the game: the engine that owns every entity collection,
// the game-mode machine, and the frame clock that drives it.
package loop

import (
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/stellarclash/internal/audio"
	"github.com/tomz197/stellarclash/internal/effect"
	"github.com/tomz197/stellarclash/internal/highscore"
	"github.com/tomz197/stellarclash/internal/input"
	"github.com/tomz197/stellarclash/internal/object"
	"github.com/tomz197/stellarclash/internal/physics"
)

// Options configures an Engine. Every field is optional.
type Options struct {
	Sound  audio.Sink      // nil plays nothing
	Scores highscore.Store // nil keeps the high score in memory
	Logger *log.Logger     // nil discards
	Rand   *rand.Rand      // spawn and drop rolls; nil seeds from the clock
	Ship   object.ShipType
}

// Engine owns all game state for one session. It is not safe for concurrent
// use; one goroutine drives Update and Draw.
type Engine struct {
	Screen object.Screen
	Mode   Mode
	Ship   object.ShipType

	Player       *object.Player
	Bullets      []*object.Bullet // player-owned
	EnemyBullets []*object.Bullet
	Asteroids    []*object.Asteroid
	Enemies      []*object.Enemy
	PowerUps     []*object.PowerUp
	Explosions   []*effect.Explosion
	Stars        []*object.Star
	Shake        effect.ScreenShake

	Score        int
	HighScore    int
	NewHighScore bool

	Wave              int
	AsteroidSpawnRate float64
	EnemySpawnRate    float64

	asteroidTimer float64
	enemyTimer    float64
	waveTimer     float64
	gameOverTimer float64
	elapsed       float64
	running       bool

	fragments []*object.Asteroid // children queued during the asteroid pass
	grid      *physics.SpatialGrid

	sound  audio.Sink
	scores highscore.Store
	logger *log.Logger
	rng    *rand.Rand
}

// NewEngine creates an engine on the menu screen.
func NewEngine(opts Options) *Engine {
	e := &Engine{
		Screen:  object.Screen{Width: ScreenWidth, Height: ScreenHeight},
		Mode:    ModeMenu,
		Ship:    opts.Ship,
		sound:   opts.Sound,
		scores:  opts.Scores,
		logger:  opts.Logger,
		rng:     opts.Rand,
		running: true,
	}
	if e.sound == nil {
		e.sound = audio.Nop{}
	}
	if e.scores == nil {
		e.scores = &highscore.Memory{}
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	e.grid = physics.NewSpatialGrid(e.Screen.Width, e.Screen.Height, broadPhaseCellSize)
	e.Stars = object.NewStarField(StarCount, e.Screen, e.rng)
	e.reset()
	return e
}

// Running reports whether the player has not quit.
func (e *Engine) Running() bool {
	return e.running
}

// Elapsed returns the seconds the engine has been updated for.
func (e *Engine) Elapsed() float64 {
	return e.elapsed
}

// StartGame resets the session and enters Playing.
func (e *Engine) StartGame() {
	e.reset()
	e.setMode(ModePlaying)
	e.logger.Info("game started", "ship", e.Ship, "high_score", e.HighScore)
}

// reset clears every collection and restores the initial difficulty.
func (e *Engine) reset() {
	if e.Player != nil {
		e.Player.Release()
	}
	e.Player = object.NewPlayer(physics.Vec(e.Screen.Width/2, e.Screen.Height-playerStartOffsetBottom), e.Ship)

	e.Bullets = clearObjects(e.Bullets)
	e.EnemyBullets = clearObjects(e.EnemyBullets)
	e.Asteroids = clearObjects(e.Asteroids)
	e.Enemies = clearObjects(e.Enemies)
	e.PowerUps = clearObjects(e.PowerUps)
	for _, ex := range e.Explosions {
		ex.Release()
	}
	e.Explosions = e.Explosions[:0]
	e.fragments = e.fragments[:0]
	e.Shake.Reset()

	e.Score = 0
	e.NewHighScore = false
	e.Wave = 1
	e.AsteroidSpawnRate = InitialAsteroidSpawnRate
	e.EnemySpawnRate = InitialEnemySpawnRate
	e.asteroidTimer = 0
	e.enemyTimer = 0
	e.waveTimer = 0
	e.gameOverTimer = 0

	e.HighScore = max(e.HighScore, e.loadHighScore())
}

// clearObjects releases every object and empties the slice.
func clearObjects[T object.Object](s []T) []T {
	for _, obj := range s {
		object.ReleaseObject(obj)
	}
	clear(s)
	return s[:0]
}

// Update advances the game by dt for the active mode.
func (e *Engine) Update(dt time.Duration, in input.Input) {
	if in.Quit {
		e.running = false
		return
	}

	seconds := dt.Seconds()
	e.elapsed += seconds

	switch e.Mode {
	case ModeMenu:
		e.updateMenu(seconds, in)
	case ModePlaying:
		if in.Pause {
			e.setMode(ModePaused)
			return
		}
		e.tick(dt, in)
	case ModePaused:
		e.updatePaused(in)
	case ModeGameOver:
		e.updateGameOver(seconds, in)
	}
}

func (e *Engine) updateContext(dt time.Duration, in input.Input) object.UpdateContext {
	return object.UpdateContext{
		Delta:  dt,
		Input:  in,
		Screen: e.Screen,
		Target: e.Player.Pos,
		Rand:   e.rng,
	}
}

func (e *Engine) loadHighScore() int {
	ctx, cancel := context.WithTimeout(context.Background(), highScoreSaveTimeout)
	defer cancel()

	score, err := e.scores.Load(ctx)
	if err != nil {
		e.logger.Warn("load high score", "err", err)
		return 0
	}
	return score
}

func (e *Engine) saveHighScore() {
	ctx, cancel := context.WithTimeout(context.Background(), highScoreSaveTimeout)
	defer cancel()

	if err := e.scores.Save(ctx, e.HighScore); err != nil {
		e.logger.Warn("save high score", "score", e.HighScore, "err", err)
		return
	}
	e.logger.Info("new high score", "score", e.HighScore)
}
