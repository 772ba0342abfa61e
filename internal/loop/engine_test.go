package loop

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/stellarclash/internal/audio"
	"github.com/tomz197/stellarclash/internal/draw"
	"github.com/tomz197/stellarclash/internal/input"
	"github.com/tomz197/stellarclash/internal/object"
	"github.com/tomz197/stellarclash/internal/physics"
)

const frame = time.Second / TargetFPS

type recordingSink struct {
	played []audio.Sound
}

func (r *recordingSink) Play(s audio.Sound) {
	r.played = append(r.played, s)
}

type recordingStore struct {
	stored  int
	loadErr error
	saves   []int
}

func (s *recordingStore) Load(context.Context) (int, error) {
	return s.stored, s.loadErr
}

func (s *recordingStore) Save(_ context.Context, score int) error {
	s.saves = append(s.saves, score)
	s.stored = score
	return nil
}

func newTestEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}
	e := NewEngine(opts)
	e.StartGame()
	require.Equal(t, ModePlaying, e.Mode)
	return e
}

func still(a *object.Asteroid) *object.Asteroid {
	a.Vel = physics.Vector2{}
	return a
}

func stillBullet(pos physics.Vector2, owner object.Owner) *object.Bullet {
	b := object.NewBullet(pos, -math.Pi/2, object.PlayerBulletSpeed, owner)
	b.Vel = physics.Vector2{}
	return b
}

func assertAllAlive(t *testing.T, e *Engine) {
	t.Helper()
	for _, b := range e.Bullets {
		require.True(t, b.IsAlive())
	}
	for _, b := range e.EnemyBullets {
		require.True(t, b.IsAlive())
	}
	for _, a := range e.Asteroids {
		require.True(t, a.IsAlive())
	}
	for _, en := range e.Enemies {
		require.True(t, en.IsAlive())
	}
	for _, p := range e.PowerUps {
		require.True(t, p.IsAlive())
	}
}

func TestBulletDestroysSmallAsteroid(t *testing.T) {
	e := newTestEngine(t, Options{})

	a := still(object.NewAsteroid(physics.Vec(100, 100), 1, e.rng))
	e.Asteroids = append(e.Asteroids, a)
	e.Bullets = append(e.Bullets,
		object.NewBullet(physics.Vec(100, 120), -math.Pi/2, object.PlayerBulletSpeed, object.OwnerPlayer))

	e.Update(frame, input.Input{})

	assert.False(t, a.IsAlive())
	assert.Empty(t, e.Asteroids, "size 1 leaves no fragments")
	assert.Empty(t, e.Bullets, "the bullet is consumed")
	assert.Equal(t, 10, e.Score)
	assert.NotEmpty(t, e.Explosions)
}

func TestFragmentsAreNotHitInTheirOwnPass(t *testing.T) {
	e := newTestEngine(t, Options{})

	a := still(object.NewAsteroid(physics.Vec(100, 100), 2, e.rng))
	a.Health = 1
	e.Asteroids = append(e.Asteroids, a)
	e.Bullets = append(e.Bullets,
		stillBullet(physics.Vec(100, 100), object.OwnerPlayer),
		stillBullet(physics.Vec(100, 100), object.OwnerPlayer))

	e.Update(frame, input.Input{})

	require.Len(t, e.Asteroids, 2)
	for _, child := range e.Asteroids {
		assert.Equal(t, 1, child.Size)
	}
	assert.Len(t, e.Bullets, 1, "second bullet survives the pass that created the fragments")
	assert.Equal(t, 20, e.Score)

	e.Update(frame, input.Input{})

	assert.Len(t, e.Asteroids, 1)
	assert.Empty(t, e.Bullets)
	assert.Equal(t, 30, e.Score)
}

func TestOneBulletPerTarget(t *testing.T) {
	e := newTestEngine(t, Options{})

	a := still(object.NewAsteroid(physics.Vec(200, 200), 3, e.rng))
	e.Asteroids = append(e.Asteroids, a)
	first := stillBullet(physics.Vec(205, 200), object.OwnerPlayer)
	second := stillBullet(physics.Vec(195, 200), object.OwnerPlayer)
	e.Bullets = append(e.Bullets, first, second)

	e.Update(frame, input.Input{})

	assert.Equal(t, 2, a.Health)
	assert.False(t, first.IsAlive(), "earliest fired bullet wins")
	require.Len(t, e.Bullets, 1)
	assert.Same(t, second, e.Bullets[0])
}

func TestEnemyDestroyedScores(t *testing.T) {
	e := newTestEngine(t, Options{})

	en := object.NewEnemy(physics.Vec(300, 100), object.EnemyBasic, e.rng)
	en.Vel = physics.Vector2{}
	e.Enemies = append(e.Enemies, en)
	e.Bullets = append(e.Bullets, stillBullet(physics.Vec(300, 100), object.OwnerPlayer))

	e.Update(frame, input.Input{})

	assert.Empty(t, e.Enemies)
	assert.Equal(t, object.EnemyScore, e.Score)
	assert.InDelta(t, enemyShake*0.95, e.Shake.Intensity(), 1e-9, "raised then decayed once")
}

func TestNeutronBombClearsField(t *testing.T) {
	sink := &recordingSink{}
	e := newTestEngine(t, Options{Sound: sink})

	e.Asteroids = append(e.Asteroids,
		still(object.NewAsteroid(physics.Vec(100, 100), 1, e.rng)),
		still(object.NewAsteroid(physics.Vec(300, 100), 2, e.rng)),
		still(object.NewAsteroid(physics.Vec(500, 100), 3, e.rng)))
	for _, x := range []float64{700, 850} {
		en := object.NewEnemy(physics.Vec(x, 100), object.EnemyBasic, e.rng)
		en.Vel = physics.Vector2{}
		e.Enemies = append(e.Enemies, en)
	}
	e.EnemyBullets = append(e.EnemyBullets, stillBullet(physics.Vec(50, 400), object.OwnerEnemy))
	e.PowerUps = append(e.PowerUps, object.NewPowerUp(e.Player.Pos, object.PowerUpNeutronBomb))

	e.Update(frame, input.Input{})

	assert.Empty(t, e.Asteroids)
	assert.Empty(t, e.Enemies)
	assert.Empty(t, e.EnemyBullets)
	assert.Empty(t, e.PowerUps)
	assert.Equal(t, 10+20+30+2*object.EnemyScore, e.Score)
	assert.Len(t, e.Explosions, 3+2+1)
	assert.Contains(t, sink.played, audio.PowerUp)
}

func TestPowerUpPickup(t *testing.T) {
	e := newTestEngine(t, Options{})
	e.PowerUps = append(e.PowerUps,
		object.NewPowerUp(e.Player.Pos, object.PowerUpShield),
		object.NewPowerUp(physics.Vec(50, 50), object.PowerUpTripleShot))

	e.Update(frame, input.Input{})

	assert.True(t, e.Player.ShieldActive)
	assert.Zero(t, e.Player.TripleShotTimer)
	require.Len(t, e.PowerUps, 1)
	assert.Equal(t, object.PowerUpTripleShot, e.PowerUps[0].Type)
}

func TestPlayerHitFirstMatchPerCategory(t *testing.T) {
	sink := &recordingSink{}
	e := newTestEngine(t, Options{Sound: sink})
	pos := e.Player.Pos

	e.EnemyBullets = append(e.EnemyBullets,
		stillBullet(pos, object.OwnerEnemy),
		stillBullet(pos, object.OwnerEnemy))

	e.Update(frame, input.Input{})

	assert.Len(t, e.EnemyBullets, 1, "only the first overlapping bullet is consumed")
	assert.Equal(t, e.Player.MaxHealth-1, e.Player.Health)
	assert.Equal(t, []audio.Sound{audio.Hit}, sink.played)
	assert.InDelta(t, bulletHitShakeDuration-frame.Seconds(), e.Shake.Duration(), 1e-9)
}

func TestInvulnerableBulletStillConsumed(t *testing.T) {
	e := newTestEngine(t, Options{})
	e.Player.InvulnerableTimer = 1
	e.EnemyBullets = append(e.EnemyBullets, stillBullet(e.Player.Pos, object.OwnerEnemy))

	e.Update(frame, input.Input{})

	assert.Empty(t, e.EnemyBullets)
	assert.Equal(t, e.Player.MaxHealth, e.Player.Health)
	assert.Zero(t, e.Shake.Duration())
}

func TestGameOverSavesHighScoreOnce(t *testing.T) {
	store := &recordingStore{stored: 100}
	e := newTestEngine(t, Options{Scores: store})
	require.Equal(t, 100, e.HighScore)

	e.Score = 500
	e.Player.Health = 1
	e.EnemyBullets = append(e.EnemyBullets, stillBullet(e.Player.Pos, object.OwnerEnemy))

	e.Update(frame, input.Input{})

	require.Equal(t, ModeGameOver, e.Mode)
	assert.False(t, e.Player.IsAlive())
	assert.Equal(t, 500, e.HighScore)
	assert.True(t, e.NewHighScore)
	assert.Equal(t, []int{500}, store.saves)

	for i := 0; i < 10; i++ {
		e.Update(frame, input.Input{})
	}
	assert.Equal(t, []int{500}, store.saves)
}

func TestGameOverKeepsHigherStoredScore(t *testing.T) {
	store := &recordingStore{stored: 1000}
	e := newTestEngine(t, Options{Scores: store})

	e.Score = 200
	e.Player.Health = 1
	e.EnemyBullets = append(e.EnemyBullets, stillBullet(e.Player.Pos, object.OwnerEnemy))
	e.Update(frame, input.Input{})

	require.Equal(t, ModeGameOver, e.Mode)
	assert.False(t, e.NewHighScore)
	assert.Empty(t, store.saves)
	assert.Equal(t, 1000, e.HighScore)
}

func TestHighScoreLoadFailureIsSilent(t *testing.T) {
	store := &recordingStore{stored: 70, loadErr: errors.New("disk on fire")}
	e := newTestEngine(t, Options{Scores: store})
	assert.Equal(t, 0, e.HighScore)
}

func TestModeTransitions(t *testing.T) {
	e := NewEngine(Options{Rand: rand.New(rand.NewSource(2))})
	require.Equal(t, ModeMenu, e.Mode)

	e.Update(frame, input.Input{Number: 3})
	assert.Equal(t, object.ShipPhoenix, e.Ship)

	e.Update(frame, input.Input{Number: 9})
	assert.Equal(t, object.ShipPhoenix, e.Ship, "out of range selection is ignored")

	e.Update(frame, input.Input{Fire: true})
	require.Equal(t, ModePlaying, e.Mode)
	assert.Equal(t, object.ShipPhoenix, e.Player.Ship)
	assert.Equal(t, 4, e.Player.Health)

	e.Update(frame, input.Input{Pause: true})
	assert.Equal(t, ModePaused, e.Mode)
	e.Update(frame, input.Input{Pause: true})
	assert.Equal(t, ModePlaying, e.Mode)

	e.Player.Health = 1
	e.EnemyBullets = append(e.EnemyBullets, stillBullet(e.Player.Pos, object.OwnerEnemy))
	e.Update(frame, input.Input{})
	require.Equal(t, ModeGameOver, e.Mode)

	e.Update(frame, input.Input{Restart: true})
	require.Equal(t, ModePlaying, e.Mode)
	assert.Equal(t, 0, e.Score)
	assert.Equal(t, 1, e.Wave)
	assert.True(t, e.Player.IsAlive())
	assert.Empty(t, e.EnemyBullets)

	e.Player.Health = 1
	e.EnemyBullets = append(e.EnemyBullets, stillBullet(e.Player.Pos, object.OwnerEnemy))
	e.Update(frame, input.Input{})
	require.Equal(t, ModeGameOver, e.Mode)

	e.Update(frame, input.Input{Pause: true})
	assert.Equal(t, ModeMenu, e.Mode)

	assert.True(t, e.Running())
	e.Update(frame, input.Input{Quit: true})
	assert.False(t, e.Running())
}

func TestEnterStartsFromMenu(t *testing.T) {
	e := NewEngine(Options{})
	e.Update(frame, input.Input{Enter: true})
	assert.Equal(t, ModePlaying, e.Mode)
}

func TestPausedTicksChangeNothing(t *testing.T) {
	e := newTestEngine(t, Options{})

	a := object.NewAsteroid(physics.Vec(400, 200), 2, e.rng)
	e.Asteroids = append(e.Asteroids, a)
	e.Bullets = append(e.Bullets,
		object.NewBullet(physics.Vec(800, 600), -math.Pi/2, object.PlayerBulletSpeed, object.OwnerPlayer))
	e.Score = 42
	e.Shake.AddShake(5, 1)
	e.Update(frame, input.Input{})

	e.Update(frame, input.Input{Pause: true})
	require.Equal(t, ModePaused, e.Mode)

	asteroidPos := a.Pos
	bulletPos := e.Bullets[0].Pos
	playerPos := e.Player.Pos
	lastShot := e.Player.LastShot
	shake := e.Shake.Duration()
	timers := [3]float64{e.asteroidTimer, e.enemyTimer, e.waveTimer}

	for i := 0; i < 120; i++ {
		e.Update(frame, input.Input{Left: true, Fire: true})
	}

	assert.Equal(t, ModePaused, e.Mode)
	assert.Equal(t, asteroidPos, a.Pos)
	assert.Equal(t, bulletPos, e.Bullets[0].Pos)
	assert.Equal(t, playerPos, e.Player.Pos)
	assert.Equal(t, lastShot, e.Player.LastShot)
	assert.Equal(t, shake, e.Shake.Duration())
	assert.Equal(t, timers, [3]float64{e.asteroidTimer, e.enemyTimer, e.waveTimer})
	assert.Equal(t, 42, e.Score)
	assert.Len(t, e.Bullets, 1)
}

func TestFiringPlaysLaser(t *testing.T) {
	sink := &recordingSink{}
	e := newTestEngine(t, Options{Sound: sink, Ship: object.ShipHeavy})
	e.Player.LastShot = 10

	e.Update(frame, input.Input{Fire: true})
	assert.Len(t, e.Bullets, 2)
	assert.Equal(t, []audio.Sound{audio.Laser}, sink.played)

	e.Update(frame, input.Input{Fire: true})
	assert.Len(t, e.Bullets, 2, "still cooling down")
	assert.Len(t, sink.played, 1)
}

func TestEnemiesFireAtCloakedPlayer(t *testing.T) {
	e := newTestEngine(t, Options{})
	e.Player.InvisibleTimer = 1
	en := object.NewEnemy(physics.Vec(e.Player.Pos.X, e.Player.Pos.Y-150), object.EnemyBasic, e.rng)
	en.LastShot = 10
	e.Enemies = append(e.Enemies, en)

	e.Update(frame, input.Input{})
	require.Len(t, e.EnemyBullets, 1, "cloak does not stop enemy fire")

	e.EnemyBullets = append(e.EnemyBullets, stillBullet(e.Player.Pos, object.OwnerEnemy))
	e.Update(frame, input.Input{})

	assert.Len(t, e.EnemyBullets, 1, "the bullet on the ship is consumed")
	assert.Equal(t, e.Player.MaxHealth, e.Player.Health)
	assert.Equal(t, ModePlaying, e.Mode)
}

func TestSameSeedSameGame(t *testing.T) {
	run := func() *Engine {
		e := newTestEngine(t, Options{Rand: rand.New(rand.NewSource(5))})
		for i := 0; i < 5*TargetFPS; i++ {
			e.Update(frame, input.Input{})
		}
		return e
	}
	a, b := run(), run()

	require.NotEmpty(t, a.Asteroids)
	require.Len(t, b.Asteroids, len(a.Asteroids))
	for i := range a.Asteroids {
		assert.Equal(t, a.Asteroids[i].Pos, b.Asteroids[i].Pos)
		assert.Equal(t, a.Asteroids[i].Vel, b.Asteroids[i].Vel)
		assert.Equal(t, a.Asteroids[i].Size, b.Asteroids[i].Size)
	}
	require.Len(t, b.Enemies, len(a.Enemies))
	for i := range a.Enemies {
		assert.Equal(t, a.Enemies[i].Pos, b.Enemies[i].Pos)
		assert.Equal(t, a.Enemies[i].Kind, b.Enemies[i].Kind)
	}
	for i := range a.Stars {
		assert.Equal(t, a.Stars[i].Pos, b.Stars[i].Pos)
	}
}

func TestWaveProgression(t *testing.T) {
	e := newTestEngine(t, Options{})

	e.updateWave(NextWaveDelay)
	assert.Equal(t, 2, e.Wave)
	assert.InDelta(t, 1.9, e.AsteroidSpawnRate, 1e-9)
	assert.InDelta(t, 2.9, e.EnemySpawnRate, 1e-9)

	e.updateWave(NextWaveDelay / 2)
	assert.Equal(t, 2, e.Wave, "the wave timer has not elapsed")

	for i := 0; i < 100; i++ {
		e.updateWave(NextWaveDelay)
		require.GreaterOrEqual(t, e.AsteroidSpawnRate, MinAsteroidSpawnRate)
		require.GreaterOrEqual(t, e.EnemySpawnRate, MinEnemySpawnRate)
	}
	assert.Equal(t, MinAsteroidSpawnRate, e.AsteroidSpawnRate)
	assert.Equal(t, MinEnemySpawnRate, e.EnemySpawnRate)
}

func TestSpawnTimers(t *testing.T) {
	e := newTestEngine(t, Options{})

	e.updateSpawns(InitialAsteroidSpawnRate - 0.01)
	assert.Empty(t, e.Asteroids)

	e.updateSpawns(InitialEnemySpawnRate)
	require.Len(t, e.Asteroids, 1)
	require.Len(t, e.Enemies, 1)
	assert.Zero(t, e.asteroidTimer)
	assert.Zero(t, e.enemyTimer)

	a := e.Asteroids[0]
	assert.Equal(t, spawnY, a.Pos.Y)
	assert.GreaterOrEqual(t, a.Size, 1)
	assert.LessOrEqual(t, a.Size, 3)

	en := e.Enemies[0]
	assert.GreaterOrEqual(t, en.Pos.X, enemySpawnPad)
	assert.LessOrEqual(t, en.Pos.X, ScreenWidth-enemySpawnPad)
}

func TestWeightedPick(t *testing.T) {
	tests := []struct {
		roll int
		want int
	}{
		{0, 0}, {49, 0}, {50, 1}, {79, 1}, {80, 2}, {99, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, weightedPick(tt.roll, asteroidSizeWeights), "roll %d", tt.roll)
	}
	assert.Equal(t, 0, weightedPick(69, enemyKindWeights))
	assert.Equal(t, 1, weightedPick(70, enemyKindWeights))
}

func TestDeadEntitiesAreSweptEveryTick(t *testing.T) {
	e := newTestEngine(t, Options{Rand: rand.New(rand.NewSource(7))})
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 3000 && e.Mode == ModePlaying; i++ {
		in := input.Input{
			Left:  rng.Intn(2) == 0,
			Right: rng.Intn(2) == 0,
			Up:    rng.Intn(3) == 0,
			Fire:  rng.Intn(2) == 0,
		}
		e.Update(frame, in)
		assertAllAlive(t, e)
	}
}

func TestDrawEachMode(t *testing.T) {
	e := newTestEngine(t, Options{})
	c := draw.NewScaledCanvas(120, 40, ScreenWidth, ScreenHeight)

	screenText := func() string {
		var sb strings.Builder
		c.Cells(func(col, row int, cell draw.Cell) {
			sb.WriteRune(cell.Ch)
		})
		return sb.String()
	}

	e.Score = 1234
	e.Draw(c)
	assert.Contains(t, screenText(), "Score: 1234")

	e.Update(frame, input.Input{Pause: true})
	e.Draw(c)
	assert.Contains(t, screenText(), "P A U S E D")

	e.Update(frame, input.Input{Pause: true})
	e.Player.Health = 1
	e.EnemyBullets = append(e.EnemyBullets, stillBullet(e.Player.Pos, object.OwnerEnemy))
	e.Update(frame, input.Input{})
	e.Draw(c)
	assert.Contains(t, screenText(), "G A M E   O V E R")
	assert.NotContains(t, screenText(), "Press R")

	for i := 0; i < 3*TargetFPS; i++ {
		e.Update(frame, input.Input{})
	}
	e.Draw(c)
	assert.Contains(t, screenText(), "Press R to play again")

	e.Update(frame, input.Input{Pause: true})
	e.Draw(c)
	assert.Contains(t, screenText(), "S T E L L A R C L A S H")
}

type fakeDisplay struct {
	presents int
	err      error
}

func (d *fakeDisplay) Size() (int, int, error) { return 80, 24, nil }

func (d *fakeDisplay) Present(*draw.Canvas) error {
	d.presents++
	return d.err
}

func TestRunStopsOnQuit(t *testing.T) {
	e := NewEngine(Options{})
	stream := input.NewStream()
	stream.Push(input.KeyQuit)
	d := &fakeDisplay{}

	require.NoError(t, Run(context.Background(), e, stream, d))
	assert.Equal(t, 1, d.presents)
	assert.False(t, e.Running())
}

func TestRunReturnsDisplayError(t *testing.T) {
	boom := errors.New("broken pipe")
	d := &fakeDisplay{err: boom}

	err := Run(context.Background(), NewEngine(Options{}), input.NewStream(), d)
	assert.ErrorIs(t, err, boom)
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := &fakeDisplay{}

	require.NoError(t, Run(ctx, NewEngine(Options{}), input.NewStream(), d))
	assert.Equal(t, 1, d.presents)
}
