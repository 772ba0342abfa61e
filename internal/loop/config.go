package loop

import "time"

// Game configuration constants.
// All tunable game parameters are centralized here for easy adjustment.

// Play field and frame clock
const (
	ScreenWidth     = 1024
	ScreenHeight    = 768
	TargetFPS       = 60
	targetFrameTime = time.Second / TargetFPS

	// maxFrameDelta caps the measured step after a stall so a single tick
	// cannot move entities through half the screen.
	maxFrameDelta = 100 * time.Millisecond
)

// Spawning and waves
const (
	InitialAsteroidSpawnRate = 2.0
	InitialEnemySpawnRate    = 3.0
	MinAsteroidSpawnRate     = 0.5
	MinEnemySpawnRate        = 1.0
	SpawnRateStep            = 0.1
	NextWaveDelay            = 3.0

	spawnY        = -50.0
	enemySpawnPad = 50.0
)

// Weighted tables for spawn rolls, in percent.
var (
	asteroidSizeWeights = []int{50, 30, 20} // sizes 1, 2, 3
	enemyKindWeights    = []int{70, 30}     // basic, advanced
)

// Power-up drops
const (
	AsteroidDropChance = 0.15
	EnemyDropChance    = 0.2
)

// Side effects
const (
	asteroidShakePerSize    = 2.0
	asteroidShakeDuration   = 0.2
	asteroidExplosionScale  = 0.5
	enemyShake              = 3.0
	enemyShakeDuration      = 0.15
	bombShake               = 15.0
	bombShakeDuration       = 0.8
	bombExplosionSize       = 3.0
	collisionShake          = 5.0
	collisionShakeDuration  = 0.3
	bulletHitShake          = 3.0
	bulletHitShakeDuration  = 0.2
	playerDeathExplosion    = 2.0
	playerStartOffsetBottom = 100.0
)

// Background and screens
const (
	StarCount            = 200
	gameOverPromptDelay  = 2.0
	menuBlinkFrequency   = 2.0 // Hz
	broadPhaseCellSize   = 48.0
	highScoreSaveTimeout = 2 * time.Second
)
