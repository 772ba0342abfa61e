package loop

import (
	"github.com/tomz197/stellarclash/internal/object"
	"github.com/tomz197/stellarclash/internal/physics"
)

// updateSpawns advances the spawn timers and adds at most one asteroid and
// one enemy per tick.
func (e *Engine) updateSpawns(dt float64) {
	e.asteroidTimer += dt
	if e.asteroidTimer >= e.AsteroidSpawnRate {
		e.asteroidTimer = 0
		e.spawnAsteroid()
	}

	e.enemyTimer += dt
	if e.enemyTimer >= e.EnemySpawnRate {
		e.enemyTimer = 0
		e.spawnEnemy()
	}
}

// updateWave tightens both spawn rates every NextWaveDelay seconds.
func (e *Engine) updateWave(dt float64) {
	e.waveTimer += dt
	if e.waveTimer < NextWaveDelay {
		return
	}
	e.waveTimer = 0
	e.advanceWave()
}

func (e *Engine) advanceWave() {
	e.Wave++
	e.AsteroidSpawnRate = max(MinAsteroidSpawnRate, e.AsteroidSpawnRate-SpawnRateStep)
	e.EnemySpawnRate = max(MinEnemySpawnRate, e.EnemySpawnRate-SpawnRateStep)
	e.logger.Debug("wave", "wave", e.Wave,
		"asteroid_rate", e.AsteroidSpawnRate, "enemy_rate", e.EnemySpawnRate)
}

func (e *Engine) spawnAsteroid() {
	x := e.rng.Float64() * e.Screen.Width
	size := weightedPick(e.rng.Intn(100), asteroidSizeWeights) + 1
	e.Asteroids = append(e.Asteroids, object.NewAsteroid(physics.Vec(x, spawnY), size, e.rng))
}

func (e *Engine) spawnEnemy() {
	x := enemySpawnPad + e.rng.Float64()*(e.Screen.Width-2*enemySpawnPad)
	kind := object.EnemyKind(weightedPick(e.rng.Intn(100), enemyKindWeights))
	e.Enemies = append(e.Enemies, object.NewEnemy(physics.Vec(x, spawnY), kind, e.rng))
}

// weightedPick maps roll in [0, sum(weights)) to the index of its bucket.
func weightedPick(roll int, weights []int) int {
	for i, w := range weights {
		if roll < w {
			return i
		}
		roll -= w
	}
	return len(weights) - 1
}
