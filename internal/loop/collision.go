package loop

import (
	"time"

	"github.com/tomz197/stellarclash/internal/audio"
	"github.com/tomz197/stellarclash/internal/effect"
	"github.com/tomz197/stellarclash/internal/input"
	"github.com/tomz197/stellarclash/internal/object"
	"github.com/tomz197/stellarclash/internal/physics"
)

// tick runs one Playing step. The order of the passes is fixed: scores,
// drops and side effects depend on it.
func (e *Engine) tick(dt time.Duration, in input.Input) {
	seconds := dt.Seconds()
	ctx := e.updateContext(dt, in)

	if in.Fire {
		e.playerShoot()
	}

	// 1. Player
	e.Player.Update(ctx)

	// 2. Projectiles
	e.Bullets = updateObjects(e.Bullets, ctx)
	e.EnemyBullets = updateObjects(e.EnemyBullets, ctx)
	e.indexBullets()

	// 3-4. Targets against player bullets
	e.resolveAsteroids(ctx)
	e.resolveEnemies(ctx)
	e.Bullets = object.Sweep(e.Bullets)

	// 5. Pickups
	e.resolvePowerUps(ctx)

	// 6. Player against hazards
	e.resolvePlayerHits()

	// 7-8. Effects and decoration
	e.updateExplosions(seconds)
	e.Shake.Update(seconds)
	e.updateStars(seconds)

	// 9-10. Spawning and difficulty
	e.updateSpawns(seconds)
	e.updateWave(seconds)
}

// updateObjects advances every object and drops the ones that asked to be removed.
func updateObjects[T object.Object](s []T, ctx object.UpdateContext) []T {
	for _, obj := range s {
		obj.Update(ctx)
	}
	return object.Sweep(s)
}

func (e *Engine) playerShoot() {
	bullets := e.Player.Shoot()
	if len(bullets) == 0 {
		return
	}
	e.Bullets = append(e.Bullets, bullets...)
	e.sound.Play(audio.Laser)
}

// indexBullets rebuilds the broad phase over the player's bullets.
func (e *Engine) indexBullets() {
	e.grid.Clear()
	for i, b := range e.Bullets {
		e.grid.Insert(b.Pos, i)
	}
}

// firstBulletHit returns the live player bullet overlapping c that comes
// first in fire order, or nil.
func (e *Engine) firstBulletHit(c object.Collider) *object.Bullet {
	first := -1
	e.grid.QueryAround(c.Position(), func(i int) bool {
		b := e.Bullets[i]
		if (first < 0 || i < first) && b.IsAlive() && object.CheckCollision(c, b) {
			first = i
		}
		return false
	})
	if first < 0 {
		return nil
	}
	return e.Bullets[first]
}

// resolveAsteroids moves every asteroid and applies at most one bullet hit
// to each. Fragments join the field only after the whole pass.
func (e *Engine) resolveAsteroids(ctx object.UpdateContext) {
	e.fragments = e.fragments[:0]

	for _, a := range e.Asteroids {
		if a.Update(ctx) {
			continue
		}
		b := e.firstBulletHit(a)
		if b == nil {
			continue
		}
		b.MarkDestroyed()

		children, destroyed := a.TakeDamage(1, e.rng)
		if !destroyed {
			continue
		}
		e.Score += a.Score()
		e.sound.Play(audio.Explosion)
		e.addExplosion(a.Pos, float64(a.Size)*asteroidExplosionScale, false)
		e.Shake.AddShake(float64(a.Size)*asteroidShakePerSize, asteroidShakeDuration)
		e.rollDrop(a.Pos, AsteroidDropChance)
		e.fragments = append(e.fragments, children...)
	}

	e.Asteroids = object.Sweep(e.Asteroids)
	e.Asteroids = append(e.Asteroids, e.fragments...)
	clear(e.fragments)
}

// resolveEnemies moves every enemy, lets it fire, and applies at most one
// bullet hit to each.
func (e *Engine) resolveEnemies(ctx object.UpdateContext) {
	for _, en := range e.Enemies {
		if en.Update(ctx) {
			continue
		}
		e.EnemyBullets = append(e.EnemyBullets, en.Shoot(ctx.Target)...)

		b := e.firstBulletHit(en)
		if b == nil {
			continue
		}
		b.MarkDestroyed()

		if !en.TakeDamage(1) {
			continue
		}
		e.Score += en.Score()
		e.sound.Play(audio.Explosion)
		e.addExplosion(en.Pos, 1, false)
		e.Shake.AddShake(enemyShake, enemyShakeDuration)
		e.rollDrop(en.Pos, EnemyDropChance)
	}

	e.Enemies = object.Sweep(e.Enemies)
}

// resolvePowerUps moves the pickups and applies the ones the player touches.
func (e *Engine) resolvePowerUps(ctx object.UpdateContext) {
	for _, p := range e.PowerUps {
		if p.Update(ctx) {
			continue
		}
		if !object.CheckCollision(p, e.Player) {
			continue
		}
		p.Consume()
		if e.Player.CollectPowerUp(p.Type) {
			e.detonateNeutronBomb()
		}
		e.sound.Play(audio.PowerUp)
		e.logger.Debug("power-up collected", "type", p.Type)
	}

	e.PowerUps = object.Sweep(e.PowerUps)
}

// detonateNeutronBomb destroys every asteroid and enemy for their full score
// and clears enemy fire.
func (e *Engine) detonateNeutronBomb() {
	for _, a := range e.Asteroids {
		if !a.IsAlive() {
			continue
		}
		e.Score += a.Score()
		e.addExplosion(a.Pos, float64(a.Size)*asteroidExplosionScale, false)
		a.MarkDestroyed()
	}
	for _, en := range e.Enemies {
		if !en.IsAlive() {
			continue
		}
		e.Score += en.Score()
		e.addExplosion(en.Pos, 1, false)
		en.MarkDestroyed()
	}
	for _, b := range e.EnemyBullets {
		b.MarkDestroyed()
	}

	e.Asteroids = object.Sweep(e.Asteroids)
	e.Enemies = object.Sweep(e.Enemies)
	e.EnemyBullets = object.Sweep(e.EnemyBullets)

	e.addExplosion(e.Screen.Center(), bombExplosionSize, true)
	e.Shake.AddShake(bombShake, bombShakeDuration)
}

// resolvePlayerHits tests the player against each hazard category. Only the
// first overlap per category counts; an overlapping enemy bullet is consumed
// even when the hit is absorbed.
func (e *Engine) resolvePlayerHits() {
	p := e.Player

	for _, a := range e.Asteroids {
		if object.CheckCollision(p, a) {
			e.damagePlayer(collisionShake, collisionShakeDuration)
			break
		}
	}

	for _, en := range e.Enemies {
		if object.CheckCollision(p, en) {
			e.damagePlayer(collisionShake, collisionShakeDuration)
			break
		}
	}

	for _, b := range e.EnemyBullets {
		if object.CheckCollision(p, b) {
			b.MarkDestroyed()
			e.damagePlayer(bulletHitShake, bulletHitShakeDuration)
			break
		}
	}
	e.EnemyBullets = object.Sweep(e.EnemyBullets)

	if p.Health <= 0 {
		e.gameOver()
	}
}

func (e *Engine) damagePlayer(intensity, duration float64) {
	if e.Player.TakeDamage(1) {
		e.sound.Play(audio.Hit)
		e.Shake.AddShake(intensity, duration)
	}
}

func (e *Engine) rollDrop(pos physics.Vector2, chance float64) {
	if e.rng.Float64() >= chance {
		return
	}
	t := object.PowerUpTypes[e.rng.Intn(len(object.PowerUpTypes))]
	e.PowerUps = append(e.PowerUps, object.NewPowerUp(pos, t))
}

func (e *Engine) addExplosion(pos physics.Vector2, size float64, big bool) {
	e.Explosions = append(e.Explosions, effect.NewExplosion(pos, size, big))
}

// updateExplosions advances the effects and prunes the finished ones.
func (e *Engine) updateExplosions(dt float64) {
	kept := e.Explosions[:0]
	for _, ex := range e.Explosions {
		if ex.Update(dt) {
			ex.Release()
			continue
		}
		kept = append(kept, ex)
	}
	clear(e.Explosions[len(kept):])
	e.Explosions = kept
}

func (e *Engine) updateStars(dt float64) {
	for _, s := range e.Stars {
		s.Update(dt, e.Screen, e.rng)
	}
}
