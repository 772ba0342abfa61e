package effect

import (
	"github.com/tomz197/stellarclash/internal/draw"
	"github.com/tomz197/stellarclash/internal/physics"
)

const (
	explosionLifetime = 1.5
	shockwaveSpeed    = 200.0 // ring growth, units per second
	shockwavePerSize  = 50.0  // max ring radius per unit of size
)

// Explosion is a particle burst with an expanding shockwave ring.
type Explosion struct {
	Pos  physics.Vector2
	Size float64
	Big  bool

	lifetime  float64
	ring      float64
	maxRing   float64
	particles ParticleSystem
}

// NewExplosion creates an explosion and emits its particles.
func NewExplosion(pos physics.Vector2, size float64, big bool) *Explosion {
	e := &Explosion{
		Pos:      pos,
		Size:     size,
		Big:      big,
		lifetime: explosionLifetime,
		maxRing:  shockwavePerSize * size,
	}
	e.particles.Explode(pos, size, big)
	return e
}

// Update advances the explosion and reports whether it has finished.
func (e *Explosion) Update(dt float64) bool {
	e.lifetime -= dt
	e.ring = min(e.ring+shockwaveSpeed*dt, e.maxRing)
	e.particles.Update(dt)
	return e.Finished()
}

// Finished reports whether the explosion has expired and its particles are gone.
func (e *Explosion) Finished() bool {
	return e.lifetime <= 0 && e.particles.Len() == 0
}

// Particles returns the number of live particles.
func (e *Explosion) Particles() int {
	return e.particles.Len()
}

// Release returns the explosion's particles to the pool.
func (e *Explosion) Release() {
	e.particles.Clear()
}

// Draw renders the ring and the particles.
func (e *Explosion) Draw(s draw.Surface, offset physics.Vector2) {
	if e.lifetime > 0 && e.ring > 0 && e.ring < e.maxRing {
		alpha := e.lifetime / explosionLifetime
		center := e.Pos.Add(offset)
		color := draw.Orange
		if e.Big {
			color = draw.Cyan
		}
		s.DrawCircle(draw.Point{X: center.X, Y: center.Y}, e.ring, false, draw.Fade(color, alpha))
	}
	e.particles.Draw(s, offset)
}
