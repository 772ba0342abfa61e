// Package effect holds the cosmetic simulation: particles, explosions and
// screen shake. Nothing here takes part in collision.
package effect

import (
	"math"
	"math/rand"
	"sync"

	"github.com/tomz197/stellarclash/internal/draw"
	"github.com/tomz197/stellarclash/internal/physics"
)

// Kind selects a particle's motion and fade curve.
type Kind int

const (
	KindNormal Kind = iota
	KindSpark
	KindSmoke
	KindStar
)

var gravity = map[Kind]physics.Vector2{
	KindSpark: {X: 0, Y: 200},
	KindSmoke: {X: 0, Y: -50},
}

// particlePool reuses Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived visual mote.
type Particle struct {
	Pos           physics.Vector2
	Vel           physics.Vector2
	Color         draw.Color
	Lifetime      float64
	MaxLifetime   float64
	Size          float64
	Kind          Kind
	Rotation      float64
	RotationSpeed float64
	Scale         float64
	Alpha         float64
}

// NewParticle takes a particle from the pool and initialises it.
func NewParticle(pos, vel physics.Vector2, color draw.Color, lifetime, size float64, kind Kind) *Particle {
	p := particlePool.Get().(*Particle)
	*p = Particle{
		Pos:           pos,
		Vel:           vel,
		Color:         color,
		Lifetime:      lifetime,
		MaxLifetime:   lifetime,
		Size:          size,
		Kind:          kind,
		RotationSpeed: rand.Float64()*720 - 360,
		Scale:         1,
		Alpha:         1,
	}
	return p
}

// Release returns the particle to the pool. The caller must drop its reference.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// Alive reports whether the particle still has lifetime left.
func (p *Particle) Alive() bool {
	return p.Lifetime > 0
}

// Update advances the particle by dt seconds and reports whether it is still alive.
func (p *Particle) Update(dt float64) bool {
	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return false
	}

	p.Vel = p.Vel.Add(gravity[p.Kind].Scale(dt))
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	p.Rotation += p.RotationSpeed * dt

	remaining := p.Lifetime / p.MaxLifetime
	progress := 1 - remaining
	if p.Kind == KindSmoke {
		p.Scale = 1 + 2*progress
		p.Alpha = 0.6 * remaining
	} else {
		p.Scale = 1 - 0.3*progress
		p.Alpha = remaining
	}
	return true
}

// minVisibleAlpha hides particles too faint to read on a terminal.
const minVisibleAlpha = 0.15

// Draw renders the particle shifted by offset.
func (p *Particle) Draw(s draw.Surface, offset physics.Vector2) {
	if p.Alpha < minVisibleAlpha {
		return
	}

	pos := p.Pos.Add(offset)
	color := draw.Fade(p.Color, p.Alpha)
	r := p.Size * p.Scale
	center := draw.Point{X: pos.X, Y: pos.Y}

	switch p.Kind {
	case KindStar:
		a := p.Rotation * math.Pi / 180
		dx, dy := math.Cos(a)*r*1.5, math.Sin(a)*r*1.5
		s.DrawLine(draw.Point{X: pos.X - dx, Y: pos.Y - dy}, draw.Point{X: pos.X + dx, Y: pos.Y + dy}, color)
		s.DrawLine(draw.Point{X: pos.X + dy, Y: pos.Y - dx}, draw.Point{X: pos.X - dy, Y: pos.Y + dx}, color)
	case KindSmoke:
		s.DrawCircle(center, r, false, color)
	default:
		s.DrawCircle(center, r, true, color)
	}
}

// ParticleSystem owns a batch of particles and prunes them as they expire.
type ParticleSystem struct {
	particles []*Particle
}

// Add appends a particle to the system.
func (ps *ParticleSystem) Add(p *Particle) {
	ps.particles = append(ps.particles, p)
}

// Emit creates and adds a particle.
func (ps *ParticleSystem) Emit(pos, vel physics.Vector2, color draw.Color, lifetime, size float64, kind Kind) {
	ps.Add(NewParticle(pos, vel, color, lifetime, size, kind))
}

// Len returns the number of live particles.
func (ps *ParticleSystem) Len() int {
	return len(ps.particles)
}

// Update advances every particle and drops the expired ones.
func (ps *ParticleSystem) Update(dt float64) {
	kept := ps.particles[:0]
	for _, p := range ps.particles {
		if p.Update(dt) {
			kept = append(kept, p)
		} else {
			p.Release()
		}
	}
	clear(ps.particles[len(kept):])
	ps.particles = kept
}

// Draw renders all particles.
func (ps *ParticleSystem) Draw(s draw.Surface, offset physics.Vector2) {
	for _, p := range ps.particles {
		p.Draw(s, offset)
	}
}

// Clear releases every particle.
func (ps *ParticleSystem) Clear() {
	for _, p := range ps.particles {
		p.Release()
	}
	clear(ps.particles)
	ps.particles = ps.particles[:0]
}

// randRange returns a uniform value in [lo, hi).
func randRange(lo, hi float64) float64 {
	return lo + rand.Float64()*(hi-lo)
}

var (
	explosionWarm  = []draw.Color{draw.Red, draw.Orange, draw.NewRGB(255, 90, 0)}
	explosionSpark = []draw.Color{draw.Yellow, draw.NewRGB(255, 255, 160)}
)

// Explode emits the particle burst of an explosion of the given size.
// big adds a cyan shockwave ring of fast sparks, as do sizes above 2.
func (ps *ParticleSystem) Explode(pos physics.Vector2, size float64, big bool) {
	for i := 0; i < int(30*size); i++ {
		vel := physics.FromAngle(rand.Float64()*2*math.Pi, randRange(80, 300)*size)

		switch r := rand.Float64(); {
		case r < 0.4:
			c := explosionWarm[rand.Intn(len(explosionWarm))]
			ps.Emit(pos, vel, c, randRange(0.8, 1.5), randRange(2, 5), KindNormal)
		case rand.Float64() < 0.7:
			c := explosionSpark[rand.Intn(len(explosionSpark))]
			ps.Emit(pos, vel, c, randRange(0.5, 1.0), randRange(1, 3), KindSpark)
		default:
			ps.Emit(pos, vel, draw.White, randRange(1.0, 1.8), randRange(1, 2), KindStar)
		}
	}

	if size > 1 {
		for i := 0; i < int(10*size); i++ {
			vel := physics.FromAngle(rand.Float64()*2*math.Pi, randRange(30, 100)*size)
			ps.Emit(pos, vel, draw.Gray, randRange(1, 2), randRange(3, 6), KindSmoke)
		}
	}

	if big || size > 2 {
		for i := 0; i < 20; i++ {
			a := float64(i) / 20 * 2 * math.Pi
			vel := physics.FromAngle(a, randRange(200, 400))
			ps.Emit(pos, vel, draw.Cyan, 0.3, 2, KindSpark)
		}
	}
}
