package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/stellarclash/internal/draw"
	"github.com/tomz197/stellarclash/internal/physics"
)

const (
	asteroidVertices    = 8
	fragmentMinSpeed    = 100.0
	fragmentMaxSpeed    = 200.0
	asteroidPointsPerSz = 10
)

// AsteroidRadius returns the collision radius of an asteroid of the given size.
func AsteroidRadius(size int) float64 {
	return float64(size)*8 + 10
}

// Asteroid is a drifting rock. Size is its tier (1-3) and also its health.
type Asteroid struct {
	Entity
	Size          int
	Angle         float64 // degrees, cosmetic
	RotationSpeed float64 // degrees per second

	vertices [asteroidVertices]float64 // radius multipliers for an irregular outline
}

// NewAsteroid creates an asteroid of the given size at pos with a random
// downward drift drawn from rng.
func NewAsteroid(pos physics.Vector2, size int, rng *rand.Rand) *Asteroid {
	a := &Asteroid{
		Entity: Entity{
			Pos:       pos,
			Vel:       physics.Vec(rng.Float64()*200-100, 50+rng.Float64()*100),
			Radius:    AsteroidRadius(size),
			Health:    size,
			MaxHealth: size,
			Alive:     true,
		},
		Size:          size,
		RotationSpeed: rng.Float64()*360 - 180,
	}
	for i := range a.vertices {
		a.vertices[i] = 0.7 + rng.Float64()*0.6
	}
	return a
}

// Score is the points awarded for destroying this asteroid.
func (a *Asteroid) Score() int {
	return a.Size * asteroidPointsPerSz
}

// Update drifts and spins the asteroid. It wraps horizontally and is culled
// once it leaves the field vertically.
func (a *Asteroid) Update(ctx UpdateContext) bool {
	dt := ctx.DT()

	a.Pos = a.Pos.Add(a.Vel.Scale(dt))
	a.Angle = math.Mod(a.Angle+a.RotationSpeed*dt, 360)

	if a.Pos.X < -a.Radius {
		a.Pos.X = ctx.Screen.Width + a.Radius
	} else if a.Pos.X > ctx.Screen.Width+a.Radius {
		a.Pos.X = -a.Radius
	}

	if a.IsOffScreen(ctx.Screen, offScreenMargin) {
		a.Alive = false
	}
	return !a.Alive
}

// TakeDamage removes health. When the asteroid breaks it returns destroyed
// and, for sizes above 1, exactly two fragments of the next size down.
// Fragment headings and speeds come from rng.
func (a *Asteroid) TakeDamage(damage int, rng *rand.Rand) (children []*Asteroid, destroyed bool) {
	a.Health -= damage
	if a.Health > 0 {
		return nil, false
	}

	a.Alive = false
	if a.Size <= 1 {
		return nil, true
	}

	children = make([]*Asteroid, 2)
	for i := range children {
		child := NewAsteroid(a.Pos, a.Size-1, rng)
		child.Vel = physics.FromAngle(rng.Float64()*2*math.Pi, fragmentMinSpeed+rng.Float64()*(fragmentMaxSpeed-fragmentMinSpeed))
		children[i] = child
	}
	return children, true
}

// Draw renders the rotated irregular outline.
func (a *Asteroid) Draw(ctx DrawContext) {
	c := ctx.Point(a.Pos)
	rot := a.Angle * math.Pi / 180

	pts := ctx.Surface.BorrowPoints(asteroidVertices)
	for i := range pts {
		theta := rot + float64(i)/asteroidVertices*2*math.Pi
		r := a.Radius * a.vertices[i]
		pts[i] = draw.Point{X: c.X + math.Cos(theta)*r, Y: c.Y + math.Sin(theta)*r}
	}

	fill := draw.Brown
	if a.Health < a.MaxHealth {
		fill = draw.Fade(draw.Brown, 0.7)
	}
	ctx.Surface.DrawPolygon(pts, true, fill)
	ctx.Surface.DrawPolygon(pts, false, draw.Gray)
}

var _ Object = (*Asteroid)(nil)
