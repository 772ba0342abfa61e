package object

import (
	"math"

	"github.com/tomz197/stellarclash/internal/draw"
	"github.com/tomz197/stellarclash/internal/effect"
	"github.com/tomz197/stellarclash/internal/physics"
)

// PowerUpType is the effect granted by a pickup.
type PowerUpType int

const (
	PowerUpTripleShot PowerUpType = iota
	PowerUpShield
	PowerUpNeutronBomb
)

// PowerUpTypes lists every pickup type.
var PowerUpTypes = []PowerUpType{PowerUpTripleShot, PowerUpShield, PowerUpNeutronBomb}

func (t PowerUpType) String() string {
	switch t {
	case PowerUpTripleShot:
		return "triple_shot"
	case PowerUpShield:
		return "shield"
	case PowerUpNeutronBomb:
		return "neutron_bomb"
	}
	return "unknown"
}

func (t PowerUpType) color() draw.Color {
	switch t {
	case PowerUpShield:
		return draw.Cyan
	case PowerUpNeutronBomb:
		return draw.Red
	}
	return draw.Yellow
}

const (
	PowerUpRadius   = 15.0
	PowerUpLifetime = 10.0
	powerUpFall     = 50.0
	powerUpBlinkAt  = 3.0
	sparkleChance   = 0.1
)

// PowerUp is a falling pickup.
type PowerUp struct {
	Entity
	Type     PowerUpType
	Lifetime float64

	sparkles effect.ParticleSystem
}

// NewPowerUp creates a pickup of type t at pos.
func NewPowerUp(pos physics.Vector2, t PowerUpType) *PowerUp {
	return &PowerUp{
		Entity: Entity{
			Pos:       pos,
			Vel:       physics.Vec(0, powerUpFall),
			Radius:    PowerUpRadius,
			Health:    1,
			MaxHealth: 1,
			Alive:     true,
		},
		Type:     t,
		Lifetime: PowerUpLifetime,
	}
}

// Update makes the pickup fall and sparkle, expiring it when its time runs out.
func (p *PowerUp) Update(ctx UpdateContext) bool {
	dt := ctx.DT()

	p.Lifetime -= dt
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))

	if ctx.Rand.Float64() < sparkleChance {
		a := ctx.Rand.Float64() * 2 * math.Pi
		at := p.Pos.Add(physics.FromAngle(a, p.Radius))
		p.sparkles.Emit(at, physics.FromAngle(a, 20), p.Type.color(), 0.5, 1.5, effect.KindStar)
	}
	p.sparkles.Update(dt)

	if p.Lifetime <= 0 || p.IsOffScreen(ctx.Screen, offScreenMargin) {
		p.Alive = false
	}
	return !p.Alive
}

// Consume marks the pickup as taken.
func (p *PowerUp) Consume() {
	p.Alive = false
}

// Release returns the sparkle particles to the pool.
func (p *PowerUp) Release() {
	p.sparkles.Clear()
}

// Draw renders the pickup; it blinks during its last seconds.
func (p *PowerUp) Draw(ctx DrawContext) {
	p.sparkles.Draw(ctx.Surface, ctx.Offset)

	if p.Lifetime < powerUpBlinkAt && !ShouldRenderBlink(p.Lifetime, 8) {
		return
	}

	c := ctx.Point(p.Pos)
	color := p.Type.color()
	ctx.Surface.DrawCircle(c, p.Radius, false, color)

	switch p.Type {
	case PowerUpTripleShot:
		for _, dx := range []float64{-6, 0, 6} {
			ctx.Surface.DrawLine(draw.Point{X: c.X + dx, Y: c.Y - 6}, draw.Point{X: c.X + dx*0.5, Y: c.Y + 6}, color)
		}
	case PowerUpShield:
		ctx.Surface.DrawCircle(c, p.Radius*0.5, false, color)
	case PowerUpNeutronBomb:
		pulse := 0.5 + 0.5*math.Sin(ctx.Time*8)
		ctx.Surface.DrawCircle(c, p.Radius*0.5, true, draw.Fade(color, 0.5+0.5*pulse))
	}
}

var _ Object = (*PowerUp)(nil)
