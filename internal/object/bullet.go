package object

import (
	"github.com/tomz197/stellarclash/internal/draw"
	"github.com/tomz197/stellarclash/internal/effect"
	"github.com/tomz197/stellarclash/internal/physics"
)

// Owner decides which side a bullet can hit. It is fixed at creation.
type Owner int

const (
	OwnerPlayer Owner = iota
	OwnerEnemy
)

const (
	BulletLifetime      = 3.0
	PlayerBulletSpeed   = 500.0
	PlayerBulletRadius  = 4.0
	EnemyBulletSpeed    = 300.0
	EnemyBulletRadius   = 3.0
	bulletTrailInterval = 0.02
	bulletTrailLifetime = 0.3
)

// Bullet is a straight-line projectile.
type Bullet struct {
	Entity
	Owner    Owner
	Lifetime float64

	trailTimer float64
	trail      effect.ParticleSystem
}

// NewBullet creates a bullet at pos travelling along angle (radians) at speed.
func NewBullet(pos physics.Vector2, angle, speed float64, owner Owner) *Bullet {
	radius := PlayerBulletRadius
	if owner == OwnerEnemy {
		radius = EnemyBulletRadius
	}
	return &Bullet{
		Entity: Entity{
			Pos:       pos,
			Vel:       physics.FromAngle(angle, speed),
			Radius:    radius,
			Health:    1,
			MaxHealth: 1,
			Alive:     true,
		},
		Owner:    owner,
		Lifetime: BulletLifetime,
	}
}

func (b *Bullet) color() draw.Color {
	if b.Owner == OwnerEnemy {
		return draw.Red
	}
	return draw.Yellow
}

// Update moves the bullet, emits its trail and culls it when expired or off screen.
func (b *Bullet) Update(ctx UpdateContext) bool {
	dt := ctx.DT()

	b.Lifetime -= dt
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))

	b.trailTimer += dt
	if b.trailTimer >= bulletTrailInterval {
		b.trailTimer = 0
		b.trail.Emit(b.Pos, b.Vel.Scale(-0.1), b.color(), bulletTrailLifetime, 1, effect.KindNormal)
	}
	b.trail.Update(dt)

	if b.Lifetime <= 0 || b.IsOffScreen(ctx.Screen, offScreenMargin) {
		b.Alive = false
	}
	return !b.Alive
}

// Release returns the trail particles to the pool.
func (b *Bullet) Release() {
	b.trail.Clear()
}

// Draw renders the trail and a short streak along the direction of travel.
func (b *Bullet) Draw(ctx DrawContext) {
	b.trail.Draw(ctx.Surface, ctx.Offset)

	tail := b.Pos.Sub(b.Vel.Normalize().Scale(b.Radius * 2))
	ctx.Surface.DrawLine(ctx.Point(tail), ctx.Point(b.Pos), b.color())
	ctx.Surface.DrawCircle(ctx.Point(b.Pos), b.Radius/2, true, draw.White)
}

var _ Object = (*Bullet)(nil)
