package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/stellarclash/internal/draw"
	"github.com/tomz197/stellarclash/internal/physics"
)

// EnemyKind selects an enemy's movement and firing behaviour.
type EnemyKind int

const (
	EnemyBasic EnemyKind = iota
	EnemyAdvanced
)

func (k EnemyKind) String() string {
	if k == EnemyAdvanced {
		return "advanced"
	}
	return "basic"
}

const (
	EnemyRadius      = 10.0
	EnemyScore       = 50
	EnemySightRange  = 300.0
	enemySideSpeed   = 100.0
	enemySwayFreq    = 3.0
	basicCooldown    = 2.0
	advancedCooldown = 1.5
)

// Enemy is a hostile ship that drifts down and fires at the player.
type Enemy struct {
	Entity
	Kind          EnemyKind
	ShootCooldown float64
	LastShot      float64

	moveTimer float64
}

// NewEnemy creates an enemy of the given kind at pos. Advanced enemies take
// their initial drift direction from rng.
func NewEnemy(pos physics.Vector2, kind EnemyKind, rng *rand.Rand) *Enemy {
	e := &Enemy{
		Entity: Entity{
			Pos:       pos,
			Radius:    EnemyRadius,
			Health:    1,
			MaxHealth: 1,
			Alive:     true,
		},
		Kind:          kind,
		ShootCooldown: basicCooldown,
	}
	e.Vel = physics.Vec(0, 100)

	if kind == EnemyAdvanced {
		e.Health, e.MaxHealth = 2, 2
		e.ShootCooldown = advancedCooldown
		drift := 50.0
		if rng.Intn(2) == 0 {
			drift = -drift
		}
		e.Vel = physics.Vec(drift, 80)
	}
	return e
}

// Score is the points awarded for destroying this enemy.
func (e *Enemy) Score() int {
	return EnemyScore
}

// Update moves the enemy. Advanced enemies sway on a sine and bounce off the
// side edges; their drift direction is flipped so they do not stick to the wall.
func (e *Enemy) Update(ctx UpdateContext) bool {
	dt := ctx.DT()
	e.LastShot += dt

	switch e.Kind {
	case EnemyAdvanced:
		e.moveTimer += dt
		e.Pos.Y += e.Vel.Y * dt
		e.Pos.X += (e.Vel.X + math.Sin(e.moveTimer*enemySwayFreq)*enemySideSpeed) * dt
	default:
		e.Pos = e.Pos.Add(e.Vel.Scale(dt))
	}

	if e.Pos.X < e.Radius {
		e.Pos.X = e.Radius
		e.Vel.X = math.Abs(e.Vel.X)
	} else if e.Pos.X > ctx.Screen.Width-e.Radius {
		e.Pos.X = ctx.Screen.Width - e.Radius
		e.Vel.X = -math.Abs(e.Vel.X)
	}

	if e.IsOffScreen(ctx.Screen, offScreenMargin) {
		e.Alive = false
	}
	return !e.Alive
}

// CanShoot reports whether the gun is ready and the target is in range and below.
func (e *Enemy) CanShoot(target physics.Vector2) bool {
	return e.LastShot >= e.ShootCooldown &&
		e.Pos.DistanceTo(target) < EnemySightRange &&
		target.Y > e.Pos.Y
}

// Shoot fires one bullet aimed at target if CanShoot allows it.
func (e *Enemy) Shoot(target physics.Vector2) []*Bullet {
	if !e.CanShoot(target) {
		return nil
	}
	e.LastShot = 0
	angle := target.Sub(e.Pos).Angle()
	return []*Bullet{NewBullet(e.Pos, angle, EnemyBulletSpeed, OwnerEnemy)}
}

// TakeDamage removes health and reports whether the enemy was destroyed.
func (e *Enemy) TakeDamage(damage int) bool {
	e.Health -= damage
	if e.Health <= 0 {
		e.Alive = false
		return true
	}
	return false
}

// Draw renders a downward triangle (basic) or a diamond (advanced).
func (e *Enemy) Draw(ctx DrawContext) {
	c := ctx.Point(e.Pos)
	r := e.Radius

	if e.Kind == EnemyAdvanced {
		pts := ctx.Surface.BorrowPoints(4)
		pts[0] = draw.Point{X: c.X, Y: c.Y - r}
		pts[1] = draw.Point{X: c.X + r*1.3, Y: c.Y}
		pts[2] = draw.Point{X: c.X, Y: c.Y + r}
		pts[3] = draw.Point{X: c.X - r*1.3, Y: c.Y}
		color := draw.Magenta
		if e.Health < e.MaxHealth {
			color = draw.Fade(color, 0.6)
		}
		ctx.Surface.DrawPolygon(pts, true, color)
		return
	}

	pts := ctx.Surface.BorrowPoints(3)
	pts[0] = draw.Point{X: c.X - r, Y: c.Y - r}
	pts[1] = draw.Point{X: c.X + r, Y: c.Y - r}
	pts[2] = draw.Point{X: c.X, Y: c.Y + r}
	ctx.Surface.DrawPolygon(pts, true, draw.Red)
}

var _ Object = (*Enemy)(nil)
