package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/stellarclash/internal/draw"
	"github.com/tomz197/stellarclash/internal/effect"
	"github.com/tomz197/stellarclash/internal/physics"
)

const (
	PlayerRadius         = 12.0
	InvulnerableDuration = 2.0
	ShieldMaxHits        = 1
	TripleShotDuration   = 10.0
	StealthDuration      = 2.0
	RegenInterval        = 5.0

	tripleShotSpread = 0.3
	heavyGunOffset   = 8.0
	muzzleOffset     = 15.0
	cloakAlpha       = 0.1
	enginePerTick    = 3
)

// Player is the ship the user flies.
type Player struct {
	Entity
	Ship  ShipType
	Stats ShipStats

	LastShot          float64
	TripleShotTimer   float64
	ShieldActive      bool
	ShieldHits        int
	InvulnerableTimer float64
	InvisibleTimer    float64
	RegenTimer        float64

	moving  bool
	exhaust effect.ParticleSystem
}

// NewPlayer creates a player of the given ship type at pos.
func NewPlayer(pos physics.Vector2, ship ShipType) *Player {
	stats := ship.Stats()
	return &Player{
		Entity: Entity{
			Pos:       pos,
			Radius:    PlayerRadius,
			Health:    stats.MaxHealth,
			MaxHealth: stats.MaxHealth,
			Alive:     true,
		},
		Ship:  ship,
		Stats: stats,
	}
}

// IsInvulnerable reports whether damage is currently ignored.
func (p *Player) IsInvulnerable() bool {
	return p.InvulnerableTimer > 0 || p.InvisibleTimer > 0
}

// IsInvisible reports whether a Stealth ship is cloaked.
func (p *Player) IsInvisible() bool {
	return p.InvisibleTimer > 0
}

// Update moves the ship from the held directions and advances its timers.
func (p *Player) Update(ctx UpdateContext) bool {
	dt := ctx.DT()

	var dir physics.Vector2
	if ctx.Input.Left {
		dir.X--
	}
	if ctx.Input.Right {
		dir.X++
	}
	if ctx.Input.Up {
		dir.Y--
	}
	if ctx.Input.Down {
		dir.Y++
	}
	p.Vel = dir.Normalize().Scale(p.Stats.Speed)
	p.moving = p.Vel != physics.Vector2{}

	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	p.Pos.X = physics.Clamp(p.Pos.X, p.Radius, ctx.Screen.Width-p.Radius)
	p.Pos.Y = physics.Clamp(p.Pos.Y, p.Radius, ctx.Screen.Height-p.Radius)

	p.LastShot += dt
	p.TripleShotTimer = max(p.TripleShotTimer-dt, 0)
	p.InvulnerableTimer = max(p.InvulnerableTimer-dt, 0)
	p.InvisibleTimer = max(p.InvisibleTimer-dt, 0)

	if p.Stats.Ability == AbilityRegen {
		if p.Health < p.MaxHealth {
			p.RegenTimer += dt
			if p.RegenTimer >= RegenInterval {
				p.Health++
				p.RegenTimer = 0
			}
		} else {
			p.RegenTimer = 0
		}
	}

	if p.moving {
		p.emitExhaust(ctx.Rand)
	}
	p.exhaust.Update(dt)

	return !p.Alive
}

func (p *Player) emitExhaust(rng *rand.Rand) {
	for i := 0; i < enginePerTick; i++ {
		pos := physics.Vec(p.Pos.X+(rng.Float64()*16-8), p.Pos.Y+muzzleOffset)
		vel := physics.Vec(rng.Float64()*160-80, 80+rng.Float64()*70)
		if rng.Float64() < 0.7 {
			p.exhaust.Emit(pos, vel, p.Stats.EngineColor, 0.6, 2+rng.Float64()*2, effect.KindNormal)
		} else {
			p.exhaust.Emit(pos, vel, draw.Cyan, 0.4, 1+rng.Float64(), effect.KindSpark)
		}
	}
}

// Shoot fires if the cooldown has elapsed. Triple shot overrides the
// ship's own pattern. Returns nil when the gun is still cooling down.
func (p *Player) Shoot() []*Bullet {
	if p.LastShot < p.Stats.ShotCooldown {
		return nil
	}
	p.LastShot = 0

	muzzle := physics.Vec(p.Pos.X, p.Pos.Y-muzzleOffset)
	up := -math.Pi / 2

	switch {
	case p.TripleShotTimer > 0:
		return []*Bullet{
			NewBullet(muzzle, up-tripleShotSpread, PlayerBulletSpeed, OwnerPlayer),
			NewBullet(muzzle, up, PlayerBulletSpeed, OwnerPlayer),
			NewBullet(muzzle, up+tripleShotSpread, PlayerBulletSpeed, OwnerPlayer),
		}
	case p.Stats.Ability == AbilityDoubleShot:
		return []*Bullet{
			NewBullet(muzzle.Add(physics.Vec(-heavyGunOffset, 0)), up, PlayerBulletSpeed, OwnerPlayer),
			NewBullet(muzzle.Add(physics.Vec(heavyGunOffset, 0)), up, PlayerBulletSpeed, OwnerPlayer),
		}
	default:
		return []*Bullet{NewBullet(muzzle, up, PlayerBulletSpeed, OwnerPlayer)}
	}
}

// TakeDamage applies damage unless invulnerable or shielded. A shield absorbs
// the hit and wears down instead. Returns true only if health was lost.
func (p *Player) TakeDamage(damage int) bool {
	if p.IsInvulnerable() {
		return false
	}
	if p.ShieldActive {
		p.ShieldHits++
		if p.ShieldHits >= ShieldMaxHits {
			p.ShieldActive = false
		}
		return false
	}

	p.Health -= damage
	p.InvulnerableTimer = InvulnerableDuration
	if p.Stats.Ability == AbilityStealth {
		p.InvisibleTimer = StealthDuration
	}
	if p.Health <= 0 {
		p.Health = 0
		p.Alive = false
	}
	return true
}

// CollectPowerUp applies a pickup. It returns true for the neutron bomb,
// which the caller resolves since it affects the whole field.
func (p *Player) CollectPowerUp(t PowerUpType) bool {
	switch t {
	case PowerUpTripleShot:
		p.TripleShotTimer = TripleShotDuration
	case PowerUpShield:
		p.ShieldActive = true
		p.ShieldHits = 0
	case PowerUpNeutronBomb:
		return true
	}
	return false
}

// Release returns the exhaust particles to the pool.
func (p *Player) Release() {
	p.exhaust.Clear()
}

// Draw renders the ship, its exhaust and the shield bubble.
func (p *Player) Draw(ctx DrawContext) {
	p.exhaust.Draw(ctx.Surface, ctx.Offset)

	if !p.Alive {
		return
	}

	hull := p.Stats.Hull
	switch {
	case p.IsInvisible():
		hull = draw.Fade(hull, cloakAlpha)
	case !ShouldRenderBlink(p.InvulnerableTimer, 10):
		return
	}

	c := ctx.Point(p.Pos)
	r := p.Radius
	pts := ctx.Surface.BorrowPoints(4)
	pts[0] = draw.Point{X: c.X, Y: c.Y - r*1.25}
	pts[1] = draw.Point{X: c.X + r, Y: c.Y + r}
	pts[2] = draw.Point{X: c.X, Y: c.Y + r*0.5}
	pts[3] = draw.Point{X: c.X - r, Y: c.Y + r}
	ctx.Surface.DrawPolygon(pts, true, hull)

	if p.ShieldActive {
		pulse := 0.6 + 0.4*math.Sin(ctx.Time*6)
		ctx.Surface.DrawCircle(c, r+8, false, draw.Fade(draw.Cyan, pulse))
	}
}

var _ Object = (*Player)(nil)
