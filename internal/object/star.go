package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/stellarclash/internal/draw"
	"github.com/tomz197/stellarclash/internal/physics"
)

// StarKind is the look of a background star.
type StarKind int

const (
	StarNormal StarKind = iota
	StarBright
	StarDistant
)

const (
	starSpeedScale = 30.0
	starWrapY      = -10.0
)

// Star is a non-colliding background decoration scrolling down the screen.
type Star struct {
	Pos   physics.Vector2
	Speed float64
	Kind  StarKind

	twinklePhase float64
	twinkleSpeed float64
}

// NewStar creates a star at a random position on the screen.
func NewStar(screen Screen, rng *rand.Rand) *Star {
	s := &Star{
		Pos:          physics.Vec(rng.Float64()*screen.Width, rng.Float64()*screen.Height),
		Speed:        0.5 + rng.Float64()*3.5,
		twinklePhase: rng.Float64() * 2 * math.Pi,
		twinkleSpeed: 1 + rng.Float64()*3,
	}
	switch r := rng.Float64(); {
	case r < 0.1:
		s.Kind = StarBright
	case r < 0.5:
		s.Kind = StarDistant
	}
	return s
}

// NewStarField creates n stars spread over the screen.
func NewStarField(n int, screen Screen, rng *rand.Rand) []*Star {
	stars := make([]*Star, n)
	for i := range stars {
		stars[i] = NewStar(screen, rng)
	}
	return stars
}

// Update scrolls the star and wraps it back to the top at a new column.
func (s *Star) Update(dt float64, screen Screen, rng *rand.Rand) {
	s.Pos.Y += s.Speed * dt * starSpeedScale
	s.twinklePhase += s.twinkleSpeed * dt
	if s.Pos.Y > screen.Height {
		s.Pos.Y = starWrapY
		s.Pos.X = rng.Float64() * screen.Width
	}
}

// Draw renders the star with its twinkle.
func (s *Star) Draw(ctx DrawContext) {
	twinkle := 0.6 + 0.4*math.Sin(s.twinklePhase)
	p := ctx.Point(s.Pos)

	switch s.Kind {
	case StarBright:
		ctx.Surface.DrawCircle(p, 2, true, draw.Fade(draw.White, twinkle))
	case StarDistant:
		ctx.Surface.SetPixel(p, draw.Fade(draw.DarkGray, twinkle))
	default:
		ctx.Surface.SetPixel(p, draw.Fade(draw.Gray, twinkle))
	}
}
