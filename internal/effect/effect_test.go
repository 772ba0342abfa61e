package effect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/stellarclash/internal/draw"
	"github.com/tomz197/stellarclash/internal/physics"
)

func TestParticleKinds(t *testing.T) {
	spark := NewParticle(physics.Vec(0, 0), physics.Vec(0, 0), draw.Yellow, 1, 2, KindSpark)
	smoke := NewParticle(physics.Vec(0, 0), physics.Vec(0, 0), draw.Gray, 1, 2, KindSmoke)
	normal := NewParticle(physics.Vec(0, 0), physics.Vec(10, 0), draw.Red, 1, 2, KindNormal)

	require.True(t, spark.Update(0.5))
	require.True(t, smoke.Update(0.5))
	require.True(t, normal.Update(0.5))

	assert.InDelta(t, 100, spark.Vel.Y, 1e-9, "sparks fall")
	assert.InDelta(t, -25, smoke.Vel.Y, 1e-9, "smoke rises")
	assert.InDelta(t, 5, normal.Pos.X, 1e-9)

	assert.InDelta(t, 2.0, smoke.Scale, 1e-9)
	assert.InDelta(t, 0.3, smoke.Alpha, 1e-9)
	assert.InDelta(t, 0.85, normal.Scale, 1e-9)
	assert.InDelta(t, 0.5, normal.Alpha, 1e-9)

	assert.False(t, normal.Update(0.5))
	assert.False(t, normal.Alive())
}

func TestParticleSystemPrunesExpired(t *testing.T) {
	var ps ParticleSystem
	ps.Emit(physics.Vec(0, 0), physics.Vec(0, 0), draw.White, 0.1, 1, KindNormal)
	ps.Emit(physics.Vec(0, 0), physics.Vec(0, 0), draw.White, 1.0, 1, KindNormal)

	ps.Update(0.2)
	assert.Equal(t, 1, ps.Len())

	ps.Update(1)
	assert.Equal(t, 0, ps.Len())
}

func TestExplodeParticleCounts(t *testing.T) {
	tests := []struct {
		name string
		size float64
		big  bool
		want int
	}{
		{"small", 0.5, false, 15},
		{"medium", 2, false, 60 + 20},
		{"large adds shockwave", 3, false, 90 + 30 + 20},
		{"big flag adds shockwave", 1, true, 30 + 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ps ParticleSystem
			ps.Explode(physics.Vec(100, 100), tt.size, tt.big)
			assert.Equal(t, tt.want, ps.Len())
			ps.Clear()
			assert.Equal(t, 0, ps.Len())
		})
	}
}

func TestExplosionFinishes(t *testing.T) {
	e := NewExplosion(physics.Vec(50, 50), 1, false)
	assert.False(t, e.Finished())

	e.Update(0.1)
	assert.InDelta(t, 20, e.ring, 1e-9)

	e.Update(0.5)
	assert.InDelta(t, 50, e.ring, 1e-9, "ring is capped at 50*size")

	finished := false
	for i := 0; i < 200 && !finished; i++ {
		finished = e.Update(1.0 / 60)
	}
	assert.True(t, finished)
	assert.Equal(t, 0, e.Particles())
}

func TestScreenShakeMaxMerge(t *testing.T) {
	var s ScreenShake
	s.AddShake(5, 0.3)
	s.AddShake(3, 0.8)

	assert.Equal(t, 5.0, s.Intensity())
	assert.Equal(t, 0.8, s.Duration())
}

func TestScreenShakeDecay(t *testing.T) {
	var s ScreenShake
	s.AddShake(10, 0.1)

	s.Update(0.05)
	off := s.Offset()
	assert.LessOrEqual(t, off.X, 10.0)
	assert.GreaterOrEqual(t, off.X, -10.0)
	assert.InDelta(t, 9.5, s.Intensity(), 1e-9)
	assert.InDelta(t, 0.05, s.Duration(), 1e-9)

	s.Update(0.05)
	s.Update(0.05)
	assert.Equal(t, physics.Vector2{}, s.Offset())
	assert.Equal(t, 0.0, s.Intensity())

	s.AddShake(4, 1)
	s.Reset()
	assert.Equal(t, 0.0, s.Duration())
}
