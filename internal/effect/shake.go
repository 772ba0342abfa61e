package effect

import (
	"math/rand"

	"github.com/tomz197/stellarclash/internal/physics"
)

// shakeDecay is the per-update geometric falloff of the intensity.
const shakeDecay = 0.95

// ScreenShake is a decaying random offset applied to the rendered scene.
type ScreenShake struct {
	intensity float64
	duration  float64
	offset    physics.Vector2
}

// AddShake raises the shake. Intensity and duration are max-merged with the
// current values, never lowered.
func (s *ScreenShake) AddShake(intensity, duration float64) {
	s.intensity = max(s.intensity, intensity)
	s.duration = max(s.duration, duration)
}

// Update advances the shake by dt seconds and rolls a new offset.
func (s *ScreenShake) Update(dt float64) {
	if s.duration <= 0 {
		s.offset = physics.Vector2{}
		s.intensity = 0
		return
	}

	s.duration -= dt
	s.offset = physics.Vector2{
		X: (rand.Float64()*2 - 1) * s.intensity,
		Y: (rand.Float64()*2 - 1) * s.intensity,
	}
	s.intensity *= shakeDecay
}

// Offset returns the current render offset.
func (s *ScreenShake) Offset() physics.Vector2 {
	return s.offset
}

// Intensity returns the current intensity.
func (s *ScreenShake) Intensity() float64 {
	return s.intensity
}

// Duration returns the remaining shake time in seconds.
func (s *ScreenShake) Duration() float64 {
	return s.duration
}

// Reset stops any shake immediately.
func (s *ScreenShake) Reset() {
	*s = ScreenShake{}
}
