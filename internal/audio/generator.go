package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
)

// cue describes one synthesised sound.
type cue struct {
	duration time.Duration
	volume   float64 // linear gain relative to the effects volume
	sample   func(t, d float64, noise func() float64) float64
}

// cues holds the recipe for every Sound.
var cues = map[Sound]cue{
	// Falling sine sweep 800 -> 400 Hz.
	Laser: {
		duration: 100 * time.Millisecond,
		volume:   0.3,
		sample: func(t, d float64, _ func() float64) float64 {
			freq := 800 - 400*t/d
			return math.Sin(2*math.Pi*freq*t) * (1 - t/d)
		},
	},
	// White noise with a quadratic decay.
	Explosion: {
		duration: 500 * time.Millisecond,
		volume:   0.4,
		sample: func(t, d float64, noise func() float64) float64 {
			env := 1 - t/d
			return noise() * env * env
		},
	},
	// Rising sweep 400 -> 1200 Hz with a linear fade.
	PowerUp: {
		duration: 300 * time.Millisecond,
		volume:   0.4,
		sample: func(t, d float64, _ func() float64) float64 {
			freq := 400 + 800*t/d
			return math.Sin(2*math.Pi*freq*t) * (1 - t/d)
		},
	},
	// Low thud plus noise, cubic decay.
	Hit: {
		duration: 200 * time.Millisecond,
		volume:   0.5,
		sample: func(t, d float64, noise func() float64) float64 {
			env := math.Pow(1-t/d, 3)
			return (0.6*math.Sin(2*math.Pi*200*t) + 0.4*noise()) * env
		},
	},
}

// cueGenerator streams a cue sample by sample. It ends after the cue's duration.
type cueGenerator struct {
	sr    beep.SampleRate
	cue   cue
	pos   int
	total int
	rng   *rand.Rand
}

func newCueGenerator(sr beep.SampleRate, c cue, seed int64) *cueGenerator {
	return &cueGenerator{
		sr:    sr,
		cue:   c,
		total: sr.N(c.duration),
		rng:   rand.New(rand.NewSource(seed)),
	}
}

func (g *cueGenerator) noise() float64 {
	return g.rng.Float64()*2 - 1
}

func (g *cueGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	d := g.cue.duration.Seconds()
	for i := range samples {
		if g.pos >= g.total {
			return i, true
		}
		t := float64(g.pos) / float64(g.sr)
		v := g.cue.sample(t, d, g.noise)
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *cueGenerator) Err() error {
	return nil
}
