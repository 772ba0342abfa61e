package audio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCueLengths(t *testing.T) {
	sm := NewSoundManager(DefaultVolume)

	tests := []struct {
		sound Sound
		want  time.Duration
	}{
		{Laser, 100 * time.Millisecond},
		{Explosion, 500 * time.Millisecond},
		{PowerUp, 300 * time.Millisecond},
		{Hit, 200 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(string(tt.sound), func(t *testing.T) {
			assert.Equal(t, SampleRate.N(tt.want), sm.Length(tt.sound))
		})
	}
	assert.Equal(t, 0, sm.Length(Sound("unknown")))
}

func TestCueGeneratorEnds(t *testing.T) {
	g := newCueGenerator(SampleRate, cues[Hit], 1)
	buf := make([][2]float64, 512)

	total := 0
	for {
		n, ok := g.Stream(buf)
		if !ok {
			break
		}
		for i := 0; i < n; i++ {
			assert.LessOrEqual(t, buf[i][0], 1.0)
			assert.GreaterOrEqual(t, buf[i][0], -1.0)
			assert.Equal(t, buf[i][0], buf[i][1])
		}
		total += n
	}
	assert.Equal(t, SampleRate.N(200*time.Millisecond), total)
	assert.NoError(t, g.Err())
}

func TestPlayWithoutDeviceIsNoop(t *testing.T) {
	sm := NewSoundManager(DefaultVolume)
	assert.NotPanics(t, func() {
		sm.Play(Laser)
		sm.Play(Sound("missing"))
		sm.Close()
	})

	var sink Sink = Nop{}
	assert.NotPanics(t, func() { sink.Play(Explosion) })
}
