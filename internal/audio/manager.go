package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// SampleRate is the synthesis rate for every cue.
const SampleRate = beep.SampleRate(22050)

// DefaultVolume is the effects volume used when none is configured.
const DefaultVolume = 0.7

// SoundManager synthesises cues and mixes them into the speaker. It is safe
// for concurrent use. Until Initialize succeeds every Play is a no-op.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	buffers     map[Sound]*beep.Buffer
	initialized bool
}

// NewSoundManager renders every cue once so playback only copies samples.
func NewSoundManager(volume float64) *SoundManager {
	sm := &SoundManager{
		mixer:   &beep.Mixer{},
		volume:  volume,
		buffers: make(map[Sound]*beep.Buffer, len(cues)),
	}
	format := beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}
	var seed int64 = 1
	for name, c := range cues {
		buf := beep.NewBuffer(format)
		buf.Append(newCueGenerator(SampleRate, c, seed))
		sm.buffers[name] = buf
		seed++
	}
	return sm
}

// Initialize opens the audio device and starts the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(SampleRate, SampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Play queues a cue. Unknown cues and an uninitialised device are ignored.
func (sm *SoundManager) Play(s Sound) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	buf, ok := sm.buffers[s]
	if !ok {
		return
	}

	streamer := buf.Streamer(0, buf.Len())
	speaker.Lock()
	sm.mixer.Add(newVolume(streamer, sm.volume*cues[s].volume))
	speaker.Unlock()
}

// Length returns the number of frames of a rendered cue.
func (sm *SoundManager) Length(s Sound) int {
	buf, ok := sm.buffers[s]
	if !ok {
		return 0
	}
	return buf.Len()
}

// Close silences everything still playing.
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// newVolume wraps s with a linear gain expressed on beep's log2 scale.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

var _ Sink = (*SoundManager)(nil)
