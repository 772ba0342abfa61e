// Package audio plays the game's sound cues. Cues are synthesised at runtime;
// there are no sound assets.
package audio

// Sound names a cue.
type Sound string

const (
	Laser     Sound = "laser"
	Explosion Sound = "explosion"
	PowerUp   Sound = "powerup"
	Hit       Sound = "hit"
)

// Sink plays cues by name. Implementations must never block the caller and
// must swallow playback failures.
type Sink interface {
	Play(s Sound)
}

// Nop is a Sink that plays nothing.
type Nop struct{}

// Play does nothing.
func (Nop) Play(Sound) {}
