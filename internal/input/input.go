// Package input turns raw terminal bytes or pushed key events into a
// per-frame snapshot of held directions and pressed-this-frame actions.
package input

import (
	"bufio"
	"sync"
	"time"
)

// keyHoldDuration is how long a direction is considered "held" after its last
// press. Terminals only deliver key repeats, so this must bridge the repeat gap.
const keyHoldDuration = 120 * time.Millisecond

// Key is a logical key.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyFire
	KeyEnter
	KeyPause
	KeyRestart
	KeyQuit
	Key1
	Key2
	Key3
	Key4
	Key5
)

// Input represents the current frame's input state.
type Input struct {
	// Held state, used for movement.
	Up    bool
	Down  bool
	Left  bool
	Right bool

	// Pressed this frame.
	Fire    bool
	Enter   bool
	Pause   bool
	Restart bool
	Quit    bool
	Number  int // 1-5, or 0 when no digit was pressed
}

// keyState tracks the last time each direction was pressed.
type keyState struct {
	up    time.Time
	down  time.Time
	left  time.Time
	right time.Time
}

// Stream delivers keys via a channel and tracks key state across frames.
type Stream struct {
	ch     chan Key
	state  keyState
	closed bool
	once   sync.Once
	now    func() time.Time
}

func newStream() *Stream {
	return &Stream{
		ch:  make(chan Key, 128),
		now: time.Now,
	}
}

// NewStream creates a stream fed through Push.
func NewStream() *Stream {
	return newStream()
}

// StartStream spawns a goroutine that parses bytes from r into keys.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		defer s.Close()
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}

			// CSI arrow sequences arrive in one write, so the rest is buffered.
			if b == '\x1b' && r.Buffered() >= 2 {
				if seq, err := r.Peek(2); err == nil && seq[0] == '[' {
					if k, ok := arrowKeys[seq[1]]; ok {
						_, _ = r.Discard(2)
						s.Push(k)
						continue
					}
				}
			}

			if k := ParseByte(b); k != KeyNone {
				s.Push(k)
			}
		}
	}()
	return s
}

// Push queues a key. Keys pushed after the buffer fills are dropped.
func (s *Stream) Push(k Key) {
	select {
	case s.ch <- k:
	default:
	}
}

// Close ends the stream; ReadInput reports Quit from then on.
func (s *Stream) Close() {
	s.once.Do(func() { close(s.ch) })
}

var arrowKeys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
}

// ParseByte maps a single input byte to a logical key.
func ParseByte(b byte) Key {
	switch b {
	case 'q', 'Q', 0x03: // ctrl+c
		return KeyQuit
	case 'a', 'A', 'j', 'J':
		return KeyLeft
	case 'd', 'D', 'l', 'L':
		return KeyRight
	case 'w', 'W', 'i', 'I':
		return KeyUp
	case 's', 'S', 'k', 'K':
		return KeyDown
	case ' ':
		return KeyFire
	case '\n', '\r':
		return KeyEnter
	case '\x1b', 'p', 'P':
		return KeyPause
	case 'r', 'R':
		return KeyRestart
	case '1', '2', '3', '4', '5':
		return Key1 + Key(b-'1')
	}
	return KeyNone
}

// ReadInput drains all pending keys (non-blocking) and builds the frame snapshot.
func ReadInput(s *Stream) Input {
	now := s.now()
	var in Input

drain:
	for !s.closed {
		select {
		case k, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			s.apply(&in, k, now)
		default:
			break drain
		}
	}

	if s.closed {
		in.Quit = true
	}

	in.Up = now.Sub(s.state.up) < keyHoldDuration
	in.Down = now.Sub(s.state.down) < keyHoldDuration
	in.Left = now.Sub(s.state.left) < keyHoldDuration
	in.Right = now.Sub(s.state.right) < keyHoldDuration

	return in
}

// Reset forgets held directions, e.g. when switching screens.
func (s *Stream) Reset() {
	s.state = keyState{}
}

func (s *Stream) apply(in *Input, k Key, now time.Time) {
	switch k {
	case KeyUp:
		s.state.up = now
	case KeyDown:
		s.state.down = now
	case KeyLeft:
		s.state.left = now
	case KeyRight:
		s.state.right = now
	case KeyFire:
		in.Fire = true
	case KeyEnter:
		in.Enter = true
	case KeyPause:
		in.Pause = true
	case KeyRestart:
		in.Restart = true
	case KeyQuit:
		in.Quit = true
	case Key1, Key2, Key3, Key4, Key5:
		in.Number = int(k-Key1) + 1
	}
}
