package tetris

import (
	"math/rand/v2"
	"time"
)

// Clock provides the time used for drop timing and the pause guard.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the wall clock.
var SystemClock Clock = systemClock{}

// Rand picks catalog indexes. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	// IntN returns a number in [0, n).
	IntN(n int) int
}

// NewRand returns a PCG source. The same seed always yields the same piece
// sequence; a zero seed is replaced by the current time.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano()) //nolint:gosec
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Sound names an audio trigger fired by the game.
type Sound string

const (
	SoundRotate  Sound = "rotate"
	SoundLock    Sound = "lock"
	SoundLevelUp Sound = "levelup"
	SoundLine    Sound = "line"
	SoundDouble  Sound = "double"
	SoundTriple  Sound = "triple"
	SoundTetris  Sound = "tetris"
)

// Audio receives sound triggers and background track changes.
type Audio interface {
	Play(Sound)
	// PlayTrack loads track i and loops it until the next call.
	PlayTrack(i int)
	// Tracks is the number of background tracks available.
	Tracks() int
}

// Animator renders the celebration for a 4+ row clear. It may block; the
// game waits for it before spawning the next piece.
type Animator interface {
	Celebrate(t *Tetris, row int)
}

type nopAudio struct{}

func (nopAudio) Play(Sound)    {}
func (nopAudio) PlayTrack(int) {}
func (nopAudio) Tracks() int   { return 0 }

type nopAnimator struct{}

func (nopAnimator) Celebrate(*Tetris, int) {}
