package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"tetrisflip/tetris"
)

// note is a pitch as a MIDI number, 0 for a rest, held for beats.
type note struct {
	pitch int
	beats float64
}

// frequency converts a MIDI number to Hz, A4 (69) being 440.
func frequency(pitch int) float64 {
	return 440 * math.Pow(2, float64(pitch-69)/12)
}

// tone plays pitch for d with a short release so notes don't click.
func tone(pitch int, d time.Duration) beep.Streamer {
	n := sampleRate.N(d)
	if pitch <= 0 {
		return beep.Silence(n)
	}
	sine, err := generators.SineTone(sampleRate, frequency(pitch))
	if err != nil {
		return beep.Silence(n)
	}
	return newEnvelope(beep.Take(n, sine), n, sampleRate.N(releaseTime))
}

// melody plays notes in order, one beat lasting beat.
func melody(notes []note, beat time.Duration) beep.Streamer {
	s := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		s[i] = tone(n.pitch, time.Duration(n.beats*float64(beat)))
	}
	return beep.Seq(s...)
}

// envelope fades the last release samples of a stream of total samples.
type envelope struct {
	streamer beep.Streamer
	pos      int
	total    int
	release  int
}

func newEnvelope(s beep.Streamer, total, release int) *envelope {
	return &envelope{streamer: s, total: total, release: min(release, total)}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	start := e.total - e.release
	for i := range n {
		if e.pos >= start && e.release > 0 {
			vol := float64(e.total-e.pos) / float64(e.release)
			samples[i][0] *= vol
			samples[i][1] *= vol
		}
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// volume scales s linearly; zero or less is silent.
func volume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

const (
	releaseTime = 15 * time.Millisecond
	effectBeat  = 70 * time.Millisecond
)

// effectNotes are the short jingles for each game sound.
var effectNotes = map[tetris.Sound][]note{
	tetris.SoundRotate:  {{88, 0.5}},
	tetris.SoundLock:    {{45, 1}},
	tetris.SoundLine:    {{72, 2}},
	tetris.SoundDouble:  {{72, 1}, {76, 2}},
	tetris.SoundTriple:  {{72, 1}, {76, 1}, {79, 2}},
	tetris.SoundTetris:  {{72, 1}, {76, 1}, {79, 1}, {84, 4}},
	tetris.SoundLevelUp: {{67, 1}, {72, 1}, {76, 1}, {79, 1}, {84, 1}, {79, 1}, {84, 4}},
}

// effect returns the jingle for s, nil for an unknown sound.
func effect(s tetris.Sound) beep.Streamer {
	notes, ok := effectNotes[s]
	if !ok {
		return nil
	}
	return melody(notes, effectBeat)
}
