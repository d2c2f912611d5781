package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/vorbis"
)

var errEmptyTrack = errors.New("track has no samples")

// opener returns a fresh one-pass stream of a track.
type opener func() (beep.Streamer, error)

const musicBeat = 200 * time.Millisecond

// Built-in tracks, used when no music directory is configured.
var melodies = [][]note{
	// Korobeiniki
	{
		{76, 2}, {71, 1}, {72, 1}, {74, 2}, {72, 1}, {71, 1},
		{69, 2}, {69, 1}, {72, 1}, {76, 2}, {74, 1}, {72, 1},
		{71, 3}, {72, 1}, {74, 2}, {76, 2},
		{72, 2}, {69, 2}, {69, 2}, {0, 2},
		{0, 1}, {74, 2}, {77, 1}, {81, 2}, {79, 1}, {77, 1},
		{76, 3}, {72, 1}, {76, 2}, {74, 1}, {72, 1},
		{71, 2}, {71, 1}, {72, 1}, {74, 2}, {76, 2},
		{72, 2}, {69, 2}, {69, 2}, {0, 2},
	},
	// Minuet in G
	{
		{74, 2}, {67, 1}, {69, 1}, {71, 1}, {72, 1}, {74, 2}, {67, 2}, {67, 2},
		{76, 2}, {72, 1}, {74, 1}, {76, 1}, {78, 1}, {79, 2}, {67, 2}, {67, 2},
		{72, 2}, {74, 1}, {72, 1}, {71, 1}, {69, 1}, {71, 2}, {72, 1}, {71, 1}, {69, 1}, {67, 1},
		{66, 2}, {67, 1}, {69, 1}, {71, 1}, {67, 1}, {69, 6},
	},
	// A minor arpeggios
	{
		{57, 1}, {60, 1}, {64, 1}, {60, 1}, {57, 1}, {60, 1}, {64, 1}, {60, 1},
		{53, 1}, {57, 1}, {60, 1}, {57, 1}, {53, 1}, {57, 1}, {60, 1}, {57, 1},
		{55, 1}, {59, 1}, {62, 1}, {59, 1}, {55, 1}, {59, 1}, {62, 1}, {59, 1},
		{52, 1}, {56, 1}, {59, 1}, {56, 1}, {52, 1}, {56, 1}, {59, 1}, {56, 1},
	},
}

func melodyTracks() []opener {
	tracks := make([]opener, len(melodies))
	for i, m := range melodies {
		tracks[i] = func() (beep.Streamer, error) { return melody(m, musicBeat), nil }
	}
	return tracks
}

// fileTracks finds music0.ogg, music1.ogg... in dir and stops at the first
// missing number.
func fileTracks(dir string) ([]opener, error) {
	var tracks []opener
	for i := 0; ; i++ {
		path := filepath.Join(dir, fmt.Sprintf("music%d.ogg", i))
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				break
			}
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		tracks = append(tracks, func() (beep.Streamer, error) { return decode(path) })
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("no music0.ogg in %s", dir)
	}
	return tracks, nil
}

// decode opens an ogg file, resampling it when needed.
func decode(path string) (beep.Streamer, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	s, format, err := vorbis.Decode(f)
	if err != nil {
		f.Close() //nolint:errcheck
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if format.SampleRate == sampleRate {
		return s, nil
	}
	return &closingStreamer{Streamer: beep.Resample(4, format.SampleRate, sampleRate, s), closer: s}, nil
}

type closingStreamer struct {
	beep.Streamer
	closer io.Closer
}

func (c *closingStreamer) Close() error { return c.closer.Close() }

// loop replays a track forever, opening it again each time it runs out.
type loop struct {
	open  opener
	cur   beep.Streamer
	fresh bool
	err   error
}

func newLoop(open opener) *loop {
	return &loop{open: open}
}

func (l *loop) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) {
		if l.err != nil {
			return n, n > 0
		}
		if l.cur == nil {
			s, err := l.open()
			if err != nil {
				l.err = err
				continue
			}
			l.cur, l.fresh = s, true
		}
		m, ok := l.cur.Stream(samples[n:])
		n += m
		if m > 0 {
			l.fresh = false
		}
		if ok {
			continue
		}
		err := l.cur.Err()
		if err == nil && l.fresh {
			err = errEmptyTrack
		}
		l.stop()
		l.err = err
	}
	return n, true
}

func (l *loop) Err() error { return l.err }

// stop closes the current stream if it holds a file.
func (l *loop) stop() {
	if c, ok := l.cur.(io.Closer); ok {
		c.Close() //nolint:errcheck
	}
	l.cur = nil
}
