// Package audio plays the game's sound effects and background music on the
// system speaker.
package audio

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"tetrisflip/tetris"
)

const (
	sampleRate = beep.SampleRate(44100)

	effectVolume = 0.4
	musicVolume  = 0.25
)

// SoundManager manages all game audio. Calls before Initialize, or after
// Cleanup, are silently ignored so the game runs the same without a
// speaker.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	music       *beep.Ctrl
	track       *loop
	tracks      []opener
	logger      *slog.Logger
	initialized bool
}

var _ tetris.Audio = (*SoundManager)(nil)

// NewSoundManager loads the track list: music<N>.ogg from dir, or the
// built-in melodies when dir is empty.
func NewSoundManager(dir string, l *slog.Logger) (*SoundManager, error) {
	tracks := melodyTracks()
	if dir != "" {
		var err error
		if tracks, err = fileTracks(dir); err != nil {
			return nil, fmt.Errorf("failed to load music: %w", err)
		}
	}
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	return &SoundManager{
		mixer:  &beep.Mixer{},
		tracks: tracks,
		logger: l,
	}, nil
}

// Initialize sets up the speaker.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the speaker.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	if sm.track != nil {
		sm.track.stop()
	}
	speaker.Unlock()
	speaker.Close()
	sm.music, sm.track = nil, nil
	sm.initialized = false
}

// Play mixes sound s over whatever is playing.
func (sm *SoundManager) Play(s tetris.Sound) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	e := effect(s)
	if e == nil {
		sm.logger.Debug("unknown sound", slog.String("sound", string(s)))
		return
	}
	speaker.Lock()
	sm.mixer.Add(volume(e, effectVolume))
	speaker.Unlock()
}

// PlayTrack stops the current music and loops track i instead.
func (sm *SoundManager) PlayTrack(i int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || len(sm.tracks) == 0 {
		return
	}
	i %= len(sm.tracks)
	if i < 0 {
		i += len(sm.tracks)
	}

	speaker.Lock()
	defer speaker.Unlock()
	if sm.music != nil {
		// the mixer drops a streamer once it reports it's done.
		sm.music.Streamer = nil
		sm.track.stop()
	}
	sm.track = newLoop(sm.tracks[i])
	sm.music = &beep.Ctrl{Streamer: volume(sm.track, musicVolume)}
	sm.mixer.Add(sm.music)
	sm.logger.Debug("playing track", slog.Int("track", i))
}

// Tracks is the number of background tracks.
func (sm *SoundManager) Tracks() int {
	return len(sm.tracks)
}
