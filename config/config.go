// Package config holds the settings read once when a session is created.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

var (
	ErrInvalidSize  = errors.New("invalid board size")
	ErrInvalidDelay = errors.New("invalid drop delay")
	ErrInvalidFPS   = errors.New("invalid frame rate")
	ErrInvalidCell  = errors.New("invalid cell size")
)

const (
	minCols, maxCols = 4, 64
	minRows, maxRows = 4, 64
	maxFPS           = 240
)

// Config is passed by value; nothing changes it after the session starts.
type Config struct {
	CellSize    int           // terminal columns per board cell, rendering only
	Cols        int           // board width
	Rows        int           // board height
	Delay       time.Duration // initial automatic drop delay
	MaxFPS      int           // ticks per second
	Seed        uint64        // piece sequence seed, 0 picks one from the clock
	MusicDir    string        // directory with music<N>.ogg tracks
	Mute        bool
	RepeatDelay time.Duration // minimum time between two directional moves
}

// Default returns the classic 10×20 setup.
func Default() Config {
	return Config{
		CellSize:    2,
		Cols:        10,
		Rows:        20,
		Delay:       750 * time.Millisecond,
		MaxFPS:      30,
		RepeatDelay: 50 * time.Millisecond,
	}
}

// FromEnv overrides c with the TETRIS_* environment variables that are set.
func FromEnv(c Config) (Config, error) {
	ints := []struct {
		key string
		dst *int
	}{
		{"TETRIS_COLS", &c.Cols},
		{"TETRIS_ROWS", &c.Rows},
		{"TETRIS_MAXFPS", &c.MaxFPS},
		{"TETRIS_CELL_SIZE", &c.CellSize},
	}
	for _, v := range ints {
		s := os.Getenv(v.key)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return c, fmt.Errorf("failed to parse %s: %w", v.key, err)
		}
		*v.dst = n
	}
	if s := os.Getenv("TETRIS_DELAY"); s != "" {
		d, err := parseDelay(s)
		if err != nil {
			return c, fmt.Errorf("failed to parse TETRIS_DELAY: %w", err)
		}
		c.Delay = d
	}
	if s := os.Getenv("TETRIS_MUSIC_DIR"); s != "" {
		c.MusicDir = s
	}
	return c, nil
}

// parseDelay accepts a Go duration ("750ms") or a bare number of milliseconds.
func parseDelay(s string) (time.Duration, error) {
	if ms, err := strconv.Atoi(s); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	return time.ParseDuration(s)
}

func (c Config) Validate() error {
	if c.Cols < minCols || c.Cols > maxCols || c.Rows < minRows || c.Rows > maxRows {
		return fmt.Errorf("%w: %dx%d, want %d-%d columns and %d-%d rows", ErrInvalidSize, c.Cols, c.Rows, minCols, maxCols, minRows, maxRows)
	}
	if c.Delay <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidDelay, c.Delay)
	}
	if c.MaxFPS < 1 || c.MaxFPS > maxFPS {
		return fmt.Errorf("%w: %d, want 1-%d", ErrInvalidFPS, c.MaxFPS, maxFPS)
	}
	if c.CellSize < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidCell, c.CellSize)
	}
	return nil
}

// TickInterval is the time between two frames.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.MaxFPS)
}
