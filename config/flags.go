package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// Flags are the command line overrides. Only flags given on the command
// line are applied, so they win over the environment without hiding it.
type Flags struct {
	fs *pflag.FlagSet

	cols, rows, fps, cell int
	delay                 time.Duration
	seed                  uint64
	music                 string
	mute                  bool
}

func BindFlags(fs *pflag.FlagSet) *Flags {
	d := Default()
	f := &Flags{fs: fs}
	fs.IntVar(&f.cols, "cols", d.Cols, "Board width in cells (env: TETRIS_COLS)")
	fs.IntVar(&f.rows, "rows", d.Rows, "Board height in cells (env: TETRIS_ROWS)")
	fs.DurationVar(&f.delay, "delay", d.Delay, "Initial automatic drop delay (env: TETRIS_DELAY)")
	fs.IntVar(&f.fps, "fps", d.MaxFPS, "Frames per second (env: TETRIS_MAXFPS)")
	fs.IntVar(&f.cell, "cell-size", d.CellSize, "Terminal columns per cell (env: TETRIS_CELL_SIZE)")
	fs.Uint64Var(&f.seed, "seed", d.Seed, "Piece sequence seed, 0 for a random one")
	fs.StringVar(&f.music, "music", d.MusicDir, "Directory with music0.ogg, music1.ogg... (env: TETRIS_MUSIC_DIR)")
	fs.BoolVar(&f.mute, "mute", d.Mute, "Disable sound effects and music")
	return f
}

// Apply copies the flags that were set into c.
func (f *Flags) Apply(c Config) Config {
	if f.fs.Changed("cols") {
		c.Cols = f.cols
	}
	if f.fs.Changed("rows") {
		c.Rows = f.rows
	}
	if f.fs.Changed("delay") {
		c.Delay = f.delay
	}
	if f.fs.Changed("fps") {
		c.MaxFPS = f.fps
	}
	if f.fs.Changed("cell-size") {
		c.CellSize = f.cell
	}
	if f.fs.Changed("seed") {
		c.Seed = f.seed
	}
	if f.fs.Changed("music") {
		c.MusicDir = f.music
	}
	if f.fs.Changed("mute") {
		c.Mute = f.mute
	}
	return c
}

// Load layers the defaults, the environment and the flags, and validates
// the result.
func (f *Flags) Load() (Config, error) {
	c, err := FromEnv(Default())
	if err != nil {
		return c, err
	}
	c = f.Apply(c)
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}
