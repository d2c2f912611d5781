package replay

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"tetrisflip/config"
	"tetrisflip/tetris"
)

// Result is where a replay ended.
type Result struct {
	GameID string
	Ticks  int
	Quit   bool
	Tetris *tetris.Tetris
}

// Run plays steps against a new game on a manual clock that moves one tick
// interval per frame, the same way a terminal session would at cfg.MaxFPS.
// Options are passed to the game after the clock.
func Run(steps []Step, cfg config.Config, logger *slog.Logger, opts ...tetris.Option) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	clock := tetris.NewManualClock()
	opts = append([]tetris.Option{tetris.WithClock(clock), tetris.WithLogger(logger)}, opts...)
	game := tetris.NewGame(cfg, opts...)
	interval := cfg.TickInterval()

	res := &Result{}
	tick := func(a tetris.Action) bool {
		clock.Advance(interval)
		res.Ticks++
		return game.Tick(a)
	}

run:
	for _, s := range steps {
		if s.Wait > 0 {
			n := int((s.Wait + interval - 1) / interval)
			for range n {
				tick(tetris.None)
			}
			continue
		}
		for range max(s.Count, 1) {
			if !tick(s.Action) {
				res.Quit = true
				break run
			}
		}
	}
	logger.Debug("replay done",
		slog.String("game_id", game.ID),
		slog.Int("ticks", res.Ticks),
		slog.String("state", game.State().String()),
	)
	// a restart gives the game a new id.
	res.GameID = game.ID
	res.Tetris = game.Read()
	return res, nil
}

// Format writes the settled board, one row per line with "." for empty
// cells and the cell id otherwise, followed by a summary line.
func Format(w io.Writer, res *Result) error {
	t := res.Tetris
	var b strings.Builder
	for y := range t.Stack.Rows {
		for _, v := range t.Stack.Cells[y] {
			b.WriteByte(cellRune(v))
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "state=%s score=%d level=%d lines=%d left=%d flips=%d delay=%s ticks=%d\n",
		t.State, t.Score, t.Level, t.Lines, t.LinesLeft, t.Flips, t.Delay, res.Ticks)
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}

func cellRune(v int) byte {
	switch {
	case v == 0:
		return '.'
	case v < 10:
		return byte('0' + v)
	}
	return '#'
}

// Elapsed is the game time a replay took.
func (r *Result) Elapsed(cfg config.Config) time.Duration {
	return time.Duration(r.Ticks) * cfg.TickInterval()
}
