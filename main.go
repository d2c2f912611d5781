package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tetrisflip/audio"
	"tetrisflip/client"
	"tetrisflip/config"
	"tetrisflip/terminal"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		logFile string
		debug   bool
	)
	cmd := &cobra.Command{
		Use:   "tetrisflip",
		Short: "Falling blocks in the terminal, with flips",
		Long: `tetrisflip is a falling block puzzle played in the terminal.

Pieces can be rotated and also mirrored horizontally or vertically.

Keys:
  left/right/down  move          up, a  rotate left    d  rotate right
  space            hard drop     w      flip vertical  s  flip horizontal
  p                pause         enter  restart        esc, q  quit`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}
	flags := config.BindFlags(cmd.Flags())
	cmd.Flags().StringVar(&logFile, "log", "", "Write JSON logs to this file")
	cmd.Flags().BoolVar(&debug, "debug", false, "Log at debug level")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := flags.Load()
		if err != nil {
			return err
		}
		logger, closeLog, err := newLogger(logFile, debug)
		if err != nil {
			return err
		}
		defer closeLog()

		if !terminal.IsTerminal() {
			return errors.New("tetrisflip needs a terminal")
		}
		if w, h := client.FrameSize(cfg); !terminal.Fits(w, h) {
			return fmt.Errorf("the terminal is too small, it needs %dx%d", w, h)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		opts := &client.Options{Config: cfg, Logger: logger}
		if !cfg.Mute {
			if sm := startAudio(cfg, logger); sm != nil {
				defer sm.Cleanup()
				opts.Audio = sm
			}
		}

		c, err := client.New(opts)
		if err != nil {
			return err
		}
		logger.Info("starting game", slog.Int("cols", cfg.Cols), slog.Int("rows", cfg.Rows), slog.Uint64("seed", cfg.Seed))
		return c.Start(ctx)
	}
	return cmd
}

// newLogger logs JSON to path, or nowhere when path is empty since stdout
// belongs to the game.
func newLogger(path string, debug bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	if path == "" {
		return slog.New(slog.NewJSONHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644) //nolint:gosec
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	l := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	return l, func() { _ = f.Close() }, nil
}

// startAudio returns nil when there is no sound to play. The game carries on
// silent in that case.
func startAudio(cfg config.Config, logger *slog.Logger) *audio.SoundManager {
	sm, err := audio.NewSoundManager(cfg.MusicDir, logger)
	if err != nil {
		logger.Warn("audio disabled", slog.String("error", err.Error()))
		return nil
	}
	if err := sm.Initialize(); err != nil {
		logger.Warn("audio disabled", slog.String("error", err.Error()))
		return nil
	}
	return sm
}
