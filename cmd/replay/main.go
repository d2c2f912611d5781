// Command replay plays a game from a script without a terminal and prints
// the final board.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"tetrisflip/config"
	"tetrisflip/replay"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool
	cmd := &cobra.Command{
		Use:   "replay [script|-]",
		Short: "Play a scripted game and print where it ended",
		Long: `replay runs a game headless from a script, one action per line:

  left 3        move left on three consecutive frames
  drop          hard drop
  wait 800      let the game run for 800ms
  # comment

Use the same --seed to get the same pieces every run.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
	}
	flags := config.BindFlags(cmd.Flags())
	cmd.Flags().BoolVar(&debug, "debug", false, "Log to stderr at debug level")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("seed") {
			_ = cmd.Flags().Set("seed", "1")
		}
		cfg, err := flags.Load()
		if err != nil {
			return err
		}
		level := slog.LevelWarn
		if debug {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

		in := cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open script: %w", err)
			}
			defer f.Close() //nolint:errcheck
			in = f
		}
		steps, err := replay.Parse(in)
		if err != nil {
			return err
		}
		res, err := replay.Run(steps, cfg, logger)
		if err != nil {
			return err
		}
		logger.Debug("replay finished", slog.String("game_id", res.GameID), slog.Duration("elapsed", res.Elapsed(cfg)))
		return replay.Format(cmd.OutOrStdout(), res)
	}
	return cmd
}
