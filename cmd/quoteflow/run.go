package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nkinsurance/quoteflow"
	"github.com/nkinsurance/quoteflow/internal/logging"
	"github.com/nkinsurance/quoteflow/internal/presentation/tui"
	"github.com/nkinsurance/quoteflow/pkg/runner"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fill a quote in the terminal",
	Long: `Walks through the quote wizard step by step in the terminal. Submissions
are simulated.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		plain, _ := cmd.Flags().GetBool("plain")
		debug, _ := cmd.Flags().GetBool("debug")

		// Logs would interleave with the prompts, so they stay off unless asked for.
		logger := logging.NewNop()
		if debug {
			logger = logging.New(slog.LevelDebug)
		}

		engine, err := newEngine(cfg, logger, nil, nil)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		page := engine.NewPage(ctx)
		defer page.Close()

		opts := []runner.Option{runner.WithLogger(logger)}
		if !plain && term.IsTerminal(int(os.Stdout.Fd())) {
			tui.PrintBanner(os.Stdout, quoteflow.Version)
			opts = append(opts, runner.WithRenderer(tui.NewRenderer()))
		}

		err = runner.NewRunner(opts...).Run(ctx, page)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("plain", false, "Print plain markdown even on a terminal")
	runCmd.Flags().Bool("debug", false, "Log to stderr at debug level")
}
