package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/nkinsurance/quoteflow"
	"github.com/nkinsurance/quoteflow/internal/config"
	"github.com/nkinsurance/quoteflow/internal/logging"
	"github.com/nkinsurance/quoteflow/pkg/adapters/simulated"
	"github.com/nkinsurance/quoteflow/pkg/catalog"
	"github.com/nkinsurance/quoteflow/pkg/persistence/middleware"
	"github.com/nkinsurance/quoteflow/pkg/ports"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quoteflow",
	Short: "quoteflow serves the NK Insurance quote wizard",
	Long: `quoteflow runs the forms of the NK Insurance site: the multi-step quote
wizard, the contact form and the newsletter signup. Serve them over HTTP or
fill a quote in the terminal.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags override the QUOTEFLOW_* environment.
	rootCmd.PersistentFlags().String("steps", "", "YAML catalog replacing the built-in forms")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")
}

// loadConfig reads the environment and applies the flags the user set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if f := flags.Lookup("steps"); f != nil && f.Changed {
		cfg.StepsFile = f.Value.String()
	}
	if f := flags.Lookup("log-level"); f != nil && f.Changed {
		cfg.LogLevel = f.Value.String()
	}
	if f := flags.Lookup("log-json"); f != nil && f.Changed {
		cfg.LogJSON, _ = flags.GetBool("log-json")
	}
	if f := flags.Lookup("addr"); f != nil && f.Changed {
		cfg.Addr = f.Value.String()
	}
	if f := flags.Lookup("redis-url"); f != nil && f.Changed {
		cfg.RedisURL = f.Value.String()
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.NewWithWriter(os.Stderr, level, cfg.LogJSON), nil
}

func loadCatalog(cfg config.Config) (*catalog.Catalog, error) {
	if cfg.StepsFile == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(cfg.StepsFile)
}

// newEngine builds the engine every command shares. Nil sinks are simulated.
// Every sink is audited with masked PII.
func newEngine(cfg config.Config, logger *slog.Logger, quoteSink, formSink ports.Submitter, opts ...quoteflow.Option) (*quoteflow.Engine, error) {
	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	if quoteSink == nil {
		quoteSink = simulated.New(
			simulated.WithDelay(cfg.SubmitDelay),
			simulated.WithLogger(logger),
		)
	}
	if formSink == nil {
		formSink = simulated.New(
			simulated.WithDelay(cfg.FormDelay),
			simulated.WithLogger(logger),
		)
	}
	audit := middleware.NewAuditMiddleware(logger, middleware.DefaultPIIPatterns)

	base := []quoteflow.Option{
		quoteflow.WithCatalog(cat),
		quoteflow.WithLogger(logger),
		quoteflow.WithSubmitter(middleware.Chain(quoteSink, audit)),
		quoteflow.WithFormSubmitter(middleware.Chain(formSink, audit)),
		quoteflow.WithSubmitTimeout(cfg.SubmitTimeout),
		quoteflow.WithNoticeTTL(cfg.NoticeTTL),
		quoteflow.WithMaxInputSize(cfg.MaxInputSize),
	}
	engine, err := quoteflow.New(append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("error initializing quoteflow: %w", err)
	}
	return engine, nil
}
