package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nkinsurance/quoteflow"
	"github.com/nkinsurance/quoteflow/internal/metrics"
	httpAdapter "github.com/nkinsurance/quoteflow/pkg/adapters/http"
	"github.com/nkinsurance/quoteflow/pkg/adapters/redis"
	"github.com/nkinsurance/quoteflow/pkg/persistence/middleware"
	"github.com/nkinsurance/quoteflow/pkg/ports"
	"github.com/nkinsurance/quoteflow/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves the site pages over HTTP. Every visit gets its own page instance;
idle pages expire after QUOTEFLOW_PAGE_TTL. With a Redis URL, leads are queued
in Redis instead of being simulated.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m := metrics.New(reg)

		var sink ports.Submitter
		if cfg.RedisURL != "" {
			queue, err := redis.New(cfg.RedisURL,
				redis.WithPrefix(cfg.RedisPrefix),
				redis.WithLogger(logger),
			)
			if err != nil {
				return err
			}
			defer queue.Close()
			// The duplicate guard fingerprints the lead before it is masked.
			mws := []middleware.Middleware{
				middleware.NewDedupeMiddleware(queue.Locker(), cfg.RedisDedupeWindow),
			}
			if cfg.RedisMaskPII {
				mws = append(mws, middleware.NewPIIMiddleware(middleware.DefaultPIIPatterns))
			}
			sink = middleware.Chain(queue, mws...)
			m.TrackQueue(queue.Pending)
			logger.Info("queueing leads in redis",
				"prefix", cfg.RedisPrefix,
				"dedupe_window", cfg.RedisDedupeWindow,
				"mask_pii", cfg.RedisMaskPII,
			)
		}

		engine, err := newEngine(cfg, logger, sink, sink, quoteflow.WithLifecycleHooks(m.Hooks()))
		if err != nil {
			return err
		}

		pages := session.NewManager(
			session.WithTTL(cfg.PageTTL),
			session.WithLogger(logger),
		)
		m.TrackPages(pages.Len)

		handler, err := httpAdapter.NewHandler(engine, pages,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
		)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		sweepDone := make(chan struct{})
		go func() {
			defer close(sweepDone)
			pages.Run(ctx, cfg.SweepInterval)
		}()

		srv := &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("starting quoteflow server", "addr", srv.Addr, "version", quoteflow.Version)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			stop()
			<-sweepDone
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case <-ctx.Done():
			logger.Info("shutting down")

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
				if err := srv.Close(); err != nil {
					logger.Error("error killing server", "err", err)
				}
			}
			<-sweepDone
			logger.Info("quoteflow server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (default :8080)")
	serveCmd.Flags().String("redis-url", "", "Queue leads in this Redis (redis://host:port/db)")
}
