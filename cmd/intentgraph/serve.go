package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/intentgraph/internal/metrics"
	"github.com/aretw0/intentgraph/internal/server"
	"github.com/aretw0/intentgraph/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the analysis HTTP server",
	Long: `Starts the engine in server mode, exposing a JSON API over HTTP.
Reports persist in memory by default, or in Redis when redis.addr is set
in the configuration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.Server.Addr
		}

		reports := newReportStore()
		defer reports.Close()

		srv := server.New(newEngine(), reports, metrics.New(), logger)
		httpServer := &http.Server{
			Addr:    addr,
			Handler: srv.Handler(),
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("server listening", "addr", addr)
			serverErrors <- httpServer.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("shutdown started", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := httpServer.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "err", err)
				if err := httpServer.Close(); err != nil {
					return err
				}
			}
			logger.Info("server stopped gracefully")
			return nil
		}
	},
}

func newReportStore() store.ReportStore {
	if cfg.Redis.Addr == "" {
		return store.NewMemoryStore()
	}
	opts := []store.RedisOption{}
	if cfg.Redis.Prefix != "" {
		opts = append(opts, store.WithPrefix(cfg.Redis.Prefix))
	}
	if cfg.Redis.TTLHours > 0 {
		opts = append(opts, store.WithTTL(time.Duration(cfg.Redis.TTLHours)*time.Hour))
	}
	logger.Info("using redis report store", "addr", cfg.Redis.Addr)
	return store.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr from the config)")
}
