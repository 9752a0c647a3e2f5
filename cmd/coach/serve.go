// ABOUTME: CLI command for the read-only HTTP JSON API.
// ABOUTME: Serves recommendations, dashboard and history with Prometheus metrics until interrupted.
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

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/harperreed/coach/internal/metrics"
	"github.com/harperreed/coach/internal/server"
)

const shutdownTimeout = 10 * time.Second

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the read-only JSON API",
	Long: `Serve session history over HTTP.

ROUTES:

  GET /api/v1/routines
  GET /api/v1/recommendations/{exerciseID}
  GET /api/v1/dashboard
  GET /api/v1/exercises/{exerciseID}/progress
  GET /api/v1/sessions?limit=N
  GET /api/v1/sessions/{id}
  GET /metrics
  GET /healthz

The address defaults to 127.0.0.1:8088 and can be set with --addr or
"listen_addr" in the config file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.GetListenAddr()
		if serveAddr != "" {
			addr = serveAddr
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		srv := server.New(repo, catalog, server.Options{
			Logger:   logger,
			Metrics:  metrics.NewManager("coach", "api", reg),
			Gatherer: reg,
			Now:      nowFunc,
		})

		httpServer := &http.Server{
			Addr:              addr,
			Handler:           srv,
			ReadHeaderTimeout: 5 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- httpServer.ListenAndServe()
		}()
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Listening on http://%s\n", addr)
		logger.Info("http server started", "addr", addr)

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default 127.0.0.1:8088)")
	rootCmd.AddCommand(serveCmd)
}
