package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/paw-chain/amm/api"
	"github.com/paw-chain/amm/app/telemetry"
)

const shutdownTimeout = 10 * time.Second

// ServeCmd runs the REST API and the Prometheus endpoint until interrupted.
func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the REST API over the local state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			nc, err := getNodeContext(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			provider, err := telemetry.NewProvider(nc.config.Telemetry)
			if err != nil {
				return err
			}
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := provider.Shutdown(shutdownCtx); err != nil {
					nc.logger.Error("telemetry shutdown failed", "error", err)
				}
			}()

			amm, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer amm.Close()

			server, err := api.NewServer(nc.logger, amm, nc.config.API)
			if err != nil {
				return err
			}

			nc.logger.Info("node started",
				"height", amm.LastHeight(),
				"api", nc.config.API.Address,
				"metrics", nc.config.MetricsAddress,
				"tracing", nc.config.Telemetry.Enabled,
			)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return server.Run(gctx)
			})
			if nc.config.MetricsAddress != "" {
				g.Go(func() error {
					return serveMetrics(gctx, nc.config.MetricsAddress)
				})
			}
			return g.Wait()
		},
	}
}

func serveMetrics(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("metrics server: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
