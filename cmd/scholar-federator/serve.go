package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/scholar-federator/internal/metrics"
	chiTransport "github.com/pdiddy/scholar-federator/internal/transport/chi"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the federated search over HTTP",
	Long: `Serve exposes POST /api/search and GET /api/search, plus /healthz and
Prometheus metrics on /metrics. The server shuts down gracefully on SIGINT
or SIGTERM.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	_ = viper.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	metrics.Register()

	fed := newFederator(appConfig, appLogger)
	server := chiTransport.NewServer(fed, appLogger)

	// The write timeout leaves room for the slowest provider deadline.
	writeTimeout := appConfig.Federation.ProviderTimeout + 5*time.Second
	for _, d := range appConfig.Federation.ProviderTimeouts {
		if d+5*time.Second > writeTimeout {
			writeTimeout = d + 5*time.Second
		}
	}

	srv := &http.Server{
		Addr:              appConfig.Serve.Addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      writeTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info("Starting HTTP server",
			zap.String("addr", srv.Addr),
			zap.Strings("providers", fed.Providers()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	appLogger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Error during shutdown", zap.Error(err))
		return err
	}
	appLogger.Info("Server stopped gracefully")
	return nil
}
