package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cheeseshop/cheeseshop/internal/api"
	"github.com/cheeseshop/cheeseshop/internal/api/common"
	"github.com/cheeseshop/cheeseshop/internal/config"
	"github.com/cheeseshop/cheeseshop/internal/db"
	"github.com/cheeseshop/cheeseshop/internal/service"
	dbsvc "github.com/cheeseshop/cheeseshop/internal/service/db"
	"github.com/cheeseshop/cheeseshop/internal/service/inmemory"
	"github.com/cheeseshop/cheeseshop/internal/telemetry"
	"github.com/cheeseshop/cheeseshop/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the index API server",
	Long: `Start the index API server to serve the legacy package-index endpoints.

The server requires a configuration file (--config) that specifies:
- Site name and canonical URL (feed links are built from it)
- The packaging store: a Postgres database or a JSON index dump file
- All other operational settings`,
	RunE: runServe,
}

const (
	defaultGracefulTimeout = 30 * time.Second
	serverReadTimeout      = 10 * time.Second
	serverWriteTimeout     = 15 * time.Second
	serverIdleTimeout      = 60 * time.Second
)

func init() {
	serveCmd.Flags().String("address", "", "Address to listen on (overrides config)")
	serveCmd.Flags().String("config", "", "Path to configuration file (YAML format, required)")

	err := viper.BindPFlag("address", serveCmd.Flags().Lookup("address"))
	if err != nil {
		logger.Fatalf("Failed to bind address flag: %v", err)
	}
	err = viper.BindPFlag("config", serveCmd.Flags().Lookup("config"))
	if err != nil {
		logger.Fatalf("Failed to bind config flag: %v", err)
	}

	if err := serveCmd.MarkFlagRequired("config"); err != nil {
		logger.Fatalf("Failed to mark config flag as required: %v", err)
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	configPath := viper.GetString("config")
	cfg, err := config.LoadConfig(config.WithConfigPath(configPath))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Infof("Loaded configuration from %s (site: %s)", configPath, cfg.Site.Name)

	address := viper.GetString("address")
	if address == "" {
		address = cfg.GetAddress()
	}

	site, err := common.NewSiteURLs(cfg.Site.Name, cfg.Site.URL)
	if err != nil {
		return fmt.Errorf("invalid site configuration: %w", err)
	}

	svc, cleanup, err := buildPackagingService(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to build packaging service: %w", err)
	}
	defer cleanup()

	middlewares := []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.Recoverer,
		api.LoggingMiddleware,
	}

	var metricsProvider *telemetry.Provider
	if cfg.Telemetry != nil && cfg.Telemetry.Metrics {
		metricsProvider, err = telemetry.NewProvider()
		if err != nil {
			return fmt.Errorf("failed to initialize telemetry: %w", err)
		}
		httpMetrics, err := telemetry.NewHTTPMetrics(metricsProvider.MeterProvider())
		if err != nil {
			return fmt.Errorf("failed to create HTTP metrics: %w", err)
		}
		middlewares = append(middlewares, httpMetrics.Middleware)
	}

	router := api.NewServer(svc, site, api.WithMiddlewares(middlewares...))
	if metricsProvider != nil {
		router.Handle("/metrics", metricsProvider.Handler())
	}

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
		IdleTimeout:  serverIdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof("Starting index API server on %s", address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case sig := <-stop:
		logger.Infof("Received signal %s, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, defaultGracefulTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	if metricsProvider != nil {
		if err := metricsProvider.Shutdown(shutdownCtx); err != nil {
			logger.Warnf("Failed to shut down telemetry: %v", err)
		}
	}

	logger.Info("Server stopped")
	return nil
}

// buildPackagingService creates the packaging store implementation selected
// by the configuration. The returned cleanup releases any held resources.
func buildPackagingService(ctx context.Context, cfg *config.Config) (service.PackagingService, func(), error) {
	if cfg.Database != nil {
		conn, err := db.NewConnection(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		svc, err := dbsvc.New(conn.Pool)
		if err != nil {
			conn.Close()
			return nil, nil, err
		}
		logger.Infof("Using database packaging store at %s:%d", cfg.Database.Host, cfg.Database.Port)
		return svc, conn.Close, nil
	}

	provider, err := service.NewFileIndexDataProvider(cfg.IndexDump.Path)
	if err != nil {
		return nil, nil, err
	}
	svc, err := inmemory.New(ctx, provider,
		inmemory.WithCacheDuration(cfg.IndexDump.GetRefreshInterval()))
	if err != nil {
		return nil, nil, err
	}
	logger.Infof("Using index dump packaging store from %s", provider.GetSource())
	return svc, func() {}, nil
}
