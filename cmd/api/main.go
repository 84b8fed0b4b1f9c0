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

	"github.com/angelmondragon/luxe-storefront/api/routes"
	"github.com/angelmondragon/luxe-storefront/internal/cart"
	"github.com/angelmondragon/luxe-storefront/internal/catalog"
	"github.com/angelmondragon/luxe-storefront/pkg/config"
	"github.com/angelmondragon/luxe-storefront/pkg/instance"
	"github.com/angelmondragon/luxe-storefront/pkg/logger"
	"github.com/angelmondragon/luxe-storefront/pkg/metrics"
	"github.com/angelmondragon/luxe-storefront/pkg/storage"
	"github.com/angelmondragon/luxe-storefront/pkg/visitor"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg, openStore, prometheus.DefaultRegisterer); err != nil {
		logg.Error(ctx, "api server failed", err)
		stop()
		os.Exit(1)
	}
}

type storeOpener func(ctx context.Context, cfg *config.Config, logg *logger.Logger) (storage.Store, closers, error)

// run wires the services and serves until ctx ends. Storage connections are closed on
// every return path.
func run(ctx context.Context, cfg *config.Config, logg *logger.Logger, open storeOpener, reg prometheus.Registerer) error {
	store, resources, err := open(ctx, cfg, logg)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if closeErr := resources.Close(); closeErr != nil {
			logg.Error(context.Background(), "error closing storage", closeErr)
		}
	}()

	recorder := metrics.NewStorefront(reg)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}

	loader, err := catalog.NewLoader(
		cfg.Catalog.ResolvedBaseURL(port),
		cfg.Catalog.Path,
		catalog.WithHTTPClient(&http.Client{Timeout: cfg.Catalog.Timeout}),
		catalog.WithCacheTTL(cfg.Catalog.CacheTTL),
		catalog.WithMetrics(recorder),
		catalog.WithLogger(logg),
	)
	if err != nil {
		return fmt.Errorf("create catalog loader: %w", err)
	}
	catalogService, err := catalog.NewService(loader)
	if err != nil {
		return fmt.Errorf("create catalog service: %w", err)
	}
	prefs, err := catalog.NewPreferences(store, cfg.Catalog.DefaultPageSize, logg)
	if err != nil {
		return fmt.Errorf("create preferences: %w", err)
	}
	cartService, err := cart.NewService(store, catalogService, recorder, logg)
	if err != nil {
		return fmt.Errorf("create cart service: %w", err)
	}
	tokens, err := visitor.NewTokens(cfg.Visitor)
	if err != nil {
		return fmt.Errorf("create visitor tokens: %w", err)
	}

	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
		"storage":  cfg.Storage.Driver,
		"feed_url": loader.FeedURL(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:  cfg,
			Logger:  logg,
			Store:   store,
			Tokens:  tokens,
			Carts:   cartService,
			Catalog: catalogService,
			Prefs:   prefs,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("api server stopped unexpectedly: %w", err)
		}
		return nil
	case <-ctx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
		return nil
	}
}
