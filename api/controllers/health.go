package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/luxe-storefront/api/responses"
	"github.com/angelmondragon/luxe-storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/luxe-storefront/pkg/errors"
	"github.com/angelmondragon/luxe-storefront/pkg/logger"
)

const readyTimeout = 2 * time.Second

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Luxe-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready once the visitor store answers a ping.
func HealthReady(cfg *config.Config, logg *logger.Logger, store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Luxe-Env", cfg.App.Env)
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storage unavailable").
				WithDetails(map[string]any{"storage": cfg.Storage.Driver}))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready", "storage": cfg.Storage.Driver})
	}
}
