package controllers

import (
	"context"
	"net/http"

	"github.com/recyclelect/storefront-backend/api/responses"
	"github.com/recyclelect/storefront-backend/pkg/config"
	pkgerrors "github.com/recyclelect/storefront-backend/pkg/errors"
	"github.com/recyclelect/storefront-backend/pkg/logger"
)

// Pinger is the connectivity probe implemented by backing stores.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports whether the optional backing stores respond. Nil
// pingers are skipped: the memory-backed deployment has none.
func HealthReady(cfg *config.Config, logg *logger.Logger, db, sessions Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("X-Storefront-Env", cfg.App.Env)

		checks := map[string]string{}
		failed := false
		probe := func(name string, p Pinger) {
			if p == nil {
				checks[name] = "skipped"
				return
			}
			if err := p.Ping(ctx); err != nil {
				checks[name] = "down"
				failed = true
				if logg != nil {
					logg.Error(logg.WithField(ctx, "dependency", name), "readiness probe failed", err)
				}
				return
			}
			checks[name] = "up"
		}
		probe("database", db)
		probe("sessions", sessions)

		if failed {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeDependency, "dependency not ready").WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
