package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/starterhq/backoffice-backend/api/responses"
	"github.com/starterhq/backoffice-backend/pkg/config"
	pkgerrors "github.com/starterhq/backoffice-backend/pkg/errors"
	"github.com/starterhq/backoffice-backend/pkg/logger"
)

const readinessTimeout = 2 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Backoffice-Env", cfg.App.Env)
		responses.WriteSuccess(w, "Service is live", map[string]string{"status": "live"})
	}
}

// HealthReady pings the database and, when configured, Redis. Nil pingers are
// skipped so the endpoint works in redis-less deployments.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Backoffice-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := map[string]string{}
		healthy := true
		for name, dep := range deps {
			if dep == nil {
				checks[name] = "skipped"
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				checks[name] = "down"
				healthy = false
				if logg != nil {
					logg.Error(logg.WithField(ctx, "dependency", name), "health.ready", err)
				}
				continue
			}
			checks[name] = "up"
		}

		if !healthy {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeDependency, "dependency unavailable").WithDetails(checks))
			return
		}

		responses.WriteSuccess(w, "Service is ready", checks)
	}
}

// ReadyDeps assembles the readiness probe targets, tolerating nils.
func ReadyDeps(dbPinger pinger, redisPinger pinger) map[string]pinger {
	deps := map[string]pinger{"db": dbPinger}
	if redisPinger != nil {
		deps["redis"] = redisPinger
	}
	return deps
}
