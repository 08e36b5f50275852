package controllers

import (
	"net/http"

	"go.uber.org/multierr"

	"github.com/nharmon/slicehaus-backend/api/responses"
	"github.com/nharmon/slicehaus-backend/pkg/config"
	"github.com/nharmon/slicehaus-backend/pkg/db"
	pkgerrors "github.com/nharmon/slicehaus-backend/pkg/errors"
	"github.com/nharmon/slicehaus-backend/pkg/logger"
	"github.com/nharmon/slicehaus-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Slicehaus-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness only when every backing store answers.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Slicehaus-Env", cfg.App.Env)

		var err error
		if dbP != nil {
			if pingErr := dbP.Ping(r.Context()); pingErr != nil {
				err = multierr.Append(err, pingErr)
			}
		}
		if redisP != nil {
			if pingErr := redisP.Ping(r.Context()); pingErr != nil {
				err = multierr.Append(err, pingErr)
			}
		}

		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "dependencies unavailable"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
