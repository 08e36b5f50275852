package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/nharmon/slicehaus-backend/pkg/config"
)

// CORS returns middleware that applies the storefront's allowed origin policy.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-SH-Session", "X-Requested-With"},
		ExposedHeaders:   []string{"X-SH-Session"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
