package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS returns middleware for the intake API. The tool runs on an internal
// network, so local frontends are the only expected origins.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-API-Key", "X-Requested-With"},
		MaxAge:         300,
	}).Handler
}
