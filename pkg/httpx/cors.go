package httpx

import (
	"net/http"

	"github.com/go-chi/cors"
)

// DefaultCORSOrigins is the local web frontend.
var DefaultCORSOrigins = []string{"http://localhost:3000"}

// CORSOptions returns the policy for the browser frontend. Authorization is
// exposed so the client can read a re-issued bearer header.
func CORSOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = DefaultCORSOrigins
	}

	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Authorization", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           3600,
	}
}

// CORS answers preflight requests and decorates responses for allowed origins.
func CORS(origins []string) Middleware {
	return cors.Handler(CORSOptions(origins))
}
