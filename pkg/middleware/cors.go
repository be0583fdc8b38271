package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS middleware. The API is consumed from browsers on arbitrary origins,
// same as the legacy deployment.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}
