package wire

import (
	"bus-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	// Public routes (tanpa auth middleware)
	r.Post("/api/users/register", authHandler.Register)
	r.Post("/api/users/login", authHandler.Login)
}
