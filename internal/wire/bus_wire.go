package wire

import (
	"bus-booking/internal/adaptor"
	"bus-booking/internal/data/entity"
	"bus-booking/pkg/middleware"
	"bus-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBus(
	r chi.Router,
	busHandler *adaptor.BusHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/buses - List all buses
	r.Get("/api/buses", busHandler.ListBuses)

	// ==================== OPERATOR ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.RequireRole(entity.RoleOperator, log))

		// POST /api/operator/buses - Publish a new bus (operator only)
		r.Post("/api/operator/buses", busHandler.CreateBus)
	})
}
