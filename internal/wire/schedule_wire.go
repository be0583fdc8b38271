package wire

import (
	"bus-booking/internal/adaptor"
	"bus-booking/internal/data/entity"
	"bus-booking/pkg/middleware"
	"bus-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSchedule(
	r chi.Router,
	scheduleHandler *adaptor.ScheduleHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/schedules - List all schedules
	r.Get("/api/schedules", scheduleHandler.ListSchedules)

	// ==================== OPERATOR ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.RequireRole(entity.RoleOperator, log))

		// POST /api/operator/schedules - Publish a new schedule (operator only)
		r.Post("/api/operator/schedules", scheduleHandler.CreateSchedule)
	})
}
