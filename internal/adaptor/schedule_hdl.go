package adaptor

import (
	"encoding/json"
	"net/http"

	"bus-booking/internal/dto/request"
	"bus-booking/internal/usecase"
	"bus-booking/pkg/utils"

	"go.uber.org/zap"
)

type ScheduleHandler struct {
	service usecase.ScheduleService
	log     *zap.Logger
}

func NewScheduleHandler(service usecase.ScheduleService, log *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service: service,
		log:     log.With(zap.String("handler", "schedule")),
	}
}

// CreateSchedule handles POST /api/operator/schedules (operator only)
func (h *ScheduleHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req request.CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	schedule, err := h.service.CreateSchedule(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "create schedule")
		return
	}

	utils.ResponseCreated(w, schedule)
}

// ListSchedules handles GET /api/schedules (public)
func (h *ScheduleHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.service.ListSchedules(r.Context())
	if err != nil {
		respondServiceError(w, h.log, err, "list schedules")
		return
	}

	utils.ResponseSuccess(w, schedules)
}
