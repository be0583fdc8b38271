package adaptor

import (
	"encoding/json"
	"net/http"

	"bus-booking/internal/dto/request"
	"bus-booking/internal/usecase"
	"bus-booking/pkg/utils"

	"go.uber.org/zap"
)

type BusHandler struct {
	service usecase.BusService
	log     *zap.Logger
}

func NewBusHandler(service usecase.BusService, log *zap.Logger) *BusHandler {
	return &BusHandler{
		service: service,
		log:     log.With(zap.String("handler", "bus")),
	}
}

// CreateBus handles POST /api/operator/buses (operator only)
func (h *BusHandler) CreateBus(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	bus, err := h.service.CreateBus(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "create bus")
		return
	}

	utils.ResponseCreated(w, bus)
}

// ListBuses handles GET /api/buses (public)
func (h *BusHandler) ListBuses(w http.ResponseWriter, r *http.Request) {
	buses, err := h.service.ListBuses(r.Context())
	if err != nil {
		respondServiceError(w, h.log, err, "list buses")
		return
	}

	utils.ResponseSuccess(w, buses)
}
