package adaptor

import (
	"errors"
	"net/http"

	"bus-booking/internal/usecase"
	"bus-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	Bus      *BusHandler
	Schedule *ScheduleHandler
	Booking  *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		Bus:      NewBusHandler(service.Bus, log),
		Schedule: NewScheduleHandler(service.Schedule, log),
		Booking:  NewBookingHandler(service.Booking, log),
	}
}

// respondServiceError maps a classified usecase error to an HTTP status.
// Services never return unclassified store errors, so the default arm only
// catches programming mistakes.
func respondServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrScheduleNotFound),
		errors.Is(err, usecase.ErrBusNotFound),
		errors.Is(err, usecase.ErrBookingNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrSeatTaken):
		log.Warn(operation+" failed - seat conflict", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrSeatOutOfRange),
		errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, usecase.ErrUsernameTaken):
		log.Warn(operation+" failed - invalid input", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - bad credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
