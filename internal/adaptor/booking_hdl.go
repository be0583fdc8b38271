package adaptor

import (
	"encoding/json"
	"net/http"

	"bus-booking/internal/dto/request"
	"bus-booking/internal/usecase"
	"bus-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// GetSeatAvailability handles GET /api/seats/{scheduleID} (public)
func (h *BookingHandler) GetSeatAvailability(w http.ResponseWriter, r *http.Request) {
	scheduleID := chi.URLParam(r, "scheduleID")
	if scheduleID == "" {
		utils.ResponseBadRequest(w, "Schedule ID is required", nil)
		return
	}

	seats, err := h.service.GetSeatAvailability(r.Context(), scheduleID)
	if err != nil {
		respondServiceError(w, h.log, err, "get seat availability")
		return
	}

	utils.ResponseSuccess(w, seats)
}

// CreateBooking handles POST /api/bookings (protected)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, booking)
}

// GetUserBookings handles GET /api/bookings (protected)
func (h *BookingHandler) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	userName, ok := utils.GetUsernameFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookings, err := h.service.GetUserBookings(r.Context(), userName)
	if err != nil {
		respondServiceError(w, h.log, err, "get user bookings")
		return
	}

	utils.ResponseSuccess(w, bookings)
}

// GetBookingTicket handles GET /api/bookings/{id}/ticket (protected)
func (h *BookingHandler) GetBookingTicket(w http.ResponseWriter, r *http.Request) {
	userName, ok := utils.GetUsernameFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	pdf, err := h.service.GetBookingTicket(r.Context(), bookingID, userName)
	if err != nil {
		respondServiceError(w, h.log, err, "get booking ticket")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="ticket-`+bookingID+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
