package wire

import (
	"bus-booking/internal/adaptor"
	"bus-booking/pkg/middleware"
	"bus-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/seats/{scheduleID} - Seat map for a schedule (display snapshot)
	r.Get("/api/seats/{scheduleID}", bookingHandler.GetSeatAvailability)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		// POST /api/bookings - Claim one seat (authenticated users)
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/bookings - The caller's bookings
		r.Get("/api/bookings", bookingHandler.GetUserBookings)

		// GET /api/bookings/{id}/ticket - Printable PDF ticket
		r.Get("/api/bookings/{id}/ticket", bookingHandler.GetBookingTicket)
	})
}
