package response

import (
	"time"

	"bus-booking/internal/data/entity"
)

// SeatAvailability is one entry of the seat map for a schedule. The map is a
// display snapshot; holding a seat happens only through POST /api/bookings.
type SeatAvailability struct {
	SeatNumber  int  `json:"seat_number"`
	IsAvailable bool `json:"is_available"`
}

type BookingResponse struct {
	ID         string    `json:"id"`
	UserName   string    `json:"user_name"`
	BusID      string    `json:"bus_id"`
	ScheduleID string    `json:"schedule_id"`
	SeatNumber int       `json:"seat_number"`
	CreatedAt  time.Time `json:"created_at"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:         booking.ID.String(),
		UserName:   booking.UserName,
		BusID:      booking.BusID.String(),
		ScheduleID: booking.ScheduleID.String(),
		SeatNumber: booking.SeatNumber,
		CreatedAt:  booking.CreatedAt,
	}
}
