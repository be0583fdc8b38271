package response

import (
	"time"

	"bus-booking/internal/data/entity"
)

type BusResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	TotalSeats int       `json:"total_seats"`
	CreatedAt  time.Time `json:"created_at"`
}

func BusToResponse(bus *entity.Bus) BusResponse {
	return BusResponse{
		ID:         bus.ID.String(),
		Name:       bus.Name,
		TotalSeats: bus.TotalSeats,
		CreatedAt:  bus.CreatedAt,
	}
}
