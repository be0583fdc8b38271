package response

import (
	"time"

	"bus-booking/internal/data/entity"
)

type ScheduleResponse struct {
	ID            string    `json:"id"`
	BusID         string    `json:"bus_id"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	StartingPoint string    `json:"starting_point"`
	Destination   string    `json:"destination"`
	CreatedAt     time.Time `json:"created_at"`
}

func ScheduleToResponse(schedule *entity.Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:            schedule.ID.String(),
		BusID:         schedule.BusID.String(),
		DepartureTime: schedule.DepartureTime,
		ArrivalTime:   schedule.ArrivalTime,
		StartingPoint: schedule.StartingPoint,
		Destination:   schedule.Destination,
		CreatedAt:     schedule.CreatedAt,
	}
}
