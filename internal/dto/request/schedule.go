package request

import "time"

type CreateScheduleRequest struct {
	BusID         string    `json:"bus_id" validate:"required,uuid4"`
	DepartureTime time.Time `json:"departure_time" validate:"required"`
	ArrivalTime   time.Time `json:"arrival_time" validate:"required"`
	StartingPoint string    `json:"starting_point" validate:"required"`
	Destination   string    `json:"destination" validate:"required"`
}
