package entity

import (
	"github.com/google/uuid"
)

// Booking is one claimed seat on one schedule. BusID is denormalized from
// the schedule at insert time so ticket queries skip a join.
type Booking struct {
	Base
	UserName   string    `db:"user_name"`
	BusID      uuid.UUID `db:"bus_id"`
	ScheduleID uuid.UUID `db:"schedule_id"`
	SeatNumber int       `db:"seat_number"`
}
