package entity

import (
	"time"

	"github.com/google/uuid"
)

type Schedule struct {
	Base
	BusID         uuid.UUID `db:"bus_id"`
	DepartureTime time.Time `db:"departure_time"`
	ArrivalTime   time.Time `db:"arrival_time"`
	StartingPoint string    `db:"starting_point"`
	Destination   string    `db:"destination"`
}
