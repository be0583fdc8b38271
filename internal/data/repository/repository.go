package repository

import (
	"bus-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User     UserRepository
	Bus      BusRepository
	Schedule ScheduleRepository
	Booking  BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(db, log),
		Bus:      NewBusRepository(db, log),
		Schedule: NewScheduleRepository(db, log),
		Booking:  NewBookingRepository(db, log),
	}
}
