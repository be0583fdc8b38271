package usecase

import (
	"bus-booking/internal/data/repository"
	"bus-booking/internal/events"
	"bus-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	Bus      BusService
	Schedule ScheduleService
	Booking  BookingService
}

func NewService(repo *repository.Repository, publisher events.Publisher, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:     NewAuthService(repo.User, config, log),
		Bus:      NewBusService(repo.Bus, log),
		Schedule: NewScheduleService(repo, log),
		Booking:  NewBookingService(repo, publisher, log),
	}
}
