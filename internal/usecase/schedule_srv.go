package usecase

import (
	"context"
	"fmt"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/request"
	"bus-booking/internal/dto/response"
	"bus-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ScheduleService interface {
	CreateSchedule(ctx context.Context, req *request.CreateScheduleRequest) (*response.ScheduleResponse, error)
	ListSchedules(ctx context.Context) ([]response.ScheduleResponse, error)
}

type scheduleService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewScheduleService(repo *repository.Repository, log *zap.Logger) ScheduleService {
	return &scheduleService{
		repo: repo,
		log:  log.With(zap.String("service", "schedule")),
	}
}

func (s *scheduleService) CreateSchedule(ctx context.Context, req *request.CreateScheduleRequest) (*response.ScheduleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create schedule validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	busID, err := uuid.Parse(req.BusID)
	if err != nil {
		return nil, fmt.Errorf("%w: bus_id is not a valid UUID", ErrInvalidInput)
	}

	if !req.ArrivalTime.After(req.DepartureTime) {
		return nil, fmt.Errorf("%w: arrival_time must be after departure_time", ErrInvalidInput)
	}

	bus, err := s.repo.Bus.FindByID(ctx, busID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if bus == nil {
		return nil, ErrBusNotFound
	}

	schedule := &entity.Schedule{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		BusID:         busID,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		StartingPoint: req.StartingPoint,
		Destination:   req.Destination,
	}

	if err := s.repo.Schedule.Create(ctx, schedule); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s.log.Info("Schedule created",
		zap.String("schedule_id", schedule.ID.String()),
		zap.String("bus_id", busID.String()),
		zap.String("route", schedule.StartingPoint+" - "+schedule.Destination),
	)

	resp := response.ScheduleToResponse(schedule)
	return &resp, nil
}

func (s *scheduleService) ListSchedules(ctx context.Context) ([]response.ScheduleResponse, error) {
	schedules, err := s.repo.Schedule.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	out := make([]response.ScheduleResponse, len(schedules))
	for i, schedule := range schedules {
		out[i] = response.ScheduleToResponse(schedule)
	}

	return out, nil
}
