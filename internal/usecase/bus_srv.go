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

type BusService interface {
	CreateBus(ctx context.Context, req *request.CreateBusRequest) (*response.BusResponse, error)
	ListBuses(ctx context.Context) ([]response.BusResponse, error)
}

type busService struct {
	repo repository.BusRepository
	log  *zap.Logger
}

func NewBusService(repo repository.BusRepository, log *zap.Logger) BusService {
	return &busService{
		repo: repo,
		log:  log.With(zap.String("service", "bus")),
	}
}

func (s *busService) CreateBus(ctx context.Context, req *request.CreateBusRequest) (*response.BusResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create bus validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	bus := &entity.Bus{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name:       req.Name,
		TotalSeats: req.TotalSeats,
	}

	if err := s.repo.Create(ctx, bus); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s.log.Info("Bus created",
		zap.String("bus_id", bus.ID.String()),
		zap.String("name", bus.Name),
		zap.Int("total_seats", bus.TotalSeats),
	)

	resp := response.BusToResponse(bus)
	return &resp, nil
}

func (s *busService) ListBuses(ctx context.Context) ([]response.BusResponse, error) {
	buses, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	out := make([]response.BusResponse, len(buses))
	for i, bus := range buses {
		out[i] = response.BusToResponse(bus)
	}

	return out, nil
}
