package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/request"
	"bus-booking/internal/dto/response"
	"bus-booking/internal/events"
	"bus-booking/pkg/ticket"
	"bus-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// GetSeatAvailability returns the seat map 1..total_seats for a schedule.
	// It is a display snapshot, not a hold.
	GetSeatAvailability(ctx context.Context, scheduleID string) ([]response.SeatAvailability, error)

	// CreateBooking claims one seat. The claim is atomic: the store's unique
	// key on (schedule_id, seat_number) decides races, first commit wins.
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)

	GetUserBookings(ctx context.Context, userName string) ([]response.BookingResponse, error)
	GetBookingTicket(ctx context.Context, bookingID, userName string) ([]byte, error)
}

type bookingService struct {
	repo      *repository.Repository
	publisher events.Publisher
	log       *zap.Logger
}

func NewBookingService(repo *repository.Repository, publisher events.Publisher, log *zap.Logger) BookingService {
	return &bookingService{
		repo:      repo,
		publisher: publisher,
		log:       log.With(zap.String("service", "booking")),
	}
}

// resolveCapacity loads the schedule and its owning bus. Capacity is read
// from the bus at call time, never cached on the schedule.
func (s *bookingService) resolveCapacity(ctx context.Context, scheduleID uuid.UUID) (*entity.Schedule, *entity.Bus, error) {
	schedule, err := s.repo.Schedule.FindByID(ctx, scheduleID)
	if err != nil {
		s.log.Error("Failed to resolve schedule", zap.Error(err), zap.String("schedule_id", scheduleID.String()))
		return nil, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if schedule == nil {
		return nil, nil, ErrScheduleNotFound
	}

	bus, err := s.repo.Bus.FindByID(ctx, schedule.BusID)
	if err != nil {
		s.log.Error("Failed to resolve bus", zap.Error(err), zap.String("bus_id", schedule.BusID.String()))
		return nil, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if bus == nil {
		// Dangling bus reference on an existing schedule: upstream data
		// integrity problem, not recoverable here.
		s.log.Error("Schedule references missing bus",
			zap.String("schedule_id", scheduleID.String()),
			zap.String("bus_id", schedule.BusID.String()),
		)
		return nil, nil, ErrBusNotFound
	}

	return schedule, bus, nil
}

func (s *bookingService) GetSeatAvailability(ctx context.Context, scheduleID string) ([]response.SeatAvailability, error) {
	id, err := uuid.Parse(scheduleID)
	if err != nil {
		return nil, ErrScheduleNotFound
	}

	_, bus, err := s.resolveCapacity(ctx, id)
	if err != nil {
		return nil, err
	}

	bookedSeats, err := s.repo.Booking.ListBookedSeats(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	booked := make(map[int]bool, len(bookedSeats))
	for _, seat := range bookedSeats {
		booked[seat] = true
	}

	seatMap := make([]response.SeatAvailability, bus.TotalSeats)
	for i := 1; i <= bus.TotalSeats; i++ {
		seatMap[i-1] = response.SeatAvailability{
			SeatNumber:  i,
			IsAvailable: !booked[i],
		}
	}

	return seatMap, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	scheduleID, err := uuid.Parse(req.ScheduleID)
	if err != nil {
		return nil, fmt.Errorf("%w: schedule_id is not a valid UUID", ErrInvalidInput)
	}

	schedule, bus, err := s.resolveCapacity(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	if req.SeatNumber < 1 || req.SeatNumber > bus.TotalSeats {
		return nil, fmt.Errorf("%w: seat %d not in 1..%d", ErrSeatOutOfRange, req.SeatNumber, bus.TotalSeats)
	}

	// No pre-read of booked seats here. The insert itself is the check: if
	// the seat is taken the store reports the unique violation and nothing
	// is written, so a retried or timed-out attempt leaves no partial state.
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserName:   req.UserName,
		BusID:      schedule.BusID,
		ScheduleID: scheduleID,
		SeatNumber: req.SeatNumber,
	}

	if err := s.repo.Booking.CreateIfSeatFree(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrSeatTaken) {
			return nil, ErrSeatTaken
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s.log.Info("Seat booked",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_name", booking.UserName),
		zap.String("schedule_id", scheduleID.String()),
		zap.Int("seat_number", booking.SeatNumber),
	)

	if s.publisher != nil {
		event := events.BookingCreated{
			BookingID:  booking.ID.String(),
			UserName:   booking.UserName,
			BusID:      booking.BusID.String(),
			ScheduleID: booking.ScheduleID.String(),
			SeatNumber: booking.SeatNumber,
			CreatedAt:  booking.CreatedAt,
		}
		if err := s.publisher.PublishBookingCreated(ctx, event); err != nil {
			// The booking is committed; the event is advisory only.
			s.log.Warn("Failed to publish booking event",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
			)
		}
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userName string) ([]response.BookingResponse, error) {
	bookings, err := s.repo.Booking.FindByUserName(ctx, userName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	out := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		out[i] = response.BookingToResponse(booking)
	}

	return out, nil
}

func (s *bookingService) GetBookingTicket(ctx context.Context, bookingID, userName string) ([]byte, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	// A rider only sees their own tickets; a missing booking and someone
	// else's booking look the same to the caller.
	if booking == nil || booking.UserName != userName {
		return nil, ErrBookingNotFound
	}

	schedule, bus, err := s.resolveCapacity(ctx, booking.ScheduleID)
	if err != nil {
		return nil, err
	}

	pdf, err := ticket.Render(booking, schedule, bus)
	if err != nil {
		s.log.Error("Failed to render ticket",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return pdf, nil
}
