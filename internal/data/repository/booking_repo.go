package repository

import (
	"context"
	"errors"
	"fmt"

	"bus-booking/internal/data/entity"
	"bus-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrSeatTaken is returned by CreateIfSeatFree when another booking already
// holds the (schedule_id, seat_number) key. The unique index in the database
// decides this, so two racing inserts can never both succeed.
var ErrSeatTaken = errors.New("seat already booked")

const uniqueViolation = "23505" // SQLSTATE

type BookingRepository interface {
	// CreateIfSeatFree inserts the booking in a single statement; the seat
	// uniqueness check happens inside the commit, not before it.
	CreateIfSeatFree(ctx context.Context, booking *entity.Booking) error
	ListBookedSeats(ctx context.Context, scheduleID uuid.UUID) ([]int, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUserName(ctx context.Context, userName string) ([]*entity.Booking, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) CreateIfSeatFree(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, user_name, bus_id, schedule_id, seat_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.UserName,
		booking.BusID,
		booking.ScheduleID,
		booking.SeatNumber,
		booking.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			r.log.Warn("Seat claim lost the race",
				zap.String("schedule_id", booking.ScheduleID.String()),
				zap.Int("seat_number", booking.SeatNumber),
			)
			return ErrSeatTaken
		}

		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("schedule_id", booking.ScheduleID.String()),
			zap.Int("seat_number", booking.SeatNumber),
		)
		return fmt.Errorf("create booking for schedule %s seat %d: %w",
			booking.ScheduleID.String(), booking.SeatNumber, err)
	}

	return nil
}

func (r *bookingRepository) ListBookedSeats(ctx context.Context, scheduleID uuid.UUID) ([]int, error) {
	query := `SELECT seat_number FROM bookings WHERE schedule_id = $1 ORDER BY seat_number`

	rows, err := r.db.Query(ctx, query, scheduleID)
	if err != nil {
		r.log.Error("Failed to list booked seats",
			zap.Error(err),
			zap.String("schedule_id", scheduleID.String()),
		)
		return nil, fmt.Errorf("list booked seats for schedule %s: %w", scheduleID.String(), err)
	}
	defer rows.Close()

	var seats []int
	for rows.Next() {
		var seat int
		if err := rows.Scan(&seat); err != nil {
			r.log.Error("Failed to scan seat number", zap.Error(err))
			return nil, fmt.Errorf("scan seat number: %w", err)
		}
		seats = append(seats, seat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read booked seats: %w", err)
	}

	return seats, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT id, user_name, bus_id, schedule_id, seat_number, created_at
		FROM bookings
		WHERE id = $1
	`

	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.UserName,
		&booking.BusID,
		&booking.ScheduleID,
		&booking.SeatNumber,
		&booking.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindByUserName(ctx context.Context, userName string) ([]*entity.Booking, error) {
	query := `
		SELECT id, user_name, bus_id, schedule_id, seat_number, created_at
		FROM bookings
		WHERE user_name = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userName)
	if err != nil {
		r.log.Error("Failed to find bookings by user",
			zap.Error(err),
			zap.String("user_name", userName),
		)
		return nil, fmt.Errorf("find bookings for user %s: %w", userName, err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.UserName,
			&booking.BusID,
			&booking.ScheduleID,
			&booking.SeatNumber,
			&booking.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read bookings: %w", err)
	}

	return bookings, nil
}
