package repository

import (
	"context"
	"fmt"

	"bus-booking/internal/data/entity"
	"bus-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ScheduleRepository interface {
	Create(ctx context.Context, schedule *entity.Schedule) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Schedule, error)
	FindAll(ctx context.Context) ([]*entity.Schedule, error)
}

type scheduleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewScheduleRepository(db database.PgxIface, log *zap.Logger) ScheduleRepository {
	return &scheduleRepository{
		db:  db,
		log: log.With(zap.String("repository", "schedule")),
	}
}

func (r *scheduleRepository) Create(ctx context.Context, schedule *entity.Schedule) error {
	query := `
		INSERT INTO schedules (id, bus_id, departure_time, arrival_time, starting_point, destination, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		schedule.ID,
		schedule.BusID,
		schedule.DepartureTime,
		schedule.ArrivalTime,
		schedule.StartingPoint,
		schedule.Destination,
		schedule.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create schedule",
			zap.Error(err),
			zap.String("bus_id", schedule.BusID.String()),
			zap.Time("departure_time", schedule.DepartureTime),
		)
		return fmt.Errorf("create schedule for bus %s: %w", schedule.BusID.String(), err)
	}

	return nil
}

func (r *scheduleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Schedule, error) {
	query := `
		SELECT id, bus_id, departure_time, arrival_time, starting_point, destination, created_at
		FROM schedules
		WHERE id = $1
	`

	var schedule entity.Schedule
	err := r.db.QueryRow(ctx, query, id).Scan(
		&schedule.ID,
		&schedule.BusID,
		&schedule.DepartureTime,
		&schedule.ArrivalTime,
		&schedule.StartingPoint,
		&schedule.Destination,
		&schedule.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find schedule by ID",
			zap.Error(err),
			zap.String("schedule_id", id.String()),
		)
		return nil, fmt.Errorf("find schedule by ID %s: %w", id.String(), err)
	}

	return &schedule, nil
}

func (r *scheduleRepository) FindAll(ctx context.Context) ([]*entity.Schedule, error) {
	query := `
		SELECT id, bus_id, departure_time, arrival_time, starting_point, destination, created_at
		FROM schedules
		ORDER BY departure_time
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list schedules", zap.Error(err))
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	var schedules []*entity.Schedule
	for rows.Next() {
		var schedule entity.Schedule
		err := rows.Scan(
			&schedule.ID,
			&schedule.BusID,
			&schedule.DepartureTime,
			&schedule.ArrivalTime,
			&schedule.StartingPoint,
			&schedule.Destination,
			&schedule.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan schedule row", zap.Error(err))
			return nil, fmt.Errorf("scan schedule row: %w", err)
		}
		schedules = append(schedules, &schedule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read schedules: %w", err)
	}

	return schedules, nil
}
