package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/models"
)

const scheduleColumns = `
	id, business_id, room_id, schedule_type, start_date, end_date,
	reason, expired_at, reverted_at, created_at
`

// ScheduleRepository handles planned maintenance/inactive windows
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// Create inserts a schedule; ID and created_at are filled in on success
func (r *ScheduleRepository) Create(ctx context.Context, s *models.RoomSchedule) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	query := `
		INSERT INTO room_schedules (
			id, business_id, room_id, schedule_type, start_date, end_date, reason, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		s.ID, s.BusinessID, s.RoomID, s.Type, s.StartDate, s.EndDate, s.Reason,
	).Scan(&s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create room schedule: %w", err)
	}

	return nil
}

// GetByID retrieves a schedule of a business
func (r *ScheduleRepository) GetByID(ctx context.Context, businessID, scheduleID uuid.UUID) (*models.RoomSchedule, error) {
	var s models.RoomSchedule

	query := `SELECT ` + scheduleColumns + `
		FROM room_schedules
		WHERE id = $1 AND business_id = $2
	`

	err := r.db.GetContext(ctx, &s, query, scheduleID, businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get room schedule: %w", err)
	}

	return &s, nil
}

// ListForRoomBetween retrieves non-reverted schedules of a room intersecting [from, to)
func (r *ScheduleRepository) ListForRoomBetween(ctx context.Context, businessID, roomID uuid.UUID, from, to models.Date) ([]models.RoomSchedule, error) {
	var schedules []models.RoomSchedule

	query := `SELECT ` + scheduleColumns + `
		FROM room_schedules
		WHERE business_id = $1 AND room_id = $2 AND reverted_at IS NULL
		  AND start_date < $3 AND end_date > $4
		ORDER BY start_date, created_at
	`

	if err := r.db.SelectContext(ctx, &schedules, query, businessID, roomID, to, from); err != nil {
		return nil, fmt.Errorf("failed to list room schedules: %w", err)
	}

	return schedules, nil
}

// ListBetween retrieves non-reverted schedules of a business intersecting [from, to)
func (r *ScheduleRepository) ListBetween(ctx context.Context, businessID uuid.UUID, from, to models.Date) ([]models.RoomSchedule, error) {
	var schedules []models.RoomSchedule

	query := `SELECT ` + scheduleColumns + `
		FROM room_schedules
		WHERE business_id = $1 AND reverted_at IS NULL
		  AND start_date < $2 AND end_date > $3
		ORDER BY room_id, start_date
	`

	if err := r.db.SelectContext(ctx, &schedules, query, businessID, to, from); err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}

	return schedules, nil
}

// ActivateDue gives every room with a schedule running on date the schedule's type as declared status
func (r *ScheduleRepository) ActivateDue(ctx context.Context, businessID uuid.UUID, date models.Date) (int64, error) {
	query := `
		UPDATE rooms AS rm
		SET status = s.schedule_type, updated_at = NOW()
		FROM room_schedules s
		WHERE s.room_id = rm.id AND s.business_id = $1
		  AND s.start_date <= $2 AND s.end_date > $2
		  AND s.expired_at IS NULL AND s.reverted_at IS NULL
		  AND rm.deleted_at IS NULL AND rm.status <> s.schedule_type
	`

	result, err := r.db.ExecContext(ctx, query, businessID, date)
	if err != nil {
		return 0, fmt.Errorf("failed to activate schedules: %w", err)
	}
	return result.RowsAffected()
}

// ExpireDue closes schedules with end_date <= date and returns their rooms to active
// unless another running schedule still covers them. Returns the number of expired schedules.
func (r *ScheduleRepository) ExpireDue(ctx context.Context, businessID uuid.UUID, date models.Date) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var roomIDs []uuid.UUID
	expireQuery := `
		UPDATE room_schedules
		SET expired_at = NOW()
		WHERE business_id = $1 AND end_date <= $2
		  AND expired_at IS NULL AND reverted_at IS NULL
		RETURNING room_id
	`
	if err := tx.SelectContext(ctx, &roomIDs, expireQuery, businessID, date); err != nil {
		return 0, fmt.Errorf("failed to expire schedules: %w", err)
	}

	if len(roomIDs) > 0 {
		if err := releaseRooms(ctx, tx, roomIDs, date); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit schedule expiry: %w", err)
	}

	return int64(len(roomIDs)), nil
}

// Revert cancels a running or future schedule and returns its room to active
func (r *ScheduleRepository) Revert(ctx context.Context, businessID, scheduleID uuid.UUID, date models.Date) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var (
		roomID    uuid.UUID
		startDate models.Date
	)
	query := `
		UPDATE room_schedules
		SET reverted_at = NOW()
		WHERE id = $1 AND business_id = $2
		  AND expired_at IS NULL AND reverted_at IS NULL
		RETURNING room_id, start_date
	`
	err = tx.QueryRowxContext(ctx, query, scheduleID, businessID).Scan(&roomID, &startDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInvalidTransition
		}
		return fmt.Errorf("failed to revert schedule: %w", err)
	}

	// a schedule that has not started yet never touched the room status
	if !startDate.After(date) {
		if err := releaseRooms(ctx, tx, []uuid.UUID{roomID}, date); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schedule revert: %w", err)
	}

	return nil
}

func releaseRooms(ctx context.Context, tx *sqlx.Tx, roomIDs []uuid.UUID, date models.Date) error {
	ids := make([]string, len(roomIDs))
	for i, id := range roomIDs {
		ids[i] = id.String()
	}

	query := `
		UPDATE rooms AS rm
		SET status = 'active', updated_at = NOW()
		WHERE rm.id = ANY($1::uuid[])
		  AND rm.status IN ('maintenance', 'inactive')
		  AND NOT EXISTS (
			SELECT 1 FROM room_schedules s
			WHERE s.room_id = rm.id AND s.expired_at IS NULL AND s.reverted_at IS NULL
			  AND s.start_date <= $2 AND s.end_date > $2
		  )
	`

	if _, err := tx.ExecContext(ctx, query, pq.Array(ids), date); err != nil {
		return fmt.Errorf("failed to release rooms: %w", err)
	}
	return nil
}
