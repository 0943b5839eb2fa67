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

const roomColumns = `
	id, business_id, number, floor, capacity, type, status, price,
	bed_count, bed_type, created_at, updated_at, deleted_at
`

// RoomRepository handles room database operations
type RoomRepository struct {
	db *sqlx.DB
}

// NewRoomRepository creates a new room repository
func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// ListByBusiness retrieves all non-deleted rooms of a business ordered by floor and number
func (r *RoomRepository) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]models.Room, error) {
	var rooms []models.Room

	query := `SELECT ` + roomColumns + `
		FROM rooms
		WHERE business_id = $1 AND deleted_at IS NULL
		ORDER BY floor, number
	`

	if err := r.db.SelectContext(ctx, &rooms, query, businessID); err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	return rooms, nil
}

// GetByID retrieves a non-deleted room of a business
func (r *RoomRepository) GetByID(ctx context.Context, businessID, roomID uuid.UUID) (*models.Room, error) {
	var room models.Room

	query := `SELECT ` + roomColumns + `
		FROM rooms
		WHERE id = $1 AND business_id = $2 AND deleted_at IS NULL
	`

	err := r.db.GetContext(ctx, &room, query, roomID, businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	return &room, nil
}

// Create inserts a room; ID and timestamps are filled in on success
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	if room.ID == uuid.Nil {
		room.ID = uuid.New()
	}
	if room.Status == "" {
		room.Status = models.RoomStatusActive
	}

	query := `
		INSERT INTO rooms (
			id, business_id, number, floor, capacity, type, status, price,
			bed_count, bed_type, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		room.ID, room.BusinessID, room.Number, room.Floor, room.Capacity,
		room.Type, room.Status, room.Price, room.BedCount, room.BedType,
	).Scan(&room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	return nil
}

// Update overwrites the editable fields of a room
func (r *RoomRepository) Update(ctx context.Context, room *models.Room) error {
	query := `
		UPDATE rooms
		SET number = $1, floor = $2, capacity = $3, type = $4, status = $5,
			price = $6, bed_count = $7, bed_type = $8, updated_at = NOW()
		WHERE id = $9 AND business_id = $10 AND deleted_at IS NULL
		RETURNING updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		room.Number, room.Floor, room.Capacity, room.Type, room.Status,
		room.Price, room.BedCount, room.BedType, room.ID, room.BusinessID,
	).Scan(&room.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update room: %w", err)
	}

	return nil
}

// UpdateStatus sets the declared status of a room
func (r *RoomRepository) UpdateStatus(ctx context.Context, businessID, roomID uuid.UUID, status models.RoomDeclaredStatus) error {
	query := `
		UPDATE rooms
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND business_id = $3 AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, status, roomID, businessID)
	if err != nil {
		return fmt.Errorf("failed to update room status: %w", err)
	}

	return expectAffected(result)
}

// SoftDelete hides a room that no active reservation references. The check and
// the update are one statement, so a reservation sold concurrently blocks the delete.
func (r *RoomRepository) SoftDelete(ctx context.Context, businessID, roomID uuid.UUID) error {
	query := `
		UPDATE rooms AS rm
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE rm.id = $1 AND rm.business_id = $2 AND rm.deleted_at IS NULL
		  AND NOT EXISTS (
			SELECT 1 FROM reservations r
			WHERE r.room_id = rm.id AND r.status = ANY($3)
		  )
	`

	result, err := r.db.ExecContext(ctx, query, roomID, businessID, pq.Array(activeStatuses()))
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}

	var exists bool
	existsQuery := `SELECT EXISTS (SELECT 1 FROM rooms WHERE id = $1 AND business_id = $2 AND deleted_at IS NULL)`
	if err := r.db.GetContext(ctx, &exists, existsQuery, roomID, businessID); err != nil {
		return fmt.Errorf("failed to check room: %w", err)
	}
	if exists {
		return ErrRoomInUse
	}
	return ErrNotFound
}

func expectAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func activeStatuses() []string {
	out := make([]string, len(models.ActiveReservationStatuses))
	for i, s := range models.ActiveReservationStatuses {
		out[i] = string(s)
	}
	return out
}
