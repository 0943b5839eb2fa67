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

const reservationColumns = `
	id, business_id, room_id, status, check_in_date, check_in_time,
	check_out_date, check_out_time, guest_count, primary_guest_name,
	payment_status, checked_in_at, checked_out_at, created_at, updated_at
`

// ReservationRepository handles reservation database operations
type ReservationRepository struct {
	db *sqlx.DB
}

// NewReservationRepository creates a new reservation repository
func NewReservationRepository(db *sqlx.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// ListActiveByBusiness retrieves every pending, confirmed or checked_in reservation of a business
func (r *ReservationRepository) ListActiveByBusiness(ctx context.Context, businessID uuid.UUID) ([]models.Reservation, error) {
	var reservations []models.Reservation

	query := `SELECT ` + reservationColumns + `
		FROM reservations
		WHERE business_id = $1 AND status = ANY($2)
		ORDER BY check_in_date, created_at
	`

	if err := r.db.SelectContext(ctx, &reservations, query, businessID, pq.Array(activeStatuses())); err != nil {
		return nil, fmt.Errorf("failed to list active reservations: %w", err)
	}

	return reservations, nil
}

// ListForRoomBetween retrieves active reservations of a room whose stay intersects [from, to)
func (r *ReservationRepository) ListForRoomBetween(ctx context.Context, businessID, roomID uuid.UUID, from, to models.Date) ([]models.Reservation, error) {
	var reservations []models.Reservation

	query := `SELECT ` + reservationColumns + `
		FROM reservations
		WHERE business_id = $1 AND room_id = $2 AND status = ANY($3)
		  AND check_in_date < $4 AND check_out_date > $5
		ORDER BY check_in_date, created_at
	`

	err := r.db.SelectContext(ctx, &reservations, query, businessID, roomID, pq.Array(activeStatuses()), to, from)
	if err != nil {
		return nil, fmt.Errorf("failed to list room reservations: %w", err)
	}

	return reservations, nil
}

// ListBetween retrieves active reservations of a business whose stay intersects [from, to)
func (r *ReservationRepository) ListBetween(ctx context.Context, businessID uuid.UUID, from, to models.Date) ([]models.Reservation, error) {
	var reservations []models.Reservation

	query := `SELECT ` + reservationColumns + `
		FROM reservations
		WHERE business_id = $1 AND status = ANY($2)
		  AND check_in_date < $3 AND check_out_date > $4
		ORDER BY room_id, check_in_date
	`

	err := r.db.SelectContext(ctx, &reservations, query, businessID, pq.Array(activeStatuses()), to, from)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}

	return reservations, nil
}

// GetByID retrieves a reservation of a business with its guests in order
func (r *ReservationRepository) GetByID(ctx context.Context, businessID, reservationID uuid.UUID) (*models.Reservation, error) {
	var reservation models.Reservation

	query := `SELECT ` + reservationColumns + `
		FROM reservations
		WHERE id = $1 AND business_id = $2
	`

	err := r.db.GetContext(ctx, &reservation, query, reservationID, businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}

	guests, err := r.ListGuests(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	reservation.Guests = guests

	return &reservation, nil
}

// ListGuests retrieves the guests of a reservation ordered by position
func (r *ReservationRepository) ListGuests(ctx context.Context, reservationID uuid.UUID) ([]models.ReservationGuest, error) {
	var guests []models.ReservationGuest

	query := `
		SELECT id, reservation_id, position, name, document, arrived
		FROM reservation_guests
		WHERE reservation_id = $1
		ORDER BY position
	`

	if err := r.db.SelectContext(ctx, &guests, query, reservationID); err != nil {
		return nil, fmt.Errorf("failed to list reservation guests: %w", err)
	}

	return guests, nil
}

// CheckIn moves a pending or confirmed reservation to checked_in and records which guests arrived.
//
// The status change is a single conditional UPDATE, so of two concurrent
// attempts at most one succeeds; the loser gets ErrCheckInConflict. The update
// is also refused while another reservation of the same room is checked in.
func (r *ReservationRepository) CheckIn(ctx context.Context, businessID, reservationID uuid.UUID, arrivals []models.GuestArrival) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE reservations AS r
		SET status = 'checked_in', checked_in_at = NOW(), updated_at = NOW()
		WHERE r.id = $1 AND r.business_id = $2
		  AND r.status IN ('pending', 'confirmed')
		  AND NOT EXISTS (
			SELECT 1 FROM reservations o
			WHERE o.room_id = r.room_id AND o.status = 'checked_in' AND o.id <> r.id
		  )
	`

	result, err := tx.ExecContext(ctx, query, reservationID, businessID)
	if err != nil {
		return fmt.Errorf("failed to check in reservation: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrCheckInConflict
	}

	guestQuery := `
		UPDATE reservation_guests
		SET arrived = $1
		WHERE id = $2 AND reservation_id = $3
	`
	for _, a := range arrivals {
		result, err := tx.ExecContext(ctx, guestQuery, a.Arrived, a.GuestID, reservationID)
		if err != nil {
			return fmt.Errorf("failed to update guest %s: %w", a.GuestID, err)
		}
		if n, err := result.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("guest %s does not belong to reservation: %w", a.GuestID, ErrNotFound)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit check-in: %w", err)
	}

	return nil
}

// CheckOut moves a checked_in reservation to checked_out
func (r *ReservationRepository) CheckOut(ctx context.Context, businessID, reservationID uuid.UUID) error {
	query := `
		UPDATE reservations
		SET status = 'checked_out', checked_out_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND business_id = $2 AND status = 'checked_in'
	`
	return r.transition(ctx, query, "check out", reservationID, businessID)
}

// Cancel moves a pending or confirmed reservation to cancelled
func (r *ReservationRepository) Cancel(ctx context.Context, businessID, reservationID uuid.UUID) error {
	query := `
		UPDATE reservations
		SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND business_id = $2 AND status IN ('pending', 'confirmed')
	`
	return r.transition(ctx, query, "cancel", reservationID, businessID)
}

// MarkPaid records payment of a reservation not yet paid
func (r *ReservationRepository) MarkPaid(ctx context.Context, businessID, reservationID uuid.UUID) error {
	query := `
		UPDATE reservations
		SET payment_status = 'paid', updated_at = NOW()
		WHERE id = $1 AND business_id = $2 AND payment_status <> 'paid' AND status <> 'cancelled'
	`
	return r.transition(ctx, query, "mark paid", reservationID, businessID)
}

func (r *ReservationRepository) transition(ctx context.Context, query, action string, reservationID, businessID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, query, reservationID, businessID)
	if err != nil {
		return fmt.Errorf("failed to %s reservation: %w", action, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrInvalidTransition
	}
	return nil
}
