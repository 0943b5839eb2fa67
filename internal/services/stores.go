package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/models"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/roomstate"
)

// Service-level validation errors, mapped to 400/409 by the handlers
var (
	ErrInvalidStay       = errors.New("check-out must be after check-in")
	ErrInvalidSchedule   = errors.New("invalid room schedule")
	ErrInvalidRoomStatus = errors.New("invalid declared room status")
	ErrNoGuestsArrived   = errors.New("at least one guest must be marked as arrived")
	ErrReservationClosed = errors.New("reservation cannot be checked in from its current status")
)

// BusinessStore resolves a business by id (the Redis-backed cache or the repository)
type BusinessStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Business, error)
}

// BusinessLister lists every business for sweeps
type BusinessLister interface {
	ListAll(ctx context.Context) ([]models.Business, error)
}

// RoomStore is the room persistence used by the services
type RoomStore interface {
	ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]models.Room, error)
	GetByID(ctx context.Context, businessID, roomID uuid.UUID) (*models.Room, error)
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, room *models.Room) error
	UpdateStatus(ctx context.Context, businessID, roomID uuid.UUID, status models.RoomDeclaredStatus) error
	SoftDelete(ctx context.Context, businessID, roomID uuid.UUID) error
}

// ReservationStore is the reservation persistence used by the services
type ReservationStore interface {
	ListActiveByBusiness(ctx context.Context, businessID uuid.UUID) ([]models.Reservation, error)
	ListForRoomBetween(ctx context.Context, businessID, roomID uuid.UUID, from, to models.Date) ([]models.Reservation, error)
	ListBetween(ctx context.Context, businessID uuid.UUID, from, to models.Date) ([]models.Reservation, error)
	GetByID(ctx context.Context, businessID, reservationID uuid.UUID) (*models.Reservation, error)
	CheckIn(ctx context.Context, businessID, reservationID uuid.UUID, arrivals []models.GuestArrival) error
	CheckOut(ctx context.Context, businessID, reservationID uuid.UUID) error
	Cancel(ctx context.Context, businessID, reservationID uuid.UUID) error
	MarkPaid(ctx context.Context, businessID, reservationID uuid.UUID) error
}

// ScheduleStore is the maintenance/inactive schedule persistence used by the services
type ScheduleStore interface {
	Create(ctx context.Context, s *models.RoomSchedule) error
	GetByID(ctx context.Context, businessID, scheduleID uuid.UUID) (*models.RoomSchedule, error)
	ListForRoomBetween(ctx context.Context, businessID, roomID uuid.UUID, from, to models.Date) ([]models.RoomSchedule, error)
	ListBetween(ctx context.Context, businessID uuid.UUID, from, to models.Date) ([]models.RoomSchedule, error)
	ActivateDue(ctx context.Context, businessID uuid.UUID, date models.Date) (int64, error)
	ExpireDue(ctx context.Context, businessID uuid.UUID, date models.Date) (int64, error)
	Revert(ctx context.Context, businessID, scheduleID uuid.UUID, date models.Date) error
}

// Auditor records front desk actions and integrity warnings
type Auditor interface {
	LogCheckIn(ctx context.Context, actor Actor, reservation *models.Reservation, arrived int) error
	LogCheckOut(ctx context.Context, actor Actor, reservation *models.Reservation) error
	LogReservationChange(ctx context.Context, actor Actor, action string, reservation *models.Reservation) error
	LogRoomChange(ctx context.Context, actor Actor, action string, room *models.Room) error
	LogScheduleChange(ctx context.Context, actor Actor, action string, schedule *models.RoomSchedule) error
	LogIntegrityWarning(ctx context.Context, businessID uuid.UUID, anomaly roomstate.Anomaly) error
}

// Actor is the staff member behind a write, with the terminal they used
type Actor struct {
	StaffID    uuid.UUID
	BusinessID uuid.UUID
	IPAddress  string
	UserAgent  string
}
