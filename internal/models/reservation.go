package models

import (
	"time"

	"github.com/google/uuid"
)

// ReservationStatus represents the lifecycle status of a reservation
type ReservationStatus string

const (
	ReservationStatusPending    ReservationStatus = "pending"
	ReservationStatusConfirmed  ReservationStatus = "confirmed"
	ReservationStatusCheckedIn  ReservationStatus = "checked_in"
	ReservationStatusCheckedOut ReservationStatus = "checked_out"
	ReservationStatusCancelled  ReservationStatus = "cancelled"
)

// ActiveReservationStatuses are the statuses that can hold a room
var ActiveReservationStatuses = []ReservationStatus{
	ReservationStatusPending,
	ReservationStatusConfirmed,
	ReservationStatusCheckedIn,
}

// IsActive reports whether the status still holds the room
func (s ReservationStatus) IsActive() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCheckedIn:
		return true
	}
	return false
}

// IsBooked reports whether the reservation is sold but not yet checked in
func (s ReservationStatus) IsBooked() bool {
	return s == ReservationStatusPending || s == ReservationStatusConfirmed
}

// PaymentStatus represents the payment status of a reservation
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// Reservation represents a guest stay in one room.
// Times of day are stored as "HH:MM" or "HH:MM:SS" and may be absent.
type Reservation struct {
	ID               uuid.UUID          `json:"id" db:"id"`
	BusinessID       uuid.UUID          `json:"business_id" db:"business_id"`
	RoomID           uuid.UUID          `json:"room_id" db:"room_id"`
	Status           ReservationStatus  `json:"status" db:"status"`
	CheckInDate      Date               `json:"check_in_date" db:"check_in_date"`
	CheckInTime      *string            `json:"check_in_time,omitempty" db:"check_in_time"`
	CheckOutDate     Date               `json:"check_out_date" db:"check_out_date"`
	CheckOutTime     *string            `json:"check_out_time,omitempty" db:"check_out_time"`
	GuestCount       int                `json:"guest_count" db:"guest_count"`
	PrimaryGuestName string             `json:"primary_guest_name" db:"primary_guest_name"`
	PaymentStatus    PaymentStatus      `json:"payment_status" db:"payment_status"`
	CheckedInAt      *time.Time         `json:"checked_in_at,omitempty" db:"checked_in_at"`
	CheckedOutAt     *time.Time         `json:"checked_out_at,omitempty" db:"checked_out_at"`
	CreatedAt        time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at" db:"updated_at"`
	Guests           []ReservationGuest `json:"guests,omitempty" db:"-"`
}

// Covers reports whether the stay occupies night d, i.e. check_in <= d < check_out
func (r *Reservation) Covers(d Date) bool {
	return !d.Before(r.CheckInDate) && d.Before(r.CheckOutDate)
}

// ReservationGuest is one guest of a reservation, ordered by Position
type ReservationGuest struct {
	ID            uuid.UUID `json:"id" db:"id"`
	ReservationID uuid.UUID `json:"reservation_id" db:"reservation_id"`
	Position      int       `json:"position" db:"position"`
	Name          string    `json:"name" db:"name"`
	Document      string    `json:"document" db:"document"`
	Arrived       bool      `json:"arrived" db:"arrived"`
}

// GuestArrival marks whether a guest of the reservation showed up at check-in
type GuestArrival struct {
	GuestID uuid.UUID `json:"guest_id" binding:"required"`
	Arrived bool      `json:"arrived"`
}

// CheckInRequest represents the front-desk check-in request
type CheckInRequest struct {
	Guests []GuestArrival `json:"guests" binding:"required,min=1,dive"`
}

// ArrivedCount returns how many guests are flagged as arrived
func (r *CheckInRequest) ArrivedCount() int {
	n := 0
	for _, g := range r.Guests {
		if g.Arrived {
			n++
		}
	}
	return n
}
