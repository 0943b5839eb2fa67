package models

import "github.com/google/uuid"

// LiveStatus is the closed set of derived room states
type LiveStatus string

const (
	LiveStatusAvailable   LiveStatus = "available"
	LiveStatusOccupied    LiveStatus = "occupied"
	LiveStatusReserved    LiveStatus = "reserved"
	LiveStatusOverdue     LiveStatus = "overdue"
	LiveStatusMaintenance LiveStatus = "maintenance"
	LiveStatusInactive    LiveStatus = "inactive"
)

// Valid reports whether s belongs to the closed set
func (s LiveStatus) Valid() bool {
	switch s {
	case LiveStatusAvailable, LiveStatusOccupied, LiveStatusReserved,
		LiveStatusOverdue, LiveStatusMaintenance, LiveStatusInactive:
		return true
	}
	return false
}

// Blocks reports whether a calendar day with this status cannot be sold
func (s LiveStatus) Blocks() bool {
	return s == LiveStatusReserved || s == LiveStatusOccupied
}

// RoomStatus is the derived live status of a room. It is recomputed on every read and never stored.
type RoomStatus struct {
	RoomID                     uuid.UUID  `json:"room_id"`
	RoomNumber                 string     `json:"room_number"`
	Floor                      int        `json:"floor"`
	Status                     LiveStatus `json:"status"`
	IsCheckInOverdue           bool       `json:"is_checkin_overdue"`
	OverdueHours               int        `json:"overdue_hours"`
	OverdueMinutes             int        `json:"overdue_minutes"`
	AuthoritativeReservationID *uuid.UUID `json:"authoritative_reservation_id,omitempty"`
	PrimaryGuestName           *string    `json:"primary_guest_name,omitempty"`
	Warnings                   []string   `json:"warnings,omitempty"`
}

// RoomBoard is the live status of every room of a business at one instant
type RoomBoard struct {
	BusinessID   uuid.UUID    `json:"business_id"`
	BusinessDate Date         `json:"business_date"`
	Rooms        []RoomStatus `json:"rooms"`
}

// CalendarDay is the availability of one room on one day
type CalendarDay struct {
	Date          Date       `json:"date"`
	Status        LiveStatus `json:"status"`
	ReservationID *uuid.UUID `json:"reservation_id,omitempty"`
	ScheduleID    *uuid.UUID `json:"schedule_id,omitempty"`
}

// RoomCalendar is the day-by-day availability of a room across one month
type RoomCalendar struct {
	RoomID        uuid.UUID     `json:"room_id"`
	Year          int           `json:"year"`
	Month         int           `json:"month"`
	Days          []CalendarDay `json:"days"`
	OccupiedDates []string      `json:"occupied_dates"`
}

// StayCheck is the result of testing a date range against a room calendar
type StayCheck struct {
	RoomID    uuid.UUID `json:"room_id"`
	CheckIn   Date      `json:"check_in"`
	CheckOut  Date      `json:"check_out"`
	Available bool      `json:"available"`
	Conflicts []string  `json:"conflicts,omitempty"`
}
