package models

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleType is the kind of planned unavailability
type ScheduleType string

const (
	ScheduleTypeMaintenance ScheduleType = "maintenance"
	ScheduleTypeInactive    ScheduleType = "inactive"
)

// IsValid reports whether t is a known schedule type
func (t ScheduleType) IsValid() bool {
	return t == ScheduleTypeMaintenance || t == ScheduleTypeInactive
}

// RoomSchedule is a planned maintenance or inactive window for a room.
// EndDate is exclusive. ExpiredAt is set once the window has run its course,
// RevertedAt when staff cancel it early.
type RoomSchedule struct {
	ID         uuid.UUID    `json:"id" db:"id"`
	BusinessID uuid.UUID    `json:"business_id" db:"business_id"`
	RoomID     uuid.UUID    `json:"room_id" db:"room_id"`
	Type       ScheduleType `json:"schedule_type" db:"schedule_type"`
	StartDate  Date         `json:"start_date" db:"start_date"`
	EndDate    Date         `json:"end_date" db:"end_date"`
	Reason     *string      `json:"reason,omitempty" db:"reason"`
	ExpiredAt  *time.Time   `json:"expired_at,omitempty" db:"expired_at"`
	RevertedAt *time.Time   `json:"reverted_at,omitempty" db:"reverted_at"`
	CreatedAt  time.Time    `json:"created_at" db:"created_at"`
}

// Covers reports whether the window includes day d
func (s *RoomSchedule) Covers(d Date) bool {
	return !d.Before(s.StartDate) && d.Before(s.EndDate)
}

// CreateScheduleRequest represents the request to plan a room window.
// The dates are checked by ScheduleService.Create.
type CreateScheduleRequest struct {
	RoomID    uuid.UUID    `json:"room_id" binding:"required"`
	Type      ScheduleType `json:"schedule_type" binding:"required"`
	StartDate Date         `json:"start_date"`
	EndDate   Date         `json:"end_date"`
	Reason    *string      `json:"reason,omitempty"`
}
