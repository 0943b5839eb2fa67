package database

import "errors"

var (
	// ErrNotFound indicates the row does not exist for this business
	ErrNotFound = errors.New("record not found")

	// ErrCheckInConflict indicates the reservation is no longer pending/confirmed
	// or its room already holds a checked-in guest
	ErrCheckInConflict = errors.New("reservation cannot be checked in")

	// ErrInvalidTransition indicates a status change not allowed from the current status
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrRoomInUse indicates a room still referenced by active reservations
	ErrRoomInUse = errors.New("room has active reservations")
)
