package roomstate

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/models"
)

// Status is the closed set of live room states
type Status = models.LiveStatus

const (
	StatusAvailable   = models.LiveStatusAvailable
	StatusOccupied    = models.LiveStatusOccupied
	StatusReserved    = models.LiveStatusReserved
	StatusOverdue     = models.LiveStatusOverdue
	StatusMaintenance = models.LiveStatusMaintenance
	StatusInactive    = models.LiveStatusInactive
)

// Warning codes attached to a derived status
const (
	WarningMultipleCheckedIn   = "multiple_checked_in"
	WarningOverlappingBookings = "overlapping_reservations"
)

// Compose applies the fixed precedence: check-out overdue, occupied, reserved,
// declared maintenance, declared inactive, available. A cleaning room with no
// reservation derives to available.
func Compose(room models.Room, c Classification, checkout Overdue, checkInOverdue bool) models.RoomStatus {
	rs := models.RoomStatus{
		RoomID:     room.ID,
		RoomNumber: room.Number,
		Floor:      room.Floor,
	}

	switch {
	case checkout.Overdue:
		rs.Status = StatusOverdue
		rs.OverdueHours = checkout.Hours
		rs.OverdueMinutes = checkout.Minutes
	case c.IsOccupied:
		rs.Status = StatusOccupied
	case c.IsReserved:
		rs.Status = StatusReserved
		rs.IsCheckInOverdue = checkInOverdue
	case room.Status == models.RoomStatusMaintenance:
		rs.Status = StatusMaintenance
	case room.Status == models.RoomStatusInactive:
		rs.Status = StatusInactive
	default:
		rs.Status = StatusAvailable
	}

	if c.Reservation != nil {
		id := c.Reservation.ID
		rs.AuthoritativeReservationID = &id
		if name := strings.TrimSpace(c.Reservation.PrimaryGuestName); name != "" {
			rs.PrimaryGuestName = &name
		}
	}
	if c.HasCheckedInAnomaly() {
		rs.Warnings = append(rs.Warnings, WarningMultipleCheckedIn)
	}
	if c.HasOverlapAnomaly() {
		rs.Warnings = append(rs.Warnings, WarningOverlappingBookings)
	}

	return rs
}

// Snapshot is an immutable view of one business's rooms and active reservations
type Snapshot struct {
	Country      string
	Rooms        []models.Room
	Reservations []models.Reservation
}

// Anomaly is a data-integrity problem detected while deriving a room's status
type Anomaly struct {
	RoomID         uuid.UUID
	Code           string
	ReservationIDs []uuid.UUID
	WinnerID       uuid.UUID
}

func (a Anomaly) String() string {
	return fmt.Sprintf("room %s: %s (%d reservations, winner %s)", a.RoomID, a.Code, len(a.ReservationIDs), a.WinnerID)
}

// Derivation is the output of one Derive call
type Derivation struct {
	BusinessDate models.Date
	Now          time.Time
	Rooms        []models.RoomStatus
	Anomalies    []Anomaly
}

// Engine derives live room status from snapshots
type Engine struct {
	resolver *Resolver
	defaults Defaults
}

// NewEngine creates an engine with the standard time-of-day defaults
func NewEngine(resolver *Resolver) *Engine {
	return &Engine{resolver: resolver, defaults: StandardDefaults}
}

// WithDefaults returns a copy of the engine using the given time-of-day fallbacks
func (e *Engine) WithDefaults(d Defaults) *Engine {
	return &Engine{resolver: e.resolver, defaults: d.normalized()}
}

// Resolver exposes the engine's timezone resolver
func (e *Engine) Resolver() *Resolver {
	return e.resolver
}

// Derive computes one RoomStatus per room, ordered by floor then room number.
// "Now" is read once so every room is evaluated at the same instant.
func (e *Engine) Derive(s Snapshot) Derivation {
	now := e.resolver.BusinessDateTime(s.Country)
	return e.DeriveAt(s, now)
}

// DeriveAt is Derive with an explicit business-local instant
func (e *Engine) DeriveAt(s Snapshot, now time.Time) Derivation {
	today := models.DateOf(now)
	out := Derivation{
		BusinessDate: today,
		Now:          now,
		Rooms:        make([]models.RoomStatus, 0, len(s.Rooms)),
	}

	for _, room := range s.Rooms {
		c := Classify(room.ID, today, s.Reservations)
		checkout := e.defaults.CheckOutOverdue(c, now)
		checkInOverdue := e.defaults.CheckInOverdue(c, today, now)
		out.Rooms = append(out.Rooms, Compose(room, c, checkout, checkInOverdue))
		out.Anomalies = append(out.Anomalies, anomalies(room.ID, c)...)
	}

	sort.SliceStable(out.Rooms, func(i, j int) bool {
		a, b := out.Rooms[i], out.Rooms[j]
		if a.Floor != b.Floor {
			return a.Floor < b.Floor
		}
		return a.RoomNumber < b.RoomNumber
	})
	return out
}

func anomalies(roomID uuid.UUID, c Classification) []Anomaly {
	var out []Anomaly
	if c.HasCheckedInAnomaly() {
		out = append(out, Anomaly{RoomID: roomID, Code: WarningMultipleCheckedIn, ReservationIDs: c.Candidates, WinnerID: c.Reservation.ID})
	}
	if c.HasOverlapAnomaly() {
		out = append(out, Anomaly{RoomID: roomID, Code: WarningOverlappingBookings, ReservationIDs: c.Candidates, WinnerID: c.Reservation.ID})
	}
	return out
}
