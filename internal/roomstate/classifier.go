package roomstate

import (
	"sort"

	"github.com/google/uuid"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/models"
)

// Classification is the authoritative reservation of a room on a business date
type Classification struct {
	Reservation *models.Reservation
	IsOccupied  bool
	IsReserved  bool

	// CheckedInCount is the number of checked_in reservations seen for the room
	CheckedInCount int
	// OverlappingCount is the number of pending/confirmed reservations whose
	// [check_in, check_out) range covers the date. A stay ending on the date
	// is still a candidate but does not count, so same-day turnover is not an overlap.
	OverlappingCount int

	// Candidates holds the IDs that competed for the winning slot
	Candidates []uuid.UUID
}

// HasCheckedInAnomaly reports more than one checked_in reservation for the room
func (c Classification) HasCheckedInAnomaly() bool {
	return c.CheckedInCount > 1
}

// HasOverlapAnomaly reports overlapping pending/confirmed reservations when no guest is in the room
func (c Classification) HasOverlapAnomaly() bool {
	return c.CheckedInCount == 0 && c.OverlappingCount > 1
}

// Classify picks the authoritative reservation for roomID on businessDate.
//
// A checked_in reservation always wins; if several exist the most recently
// created one is chosen (ties broken by the greatest ID). Otherwise the
// pending/confirmed reservation with check_in_date <= date <= check_out_date
// and the earliest check-in wins (ties: earliest created, then smallest ID).
// Reservations in any other status are ignored.
func Classify(roomID uuid.UUID, businessDate models.Date, reservations []models.Reservation) Classification {
	var checkedIn, booked []*models.Reservation
	overlapping := 0

	for i := range reservations {
		r := &reservations[i]
		if r.RoomID != roomID {
			continue
		}
		switch {
		case r.Status == models.ReservationStatusCheckedIn:
			checkedIn = append(checkedIn, r)
		case r.Status.IsBooked():
			if !businessDate.Before(r.CheckInDate) && !businessDate.After(r.CheckOutDate) {
				booked = append(booked, r)
				if r.Covers(businessDate) {
					overlapping++
				}
			}
		}
	}

	result := Classification{
		CheckedInCount:   len(checkedIn),
		OverlappingCount: overlapping,
	}

	if len(checkedIn) > 0 {
		sort.SliceStable(checkedIn, func(i, j int) bool {
			a, b := checkedIn[i], checkedIn[j]
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.ID.String() > b.ID.String()
		})
		result.Reservation = checkedIn[0]
		result.IsOccupied = true
		result.Candidates = ids(checkedIn)
		return result
	}

	if len(booked) > 0 {
		sortByEarliestCheckIn(booked)
		result.Reservation = booked[0]
		result.IsReserved = true
		result.Candidates = ids(booked)
	}

	return result
}

func sortByEarliestCheckIn(rs []*models.Reservation) {
	sort.SliceStable(rs, func(i, j int) bool {
		a, b := rs[i], rs[j]
		if c := a.CheckInDate.Compare(b.CheckInDate); c != 0 {
			return c < 0
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})
}

func ids(rs []*models.Reservation) []uuid.UUID {
	out := make([]uuid.UUID, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}
