package roomstate

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/models"
)

// ErrInvalidMonth is returned for a month outside 1..12 or a non-positive year
var ErrInvalidMonth = errors.New("invalid calendar month")

// BuildMonth assembles the day-by-day availability of roomID for one month.
//
// A reservation in pending, confirmed or checked_in covering a day
// (check_in <= d < check_out) makes it reserved or occupied; checked_in wins
// when several cover, otherwise the earliest check-in. Without a reservation a
// schedule covering the day (start <= d < end) sets its type, earliest start
// first. Everything else is available.
func BuildMonth(roomID uuid.UUID, year int, month time.Month, reservations []models.Reservation, schedules []models.RoomSchedule) (models.RoomCalendar, error) {
	if err := CheckMonth(year, month); err != nil {
		return models.RoomCalendar{}, err
	}

	var roomReservations []*models.Reservation
	for i := range reservations {
		r := &reservations[i]
		if r.RoomID == roomID && r.Status.IsActive() {
			roomReservations = append(roomReservations, r)
		}
	}
	sortByEarliestCheckIn(roomReservations)

	var roomSchedules []*models.RoomSchedule
	for i := range schedules {
		s := &schedules[i]
		if s.RoomID == roomID && s.Type.IsValid() {
			roomSchedules = append(roomSchedules, s)
		}
	}
	sortSchedules(roomSchedules)

	first := models.NewDate(year, month, 1)
	days := daysIn(year, month)

	cal := models.RoomCalendar{
		RoomID: roomID,
		Year:   year,
		Month:  int(month),
		Days:   make([]models.CalendarDay, 0, days),
	}
	for i := 0; i < days; i++ {
		cal.Days = append(cal.Days, dayStatus(first.AddDays(i), roomReservations, roomSchedules))
	}
	cal.OccupiedDates = OccupiedDates(cal)

	return cal, nil
}

func dayStatus(d models.Date, reservations []*models.Reservation, schedules []*models.RoomSchedule) models.CalendarDay {
	day := models.CalendarDay{Date: d, Status: StatusAvailable}

	var winner *models.Reservation
	for _, r := range reservations {
		if !r.Covers(d) {
			continue
		}
		if r.Status == models.ReservationStatusCheckedIn {
			winner = r
			break
		}
		if winner == nil {
			winner = r
		}
	}
	if winner != nil {
		id := winner.ID
		day.ReservationID = &id
		if winner.Status == models.ReservationStatusCheckedIn {
			day.Status = StatusOccupied
		} else {
			day.Status = StatusReserved
		}
		return day
	}

	for _, s := range schedules {
		if s.Covers(d) {
			id := s.ID
			day.ScheduleID = &id
			day.Status = Status(s.Type)
			return day
		}
	}

	return day
}

// CheckMonth rejects months outside January..December and non-positive years
func CheckMonth(year int, month time.Month) error {
	if year <= 0 || month < time.January || month > time.December {
		return fmt.Errorf("%w: %d-%02d", ErrInvalidMonth, year, int(month))
	}
	return nil
}

// OccupiedDates lists the reserved or occupied days of a calendar as YYYY-MM-DD
func OccupiedDates(cal models.RoomCalendar) []string {
	out := []string{}
	for _, day := range cal.Days {
		if day.Status.Blocks() {
			out = append(out, day.Date.String())
		}
	}
	return out
}

// StayConflicts returns the blocked days inside [checkIn, checkOut) across the given calendars
func StayConflicts(calendars []models.RoomCalendar, checkIn, checkOut models.Date) []string {
	var out []string
	for _, cal := range calendars {
		for _, day := range cal.Days {
			if day.Status.Blocks() && !day.Date.Before(checkIn) && day.Date.Before(checkOut) {
				out = append(out, day.Date.String())
			}
		}
	}
	return out
}

// MonthsBetween lists the (year, month) pairs touched by the nights of [checkIn, checkOut)
func MonthsBetween(checkIn, checkOut models.Date) [][2]int {
	var out [][2]int
	if !checkIn.Before(checkOut) {
		return out
	}
	last := checkOut.AddDays(-1)
	y, m := checkIn.Year, checkIn.Month
	for {
		out = append(out, [2]int{y, int(m)})
		if y == last.Year && m == last.Month {
			return out
		}
		m++
		if m > time.December {
			m = time.January
			y++
		}
	}
}

func sortSchedules(ss []*models.RoomSchedule) {
	sort.SliceStable(ss, func(i, j int) bool {
		a, b := ss[i], ss[j]
		if c := a.StartDate.Compare(b.StartDate); c != 0 {
			return c < 0
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
