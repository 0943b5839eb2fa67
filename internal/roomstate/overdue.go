package roomstate

import (
	"strconv"
	"strings"
	"time"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/models"
)

// Default boundaries applied when a reservation has no time of day
const (
	DefaultCheckInTime  = "15:00"
	DefaultCheckOutTime = "11:00"
)

// clockTime is a time of day truncated to the minute
type clockTime struct {
	hour   int
	minute int
}

// ParseClock reads "HH:MM" or "HH:MM:SS" (seconds are dropped).
// Nil, empty or malformed values yield fallback, which must itself be well formed.
func ParseClock(value *string, fallback string) (hour, minute int) {
	if value != nil {
		if ct, ok := parseClock(*value); ok {
			return ct.hour, ct.minute
		}
	}
	ct, ok := parseClock(fallback)
	if !ok {
		return 0, 0
	}
	return ct.hour, ct.minute
}

// ValidClock reports whether s is a well-formed HH:MM or HH:MM:SS value
func ValidClock(s string) bool {
	_, ok := parseClock(s)
	return ok
}

func parseClock(s string) (clockTime, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return clockTime{}, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return clockTime{}, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return clockTime{}, false
	}
	if len(parts) == 3 {
		if sec, err := strconv.Atoi(parts[2]); err != nil || sec < 0 || sec > 59 {
			return clockTime{}, false
		}
	}
	return clockTime{hour: h, minute: m}, true
}

// Boundary combines a calendar day and a time of day in loc
func Boundary(d models.Date, value *string, fallback string, loc *time.Location) time.Time {
	h, m := ParseClock(value, fallback)
	return time.Date(d.Year, d.Month, d.Day, h, m, 0, 0, loc)
}

// Overdue describes how far past its check-out boundary a stay is
type Overdue struct {
	Overdue bool
	Hours   int
	Minutes int
}

// Defaults holds the time-of-day fallbacks for reservations without times
type Defaults struct {
	CheckInTime  string
	CheckOutTime string
}

// StandardDefaults are 15:00 check-in and 11:00 check-out
var StandardDefaults = Defaults{CheckInTime: DefaultCheckInTime, CheckOutTime: DefaultCheckOutTime}

func (d Defaults) normalized() Defaults {
	if !ValidClock(d.CheckInTime) {
		d.CheckInTime = DefaultCheckInTime
	}
	if !ValidClock(d.CheckOutTime) {
		d.CheckOutTime = DefaultCheckOutTime
	}
	return d
}

// CheckOutOverdue applies only to occupied rooms. The boundary is built in now's location.
func (d Defaults) CheckOutOverdue(c Classification, now time.Time) Overdue {
	if !c.IsOccupied || c.Reservation == nil {
		return Overdue{}
	}
	d = d.normalized()
	boundary := Boundary(c.Reservation.CheckOutDate, c.Reservation.CheckOutTime, d.CheckOutTime, now.Location())
	if !now.After(boundary) {
		return Overdue{}
	}
	diff := int(now.Sub(boundary) / time.Minute)
	return Overdue{Overdue: true, Hours: diff / 60, Minutes: diff % 60}
}

// CheckInOverdue applies only to reserved rooms whose check-in day has arrived
func (d Defaults) CheckInOverdue(c Classification, businessDate models.Date, now time.Time) bool {
	if !c.IsReserved || c.Reservation == nil {
		return false
	}
	if c.Reservation.CheckInDate.After(businessDate) {
		return false
	}
	d = d.normalized()
	boundary := Boundary(c.Reservation.CheckInDate, c.Reservation.CheckInTime, d.CheckInTime, now.Location())
	return now.After(boundary)
}

// CheckOutOverdue uses the standard 11:00 default
func CheckOutOverdue(c Classification, now time.Time) Overdue {
	return StandardDefaults.CheckOutOverdue(c, now)
}

// CheckInOverdue uses the standard 15:00 default
func CheckInOverdue(c Classification, businessDate models.Date, now time.Time) bool {
	return StandardDefaults.CheckInOverdue(c, businessDate, now)
}
