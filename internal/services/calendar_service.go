package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/models"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/roomstate"
)

// CalendarService builds per-day availability calendars
type CalendarService struct {
	rooms        RoomStore
	reservations ReservationStore
	schedules    ScheduleStore
	logger       *logrus.Logger
}

// NewCalendarService creates a new calendar service
func NewCalendarService(rooms RoomStore, reservations ReservationStore, schedules ScheduleStore, logger *logrus.Logger) *CalendarService {
	return &CalendarService{
		rooms:        rooms,
		reservations: reservations,
		schedules:    schedules,
		logger:       logger,
	}
}

func monthRange(year int, month time.Month) (from, to models.Date) {
	from = models.NewDate(year, month, 1)
	return from, models.NewDate(year, month+1, 1)
}

// Month returns the calendar of one room for one month
func (s *CalendarService) Month(ctx context.Context, businessID, roomID uuid.UUID, year int, month time.Month) (*models.RoomCalendar, error) {
	if err := roomstate.CheckMonth(year, month); err != nil {
		return nil, err
	}

	if _, err := s.rooms.GetByID(ctx, businessID, roomID); err != nil {
		return nil, err
	}

	return s.month(ctx, businessID, roomID, year, month)
}

func (s *CalendarService) month(ctx context.Context, businessID, roomID uuid.UUID, year int, month time.Month) (*models.RoomCalendar, error) {
	from, to := monthRange(year, month)

	reservations, err := s.reservations.ListForRoomBetween(ctx, businessID, roomID, from, to)
	if err != nil {
		return nil, err
	}

	schedules, err := s.schedules.ListForRoomBetween(ctx, businessID, roomID, from, to)
	if err != nil {
		return nil, err
	}

	cal, err := roomstate.BuildMonth(roomID, year, month, reservations, schedules)
	if err != nil {
		return nil, err
	}

	return &cal, nil
}

// CheckStay reports whether every night of [checkIn, checkOut) is free of reservations
func (s *CalendarService) CheckStay(ctx context.Context, businessID, roomID uuid.UUID, checkIn, checkOut models.Date) (*models.StayCheck, error) {
	if checkIn.IsZero() || checkOut.IsZero() || !checkIn.Before(checkOut) {
		return nil, ErrInvalidStay
	}

	if _, err := s.rooms.GetByID(ctx, businessID, roomID); err != nil {
		return nil, err
	}

	var calendars []models.RoomCalendar
	for _, ym := range roomstate.MonthsBetween(checkIn, checkOut) {
		cal, err := s.month(ctx, businessID, roomID, ym[0], time.Month(ym[1]))
		if err != nil {
			return nil, fmt.Errorf("failed to build calendar %d-%02d: %w", ym[0], ym[1], err)
		}
		calendars = append(calendars, *cal)
	}

	conflicts := roomstate.StayConflicts(calendars, checkIn, checkOut)
	return &models.StayCheck{
		RoomID:    roomID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	}, nil
}

// ExportMonth renders every room of a business for one month as an xlsx workbook
func (s *CalendarService) ExportMonth(ctx context.Context, businessID uuid.UUID, year int, month time.Month) ([]byte, error) {
	if err := roomstate.CheckMonth(year, month); err != nil {
		return nil, err
	}

	rooms, err := s.rooms.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}

	from, to := monthRange(year, month)
	reservations, err := s.reservations.ListBetween(ctx, businessID, from, to)
	if err != nil {
		return nil, err
	}
	schedules, err := s.schedules.ListBetween(ctx, businessID, from, to)
	if err != nil {
		return nil, err
	}

	rows := make([]calendarRow, 0, len(rooms))
	for _, room := range rooms {
		cal, err := roomstate.BuildMonth(room.ID, year, month, reservations, schedules)
		if err != nil {
			return nil, err
		}
		rows = append(rows, calendarRow{Room: room, Calendar: cal})
	}

	data, err := renderCalendarWorkbook(year, month, rows)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"business_id": businessID,
		"month":       fmt.Sprintf("%04d-%02d", year, int(month)),
		"rooms":       len(rows),
		"bytes":       len(data),
	}).Info("Calendar exported")

	return data, nil
}
