package services

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/database"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/models"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/roomstate"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func santiago() *time.Location {
	loc, err := time.LoadLocation("America/Santiago")
	if err != nil {
		panic(err)
	}
	return loc
}

// fixedResolver pins "now" to a Santiago wall-clock instant on 2025-03-10
func fixedResolver(hour, minute int) *roomstate.Resolver {
	return roomstate.NewResolver(roomstate.FixedClock{At: time.Date(2025, time.March, 10, hour, minute, 0, 0, santiago())})
}

var today = models.NewDate(2025, time.March, 10)

func strPtr(s string) *string { return &s }

type fakeBusinesses struct {
	byID map[uuid.UUID]models.Business
	err  error
}

func newFakeBusinesses(bs ...models.Business) *fakeBusinesses {
	f := &fakeBusinesses{byID: make(map[uuid.UUID]models.Business)}
	for _, b := range bs {
		f.byID[b.ID] = b
	}
	return f
}

func (f *fakeBusinesses) GetByID(_ context.Context, id uuid.UUID) (*models.Business, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.byID[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &b, nil
}

func (f *fakeBusinesses) ListAll(_ context.Context) ([]models.Business, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Business, 0, len(f.byID))
	for _, b := range f.byID {
		out = append(out, b)
	}
	return out, nil
}

type fakeRooms struct {
	rooms   []models.Room
	deleted []uuid.UUID
	inUse   bool
}

func (f *fakeRooms) ListByBusiness(_ context.Context, businessID uuid.UUID) ([]models.Room, error) {
	var out []models.Room
	for _, r := range f.rooms {
		if r.BusinessID == businessID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRooms) GetByID(_ context.Context, businessID, roomID uuid.UUID) (*models.Room, error) {
	for _, r := range f.rooms {
		if r.ID == roomID && r.BusinessID == businessID {
			room := r
			return &room, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeRooms) Create(_ context.Context, room *models.Room) error {
	room.ID = uuid.New()
	f.rooms = append(f.rooms, *room)
	return nil
}

func (f *fakeRooms) Update(_ context.Context, room *models.Room) error {
	for i := range f.rooms {
		if f.rooms[i].ID == room.ID {
			f.rooms[i] = *room
			return nil
		}
	}
	return database.ErrNotFound
}

func (f *fakeRooms) UpdateStatus(_ context.Context, businessID, roomID uuid.UUID, status models.RoomDeclaredStatus) error {
	for i := range f.rooms {
		if f.rooms[i].ID == roomID && f.rooms[i].BusinessID == businessID {
			f.rooms[i].Status = status
			return nil
		}
	}
	return database.ErrNotFound
}

func (f *fakeRooms) SoftDelete(_ context.Context, _, roomID uuid.UUID) error {
	if f.inUse {
		return database.ErrRoomInUse
	}
	f.deleted = append(f.deleted, roomID)
	return nil
}

type fakeReservations struct {
	mu           sync.Mutex
	reservations []models.Reservation
	checkInErr   error
	checkedIn    []models.GuestArrival
}

func (f *fakeReservations) ListActiveByBusiness(_ context.Context, businessID uuid.UUID) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reservation
	for _, r := range f.reservations {
		if r.BusinessID == businessID && r.Status.IsActive() {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReservations) ListForRoomBetween(ctx context.Context, businessID, roomID uuid.UUID, from, to models.Date) ([]models.Reservation, error) {
	all, _ := f.ListBetween(ctx, businessID, from, to)
	var out []models.Reservation
	for _, r := range all {
		if r.RoomID == roomID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReservations) ListBetween(ctx context.Context, businessID uuid.UUID, from, to models.Date) ([]models.Reservation, error) {
	active, _ := f.ListActiveByBusiness(ctx, businessID)
	var out []models.Reservation
	for _, r := range active {
		if r.CheckInDate.Before(to) && r.CheckOutDate.After(from) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReservations) GetByID(_ context.Context, businessID, reservationID uuid.UUID) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reservations {
		if r.ID == reservationID && r.BusinessID == businessID {
			res := r
			return &res, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeReservations) CheckIn(_ context.Context, businessID, reservationID uuid.UUID, arrivals []models.GuestArrival) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.checkInErr != nil {
		return f.checkInErr
	}
	for i := range f.reservations {
		r := &f.reservations[i]
		if r.ID == reservationID && r.BusinessID == businessID {
			if !r.Status.IsBooked() {
				return database.ErrCheckInConflict
			}
			r.Status = models.ReservationStatusCheckedIn
			f.checkedIn = append(f.checkedIn, arrivals...)
			return nil
		}
	}
	return database.ErrCheckInConflict
}

func (f *fakeReservations) CheckOut(_ context.Context, businessID, reservationID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.reservations {
		r := &f.reservations[i]
		if r.ID == reservationID && r.BusinessID == businessID && r.Status == models.ReservationStatusCheckedIn {
			r.Status = models.ReservationStatusCheckedOut
			return nil
		}
	}
	return database.ErrInvalidTransition
}

func (f *fakeReservations) Cancel(_ context.Context, businessID, reservationID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.reservations {
		r := &f.reservations[i]
		if r.ID == reservationID && r.BusinessID == businessID && r.Status.IsBooked() {
			r.Status = models.ReservationStatusCancelled
			return nil
		}
	}
	return database.ErrInvalidTransition
}

func (f *fakeReservations) MarkPaid(_ context.Context, businessID, reservationID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.reservations {
		r := &f.reservations[i]
		if r.ID == reservationID && r.BusinessID == businessID &&
			r.PaymentStatus != models.PaymentStatusPaid && r.Status != models.ReservationStatusCancelled {
			r.PaymentStatus = models.PaymentStatusPaid
			return nil
		}
	}
	return database.ErrInvalidTransition
}

type fakeSchedules struct {
	schedules     []models.RoomSchedule
	activatedOn   []models.Date
	expiredOn     []models.Date
	revertedOn    []models.Date
	expireErr     map[uuid.UUID]error
	expireCount   int64
	activateCount int64
}

func (f *fakeSchedules) Create(_ context.Context, s *models.RoomSchedule) error {
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	f.schedules = append(f.schedules, *s)
	return nil
}

func (f *fakeSchedules) GetByID(_ context.Context, businessID, scheduleID uuid.UUID) (*models.RoomSchedule, error) {
	for _, s := range f.schedules {
		if s.ID == scheduleID && s.BusinessID == businessID {
			out := s
			return &out, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeSchedules) ListForRoomBetween(ctx context.Context, businessID, roomID uuid.UUID, from, to models.Date) ([]models.RoomSchedule, error) {
	all, _ := f.ListBetween(ctx, businessID, from, to)
	var out []models.RoomSchedule
	for _, s := range all {
		if s.RoomID == roomID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSchedules) ListBetween(_ context.Context, businessID uuid.UUID, from, to models.Date) ([]models.RoomSchedule, error) {
	var out []models.RoomSchedule
	for _, s := range f.schedules {
		if s.BusinessID == businessID && s.RevertedAt == nil && s.StartDate.Before(to) && s.EndDate.After(from) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSchedules) ActivateDue(_ context.Context, _ uuid.UUID, date models.Date) (int64, error) {
	f.activatedOn = append(f.activatedOn, date)
	return f.activateCount, nil
}

func (f *fakeSchedules) ExpireDue(_ context.Context, businessID uuid.UUID, date models.Date) (int64, error) {
	if err := f.expireErr[businessID]; err != nil {
		return 0, err
	}
	f.expiredOn = append(f.expiredOn, date)
	return f.expireCount, nil
}

func (f *fakeSchedules) Revert(_ context.Context, businessID, scheduleID uuid.UUID, date models.Date) error {
	for i := range f.schedules {
		s := &f.schedules[i]
		if s.ID == scheduleID && s.BusinessID == businessID && s.RevertedAt == nil && s.ExpiredAt == nil {
			now := time.Now()
			s.RevertedAt = &now
			f.revertedOn = append(f.revertedOn, date)
			return nil
		}
	}
	return database.ErrInvalidTransition
}

type auditCall struct {
	Action   string
	EntityID uuid.UUID
	Arrived  int
	Anomaly  roomstate.Anomaly
}

type fakeAuditor struct {
	mu    sync.Mutex
	calls []auditCall
	err   error
}

func (f *fakeAuditor) add(c auditCall) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
	return f.err
}

func (f *fakeAuditor) LogCheckIn(_ context.Context, _ Actor, r *models.Reservation, arrived int) error {
	return f.add(auditCall{Action: ActionCheckIn, EntityID: r.ID, Arrived: arrived})
}

func (f *fakeAuditor) LogCheckOut(_ context.Context, _ Actor, r *models.Reservation) error {
	return f.add(auditCall{Action: ActionCheckOut, EntityID: r.ID})
}

func (f *fakeAuditor) LogReservationChange(_ context.Context, _ Actor, action string, r *models.Reservation) error {
	return f.add(auditCall{Action: action, EntityID: r.ID})
}

func (f *fakeAuditor) LogRoomChange(_ context.Context, _ Actor, action string, room *models.Room) error {
	return f.add(auditCall{Action: action, EntityID: room.ID})
}

func (f *fakeAuditor) LogScheduleChange(_ context.Context, _ Actor, action string, s *models.RoomSchedule) error {
	return f.add(auditCall{Action: action, EntityID: s.ID})
}

func (f *fakeAuditor) LogIntegrityWarning(_ context.Context, _ uuid.UUID, a roomstate.Anomaly) error {
	return f.add(auditCall{Action: ActionIntegrityWarning, EntityID: a.RoomID, Anomaly: a})
}

// hotel wires one business with a few rooms into fresh fakes
type hotel struct {
	business     models.Business
	businesses   *fakeBusinesses
	rooms        *fakeRooms
	reservations *fakeReservations
	schedules    *fakeSchedules
	audit        *fakeAuditor
	actor        Actor
}

func newHotel(numbers ...string) *hotel {
	b := models.Business{ID: uuid.New(), Name: "Hotel Costanera", Country: "Chile"}
	h := &hotel{
		business:     b,
		businesses:   newFakeBusinesses(b),
		rooms:        &fakeRooms{},
		reservations: &fakeReservations{},
		schedules:    &fakeSchedules{},
		audit:        &fakeAuditor{},
		actor:        Actor{StaffID: uuid.New(), BusinessID: b.ID, IPAddress: "203.0.113.7", UserAgent: "Mozilla/5.0"},
	}
	for i, n := range numbers {
		h.rooms.rooms = append(h.rooms.rooms, models.Room{
			ID:         uuid.New(),
			BusinessID: b.ID,
			Number:     n,
			Floor:      1 + i/10,
			Capacity:   2,
			Type:       models.RoomTypeDouble,
			Status:     models.RoomStatusActive,
			BedCount:   1,
			BedType:    models.BedTypeDouble,
		})
	}
	return h
}

func (h *hotel) room(i int) models.Room { return h.rooms.rooms[i] }

func (h *hotel) reserve(roomID uuid.UUID, status models.ReservationStatus, checkIn, checkOut models.Date) models.Reservation {
	r := models.Reservation{
		ID:               uuid.New(),
		BusinessID:       h.business.ID,
		RoomID:           roomID,
		Status:           status,
		CheckInDate:      checkIn,
		CheckOutDate:     checkOut,
		GuestCount:       2,
		PrimaryGuestName: "Ana Pérez",
		PaymentStatus:    models.PaymentStatusPending,
		CreatedAt:        time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC),
	}
	h.reservations.reservations = append(h.reservations.reservations, r)
	return r
}
