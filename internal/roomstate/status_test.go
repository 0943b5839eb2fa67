package roomstate

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/models"
)

func TestCompose(t *testing.T) {
	tests := []struct {
		declared models.RoomDeclaredStatus
		occupied bool
		reserved bool
		checkout Overdue
		expected Status
		name     string
	}{
		{models.RoomStatusActive, true, false, Overdue{Overdue: true, Hours: 1}, StatusOverdue, "checkout overdue dominates"},
		{models.RoomStatusMaintenance, true, false, Overdue{Overdue: true}, StatusOverdue, "overdue beats declared maintenance"},
		{models.RoomStatusMaintenance, true, false, Overdue{}, StatusOccupied, "occupied beats declared maintenance"},
		{models.RoomStatusInactive, false, true, Overdue{}, StatusReserved, "reserved beats declared inactive"},
		{models.RoomStatusMaintenance, false, false, Overdue{}, StatusMaintenance, "declared maintenance"},
		{models.RoomStatusInactive, false, false, Overdue{}, StatusInactive, "declared inactive"},
		{models.RoomStatusCleaning, false, false, Overdue{}, StatusAvailable, "cleaning derives to available"},
		{models.RoomStatusActive, false, false, Overdue{}, StatusAvailable, "available"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room := newRoom("101", tt.declared)
			c := Classification{IsOccupied: tt.occupied, IsReserved: tt.reserved}
			rs := Compose(room, c, tt.checkout, false)
			assert.Equal(t, tt.expected, rs.Status)
			assert.True(t, rs.Status.Valid())
			assert.Equal(t, room.ID, rs.RoomID)
		})
	}
}

func TestEngineScenarios(t *testing.T) {
	room := newRoom("201", models.RoomStatusActive)

	derive := func(hour, minute int, reservations ...models.Reservation) models.RoomStatus {
		e := NewEngine(NewResolver(FixedClock{At: at(hour, minute)}))
		out := e.Derive(Snapshot{Country: "chile", Rooms: []models.Room{room}, Reservations: reservations})
		require.Len(t, out.Rooms, 1)
		return out.Rooms[0]
	}

	checkedIn := newReservation(room.ID, models.ReservationStatusCheckedIn, today.AddDays(-2), today)
	checkedIn.CheckOutTime = strPtr("11:00")

	confirmed := newReservation(room.ID, models.ReservationStatusConfirmed, today, today.AddDays(2))
	confirmed.CheckInTime = strPtr("15:00")

	t.Run("standard occupied, not overdue", func(t *testing.T) {
		rs := derive(9, 0, checkedIn)
		assert.Equal(t, StatusOccupied, rs.Status)
		assert.Zero(t, rs.OverdueHours)
		assert.Zero(t, rs.OverdueMinutes)
		require.NotNil(t, rs.AuthoritativeReservationID)
		assert.Equal(t, checkedIn.ID, *rs.AuthoritativeReservationID)
		require.NotNil(t, rs.PrimaryGuestName)
		assert.Equal(t, "Ana Pérez", *rs.PrimaryGuestName)
	})

	t.Run("checkout 2h10m late", func(t *testing.T) {
		rs := derive(13, 10, checkedIn)
		assert.Equal(t, StatusOverdue, rs.Status)
		assert.Equal(t, 2, rs.OverdueHours)
		assert.Equal(t, 10, rs.OverdueMinutes)
	})

	t.Run("overdue regardless of declared status", func(t *testing.T) {
		for _, declared := range []models.RoomDeclaredStatus{models.RoomStatusMaintenance, models.RoomStatusInactive, models.RoomStatusCleaning} {
			r := room
			r.Status = declared
			e := NewEngine(NewResolver(FixedClock{At: at(13, 10)}))
			out := e.Derive(Snapshot{Country: "chile", Rooms: []models.Room{r}, Reservations: []models.Reservation{checkedIn}})
			assert.Equal(t, StatusOverdue, out.Rooms[0].Status, string(declared))
		}
	})

	t.Run("reserved, check-in not yet due", func(t *testing.T) {
		rs := derive(10, 0, confirmed)
		assert.Equal(t, StatusReserved, rs.Status)
		assert.False(t, rs.IsCheckInOverdue)
	})

	t.Run("reserved, check-in overdue", func(t *testing.T) {
		rs := derive(16, 5, confirmed)
		assert.Equal(t, StatusReserved, rs.Status)
		assert.True(t, rs.IsCheckInOverdue)
	})

	t.Run("no reservations is available", func(t *testing.T) {
		rs := derive(12, 0)
		assert.Equal(t, StatusAvailable, rs.Status)
		assert.Nil(t, rs.AuthoritativeReservationID)
	})
}

func TestEngineDeterminism(t *testing.T) {
	rooms := []models.Room{
		newRoom("102", models.RoomStatusActive),
		newRoom("101", models.RoomStatusMaintenance),
	}
	rooms[1].Floor = 1
	reservations := []models.Reservation{
		newReservation(rooms[0].ID, models.ReservationStatusCheckedIn, today.AddDays(-1), today),
		newReservation(rooms[0].ID, models.ReservationStatusCheckedIn, today.AddDays(-1), today.AddDays(1)),
	}
	e := NewEngine(NewResolver(FixedClock{At: at(12, 30)}))
	snap := Snapshot{Country: "cl", Rooms: rooms, Reservations: reservations}

	first := e.Derive(snap)
	for i := 0; i < 10; i++ {
		again := e.Derive(snap)
		assert.Equal(t, first.Rooms, again.Rooms)
		assert.Equal(t, first.Anomalies, again.Anomalies)
		assert.True(t, first.Now.Equal(again.Now))
	}

	assert.Equal(t, "101", first.Rooms[0].RoomNumber)
	assert.Equal(t, today, first.BusinessDate)
	require.Len(t, first.Anomalies, 1)
	assert.Equal(t, WarningMultipleCheckedIn, first.Anomalies[0].Code)
	assert.Equal(t, rooms[0].ID, first.Anomalies[0].RoomID)
	assert.Contains(t, first.Rooms[1].Warnings, WarningMultipleCheckedIn)
}

func TestEngineOverlapWarning(t *testing.T) {
	room := newRoom("301", models.RoomStatusActive)
	a := newReservation(room.ID, models.ReservationStatusConfirmed, today.AddDays(-1), today.AddDays(2))
	b := newReservation(room.ID, models.ReservationStatusConfirmed, today, today.AddDays(1))

	e := NewEngine(NewResolver(FixedClock{At: at(9, 0)}))
	out := e.Derive(Snapshot{Country: "chile", Rooms: []models.Room{room}, Reservations: []models.Reservation{b, a}})

	require.Len(t, out.Anomalies, 1)
	assert.Equal(t, WarningOverlappingBookings, out.Anomalies[0].Code)
	assert.Equal(t, a.ID, out.Anomalies[0].WinnerID)
	assert.Equal(t, []string{WarningOverlappingBookings}, out.Rooms[0].Warnings)
	assert.NotEqual(t, uuid.Nil, out.Anomalies[0].RoomID)

	t.Run("same-day turnover", func(t *testing.T) {
		room := newRoom("302", models.RoomStatusActive)
		departing := newReservation(room.ID, models.ReservationStatusConfirmed, today.AddDays(-3), today)
		arriving := newReservation(room.ID, models.ReservationStatusConfirmed, today, today.AddDays(2))

		out := e.Derive(Snapshot{Country: "chile", Rooms: []models.Room{room}, Reservations: []models.Reservation{arriving, departing}})
		assert.Empty(t, out.Anomalies)
		assert.Empty(t, out.Rooms[0].Warnings)

		cal, err := BuildMonth(room.ID, 2025, time.March, []models.Reservation{arriving, departing}, nil)
		require.NoError(t, err)
		require.NotNil(t, cal.Days[today.Day-1].ReservationID)
		assert.Equal(t, arriving.ID, *cal.Days[today.Day-1].ReservationID)
	})
}

func TestEngineWithDefaults(t *testing.T) {
	room := newRoom("401", models.RoomStatusActive)
	res := newReservation(room.ID, models.ReservationStatusCheckedIn, today.AddDays(-1), today)

	e := NewEngine(NewResolver(FixedClock{At: at(11, 30)})).WithDefaults(Defaults{CheckInTime: "14:00", CheckOutTime: "12:00"})
	out := e.Derive(Snapshot{Country: "chile", Rooms: []models.Room{room}, Reservations: []models.Reservation{res}})
	assert.Equal(t, StatusOccupied, out.Rooms[0].Status)

	e = e.WithDefaults(Defaults{CheckOutTime: "bogus"})
	out = e.Derive(Snapshot{Country: "chile", Rooms: []models.Room{room}, Reservations: []models.Reservation{res}})
	assert.Equal(t, StatusOverdue, out.Rooms[0].Status)
}
