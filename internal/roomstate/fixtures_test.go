package roomstate

import (
	"time"

	"github.com/google/uuid"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/models"
)

func santiago() *time.Location {
	loc, err := time.LoadLocation("America/Santiago")
	if err != nil {
		panic(err)
	}
	return loc
}

// at returns a Santiago wall-clock instant on 2025-03-10
func at(hour, minute int) time.Time {
	return time.Date(2025, time.March, 10, hour, minute, 0, 0, santiago())
}

var today = models.NewDate(2025, time.March, 10)

func strPtr(s string) *string { return &s }

func newRoom(number string, status models.RoomDeclaredStatus) models.Room {
	return models.Room{
		ID:       uuid.New(),
		Number:   number,
		Floor:    1,
		Capacity: 2,
		Type:     models.RoomTypeDouble,
		Status:   status,
	}
}

func newReservation(roomID uuid.UUID, status models.ReservationStatus, checkIn, checkOut models.Date) models.Reservation {
	return models.Reservation{
		ID:               uuid.New(),
		RoomID:           roomID,
		Status:           status,
		CheckInDate:      checkIn,
		CheckOutDate:     checkOut,
		GuestCount:       2,
		PrimaryGuestName: "Ana Pérez",
		PaymentStatus:    models.PaymentStatusPending,
		CreatedAt:        time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC),
	}
}
