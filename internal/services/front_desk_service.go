package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/models"
)

// FrontDeskService performs guest check-in, check-out, cancellation and payment
type FrontDeskService struct {
	reservations ReservationStore
	audit        Auditor
	logger       *logrus.Logger
}

// NewFrontDeskService creates a new front desk service
func NewFrontDeskService(reservations ReservationStore, audit Auditor, logger *logrus.Logger) *FrontDeskService {
	return &FrontDeskService{reservations: reservations, audit: audit, logger: logger}
}

// CheckIn marks the listed guests' arrival and moves the reservation to checked_in.
// At least one guest must have arrived. The store refuses a second concurrent
// check-in for the same reservation or room.
func (s *FrontDeskService) CheckIn(ctx context.Context, actor Actor, reservationID uuid.UUID, req models.CheckInRequest) (*models.Reservation, error) {
	arrived := req.ArrivedCount()
	if arrived == 0 {
		return nil, ErrNoGuestsArrived
	}

	reservation, err := s.reservations.GetByID(ctx, actor.BusinessID, reservationID)
	if err != nil {
		return nil, err
	}
	if !reservation.Status.IsBooked() {
		return nil, fmt.Errorf("%w: %s", ErrReservationClosed, reservation.Status)
	}

	if err := s.reservations.CheckIn(ctx, actor.BusinessID, reservationID, req.Guests); err != nil {
		return nil, err
	}

	updated, err := s.reservations.GetByID(ctx, actor.BusinessID, reservationID)
	if err != nil {
		return nil, err
	}

	log := s.logger.WithFields(logrus.Fields{
		"business_id":    actor.BusinessID,
		"reservation_id": reservationID,
		"room_id":        updated.RoomID,
		"arrived_guests": arrived,
		"staff_id":       actor.StaffID,
	})
	log.Info("Guest checked in")

	if s.audit != nil {
		if err := s.audit.LogCheckIn(ctx, actor, updated, arrived); err != nil {
			log.WithError(err).Error("Failed to audit check-in")
		}
	}

	return updated, nil
}

// CheckOut closes a checked-in reservation
func (s *FrontDeskService) CheckOut(ctx context.Context, actor Actor, reservationID uuid.UUID) (*models.Reservation, error) {
	return s.transition(ctx, actor, reservationID, ActionCheckOut, s.reservations.CheckOut)
}

// Cancel releases a reservation that has not been checked in
func (s *FrontDeskService) Cancel(ctx context.Context, actor Actor, reservationID uuid.UUID) (*models.Reservation, error) {
	return s.transition(ctx, actor, reservationID, ActionCancel, s.reservations.Cancel)
}

// MarkPaid records payment of a reservation
func (s *FrontDeskService) MarkPaid(ctx context.Context, actor Actor, reservationID uuid.UUID) (*models.Reservation, error) {
	return s.transition(ctx, actor, reservationID, ActionMarkPaid, s.reservations.MarkPaid)
}

// transition applies a single-statement status change, then reloads and audits the reservation
func (s *FrontDeskService) transition(
	ctx context.Context,
	actor Actor,
	reservationID uuid.UUID,
	action string,
	apply func(ctx context.Context, businessID, reservationID uuid.UUID) error,
) (*models.Reservation, error) {
	if err := apply(ctx, actor.BusinessID, reservationID); err != nil {
		return nil, err
	}

	updated, err := s.reservations.GetByID(ctx, actor.BusinessID, reservationID)
	if err != nil {
		return nil, err
	}

	log := s.logger.WithFields(logrus.Fields{
		"business_id":    actor.BusinessID,
		"reservation_id": reservationID,
		"room_id":        updated.RoomID,
		"staff_id":       actor.StaffID,
		"action":         action,
	})
	log.Info("Reservation updated")

	if s.audit == nil {
		return updated, nil
	}
	if action == ActionCheckOut {
		err = s.audit.LogCheckOut(ctx, actor, updated)
	} else {
		err = s.audit.LogReservationChange(ctx, actor, action, updated)
	}
	if err != nil {
		log.WithError(err).Error("Failed to audit reservation change")
	}

	return updated, nil
}
