package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/models"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/roomstate"
)

// RoomStatusService derives live room status from the current rooms and reservations.
// Nothing is cached: every call reads a fresh snapshot.
type RoomStatusService struct {
	businesses   BusinessStore
	rooms        RoomStore
	reservations ReservationStore
	engine       *roomstate.Engine
	audit        Auditor
	logger       *logrus.Logger
}

// NewRoomStatusService creates a new room status service
func NewRoomStatusService(
	businesses BusinessStore,
	rooms RoomStore,
	reservations ReservationStore,
	engine *roomstate.Engine,
	audit Auditor,
	logger *logrus.Logger,
) *RoomStatusService {
	return &RoomStatusService{
		businesses:   businesses,
		rooms:        rooms,
		reservations: reservations,
		engine:       engine,
		audit:        audit,
		logger:       logger,
	}
}

// Board returns the live status of every room of a business
func (s *RoomStatusService) Board(ctx context.Context, businessID uuid.UUID) (*models.RoomBoard, error) {
	business, err := s.businesses.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	rooms, err := s.rooms.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}

	return s.derive(ctx, business, rooms)
}

// RoomStatus returns the live status of a single room
func (s *RoomStatusService) RoomStatus(ctx context.Context, businessID, roomID uuid.UUID) (*models.RoomStatus, error) {
	business, err := s.businesses.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	room, err := s.rooms.GetByID(ctx, businessID, roomID)
	if err != nil {
		return nil, err
	}

	board, err := s.derive(ctx, business, []models.Room{*room})
	if err != nil {
		return nil, err
	}
	if len(board.Rooms) != 1 {
		return nil, fmt.Errorf("derived %d statuses for room %s", len(board.Rooms), roomID)
	}

	return &board.Rooms[0], nil
}

// BusinessDate returns today's date in the business's own time zone
func (s *RoomStatusService) BusinessDate(ctx context.Context, businessID uuid.UUID) (models.Date, error) {
	business, err := s.businesses.GetByID(ctx, businessID)
	if err != nil {
		return models.Date{}, err
	}
	return s.engine.Resolver().BusinessDate(business.Country), nil
}

func (s *RoomStatusService) derive(ctx context.Context, business *models.Business, rooms []models.Room) (*models.RoomBoard, error) {
	reservations, err := s.reservations.ListActiveByBusiness(ctx, business.ID)
	if err != nil {
		return nil, err
	}

	d := s.engine.Derive(roomstate.Snapshot{
		Country:      business.Country,
		Rooms:        rooms,
		Reservations: reservations,
	})

	s.reportAnomalies(ctx, business.ID, d.Anomalies)

	return &models.RoomBoard{
		BusinessID:   business.ID,
		BusinessDate: d.BusinessDate,
		Rooms:        d.Rooms,
	}, nil
}

// reportAnomalies logs and audits integrity warnings. Failures here never fail the read.
func (s *RoomStatusService) reportAnomalies(ctx context.Context, businessID uuid.UUID, anomalies []roomstate.Anomaly) {
	for _, a := range anomalies {
		s.logger.WithFields(logrus.Fields{
			"business_id":     businessID,
			"room_id":         a.RoomID,
			"code":            a.Code,
			"reservation_ids": a.ReservationIDs,
			"winner_id":       a.WinnerID,
		}).Warn("Room reservation integrity warning")

		if s.audit == nil {
			continue
		}
		if err := s.audit.LogIntegrityWarning(ctx, businessID, a); err != nil {
			s.logger.WithError(err).WithField("room_id", a.RoomID).Error("Failed to audit integrity warning")
		}
	}
}
