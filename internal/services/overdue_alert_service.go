package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/models"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/pkg/notify"
)

// OverdueNotifier delivers overdue check-out alerts
type OverdueNotifier interface {
	Enabled() bool
	NotifyOverdue(ctx context.Context, alert notify.OverdueAlert) error
}

// BoardReader derives the live room board of a business
type BoardReader interface {
	Board(ctx context.Context, businessID uuid.UUID) (*models.RoomBoard, error)
}

// AlertSummary reports one overdue sweep
type AlertSummary struct {
	Businesses   int `json:"businesses"`
	Notified     int `json:"notified"`
	OverdueRooms int `json:"overdue_rooms"`
	Failed       int `json:"failed"`
}

// OverdueAlertService posts the rooms whose guests stayed past check-out
type OverdueAlertService struct {
	lister   BusinessLister
	boards   BoardReader
	notifier OverdueNotifier
	logger   *logrus.Logger
}

// NewOverdueAlertService creates a new overdue alert service
func NewOverdueAlertService(lister BusinessLister, boards BoardReader, notifier OverdueNotifier, logger *logrus.Logger) *OverdueAlertService {
	return &OverdueAlertService{lister: lister, boards: boards, notifier: notifier, logger: logger}
}

// Run derives every business board and sends one alert per business with overdue rooms
func (s *OverdueAlertService) Run(ctx context.Context) (AlertSummary, error) {
	if !s.notifier.Enabled() {
		s.logger.Debug("Overdue webhook not configured, skipping sweep")
		return AlertSummary{}, nil
	}

	businesses, err := s.lister.ListAll(ctx)
	if err != nil {
		return AlertSummary{}, err
	}

	summary := AlertSummary{Businesses: len(businesses)}
	var errs []error
	for _, b := range businesses {
		log := s.logger.WithField("business_id", b.ID)

		board, err := s.boards.Board(ctx, b.ID)
		if err != nil {
			summary.Failed++
			errs = append(errs, fmt.Errorf("business %s: %w", b.ID, err))
			log.WithError(err).Error("Failed to derive room board")
			continue
		}

		alert := overdueAlert(b, board)
		if len(alert.Rooms) == 0 {
			continue
		}

		if err := s.notifier.NotifyOverdue(ctx, alert); err != nil {
			summary.Failed++
			errs = append(errs, fmt.Errorf("business %s: %w", b.ID, err))
			log.WithError(err).Error("Failed to send overdue alert")
			continue
		}

		summary.Notified++
		summary.OverdueRooms += len(alert.Rooms)
		log.WithField("rooms", len(alert.Rooms)).Info("Overdue check-out alert sent")
	}

	return summary, errors.Join(errs...)
}

func overdueAlert(b models.Business, board *models.RoomBoard) notify.OverdueAlert {
	alert := notify.OverdueAlert{
		BusinessID:   b.ID,
		BusinessName: b.Name,
		BusinessDate: board.BusinessDate.String(),
		GeneratedAt:  time.Now().UTC(),
	}
	for _, r := range board.Rooms {
		if r.Status != models.LiveStatusOverdue {
			continue
		}
		alert.Rooms = append(alert.Rooms, notify.OverdueRoom{
			RoomID:         r.RoomID,
			RoomNumber:     r.RoomNumber,
			ReservationID:  r.AuthoritativeReservationID,
			GuestName:      r.PrimaryGuestName,
			OverdueHours:   r.OverdueHours,
			OverdueMinutes: r.OverdueMinutes,
		})
	}
	return alert
}
