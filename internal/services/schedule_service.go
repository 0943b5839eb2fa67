package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/models"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/roomstate"
)

// SweepResult counts the schedule transitions applied to one business
type SweepResult struct {
	BusinessID   uuid.UUID   `json:"business_id"`
	BusinessDate models.Date `json:"business_date"`
	Expired      int64       `json:"expired"`
	Activated    int64       `json:"activated"`
}

// SweepSummary aggregates a sweep over every business
type SweepSummary struct {
	Businesses int           `json:"businesses"`
	Failed     int           `json:"failed"`
	Results    []SweepResult `json:"results"`
}

// ScheduleService plans maintenance/inactive windows and applies them to the
// declared room status as their dates arrive.
type ScheduleService struct {
	businesses BusinessStore
	lister     BusinessLister
	rooms      RoomStore
	schedules  ScheduleStore
	resolver   *roomstate.Resolver
	audit      Auditor
	logger     *logrus.Logger
}

// NewScheduleService creates a new schedule service
func NewScheduleService(
	businesses BusinessStore,
	lister BusinessLister,
	rooms RoomStore,
	schedules ScheduleStore,
	resolver *roomstate.Resolver,
	audit Auditor,
	logger *logrus.Logger,
) *ScheduleService {
	return &ScheduleService{
		businesses: businesses,
		lister:     lister,
		rooms:      rooms,
		schedules:  schedules,
		resolver:   resolver,
		audit:      audit,
		logger:     logger,
	}
}

// Create stores a schedule. A window already running on the business date
// is applied to the room right away.
func (s *ScheduleService) Create(ctx context.Context, actor Actor, req models.CreateScheduleRequest) (*models.RoomSchedule, error) {
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown schedule type %q", ErrInvalidSchedule, req.Type)
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, fmt.Errorf("%w: start_date and end_date are required", ErrInvalidSchedule)
	}
	if !req.StartDate.Before(req.EndDate) {
		return nil, fmt.Errorf("%w: end_date must be after start_date", ErrInvalidSchedule)
	}

	business, err := s.businesses.GetByID(ctx, actor.BusinessID)
	if err != nil {
		return nil, err
	}
	if _, err := s.rooms.GetByID(ctx, actor.BusinessID, req.RoomID); err != nil {
		return nil, err
	}

	today := s.resolver.BusinessDate(business.Country)
	if !req.EndDate.After(today) {
		return nil, fmt.Errorf("%w: window ends before %s", ErrInvalidSchedule, today)
	}

	schedule := &models.RoomSchedule{
		BusinessID: actor.BusinessID,
		RoomID:     req.RoomID,
		Type:       req.Type,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Reason:     req.Reason,
	}
	if err := s.schedules.Create(ctx, schedule); err != nil {
		return nil, err
	}

	if schedule.Covers(today) {
		if _, err := s.schedules.ActivateDue(ctx, actor.BusinessID, today); err != nil {
			return nil, err
		}
	}

	s.record(ctx, actor, ActionScheduleCreate, schedule)
	return schedule, nil
}

// Revert cancels a schedule that has not expired yet
func (s *ScheduleService) Revert(ctx context.Context, actor Actor, scheduleID uuid.UUID) (*models.RoomSchedule, error) {
	business, err := s.businesses.GetByID(ctx, actor.BusinessID)
	if err != nil {
		return nil, err
	}

	today := s.resolver.BusinessDate(business.Country)
	if err := s.schedules.Revert(ctx, actor.BusinessID, scheduleID, today); err != nil {
		return nil, err
	}

	schedule, err := s.schedules.GetByID(ctx, actor.BusinessID, scheduleID)
	if err != nil {
		return nil, err
	}

	s.record(ctx, actor, ActionScheduleRevert, schedule)
	return schedule, nil
}

// SweepBusiness expires finished windows, then applies the ones running on the business date
func (s *ScheduleService) SweepBusiness(ctx context.Context, business models.Business) (SweepResult, error) {
	today := s.resolver.BusinessDate(business.Country)
	result := SweepResult{BusinessID: business.ID, BusinessDate: today}

	expired, err := s.schedules.ExpireDue(ctx, business.ID, today)
	if err != nil {
		return result, err
	}
	result.Expired = expired

	activated, err := s.schedules.ActivateDue(ctx, business.ID, today)
	if err != nil {
		return result, err
	}
	result.Activated = activated

	return result, nil
}

// SweepAll runs SweepBusiness for every business. A failing business does not stop the sweep.
func (s *ScheduleService) SweepAll(ctx context.Context) (SweepSummary, error) {
	businesses, err := s.lister.ListAll(ctx)
	if err != nil {
		return SweepSummary{}, err
	}

	summary := SweepSummary{Businesses: len(businesses)}
	var errs []error
	for _, b := range businesses {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		result, err := s.SweepBusiness(ctx, b)
		if err != nil {
			summary.Failed++
			errs = append(errs, fmt.Errorf("business %s: %w", b.ID, err))
			s.logger.WithError(err).WithField("business_id", b.ID).Error("Schedule sweep failed")
			continue
		}

		if result.Expired > 0 || result.Activated > 0 {
			s.logger.WithFields(logrus.Fields{
				"business_id":   b.ID,
				"business_date": result.BusinessDate,
				"expired":       result.Expired,
				"activated":     result.Activated,
			}).Info("Room schedules applied")
		}
		summary.Results = append(summary.Results, result)
	}

	return summary, errors.Join(errs...)
}

func (s *ScheduleService) record(ctx context.Context, actor Actor, action string, schedule *models.RoomSchedule) {
	s.logger.WithFields(logrus.Fields{
		"business_id": actor.BusinessID,
		"staff_id":    actor.StaffID,
		"schedule_id": schedule.ID,
		"room_id":     schedule.RoomID,
		"action":      action,
	}).Info("Room schedule changed")

	if s.audit == nil {
		return
	}
	if err := s.audit.LogScheduleChange(ctx, actor, action, schedule); err != nil {
		s.logger.WithError(err).Error("Failed to audit schedule change")
	}
}
