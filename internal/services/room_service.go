package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/models"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/pkg/validator"
)

// RoomService manages room configuration. Every write passes the bed configuration validator.
type RoomService struct {
	rooms  RoomStore
	audit  Auditor
	logger *logrus.Logger
}

// NewRoomService creates a new room service
func NewRoomService(rooms RoomStore, audit Auditor, logger *logrus.Logger) *RoomService {
	return &RoomService{rooms: rooms, audit: audit, logger: logger}
}

// Create validates and stores a new room
// A request with no beds gets the first valid layout for its type and capacity.
func (s *RoomService) Create(ctx context.Context, actor Actor, req models.CreateRoomRequest) (*models.Room, error) {
	if req.BedCount == 0 && req.BedType == "" {
		if def, ok := validator.DefaultBedConfig(req.Type, req.Capacity); ok {
			req.BedCount, req.BedType = def.BedCount, def.BedType
		}
	}
	if err := validator.ValidateBedConfig(req.Type, req.Capacity, req.BedCount, req.BedType); err != nil {
		return nil, err
	}

	room := &models.Room{
		BusinessID: actor.BusinessID,
		Number:     req.Number,
		Floor:      req.Floor,
		Capacity:   req.Capacity,
		Type:       req.Type,
		Status:     models.RoomStatusActive,
		Price:      req.Price,
		BedCount:   req.BedCount,
		BedType:    req.BedType,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}

	s.record(ctx, actor, ActionRoomCreate, room)
	return room, nil
}

// Update applies a partial update; the resulting room must still be a valid configuration
func (s *RoomService) Update(ctx context.Context, actor Actor, roomID uuid.UUID, req models.UpdateRoomRequest) (*models.Room, error) {
	room, err := s.rooms.GetByID(ctx, actor.BusinessID, roomID)
	if err != nil {
		return nil, err
	}

	req.Apply(room)

	if !room.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRoomStatus, room.Status)
	}
	if err := validator.ValidateBedConfig(room.Type, room.Capacity, room.BedCount, room.BedType); err != nil {
		return nil, err
	}

	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}

	s.record(ctx, actor, ActionRoomUpdate, room)
	return room, nil
}

// Delete soft-deletes a room with no active reservations
func (s *RoomService) Delete(ctx context.Context, actor Actor, roomID uuid.UUID) error {
	room, err := s.rooms.GetByID(ctx, actor.BusinessID, roomID)
	if err != nil {
		return err
	}

	if err := s.rooms.SoftDelete(ctx, actor.BusinessID, roomID); err != nil {
		return err
	}

	s.record(ctx, actor, ActionRoomDelete, room)
	return nil
}

// SetStatus changes only the declared status, e.g. housekeeping marking a room clean.
// The bed configuration is untouched so no validation is needed.
func (s *RoomService) SetStatus(ctx context.Context, actor Actor, roomID uuid.UUID, status models.RoomDeclaredStatus) (*models.Room, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRoomStatus, status)
	}

	if err := s.rooms.UpdateStatus(ctx, actor.BusinessID, roomID, status); err != nil {
		return nil, err
	}

	room, err := s.rooms.GetByID(ctx, actor.BusinessID, roomID)
	if err != nil {
		return nil, err
	}

	s.record(ctx, actor, ActionRoomStatus, room)
	return room, nil
}

// ValidateConfiguration reports whether a configuration is legal without storing anything
func (s *RoomService) ValidateConfiguration(req models.ValidateConfigurationRequest) models.ValidationResult {
	return validator.CheckBedConfig(req.Type, req.Capacity, req.BedCount, req.BedType)
}

// BedConfigs lists the legal bed layouts for a room type and capacity
func (s *RoomService) BedConfigs(roomType models.RoomType, capacity int) ([]models.BedConfig, error) {
	ceiling := validator.CapacityCeiling(roomType)
	if ceiling == 0 {
		return nil, &validator.BedConfigError{
			Err:    validator.ErrUnknownRoomType,
			Reason: fmt.Sprintf("unknown room type %q", roomType),
		}
	}
	if capacity < 1 || capacity > ceiling {
		return nil, &validator.BedConfigError{
			Err:          validator.ErrCapacityExceeded,
			Reason:       fmt.Sprintf("capacity must be between 1 and %d for %s rooms", ceiling, roomType),
			ValidOptions: validator.ValidBedConfigs(roomType, ceiling),
		}
	}
	return validator.ValidBedConfigs(roomType, capacity), nil
}

func (s *RoomService) record(ctx context.Context, actor Actor, action string, room *models.Room) {
	s.logger.WithFields(logrus.Fields{
		"business_id": actor.BusinessID,
		"staff_id":    actor.StaffID,
		"room_id":     room.ID,
		"action":      action,
	}).Info("Room configuration changed")

	if s.audit == nil {
		return
	}
	if err := s.audit.LogRoomChange(ctx, actor, action, room); err != nil {
		s.logger.WithError(err).Error("Failed to audit room change")
	}
}
