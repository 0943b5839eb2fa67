package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/models"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/roomstate"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/utils"
)

// Audit actions
const (
	ActionCheckIn          = "reservation_check_in"
	ActionCheckOut         = "reservation_check_out"
	ActionCancel           = "reservation_cancel"
	ActionMarkPaid         = "reservation_mark_paid"
	ActionRoomCreate       = "room_create"
	ActionRoomUpdate       = "room_update"
	ActionRoomDelete       = "room_delete"
	ActionRoomStatus       = "room_status_change"
	ActionScheduleCreate   = "schedule_create"
	ActionScheduleRevert   = "schedule_revert"
	ActionIntegrityWarning = "integrity_warning"
)

// AuditService writes audit_logs rows
type AuditService struct {
	db *sqlx.DB
}

// NewAuditService creates a new audit service
func NewAuditService(db *sqlx.DB) *AuditService {
	return &AuditService{db: db}
}

// AuditEvent is one audit_logs row
type AuditEvent struct {
	BusinessID uuid.UUID
	StaffID    *uuid.UUID // nil for system events
	Action     string
	EntityType string
	EntityID   uuid.UUID
	IPAddress  string
	UserAgent  string
	Details    map[string]interface{}
}

func actorEvent(actor Actor, action, entityType string, entityID uuid.UUID, details map[string]interface{}) AuditEvent {
	staffID := actor.StaffID
	details["device_info"] = utils.ParseDevice(actor.UserAgent)
	return AuditEvent{
		BusinessID: actor.BusinessID,
		StaffID:    &staffID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		IPAddress:  actor.IPAddress,
		UserAgent:  actor.UserAgent,
		Details:    details,
	}
}

// LogCheckIn records a successful check-in with the number of arrived guests
func (s *AuditService) LogCheckIn(ctx context.Context, actor Actor, reservation *models.Reservation, arrived int) error {
	return s.logEvent(ctx, actorEvent(actor, ActionCheckIn, "reservation", reservation.ID, map[string]interface{}{
		"room_id":        reservation.RoomID,
		"arrived_guests": arrived,
		"guest_count":    reservation.GuestCount,
	}))
}

// LogCheckOut records a check-out
func (s *AuditService) LogCheckOut(ctx context.Context, actor Actor, reservation *models.Reservation) error {
	return s.logEvent(ctx, actorEvent(actor, ActionCheckOut, "reservation", reservation.ID, map[string]interface{}{
		"room_id":        reservation.RoomID,
		"check_out_date": reservation.CheckOutDate,
	}))
}

// LogReservationChange records a cancellation or payment
func (s *AuditService) LogReservationChange(ctx context.Context, actor Actor, action string, reservation *models.Reservation) error {
	return s.logEvent(ctx, actorEvent(actor, action, "reservation", reservation.ID, map[string]interface{}{
		"room_id":        reservation.RoomID,
		"status":         reservation.Status,
		"payment_status": reservation.PaymentStatus,
	}))
}

// LogRoomChange records a room create, update or delete
func (s *AuditService) LogRoomChange(ctx context.Context, actor Actor, action string, room *models.Room) error {
	return s.logEvent(ctx, actorEvent(actor, action, "room", room.ID, map[string]interface{}{
		"number":    room.Number,
		"type":      room.Type,
		"capacity":  room.Capacity,
		"bed_count": room.BedCount,
		"bed_type":  room.BedType,
		"status":    room.Status,
	}))
}

// LogScheduleChange records a schedule create or revert
func (s *AuditService) LogScheduleChange(ctx context.Context, actor Actor, action string, schedule *models.RoomSchedule) error {
	return s.logEvent(ctx, actorEvent(actor, action, "room_schedule", schedule.ID, map[string]interface{}{
		"room_id":       schedule.RoomID,
		"schedule_type": schedule.Type,
		"start_date":    schedule.StartDate,
		"end_date":      schedule.EndDate,
	}))
}

// LogIntegrityWarning records a data anomaly found while deriving room status
func (s *AuditService) LogIntegrityWarning(ctx context.Context, businessID uuid.UUID, anomaly roomstate.Anomaly) error {
	return s.logEvent(ctx, AuditEvent{
		BusinessID: businessID,
		Action:     ActionIntegrityWarning,
		EntityType: "room",
		EntityID:   anomaly.RoomID,
		Details: map[string]interface{}{
			"code":            anomaly.Code,
			"reservation_ids": anomaly.ReservationIDs,
			"winner_id":       anomaly.WinnerID,
		},
	})
}

func (s *AuditService) logEvent(ctx context.Context, event AuditEvent) error {
	details, err := json.Marshal(event.Details)
	if err != nil {
		return fmt.Errorf("failed to encode audit details: %w", err)
	}

	query := `
		INSERT INTO audit_logs (business_id, staff_id, action, entity_type, entity_id, ip_address, user_agent, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`

	_, err = s.db.ExecContext(ctx, query,
		event.BusinessID,
		event.StaffID,
		event.Action,
		event.EntityType,
		event.EntityID,
		event.IPAddress,
		event.UserAgent,
		details,
	)
	if err != nil {
		return fmt.Errorf("failed to log audit event: %w", err)
	}

	return nil
}
