package models

import (
	"time"

	"github.com/google/uuid"
)

// RoomType represents the declared category of a room
type RoomType string

const (
	RoomTypeSingle       RoomType = "single"
	RoomTypeDouble       RoomType = "double"
	RoomTypeTriple       RoomType = "triple"
	RoomTypeQuad         RoomType = "quad"
	RoomTypeSuite        RoomType = "suite"
	RoomTypeFamily       RoomType = "family"
	RoomTypePresidential RoomType = "presidential"
)

// RoomTypes lists every known room type in display order
var RoomTypes = []RoomType{
	RoomTypeSingle,
	RoomTypeDouble,
	RoomTypeTriple,
	RoomTypeQuad,
	RoomTypeSuite,
	RoomTypeFamily,
	RoomTypePresidential,
}

// RoomDeclaredStatus is the operator-set baseline status of a room.
// It is distinct from the derived live status computed per read.
type RoomDeclaredStatus string

const (
	RoomStatusActive      RoomDeclaredStatus = "active"
	RoomStatusInactive    RoomDeclaredStatus = "inactive"
	RoomStatusMaintenance RoomDeclaredStatus = "maintenance"
	RoomStatusCleaning    RoomDeclaredStatus = "cleaning"
)

// IsValid reports whether s is a known declared status
func (s RoomDeclaredStatus) IsValid() bool {
	switch s {
	case RoomStatusActive, RoomStatusInactive, RoomStatusMaintenance, RoomStatusCleaning:
		return true
	}
	return false
}

// BedType represents the kind of beds in a room
type BedType string

const (
	BedTypeSingle       BedType = "single"
	BedTypeDouble       BedType = "double"
	BedTypeQueen        BedType = "queen"
	BedTypeKing         BedType = "king"
	BedTypeDoubleSingle BedType = "double_single"
	BedTypeKingSingle   BedType = "king_single"
)

// Room represents a sellable hotel room
type Room struct {
	ID         uuid.UUID          `json:"id" db:"id"`
	BusinessID uuid.UUID          `json:"business_id" db:"business_id"`
	Number     string             `json:"number" db:"number"`
	Floor      int                `json:"floor" db:"floor"`
	Capacity   int                `json:"capacity" db:"capacity"`
	Type       RoomType           `json:"type" db:"type"`
	Status     RoomDeclaredStatus `json:"status" db:"status"`
	Price      float64            `json:"price" db:"price"`
	BedCount   int                `json:"bed_count" db:"bed_count"`
	BedType    BedType            `json:"bed_type" db:"bed_type"`
	CreatedAt  time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" db:"updated_at"`
	DeletedAt  *time.Time         `json:"deleted_at,omitempty" db:"deleted_at"`
}

// BedConfig is one legal sleeping arrangement for a room type and capacity
type BedConfig struct {
	BedCount    int     `json:"bed_count"`
	BedType     BedType `json:"bed_type"`
	Description string  `json:"description"`
}

// CreateRoomRequest represents the request to create a room
type CreateRoomRequest struct {
	Number   string   `json:"number" binding:"required"`
	Floor    int      `json:"floor"`
	Capacity int      `json:"capacity" binding:"required,min=1"`
	Type     RoomType `json:"type" binding:"required"`
	Price    float64  `json:"price" binding:"min=0"`
	BedCount int      `json:"bed_count" binding:"omitempty,min=1"`
	BedType  BedType  `json:"bed_type"`
}

// UpdateRoomRequest represents a partial room update. Nil fields are left unchanged.
type UpdateRoomRequest struct {
	Number   *string             `json:"number,omitempty"`
	Floor    *int                `json:"floor,omitempty"`
	Capacity *int                `json:"capacity,omitempty"`
	Type     *RoomType           `json:"type,omitempty"`
	Status   *RoomDeclaredStatus `json:"status,omitempty"`
	Price    *float64            `json:"price,omitempty"`
	BedCount *int                `json:"bed_count,omitempty"`
	BedType  *BedType            `json:"bed_type,omitempty"`
}

// Apply copies the non-nil fields of the request onto room
func (r *UpdateRoomRequest) Apply(room *Room) {
	if r.Number != nil {
		room.Number = *r.Number
	}
	if r.Floor != nil {
		room.Floor = *r.Floor
	}
	if r.Capacity != nil {
		room.Capacity = *r.Capacity
	}
	if r.Type != nil {
		room.Type = *r.Type
	}
	if r.Status != nil {
		room.Status = *r.Status
	}
	if r.Price != nil {
		room.Price = *r.Price
	}
	if r.BedCount != nil {
		room.BedCount = *r.BedCount
	}
	if r.BedType != nil {
		room.BedType = *r.BedType
	}
}

// UpdateRoomStatusRequest sets only the declared status of a room
type UpdateRoomStatusRequest struct {
	Status RoomDeclaredStatus `json:"status" binding:"required"`
}

// ValidateConfigurationRequest asks whether a capacity and bed layout is legal for a room type
type ValidateConfigurationRequest struct {
	Type     RoomType `json:"type" binding:"required"`
	Capacity int      `json:"capacity" binding:"required"`
	BedCount int      `json:"bed_count" binding:"required"`
	BedType  BedType  `json:"bed_type" binding:"required"`
}

// ValidationResult is the outcome of a bed configuration or capacity check
type ValidationResult struct {
	Valid        bool        `json:"valid"`
	Reason       string      `json:"reason,omitempty"`
	ValidOptions []BedConfig `json:"valid_options,omitempty"`
}
