package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/models"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/services"
)

// RoomManager configures rooms
type RoomManager interface {
	Create(ctx context.Context, actor services.Actor, req models.CreateRoomRequest) (*models.Room, error)
	Update(ctx context.Context, actor services.Actor, roomID uuid.UUID, req models.UpdateRoomRequest) (*models.Room, error)
	Delete(ctx context.Context, actor services.Actor, roomID uuid.UUID) error
	SetStatus(ctx context.Context, actor services.Actor, roomID uuid.UUID, status models.RoomDeclaredStatus) (*models.Room, error)
	ValidateConfiguration(req models.ValidateConfigurationRequest) models.ValidationResult
	BedConfigs(roomType models.RoomType, capacity int) ([]models.BedConfig, error)
}

// RoomHandler handles room configuration requests
type RoomHandler struct {
	rooms  RoomManager
	logger *logrus.Logger
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(rooms RoomManager, logger *logrus.Logger) *RoomHandler {
	return &RoomHandler{rooms: rooms, logger: logger}
}

// Create handles POST /api/v1/rooms
func (h *RoomHandler) Create(c *gin.Context) {
	var req models.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	room, err := h.rooms.Create(c.Request.Context(), actor(c), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, room)
}

// Update handles PUT /api/v1/rooms/:id
func (h *RoomHandler) Update(c *gin.Context) {
	roomID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	room, err := h.rooms.Update(c.Request.Context(), actor(c), roomID, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, room)
}

// Delete handles DELETE /api/v1/rooms/:id
func (h *RoomHandler) Delete(c *gin.Context) {
	roomID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.rooms.Delete(c.Request.Context(), actor(c), roomID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SetStatus handles PATCH /api/v1/rooms/:id/status
func (h *RoomHandler) SetStatus(c *gin.Context) {
	roomID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateRoomStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	room, err := h.rooms.SetStatus(c.Request.Context(), actor(c), roomID, req.Status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, room)
}

// ValidateConfiguration handles POST /api/v1/rooms/validate-configuration
func (h *RoomHandler) ValidateConfiguration(c *gin.Context) {
	var req models.ValidateConfigurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	c.JSON(http.StatusOK, h.rooms.ValidateConfiguration(req))
}

// BedConfigs handles GET /api/v1/room-types/:type/bed-configs?capacity=
func (h *RoomHandler) BedConfigs(c *gin.Context) {
	roomType := models.RoomType(c.Param("type"))
	capacity, err := strconv.Atoi(c.Query("capacity"))
	if err != nil {
		badRequest(c, "INVALID_CAPACITY", "capacity must be a number")
		return
	}

	configs, err := h.rooms.BedConfigs(roomType, capacity)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"type":        roomType,
		"capacity":    capacity,
		"bed_configs": configs,
	})
}
