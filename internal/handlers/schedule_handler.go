package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/models"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/services"
)

// Scheduler plans maintenance and inactive windows
type Scheduler interface {
	Create(ctx context.Context, actor services.Actor, req models.CreateScheduleRequest) (*models.RoomSchedule, error)
	Revert(ctx context.Context, actor services.Actor, scheduleID uuid.UUID) (*models.RoomSchedule, error)
}

// ScheduleHandler handles room schedule requests
type ScheduleHandler struct {
	schedules Scheduler
	logger    *logrus.Logger
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(schedules Scheduler, logger *logrus.Logger) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules, logger: logger}
}

// Create handles POST /api/v1/schedules
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req models.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	schedule, err := h.schedules.Create(c.Request.Context(), actor(c), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, schedule)
}

// Revert handles POST /api/v1/schedules/:id/revert
func (h *ScheduleHandler) Revert(c *gin.Context) {
	scheduleID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	schedule, err := h.schedules.Revert(c.Request.Context(), actor(c), scheduleID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, schedule)
}
