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

// FrontDesk performs check-in and check-out
type FrontDesk interface {
	CheckIn(ctx context.Context, actor services.Actor, reservationID uuid.UUID, req models.CheckInRequest) (*models.Reservation, error)
	CheckOut(ctx context.Context, actor services.Actor, reservationID uuid.UUID) (*models.Reservation, error)
	Cancel(ctx context.Context, actor services.Actor, reservationID uuid.UUID) (*models.Reservation, error)
	MarkPaid(ctx context.Context, actor services.Actor, reservationID uuid.UUID) (*models.Reservation, error)
}

// FrontDeskHandler handles front desk reservation actions
type FrontDeskHandler struct {
	desk   FrontDesk
	logger *logrus.Logger
}

// NewFrontDeskHandler creates a new front desk handler
func NewFrontDeskHandler(desk FrontDesk, logger *logrus.Logger) *FrontDeskHandler {
	return &FrontDeskHandler{desk: desk, logger: logger}
}

// CheckIn handles POST /api/v1/reservations/:id/check-in
func (h *FrontDeskHandler) CheckIn(c *gin.Context) {
	reservationID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req models.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	reservation, err := h.desk.CheckIn(c.Request.Context(), actor(c), reservationID, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// CheckOut handles POST /api/v1/reservations/:id/check-out
func (h *FrontDeskHandler) CheckOut(c *gin.Context) {
	h.transition(c, h.desk.CheckOut)
}

// Cancel handles POST /api/v1/reservations/:id/cancel
func (h *FrontDeskHandler) Cancel(c *gin.Context) {
	h.transition(c, h.desk.Cancel)
}

// MarkPaid handles POST /api/v1/reservations/:id/mark-paid
func (h *FrontDeskHandler) MarkPaid(c *gin.Context) {
	h.transition(c, h.desk.MarkPaid)
}

func (h *FrontDeskHandler) transition(c *gin.Context, apply func(context.Context, services.Actor, uuid.UUID) (*models.Reservation, error)) {
	reservationID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	reservation, err := apply(c.Request.Context(), actor(c), reservationID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, reservation)
}
