package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/models"
)

// RoomStatusReader derives live room status
type RoomStatusReader interface {
	Board(ctx context.Context, businessID uuid.UUID) (*models.RoomBoard, error)
	RoomStatus(ctx context.Context, businessID, roomID uuid.UUID) (*models.RoomStatus, error)
	BusinessDate(ctx context.Context, businessID uuid.UUID) (models.Date, error)
}

// CalendarReader builds availability calendars
type CalendarReader interface {
	Month(ctx context.Context, businessID, roomID uuid.UUID, year int, month time.Month) (*models.RoomCalendar, error)
	CheckStay(ctx context.Context, businessID, roomID uuid.UUID, checkIn, checkOut models.Date) (*models.StayCheck, error)
	ExportMonth(ctx context.Context, businessID uuid.UUID, year int, month time.Month) ([]byte, error)
}

// RoomStatusHandler serves live status and availability
type RoomStatusHandler struct {
	status   RoomStatusReader
	calendar CalendarReader
	logger   *logrus.Logger
}

// NewRoomStatusHandler creates a new room status handler
func NewRoomStatusHandler(status RoomStatusReader, calendar CalendarReader, logger *logrus.Logger) *RoomStatusHandler {
	return &RoomStatusHandler{status: status, calendar: calendar, logger: logger}
}

// Board handles GET /api/v1/rooms/status
func (h *RoomStatusHandler) Board(c *gin.Context) {
	board, err := h.status.Board(c.Request.Context(), businessID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, board)
}

// RoomStatus handles GET /api/v1/rooms/:id/status
func (h *RoomStatusHandler) RoomStatus(c *gin.Context) {
	roomID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	status, err := h.status.RoomStatus(c.Request.Context(), businessID(c), roomID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// Calendar handles GET /api/v1/rooms/:id/calendar?year=&month=
func (h *RoomStatusHandler) Calendar(c *gin.Context) {
	roomID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	year, month, ok := h.monthQuery(c)
	if !ok {
		return
	}

	cal, err := h.calendar.Month(c.Request.Context(), businessID(c), roomID, year, month)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, cal)
}

// Availability handles GET /api/v1/rooms/:id/availability?check_in=&check_out=
func (h *RoomStatusHandler) Availability(c *gin.Context) {
	roomID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	checkIn, ok := dateQuery(c, "check_in")
	if !ok {
		return
	}
	checkOut, ok := dateQuery(c, "check_out")
	if !ok {
		return
	}

	check, err := h.calendar.CheckStay(c.Request.Context(), businessID(c), roomID, checkIn, checkOut)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, check)
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportCalendar handles GET /api/v1/calendar/export?year=&month=
func (h *RoomStatusHandler) ExportCalendar(c *gin.Context) {
	year, month, ok := h.monthQuery(c)
	if !ok {
		return
	}

	data, err := h.calendar.ExportMonth(c.Request.Context(), businessID(c), year, month)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	filename := "calendario-" + models.NewDate(year, month, 1).String()[:7] + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
