package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/database"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/models"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/roomstate"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/services"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/pkg/validator"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error        string             `json:"error"`
	Message      string             `json:"message"`
	Code         string             `json:"code,omitempty"`
	ValidOptions []models.BedConfig `json:"valid_options,omitempty"`
}

func badRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "bad_request",
		Message: message,
		Code:    code,
	})
}

var errorStatus = []struct {
	err    error
	status int
	code   string
}{
	{database.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{database.ErrCheckInConflict, http.StatusConflict, "CHECK_IN_CONFLICT"},
	{database.ErrInvalidTransition, http.StatusConflict, "INVALID_TRANSITION"},
	{database.ErrRoomInUse, http.StatusConflict, "ROOM_IN_USE"},
	{services.ErrReservationClosed, http.StatusConflict, "RESERVATION_CLOSED"},
	{services.ErrNoGuestsArrived, http.StatusBadRequest, "NO_GUESTS_ARRIVED"},
	{services.ErrInvalidStay, http.StatusBadRequest, "INVALID_STAY"},
	{services.ErrInvalidSchedule, http.StatusBadRequest, "INVALID_SCHEDULE"},
	{services.ErrInvalidRoomStatus, http.StatusBadRequest, "INVALID_ROOM_STATUS"},
	{roomstate.ErrInvalidMonth, http.StatusBadRequest, "INVALID_MONTH"},
}

// respondError maps domain errors to HTTP responses; anything unknown is a 500
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	var bcErr *validator.BedConfigError
	if errors.As(err, &bcErr) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:        "invalid_room_configuration",
			Message:      bcErr.Reason,
			Code:         "INVALID_BED_CONFIG",
			ValidOptions: bcErr.ValidOptions,
		})
		return
	}

	for _, m := range errorStatus {
		if errors.Is(err, m.err) {
			c.JSON(m.status, ErrorResponse{
				Error:   http.StatusText(m.status),
				Message: err.Error(),
				Code:    m.code,
			})
			return
		}
	}

	logger.WithError(err).WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	}).Error("Request failed")
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An unexpected error occurred",
		Code:    "INTERNAL_ERROR",
	})
}
