package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/middleware"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/models"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/services"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/utils"
)

// actor builds the audit actor from the token claims and the request terminal
func actor(c *gin.Context) services.Actor {
	staff := middleware.MustGetStaffContext(c)
	return services.Actor{
		StaffID:    staff.StaffID,
		BusinessID: staff.BusinessID,
		IPAddress:  utils.ClientIP(c),
		UserAgent:  c.Request.UserAgent(),
	}
}

func businessID(c *gin.Context) uuid.UUID {
	return middleware.MustGetStaffContext(c).BusinessID
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, "INVALID_ID", "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

func dateQuery(c *gin.Context, name string) (models.Date, bool) {
	d, err := models.ParseDate(c.Query(name))
	if err != nil {
		badRequest(c, "INVALID_DATE", name+" must be a YYYY-MM-DD date")
		return models.Date{}, false
	}
	return d, true
}

// monthQuery reads ?year=&month=; a missing part defaults to the business's current month
func (h *RoomStatusHandler) monthQuery(c *gin.Context) (int, time.Month, bool) {
	year, ok := intQuery(c, "year")
	if !ok {
		return 0, 0, false
	}
	month, ok := intQuery(c, "month")
	if !ok {
		return 0, 0, false
	}

	if year == 0 || month == 0 {
		today, err := h.status.BusinessDate(c.Request.Context(), businessID(c))
		if err != nil {
			respondError(c, h.logger, err)
			return 0, 0, false
		}
		if year == 0 {
			year = today.Year
		}
		if month == 0 {
			month = int(today.Month)
		}
	}

	return year, time.Month(month), true
}

// intQuery parses an optional integer query parameter; absent is 0
func intQuery(c *gin.Context, name string) (int, bool) {
	v := c.Query(name)
	if v == "" {
		return 0, true
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		badRequest(c, "INVALID_MONTH", name+" must be a number")
		return 0, false
	}
	return parsed, true
}
