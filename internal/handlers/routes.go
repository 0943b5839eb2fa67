package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/middleware"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/pkg/jwt"
)

// Handlers groups every API handler for route registration
type Handlers struct {
	Auth       *AuthHandler
	RoomStatus *RoomStatusHandler
	Rooms      *RoomHandler
	FrontDesk  *FrontDeskHandler
	Schedules  *ScheduleHandler
	Jobs       *JobHandler
}

// RegisterRoutes mounts the API under v1. auth must store a middleware.StaffContext.
func RegisterRoutes(v1 *gin.RouterGroup, h Handlers, auth gin.HandlerFunc) {
	v1.POST("/auth/refresh", h.Auth.RefreshToken)

	api := v1.Group("", auth)

	rooms := api.Group("/rooms")
	{
		rooms.GET("/status", h.RoomStatus.Board)
		rooms.GET("/:id/status", h.RoomStatus.RoomStatus)
		rooms.GET("/:id/calendar", h.RoomStatus.Calendar)
		rooms.GET("/:id/availability", h.RoomStatus.Availability)
		rooms.PATCH("/:id/status", h.Rooms.SetStatus)
		rooms.POST("/validate-configuration", h.Rooms.ValidateConfiguration)

		managers := rooms.Group("", middleware.RequireRole(jwt.RoleManager, jwt.RoleAdmin))
		managers.POST("", h.Rooms.Create)
		managers.PUT("/:id", h.Rooms.Update)
		managers.DELETE("/:id", h.Rooms.Delete)
	}

	api.GET("/room-types/:type/bed-configs", h.Rooms.BedConfigs)
	api.GET("/calendar/export", h.RoomStatus.ExportCalendar)

	reservations := api.Group("/reservations")
	{
		reservations.POST("/:id/check-in", h.FrontDesk.CheckIn)
		reservations.POST("/:id/check-out", h.FrontDesk.CheckOut)
		reservations.POST("/:id/cancel", h.FrontDesk.Cancel)
		reservations.POST("/:id/mark-paid", h.FrontDesk.MarkPaid)
	}

	schedules := api.Group("/schedules", middleware.RequireRole(jwt.RoleManager, jwt.RoleAdmin))
	{
		schedules.POST("", h.Schedules.Create)
		schedules.POST("/:id/revert", h.Schedules.Revert)
	}

	admin := api.Group("/admin/jobs", middleware.RequireRole(jwt.RoleAdmin))
	{
		admin.POST("/schedule-sweep", h.Jobs.RunScheduleSweep)
		admin.POST("/overdue-sweep", h.Jobs.RunOverdueSweep)
		admin.GET("/status", h.Jobs.Status)
	}
}
