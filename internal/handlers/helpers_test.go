package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/middleware"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/models"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/services"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/pkg/jwt"
)

const (
	testAccessSecret  = "handler-test-access-secret"
	testRefreshSecret = "handler-test-refresh-secret"
)

var (
	testBusinessID = uuid.New()
	testStaffID    = uuid.New()
	testTokens     = jwt.NewService(testAccessSecret, testRefreshSecret, time.Hour, 24*time.Hour)
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// staffAuth stands in for AuthMiddleware with fixed claims
func staffAuth(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.StaffContextKey, middleware.StaffContext{
			StaffID:    testStaffID,
			BusinessID: testBusinessID,
			Roles:      roles,
		})
		c.Next()
	}
}

type stubs struct {
	status    *stubStatus
	calendar  *stubCalendar
	rooms     *stubRooms
	desk      *stubDesk
	schedules *stubSchedules
	jobs      *stubJobs
}

func setupRouter(t *testing.T, roles ...string) (*gin.Engine, *stubs) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &stubs{
		status:    &stubStatus{},
		calendar:  &stubCalendar{},
		rooms:     &stubRooms{},
		desk:      &stubDesk{},
		schedules: &stubSchedules{},
		jobs:      &stubJobs{},
	}
	logger := quietLogger()

	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), Handlers{
		Auth:       NewAuthHandler(testTokens, logger),
		RoomStatus: NewRoomStatusHandler(s.status, s.calendar, logger),
		Rooms:      NewRoomHandler(s.rooms, logger),
		FrontDesk:  NewFrontDeskHandler(s.desk, logger),
		Schedules:  NewScheduleHandler(s.schedules, logger),
		Jobs:       NewJobHandler(s.jobs, logger),
	}, staffAuth(roles...))

	return router, s
}

func perform(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64)")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

var managerRoles = []string{jwt.RoleFrontDesk, jwt.RoleManager}

type stubStatus struct {
	board     *models.RoomBoard
	status    *models.RoomStatus
	err       error
	gotRoomID uuid.UUID
	gotBiz    uuid.UUID
	today     models.Date
	dateErr   error
}

func (s *stubStatus) BusinessDate(_ context.Context, businessID uuid.UUID) (models.Date, error) {
	s.gotBiz = businessID
	return s.today, s.dateErr
}

func (s *stubStatus) Board(_ context.Context, businessID uuid.UUID) (*models.RoomBoard, error) {
	s.gotBiz = businessID
	return s.board, s.err
}

func (s *stubStatus) RoomStatus(_ context.Context, businessID, roomID uuid.UUID) (*models.RoomStatus, error) {
	s.gotBiz, s.gotRoomID = businessID, roomID
	return s.status, s.err
}

type stubCalendar struct {
	calendar    *models.RoomCalendar
	stay        *models.StayCheck
	export      []byte
	err         error
	gotYear     int
	gotMonth    time.Month
	gotCheckIn  models.Date
	gotCheckOut models.Date
}

func (s *stubCalendar) Month(_ context.Context, _, _ uuid.UUID, year int, month time.Month) (*models.RoomCalendar, error) {
	s.gotYear, s.gotMonth = year, month
	return s.calendar, s.err
}

func (s *stubCalendar) CheckStay(_ context.Context, _, _ uuid.UUID, checkIn, checkOut models.Date) (*models.StayCheck, error) {
	s.gotCheckIn, s.gotCheckOut = checkIn, checkOut
	return s.stay, s.err
}

func (s *stubCalendar) ExportMonth(_ context.Context, _ uuid.UUID, year int, month time.Month) ([]byte, error) {
	s.gotYear, s.gotMonth = year, month
	return s.export, s.err
}

type stubRooms struct {
	room     *models.Room
	err      error
	gotActor services.Actor
	gotReq   interface{}
	deleted  uuid.UUID
}

func (s *stubRooms) Create(_ context.Context, actor services.Actor, req models.CreateRoomRequest) (*models.Room, error) {
	s.gotActor, s.gotReq = actor, req
	return s.room, s.err
}

func (s *stubRooms) Update(_ context.Context, actor services.Actor, _ uuid.UUID, req models.UpdateRoomRequest) (*models.Room, error) {
	s.gotActor, s.gotReq = actor, req
	return s.room, s.err
}

func (s *stubRooms) Delete(_ context.Context, actor services.Actor, roomID uuid.UUID) error {
	s.gotActor, s.deleted = actor, roomID
	return s.err
}

func (s *stubRooms) SetStatus(_ context.Context, actor services.Actor, _ uuid.UUID, status models.RoomDeclaredStatus) (*models.Room, error) {
	s.gotActor, s.gotReq = actor, status
	return s.room, s.err
}

func (s *stubRooms) ValidateConfiguration(req models.ValidateConfigurationRequest) models.ValidationResult {
	s.gotReq = req
	return models.ValidationResult{Valid: req.BedCount == 1}
}

func (s *stubRooms) BedConfigs(models.RoomType, int) ([]models.BedConfig, error) {
	return []models.BedConfig{{BedCount: 1, BedType: models.BedTypeDouble, Description: "1 cama doble"}}, s.err
}

type stubDesk struct {
	reservation *models.Reservation
	err         error
	gotReq      models.CheckInRequest
	gotActor    services.Actor
	gotAction   string
}

func (s *stubDesk) CheckIn(_ context.Context, actor services.Actor, _ uuid.UUID, req models.CheckInRequest) (*models.Reservation, error) {
	s.gotActor, s.gotReq = actor, req
	return s.reservation, s.err
}

func (s *stubDesk) CheckOut(_ context.Context, actor services.Actor, _ uuid.UUID) (*models.Reservation, error) {
	s.gotActor, s.gotAction = actor, "check-out"
	return s.reservation, s.err
}

func (s *stubDesk) Cancel(_ context.Context, actor services.Actor, _ uuid.UUID) (*models.Reservation, error) {
	s.gotActor, s.gotAction = actor, "cancel"
	return s.reservation, s.err
}

func (s *stubDesk) MarkPaid(_ context.Context, actor services.Actor, _ uuid.UUID) (*models.Reservation, error) {
	s.gotActor, s.gotAction = actor, "mark-paid"
	return s.reservation, s.err
}

type stubSchedules struct {
	schedule *models.RoomSchedule
	err      error
	gotReq   models.CreateScheduleRequest
}

func (s *stubSchedules) Create(_ context.Context, _ services.Actor, req models.CreateScheduleRequest) (*models.RoomSchedule, error) {
	s.gotReq = req
	return s.schedule, s.err
}

func (s *stubSchedules) Revert(context.Context, services.Actor, uuid.UUID) (*models.RoomSchedule, error) {
	return s.schedule, s.err
}

type stubJobs struct {
	run services.JobRun
	err error
}

func (s *stubJobs) RunScheduleSweepNow(context.Context) (services.JobRun, error) { return s.run, s.err }
func (s *stubJobs) RunOverdueSweepNow(context.Context) (services.JobRun, error)  { return s.run, s.err }
func (s *stubJobs) GetJobStatus() map[string]interface{} {
	return map[string]interface{}{"running": true, "job_count": 2}
}
