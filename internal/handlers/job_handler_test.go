package handlers

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/services"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/pkg/jwt"
)

func TestJobHandler(t *testing.T) {
	t.Run("admin runs the schedule sweep", func(t *testing.T) {
		router, s := setupRouter(t, jwt.RoleAdmin)
		s.jobs.run = services.JobRun{StartedAt: time.Now(), Duration: time.Second}

		w := perform(router, http.MethodPost, "/api/v1/admin/jobs/schedule-sweep", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), services.JobScheduleSweep)
	})

	t.Run("partial failure reports multi status", func(t *testing.T) {
		router, s := setupRouter(t, jwt.RoleAdmin)
		s.jobs.err = errors.New("business 42: connection reset")

		w := perform(router, http.MethodPost, "/api/v1/admin/jobs/overdue-sweep", nil)
		assert.Equal(t, http.StatusMultiStatus, w.Code)
		assert.Contains(t, w.Body.String(), services.JobOverdueSweep)
	})

	t.Run("status", func(t *testing.T) {
		router, _ := setupRouter(t, jwt.RoleAdmin)

		w := perform(router, http.MethodGet, "/api/v1/admin/jobs/status", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"job_count":2`)
	})

	t.Run("managers are not administrators", func(t *testing.T) {
		router, _ := setupRouter(t, managerRoles...)

		w := perform(router, http.MethodPost, "/api/v1/admin/jobs/schedule-sweep", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
