package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/services"
)

// JobRunner triggers and reports background sweeps
type JobRunner interface {
	RunScheduleSweepNow(ctx context.Context) (services.JobRun, error)
	RunOverdueSweepNow(ctx context.Context) (services.JobRun, error)
	GetJobStatus() map[string]interface{}
}

// JobHandler exposes manual job triggers to administrators
type JobHandler struct {
	jobs   JobRunner
	logger *logrus.Logger
}

// NewJobHandler creates a new job handler
func NewJobHandler(jobs JobRunner, logger *logrus.Logger) *JobHandler {
	return &JobHandler{jobs: jobs, logger: logger}
}

func (h *JobHandler) respondRun(c *gin.Context, name string, run services.JobRun, err error) {
	status := http.StatusOK
	if err != nil {
		// partial failures still report the per-business results
		status = http.StatusMultiStatus
		h.logger.WithError(err).WithField("job", name).Warn("Manual job run finished with errors")
	}
	c.JSON(status, gin.H{"job": name, "run": run})
}

// RunScheduleSweep handles POST /api/v1/admin/jobs/schedule-sweep
func (h *JobHandler) RunScheduleSweep(c *gin.Context) {
	run, err := h.jobs.RunScheduleSweepNow(c.Request.Context())
	h.respondRun(c, services.JobScheduleSweep, run, err)
}

// RunOverdueSweep handles POST /api/v1/admin/jobs/overdue-sweep
func (h *JobHandler) RunOverdueSweep(c *gin.Context) {
	run, err := h.jobs.RunOverdueSweepNow(c.Request.Context())
	h.respondRun(c, services.JobOverdueSweep, run, err)
}

// Status handles GET /api/v1/admin/jobs/status
func (h *JobHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.jobs.GetJobStatus())
}
