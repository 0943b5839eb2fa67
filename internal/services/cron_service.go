package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/config"
)

// Job names
const (
	JobScheduleSweep = "schedule_sweep"
	JobOverdueSweep  = "overdue_sweep"
)

// ScheduleSweeper applies room schedules for every business
type ScheduleSweeper interface {
	SweepAll(ctx context.Context) (SweepSummary, error)
}

// OverdueSweeper sends overdue check-out alerts for every business
type OverdueSweeper interface {
	Run(ctx context.Context) (AlertSummary, error)
}

// JobRun is the outcome of the last run of a job
type JobRun struct {
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration_ns"`
	Error     string        `json:"error,omitempty"`
	Result    interface{}   `json:"result,omitempty"`
}

// CronService manages scheduled background jobs
type CronService struct {
	cron      *cron.Cron
	cfg       config.JobsConfig
	schedules ScheduleSweeper
	overdue   OverdueSweeper
	timeout   time.Duration
	logger    *logrus.Logger

	mu      sync.Mutex
	entries map[string]cron.EntryID
	lastRun map[string]JobRun
}

// NewCronService creates a new CronService
func NewCronService(cfg config.JobsConfig, schedules ScheduleSweeper, overdue OverdueSweeper, logger *logrus.Logger) *CronService {
	return &CronService{
		cron:      cron.New(cron.WithSeconds()),
		cfg:       cfg,
		schedules: schedules,
		overdue:   overdue,
		timeout:   5 * time.Minute,
		logger:    logger,
		entries:   make(map[string]cron.EntryID),
		lastRun:   make(map[string]JobRun),
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() error {
	// Cron format: second minute hour day month weekday
	jobs := []struct {
		name string
		spec string
		run  func()
	}{
		{JobScheduleSweep, s.cfg.ScheduleSweepSpec, func() { _ = s.runScheduleSweep(context.Background()) }},
		{JobOverdueSweep, s.cfg.OverdueSweepSpec, func() { _ = s.runOverdueSweep(context.Background()) }},
	}

	s.mu.Lock()
	for _, job := range jobs {
		id, err := s.cron.AddFunc(job.spec, job.run)
		if err != nil {
			s.mu.Unlock()
			return fmt.Errorf("failed to schedule %s job: %w", job.name, err)
		}
		s.entries[job.name] = id
		s.logger.WithFields(logrus.Fields{"job": job.name, "spec": job.spec}).Info("Scheduled job")
	}
	s.mu.Unlock()

	s.cron.Start()
	s.logger.Info("Cron service started")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	s.logger.Info("Stopping cron service...")
	<-s.cron.Stop().Done()
	s.logger.Info("Cron service stopped")
}

func (s *CronService) runScheduleSweep(ctx context.Context) error {
	return s.track(ctx, JobScheduleSweep, func(ctx context.Context) (interface{}, error) {
		return s.schedules.SweepAll(ctx)
	})
}

func (s *CronService) runOverdueSweep(ctx context.Context) error {
	return s.track(ctx, JobOverdueSweep, func(ctx context.Context) (interface{}, error) {
		return s.overdue.Run(ctx)
	})
}

func (s *CronService) track(ctx context.Context, name string, job func(context.Context) (interface{}, error)) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	run := JobRun{StartedAt: time.Now()}
	result, err := job(ctx)
	run.Duration = time.Since(run.StartedAt)
	run.Result = result

	log := s.logger.WithFields(logrus.Fields{"job": name, "duration": run.Duration.String()})
	if err != nil {
		run.Error = err.Error()
		log.WithError(err).Error("Job finished with errors")
	} else {
		log.Info("Job finished")
	}

	s.mu.Lock()
	s.lastRun[name] = run
	s.mu.Unlock()

	return err
}

// RunScheduleSweepNow runs the schedule sweep immediately
func (s *CronService) RunScheduleSweepNow(ctx context.Context) (JobRun, error) {
	err := s.runScheduleSweep(ctx)
	return s.last(JobScheduleSweep), err
}

// RunOverdueSweepNow runs the overdue sweep immediately
func (s *CronService) RunOverdueSweepNow(ctx context.Context) (JobRun, error) {
	err := s.runOverdueSweep(ctx)
	return s.last(JobOverdueSweep), err
}

func (s *CronService) last(name string) JobRun {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun[name]
}

// GetJobStatus returns the schedule and last outcome of every job
func (s *CronService) GetJobStatus() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs := make(map[string]interface{}, len(s.entries))
	for name, id := range s.entries {
		entry := s.cron.Entry(id)
		status := map[string]interface{}{
			"next_run": entry.Next,
			"prev_run": entry.Prev,
		}
		if run, ok := s.lastRun[name]; ok {
			status["last_run"] = run
		}
		jobs[name] = status
	}

	return map[string]interface{}{
		"running":   len(s.entries) > 0,
		"job_count": len(s.entries),
		"jobs":      jobs,
	}
}
