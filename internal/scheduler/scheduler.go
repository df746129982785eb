// Package scheduler runs the periodic maintenance jobs and reports their
// health through the gRPC health service
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/gamewaifu/waifu-api/internal/errors"
)

// DefaultTimeout bounds a single run when the config leaves it unset
const DefaultTimeout = time.Minute

// ServicePrefix namespaces job names in the health service
const ServicePrefix = "waifu.jobs."

// Job is one scheduled unit of work
type Job struct {
	Name     string
	Schedule string
	Run      func(ctx context.Context) error
}

// HealthReporter receives the outcome of every run. *health.Server satisfies it.
type HealthReporter interface {
	SetServingStatus(service string, servingStatus grpc_health_v1.HealthCheckResponse_ServingStatus)
}

// Config holds the jobs and their shared settings
type Config struct {
	Jobs    []Job
	Timeout time.Duration
	// Health is optional
	Health HealthReporter
}

// Validate checks every job up front so a bad expression fails at startup
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	seen := make(map[string]bool, len(c.Jobs))
	for i, job := range c.Jobs {
		field := fmt.Sprintf("Jobs[%d]", i)
		if job.Name == "" {
			vb.RequiredField(field + ".Name")
		} else if seen[job.Name] {
			vb.Field(field+".Name", "duplicate job name "+job.Name)
		}
		seen[job.Name] = true

		if job.Run == nil {
			vb.RequiredField(field + ".Run")
		}
		if _, err := cron.ParseStandard(job.Schedule); err != nil {
			vb.Field(field+".Schedule", err.Error())
		}
	}
	if c.Timeout < 0 {
		vb.Field("Timeout", "cannot be negative")
	}

	return vb.Build()
}

// Scheduler owns a cron instance and the wrapped jobs it triggers
type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
	health  HealthReporter
	jobs    map[string]cron.Job

	mu      sync.Mutex
	started bool
}

// New validates cfg and registers every job. Nothing runs until Start.
func New(cfg *Config) (*Scheduler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	s := &Scheduler{
		cron:    cron.New(cron.WithLogger(cronLogger{})),
		timeout: cfg.Timeout,
		health:  cfg.Health,
		jobs:    make(map[string]cron.Job, len(cfg.Jobs)),
	}
	if s.timeout == 0 {
		s.timeout = DefaultTimeout
	}

	// each job gets its own chain so SkipIfStillRunning tracks it separately
	for _, job := range cfg.Jobs {
		chain := cron.NewChain(cron.Recover(cronLogger{}), cron.SkipIfStillRunning(cronLogger{}))
		wrapped := chain.Then(cron.FuncJob(s.runner(job)))
		if _, err := s.cron.AddJob(job.Schedule, wrapped); err != nil {
			return nil, errors.Wrapf(err, "failed to schedule job %s", job.Name)
		}
		s.jobs[job.Name] = wrapped
	}

	return s, nil
}

// ServiceName is the health service name reported for a job
func ServiceName(job string) string {
	return ServicePrefix + job
}

// Start marks every job serving and begins ticking
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	for name := range s.jobs {
		s.report(name, grpc_health_v1.HealthCheckResponse_SERVING)
	}
	s.cron.Start()
	slog.Info("Scheduler started", "jobs", len(s.jobs))
}

// Stop halts ticking and waits for running jobs until ctx is done
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	s.started = false
	s.mu.Unlock()

	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "timed out waiting for running jobs")
	}
}

// Trigger runs a job immediately on the calling goroutine through the same
// recover and skip-if-running chain the cron ticks use
func (s *Scheduler) Trigger(name string) error {
	job, ok := s.jobs[name]
	if !ok {
		return errors.NotFoundf("job %s not found", name)
	}
	job.Run()
	return nil
}

func (s *Scheduler) runner(job Job) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		start := time.Now()
		status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
		// a panic leaves the job NOT_SERVING before Recover logs it
		defer func() { s.report(job.Name, status) }()

		if err := job.Run(ctx); err != nil {
			slog.ErrorContext(ctx, "scheduled job failed",
				"job", job.Name,
				"duration", time.Since(start),
				"error", err,
			)
			return
		}

		status = grpc_health_v1.HealthCheckResponse_SERVING
		slog.DebugContext(ctx, "Scheduled job finished",
			"job", job.Name,
			"duration", time.Since(start),
		)
	}
}

func (s *Scheduler) report(name string, status grpc_health_v1.HealthCheckResponse_ServingStatus) {
	if s.health == nil {
		return
	}
	s.health.SetServingStatus(ServiceName(name), status)
}

// cronLogger routes cron's own messages to slog
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	slog.Debug(msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	slog.Error(msg, append(keysAndValues, "error", err)...)
}
