package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/pinkcat015/todolist/pkg/logger"
)

// EventScheduler runs named background jobs. A job never overlaps with itself.
type EventScheduler interface {
	Start()
	Stop()
	AddJob(id, cronExpr string, task func()) error
	AddIntervalJob(id string, every time.Duration, task func()) error
	RemoveJob(id string) error
	GetJob(id string) (*JobInfo, bool)
	ListJobs() map[string]*JobInfo
	IsRunning() bool
}

type JobInfo struct {
	ID       string     `json:"id"`
	CronExpr string     `json:"cron"`
	IsActive bool       `json:"isActive"`
	Running  bool       `json:"running"`
	LastRun  *time.Time `json:"lastRun,omitempty"`
	NextRun  *time.Time `json:"nextRun,omitempty"`

	job *gocron.Job
}

type GocronScheduler struct {
	scheduler *gocron.Scheduler
	jobs      map[string]*JobInfo
	mu        sync.RWMutex
	running   bool
}

func NewEventScheduler() EventScheduler {
	s := gocron.NewScheduler(time.UTC)
	// a tick that is still running when the next one is due is skipped
	s.SingletonModeAll()

	return &GocronScheduler{
		scheduler: s,
		jobs:      make(map[string]*JobInfo),
	}
}

func (s *GocronScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	s.scheduler.StartAsync()
	s.running = true
	logger.Component("scheduler").Info("Event scheduler started", "jobs", len(s.jobs))
}

func (s *GocronScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.scheduler.Stop()
	s.running = false
	logger.Component("scheduler").Info("Event scheduler stopped")
}

func (s *GocronScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// AddIntervalJob schedules task every interval using the "@every" descriptor.
func (s *GocronScheduler) AddIntervalJob(id string, every time.Duration, task func()) error {
	if every <= 0 {
		return fmt.Errorf("job %s: interval must be positive", id)
	}
	return s.AddJob(id, "@every "+every.String(), task)
}

func (s *GocronScheduler) AddJob(id, cronExpr string, task func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[id]; exists {
		return fmt.Errorf("job with ID %s already exists", id)
	}

	log := logger.Component("scheduler")

	job, err := s.scheduler.Cron(cronExpr).Do(func() {
		now := time.Now()
		s.markStarted(id, now)
		defer s.markFinished(id)

		log.Debug("Executing job", "job", id)
		task()
	})
	if err != nil {
		return fmt.Errorf("failed to create job %s: %w", id, err)
	}

	nextRun := job.NextRun()
	s.jobs[id] = &JobInfo{
		ID:       id,
		CronExpr: cronExpr,
		IsActive: true,
		NextRun:  &nextRun,
		job:      job,
	}

	log.Info("Job added", "job", id, "cron", cronExpr, "next_run", nextRun.Format(time.RFC3339))
	return nil
}

func (s *GocronScheduler) markStarted(id string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if info, ok := s.jobs[id]; ok {
		info.LastRun = &at
		info.Running = true
	}
}

func (s *GocronScheduler) markFinished(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if info, ok := s.jobs[id]; ok {
		info.Running = false
		if info.job != nil {
			next := info.job.NextRun()
			info.NextRun = &next
		}
	}
}

func (s *GocronScheduler) RemoveJob(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, exists := s.jobs[id]
	if !exists {
		return fmt.Errorf("job with ID %s not found", id)
	}

	if info.job != nil {
		s.scheduler.RemoveByReference(info.job)
	}

	delete(s.jobs, id)
	logger.Component("scheduler").Info("Job removed", "job", id)
	return nil
}

func (s *GocronScheduler) GetJob(id string) (*JobInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, exists := s.jobs[id]
	if !exists {
		return nil, false
	}
	return snapshot(info), true
}

func (s *GocronScheduler) ListJobs() map[string]*JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make(map[string]*JobInfo, len(s.jobs))
	for id, info := range s.jobs {
		jobs[id] = snapshot(info)
	}
	return jobs
}

// snapshot copies info so callers never share the scheduler's state.
func snapshot(info *JobInfo) *JobInfo {
	out := &JobInfo{
		ID:       info.ID,
		CronExpr: info.CronExpr,
		IsActive: info.IsActive,
		Running:  info.Running,
	}
	if info.LastRun != nil {
		lastRun := *info.LastRun
		out.LastRun = &lastRun
	}
	if info.job != nil {
		nextRun := info.job.NextRun()
		out.NextRun = &nextRun
	} else if info.NextRun != nil {
		nextRun := *info.NextRun
		out.NextRun = &nextRun
	}
	return out
}
