// Package scheduler loads the dataset at startup and keeps it current: it
// reloads a disk backed dataset at fixed times of day, purges expired
// comparison sessions and logs when the service health degrades.
package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/giygas/vaccines-api/interfaces"
	"github.com/giygas/vaccines-api/logging"
	"github.com/giygas/vaccines-api/metrics"
)

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

const (
	defaultPurgeInterval  = 5 * time.Minute
	defaultHealthInterval = time.Hour
	reloadTimeout         = 2 * time.Minute
)

// SessionPurger drops expired comparison sessions
type SessionPurger interface {
	Purge() int
	Len() int
}

// Options controls which jobs run and when
type Options struct {
	ReloadTimes    []string // Daily HH:MM reload times
	Reload         bool     // Reload the dataset on ReloadTimes
	PurgeInterval  time.Duration
	HealthInterval time.Duration
}

// Scheduler handles data updates and health monitoring using dependency injection
type Scheduler struct {
	dataStore  interfaces.DataStore
	loader     interfaces.DatasetLoader
	validator  interfaces.DataValidator
	sessions   SessionPurger
	health     interfaces.HealthChecker
	opts       Options
	scheduler  *gocron.Scheduler
	stop       chan struct{}
	stopOnce   sync.Once
	monitoring sync.WaitGroup
}

// NewScheduler creates a new scheduler instance with injected dependencies.
// sessions and health may be nil.
func NewScheduler(
	dataStore interfaces.DataStore,
	loader interfaces.DatasetLoader,
	validator interfaces.DataValidator,
	sessions SessionPurger,
	health interfaces.HealthChecker,
	opts Options,
) *Scheduler {
	if opts.PurgeInterval <= 0 {
		opts.PurgeInterval = defaultPurgeInterval
	}
	if opts.HealthInterval <= 0 {
		opts.HealthInterval = defaultHealthInterval
	}

	s := gocron.NewScheduler(time.Local)
	s.SingletonModeAll()

	return &Scheduler{
		dataStore: dataStore,
		loader:    loader,
		validator: validator,
		sessions:  sessions,
		health:    health,
		opts:      opts,
		scheduler: s,
		stop:      make(chan struct{}),
	}
}

// Start performs the initial load, then schedules the background jobs
func (s *Scheduler) Start() error {
	if err := s.Reload(context.Background()); err != nil {
		logging.Error("Failed to perform initial data load", "error", err)
		return fmt.Errorf("initial data load failed: %w", err)
	}

	if s.opts.Reload {
		at := strings.Join(s.opts.ReloadTimes, ";")
		_, err := s.scheduler.Every(1).Day().At(at).Do(func() {
			if err := s.Reload(context.Background()); err != nil {
				logging.Error("Failed to reload data", "error", err)
			}
		})
		if err != nil {
			logging.Error("Failed to schedule reloads", "error", err)
			return fmt.Errorf("failed to schedule reloads at %q: %w", at, err)
		}
		logging.Info("Dataset reloads scheduled", "at", at, "source", s.loader.Source())
	}

	if s.sessions != nil {
		if _, err := s.scheduler.Every(s.opts.PurgeInterval).Do(s.purgeSessions); err != nil {
			return fmt.Errorf("failed to schedule session purge: %w", err)
		}
	}

	s.scheduler.StartAsync()

	if s.health != nil {
		s.startHealthMonitoring()
	}

	return nil
}

// Stop stops the scheduled jobs and the health monitor. Safe to call twice.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.scheduler.Stop()
		close(s.stop)
		s.monitoring.Wait()
	})
}

// Reload loads a new snapshot and swaps it in. A failed reload keeps the
// current snapshot; an overlapping reload is skipped.
func (s *Scheduler) Reload(ctx context.Context) error {
	if !s.dataStore.BeginUpdate() {
		logging.Info("Update already in progress, skipping...")
		return nil
	}
	defer s.dataStore.EndUpdate()

	ctx, cancel := context.WithTimeout(ctx, reloadTimeout)
	defer cancel()

	logging.Info("Starting dataset load", "source", s.loader.Source())
	start := time.Now()

	cat, report, err := LoadSnapshot(ctx, s.loader, s.validator)
	elapsed := time.Since(start)
	metrics.RecordReload(err, elapsed)
	if err != nil {
		return err
	}

	s.dataStore.UpdateData(cat, report, s.loader.Source())
	counts := cat.Counts()
	metrics.RecordDataset(counts)

	logging.Info("Dataset load completed",
		"duration", elapsed.String(),
		"pathogens", counts["pathogens"],
		"vaccines", counts["vaccines"],
	)
	return nil
}

func (s *Scheduler) purgeSessions() {
	if n := s.sessions.Purge(); n > 0 {
		logging.Debug("Purged expired comparison sessions", "count", n)
	}
	metrics.CompareSessionsActive.Set(float64(s.sessions.Len()))
}

// startHealthMonitoring logs whenever the service is not healthy
func (s *Scheduler) startHealthMonitoring() {
	s.monitoring.Add(1)
	go func() {
		defer s.monitoring.Done()
		ticker := time.NewTicker(s.opts.HealthInterval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				s.checkHealth()
			}
		}
	}()
}

func (s *Scheduler) checkHealth() {
	status, details, _ := s.health.HealthCheck()
	if status != "healthy" {
		logging.Warn("Service health check failed",
			"status", status,
			"data_age_hours", details["data_age_hours"],
			"last_update", details["last_update"],
		)
	}
}
