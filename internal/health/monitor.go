package health

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/example/tutorhub/internal/logger"
	"github.com/go-co-op/gocron"
)

// Pinger is the part of the store handle the monitor needs
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Status is the outcome of the latest check
type Status struct {
	Healthy   bool
	Err       error
	CheckedAt time.Time
}

// Monitor pings the store on a schedule and keeps the latest result
type Monitor struct {
	db        Pinger
	interval  time.Duration
	timeout   time.Duration
	scheduler *gocron.Scheduler
	log       *logger.Logger

	mu     sync.RWMutex
	status Status
}

// New creates a monitor. It reports healthy until the first check says otherwise.
func New(db Pinger, interval time.Duration, log *logger.Logger) *Monitor {
	timeout := interval / 2
	if timeout > 5*time.Second {
		timeout = 5 * time.Second
	}
	return &Monitor{
		db:        db,
		interval:  interval,
		timeout:   timeout,
		scheduler: gocron.NewScheduler(time.UTC),
		log:       log,
		status:    Status{Healthy: true},
	}
}

// Start schedules the periodic check, running the first one immediately
func (m *Monitor) Start() error {
	_, err := m.scheduler.Every(m.interval).SingletonMode().Do(m.runCheck)
	if err != nil {
		return fmt.Errorf("failed to schedule health check: %w", err)
	}
	m.scheduler.StartAsync()
	return nil
}

// Stop terminates the schedule
func (m *Monitor) Stop() {
	m.scheduler.Stop()
}

func (m *Monitor) runCheck() {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()
	_ = m.Check(ctx)
}

// Check pings the store once and records the result
func (m *Monitor) Check(ctx context.Context) error {
	err := m.db.PingContext(ctx)

	m.mu.Lock()
	was := m.status.Healthy
	m.status = Status{Healthy: err == nil, Err: err, CheckedAt: time.Now().UTC()}
	m.mu.Unlock()

	switch {
	case err != nil && was:
		m.log.Error("store became unreachable", "error", err)
	case err == nil && !was:
		m.log.Info("store reachable again")
	}
	return err
}

// Status returns the latest check result
func (m *Monitor) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}
