// Package reminders mails every employee their schedule for the coming
// week, once a week at a configured local time.
package reminders

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"jiscare/internal/metrics"
	"jiscare/internal/store"
)

// Mailer sends one weekly schedule email. The roster service satisfies
// this.
type Mailer interface {
	EmailWeeklySchedule(ctx context.Context, employeeID string, ref time.Time) error
}

// SchedulerConfig holds the weekly send schedule.
type SchedulerConfig struct {
	Timezone string
	// Weekday and Hour pick the local send slot.
	Weekday time.Weekday
	Hour    int
	// CheckInterval is how often the loop looks at the clock.
	CheckInterval time.Duration
}

// DefaultSchedulerConfig sends Monday mornings, facility local time.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Timezone:      "Asia/Manila",
		Weekday:       time.Monday,
		Hour:          7,
		CheckInterval: time.Minute,
	}
}

// Scheduler drives the weekly send.
type Scheduler struct {
	config   SchedulerConfig
	store    *store.Store
	mailer   Mailer
	location *time.Location
	logger   *zerolog.Logger

	mu          sync.Mutex
	lastRunDate string // YYYY-MM-DD of the last send
}

// NewScheduler constructs a scheduler; the timezone must resolve.
func NewScheduler(config SchedulerConfig, st *store.Store, mailer Mailer, logger *zerolog.Logger) (*Scheduler, error) {
	if config.CheckInterval <= 0 {
		config.CheckInterval = time.Minute
	}
	loc, err := time.LoadLocation(config.Timezone)
	if err != nil {
		return nil, err
	}
	return &Scheduler{
		config:   config,
		store:    st,
		mailer:   mailer,
		location: loc,
		logger:   logger,
	}, nil
}

// Start runs the scheduler loop until ctx ends.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info().
		Str("timezone", s.config.Timezone).
		Str("weekday", s.config.Weekday.String()).
		Int("hour", s.config.Hour).
		Msg("schedule email scheduler started")

	ticker := time.NewTicker(s.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.checkAndRun(ctx)
		}
	}
}

func (s *Scheduler) checkAndRun(ctx context.Context) {
	now := time.Now().In(s.location)
	if now.Weekday() != s.config.Weekday || now.Hour() < s.config.Hour {
		return
	}

	today := now.Format("2006-01-02")
	s.mu.Lock()
	alreadyRan := s.lastRunDate == today
	if !alreadyRan {
		s.lastRunDate = today
	}
	s.mu.Unlock()
	if alreadyRan {
		return
	}

	s.SendAll(ctx, now)
}

// SendAll mails the week containing ref to every employee with an email
// address. Failures are logged and counted, never retried within the
// same run.
func (s *Scheduler) SendAll(ctx context.Context, ref time.Time) {
	sent, failed, skipped := 0, 0, 0
	for _, emp := range s.store.Employees() {
		if emp.Email == "" {
			skipped++
			continue
		}
		if err := s.mailer.EmailWeeklySchedule(ctx, emp.ID, ref); err != nil {
			metrics.IncScheduleEmail("failure")
			s.logger.Warn().Err(err).Str("employee", emp.ID).Msg("schedule email not sent")
			failed++
			continue
		}
		metrics.IncScheduleEmail("success")
		sent++
	}
	s.logger.Info().
		Int("sent", sent).
		Int("failed", failed).
		Int("skipped", skipped).
		Msg("weekly schedule emails processed")
}
