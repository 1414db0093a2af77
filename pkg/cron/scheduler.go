// Package cron provides scheduled background jobs using robfig/cron.
package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	statsservice "github.com/nicobuchet/hb-data-analyst/internal/domain/stats/service"
)

// Scheduler manages background scheduled jobs using robfig/cron.
type Scheduler struct {
	cron        *cron.Cron
	stats       *statsservice.StatsService
	refreshSpec string
	logger      *slog.Logger
}

// NewScheduler creates a new job scheduler.
func NewScheduler(stats *statsservice.StatsService, refreshSpec string, logger *slog.Logger) *Scheduler {
	// Create cron with seconds disabled (standard 5-field format)
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))))

	return &Scheduler{
		cron:        c,
		stats:       stats,
		refreshSpec: refreshSpec,
		logger:      logger,
	}
}

// Start begins scheduled jobs.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.refreshSpec, s.refreshStandings)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("cron scheduler started",
		slog.Int("jobs", len(s.cron.Entries())),
	)
	return nil
}

// Stop gracefully stops all scheduled jobs.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("cron scheduler stopping")
	return s.cron.Stop()
}

// RunNow manually triggers the standings refresh (for testing/admin).
func (s *Scheduler) RunNow() {
	go s.refreshStandings()
}

// refreshStandings recomputes the league tables so reads hit a warm cache.
func (s *Scheduler) refreshStandings() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	s.logger.Info("starting standings cache refresh")

	if err := s.stats.RefreshStandings(ctx); err != nil {
		s.logger.Error("standings cache refresh failed", slog.Any("error", err))
		return
	}

	s.logger.Info("standings cache refresh completed")
}
