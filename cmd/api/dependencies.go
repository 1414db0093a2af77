package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nicobuchet/hb-data-analyst/internal/domain/report/extractor"
	reportrepo "github.com/nicobuchet/hb-data-analyst/internal/domain/report/repository"
	reportservice "github.com/nicobuchet/hb-data-analyst/internal/domain/report/service"
	"github.com/nicobuchet/hb-data-analyst/internal/domain/stats/export"
	statshandler "github.com/nicobuchet/hb-data-analyst/internal/domain/stats/handler"
	statsrepo "github.com/nicobuchet/hb-data-analyst/internal/domain/stats/repository"
	statsservice "github.com/nicobuchet/hb-data-analyst/internal/domain/stats/service"
	"github.com/nicobuchet/hb-data-analyst/pkg/config"
	"github.com/nicobuchet/hb-data-analyst/pkg/cron"
	"github.com/nicobuchet/hb-data-analyst/pkg/db"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Pool   *pgxpool.Pool
	Logger *slog.Logger

	// Repositories
	ReportRepo reportrepo.MatchRepository
	StatsRepo  statsrepo.StatsRepository

	// Services
	ImportService *reportservice.ImportService
	StatsService  *statsservice.StatsService
	Exporter      *export.Exporter
	Scheduler     *cron.Scheduler

	// Handlers
	StatsHandler *statshandler.Handler
}

// InitDependencies initializes all application dependencies
func InitDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := db.Migrate(cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	pool, err := db.New(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to init database: %w", err)
	}
	deps.Pool = pool

	deps.ReportRepo = reportrepo.NewPostgresMatchRepository(pool)
	deps.StatsRepo = statsrepo.NewPostgresStatsRepository(pool)

	deps.ImportService = reportservice.NewImportService(deps.ReportRepo, extractor.ExtractTables, logger)
	deps.StatsService = statsservice.NewStatsService(deps.StatsRepo, logger)
	deps.Exporter = export.NewExporter(deps.StatsRepo)
	deps.Scheduler = cron.NewScheduler(deps.StatsService, cfg.Cron.StandingsRefreshSpec, logger)

	deps.StatsHandler = statshandler.NewHandler(deps.StatsService, deps.ImportService, deps.Exporter, logger)

	logger.Info("all dependencies initialized successfully")

	return deps, nil
}

// Close releases the database pool.
func (d *Dependencies) Close() {
	if d.Pool != nil {
		d.Pool.Close()
	}
}
