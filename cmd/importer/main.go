// Command importer parses one match report PDF, given as a local path or an
// URL, and stores it in the database.
//
//	importer https://media.ffhandball.fr/.../match.pdf
//	importer ./reports/match.pdf
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nicobuchet/hb-data-analyst/internal/domain/report/extractor"
	"github.com/nicobuchet/hb-data-analyst/internal/domain/report/parser"
	reportrepo "github.com/nicobuchet/hb-data-analyst/internal/domain/report/repository"
	reportservice "github.com/nicobuchet/hb-data-analyst/internal/domain/report/service"
	"github.com/nicobuchet/hb-data-analyst/pkg/config"
	"github.com/nicobuchet/hb-data-analyst/pkg/db"
	"github.com/nicobuchet/hb-data-analyst/pkg/fetch"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <report-url-or-path>\n", os.Args[0])
		os.Exit(2)
	}

	if err := run(os.Args[1], logger); err != nil {
		logger.Error("import failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(arg string, logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.Migrate(cfg.Database); err != nil {
		return err
	}

	pool, err := db.New(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	path := arg
	if fetch.IsURL(arg) {
		fetcher := fetch.NewFetcher(cfg.Importer.DownloadDir, cfg.Importer.DownloadTimeout)
		path, err = fetcher.Download(ctx, arg)
		if err != nil {
			return err
		}
		logger.Info("report downloaded", slog.String("path", path))
	}

	repo := reportrepo.NewPostgresMatchRepository(pool)
	svc := reportservice.NewImportService(repo, extractor.ExtractTables, logger)

	outcome, err := svc.ImportFile(ctx, path)
	if errors.Is(err, parser.ErrNoTables) {
		return fmt.Errorf("%s contains no readable tables: %w", path, err)
	}
	if err != nil {
		return err
	}

	if outcome.Duplicate {
		fmt.Printf("already imported: %s vs %s, nothing to do\n", outcome.HomeTeam, outcome.AwayTeam)
		return nil
	}

	fmt.Printf("imported %s vs %s: %d player lines, %d actions (%d unknown)\n",
		outcome.HomeTeam, outcome.AwayTeam,
		outcome.Players, outcome.Actions, outcome.UnknownActions)
	return nil
}
