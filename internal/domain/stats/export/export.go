// Package export renders club season reports as CSV or XLSX files.
// It uses gocsv for struct-based marshaling so the column set lives in one
// place, the struct tags.
package export

import (
	"context"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	"github.com/nicobuchet/hb-data-analyst/internal/domain/stats/repository"
)

// ClubReportRow is one player line of a club season report.
type ClubReportRow struct {
	Player      string  `csv:"player"`
	Matches     int     `csv:"matches"`
	Goals       int     `csv:"goals"`
	Shots       int     `csv:"shots"`
	ShootingPct float64 `csv:"shooting_pct"`
	Goals7m     int     `csv:"goals_7m"`
	Saves       int     `csv:"saves"`
	Yellow      int     `csv:"yellow_cards"`
	TwoMinutes  int     `csv:"two_minutes"`
	Red         int     `csv:"red_cards"`
	Blue        int     `csv:"blue_cards"`
}

// Exporter builds club reports from aggregated player lines
type Exporter struct {
	repo repository.StatsRepository
}

// NewExporter creates a new club report exporter
func NewExporter(repo repository.StatsRepository) *Exporter {
	return &Exporter{repo: repo}
}

// ClubReport builds the per-player report rows for one club, ordered by
// goals scored.
func (e *Exporter) ClubReport(ctx context.Context, teamName string) ([]ClubReportRow, error) {
	aggs, err := e.repo.TeamPlayerAggregates(ctx, teamName)
	if err != nil {
		return nil, fmt.Errorf("loading club report for %q: %w", teamName, err)
	}

	rows := make([]ClubReportRow, 0, len(aggs))
	for _, a := range aggs {
		row := ClubReportRow{
			Player:     a.PlayerName,
			Matches:    a.Matches,
			Goals:      a.Goals,
			Shots:      a.Shots,
			Goals7m:    a.Goals7m,
			Saves:      a.Saves,
			Yellow:     a.YellowCards,
			TwoMinutes: a.TwoMinutes,
			Red:        a.RedCards,
			Blue:       a.BlueCards,
		}
		if a.Shots > 0 {
			row.ShootingPct = 100 * float64(a.Goals) / float64(a.Shots)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteCSV writes the report rows as CSV with a header line.
func WriteCSV(w io.Writer, rows []ClubReportRow) error {
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("writing CSV report: %w", err)
	}
	return nil
}

var xlsxHeader = []any{
	"Player", "Matches", "Goals", "Shots", "Shooting %",
	"7m Goals", "Saves", "Yellow", "2'", "Red", "Blue",
}

// WriteXLSX writes the report rows as a single-sheet workbook.
func WriteXLSX(w io.Writer, teamName string, rows []ClubReportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetName(sheet, teamName); err != nil {
		return fmt.Errorf("naming report sheet: %w", err)
	}
	sheet = teamName

	if err := f.SetSheetRow(sheet, "A1", &xlsxHeader); err != nil {
		return fmt.Errorf("writing report header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("addressing report row %d: %w", i, err)
		}
		values := []any{
			r.Player, r.Matches, r.Goals, r.Shots, r.ShootingPct,
			r.Goals7m, r.Saves, r.Yellow, r.TwoMinutes, r.Red, r.Blue,
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("writing report row %d: %w", i, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing XLSX report: %w", err)
	}
	return nil
}
