// Package service provides the report import orchestration logic.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nicobuchet/hb-data-analyst/internal/domain/report/parser"
	"github.com/nicobuchet/hb-data-analyst/internal/domain/report/repository"
)

// ExtractFunc turns a PDF file into raw text grids, one per page.
type ExtractFunc func(path string) ([]parser.Grid, error)

// ImportOutcome summarizes what a single report import did.
type ImportOutcome struct {
	MatchID        uuid.UUID
	Duplicate      bool
	HomeTeam       string
	AwayTeam       string
	Players        int
	Actions        int
	UnknownActions int
}

// ImportService orchestrates extraction, parsing and storage of reports
type ImportService struct {
	repo    repository.MatchRepository
	extract ExtractFunc
	logger  *slog.Logger
}

// NewImportService creates a new report import service
func NewImportService(repo repository.MatchRepository, extract ExtractFunc, logger *slog.Logger) *ImportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImportService{repo: repo, extract: extract, logger: logger}
}

// ImportFile extracts the grids from the PDF at path and imports them.
func (s *ImportService) ImportFile(ctx context.Context, path string) (*ImportOutcome, error) {
	grids, err := s.extract(path)
	if err != nil {
		reportsFailed.Inc()
		return nil, fmt.Errorf("extracting tables: %w", err)
	}
	return s.ImportGrids(ctx, grids)
}

// ImportGrids parses the given grids as one match report and stores the
// result. A report whose identity is already stored is not an error: the
// outcome comes back with Duplicate set and nothing is written.
func (s *ImportService) ImportGrids(ctx context.Context, grids []parser.Grid) (*ImportOutcome, error) {
	res, err := parser.ParseDocument(grids)
	if err != nil {
		reportsFailed.Inc()
		return nil, err
	}
	info := res.Info

	homeID, err := s.repo.GetOrCreateTeam(ctx, info.HomeTeam)
	if err != nil {
		reportsFailed.Inc()
		return nil, err
	}
	awayID, err := s.repo.GetOrCreateTeam(ctx, info.AwayTeam)
	if err != nil {
		reportsFailed.Inc()
		return nil, err
	}

	var leagueID *uuid.UUID
	if info.LeagueName != nil {
		id, err := s.repo.GetOrCreateLeague(ctx, *info.LeagueName, info.LeagueGroupID, info.LeagueGroupName, info.Season)
		if err != nil {
			reportsFailed.Inc()
			return nil, err
		}
		leagueID = &id
	}

	exists, err := s.repo.MatchExists(ctx, homeID, awayID, info.MatchDate)
	if err != nil {
		reportsFailed.Inc()
		return nil, err
	}
	if exists {
		reportsDuplicate.Inc()
		s.logger.Info("report already imported, skipping",
			slog.String("home_team", info.HomeTeam),
			slog.String("away_team", info.AwayTeam))
		return &ImportOutcome{Duplicate: true, HomeTeam: info.HomeTeam, AwayTeam: info.AwayTeam}, nil
	}

	rec := s.buildRecord(info, leagueID, homeID, awayID, res)

	matchID, err := s.repo.StoreMatch(ctx, rec)
	if errors.Is(err, repository.ErrDuplicateMatch) {
		// Lost a race with a concurrent import of the same report.
		reportsDuplicate.Inc()
		return &ImportOutcome{Duplicate: true, HomeTeam: info.HomeTeam, AwayTeam: info.AwayTeam}, nil
	}
	if err != nil {
		reportsFailed.Inc()
		return nil, err
	}

	outcome := &ImportOutcome{
		MatchID:  matchID,
		HomeTeam: info.HomeTeam,
		AwayTeam: info.AwayTeam,
		Players:  len(res.Players),
		Actions:  len(res.Actions),
	}
	for _, a := range res.Actions {
		if a.Type == parser.ActionUnknown {
			outcome.UnknownActions++
		}
	}

	reportsImported.Inc()
	unknownActions.Add(float64(outcome.UnknownActions))
	s.logger.Info("report imported",
		slog.String("match_id", matchID.String()),
		slog.String("home_team", info.HomeTeam),
		slog.String("away_team", info.AwayTeam),
		slog.Int("players", outcome.Players),
		slog.Int("actions", outcome.Actions),
		slog.Int("unknown_actions", outcome.UnknownActions))

	return outcome, nil
}

func (s *ImportService) buildRecord(info *parser.MatchInfo, leagueID *uuid.UUID, homeID, awayID uuid.UUID, res *parser.Result) *repository.MatchRecord {
	teamFor := func(side parser.TeamSide) uuid.UUID {
		if side == parser.TeamHome {
			return homeID
		}
		return awayID
	}

	rec := &repository.MatchRecord{
		LeagueID:       leagueID,
		HomeTeamID:     homeID,
		AwayTeamID:     awayID,
		MatchDate:      info.MatchDate,
		HTScoreHome:    info.HTScoreHome,
		HTScoreAway:    info.HTScoreAway,
		FinalScoreHome: info.FinalScoreHome,
		FinalScoreAway: info.FinalScoreAway,
	}

	for _, p := range res.Players {
		rec.Stats = append(rec.Stats, repository.PlayerStatRow{
			PlayerName:  p.PlayerName,
			TeamID:      teamFor(p.Team),
			IsCaptain:   p.IsCaptain,
			IsOfficial:  p.IsOfficial,
			Goals:       p.Goals,
			Shots:       p.Shots,
			Goals7m:     p.Goals7m,
			Saves:       p.Saves,
			YellowCards: p.YellowCards,
			TwoMinutes:  p.TwoMinutes,
			RedCards:    p.RedCards,
			BlueCards:   p.BlueCards,
		})
	}

	for i, a := range res.Actions {
		row := repository.ActionRow{
			Seq:          i,
			Period:       a.Period,
			Clock:        a.Clock,
			Score:        a.Score,
			ActionType:   string(a.Type),
			PlayerNumber: a.PlayerNumber,
			PlayerName:   a.PlayerName,
			RawText:      a.RawText,
		}
		if a.ParsedAction.Team != nil {
			id := teamFor(*a.ParsedAction.Team)
			row.TeamID = &id
		}
		rec.Actions = append(rec.Actions, row)
	}

	return rec
}
