// Package service computes league tables and player rankings from stored
// match data.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/nicobuchet/hb-data-analyst/internal/domain/stats/repository"
)

const (
	pointsWin  = 2
	pointsDraw = 1
)

// StandingRow is one line of a league table.
type StandingRow struct {
	Rank         int
	TeamID       uuid.UUID
	Team         string
	Played       int
	Wins         int
	Draws        int
	Losses       int
	GoalsFor     int
	GoalsAgainst int
	GoalDiff     int
	Points       int
}

// TeamStats is a team's aggregate line enriched with derived ratios.
type TeamStats struct {
	repository.TeamAggregate
	ShootingPct float64
}

// StatsService serves standings, rankings and search over imported matches
type StatsService struct {
	repo   repository.StatsRepository
	logger *slog.Logger

	mu        sync.RWMutex
	standings map[uuid.UUID][]StandingRow
}

// NewStatsService creates a new stats service
func NewStatsService(repo repository.StatsRepository, logger *slog.Logger) *StatsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsService{
		repo:      repo,
		logger:    logger,
		standings: map[uuid.UUID][]StandingRow{},
	}
}

// Leagues lists every league with at least one imported match.
func (s *StatsService) Leagues(ctx context.Context) ([]repository.LeagueInfo, error) {
	return s.repo.ListLeagues(ctx)
}

// Standings returns the league table, serving the cached copy when one
// exists. A cache miss computes from the database and fills the cache.
func (s *StatsService) Standings(ctx context.Context, leagueID uuid.UUID) ([]StandingRow, error) {
	s.mu.RLock()
	cached, ok := s.standings[leagueID]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}
	return s.computeStandings(ctx, leagueID)
}

// RefreshStandings recomputes the table of every league. The cron scheduler
// calls this nightly so API reads stay cheap.
func (s *StatsService) RefreshStandings(ctx context.Context) error {
	leagues, err := s.repo.ListLeagues(ctx)
	if err != nil {
		return fmt.Errorf("listing leagues for refresh: %w", err)
	}
	for _, l := range leagues {
		if _, err := s.computeStandings(ctx, l.ID); err != nil {
			return fmt.Errorf("refreshing standings for %s: %w", l.Name, err)
		}
	}
	s.logger.Info("standings cache refreshed", slog.Int("leagues", len(leagues)))
	return nil
}

func (s *StatsService) computeStandings(ctx context.Context, leagueID uuid.UUID) ([]StandingRow, error) {
	results, err := s.repo.LeagueResults(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	byTeam := map[uuid.UUID]*StandingRow{}
	rowFor := func(id uuid.UUID, name string) *StandingRow {
		if row, ok := byTeam[id]; ok {
			return row
		}
		row := &StandingRow{TeamID: id, Team: name}
		byTeam[id] = row
		return row
	}

	for _, m := range results {
		home := rowFor(m.HomeTeamID, m.HomeTeam)
		away := rowFor(m.AwayTeamID, m.AwayTeam)

		home.Played++
		away.Played++
		home.GoalsFor += m.HomeScore
		home.GoalsAgainst += m.AwayScore
		away.GoalsFor += m.AwayScore
		away.GoalsAgainst += m.HomeScore

		switch {
		case m.HomeScore > m.AwayScore:
			home.Wins++
			home.Points += pointsWin
			away.Losses++
		case m.HomeScore < m.AwayScore:
			away.Wins++
			away.Points += pointsWin
			home.Losses++
		default:
			home.Draws++
			away.Draws++
			home.Points += pointsDraw
			away.Points += pointsDraw
		}
	}

	table := make([]StandingRow, 0, len(byTeam))
	for _, row := range byTeam {
		row.GoalDiff = row.GoalsFor - row.GoalsAgainst
		table = append(table, *row)
	}

	sort.Slice(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDiff != b.GoalDiff {
			return a.GoalDiff > b.GoalDiff
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.Team < b.Team
	})
	for i := range table {
		table[i].Rank = i + 1
	}

	s.mu.Lock()
	s.standings[leagueID] = table
	s.mu.Unlock()

	return table, nil
}

// TopScorers ranks players by goals scored, optionally per league.
func (s *StatsService) TopScorers(ctx context.Context, leagueID *uuid.UUID, limit int) ([]repository.PlayerAggregate, error) {
	return s.rankedPlayers(ctx, leagueID, limit, func(a repository.PlayerAggregate) int { return a.Goals })
}

// TopGoalkeepers ranks players by saves, optionally per league.
func (s *StatsService) TopGoalkeepers(ctx context.Context, leagueID *uuid.UUID, limit int) ([]repository.PlayerAggregate, error) {
	return s.rankedPlayers(ctx, leagueID, limit, func(a repository.PlayerAggregate) int { return a.Saves })
}

// TopSevenMeter ranks players by converted seven-meter throws.
func (s *StatsService) TopSevenMeter(ctx context.Context, leagueID *uuid.UUID, limit int) ([]repository.PlayerAggregate, error) {
	return s.rankedPlayers(ctx, leagueID, limit, func(a repository.PlayerAggregate) int { return a.Goals7m })
}

// MostSanctioned ranks players by accumulated sanctions, weighting a red
// card over a suspension over a warning.
func (s *StatsService) MostSanctioned(ctx context.Context, leagueID *uuid.UUID, limit int) ([]repository.PlayerAggregate, error) {
	return s.rankedPlayers(ctx, leagueID, limit, func(a repository.PlayerAggregate) int {
		return a.YellowCards + 2*a.TwoMinutes + 3*a.RedCards + 3*a.BlueCards
	})
}

func (s *StatsService) rankedPlayers(ctx context.Context, leagueID *uuid.UUID, limit int, key func(repository.PlayerAggregate) int) ([]repository.PlayerAggregate, error) {
	aggs, err := s.repo.PlayerAggregates(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	sort.Slice(aggs, func(i, j int) bool {
		ki, kj := key(aggs[i]), key(aggs[j])
		if ki != kj {
			return ki > kj
		}
		return aggs[i].PlayerName < aggs[j].PlayerName
	})

	// Drop the zero tail: a ranking of players who never did the thing
	// ranked is noise.
	n := 0
	for n < len(aggs) && key(aggs[n]) > 0 {
		n++
	}
	aggs = aggs[:n]

	if limit > 0 && len(aggs) > limit {
		aggs = aggs[:limit]
	}
	return aggs, nil
}

// TeamStats returns every team's aggregate line with shooting percentage.
func (s *StatsService) TeamStats(ctx context.Context) ([]TeamStats, error) {
	aggs, err := s.repo.TeamAggregates(ctx)
	if err != nil {
		return nil, err
	}

	stats := make([]TeamStats, 0, len(aggs))
	for _, a := range aggs {
		ts := TeamStats{TeamAggregate: a}
		if a.Shots > 0 {
			ts.ShootingPct = 100 * float64(a.Goals) / float64(a.Shots)
		}
		stats = append(stats, ts)
	}
	return stats, nil
}

// BestPerformances returns the strongest single-match goal hauls.
func (s *StatsService) BestPerformances(ctx context.Context, limit int) ([]repository.MatchPerformance, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.TopMatchPerformances(ctx, limit)
}

// ClubMatches returns every finished match one club played.
func (s *StatsService) ClubMatches(ctx context.Context, teamName string) ([]repository.MatchResult, error) {
	return s.repo.TeamResults(ctx, teamName)
}

// SearchClubs fuzzy-matches the query against every known team name.
func (s *StatsService) SearchClubs(ctx context.Context, query string, limit int) ([]repository.TeamRef, error) {
	teams, err := s.repo.ListTeams(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(teams))
	for i, t := range teams {
		names[i] = t.Name
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Sort(ranks)

	matches := make([]repository.TeamRef, 0, len(ranks))
	for _, r := range ranks {
		matches = append(matches, teams[r.OriginalIndex])
		if limit > 0 && len(matches) == limit {
			break
		}
	}
	return matches, nil
}

// SearchPlayers fuzzy-matches the query against every known player name,
// best matches first. Matching folds case and diacritics so "juquel" finds
// "JUQUEL loïc".
func (s *StatsService) SearchPlayers(ctx context.Context, query string, limit int) ([]repository.PlayerRef, error) {
	players, err := s.repo.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Sort(ranks)

	matches := make([]repository.PlayerRef, 0, len(ranks))
	for _, r := range ranks {
		matches = append(matches, players[r.OriginalIndex])
		if limit > 0 && len(matches) == limit {
			break
		}
	}
	return matches, nil
}
