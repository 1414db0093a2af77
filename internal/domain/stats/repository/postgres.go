package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DB is the subset of pgxpool.Pool the read side needs.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresStatsRepository implements StatsRepository using PostgreSQL
type PostgresStatsRepository struct {
	db DB
}

// NewPostgresStatsRepository creates a new PostgreSQL stats repository
func NewPostgresStatsRepository(db DB) *PostgresStatsRepository {
	return &PostgresStatsRepository{db: db}
}

// ListLeagues returns every league that has at least one match.
func (r *PostgresStatsRepository) ListLeagues(ctx context.Context) ([]LeagueInfo, error) {
	query := `
		SELECT DISTINCT l.id, l.name, l.group_name, l.season
		FROM leagues l
		JOIN matches m ON m.league_id = l.id
		ORDER BY l.name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list leagues: %w", err)
	}
	defer rows.Close()

	var leagues []LeagueInfo
	for rows.Next() {
		var l LeagueInfo
		if err := rows.Scan(&l.ID, &l.Name, &l.GroupName, &l.Season); err != nil {
			return nil, fmt.Errorf("failed to scan league: %w", err)
		}
		leagues = append(leagues, l)
	}
	return leagues, rows.Err()
}

// LeagueResults returns the finished matches of one league.
func (r *PostgresStatsRepository) LeagueResults(ctx context.Context, leagueID uuid.UUID) ([]MatchResult, error) {
	query := `
		SELECT m.id, m.home_team_id, m.away_team_id, ht.name, at.name,
		       m.final_score_home, m.final_score_away, m.match_date
		FROM matches m
		JOIN teams ht ON ht.id = m.home_team_id
		JOIN teams at ON at.id = m.away_team_id
		WHERE m.league_id = $1
		  AND m.final_score_home IS NOT NULL
		  AND m.final_score_away IS NOT NULL
		ORDER BY m.match_date NULLS LAST, m.id`

	rows, err := r.db.Query(ctx, query, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to query league results: %w", err)
	}
	defer rows.Close()

	var results []MatchResult
	for rows.Next() {
		var m MatchResult
		err := rows.Scan(&m.MatchID, &m.HomeTeamID, &m.AwayTeamID,
			&m.HomeTeam, &m.AwayTeam, &m.HomeScore, &m.AwayScore, &m.MatchDate)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match result: %w", err)
		}
		results = append(results, m)
	}
	return results, rows.Err()
}

const playerAggregateSelect = `
	SELECT p.id, p.name, t.name,
	       COUNT(ps.id),
	       COALESCE(SUM(ps.goals), 0),
	       COALESCE(SUM(ps.shots), 0),
	       COALESCE(SUM(ps.goals_7m), 0),
	       COALESCE(SUM(ps.saves), 0),
	       COALESCE(SUM(ps.yellow_cards), 0),
	       COALESCE(SUM(ps.two_minutes), 0),
	       COALESCE(SUM(ps.red_cards), 0),
	       COALESCE(SUM(ps.blue_cards), 0)
	FROM player_stats ps
	JOIN players p ON p.id = ps.player_id
	JOIN teams t ON t.id = ps.team_id
	JOIN matches m ON m.id = ps.match_id`

// PlayerAggregates sums every player's stat lines, optionally per league.
func (r *PostgresStatsRepository) PlayerAggregates(ctx context.Context, leagueID *uuid.UUID) ([]PlayerAggregate, error) {
	query := playerAggregateSelect + `
	WHERE $1::uuid IS NULL OR m.league_id = $1
	GROUP BY p.id, p.name, t.name
	ORDER BY p.name`

	rows, err := r.db.Query(ctx, query, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to query player aggregates: %w", err)
	}
	defer rows.Close()
	return scanPlayerAggregates(rows)
}

// TeamPlayerAggregates sums the stat lines of every player of one team.
func (r *PostgresStatsRepository) TeamPlayerAggregates(ctx context.Context, teamName string) ([]PlayerAggregate, error) {
	query := playerAggregateSelect + `
	WHERE t.name = $1
	GROUP BY p.id, p.name, t.name
	ORDER BY SUM(ps.goals) DESC, p.name`

	rows, err := r.db.Query(ctx, query, teamName)
	if err != nil {
		return nil, fmt.Errorf("failed to query team player aggregates: %w", err)
	}
	defer rows.Close()
	return scanPlayerAggregates(rows)
}

func scanPlayerAggregates(rows pgx.Rows) ([]PlayerAggregate, error) {
	var aggs []PlayerAggregate
	for rows.Next() {
		var a PlayerAggregate
		err := rows.Scan(&a.PlayerID, &a.PlayerName, &a.TeamName,
			&a.Matches, &a.Goals, &a.Shots, &a.Goals7m, &a.Saves,
			&a.YellowCards, &a.TwoMinutes, &a.RedCards, &a.BlueCards)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player aggregate: %w", err)
		}
		aggs = append(aggs, a)
	}
	return aggs, rows.Err()
}

// TeamAggregates sums every team's stat lines across its matches.
func (r *PostgresStatsRepository) TeamAggregates(ctx context.Context) ([]TeamAggregate, error) {
	query := `
		SELECT t.id, t.name,
		       COUNT(DISTINCT ps.match_id),
		       COALESCE(SUM(ps.goals), 0),
		       COALESCE(SUM(ps.shots), 0),
		       COALESCE(SUM(ps.goals_7m), 0),
		       COALESCE(SUM(ps.saves), 0),
		       COALESCE(SUM(ps.yellow_cards), 0),
		       COALESCE(SUM(ps.two_minutes), 0),
		       COALESCE(SUM(ps.red_cards), 0),
		       COALESCE(SUM(ps.blue_cards), 0)
		FROM player_stats ps
		JOIN teams t ON t.id = ps.team_id
		GROUP BY t.id, t.name
		ORDER BY t.name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query team aggregates: %w", err)
	}
	defer rows.Close()

	var aggs []TeamAggregate
	for rows.Next() {
		var a TeamAggregate
		err := rows.Scan(&a.TeamID, &a.TeamName, &a.Matches,
			&a.Goals, &a.Shots, &a.Goals7m, &a.Saves,
			&a.YellowCards, &a.TwoMinutes, &a.RedCards, &a.BlueCards)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team aggregate: %w", err)
		}
		aggs = append(aggs, a)
	}
	return aggs, rows.Err()
}

// ListTeams returns every known team.
func (r *PostgresStatsRepository) ListTeams(ctx context.Context) ([]TeamRef, error) {
	query := `SELECT id, name FROM teams ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []TeamRef
	for rows.Next() {
		var t TeamRef
		if err := rows.Scan(&t.TeamID, &t.Name); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// TeamResults returns the finished matches one team played, home or away.
func (r *PostgresStatsRepository) TeamResults(ctx context.Context, teamName string) ([]MatchResult, error) {
	query := `
		SELECT m.id, m.home_team_id, m.away_team_id, ht.name, at.name,
		       m.final_score_home, m.final_score_away, m.match_date
		FROM matches m
		JOIN teams ht ON ht.id = m.home_team_id
		JOIN teams at ON at.id = m.away_team_id
		WHERE (ht.name = $1 OR at.name = $1)
		  AND m.final_score_home IS NOT NULL
		  AND m.final_score_away IS NOT NULL
		ORDER BY m.match_date NULLS LAST, m.id`

	rows, err := r.db.Query(ctx, query, teamName)
	if err != nil {
		return nil, fmt.Errorf("failed to query team results: %w", err)
	}
	defer rows.Close()

	var results []MatchResult
	for rows.Next() {
		var m MatchResult
		err := rows.Scan(&m.MatchID, &m.HomeTeamID, &m.AwayTeamID,
			&m.HomeTeam, &m.AwayTeam, &m.HomeScore, &m.AwayScore, &m.MatchDate)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team result: %w", err)
		}
		results = append(results, m)
	}
	return results, rows.Err()
}

// TopMatchPerformances returns the best single-match goal hauls.
func (r *PostgresStatsRepository) TopMatchPerformances(ctx context.Context, limit int) ([]MatchPerformance, error) {
	query := `
		SELECT p.id, p.name, t.name, opp.name, m.match_date,
		       ps.goals, ps.shots, ps.saves
		FROM player_stats ps
		JOIN players p ON p.id = ps.player_id
		JOIN teams t ON t.id = ps.team_id
		JOIN matches m ON m.id = ps.match_id
		JOIN teams opp ON opp.id = CASE
			WHEN ps.team_id = m.home_team_id THEN m.away_team_id
			ELSE m.home_team_id
		END
		WHERE ps.goals > 0
		ORDER BY ps.goals DESC, p.name
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top performances: %w", err)
	}
	defer rows.Close()

	var perfs []MatchPerformance
	for rows.Next() {
		var p MatchPerformance
		err := rows.Scan(&p.PlayerID, &p.PlayerName, &p.TeamName, &p.Opponent,
			&p.MatchDate, &p.Goals, &p.Shots, &p.Saves)
		if err != nil {
			return nil, fmt.Errorf("failed to scan performance: %w", err)
		}
		perfs = append(perfs, p)
	}
	return perfs, rows.Err()
}

// ListPlayers returns every known player with their team name.
func (r *PostgresStatsRepository) ListPlayers(ctx context.Context) ([]PlayerRef, error) {
	query := `
		SELECT p.id, p.name, t.name
		FROM players p
		JOIN teams t ON t.id = p.team_id
		ORDER BY p.name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var players []PlayerRef
	for rows.Next() {
		var p PlayerRef
		if err := rows.Scan(&p.PlayerID, &p.Name, &p.TeamName); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}
