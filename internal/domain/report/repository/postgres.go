package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// DB is the subset of pgxpool.Pool the repository needs. It exists so
// tests can substitute a mock pool.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresMatchRepository implements MatchRepository using PostgreSQL
type PostgresMatchRepository struct {
	db DB
}

// NewPostgresMatchRepository creates a new PostgreSQL match repository
func NewPostgresMatchRepository(db DB) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db}
}

// GetOrCreateLeague resolves a league by its identity, inserting it if new.
func (r *PostgresMatchRepository) GetOrCreateLeague(ctx context.Context, name string, groupID, groupName, season *string) (uuid.UUID, error) {
	query := `
		INSERT INTO leagues (name, group_id, group_name, season)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name, COALESCE(group_id, ''), COALESCE(season, ''))
		DO UPDATE SET group_name = COALESCE(leagues.group_name, EXCLUDED.group_name)
		RETURNING id`

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, name, groupID, groupName, season).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("failed to get or create league %q: %w", name, err)
	}
	return id, nil
}

// GetOrCreateTeam resolves a team by name, inserting it if new.
func (r *PostgresMatchRepository) GetOrCreateTeam(ctx context.Context, name string) (uuid.UUID, error) {
	query := `
		INSERT INTO teams (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, name).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("failed to get or create team %q: %w", name, err)
	}
	return id, nil
}

// MatchExists reports whether a match with this identity is already stored.
func (r *PostgresMatchRepository) MatchExists(ctx context.Context, homeTeamID, awayTeamID uuid.UUID, matchDate *time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM matches
			WHERE home_team_id = $1
			  AND away_team_id = $2
			  AND match_date IS NOT DISTINCT FROM $3
		)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, homeTeamID, awayTeamID, matchDate).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check match existence: %w", err)
	}
	return exists, nil
}

// StoreMatch writes the match, player rows, stats and actions in a single
// transaction. Nothing is persisted if any insert fails.
func (r *PostgresMatchRepository) StoreMatch(ctx context.Context, rec *MatchRecord) (uuid.UUID, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	matchQuery := `
		INSERT INTO matches (league_id, home_team_id, away_team_id, match_date,
			ht_score_home, ht_score_away, final_score_home, final_score_away)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	var matchID uuid.UUID
	err = tx.QueryRow(ctx, matchQuery,
		rec.LeagueID,
		rec.HomeTeamID,
		rec.AwayTeamID,
		rec.MatchDate,
		rec.HTScoreHome,
		rec.HTScoreAway,
		rec.FinalScoreHome,
		rec.FinalScoreAway,
	).Scan(&matchID)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, ErrDuplicateMatch
		}
		return uuid.Nil, fmt.Errorf("failed to insert match: %w", err)
	}

	statQuery := `
		INSERT INTO player_stats (match_id, player_id, player_name, team_id, is_captain, is_official,
			goals, shots, goals_7m, saves, yellow_cards, two_minutes, red_cards, blue_cards)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	for _, s := range rec.Stats {
		var playerID *uuid.UUID
		if !s.IsOfficial {
			id, err := getOrCreatePlayer(ctx, tx, s.PlayerName, s.TeamID)
			if err != nil {
				return uuid.Nil, err
			}
			playerID = &id
		}

		_, err = tx.Exec(ctx, statQuery,
			matchID, playerID, s.PlayerName, s.TeamID, s.IsCaptain, s.IsOfficial,
			s.Goals, s.Shots, s.Goals7m, s.Saves,
			s.YellowCards, s.TwoMinutes, s.RedCards, s.BlueCards,
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to insert stats for %q: %w", s.PlayerName, err)
		}
	}

	actionQuery := `
		INSERT INTO actions (match_id, seq, period, clock, score, action_type,
			team_id, player_number, player_name, raw_text)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	for _, a := range rec.Actions {
		_, err = tx.Exec(ctx, actionQuery,
			matchID, a.Seq, a.Period, a.Clock, a.Score, a.ActionType,
			a.TeamID, a.PlayerNumber, a.PlayerName, a.RawText,
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to insert action %d: %w", a.Seq, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit match: %w", err)
	}
	return matchID, nil
}

func getOrCreatePlayer(ctx context.Context, tx pgx.Tx, name string, teamID uuid.UUID) (uuid.UUID, error) {
	query := `
		INSERT INTO players (name, team_id)
		VALUES ($1, $2)
		ON CONFLICT (name, team_id) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`

	var id uuid.UUID
	if err := tx.QueryRow(ctx, query, name, teamID).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("failed to get or create player %q: %w", name, err)
	}
	return id, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
