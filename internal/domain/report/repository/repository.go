// Package repository provides database operations for imported match reports.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrDuplicateMatch is returned when a match with the same home team, away
// team and date has already been stored.
var ErrDuplicateMatch = errors.New("match already imported")

// League identifies a competition, optionally scoped to a pool and season.
type League struct {
	ID        uuid.UUID
	Name      string
	GroupID   *string
	GroupName *string
	Season    *string
	CreatedAt time.Time
}

// Team represents a club, keyed by its report name.
type Team struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// Player belongs to exactly one team; the same name on two teams is two rows.
type Player struct {
	ID     uuid.UUID
	Name   string
	TeamID uuid.UUID
}

// PlayerStatRow is one accepted roster line to persist with a match.
// Official rows are stored too, but with a null player_id: staff never get a
// players row and so never surface in player-keyed reads.
type PlayerStatRow struct {
	PlayerName  string
	TeamID      uuid.UUID
	IsCaptain   bool
	IsOfficial  bool
	Goals       int
	Shots       int
	Goals7m     int
	Saves       int
	YellowCards int
	TwoMinutes  int
	RedCards    int
	BlueCards   int
}

// ActionRow is one timeline event to persist with a match. Seq preserves
// the order the events were read from the report.
type ActionRow struct {
	Seq          int
	Period       int
	Clock        string
	Score        string
	ActionType   string
	TeamID       *uuid.UUID
	PlayerNumber *string
	PlayerName   *string
	RawText      string
}

// MatchRecord bundles everything StoreMatch writes in one transaction.
type MatchRecord struct {
	LeagueID       *uuid.UUID
	HomeTeamID     uuid.UUID
	AwayTeamID     uuid.UUID
	MatchDate      *time.Time
	HTScoreHome    *int
	HTScoreAway    *int
	FinalScoreHome *int
	FinalScoreAway *int
	Stats          []PlayerStatRow
	Actions        []ActionRow
}

// MatchRepository defines the persistence operations for match imports
type MatchRepository interface {
	GetOrCreateLeague(ctx context.Context, name string, groupID, groupName, season *string) (uuid.UUID, error)
	GetOrCreateTeam(ctx context.Context, name string) (uuid.UUID, error)
	MatchExists(ctx context.Context, homeTeamID, awayTeamID uuid.UUID, matchDate *time.Time) (bool, error)
	// StoreMatch inserts the match, its player stats and its actions
	// atomically, creating player rows as needed. It returns
	// ErrDuplicateMatch when the match identity already exists.
	StoreMatch(ctx context.Context, rec *MatchRecord) (uuid.UUID, error)
}
