// Package repository provides read-side database operations for aggregated
// match statistics.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LeagueInfo identifies a league for listing and standings lookups.
type LeagueInfo struct {
	ID        uuid.UUID
	Name      string
	GroupName *string
	Season    *string
}

// MatchResult is one finished match with both final scores known.
type MatchResult struct {
	MatchID    uuid.UUID
	HomeTeamID uuid.UUID
	AwayTeamID uuid.UUID
	HomeTeam   string
	AwayTeam   string
	HomeScore  int
	AwayScore  int
	MatchDate  *time.Time
}

// PlayerAggregate sums one player's stat lines across matches.
type PlayerAggregate struct {
	PlayerID    uuid.UUID
	PlayerName  string
	TeamName    string
	Matches     int
	Goals       int
	Shots       int
	Goals7m     int
	Saves       int
	YellowCards int
	TwoMinutes  int
	RedCards    int
	BlueCards   int
}

// TeamAggregate sums a team's stat lines across its matches.
type TeamAggregate struct {
	TeamID      uuid.UUID
	TeamName    string
	Matches     int
	Goals       int
	Shots       int
	Goals7m     int
	Saves       int
	YellowCards int
	TwoMinutes  int
	RedCards    int
	BlueCards   int
}

// PlayerRef is the minimal handle search results carry.
type PlayerRef struct {
	PlayerID uuid.UUID
	Name     string
	TeamName string
}

// TeamRef is the minimal team handle for search results.
type TeamRef struct {
	TeamID uuid.UUID
	Name   string
}

// MatchPerformance is one player's stat line in one match.
type MatchPerformance struct {
	PlayerID   uuid.UUID
	PlayerName string
	TeamName   string
	Opponent   string
	MatchDate  *time.Time
	Goals      int
	Shots      int
	Saves      int
}

// StatsRepository defines the read operations the stats service needs
type StatsRepository interface {
	ListLeagues(ctx context.Context) ([]LeagueInfo, error)
	// LeagueResults returns only matches where both final scores are known.
	LeagueResults(ctx context.Context, leagueID uuid.UUID) ([]MatchResult, error)
	// PlayerAggregates sums stat lines per player, optionally scoped to one
	// league. Official stat rows carry a null player_id, so the player
	// join keeps staff out of every ranking.
	PlayerAggregates(ctx context.Context, leagueID *uuid.UUID) ([]PlayerAggregate, error)
	TeamAggregates(ctx context.Context) ([]TeamAggregate, error)
	ListPlayers(ctx context.Context) ([]PlayerRef, error)
	ListTeams(ctx context.Context) ([]TeamRef, error)
	// TeamPlayerAggregates sums stat lines for every player of one team.
	TeamPlayerAggregates(ctx context.Context, teamName string) ([]PlayerAggregate, error)
	// TeamResults returns the finished matches one team played, home or away.
	TeamResults(ctx context.Context, teamName string) ([]MatchResult, error)
	// TopMatchPerformances returns the best single-match goal hauls.
	TopMatchPerformances(ctx context.Context, limit int) ([]MatchPerformance, error)
}
