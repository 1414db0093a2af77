package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicobuchet/hb-data-analyst/internal/domain/stats/export"
	"github.com/nicobuchet/hb-data-analyst/internal/domain/stats/repository"
	"github.com/nicobuchet/hb-data-analyst/internal/domain/stats/service"
)

type mockStatsRepo struct {
	leagues  []repository.LeagueInfo
	results  map[uuid.UUID][]repository.MatchResult
	players  []repository.PlayerAggregate
	refs     []repository.PlayerRef
	teamRefs []repository.TeamRef
	perfs    []repository.MatchPerformance
}

func (m *mockStatsRepo) ListLeagues(context.Context) ([]repository.LeagueInfo, error) {
	return m.leagues, nil
}

func (m *mockStatsRepo) LeagueResults(_ context.Context, id uuid.UUID) ([]repository.MatchResult, error) {
	return m.results[id], nil
}

func (m *mockStatsRepo) PlayerAggregates(context.Context, *uuid.UUID) ([]repository.PlayerAggregate, error) {
	return m.players, nil
}

func (m *mockStatsRepo) TeamAggregates(context.Context) ([]repository.TeamAggregate, error) {
	return nil, nil
}

func (m *mockStatsRepo) ListPlayers(context.Context) ([]repository.PlayerRef, error) {
	return m.refs, nil
}

func (m *mockStatsRepo) TeamPlayerAggregates(context.Context, string) ([]repository.PlayerAggregate, error) {
	return m.players, nil
}

func (m *mockStatsRepo) ListTeams(context.Context) ([]repository.TeamRef, error) {
	return m.teamRefs, nil
}

func (m *mockStatsRepo) TeamResults(_ context.Context, name string) ([]repository.MatchResult, error) {
	var out []repository.MatchResult
	for _, rs := range m.results {
		for _, r := range rs {
			if r.HomeTeam == name || r.AwayTeam == name {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

func (m *mockStatsRepo) TopMatchPerformances(_ context.Context, limit int) ([]repository.MatchPerformance, error) {
	if limit < len(m.perfs) {
		return m.perfs[:limit], nil
	}
	return m.perfs, nil
}

func newTestRouter(repo repository.StatsRepository) *mux.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(service.NewStatsService(repo, logger), nil, export.NewExporter(repo), logger)
	router := mux.NewRouter()
	h.RegisterRoutes(router)
	return router
}

func TestHandleStandings(t *testing.T) {
	leagueID := uuid.New()
	one, two := uuid.New(), uuid.New()
	router := newTestRouter(&mockStatsRepo{
		results: map[uuid.UUID][]repository.MatchResult{
			leagueID: {
				{HomeTeamID: one, AwayTeamID: two, HomeTeam: "HBC ONE", AwayTeam: "HBC TWO", HomeScore: 30, AwayScore: 20},
			},
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/leagues/"+leagueID.String()+"/standings", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var table []service.StandingRow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &table))
	require.Len(t, table, 2)
	assert.Equal(t, "HBC ONE", table[0].Team)
	assert.Equal(t, 2, table[0].Points)
}

func TestHandleStandings_BadID(t *testing.T) {
	router := newTestRouter(&mockStatsRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/leagues/not-a-uuid/standings", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRanking(t *testing.T) {
	router := newTestRouter(&mockStatsRepo{
		players: []repository.PlayerAggregate{
			{PlayerName: "JUQUEL loic", Goals: 58},
			{PlayerName: "DUPONT pierre", Goals: 61},
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/rankings/scorers?limit=1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var players []repository.PlayerAggregate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &players))
	require.Len(t, players, 1)
	assert.Equal(t, "DUPONT pierre", players[0].PlayerName)
}

func TestHandleRanking_BadLimit(t *testing.T) {
	router := newTestRouter(&mockStatsRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/rankings/scorers?limit=zero", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlePlayerSearch(t *testing.T) {
	router := newTestRouter(&mockStatsRepo{
		refs: []repository.PlayerRef{{Name: "JUQUEL loïc", TeamName: "HBC ONE"}},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/players/search?q=juquel", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var matches []repository.PlayerRef
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, "JUQUEL loïc", matches[0].Name)
}

func TestHandlePlayerSearch_MissingQuery(t *testing.T) {
	router := newTestRouter(&mockStatsRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/players/search", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlePerformances(t *testing.T) {
	router := newTestRouter(&mockStatsRepo{
		perfs: []repository.MatchPerformance{
			{PlayerName: "JUQUEL loïc", TeamName: "HBC ONE", Opponent: "HBC TWO", Goals: 12, Shots: 15},
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/rankings/performances", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var perfs []repository.MatchPerformance
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &perfs))
	require.Len(t, perfs, 1)
	assert.Equal(t, 12, perfs[0].Goals)
}

func TestHandleClubSearch(t *testing.T) {
	router := newTestRouter(&mockStatsRepo{
		teamRefs: []repository.TeamRef{{Name: "HBC VILLENEUVE"}, {Name: "US CRÉTEIL"}},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/clubs/search?q=creteil", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var matches []repository.TeamRef
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, "US CRÉTEIL", matches[0].Name)
}

func TestHandleClubMatches(t *testing.T) {
	leagueID := uuid.New()
	router := newTestRouter(&mockStatsRepo{
		results: map[uuid.UUID][]repository.MatchResult{
			leagueID: {
				{HomeTeam: "HBC ONE", AwayTeam: "HBC TWO", HomeScore: 30, AwayScore: 28},
				{HomeTeam: "HBC THREE", AwayTeam: "HBC FOUR", HomeScore: 25, AwayScore: 25},
			},
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/clubs/HBC%20ONE/matches", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var results []repository.MatchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "HBC TWO", results[0].AwayTeam)
}

func TestHandleClubReport_CSV(t *testing.T) {
	router := newTestRouter(&mockStatsRepo{
		players: []repository.PlayerAggregate{
			{PlayerName: "JUQUEL loic", TeamName: "HBC ONE", Matches: 12, Goals: 58, Shots: 97},
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/clubs/HBC%20ONE/report", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "JUQUEL loic,12,58,97")
}

func TestHandleClubReport_UnsupportedFormat(t *testing.T) {
	router := newTestRouter(&mockStatsRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/clubs/HBC%20ONE/report?format=pdf", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleImport_MissingFile(t *testing.T) {
	router := newTestRouter(&mockStatsRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/imports", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
