// Package handler exposes the stats and import services over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	reportservice "github.com/nicobuchet/hb-data-analyst/internal/domain/report/service"
	"github.com/nicobuchet/hb-data-analyst/internal/domain/stats/export"
	"github.com/nicobuchet/hb-data-analyst/internal/domain/stats/repository"
	"github.com/nicobuchet/hb-data-analyst/internal/domain/stats/service"
)

const (
	defaultRankingLimit = 20
	maxUploadBytes      = 16 << 20
)

// Handler wires the stats read API and the report upload endpoint
type Handler struct {
	stats    *service.StatsService
	importer *reportservice.ImportService
	exporter *export.Exporter
	logger   *slog.Logger
}

// NewHandler creates a new stats HTTP handler
func NewHandler(stats *service.StatsService, importer *reportservice.ImportService, exporter *export.Exporter, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{stats: stats, importer: importer, exporter: exporter, logger: logger}
}

// RegisterRoutes mounts every endpoint under /api.
func (h *Handler) RegisterRoutes(router *mux.Router) {
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", h.handleHealth).Methods("GET")
	api.HandleFunc("/leagues", h.handleLeagues).Methods("GET")
	api.HandleFunc("/leagues/{id}/standings", h.handleStandings).Methods("GET")
	api.HandleFunc("/rankings/scorers", h.ranking(h.stats.TopScorers)).Methods("GET")
	api.HandleFunc("/rankings/goalkeepers", h.ranking(h.stats.TopGoalkeepers)).Methods("GET")
	api.HandleFunc("/rankings/seven-meter", h.ranking(h.stats.TopSevenMeter)).Methods("GET")
	api.HandleFunc("/rankings/sanctions", h.ranking(h.stats.MostSanctioned)).Methods("GET")
	api.HandleFunc("/rankings/performances", h.handlePerformances).Methods("GET")
	api.HandleFunc("/teams/stats", h.handleTeamStats).Methods("GET")
	api.HandleFunc("/players/search", h.handlePlayerSearch).Methods("GET")
	api.HandleFunc("/clubs/search", h.handleClubSearch).Methods("GET")
	api.HandleFunc("/clubs/{name}/matches", h.handleClubMatches).Methods("GET")
	api.HandleFunc("/clubs/{name}/report", h.handleClubReport).Methods("GET")
	api.HandleFunc("/imports", h.handleImport).Methods("POST")
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleLeagues(w http.ResponseWriter, r *http.Request) {
	leagues, err := h.stats.Leagues(r.Context())
	if err != nil {
		h.serverError(w, "listing leagues", err)
		return
	}
	writeJSON(w, http.StatusOK, leagues)
}

func (h *Handler) handleStandings(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid league id")
		return
	}

	table, err := h.stats.Standings(r.Context(), id)
	if err != nil {
		h.serverError(w, "computing standings", err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

type rankingFunc func(ctx context.Context, leagueID *uuid.UUID, limit int) ([]repository.PlayerAggregate, error)

func (h *Handler) ranking(rank rankingFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var leagueID *uuid.UUID
		if raw := r.URL.Query().Get("league"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid league id")
				return
			}
			leagueID = &id
		}

		limit := defaultRankingLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				writeError(w, http.StatusBadRequest, "invalid limit")
				return
			}
			limit = n
		}

		players, err := rank(r.Context(), leagueID, limit)
		if err != nil {
			h.serverError(w, "computing ranking", err)
			return
		}
		writeJSON(w, http.StatusOK, players)
	}
}

func (h *Handler) handlePerformances(w http.ResponseWriter, r *http.Request) {
	limit := defaultRankingLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	perfs, err := h.stats.BestPerformances(r.Context(), limit)
	if err != nil {
		h.serverError(w, "computing best performances", err)
		return
	}
	writeJSON(w, http.StatusOK, perfs)
}

func (h *Handler) handleClubMatches(w http.ResponseWriter, r *http.Request) {
	results, err := h.stats.ClubMatches(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		h.serverError(w, "listing club matches", err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *Handler) handleClubSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}

	matches, err := h.stats.SearchClubs(r.Context(), query, defaultRankingLimit)
	if err != nil {
		h.serverError(w, "searching clubs", err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

func (h *Handler) handleTeamStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.TeamStats(r.Context())
	if err != nil {
		h.serverError(w, "computing team stats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) handlePlayerSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}

	matches, err := h.stats.SearchPlayers(r.Context(), query, defaultRankingLimit)
	if err != nil {
		h.serverError(w, "searching players", err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

func (h *Handler) handleClubReport(w http.ResponseWriter, r *http.Request) {
	teamName := mux.Vars(r)["name"]

	rows, err := h.exporter.ClubReport(r.Context(), teamName)
	if err != nil {
		h.serverError(w, "building club report", err)
		return
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", attachment(teamName, "csv"))
		if err := export.WriteCSV(w, rows); err != nil {
			h.logger.Error("writing CSV report", slog.Any("error", err))
		}
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", attachment(teamName, "xlsx"))
		if err := export.WriteXLSX(w, teamName, rows); err != nil {
			h.logger.Error("writing XLSX report", slog.Any("error", err))
		}
	default:
		writeError(w, http.StatusBadRequest, "unsupported format: "+format)
	}
}

// handleImport accepts a report PDF as multipart form field "report",
// stores it to a temp file and runs the import pipeline on it.
func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("report")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing report file")
		return
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", "report-*.pdf")
	if err != nil {
		h.serverError(w, "staging upload", err)
		return
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		h.serverError(w, "staging upload", err)
		return
	}
	tmp.Close()

	outcome, err := h.importer.ImportFile(r.Context(), tmp.Name())
	if err != nil {
		h.logger.Error("import failed",
			slog.String("filename", header.Filename),
			slog.Any("error", err))
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	status := http.StatusCreated
	if outcome.Duplicate {
		status = http.StatusOK
	}
	writeJSON(w, status, outcome)
}

func (h *Handler) serverError(w http.ResponseWriter, msg string, err error) {
	h.logger.Error(msg, slog.Any("error", err))
	writeError(w, http.StatusInternalServerError, msg)
}

func attachment(teamName, ext string) string {
	return fmt.Sprintf("attachment; filename=%q", filepath.Base(teamName)+"-report."+ext)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
