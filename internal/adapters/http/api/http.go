// Package api serves the published run report as read-only JSON.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/rollcall/internal/domain/types"
)

// Dependencies required by HTTP handlers.
type Dependencies interface {
	StatsProvider

	Threads(ctx context.Context) ([]types.Thread, error)
	Thread(ctx context.Context, id int64) (types.Thread, error)
	Season(ctx context.Context) (types.Season, error)
	Scores(ctx context.Context) (types.Scores, error)
}

// StatsProvider reports run statistics for monitoring.
type StatsProvider interface {
	GetStats() map[string]any
}

// Server wires HTTP routes for the report API.
type Server struct {
	health  *HealthHandler
	stats   *StatsHandler
	reports *ReportHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		health:  NewHealthHandler(),
		stats:   NewStatsHandler(deps),
		reports: NewReportHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.health.HandleHealth, "healthz"))
	mux.HandleFunc("GET /metrics", MetricsMiddleware(s.health.HandleMetrics, "metrics"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.stats.HandleStats, "stats"))
	mux.HandleFunc("GET /threads", MetricsMiddleware(s.reports.HandleThreads, "threads"))
	mux.HandleFunc("GET /threads/{id}", MetricsMiddleware(s.reports.HandleThread, "thread"))
	mux.HandleFunc("GET /season", MetricsMiddleware(s.reports.HandleSeason, "season"))
	mux.HandleFunc("GET /scores", MetricsMiddleware(s.reports.HandleScores, "scores"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeLookupError maps provider errors to status codes.
func writeLookupError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, types.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, types.ErrNoReport):
		writeError(w, http.StatusServiceUnavailable, "no_report", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
