package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/rollcall/internal/domain/types"
)

// ReportHandler serves the threads, season and scores of the published run.
type ReportHandler struct {
	deps Dependencies
}

// NewReportHandler creates a new report handler.
func NewReportHandler(deps Dependencies) *ReportHandler {
	return &ReportHandler{deps: deps}
}

// HandleThreads handles GET /threads. The optional result query keeps only
// threads with that outcome label.
func (h *ReportHandler) HandleThreads(w http.ResponseWriter, r *http.Request) {
	threads, err := h.deps.Threads(r.Context())
	if err != nil {
		writeLookupError(w, err)
		return
	}
	if want := r.URL.Query().Get("result"); want != "" {
		kept := make([]types.Thread, 0, len(threads))
		for _, t := range threads {
			if t.Result == want {
				kept = append(kept, t)
			}
		}
		threads = kept
	}
	writeJSON(w, http.StatusOK, threads)
}

// HandleThread handles GET /threads/{id}.
func (h *ReportHandler) HandleThread(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: thread id %q", ErrBadRequest, raw))
		return
	}
	thread, err := h.deps.Thread(r.Context(), id)
	if err != nil {
		writeLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, thread)
}

// HandleSeason handles GET /season.
func (h *ReportHandler) HandleSeason(w http.ResponseWriter, r *http.Request) {
	season, err := h.deps.Season(r.Context())
	if err != nil {
		writeLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, season)
}

// HandleScores handles GET /scores.
func (h *ReportHandler) HandleScores(w http.ResponseWriter, r *http.Request) {
	scores, err := h.deps.Scores(r.Context())
	if err != nil {
		writeLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scores)
}
