// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/nonianfoix/sweet-sixteen/internal/domain/shortlist"
)

// ShortlistDependencies defines the interface for shortlist reads.
type ShortlistDependencies interface {
	BuildShortlist(ctx context.Context, recruitID string, week int) (shortlist.Result, error)
}

// ShortlistHandler handles shortlist requests.
type ShortlistHandler struct {
	deps ShortlistDependencies
}

// NewShortlistHandler creates a new shortlist handler.
func NewShortlistHandler(deps ShortlistDependencies) *ShortlistHandler {
	return &ShortlistHandler{deps: deps}
}

// HandleGetShortlist handles GET /shortlist/{recruit_id}?week=N requests.
func (h *ShortlistHandler) HandleGetShortlist(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_shortlist"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /shortlist/
	recruitID := strings.TrimPrefix(r.URL.Path, "/shortlist/")
	if recruitID == "" || strings.Contains(recruitID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	week := 0
	if weekStr := r.URL.Query().Get("week"); weekStr != "" {
		n, err := strconv.Atoi(weekStr)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		week = n
	}

	result, err := h.deps.BuildShortlist(r.Context(), recruitID, week)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, result)
}
