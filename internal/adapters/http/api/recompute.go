// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// RecomputeDependencies defines the interface for triggering board sweeps.
type RecomputeDependencies interface {
	RecomputeAll(ctx context.Context, week int) (int, error)
}

// RecomputeHandler handles board sweep requests.
type RecomputeHandler struct {
	deps RecomputeDependencies
}

// NewRecomputeHandler creates a new recompute handler.
func NewRecomputeHandler(deps RecomputeDependencies) *RecomputeHandler {
	return &RecomputeHandler{deps: deps}
}

type recomputeRequest struct {
	Week int `json:"week"`
}

func (r *recomputeRequest) validate() error {
	if r.Week < 0 {
		return errors.New("week must not be negative")
	}
	return nil
}

type recomputeResponse struct {
	Queued int `json:"queued"`
}

// HandlePostRecompute handles POST /recompute requests. It enqueues a
// shortlist rebuild for every registered recruit and reports how many
// jobs were accepted.
func (h *RecomputeHandler) HandlePostRecompute(w http.ResponseWriter, r *http.Request) {
	const op = "api.recompute"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req recomputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	queued, err := h.deps.RecomputeAll(r.Context(), req.Week)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusAccepted, recomputeResponse{Queued: queued})
}
