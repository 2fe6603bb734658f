// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/nonianfoix/sweet-sixteen/internal/domain/interest"
)

// ScoreDependencies defines the interface for single-offer scoring.
type ScoreDependencies interface {
	ScoreOffer(ctx context.Context, recruitID, teamName string, week int) (interest.Breakdown, error)
}

// ScoreHandler handles offer scoring requests.
type ScoreHandler struct {
	deps ScoreDependencies
}

// NewScoreHandler creates a new score handler.
func NewScoreHandler(deps ScoreDependencies) *ScoreHandler {
	return &ScoreHandler{deps: deps}
}

// scoreRequest mirrors the OpenAPI schema for POST /score.
type scoreRequest struct {
	RecruitID string `json:"recruit_id"`
	Team      string `json:"team"`
	Week      int    `json:"week"`
}

func (s scoreRequest) validate() error {
	switch {
	case strings.TrimSpace(s.RecruitID) == "":
		return errors.New("missing recruit_id")
	case strings.TrimSpace(s.Team) == "":
		return errors.New("missing team")
	case s.Week < 0:
		return errors.New("week must not be negative")
	}
	return nil
}

// HandlePostScore handles POST /score requests.
func (h *ScoreHandler) HandlePostScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_score"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	breakdown, err := h.deps.ScoreOffer(r.Context(), req.RecruitID, req.Team, req.Week)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, breakdown)
}
