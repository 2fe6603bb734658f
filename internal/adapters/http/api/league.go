// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/nonianfoix/sweet-sixteen/internal/domain/model"
)

// LeagueDependencies defines the interface for league registry writes.
type LeagueDependencies interface {
	UpsertRecruit(ctx context.Context, r model.Recruit) error
	UpsertTeam(ctx context.Context, t model.Team) error
}

// LeagueHandler handles recruit and team upserts.
type LeagueHandler struct {
	deps LeagueDependencies
}

// NewLeagueHandler creates a new league handler.
func NewLeagueHandler(deps LeagueDependencies) *LeagueHandler {
	return &LeagueHandler{deps: deps}
}

// HandlePostRecruit handles POST /recruits requests.
func (h *LeagueHandler) HandlePostRecruit(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_recruit"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req model.Recruit
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("missing id")))
		return
	}
	if err := h.deps.UpsertRecruit(r.Context(), req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted"})
}

// HandlePostTeam handles POST /teams requests.
func (h *LeagueHandler) HandlePostTeam(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_team"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req model.Team
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("missing name")))
		return
	}
	if err := h.deps.UpsertTeam(r.Context(), req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted"})
}
