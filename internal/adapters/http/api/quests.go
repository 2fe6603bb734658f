// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/nonianfoix/sweet-sixteen/internal/domain/model"
)

// QuestsDependencies defines the interface for sponsor quest reads.
type QuestsDependencies interface {
	QuestDeck(ctx context.Context, week int, registry *model.AlumniRegistry) []model.SponsorQuest
	TeamQuests(ctx context.Context, teamName string, week int) ([]model.SponsorQuest, error)
}

// QuestsHandler handles sponsor quest requests.
type QuestsHandler struct {
	deps QuestsDependencies
}

// NewQuestsHandler creates a new quests handler.
func NewQuestsHandler(deps QuestsDependencies) *QuestsHandler {
	return &QuestsHandler{deps: deps}
}

// HandleGetDeck handles GET /quests/deck?week=N requests. Optional
// finance and tech query parameters describe the alumni registry that
// gates Syndicate sponsors.
func (h *QuestsHandler) HandleGetDeck(w http.ResponseWriter, r *http.Request) {
	const op = "api.quests_deck"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	week, err := parseWeekParam(r, 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	registry, err := parseRegistryParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	deck := h.deps.QuestDeck(r.Context(), week, registry)
	writeJSON(w, http.StatusOK, deck)
}

// HandleGetTeamQuests handles GET /quests/team/{name}?week=N requests.
func (h *QuestsHandler) HandleGetTeamQuests(w http.ResponseWriter, r *http.Request) {
	const op = "api.quests_team"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	teamName := strings.TrimPrefix(r.URL.Path, "/quests/team/")
	if teamName == "" || strings.Contains(teamName, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	week, err := parseWeekParam(r, 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	quests, err := h.deps.TeamQuests(r.Context(), teamName, week)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, quests)
}

// parseWeekParam reads the optional week query parameter, falling back
// to def when absent.
func parseWeekParam(r *http.Request, def int) (int, error) {
	raw := r.URL.Query().Get("week")
	if raw == "" {
		return def, nil
	}
	week, err := strconv.Atoi(raw)
	if err != nil || week < 0 {
		return 0, errInvalidWeek
	}
	return week, nil
}

// parseRegistryParams reads the optional finance and tech query
// parameters. A nil registry means no alumni network is known.
func parseRegistryParams(r *http.Request) (*model.AlumniRegistry, error) {
	finRaw := r.URL.Query().Get("finance")
	techRaw := r.URL.Query().Get("tech")
	if finRaw == "" && techRaw == "" {
		return nil, nil
	}
	registry := &model.AlumniRegistry{}
	if finRaw != "" {
		fin, err := strconv.Atoi(finRaw)
		if err != nil || fin < 0 {
			return nil, errInvalidRegistry
		}
		registry.Finance = fin
	}
	if techRaw != "" {
		tech, err := strconv.Atoi(techRaw)
		if err != nil || tech < 0 {
			return nil, errInvalidRegistry
		}
		registry.Tech = tech
	}
	return registry, nil
}
