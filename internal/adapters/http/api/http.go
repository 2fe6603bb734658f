// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nonianfoix/sweet-sixteen/internal/adapters/board"
	service "github.com/nonianfoix/sweet-sixteen/internal/app"
	"github.com/nonianfoix/sweet-sixteen/internal/domain/interest"
	"github.com/nonianfoix/sweet-sixteen/internal/domain/model"
	"github.com/nonianfoix/sweet-sixteen/internal/domain/shortlist"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// League registry writes.
	UpsertRecruit(ctx context.Context, r model.Recruit) error
	UpsertTeam(ctx context.Context, t model.Team) error

	// Market reads and recomputes.
	ScoreOffer(ctx context.Context, recruitID, teamName string, week int) (interest.Breakdown, error)
	BuildShortlist(ctx context.Context, recruitID string, week int) (shortlist.Result, error)
	TopBoard(ctx context.Context, n int) ([]board.Entry, error)
	BoardRank(ctx context.Context, recruitID string) (board.Entry, error)
	RecomputeAll(ctx context.Context, week int) (int, error)

	// Sponsor quests.
	QuestDeck(ctx context.Context, week int, registry *model.AlumniRegistry) []model.SponsorQuest
	TeamQuests(ctx context.Context, teamName string, week int) ([]model.SponsorQuest, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	leagueHandler    *LeagueHandler
	scoreHandler     *ScoreHandler
	shortlistHandler *ShortlistHandler
	boardHandler     *BoardHandler
	recomputeHandler *RecomputeHandler
	questsHandler    *QuestsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxBoardLimit int) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		leagueHandler:    NewLeagueHandler(deps),
		scoreHandler:     NewScoreHandler(deps),
		shortlistHandler: NewShortlistHandler(deps),
		boardHandler:     NewBoardHandler(deps, maxBoardLimit),
		recomputeHandler: NewRecomputeHandler(deps),
		questsHandler:    NewQuestsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/recruits", MetricsMiddleware(s.leagueHandler.HandlePostRecruit, "recruits"))
	mux.HandleFunc("/teams", MetricsMiddleware(s.leagueHandler.HandlePostTeam, "teams"))
	mux.HandleFunc("/score", MetricsMiddleware(s.scoreHandler.HandlePostScore, "score"))
	mux.HandleFunc("/shortlist/", MetricsMiddleware(s.shortlistHandler.HandleGetShortlist, "shortlist"))
	mux.HandleFunc("/board", MetricsMiddleware(s.boardHandler.HandleGetBoard, "board"))
	mux.HandleFunc("/rank/", MetricsMiddleware(s.boardHandler.HandleGetRank, "rank"))
	mux.HandleFunc("/recompute", MetricsMiddleware(s.recomputeHandler.HandlePostRecompute, "recompute"))
	mux.HandleFunc("/quests/deck", MetricsMiddleware(s.questsHandler.HandleGetDeck, "quests_deck"))
	mux.HandleFunc("/quests/team/", MetricsMiddleware(s.questsHandler.HandleGetTeamQuests, "quests_team"))
}

type ackResponse struct {
	Status string `json:"status"`
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

// isNotFound allows the API to translate upstream not-found errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, board.ErrNotFound) ||
		errors.Is(err, service.ErrRecruitNotFound) ||
		errors.Is(err, service.ErrTeamNotFound)
}
