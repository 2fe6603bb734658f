// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nonianfoix/sweet-sixteen/internal/adapters/board"
	"github.com/nonianfoix/sweet-sixteen/internal/adapters/cache"
	jobqueue "github.com/nonianfoix/sweet-sixteen/internal/adapters/mq/queue"
	workerpool "github.com/nonianfoix/sweet-sixteen/internal/adapters/mq/worker"
	"github.com/nonianfoix/sweet-sixteen/internal/domain/geo"
	"github.com/nonianfoix/sweet-sixteen/internal/domain/interest"
	"github.com/nonianfoix/sweet-sixteen/internal/domain/model"
	"github.com/nonianfoix/sweet-sixteen/internal/domain/quest"
	"github.com/nonianfoix/sweet-sixteen/internal/domain/shortlist"
	"github.com/nonianfoix/sweet-sixteen/pkg/logger"
	"github.com/nonianfoix/sweet-sixteen/pkg/metrics"
)

// Service implements the API dependencies for the recruiting system.
type Service struct {
	mu sync.RWMutex

	// Core components
	estimator  geo.Estimator
	calculator interest.Calculator
	builder    *shortlist.Builder
	questGen   *quest.Generator
	board      *board.TreapBoard
	memo       cache.Memo
	jobQueue   jobqueue.Queue
	workerPool *workerpool.Pool

	// League registries
	recruits map[string]model.Recruit
	teams    map[string]model.Team

	// Configuration
	workerCount   int
	queueSize     int
	cacheSize     int
	shortlistMin  int
	shortlistMax  int
	leaderWindow  float64
	temperature   float64
	badgeLimit    int
	deckSize      int
	syndicateRate float64
	userTeam      string

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of recompute workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the recompute queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithCacheSize sets the size of the shortlist memo cache.
func WithCacheSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.cacheSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithShortlistBounds sets the offer shortlist size bounds.
func WithShortlistBounds(minSize, maxSize int) Option {
	return func(s *Service) {
		if minSize > 0 && maxSize >= minSize {
			s.shortlistMin = minSize
			s.shortlistMax = maxSize
		}
	}
}

// WithLeaderWindow sets the share gap that keeps a program In The Mix.
func WithLeaderWindow(window float64) Option {
	return func(s *Service) {
		if window > 0 {
			s.leaderWindow = window
		}
	}
}

// WithTemperature sets the market-share temperature.
func WithTemperature(t float64) Option {
	return func(s *Service) {
		if t > 0 {
			s.temperature = t
		}
	}
}

// WithBadgeLimit caps the number of why-badges per offer.
func WithBadgeLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.badgeLimit = limit
		}
	}
}

// WithDeckSize sets the number of quests in the weekly league deck.
func WithDeckSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.deckSize = size
		}
	}
}

// WithSyndicateRate sets the per-alum Syndicate takeover rate.
func WithSyndicateRate(rate float64) Option {
	return func(s *Service) {
		if rate >= 0 {
			s.syndicateRate = rate
		}
	}
}

// WithUserTeam names the user-controlled program. Recruits flagged with a
// user offer get that program folded into their offer set.
func WithUserTeam(name string) Option {
	return func(s *Service) {
		s.userTeam = name
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:   runtime.NumCPU() * 2,
		queueSize:     10000,
		cacheSize:     10000,
		shortlistMin:  3,
		shortlistMax:  6,
		leaderWindow:  12,
		temperature:   2.2,
		badgeLimit:    4,
		deckSize:      4,
		syndicateRate: 0.05,
		recruits:      make(map[string]model.Recruit),
		teams:         make(map[string]model.Team),
		stopCh:        make(chan struct{}),
		logger:        nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting recruiting service...")

	estimator, err := geo.NewTableEstimator()
	if err != nil {
		return fmt.Errorf("building geo estimator: %w", err)
	}
	s.estimator = estimator
	s.calculator = interest.NewWeightedCalculator(estimator,
		interest.WithBadgeLimit(s.badgeLimit),
	)
	s.builder = shortlist.NewBuilder(
		shortlist.WithSizeBounds(s.shortlistMin, s.shortlistMax),
		shortlist.WithLeaderWindow(s.leaderWindow),
		shortlist.WithTemperature(s.temperature),
	)
	s.questGen = quest.NewGenerator(
		quest.WithDeckSize(s.deckSize),
		quest.WithSyndicateRate(s.syndicateRate),
	)
	s.board = board.NewTreapBoard(ctx)
	s.memo = cache.NewInMemoryMemo(
		cache.WithMaxSize(s.cacheSize),
	)
	s.jobQueue = jobqueue.NewInMemoryQueue(
		jobqueue.WithCapacity(s.queueSize),
		jobqueue.WithBufferSize(s.queueSize),
	)

	s.workerPool = workerpool.NewPool(s.workerCount, s.jobQueue, s)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "recruiting service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("cacheSize", s.cacheSize),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping recruiting service...")

	// Close queue first so workers drain and exit
	if q, ok := s.jobQueue.(*jobqueue.InMemoryQueue); ok {
		_ = q.Close()
	}

	if s.workerPool != nil {
		s.workerPool.Stop()
	}

	if s.board != nil {
		_ = s.board.Close()
	}

	select {
	case <-s.stopCh:
		// Channel already closed
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(context.Background(), "recruiting service stopped")
}

// UpsertRecruit stores or replaces a recruit in the league registry.
func (s *Service) UpsertRecruit(ctx context.Context, r model.Recruit) error {
	if r.ID == "" {
		return fmt.Errorf("%w: id must not be empty", ErrInvalidRecruit)
	}

	s.mu.Lock()
	s.recruits[r.ID] = r
	total := len(s.recruits)
	s.mu.Unlock()

	metrics.UpdateTotalRecruits(total)
	s.logger.Debug(ctx, "recruit upserted",
		logger.String("recruitID", r.ID),
		logger.Int("offers", len(r.CPUOffers)),
	)
	return nil
}

// UpsertTeam stores or replaces a team in the league registry.
func (s *Service) UpsertTeam(ctx context.Context, t model.Team) error {
	if t.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidTeam)
	}

	s.mu.Lock()
	s.teams[t.Name] = t
	total := len(s.teams)
	s.mu.Unlock()

	metrics.UpdateTotalTeams(total)
	s.logger.Debug(ctx, "team upserted", logger.String("team", t.Name))
	return nil
}

// Recruit returns a recruit from the registry.
func (s *Service) Recruit(ctx context.Context, id string) (model.Recruit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.recruits[id]
	if !ok {
		return model.Recruit{}, fmt.Errorf("%w: %s", ErrRecruitNotFound, id)
	}
	return r, nil
}

// Team returns a team from the registry.
func (s *Service) Team(ctx context.Context, name string) (model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.teams[name]
	if !ok {
		return model.Team{}, fmt.Errorf("%w: %s", ErrTeamNotFound, name)
	}
	return t, nil
}

// ScoreOffer computes one team's interest breakdown for a recruit.
func (s *Service) ScoreOffer(ctx context.Context, recruitID, teamName string, week int) (interest.Breakdown, error) {
	r, err := s.Recruit(ctx, recruitID)
	if err != nil {
		return interest.Breakdown{}, err
	}
	t, err := s.Team(ctx, teamName)
	if err != nil {
		return interest.Breakdown{}, err
	}

	b := s.calculator.Score(ctx, r, t, interest.SeasonContext{GameInSeason: weekToGame(week)})
	metrics.RecordScoreComputed()
	return b, nil
}

// BuildShortlist returns the recruit's offer shortlist for a week,
// memoizing the result per (recruit, offer set, week).
func (s *Service) BuildShortlist(ctx context.Context, recruitID string, week int) (shortlist.Result, error) {
	return s.buildShortlist(ctx, recruitID, week, false)
}

// Recompute forcibly rebuilds one recruit's market, bypassing the memo.
// It satisfies the worker pool's Recomputer contract.
func (s *Service) Recompute(ctx context.Context, recruitID string, week int) error {
	_, err := s.buildShortlist(ctx, recruitID, week, true)
	return err
}

func (s *Service) buildShortlist(ctx context.Context, recruitID string, week int, force bool) (shortlist.Result, error) {
	r, err := s.Recruit(ctx, recruitID)
	if err != nil {
		return shortlist.Result{}, err
	}

	names := s.offerNames(r)
	key := memoKey(recruitID, names, week)

	// Resolve the memo before scoring anything; scoring is the cost the
	// memo exists to avoid.
	if force {
		s.memo.Invalidate(ctx, key)
	} else if cached, ok := s.memo.Get(ctx, key); ok {
		return cached, nil
	}

	offers := s.scoreOffers(ctx, r, names, week)
	seedKey := fmt.Sprintf("%s:%d", recruitID, week)
	result := s.builder.Build(ctx, offers, r.CommittedTo(), seedKey)
	s.memo.Put(ctx, key, result)
	metrics.RecordShortlistBuilt()

	s.updateBoard(ctx, r, result, week)
	return result, nil
}

// offerNames resolves the recruit's offer set against the registry.
// Unknown team names are skipped, and the user program joins the set when
// the recruit holds a user offer.
func (s *Service) offerNames(r model.Recruit) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(r.CPUOffers)+1)
	for _, name := range r.CPUOffers {
		if _, ok := s.teams[name]; ok {
			names = append(names, name)
		}
	}
	if r.UserHasOffered && s.userTeam != "" && !containsName(names, s.userTeam) {
		if _, ok := s.teams[s.userTeam]; ok {
			names = append(names, s.userTeam)
		}
	}
	return names
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// scoreOffers computes offer candidates for a resolved offer set.
func (s *Service) scoreOffers(ctx context.Context, r model.Recruit, names []string, week int) []model.OfferCandidate {
	s.mu.RLock()
	teams := make([]model.Team, 0, len(names))
	for _, name := range names {
		if t, ok := s.teams[name]; ok {
			teams = append(teams, t)
		}
	}
	s.mu.RUnlock()

	season := interest.SeasonContext{GameInSeason: weekToGame(week)}
	offers := make([]model.OfferCandidate, 0, len(teams))
	for _, t := range teams {
		b := s.calculator.Score(ctx, r, t, season)
		metrics.RecordScoreComputed()
		nt := t.Normalized()
		offers = append(offers, model.OfferCandidate{
			Name:             t.Name,
			Score:            b.Score,
			Prestige:         *nt.Prestige,
			Pitch:            b.Pitch,
			WhyBadges:        b.WhyBadges,
			EstDistanceMiles: b.EstDistanceMiles,
		})
	}
	return offers
}

// updateBoard pushes the freshly built market onto the recruiting board.
// Signed recruits come off the board instead.
func (s *Service) updateBoard(ctx context.Context, r model.Recruit, result shortlist.Result, week int) {
	if r.IsSigned {
		if err := s.board.Remove(ctx, r.ID); err != nil {
			s.logger.Debug(ctx, "signed recruit not on board", logger.String("recruitID", r.ID))
		}
		return
	}
	if len(result.Shortlist) == 0 {
		return
	}

	leader := result.Shortlist[0]
	for _, entry := range result.Shortlist {
		if entry.Tier == model.TierLeader {
			leader = entry
			break
		}
	}

	heat := leader.Share * r.Interest
	if _, err := s.board.Upsert(ctx, r.ID, heat, leader.Name, leader.Share, r.Interest, week); err != nil {
		s.logger.Error(ctx, "board update failed",
			logger.String("recruitID", r.ID),
			logger.Error(err),
		)
	}
}

// RecomputeAll enqueues a full-league recompute sweep for a week.
// Returns the number of jobs queued.
func (s *Service) RecomputeAll(ctx context.Context, week int) (int, error) {
	s.mu.RLock()
	if !s.started {
		s.mu.RUnlock()
		return 0, ErrNotStarted
	}
	ids := make([]string, 0, len(s.recruits))
	for id := range s.recruits {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	sort.Strings(ids)

	start := time.Now()
	queued := 0
	for _, id := range ids {
		if s.jobQueue.Enqueue(ctx, jobqueue.Job{RecruitID: id, Week: week}) {
			queued++
		} else {
			s.logger.Warn(ctx, "recompute queue full, job dropped",
				logger.String("recruitID", id),
				logger.Int("week", week),
			)
		}
	}
	metrics.RecordSweepLatency(float64(time.Since(start).Milliseconds()))

	s.logger.Info(ctx, "recompute sweep queued",
		logger.Int("week", week),
		logger.Int("queued", queued),
		logger.Int("recruits", len(ids)),
	)
	return queued, nil
}

// TopBoard returns the top N recruiting board entries.
func (s *Service) TopBoard(ctx context.Context, n int) ([]board.Entry, error) {
	return s.board.TopN(ctx, n)
}

// BoardRank returns the board standing for a recruit.
func (s *Service) BoardRank(ctx context.Context, recruitID string) (board.Entry, error) {
	return s.board.Rank(ctx, recruitID)
}

// QuestDeck builds the weekly league quest deck.
func (s *Service) QuestDeck(ctx context.Context, week int, registry *model.AlumniRegistry) []model.SponsorQuest {
	deck := s.questGen.BuildLeagueDeck(ctx, week, registry)
	metrics.RecordQuestsGenerated("league", len(deck))
	return deck
}

// TeamQuests generates sponsor quests for one team.
func (s *Service) TeamQuests(ctx context.Context, teamName string, week int) ([]model.SponsorQuest, error) {
	t, err := s.Team(ctx, teamName)
	if err != nil {
		return nil, err
	}
	quests := s.questGen.GenerateTeamQuests(ctx, t, week)
	metrics.RecordQuestsGenerated("team", len(quests))
	return quests, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"cacheSize":   s.cacheSize,
		"recruits":    len(s.recruits),
		"teams":       len(s.teams),
	}

	if s.started {
		queueLen := s.jobQueue.Len(ctx)
		boardCount := s.board.Count(ctx)

		stats["queueLength"] = queueLen
		stats["boardCount"] = boardCount
		stats["memoSize"] = s.memo.Size()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateTotalRecruits(len(s.recruits))
		metrics.UpdateTotalTeams(len(s.teams))
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}

// weekToGame maps a recruiting week onto the season game clock.
// Two games a week is close enough for pitch damping.
func weekToGame(week int) int {
	if week < 0 {
		return 0
	}
	return week * 2
}

// memoKey builds the cache key from the recruit, the offer-set
// signature, and the week.
func memoKey(recruitID string, offerNames []string, week int) string {
	sorted := make([]string, len(offerNames))
	copy(sorted, offerNames)
	sort.Strings(sorted)
	return fmt.Sprintf("%s|%s|%d", recruitID, strings.Join(sorted, ","), week)
}
