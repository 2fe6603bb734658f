// Package interest computes a recruit's attractiveness score for a single
// competing program's offer.
//
// Score is a total function over its documented input domain: missing data
// is defaulted at the model boundary and distance lookups degrade rather
// than fail, so it never returns an error. Callers own memoization; the
// calculator holds no cache and is safe to call repeatedly.
package interest

import (
	"context"
	"math"
	"sort"

	"github.com/nonianfoix/sweet-sixteen/internal/domain/geo"
	"github.com/nonianfoix/sweet-sixteen/internal/domain/model"
)

// Default scoring configuration constants.
const (
	defaultBadgeLimit       = 4
	defaultBadgeFloor       = 8.0
	defaultPitchCoefficient = 12.0
	defaultEliteFitPenalty  = 35.0
	defaultGatePenalty      = 25.0
	defaultMaxDistance      = 1500.0

	elitePrestigeFloor  = 90.0
	academicFitFloor    = 35.0
	farFromHomeMiles    = 1000
	coldMarketMediaCeil = 35.0
	seasonLengthGames   = 30.0
	minutesPerGame      = 40.0
)

// SeasonContext carries caller-supplied season state into scoring.
type SeasonContext struct {
	// GameInSeason is how deep into the current season the call is made.
	// Pitch leverage fades as the cycle closes.
	GameInSeason int
}

// Breakdown is the itemized result of scoring one recruit/team pairing.
type Breakdown struct {
	// Score is the composite attractiveness score. It is unclamped and can
	// go negative for clearly mismatched pairings.
	Score            float64                    `json:"score"`
	Pitch            model.Pitch                `json:"pitch"`
	WhyBadges        []model.Badge              `json:"why_badges"`
	EstDistanceMiles int                        `json:"est_distance_miles"`
	Components       map[model.Category]float64 `json:"components"`
	EliteFitFail     bool                       `json:"elite_fit_fail,omitempty"`
	DealbreakerHit   bool                       `json:"dealbreaker_hit,omitempty"`
}

// Calculator scores one offer for a recruit.
type Calculator interface {
	Score(ctx context.Context, recruit model.Recruit, team model.Team, season SeasonContext) Breakdown
}

// WeightedCalculator implements Calculator as a motivation-weighted sum of
// team supply signals.
type WeightedCalculator struct {
	estimator geo.Estimator

	badgeLimit       int
	badgeFloor       float64
	pitchCoefficient float64
	eliteFitPenalty  float64
	gatePenalty      float64
	maxDistance      float64
}

// NewWeightedCalculator creates a calculator backed by the given distance
// estimator.
func NewWeightedCalculator(estimator geo.Estimator, opts ...Option) *WeightedCalculator {
	c := &WeightedCalculator{
		estimator:        estimator,
		badgeLimit:       defaultBadgeLimit,
		badgeFloor:       defaultBadgeFloor,
		pitchCoefficient: defaultPitchCoefficient,
		eliteFitPenalty:  defaultEliteFitPenalty,
		gatePenalty:      defaultGatePenalty,
		maxDistance:      defaultMaxDistance,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// pitchTargets maps each non-default pitch to the categories it amplifies.
var pitchTargets = map[model.Pitch][]model.Category{
	model.PitchNILHeavy:    {model.CategoryNIL},
	model.PitchPlayingTime: {model.CategoryPlayingTime},
	model.PitchLocalAngle:  {model.CategoryProximity, model.CategoryRelationship},
	model.PitchAcademic:    {model.CategoryAcademics, model.CategoryDevelopment},
}

// Score computes the composite score and its itemized breakdown.
func (c *WeightedCalculator) Score(ctx context.Context, recruit model.Recruit, team model.Team, season SeasonContext) Breakdown {
	r := recruit.Normalized()
	t := team.Normalized()

	miles := c.estimator.Estimate(ctx, r, t)
	supply := c.supplySignals(t, miles)

	components := make(map[model.Category]float64, len(model.CategoryPriority))
	score := 0.0
	for _, cat := range model.CategoryPriority {
		contribution := r.Motivations.Weight(cat) * supply[cat] / float64(len(model.CategoryPriority))
		components[cat] = contribution
		score += contribution
	}

	// Pitch leverage: boost targeted categories in proportion to how much
	// the recruit already cares about them, fading late in the season.
	if targets, ok := pitchTargets[t.Pitch]; ok {
		damp := 1.0 - 0.5*math.Min(1, float64(season.GameInSeason)/seasonLengthGames)
		avg := 0.0
		for _, cat := range targets {
			avg += r.Motivations.Weight(cat)
		}
		avg /= float64(len(targets))

		leverage := avg / 100 * c.pitchCoefficient * damp
		perTarget := leverage / float64(len(targets))
		for _, cat := range targets {
			components[cat] += perTarget
		}
		score += leverage
	}

	b := Breakdown{
		Pitch:            t.Pitch,
		EstDistanceMiles: miles,
		Components:       components,
	}

	// Elite-fit gate: top programs hold weak-academic fits to a materially
	// lower score without zeroing them out.
	if *t.Prestige >= elitePrestigeFloor && r.Motivations.Academics < academicFitFloor {
		score -= c.eliteFitPenalty
		b.EliteFitFail = true
	}

	switch r.Dealbreaker {
	case model.DealbreakerFarFromHome:
		if miles > farFromHomeMiles {
			score -= c.gatePenalty
			b.DealbreakerHit = true
		}
	case model.DealbreakerColdMarket:
		if *t.MediaMarket < coldMarketMediaCeil {
			score -= c.gatePenalty
			b.DealbreakerHit = true
		}
	}

	b.Score = score
	b.WhyBadges = c.selectBadges(components)
	return b
}

// supplySignals derives the per-category supply in [0,1] from a normalized
// team snapshot.
func (c *WeightedCalculator) supplySignals(t model.Team, miles int) map[model.Category]float64 {
	proximity := 1 - math.Min(float64(miles), c.maxDistance)/c.maxDistance
	return map[model.Category]float64{
		model.CategoryProximity:    proximity,
		model.CategoryNIL:          *t.NILBudget / 100,
		model.CategoryExposure:     0.6**t.Prestige/100 + 0.4**t.MediaMarket/100,
		model.CategoryAcademics:    *t.AcademicRating / 100,
		model.CategoryDevelopment:  *t.DevelopmentRating / 100,
		model.CategoryRelationship: *t.RelationshipLevel / 100,
		model.CategoryPlayingTime:  *t.ProjectedMinutes / minutesPerGame,
	}
}

// selectBadges picks the top contributing categories. Ties resolve by the
// fixed priority order so output is stable across runs.
func (c *WeightedCalculator) selectBadges(components map[model.Category]float64) []model.Badge {
	ordered := make([]model.Category, len(model.CategoryPriority))
	copy(ordered, model.CategoryPriority)
	sort.SliceStable(ordered, func(i, j int) bool {
		return components[ordered[i]] > components[ordered[j]]
	})

	limit := c.badgeLimit
	if limit > len(ordered) {
		limit = len(ordered)
	}

	badges := make([]model.Badge, 0, limit)
	for _, cat := range ordered[:limit] {
		if components[cat] < c.badgeFloor {
			break
		}
		badges = append(badges, model.BadgeFor(cat))
	}

	// Always surface at least the single strongest factor.
	if len(badges) == 0 {
		badges = append(badges, model.BadgeFor(ordered[0]))
	}
	return badges
}
