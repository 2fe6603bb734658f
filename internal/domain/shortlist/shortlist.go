// Package shortlist turns a recruit's full offer set into a bounded,
// share-weighted shortlist.
//
// Build is a pure function of its inputs: identical offers, commitment and
// seed key always produce identical output. Invalid configuration clamps to
// safe bounds instead of failing, since this feeds directly into rendering.
package shortlist

import (
	"context"
	"hash/fnv"
	"math"
	"sort"

	"github.com/nonianfoix/sweet-sixteen/internal/domain/model"
)

// Default builder configuration constants.
const (
	defaultMinSize      = 3
	defaultMaxSize      = 6
	defaultLeaderWindow = 12.0
	defaultTemperature  = 1.0

	inMixRatio = 0.65
	inMixFloor = 16.0

	jitterSpread = 0.06 // weights move within [0.97, 1.03]
)

// Result is the outcome of one shortlist build. Shares and Tiers cover the
// full offer set, not just the shortlist; shares sum to 100.
type Result struct {
	Shortlist []model.RankedOffer   `json:"shortlist"`
	Shares    map[string]float64    `json:"shares"`
	Tiers     map[string]model.Tier `json:"tiers"`
}

// Builder converts offer score sets into shortlists and market shares.
type Builder struct {
	minSize      int
	maxSize      int
	leaderWindow float64
	temperature  float64
}

// NewBuilder creates a builder with configuration options. Out-of-range
// options clamp rather than error.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		minSize:      defaultMinSize,
		maxSize:      defaultMaxSize,
		leaderWindow: defaultLeaderWindow,
		temperature:  defaultTemperature,
	}

	for _, opt := range opts {
		opt(b)
	}

	// Caller logic errors clamp to safe bounds.
	if b.minSize < 1 {
		b.minSize = 1
	}
	if b.maxSize < b.minSize {
		b.maxSize = b.minSize
	}
	if b.temperature <= 0 {
		b.temperature = defaultTemperature
	}

	return b
}

// Build ranks the offers, selects the shortlist and computes market shares
// for every offer. committedTo force-includes that team in the shortlist
// when it holds an offer, expanding the shortlist by at most one beyond the
// maximum; this is the one deliberate exception to the size bound. seedKey,
// when non-empty, applies deterministic per-team jitter to the weights so
// shares can drift between recompute cycles while staying stable within one.
func (b *Builder) Build(_ context.Context, offers []model.OfferCandidate, committedTo, seedKey string) Result {
	if len(offers) == 0 {
		return Result{
			Shortlist: []model.RankedOffer{},
			Shares:    map[string]float64{},
			Tiers:     map[string]model.Tier{},
		}
	}

	ranked := make([]model.OfferCandidate, len(offers))
	copy(ranked, offers)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if ranked[i].Prestige != ranked[j].Prestige {
			return ranked[i].Prestige > ranked[j].Prestige
		}
		return ranked[i].Name < ranked[j].Name
	})

	size := len(ranked)
	if size > b.maxSize {
		size = b.maxSize
	}
	if size < b.minSize {
		size = b.minSize
	}
	if size > len(ranked) {
		size = len(ranked)
	}

	selected := ranked[:size]
	if committedTo != "" && !contains(selected, committedTo) {
		for _, o := range ranked[size:] {
			if o.Name == committedTo {
				selected = append(selected, o)
				break
			}
		}
	}

	shares := b.computeShares(ranked, seedKey)

	shortlisted := make(map[string]bool, len(selected))
	for _, o := range selected {
		shortlisted[o.Name] = true
	}

	// The Leader tier follows the top share across the full offer set,
	// so jitter can never crown a lower-share shortlist entry.
	leaderShare := 0.0
	leaderName := ""
	for _, o := range ranked {
		if s := shares[o.Name]; s > leaderShare {
			leaderShare = s
			leaderName = o.Name
		}
	}
	if leaderName == "" {
		// Uniform zero-score market: top-ranked offer leads by convention.
		leaderName = ranked[0].Name
		leaderShare = shares[leaderName]
	}

	tiers := make(map[string]model.Tier, len(ranked))
	for _, o := range ranked {
		tiers[o.Name] = b.tierFor(o.Name, shares[o.Name], leaderName, leaderShare, shortlisted[o.Name])
	}

	out := make([]model.RankedOffer, len(selected))
	for i, o := range selected {
		out[i] = model.RankedOffer{
			OfferCandidate: o,
			Share:          shares[o.Name],
			Tier:           tiers[o.Name],
		}
	}

	return Result{Shortlist: out, Shares: shares, Tiers: tiers}
}

// computeShares normalizes non-negative score weights into percentages over
// the full offer set. The temperature exponent sharpens (>1) or flattens
// (<1) the distribution; an all-nonpositive set distributes uniformly.
func (b *Builder) computeShares(offers []model.OfferCandidate, seedKey string) map[string]float64 {
	weights := make([]float64, len(offers))
	sum := 0.0
	for i, o := range offers {
		w := math.Pow(math.Max(o.Score, 0), b.temperature)
		if seedKey != "" && w > 0 {
			w *= jitterFactor(seedKey, o.Name)
		}
		weights[i] = w
		sum += w
	}

	shares := make(map[string]float64, len(offers))
	if sum == 0 {
		uniform := 100 / float64(len(offers))
		for _, o := range offers {
			shares[o.Name] = uniform
		}
		return shares
	}

	for i, o := range offers {
		shares[o.Name] = weights[i] / sum * 100
	}
	return shares
}

func (b *Builder) tierFor(name string, share float64, leaderName string, leaderShare float64, inShortlist bool) model.Tier {
	if name == leaderName {
		return model.TierLeader
	}
	if !inShortlist {
		return model.TierLongshot
	}
	if leaderShare <= 0 {
		if share >= inMixFloor {
			return model.TierInTheMix
		}
		return model.TierChasing
	}
	if share >= leaderShare*inMixRatio || leaderShare-share <= b.leaderWindow {
		return model.TierInTheMix
	}
	return model.TierChasing
}

func contains(offers []model.OfferCandidate, name string) bool {
	for _, o := range offers {
		if o.Name == name {
			return true
		}
	}
	return false
}

// jitterFactor derives a stable multiplier in [0.97, 1.03) from the seed key
// and team name.
func jitterFactor(seedKey, name string) float64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(seedKey))
	_, _ = h.Write([]byte{'|'})
	_, _ = h.Write([]byte(name))
	frac := float64(h.Sum64()%10_000) / 10_000
	return 1 - jitterSpread/2 + jitterSpread*frac
}
