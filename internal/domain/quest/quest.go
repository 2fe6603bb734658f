// Package quest generates sponsor quests: season objectives with cash
// rewards.
//
// Unlike the scoring packages, quest generation is intentionally random.
// Randomness sits behind an injectable Source so tests can script it; no
// determinism is promised in production.
package quest

import (
	"context"

	"github.com/google/uuid"

	"github.com/nonianfoix/sweet-sixteen/internal/domain/model"
)

// Default generator configuration constants.
const (
	defaultDeckSize      = 4
	defaultSyndicateRate = 0.05 // per finance/tech alum

	secondQuestChance = 0.3
	deckDurationWeeks = 8
	syndicateTarget   = 8
	deckTarget        = 4

	syndicateRewardMin = 50_000
	syndicateRewardMax = 150_000
	deckRewardMin      = 10_000
	deckRewardMax      = 60_000
)

// template fixes a quest category's content.
type template struct {
	questType   model.QuestType
	title       string
	description string
	target      int
	reward      int
	duration    int // weeks, within [4,10]
}

// teamQuestTable is the fixed per-category content for team quests.
var teamQuestTable = []template{
	{model.QuestAttendance, "Pack the House", "Sell out the home arena in five conference games.", 5, 30_000, 6},
	{model.QuestWins, "Stack Wins", "Win four games before the quest window closes.", 4, 50_000, 8},
	{model.QuestMedia, "Primetime Exposure", "Land three nationally televised appearances.", 3, 35_000, 5},
	{model.QuestNIL, "NIL Activation", "Close six player endorsement activations.", 6, 45_000, 7},
	{model.QuestAlumni, "Alumni Weekend", "Host two alumni showcase events on campus.", 2, 25_000, 4},
	{model.QuestDraft, "Draft Night Buzz", "Put a player on a first-round mock draft board.", 1, 60_000, 10},
}

// sponsorPools names sponsors per bracket for league-deck quests.
var sponsorPools = map[model.SponsorTier][]string{
	model.TierSyndicate: {"Crestline Alumni Syndicate", "Meridian Capital Collective", "Foundry Ventures Trust"},
	model.TierHigh:      {"Apex Athletic Apparel", "Summit Motors", "Continental Grid Insurance"},
	model.TierMid:       {"Hometown Hardware", "Riverside Grill", "Campus Couriers"},
	model.TierLow:       {"Corner Bookstore", "Maple Street Pizza", "Valley Car Wash"},
}

// nonSyndicateTiers is the uniform draw when the Syndicate gate misses.
var nonSyndicateTiers = []model.SponsorTier{model.TierMid, model.TierHigh, model.TierLow}

// Generator produces sponsor quests for teams and the weekly league deck.
type Generator struct {
	rand          Source
	deckSize      int
	syndicateRate float64
}

// NewGenerator creates a generator with configuration options.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		rand:          newMathSource(),
		deckSize:      defaultDeckSize,
		syndicateRate: defaultSyndicateRate,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// GenerateTeamQuests emits one or two active quests for a sponsored team.
// A team without a sponsor yields an empty slice; that is not an error.
func (g *Generator) GenerateTeamQuests(_ context.Context, team model.Team, week int) []model.SponsorQuest {
	if team.Sponsor == "" {
		return []model.SponsorQuest{}
	}

	count := 1
	if g.rand.Float64() < secondQuestChance {
		count = 2
	}

	quests := make([]model.SponsorQuest, 0, count)
	for i := 0; i < count; i++ {
		tpl := teamQuestTable[g.rand.Intn(len(teamQuestTable))]
		quests = append(quests, model.SponsorQuest{
			ID:          uuid.NewString(),
			Sponsor:     team.Sponsor,
			Title:       tpl.title,
			Description: tpl.description,
			Type:        tpl.questType,
			Target:      tpl.target,
			RewardCash:  tpl.reward,
			Status:      model.QuestActive,
			ExpiresWeek: week + tpl.duration,
		})
	}
	return quests
}

// BuildLeagueDeck emits the weekly deck of available quests. The Syndicate
// bracket opens with probability proportional to finance and tech alumni
// counts; its flag must survive to downstream consumers, so it is set on
// the quest itself.
func (g *Generator) BuildLeagueDeck(_ context.Context, week int, registry *model.AlumniRegistry) []model.SponsorQuest {
	chance := g.syndicateChance(registry)

	deck := make([]model.SponsorQuest, 0, g.deckSize)
	for i := 0; i < g.deckSize; i++ {
		tier := nonSyndicateTiers[0]
		if g.rand.Float64() < chance {
			tier = model.TierSyndicate
		} else {
			tier = nonSyndicateTiers[g.rand.Intn(len(nonSyndicateTiers))]
		}

		pool := sponsorPools[tier]
		sponsor := pool[g.rand.Intn(len(pool))]
		tpl := teamQuestTable[g.rand.Intn(len(teamQuestTable))]

		q := model.SponsorQuest{
			ID:          uuid.NewString(),
			Sponsor:     sponsor,
			Title:       tpl.title,
			Description: tpl.description,
			Type:        tpl.questType,
			SponsorTier: tier,
			Target:      deckTarget,
			RewardCash:  deckRewardMin + g.rand.Intn(deckRewardMax-deckRewardMin+1),
			Status:      model.QuestAvailable,
			ExpiresWeek: week + deckDurationWeeks,
		}
		if tier == model.TierSyndicate {
			q.Target = syndicateTarget
			q.RewardCash = syndicateRewardMin + g.rand.Intn(syndicateRewardMax-syndicateRewardMin+1)
			q.IsAlumniOwned = true
		}
		deck = append(deck, q)
	}
	return deck
}

// syndicateChance computes the Syndicate probability from the registry once
// per deck build; an absent registry keeps the bracket closed.
func (g *Generator) syndicateChance(registry *model.AlumniRegistry) float64 {
	if registry == nil {
		return 0
	}
	chance := float64(registry.Finance+registry.Tech) * g.syndicateRate
	if chance > 1 {
		chance = 1
	}
	return chance
}
