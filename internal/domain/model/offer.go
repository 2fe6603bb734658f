package model

// Category identifies one motivation category contributing to an offer score.
type Category string

// Closed set of motivation categories.
const (
	CategoryProximity    Category = "proximity"
	CategoryPlayingTime  Category = "playingTime"
	CategoryNIL          Category = "nil"
	CategoryExposure     Category = "exposure"
	CategoryRelationship Category = "relationship"
	CategoryDevelopment  Category = "development"
	CategoryAcademics    Category = "academics"
)

// CategoryPriority is the fixed tie-break order for badge selection. It is an
// explicit ordered list so that ties resolve identically on every runtime.
var CategoryPriority = []Category{
	CategoryProximity,
	CategoryNIL,
	CategoryExposure,
	CategoryDevelopment,
	CategoryAcademics,
	CategoryRelationship,
	CategoryPlayingTime,
}

// Badge is a short human-readable tag naming a top contributing factor.
type Badge string

// Badge labels, one per category.
const (
	BadgeCloseToHome        Badge = "Close to Home"
	BadgeNILLeader          Badge = "NIL Leader"
	BadgeWinningProgram     Badge = "Winning Program"
	BadgePlayerDevelopment  Badge = "Player Development"
	BadgeAcademicFit        Badge = "Academic Fit"
	BadgeStrongRelationship Badge = "Strong Relationship"
	BadgeDayOneMinutes      Badge = "Day-One Minutes"
)

// BadgeFor maps a category to its display badge.
func BadgeFor(c Category) Badge {
	switch c {
	case CategoryProximity:
		return BadgeCloseToHome
	case CategoryNIL:
		return BadgeNILLeader
	case CategoryExposure:
		return BadgeWinningProgram
	case CategoryDevelopment:
		return BadgePlayerDevelopment
	case CategoryAcademics:
		return BadgeAcademicFit
	case CategoryRelationship:
		return BadgeStrongRelationship
	case CategoryPlayingTime:
		return BadgeDayOneMinutes
	default:
		return Badge(c)
	}
}

// OfferCandidate is the ephemeral per-team scoring result. It is recomputed
// on demand and never persisted.
type OfferCandidate struct {
	Name             string  `json:"name"`
	Score            float64 `json:"score"`
	Prestige         float64 `json:"prestige"`
	Pitch            Pitch   `json:"pitch,omitempty"`
	WhyBadges        []Badge `json:"why_badges,omitempty"`
	EstDistanceMiles int     `json:"est_distance_miles"`
}

// Tier labels an offer's standing within a recruit's market.
type Tier string

// Tier labels from strongest to weakest standing.
const (
	TierLeader   Tier = "Leader"
	TierInTheMix Tier = "In The Mix"
	TierChasing  Tier = "Chasing"
	TierLongshot Tier = "Longshot"
)

// RankedOffer is a shortlist entry: an offer candidate with its market share
// and tier.
type RankedOffer struct {
	OfferCandidate
	Share float64 `json:"share"`
	Tier  Tier    `json:"tier"`
}
