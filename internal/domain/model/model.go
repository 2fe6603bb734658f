// Package model contains domain records passed between layers.
//
// Input records (Recruit, Team, AlumniRegistry) are value snapshots supplied
// by the caller and are never mutated by the engine. All "default if absent"
// decisions live in the Normalized methods here, so scoring code never
// carries fallback literals.
package model

// Midpoint is the default for absent motivation weights and team signals.
const Midpoint = 50

// Motivations holds named weights in [0,100] describing what a recruit
// cares about.
type Motivations struct {
	Proximity    float64 `json:"proximity"`
	PlayingTime  float64 `json:"playing_time"`
	NIL          float64 `json:"nil"`
	Exposure     float64 `json:"exposure"`
	Relationship float64 `json:"relationship"`
	Development  float64 `json:"development"`
	Academics    float64 `json:"academics"`
}

// Weight returns the weight for a category.
func (m Motivations) Weight(c Category) float64 {
	switch c {
	case CategoryProximity:
		return m.Proximity
	case CategoryPlayingTime:
		return m.PlayingTime
	case CategoryNIL:
		return m.NIL
	case CategoryExposure:
		return m.Exposure
	case CategoryRelationship:
		return m.Relationship
	case CategoryDevelopment:
		return m.Development
	case CategoryAcademics:
		return m.Academics
	default:
		return Midpoint
	}
}

// Dealbreaker is a hard preference that gates an otherwise good fit.
type Dealbreaker string

// Known dealbreakers.
const (
	DealbreakerNone        Dealbreaker = ""
	DealbreakerFarFromHome Dealbreaker = "far_from_home"
	DealbreakerColdMarket  Dealbreaker = "cold_market"
)

// Recruit is a prospective player being courted by multiple programs.
type Recruit struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Home location. Lat/Lon take precedence when present; otherwise the
	// state centroid is used.
	HomeState string   `json:"home_state"`
	HomeCity  string   `json:"home_city,omitempty"`
	HomeLat   *float64 `json:"home_lat,omitempty"`
	HomeLon   *float64 `json:"home_lon,omitempty"`

	Motivations *Motivations `json:"motivations,omitempty"`

	// Interest is the recruit's overall market heat in [0,100]. It is owned
	// by the surrounding simulation and read-only here; it is not the same
	// scalar as a per-offer score.
	Interest float64 `json:"interest"`

	CPUOffers        []string    `json:"cpu_offers,omitempty"`
	UserHasOffered   bool        `json:"user_has_offered,omitempty"`
	VerbalCommitment string      `json:"verbal_commitment,omitempty"`
	IsSigned         bool        `json:"is_signed,omitempty"`
	Dealbreaker      Dealbreaker `json:"dealbreaker,omitempty"`
	PersonalityTrait string      `json:"personality_trait,omitempty"`
	Archetype        string      `json:"archetype,omitempty"`
}

// Normalized returns a copy with absent optional fields defaulted. Absent
// motivations become the midpoint weight for every category.
func (r Recruit) Normalized() Recruit {
	if r.Motivations == nil {
		r.Motivations = &Motivations{
			Proximity:    Midpoint,
			PlayingTime:  Midpoint,
			NIL:          Midpoint,
			Exposure:     Midpoint,
			Relationship: Midpoint,
			Development:  Midpoint,
			Academics:    Midpoint,
		}
	}
	return r
}

// CommittedTo returns the program the recruit is verbally or hard committed
// to, or "" when uncommitted.
func (r Recruit) CommittedTo() string {
	return r.VerbalCommitment
}

// Pitch is a strategic framing a program selects for its offer.
type Pitch string

// Known pitch types. PitchBalanced is the default and carries no modifier.
const (
	PitchBalanced    Pitch = "Balanced"
	PitchNILHeavy    Pitch = "NIL Heavy"
	PitchPlayingTime Pitch = "Playing Time Promise"
	PitchLocalAngle  Pitch = "Local Angle"
	PitchAcademic    Pitch = "Academic Pitch"
)

// Team is an offering program's snapshot.
type Team struct {
	Name       string `json:"name"`
	Conference string `json:"conference,omitempty"`

	// Campus location. Lat/Lon take precedence; otherwise the campus table
	// and state centroid are consulted.
	State string   `json:"state,omitempty"`
	City  string   `json:"city,omitempty"`
	Lat   *float64 `json:"lat,omitempty"`
	Lon   *float64 `json:"lon,omitempty"`

	// Supply signals, each in [0,100] (ProjectedMinutes in [0,40]).
	Prestige          *float64 `json:"prestige,omitempty"`
	NILBudget         *float64 `json:"nil_budget,omitempty"`
	MediaMarket       *float64 `json:"media_market,omitempty"`
	AcademicRating    *float64 `json:"academic_rating,omitempty"`
	DevelopmentRating *float64 `json:"development_rating,omitempty"`
	RelationshipLevel *float64 `json:"relationship_level,omitempty"`
	ProjectedMinutes  *float64 `json:"projected_minutes,omitempty"`

	Pitch   Pitch  `json:"pitch,omitempty"`
	Sponsor string `json:"sponsor,omitempty"`
}

// Normalized returns a copy with absent optional signals defaulted to the
// midpoint (ProjectedMinutes to half a game) and an empty pitch set to
// PitchBalanced.
func (t Team) Normalized() Team {
	if t.Prestige == nil {
		t.Prestige = midDefault()
	}
	if t.NILBudget == nil {
		t.NILBudget = midDefault()
	}
	if t.MediaMarket == nil {
		t.MediaMarket = midDefault()
	}
	if t.AcademicRating == nil {
		t.AcademicRating = midDefault()
	}
	if t.DevelopmentRating == nil {
		t.DevelopmentRating = midDefault()
	}
	if t.RelationshipLevel == nil {
		t.RelationshipLevel = midDefault()
	}
	if t.ProjectedMinutes == nil {
		halfGame := 20.0
		t.ProjectedMinutes = &halfGame
	}
	if t.Pitch == "" {
		t.Pitch = PitchBalanced
	}
	return t
}

// midDefault allocates a fresh midpoint value so defaulted signal fields
// never share storage.
func midDefault() *float64 {
	mid := float64(Midpoint)
	return &mid
}

// AlumniRegistry counts alumni by professional archetype; it gates the
// Syndicate sponsor category.
type AlumniRegistry struct {
	Finance int `json:"finance"`
	Tech    int `json:"tech"`
}
