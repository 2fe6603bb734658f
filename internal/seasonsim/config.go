package seasonsim

import "time"

// Config holds configuration for the season simulation
type Config struct {
	BaseURL     string        // Base URL of the service
	NumRecruits int           // Number of recruits to generate
	NumTeams    int           // Number of teams to generate
	Weeks       int           // Number of recruiting weeks to simulate
	TopN        int           // Number of top board entries to fetch
	Workers     int           // Number of concurrent workers
	Timeout     time.Duration // HTTP request timeout
	OutputFile  string        // Output file for the generated league
	LogFile     string        // Log file for simulation output
	Verbose     bool          // Enable verbose logging
}

// Motivations is the wire form of a recruit's motivation weights
type Motivations struct {
	Proximity    float64 `json:"proximity"`
	PlayingTime  float64 `json:"playing_time"`
	NIL          float64 `json:"nil"`
	Exposure     float64 `json:"exposure"`
	Relationship float64 `json:"relationship"`
	Development  float64 `json:"development"`
	Academics    float64 `json:"academics"`
}

// Recruit is the wire form of a recruit registration
type Recruit struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	HomeState   string       `json:"home_state"`
	Motivations *Motivations `json:"motivations,omitempty"`
	Interest    float64      `json:"interest"`
	CPUOffers   []string     `json:"cpu_offers,omitempty"`
	Dealbreaker string       `json:"dealbreaker,omitempty"`
}

// Team is the wire form of a team registration
type Team struct {
	Name              string  `json:"name"`
	State             string  `json:"state"`
	Prestige          float64 `json:"prestige"`
	NILBudget         float64 `json:"nil_budget"`
	MediaMarket       float64 `json:"media_market"`
	AcademicRating    float64 `json:"academic_rating"`
	DevelopmentRating float64 `json:"development_rating"`
	RelationshipLevel float64 `json:"relationship_level"`
	ProjectedMinutes  float64 `json:"projected_minutes"`
	Sponsor           string  `json:"sponsor,omitempty"`
}

// RankedOffer is one shortlist entry returned by the service
type RankedOffer struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
	Share float64 `json:"share"`
	Tier  string  `json:"tier"`
}

// ShortlistResult is the response from a shortlist build
type ShortlistResult struct {
	Shortlist []RankedOffer      `json:"shortlist"`
	Shares    map[string]float64 `json:"shares"`
}

// BoardEntry represents a recruiting board entry
type BoardEntry struct {
	Rank      int     `json:"rank"`
	RecruitID string  `json:"recruit_id"`
	Heat      float64 `json:"heat"`
	Leader    string  `json:"leader"`
}

// SponsorQuest is one quest from the weekly deck
type SponsorQuest struct {
	ID          string `json:"id"`
	Sponsor     string `json:"sponsor"`
	Title       string `json:"title"`
	SponsorTier string `json:"sponsor_tier"`
	ExpiresWeek int    `json:"expires_week"`
}

// AckResponse represents the response from a registration
type AckResponse struct {
	Status string `json:"status"`
}

// RecomputeResponse represents the response from a sweep request
type RecomputeResponse struct {
	Queued int `json:"queued"`
}

// Stats holds simulation statistics
type Stats struct {
	TeamsGenerated      int
	RecruitsGenerated   int
	TeamsSubmitted      int
	RecruitsSubmitted   int
	SubmissionsFailed   int
	SweepsQueued        int
	ShortlistsRetrieved int
	ShortlistFailures   int
	BoardEntries        int
	QuestsDealt         int
	StartTime           time.Time
	EndTime             time.Time
	Duration            time.Duration
}
