package seasonsim

import (
	"context"
	"crypto/rand"
	"math/big"
	"strconv"

	"github.com/google/uuid"
	"github.com/nonianfoix/sweet-sixteen/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	programTierDivisor = 8
	offerCountMin      = 2
	offerCountSpread   = 5
	dealbreakerDivisor = 10
	sponsorDivisor     = 2
)

// Constants for prestige generation ranges.
const (
	blueBloodMin      = 88.0
	blueBloodRange    = 11.0
	powerConfMin      = 70.0
	powerConfRange    = 18.0
	midMajorMin       = 45.0
	midMajorRange     = 25.0
	lowMajorMin       = 20.0
	lowMajorRange     = 25.0
	interestFloor     = 20.0
	interestRange     = 80.0
	motivationRange   = 100.0
	minutesRange      = 40.0
	signalRange       = 100.0
)

// Constants for program tier cases.
const (
	caseBlueBlood = 0
	casePowerConf = 1
	casePowerAlt  = 2
	caseMidMajor  = 3
	caseMidAlt    = 4
	caseMidAlt2   = 5
	caseLowMajor  = 6
	caseLowAlt    = 7
)

// homeStates covers the state centroids the distance estimator knows about.
var homeStates = []string{
	"NC", "CA", "TX", "FL", "NY", "IL", "OH", "GA", "PA", "MI",
	"IN", "KY", "KS", "AZ", "WA", "VA", "TN", "MD", "NJ", "CT",
}

// sponsors is the pool assigned to roughly half the programs.
var sponsors = []string{
	"Hoop Threads", "Court Kings", "Fastbreak Fuel", "Rim City Gear",
	"Baseline Bank", "Crossover Telecom",
}

// dealbreakers matches the hard preferences the scorer understands.
var dealbreakers = []string{"far_from_home", "cold_market"}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// getRandomInt returns a random int in [0, max) using crypto/rand.
func getRandomInt(max int64) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(max))
	return int(n.Int64())
}

// generateLeague creates the synthetic teams and recruits for the simulation.
func generateLeague(ctx context.Context, config *Config, stats *Stats) ([]Team, []Recruit, error) {
	logger.Get().Info(ctx, "generating synthetic league",
		logger.Int("teams", config.NumTeams),
		logger.Int("recruits", config.NumRecruits))

	teams := make([]Team, config.NumTeams)
	for i := 0; i < config.NumTeams; i++ {
		teams[i] = generateSingleTeam(i)
	}

	recruits := make([]Recruit, config.NumRecruits)
	for i := 0; i < config.NumRecruits; i++ {
		recruits[i] = generateSingleRecruit(i, teams)
	}

	stats.TeamsGenerated = len(teams)
	stats.RecruitsGenerated = len(recruits)
	logger.Get().Info(ctx, "generated league successfully",
		logger.Int("teams", len(teams)),
		logger.Int("recruits", len(recruits)))

	return teams, recruits, nil
}

// generateSingleTeam creates one program with a tiered prestige profile.
func generateSingleTeam(index int) Team {
	prestige := generateTieredPrestige()
	state := homeStates[getRandomInt(int64(len(homeStates)))]

	team := Team{
		Name:              "Program " + strconv.Itoa(index+1),
		State:             state,
		Prestige:          prestige,
		NILBudget:         getRandomFloat() * signalRange,
		MediaMarket:       getRandomFloat() * signalRange,
		AcademicRating:    getRandomFloat() * signalRange,
		DevelopmentRating: getRandomFloat() * signalRange,
		RelationshipLevel: getRandomFloat() * signalRange,
		ProjectedMinutes:  getRandomFloat() * minutesRange,
	}

	// Roughly half the programs carry a sponsor
	if getRandomInt(sponsorDivisor) == 0 {
		team.Sponsor = sponsors[getRandomInt(int64(len(sponsors)))]
	}

	return team
}

// generateTieredPrestige creates a prestige value with a tiered distribution.
func generateTieredPrestige() float64 {
	switch int64(getRandomInt(programTierDivisor)) {
	case caseBlueBlood:
		// Blue bloods (88 - 99) - rare
		return blueBloodMin + getRandomFloat()*blueBloodRange
	case casePowerConf, casePowerAlt:
		// Power conference programs (70 - 88)
		return powerConfMin + getRandomFloat()*powerConfRange
	case caseMidMajor, caseMidAlt, caseMidAlt2:
		// Mid majors (45 - 70) - most common
		return midMajorMin + getRandomFloat()*midMajorRange
	case caseLowMajor, caseLowAlt:
		// Low majors (20 - 45)
		return lowMajorMin + getRandomFloat()*lowMajorRange
	default:
		return midMajorMin + getRandomFloat()*midMajorRange
	}
}

// generateSingleRecruit creates one recruit with a random offer sheet.
func generateSingleRecruit(index int, teams []Team) Recruit {
	offerCount := offerCountMin + getRandomInt(offerCountSpread)
	if offerCount > len(teams) {
		offerCount = len(teams)
	}

	// Sample distinct programs for the offer sheet
	offers := make([]string, 0, offerCount)
	seen := make(map[int]bool, offerCount)
	for len(offers) < offerCount {
		pick := getRandomInt(int64(len(teams)))
		if seen[pick] {
			continue
		}
		seen[pick] = true
		offers = append(offers, teams[pick].Name)
	}

	recruit := Recruit{
		ID:        uuid.New().String(),
		Name:      "Recruit " + strconv.Itoa(index+1),
		HomeState: homeStates[getRandomInt(int64(len(homeStates)))],
		Interest:  interestFloor + getRandomFloat()*interestRange,
		CPUOffers: offers,
		Motivations: &Motivations{
			Proximity:    getRandomFloat() * motivationRange,
			PlayingTime:  getRandomFloat() * motivationRange,
			NIL:          getRandomFloat() * motivationRange,
			Exposure:     getRandomFloat() * motivationRange,
			Relationship: getRandomFloat() * motivationRange,
			Development:  getRandomFloat() * motivationRange,
			Academics:    getRandomFloat() * motivationRange,
		},
	}

	// One in ten recruits carries a dealbreaker
	if getRandomInt(dealbreakerDivisor) == 0 {
		recruit.Dealbreaker = dealbreakers[getRandomInt(int64(len(dealbreakers)))]
	}

	return recruit
}
