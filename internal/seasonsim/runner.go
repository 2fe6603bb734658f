package seasonsim

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nonianfoix/sweet-sixteen/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the complete season simulation.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting season simulation",
		logger.String("baseURL", config.BaseURL),
		logger.Int("recruits", config.NumRecruits),
		logger.Int("teams", config.NumTeams),
		logger.Int("weeks", config.Weeks),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Int("topN", config.TopN),
		logger.String("logFile", config.LogFile),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate the synthetic league
	teams, recruits, err := generateLeague(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("league generation failed: %w", err)
	}

	// Step 3: Register teams and recruits
	if err := submitLeague(ctx, config, teams, recruits, stats); err != nil {
		return fmt.Errorf("league submission failed: %w", err)
	}

	// Step 4: Sweep and verify week by week
	client := newHTTPClient(config.Timeout)
	var shortlists map[string]ShortlistResult
	for week := 0; week < config.Weeks; week++ {
		if err := triggerSweep(ctx, config, client, week, stats); err != nil {
			return fmt.Errorf("week %d sweep failed: %w", week, err)
		}

		logger.Get().Info(ctx, "waiting for sweep to settle", logger.Int("week", week))
		time.Sleep(SweepSettleDelay)

		shortlists, err = retrieveShortlists(ctx, config, recruits, week, stats)
		if err != nil {
			return fmt.Errorf("week %d shortlist retrieval failed: %w", week, err)
		}

		if err := verifyShortlists(shortlists, config.Verbose); err != nil {
			return fmt.Errorf("week %d shortlist verification failed: %w", week, err)
		}

		if _, err := getQuestDeck(ctx, config, week, stats); err != nil {
			logger.Get().Warn(ctx, "quest deck retrieval failed", logger.Int("week", week), logger.Error(err))
		}
	}

	// Step 5: Verify the final board
	board, err := getBoard(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("board retrieval failed: %w", err)
	}
	if err := verifyBoard(board); err != nil {
		return fmt.Errorf("board verification failed: %w", err)
	}
	displayHottestRecruits(board, config.Verbose)

	// Step 6: Save the league to file
	if err := saveLeagueToFile(ctx, config, teams, recruits); err != nil {
		logger.Get().Warn(ctx, "failed to save league to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "simulation completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// leagueFile is the JSON layout of a saved league.
type leagueFile struct {
	Teams    []Team    `json:"teams"`
	Recruits []Recruit `json:"recruits"`
}

// saveLeagueToFile saves the generated league to a JSON file.
func saveLeagueToFile(ctx context.Context, config *Config, teams []Team, recruits []Recruit) error {
	if len(teams) == 0 && len(recruits) == 0 {
		return fmt.Errorf("no league to save")
	}

	// Determine output filename
	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "generated_league_" + timestamp + ".json"
	}

	// Ensure the directory exists
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	jsonData, err := marshalJSON(leagueFile{Teams: teams, Recruits: recruits})
	if err != nil {
		return fmt.Errorf("failed to marshal league: %w", err)
	}

	if err := os.WriteFile(filename, jsonData, logFilePermission); err != nil {
		return fmt.Errorf("failed to write league file: %w", err)
	}

	logger.Get().Info(ctx, "league saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final simulation statistics.
func displayFinalStats(stats *Stats) {
	var successRate, shortlistsPerSecond float64

	retrievals := stats.ShortlistsRetrieved + stats.ShortlistFailures
	if retrievals > 0 {
		successRate = float64(stats.ShortlistsRetrieved) / float64(retrievals) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		shortlistsPerSecond = float64(stats.ShortlistsRetrieved) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("teamsGenerated", stats.TeamsGenerated),
		logger.Int("recruitsGenerated", stats.RecruitsGenerated),
		logger.Int("teamsSubmitted", stats.TeamsSubmitted),
		logger.Int("recruitsSubmitted", stats.RecruitsSubmitted),
		logger.Int("submissionsFailed", stats.SubmissionsFailed),
		logger.Int("sweepsQueued", stats.SweepsQueued),
		logger.Int("shortlistsRetrieved", stats.ShortlistsRetrieved),
		logger.Int("shortlistFailures", stats.ShortlistFailures),
		logger.Int("boardEntries", stats.BoardEntries),
		logger.Int("questsDealt", stats.QuestsDealt),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("shortlistsPerSecond", shortlistsPerSecond))
}
