package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/nonianfoix/sweet-sixteen/internal/seasonsim"
)

// Default configuration constants.
const (
	defaultNumRecruits = 500
	defaultNumTeams    = 64
	defaultWeeks       = 8
	defaultTopN        = 50
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultSimTimeout  = 10 * time.Minute
)

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numRecruits = flag.Int("recruits", defaultNumRecruits, "Number of recruits to generate")
		numTeams    = flag.Int("teams", defaultNumTeams, "Number of teams to generate")
		weeks       = flag.Int("weeks", defaultWeeks, "Number of recruiting weeks to simulate")
		topN        = flag.Int("top", defaultTopN, "Number of top entries to fetch from the board")
		workers     = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile  = flag.String("output", "", "Output file for the generated league (default: generated_league_TIMESTAMP.json)")
		logFile     = flag.String("log", "", "Log file for simulation output (default: season_log_TIMESTAMP.log)")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seasonsim.ShowHelp()
		return
	}

	// Setup logging
	if err := seasonsim.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultSimTimeout)
	defer cancel()

	// Create simulation configuration
	config := &seasonsim.Config{
		BaseURL:     *baseURL,
		NumRecruits: *numRecruits,
		NumTeams:    *numTeams,
		Weeks:       *weeks,
		TopN:        *topN,
		Workers:     *workers,
		Timeout:     *timeout,
		OutputFile:  *outputFile,
		LogFile:     *logFile,
		Verbose:     *verbose,
	}

	// Run the simulation
	if err := seasonsim.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Simulation failed: " + err.Error() + "\n")
		return
	}
}
