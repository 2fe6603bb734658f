package seasonsim

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/nonianfoix/sweet-sixteen/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "season_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the season simulation tool.
func ShowHelp() {
	os.Stdout.WriteString(`Sweet Sixteen Season Simulator
==============================

A concurrent tool for exercising the recruiting market engine end to end.
It registers a synthetic league, sweeps the recruiting board week by week,
and verifies shortlists, shares, and board ordering.

Usage:
  go run cmd/seasonsim/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -recruits int
        Number of recruits to generate (default 500)
  -teams int
        Number of teams to generate (default 64)
  -weeks int
        Number of recruiting weeks to simulate (default 8)
  -top int
        Number of top entries to fetch from the board (default 50)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Output file for the generated league (default: generated_league_TIMESTAMP.json)
  -log string
        Log file for simulation output (default: season_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Simulate with default settings
  go run cmd/seasonsim/main.go

  # Simulate a bigger league
  go run cmd/seasonsim/main.go -recruits 5000 -teams 128 -weeks 16

  # Simulate with verbose output
  go run cmd/seasonsim/main.go -verbose -recruits 1000
`)
}
