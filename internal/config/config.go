// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory recompute queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of recompute workers.
	WorkerCount int `koanf:"worker_count"`

	// CacheSize bounds the shortlist memo cache.
	CacheSize int `koanf:"cache_size"`

	// MaxBoardLimit caps GET /board?limit.
	MaxBoardLimit int `koanf:"max_board_limit"`

	// ShortlistMin and ShortlistMax bound the offer shortlist size.
	ShortlistMin int `koanf:"shortlist_min"`
	ShortlistMax int `koanf:"shortlist_max"`

	// LeaderWindow is the share gap, in percentage points, that keeps a
	// program within reach of the leader.
	LeaderWindow float64 `koanf:"leader_window"`

	// Temperature sharpens or flattens market-share separation.
	Temperature float64 `koanf:"temperature"`

	// BadgeLimit caps the number of why-badges per offer.
	BadgeLimit int `koanf:"badge_limit"`

	// DeckSize sets the number of quests in the weekly league deck.
	DeckSize int `koanf:"deck_size"`

	// SyndicateRatePerAlum sets the per-alum contribution to the
	// Syndicate takeover chance.
	SyndicateRatePerAlum float64 `koanf:"syndicate_rate_per_alum"`

	// UserTeam names the user-controlled program. Recruits with a user
	// offer get it folded into their market. Empty disables the fold.
	UserTeam string `koanf:"user_team"`
}

// New creates a Config populated with defaults.
func New() *Config {
	c := &Config{
		LogLevel:             "info",
		Addr:                 ":9080",
		QueueSize:            10_000,
		WorkerCount:          runtime.NumCPU() * 4,
		CacheSize:            10_000,
		MaxBoardLimit:        100,
		ShortlistMin:         3,
		ShortlistMax:         6,
		LeaderWindow:         12,
		Temperature:          2.2,
		BadgeLimit:           4,
		DeckSize:             4,
		SyndicateRatePerAlum: 0.05,
		UserTeam:             "",
	}
	return c
}
