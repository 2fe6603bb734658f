// Package board defines the recruiting board store interface and errors.
package board

import "context"

// Entry represents a recruiting board row.
type Entry struct {
	Rank        int     `json:"rank"`
	RecruitID   string  `json:"recruit_id"`
	Heat        float64 `json:"heat"`
	Leader      string  `json:"leader"`
	LeaderShare float64 `json:"leader_share"`
	Interest    float64 `json:"interest"`
	Week        int     `json:"week"`
}

// Board provides read/write access to the market-heat ranking state.
type Board interface {
	// Upsert replaces the board entry for a recruit. Unlike a best-score
	// leaderboard, heat moves in both directions, so the latest value
	// always wins. Returns true if the stored heat changed.
	Upsert(ctx context.Context, recruitID string, heat float64, leader string, leaderShare float64, interest float64, week int) (bool, error)

	// Rank returns the current rank and heat for a recruit.
	// Returns ErrNotFound if the recruit is unknown.
	Rank(ctx context.Context, recruitID string) (Entry, error)

	// TopN returns the top-N entries ordered by heat desc.
	TopN(ctx context.Context, n int) ([]Entry, error)

	// Remove drops a recruit from the board, e.g. after signing.
	Remove(ctx context.Context, recruitID string) error

	// Count returns the number of recruits tracked on the board.
	Count(ctx context.Context) int
}
