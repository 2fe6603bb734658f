package seasonsim

import (
	"fmt"
	"log"
	"math"
)

// Market invariant constants. Shares are percentages over the full offer
// set, and a committed team can expand the shortlist by one past the
// configured maximum.
const (
	shareTotal     = 100.0
	shareTolerance = 1e-6
	minShortlist   = 1
	maxShortlist   = 7
)

// verifyShortlists checks share conservation and shortlist bounds.
func verifyShortlists(shortlists map[string]ShortlistResult, verbose bool) error {
	log.Println("🔍 Verifying shortlists...")

	if len(shortlists) == 0 {
		return fmt.Errorf("no shortlists to verify")
	}

	violations := 0
	for recruitID, result := range shortlists {
		if len(result.Shortlist) < minShortlist || len(result.Shortlist) > maxShortlist {
			violations++
			if verbose {
				log.Printf("⚠️  Recruit %s shortlist size %d outside [%d, %d]",
					recruitID, len(result.Shortlist), minShortlist, maxShortlist)
			}
			continue
		}

		sum := 0.0
		for _, share := range result.Shares {
			sum += share
		}
		if math.Abs(sum-shareTotal) > shareTolerance {
			violations++
			if verbose {
				log.Printf("⚠️  Recruit %s shares sum to %.9f", recruitID, sum)
			}
			continue
		}

		// The shortlist is ordered by score
		for i := 1; i < len(result.Shortlist); i++ {
			if result.Shortlist[i].Score > result.Shortlist[i-1].Score {
				violations++
				if verbose {
					log.Printf("⚠️  Recruit %s shortlist not ordered by score", recruitID)
				}
				break
			}
		}
	}

	if violations > 0 {
		return fmt.Errorf("%d of %d shortlists violated market invariants", violations, len(shortlists))
	}

	log.Printf("✅ Verified %d shortlists", len(shortlists))
	return nil
}

// verifyBoard checks board ordering and rank assignment.
func verifyBoard(board []BoardEntry) error {
	log.Println("🔍 Verifying board ordering...")

	if len(board) == 0 {
		return fmt.Errorf("empty board")
	}

	for i := 1; i < len(board); i++ {
		if board[i].Heat > board[i-1].Heat {
			return fmt.Errorf("board not properly sorted: entry %d has higher heat than entry %d", i, i-1)
		}
		if board[i].Rank < board[i-1].Rank {
			return fmt.Errorf("board ranks not monotonic: entry %d has lower rank than entry %d", i, i-1)
		}
	}

	if board[0].Rank != 1 {
		return fmt.Errorf("top board entry has rank %d, want 1", board[0].Rank)
	}

	log.Println("✅ Board ordering verified")
	return nil
}

// displayHottestRecruits shows the top of the recruiting board.
func displayHottestRecruits(board []BoardEntry, verbose bool) {
	topN := 10
	if len(board) < topN {
		topN = len(board)
	}

	log.Printf("🔥 Top %d recruits on the board:", topN)
	for i := 0; i < topN; i++ {
		entry := board[i]
		log.Printf("   %d. %s - Heat: %.3f (leader: %s)", entry.Rank, entry.RecruitID, entry.Heat, entry.Leader)
	}

	if verbose && len(board) > 0 {
		avgHeat := 0.0
		for _, entry := range board {
			avgHeat += entry.Heat
		}
		avgHeat /= float64(len(board))

		log.Printf(`📊 Heat statistics:
   Average: %.3f
   Maximum: %.3f
   Minimum: %.3f
`, avgHeat, board[0].Heat, board[len(board)-1].Heat)
	}
}
