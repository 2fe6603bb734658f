package board

import (
	"context"
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nonianfoix/sweet-sixteen/pkg/metrics"
)

// Treap-based, in-memory Board implementation.
//
// Ordering: heat DESC, then recruitID ASC (deterministic).
// The BST comparator treats "less" as ranks-earlier, so an in-order
// traversal walks the board from hottest to coldest.

// heatScale controls fixed-point scaling from float64. Heat is
// leader share (0..100) times interest (0..100), so values stay small
// and twelve decimal places of precision never overflow int64.
const heatScale = 1_000_000_000_000

type heatFP int64

func toFixedPoint(x float64) heatFP {
	if math.IsNaN(x) {
		return 0
	}
	scaled := x * heatScale
	if scaled > float64(math.MaxInt64) {
		return heatFP(math.MaxInt64)
	}
	if scaled < float64(math.MinInt64) {
		return heatFP(math.MinInt64)
	}
	return heatFP(math.Round(scaled))
}

func toFloat(x heatFP) float64 {
	return float64(x) / heatScale
}

// record stores the fixed-point heat plus the shortlist metadata for a recruit.
type record struct {
	heat        heatFP
	leader      string
	leaderShare float64
	interest    float64
	week        int
}

// Snapshot represents an immutable snapshot of the board state.
type Snapshot struct {
	// Rank and heat in O(1) for reads
	RankByRecruit map[string]int
	HeatByRecruit map[string]float64

	// Fast Top-K cache up to M items
	TopCache []Entry // sorted descending
}

// treap node
type node struct {
	id    string
	heat  heatFP
	prio  uint64
	left  *node
	right *node
	size  int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

// less returns true if (aHeat, aID) should appear before (bHeat, bID)
// on the board (hotter recruits first).
func less(aHeat heatFP, aID string, bHeat heatFP, bID string) bool {
	if aHeat != bHeat {
		return aHeat > bHeat
	}
	return aID < bID
}

func rotateRight(y *node) *node {
	x := y.left
	t2 := x.right
	x.right = y
	y.left = t2
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	t2 := y.left
	y.left = x
	x.right = t2
	fix(x)
	fix(y)
	return y
}

// heatToPriority keeps hotter recruits near the treap root.
func heatToPriority(heat heatFP) uint64 {
	const offset = uint64(1) << 63
	return uint64(heat) + offset
}

func insert(n *node, id string, heat heatFP) *node {
	if n == nil {
		return &node{id: id, heat: heat, prio: heatToPriority(heat), size: 1}
	}
	if less(heat, id, n.heat, n.id) {
		n.left = insert(n.left, id, heat)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, id, heat)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func deleteNode(n *node, id string, heat heatFP) *node {
	if n == nil {
		return nil
	}
	if heat == n.heat && id == n.id {
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = deleteNode(n.right, id, heat)
		} else {
			n = rotateLeft(n)
			n.left = deleteNode(n.left, id, heat)
		}
	} else if less(heat, id, n.heat, n.id) {
		n.left = deleteNode(n.left, id, heat)
	} else {
		n.right = deleteNode(n.right, id, heat)
	}
	fix(n)
	return n
}

// collectTopN appends up to limit entries in rank order (hottest first).
func collectTopN(n *node, limit int, records map[string]record, out *[]Entry) {
	if n == nil || len(*out) >= limit {
		return
	}

	collectTopN(n.left, limit, records, out)

	if len(*out) < limit {
		if rec, exists := records[n.id]; exists {
			*out = append(*out, entryFor(n.id, rec))
		}
	}

	if len(*out) < limit {
		collectTopN(n.right, limit, records, out)
	}
}

func entryFor(id string, rec record) Entry {
	return Entry{
		RecruitID:   id,
		Heat:        toFloat(rec.heat),
		Leader:      rec.leader,
		LeaderShare: rec.leaderShare,
		Interest:    rec.interest,
		Week:        rec.week,
	}
}

type TreapBoard struct {
	mu               sync.RWMutex
	root             *node
	byID             map[string]record
	snapshotInterval time.Duration
	topCacheSize     int

	// snapshot is an atomic pointer to the latest published Snapshot
	snapshot atomic.Pointer[Snapshot]

	wg       sync.WaitGroup
	stopChan chan struct{}
}

// NewTreapBoard constructs a treap board with configuration options.
func NewTreapBoard(ctx context.Context, opts ...Option) *TreapBoard {
	b := &TreapBoard{
		snapshotInterval: 1 * time.Second, // default snapshot interval
		topCacheSize:     100,             // default top cache size
		byID:             make(map[string]record),
	}

	for _, opt := range opts {
		opt(b)
	}

	b.stopChan = make(chan struct{})
	b.startPeriodicSnapshots(ctx)

	return b
}

// startPeriodicSnapshots publishes snapshots at the configured interval.
func (b *TreapBoard) startPeriodicSnapshots(ctx context.Context) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		ticker := time.NewTicker(b.snapshotInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-b.stopChan:
				return
			case <-ticker.C:
				b.publishSnapshot()
			}
		}
	}()
}

func (b *TreapBoard) publishSnapshot() {
	b.mu.RLock()
	defer b.mu.RUnlock()
	b.publishSnapshotInternal()
}

// Close gracefully shuts down the snapshot goroutine.
func (b *TreapBoard) Close() error {
	select {
	case <-b.stopChan:
		// already closed
	default:
		close(b.stopChan)
	}
	b.wg.Wait()
	return nil
}

// Snapshot returns the latest published snapshot, or nil before the first tick.
func (b *TreapBoard) Snapshot() *Snapshot {
	return b.snapshot.Load()
}

// Upsert implements Board.Upsert with O(log n) expected time.
func (b *TreapBoard) Upsert(ctx context.Context, recruitID string, heat float64, leader string, leaderShare float64, interest float64, week int) (bool, error) {
	nh := toFixedPoint(heat)

	isNewRecruit := false

	b.mu.Lock()
	if old, ok := b.byID[recruitID]; ok {
		if nh == old.heat && old.leader == leader && old.week == week {
			b.mu.Unlock()
			return false, nil
		}
		b.root = deleteNode(b.root, recruitID, old.heat)
	} else {
		isNewRecruit = true
	}
	b.byID[recruitID] = record{heat: nh, leader: leader, leaderShare: leaderShare, interest: interest, week: week}
	b.root = insert(b.root, recruitID, nh)
	b.mu.Unlock()

	metrics.RecordBoardUpdate()
	if isNewRecruit {
		metrics.UpdateTotalRecruits(b.Count(ctx))
	}

	return true, nil
}

// Rank returns the current rank and heat for a recruit in O(n).
func (b *TreapBoard) Rank(ctx context.Context, recruitID string) (Entry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if _, ok := b.byID[recruitID]; !ok {
		metrics.RecordErrorByComponent("board", "not_found")
		return Entry{}, ErrNotFound
	}

	allEntries := make([]Entry, 0, len(b.byID))
	collectAll(b.root, b.byID, &allEntries)

	sortEntries(allEntries)
	assignRanksWithTies(allEntries)

	for _, entry := range allEntries {
		if entry.RecruitID == recruitID {
			return entry, nil
		}
	}

	return Entry{}, ErrNotFound
}

// TopN returns the top N entries ordered by heat desc.
func (b *TreapBoard) TopN(ctx context.Context, n int) ([]Entry, error) {
	if n < 1 {
		metrics.RecordErrorByComponent("board", "invalid_limit")
		return nil, ErrInvalidLimit
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Entry, 0, n)
	collectTopN(b.root, n, b.byID, &out)

	assignRanksWithTies(out)
	return out, nil
}

// Remove drops a recruit from the board.
func (b *TreapBoard) Remove(ctx context.Context, recruitID string) error {
	b.mu.Lock()
	old, ok := b.byID[recruitID]
	if !ok {
		b.mu.Unlock()
		return ErrNotFound
	}
	delete(b.byID, recruitID)
	b.root = deleteNode(b.root, recruitID, old.heat)
	b.mu.Unlock()

	metrics.UpdateTotalRecruits(b.Count(ctx))
	return nil
}

// Count returns the total number of recruits on the board.
func (b *TreapBoard) Count(ctx context.Context) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.byID)
}

// publishSnapshotInternal rebuilds and publishes a new snapshot (assumes lock is held).
func (b *TreapBoard) publishSnapshotInternal() {
	topCache := make([]Entry, 0, b.topCacheSize)
	collectTopN(b.root, b.topCacheSize, b.byID, &topCache)

	rankByRecruit := make(map[string]int, len(b.byID))
	heatByRecruit := make(map[string]float64, len(b.byID))

	allEntries := make([]Entry, 0, len(b.byID))
	collectAll(b.root, b.byID, &allEntries)
	assignRanksWithTies(allEntries)

	for _, entry := range allEntries {
		rankByRecruit[entry.RecruitID] = entry.Rank
		heatByRecruit[entry.RecruitID] = entry.Heat
	}

	for i := range topCache {
		if rank, exists := rankByRecruit[topCache[i].RecruitID]; exists {
			topCache[i].Rank = rank
		}
	}

	b.snapshot.Store(&Snapshot{
		RankByRecruit: rankByRecruit,
		HeatByRecruit: heatByRecruit,
		TopCache:      topCache,
	})
}

// collectAll appends all entries in rank order (hottest first).
func collectAll(n *node, byID map[string]record, out *[]Entry) {
	if n == nil {
		return
	}
	collectAll(n.left, byID, out)
	if rec, ok := byID[n.id]; ok {
		*out = append(*out, entryFor(n.id, rec))
	}
	collectAll(n.right, byID, out)
}

// sortEntries sorts entries by heat desc then recruitID asc to match TopN.
func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Heat != entries[j].Heat {
			return entries[i].Heat > entries[j].Heat
		}
		return entries[i].RecruitID < entries[j].RecruitID
	})
}

// assignRanksWithTies assigns ranks with proper tie handling.
// Recruits with the same heat share a rank; the next distinct heat
// takes the next consecutive rank.
func assignRanksWithTies(entries []Entry) {
	if len(entries) == 0 {
		return
	}

	currentRank := 1
	for i := 0; i < len(entries); i++ {
		entries[i].Rank = currentRank

		sameHeatCount := 1
		for j := i + 1; j < len(entries) && entries[j].Heat == entries[i].Heat; j++ {
			entries[j].Rank = currentRank
			sameHeatCount++
		}

		currentRank++
		i += sameHeatCount - 1
	}
}
