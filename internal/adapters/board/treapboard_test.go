package board

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"
)

// floatEqual compares two float64 values with a small tolerance for floating-point precision
func floatEqual(a, b float64) bool {
	const tolerance = 1e-10
	return math.Abs(a-b) < tolerance
}

func TestTreapBoard_BasicOperations(t *testing.T) {
	ctx := context.Background()
	b := NewTreapBoard(ctx)
	defer b.Close()

	// Test empty board
	if count := b.Count(ctx); count != 0 {
		t.Errorf("expected count 0, got %d", count)
	}

	// Test inserting first entry
	updated, err := b.Upsert(ctx, "recruit-1", 4200.5, "Alpha U", 60.0, 70.0, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated {
		t.Error("expected upsert to report a change")
	}

	if count := b.Count(ctx); count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}

	// Test rank query
	entry, err := b.Rank(ctx, "recruit-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Rank != 1 {
		t.Errorf("expected rank 1, got %d", entry.Rank)
	}
	if !floatEqual(entry.Heat, 4200.5) {
		t.Errorf("expected heat 4200.5, got %f", entry.Heat)
	}
	if entry.Leader != "Alpha U" {
		t.Errorf("expected leader Alpha U, got %s", entry.Leader)
	}
	if entry.Week != 4 {
		t.Errorf("expected week 4, got %d", entry.Week)
	}

	// Test TopN
	entries, err := b.TopN(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].RecruitID != "recruit-1" {
		t.Errorf("expected recruit-1, got %s", entries[0].RecruitID)
	}
}

func TestTreapBoard_HeatMovesBothWays(t *testing.T) {
	ctx := context.Background()
	b := NewTreapBoard(ctx)
	defer b.Close()

	if _, err := b.Upsert(ctx, "recruit-1", 5000, "Alpha U", 70, 70, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Heat cooling down must still replace the entry
	updated, err := b.Upsert(ctx, "recruit-1", 1200, "Beta State", 40, 30, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated {
		t.Error("expected cooling upsert to report a change")
	}

	entry, err := b.Rank(ctx, "recruit-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !floatEqual(entry.Heat, 1200) {
		t.Errorf("expected heat 1200, got %f", entry.Heat)
	}
	if entry.Leader != "Beta State" {
		t.Errorf("expected leader Beta State, got %s", entry.Leader)
	}

	// Identical state is a no-op
	updated, err = b.Upsert(ctx, "recruit-1", 1200, "Beta State", 40, 30, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated {
		t.Error("expected identical upsert to be a no-op")
	}

	if count := b.Count(ctx); count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}
}

func TestTreapBoard_Ordering(t *testing.T) {
	ctx := context.Background()
	b := NewTreapBoard(ctx)
	defer b.Close()

	heats := map[string]float64{
		"recruit-a": 3100,
		"recruit-b": 5600,
		"recruit-c": 900,
		"recruit-d": 5600, // tie with recruit-b
		"recruit-e": 4200,
	}
	for id, heat := range heats {
		if _, err := b.Upsert(ctx, id, heat, "Alpha U", 50, heat/100, 2); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	entries, err := b.TopN(ctx, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(entries))
	}

	// Ties order by recruitID asc and share a rank
	wantOrder := []string{"recruit-b", "recruit-d", "recruit-e", "recruit-a", "recruit-c"}
	for i, want := range wantOrder {
		if entries[i].RecruitID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, entries[i].RecruitID)
		}
	}
	if entries[0].Rank != 1 || entries[1].Rank != 1 {
		t.Errorf("expected tied entries to share rank 1, got %d and %d", entries[0].Rank, entries[1].Rank)
	}
	if entries[2].Rank != 2 {
		t.Errorf("expected rank 2 after tie, got %d", entries[2].Rank)
	}

	// TopN smaller than the board
	top2, err := b.TopN(ctx, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(top2) != 2 {
		t.Errorf("expected 2 entries, got %d", len(top2))
	}
}

func TestTreapBoard_Errors(t *testing.T) {
	ctx := context.Background()
	b := NewTreapBoard(ctx)
	defer b.Close()

	if _, err := b.Rank(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := b.TopN(ctx, 0); !errors.Is(err, ErrInvalidLimit) {
		t.Errorf("expected ErrInvalidLimit, got %v", err)
	}
	if err := b.Remove(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTreapBoard_Remove(t *testing.T) {
	ctx := context.Background()
	b := NewTreapBoard(ctx)
	defer b.Close()

	for i := 0; i < 4; i++ {
		id := fmt.Sprintf("recruit-%d", i)
		if _, err := b.Upsert(ctx, id, float64(1000*(i+1)), "Alpha U", 50, 50, 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if err := b.Remove(ctx, "recruit-3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count := b.Count(ctx); count != 3 {
		t.Errorf("expected count 3, got %d", count)
	}
	if _, err := b.Rank(ctx, "recruit-3"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after remove, got %v", err)
	}

	// Remaining recruits are re-ranked
	entries, err := b.TopN(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].RecruitID != "recruit-2" || entries[0].Rank != 1 {
		t.Errorf("expected recruit-2 at rank 1, got %s at %d", entries[0].RecruitID, entries[0].Rank)
	}
}

func TestTreapBoard_Snapshot(t *testing.T) {
	ctx := context.Background()
	b := NewTreapBoard(ctx, WithSnapshotInterval(10*time.Millisecond), WithTopCacheSize(2))
	defer b.Close()

	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("recruit-%d", i)
		if _, err := b.Upsert(ctx, id, float64(1000*(i+1)), "Alpha U", 50, 50, 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	deadline := time.After(2 * time.Second)
	for b.Snapshot() == nil {
		select {
		case <-deadline:
			t.Fatal("snapshot was never published")
		case <-time.After(10 * time.Millisecond):
		}
	}

	snap := b.Snapshot()
	if len(snap.TopCache) != 2 {
		t.Errorf("expected top cache of 2, got %d", len(snap.TopCache))
	}
	if snap.TopCache[0].RecruitID != "recruit-4" {
		t.Errorf("expected recruit-4 on top, got %s", snap.TopCache[0].RecruitID)
	}
	if len(snap.RankByRecruit) != 5 {
		t.Errorf("expected 5 ranks, got %d", len(snap.RankByRecruit))
	}
	if rank := snap.RankByRecruit["recruit-0"]; rank != 5 {
		t.Errorf("expected recruit-0 at rank 5, got %d", rank)
	}
}

func TestTreapBoard_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	b := NewTreapBoard(ctx)
	defer b.Close()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				id := fmt.Sprintf("w%d-recruit-%d", worker, i%20)
				if _, err := b.Upsert(ctx, id, float64(i*worker+1), "Alpha U", 50, 50, i%18); err != nil {
					t.Errorf("unexpected error: %v", err)
					return
				}
				if i%10 == 0 {
					if _, err := b.TopN(ctx, 5); err != nil {
						t.Errorf("unexpected error: %v", err)
						return
					}
				}
			}
		}(w)
	}
	wg.Wait()

	if count := b.Count(ctx); count != 8*20 {
		t.Errorf("expected %d recruits, got %d", 8*20, count)
	}
}
