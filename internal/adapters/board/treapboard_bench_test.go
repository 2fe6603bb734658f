package board

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
)

func benchBoard(b *testing.B, size int) *TreapBoard {
	b.Helper()
	ctx := context.Background()
	tb := NewTreapBoard(ctx)
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < size; i++ {
		id := fmt.Sprintf("recruit-%d", i)
		if _, err := tb.Upsert(ctx, id, rng.Float64()*10000, "Alpha U", 50, 50, 1); err != nil {
			b.Fatalf("seed upsert: %v", err)
		}
	}
	return tb
}

func BenchmarkTreapBoard_Upsert(b *testing.B) {
	ctx := context.Background()
	tb := benchBoard(b, 10000)
	defer tb.Close()
	rng := rand.New(rand.NewSource(7))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		id := fmt.Sprintf("recruit-%d", i%10000)
		if _, err := tb.Upsert(ctx, id, rng.Float64()*10000, "Alpha U", 50, 50, i%18); err != nil {
			b.Fatalf("upsert: %v", err)
		}
	}
}

func BenchmarkTreapBoard_TopN(b *testing.B) {
	ctx := context.Background()
	tb := benchBoard(b, 10000)
	defer tb.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tb.TopN(ctx, 50); err != nil {
			b.Fatalf("topn: %v", err)
		}
	}
}
