package dynamo

import (
	"sync/atomic"
	"testing"
)

func TestParallelFor_CoversRange(t *testing.T) {
	tests := []struct {
		n, workers, minChunk int
	}{
		{0, 4, 1},
		{1, 4, 1},
		{10, 1, 1},
		{10, 4, 1},
		{10, 4, 8},
		{1000, 8, 16},
		{7, 16, 1},
	}

	for _, tt := range tests {
		seen := make([]int32, tt.n)
		ParallelFor(tt.n, tt.workers, tt.minChunk, func(_, start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&seen[i], 1)
			}
		})
		for i, c := range seen {
			if c != 1 {
				t.Fatalf("n=%d workers=%d: index %d visited %d times", tt.n, tt.workers, i, c)
			}
		}
	}
}

func TestParallelFor_ChunkIndices(t *testing.T) {
	var maxChunk int32 = -1
	chunks := ParallelFor(100, 4, 1, func(c, _, _ int) {
		for {
			cur := atomic.LoadInt32(&maxChunk)
			if int32(c) <= cur || atomic.CompareAndSwapInt32(&maxChunk, cur, int32(c)) {
				break
			}
		}
	})
	if chunks != 4 {
		t.Errorf("expected 4 chunks, got %d", chunks)
	}
	if int(maxChunk) != chunks-1 {
		t.Errorf("chunk indices out of range: max %d for %d chunks", maxChunk, chunks)
	}
}

func TestWorkers(t *testing.T) {
	if Workers(3) != 3 {
		t.Error("explicit worker count not honoured")
	}
	if Workers(0) < 1 {
		t.Error("auto worker count must be positive")
	}
}
