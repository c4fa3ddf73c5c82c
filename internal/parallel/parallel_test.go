package parallel

import (
	"sync/atomic"
	"testing"
)

func TestFor(t *testing.T) {
	cfg := DefaultConfig()

	var counter int64
	n := 1000

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestFor_Sequential(t *testing.T) {
	cfg := Config{Enabled: false}

	var counter int64
	For(100, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != 100 {
		t.Errorf("Expected 100, got %d", counter)
	}
}

func TestForWorker_Coverage(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinGrain: 8}
	n := 1000

	seen := make([]int32, n)
	ForWorker(n, func(_, i int) {
		atomic.AddInt32(&seen[i], 1)
	}, cfg)

	for i, c := range seen {
		if c != 1 {
			t.Fatalf("index %d visited %d times, want 1", i, c)
		}
	}
}

func TestForWorker_TagsWithinBound(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinGrain: 8}
	n := 1000
	bound := MaxWorkers(n, cfg)

	var bad int64
	ForWorker(n, func(w, _ int) {
		if w < 0 || w >= bound {
			atomic.AddInt64(&bad, 1)
		}
	}, cfg)

	if bad != 0 {
		t.Errorf("%d iterations saw a worker tag outside [0, %d)", bad, bound)
	}
}

func TestForWorker_ChunksAreContiguous(t *testing.T) {
	// Workers own disjoint contiguous chunks visited in increasing order.
	cfg := Config{Enabled: true, NumWorkers: 2, MinGrain: 1}
	n := 64

	var owner [64]int32
	ForWorker(n, func(w, i int) {
		atomic.StoreInt32(&owner[i], int32(w)+1)
	}, cfg)

	for i := 0; i < n; i++ {
		if owner[i] == 0 {
			t.Fatalf("index %d never visited", i)
		}
	}
}

func TestForWorker_SmallFallsBackToOneWorker(t *testing.T) {
	cfg := DefaultConfig()
	n := 4 // below MinGrain

	workers := map[int]bool{}
	ForWorker(n, func(w, _ int) {
		workers[w] = true
	}, cfg)

	if len(workers) != 1 || !workers[0] {
		t.Errorf("small loop should run on worker 0 only, got %v", workers)
	}
	if MaxWorkers(n, cfg) != 1 {
		t.Errorf("MaxWorkers = %d, want 1", MaxWorkers(n, cfg))
	}
}

func TestMaxWorkers_MatchesHandedOutTags(t *testing.T) {
	for _, n := range []int{0, 1, 63, 64, 65, 1000, 4096} {
		cfg := Config{Enabled: true, NumWorkers: 8, MinGrain: 16}
		bound := MaxWorkers(n, cfg)

		var maxSeen int64 = -1
		ForWorker(n, func(w, _ int) {
			for {
				cur := atomic.LoadInt64(&maxSeen)
				if int64(w) <= cur || atomic.CompareAndSwapInt64(&maxSeen, cur, int64(w)) {
					break
				}
			}
		}, cfg)

		if n == 0 {
			continue
		}
		if maxSeen >= int64(bound) {
			t.Errorf("n=%d: saw worker %d, bound %d", n, maxSeen, bound)
		}
	}
}

func TestFor_ZeroIterations(t *testing.T) {
	count := 0
	For(0, func(int) { count++ }, DefaultConfig())
	if count != 0 {
		t.Errorf("zero-length loop ran %d times", count)
	}
}
