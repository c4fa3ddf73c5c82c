// Package parallel provides the worker-pool loop construct backing the
// thread-parallel execution policies.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls worker-pool execution behavior.
type Config struct {
	Enabled    bool // Whether parallel execution is enabled.
	NumWorkers int  // Number of worker goroutines to use.
	MinGrain   int  // Minimum iterations per worker to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:    n > 1,
		NumWorkers: n,
		MinGrain:   64, // Typical cache line aware grain.
	}
}

// Normalize fills zero-valued fields from DefaultConfig and clamps the
// worker count to at least one.
func (cfg Config) Normalize() Config {
	def := DefaultConfig()
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = def.NumWorkers
	}
	if cfg.MinGrain <= 0 {
		cfg.MinGrain = def.MinGrain
	}
	return cfg
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too
// small to amortize goroutine startup.
func For(n int, f func(i int), cfg Config) {
	ForWorker(n, func(_, i int) { f(i) }, cfg)
}

// ForWorker executes f(worker, i) for i in [0, n), partitioning the index
// space into one contiguous chunk per worker. The worker tag is stable for
// the duration of the call and lies in [0, MaxWorkers(n, cfg)); it is what
// lets reduction accumulators privatize state without atomics.
//
// Iteration order across workers is unspecified; within one worker's chunk
// indices are visited in increasing order.
func ForWorker(n int, f func(worker, i int), cfg Config) {
	cfg = cfg.Normalize()
	if !cfg.Enabled || n < cfg.MinGrain || cfg.NumWorkers == 1 {
		for i := 0; i < n; i++ {
			f(0, i)
		}
		return
	}

	chunk := chunkSize(n, cfg)

	var wg sync.WaitGroup
	worker := 0
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(w, s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(w, i)
			}
		}(worker, start, end)
		worker++
	}
	wg.Wait()
}

// MaxWorkers returns the number of distinct worker tags ForWorker hands out
// for an n-sized loop under cfg. Reducers size their privatized slots with
// this before entering the parallel region.
func MaxWorkers(n int, cfg Config) int {
	cfg = cfg.Normalize()
	if !cfg.Enabled || n < cfg.MinGrain || cfg.NumWorkers == 1 {
		return 1
	}
	chunk := chunkSize(n, cfg)
	return (n + chunk - 1) / chunk
}

func chunkSize(n int, cfg Config) int {
	chunk := (n + cfg.NumWorkers - 1) / cfg.NumWorkers
	if chunk < cfg.MinGrain {
		chunk = cfg.MinGrain
	}
	return chunk
}
