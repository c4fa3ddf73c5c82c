// Package forall is the single-loop front door of the execution engine:
// one segment, one policy, one body, with optional privatized reductions.
// It is the degenerate statement tree (a single For around a single Lambda)
// compiled by hand.
package forall

import (
	"fmt"

	"github.com/stride-hpc/stride/internal/kernel"
	"github.com/stride-hpc/stride/internal/parallel"
	"github.com/stride-hpc/stride/internal/reduce"
	"github.com/stride-hpc/stride/internal/segment"
)

// Run executes body(v) for every element v of seg under pol. Only host
// policies are accepted; device-axis mapping needs the statement tree's
// Launch scope.
func Run(pol kernel.Policy, seg segment.Range[int], body func(v int)) {
	Reduce(pol, seg, nil, func(_ int, v int) { body(v) })
}

// Reduce executes body(worker, v) for every element v of seg under pol,
// privatizing every reducer per worker before the region and combining
// after it. The combine step is commutative and associative, so the result
// is identical for any worker count.
func Reduce(pol kernel.Policy, seg segment.Range[int], reducers []reduce.Reducer, body func(worker, v int)) {
	begin, n := seg.Begin(), seg.Size()
	switch pol := pol.(type) {
	case kernel.Seq:
		reduce.Setup(reducers, 1)
		for i := 0; i < n; i++ {
			body(0, begin+i)
		}
		reduce.Finish(reducers)
	case kernel.Par:
		cfg := parallelConfig(pol)
		workers := parallel.MaxWorkers(n, cfg)
		reduce.Setup(reducers, workers)
		parallel.ForWorker(n, func(w, i int) {
			body(w, begin+i)
		}, cfg)
		reduce.Finish(reducers)
	default:
		panic(fmt.Sprintf("forall: unsupported policy %T: device mapping requires a kernel Launch", pol))
	}
}

func parallelConfig(pol kernel.Par) parallel.Config {
	cfg := parallel.DefaultConfig()
	if pol.Workers > 0 {
		cfg.NumWorkers = pol.Workers
		cfg.Enabled = pol.Workers > 1
	}
	if pol.Grain > 0 {
		cfg.MinGrain = pol.Grain
	}
	return cfg
}
