package forall

import (
	"sync/atomic"
	"testing"

	"github.com/stride-hpc/stride/internal/kernel"
	"github.com/stride-hpc/stride/internal/reduce"
	"github.com/stride-hpc/stride/internal/segment"
)

func TestRun_Sequential(t *testing.T) {
	var got []int
	Run(kernel.Seq{}, segment.New(3, 8), func(v int) { got = append(got, v) })

	want := []int{3, 4, 5, 6, 7}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestRun_ParallelCoverage(t *testing.T) {
	n := 10000
	counts := make([]int32, n)
	Run(kernel.Par{Grain: 1}, segment.New(0, n), func(v int) {
		atomic.AddInt32(&counts[v], 1)
	})

	for v, c := range counts {
		if c != 1 {
			t.Fatalf("element %d visited %d times, want 1", v, c)
		}
	}
}

func TestRun_EmptySegment(t *testing.T) {
	count := 0
	Run(kernel.Seq{}, segment.New(4, 4), func(int) { count++ })
	Run(kernel.Par{}, segment.New(4, 4), func(int) { count++ })
	if count != 0 {
		t.Errorf("empty segment ran body %d times", count)
	}
}

func TestRun_DevicePolicyRejected(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("device-axis policy should panic outside a kernel Launch")
		}
	}()
	Run(kernel.ThreadX, segment.New(0, 10), func(int) {})
}

// Alternating +1/-1 with two sentinel values planted mid-stream; the
// reductions must agree with a sequential reference for any worker count.
func TestReduce_LargeAlternating(t *testing.T) {
	n := 1_000_000
	data := make([]int, n)
	for i := range data {
		if i%2 == 0 {
			data[i] = 1
		} else {
			data[i] = -1
		}
	}
	data[314159] = -100
	data[718281] = 100
	wantSum := 0
	for _, v := range data {
		wantSum += v
	}

	for _, workers := range []int{1, 2, 0} { // 0 takes the pool default
		sum := reduce.NewSum(0)
		mn := reduce.NewMinLoc(1<<62, -1)
		mx := reduce.NewMaxLoc(-(1 << 62), -1)
		rs := []reduce.Reducer{sum, mn, mx}

		Reduce(kernel.Par{Workers: workers, Grain: 1}, segment.New(0, n), rs,
			func(w, v int) {
				sum.Add(w, data[v])
				mn.Observe(w, data[v], v)
				mx.Observe(w, data[v], v)
			})

		if sum.Get() != wantSum {
			t.Errorf("workers=%d: sum = %d, want %d", workers, sum.Get(), wantSum)
		}
		if got := mn.Get(); got.Val != -100 || got.Loc != 314159 {
			t.Errorf("workers=%d: min = %+v, want {-100 314159}", workers, got)
		}
		if got := mx.Get(); got.Val != 100 || got.Loc != 718281 {
			t.Errorf("workers=%d: max = %+v, want {100 718281}", workers, got)
		}
	}
}

func TestReduce_SequentialMatchesParallel(t *testing.T) {
	n := 4096
	run := func(pol kernel.Policy) int {
		sum := reduce.NewSum(0)
		Reduce(pol, segment.New(0, n), []reduce.Reducer{sum}, func(w, v int) {
			sum.Add(w, v*v)
		})
		return sum.Get()
	}

	seq := run(kernel.Seq{})
	par := run(kernel.Par{Grain: 1})
	if seq != par {
		t.Errorf("sequential sum %d != parallel sum %d", seq, par)
	}
}

func TestReduce_NonZeroBegin(t *testing.T) {
	sum := reduce.NewSum(0)
	Reduce(kernel.Seq{}, segment.New(10, 15), []reduce.Reducer{sum}, func(w, v int) {
		sum.Add(w, v)
	})
	if sum.Get() != 10+11+12+13+14 {
		t.Errorf("sum = %d, want 60", sum.Get())
	}
}
