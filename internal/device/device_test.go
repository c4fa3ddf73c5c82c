package device

import (
	"sync/atomic"
	"testing"
)

func TestDim3(t *testing.T) {
	d := Dim1(5)
	if d != (Dim3{X: 5, Y: 1, Z: 1}) {
		t.Errorf("Dim1(5) = %+v", d)
	}
	if d.Count() != 5 {
		t.Errorf("Count() = %d, want 5", d.Count())
	}

	d = Dim3{X: 2, Y: 3, Z: 4}
	if d.Count() != 24 {
		t.Errorf("Count() = %d, want 24", d.Count())
	}
	if d.Axis(X) != 2 || d.Axis(Y) != 3 || d.Axis(Z) != 4 {
		t.Errorf("axis extents = %d, %d, %d", d.Axis(X), d.Axis(Y), d.Axis(Z))
	}
}

func TestAxis_String(t *testing.T) {
	if X.String() != "x" || Y.String() != "y" || Z.String() != "z" {
		t.Errorf("axis names = %s, %s, %s", X, Y, Z)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(Dim1(4), Dim3{X: 8, Y: 2, Z: 1}); err != nil {
		t.Errorf("valid configuration rejected: %v", err)
	}
	if err := Validate(Dim3{X: 0, Y: 1, Z: 1}, Dim1(1)); err == nil {
		t.Error("zero grid extent accepted")
	}
	if err := Validate(Dim1(1), Dim3{X: 1, Y: -1, Z: 1}); err == nil {
		t.Error("negative block extent accepted")
	}
}

func TestLaunch_Coverage(t *testing.T) {
	grid := Dim3{X: 2, Y: 2, Z: 1}
	block := Dim3{X: 3, Y: 2, Z: 2}

	gx := grid.X * block.X
	gy := grid.Y * block.Y
	gz := grid.Z * block.Z
	counts := make([]int32, gx*gy*gz)

	Launch(grid, block, func(blk *Block) Kernel {
		return func(tid ThreadID) {
			off := (tid.GlobalZ()*gy+tid.GlobalY())*gx + tid.GlobalX()
			atomic.AddInt32(&counts[off], 1)
		}
	})

	for i, c := range counts {
		if c != 1 {
			t.Fatalf("global position %d executed %d times, want 1", i, c)
		}
	}
}

func TestLaunch_SetupOncePerBlock(t *testing.T) {
	grid := Dim3{X: 3, Y: 2, Z: 1}
	var setups int32
	seen := map[Dim3]bool{}

	Launch(grid, Dim1(4), func(blk *Block) Kernel {
		atomic.AddInt32(&setups, 1)
		seen[blk.Idx] = true
		return func(ThreadID) {}
	})

	if setups != int32(grid.Count()) {
		t.Errorf("setup ran %d times, want %d", setups, grid.Count())
	}
	if len(seen) != grid.Count() {
		t.Errorf("saw %d distinct block indices, want %d", len(seen), grid.Count())
	}
}

func TestBlock_SharedArena(t *testing.T) {
	Launch(Dim1(2), Dim1(4), func(blk *Block) Kernel {
		buf := blk.Shared(0, 4)
		if len(buf) != 4 {
			t.Errorf("Shared(0, 4) length = %d", len(buf))
		}
		// Same slot must alias; a second slot must not.
		if &blk.Shared(0, 4)[0] != &buf[0] {
			t.Error("repeated Shared call returned different backing")
		}
		other := blk.Shared(1, 8)
		if &other[0] == &buf[0] {
			t.Error("distinct slots share backing")
		}
		return func(ThreadID) {}
	})
}

func TestBlock_SyncOrdersWrites(t *testing.T) {
	// Each thread writes its slot, barriers, then reads a neighbor's slot.
	// The barrier guarantees the neighbor's write happened first.
	const threads = 16
	Launch(Dim1(1), Dim1(threads), func(blk *Block) Kernel {
		slots := make([]int, threads)
		return func(tid ThreadID) {
			slots[tid.ThreadIdx.X] = tid.ThreadIdx.X + 1
			blk.Sync()
			neighbor := (tid.ThreadIdx.X + 1) % threads
			if slots[neighbor] != neighbor+1 {
				t.Errorf("thread %d read %d from neighbor %d before its write",
					tid.ThreadIdx.X, slots[neighbor], neighbor)
			}
		}
	})
}

func TestBarrier_Reusable(t *testing.T) {
	// The same barrier must serialize several phases in one launch.
	const threads, phases = 8, 5
	Launch(Dim1(1), Dim1(threads), func(blk *Block) Kernel {
		var counter int64
		return func(tid ThreadID) {
			for p := 0; p < phases; p++ {
				atomic.AddInt64(&counter, 1)
				blk.Sync()
				if got := atomic.LoadInt64(&counter); got != int64((p+1)*threads) {
					t.Errorf("phase %d: counter = %d, want %d", p, got, (p+1)*threads)
				}
				blk.Sync()
			}
		}
	})
}

func TestLaunch_ThreadPanicReachesCaller(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("panic in a thread did not reach the launching goroutine")
		}
		if r != "thread failure" {
			t.Fatalf("recovered %v, want the thread's panic value", r)
		}
	}()
	Launch(Dim1(1), Dim1(4), func(blk *Block) Kernel {
		return func(tid ThreadID) {
			if tid.ThreadIdx.X == 2 {
				panic("thread failure")
			}
		}
	})
}

func TestThreadID_GlobalIndices(t *testing.T) {
	tid := ThreadID{
		BlockIdx:  Dim3{X: 2, Y: 1, Z: 0},
		ThreadIdx: Dim3{X: 3, Y: 0, Z: 1},
		BlockDim:  Dim3{X: 8, Y: 4, Z: 2},
		GridDim:   Dim3{X: 4, Y: 2, Z: 1},
	}
	if tid.GlobalX() != 19 {
		t.Errorf("GlobalX() = %d, want 19", tid.GlobalX())
	}
	if tid.GlobalY() != 4 {
		t.Errorf("GlobalY() = %d, want 4", tid.GlobalY())
	}
	if tid.GlobalZ() != 1 {
		t.Errorf("GlobalZ() = %d, want 1", tid.GlobalZ())
	}
}
