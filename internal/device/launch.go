package device

import (
	"fmt"
	"sync"
)

// Kernel runs once per thread of a block.
type Kernel func(tid ThreadID)

// Block is the per-block execution scope handed to a launch's setup
// function. Shared state allocated here is visible to every thread of the
// block and to no other block.
type Block struct {
	Idx     Dim3
	Dim     Dim3
	Grid    Dim3
	barrier *barrier
	shared  map[int][]byte
}

// Sync blocks until every thread of the block has reached the barrier.
// All writes made by any thread before its Sync are visible to every thread
// after Sync returns.
func (b *Block) Sync() { b.barrier.await() }

// Shared returns the block-shared byte arena for the given slot, allocating
// it on first use. Setup runs before any thread starts, so allocation here
// needs no locking.
func (b *Block) Shared(slot, size int) []byte {
	if buf, ok := b.shared[slot]; ok {
		if len(buf) < size {
			panic(fmt.Sprintf("device: shared slot %d reallocated with larger size %d > %d", slot, size, len(buf)))
		}
		return buf[:size]
	}
	buf := make([]byte, size)
	b.shared[slot] = buf
	return buf
}

// Launch executes a device-style kernel: setup runs once per block to
// allocate shared state and returns the per-thread kernel, then every thread
// of the block runs concurrently so barrier synchronization can complete.
// Blocks run one after another; device semantics make no concurrency or
// ordering promises between blocks, so sequential block execution is legal
// and keeps the goroutine count bounded by the block size.
func Launch(grid, block Dim3, setup func(blk *Block) Kernel) {
	if err := Validate(grid, block); err != nil {
		panic(err.Error())
	}

	threads := block.Count()
	for bz := 0; bz < grid.Z; bz++ {
		for by := 0; by < grid.Y; by++ {
			for bx := 0; bx < grid.X; bx++ {
				blk := &Block{
					Idx:     Dim3{X: bx, Y: by, Z: bz},
					Dim:     block,
					Grid:    grid,
					barrier: newBarrier(threads),
					shared:  make(map[int][]byte),
				}
				kern := setup(blk)
				runBlock(blk, kern)
			}
		}
	}
}

func runBlock(blk *Block, kern Kernel) {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var failure any

	for tz := 0; tz < blk.Dim.Z; tz++ {
		for ty := 0; ty < blk.Dim.Y; ty++ {
			for tx := 0; tx < blk.Dim.X; tx++ {
				tid := ThreadID{
					BlockIdx:  blk.Idx,
					ThreadIdx: Dim3{X: tx, Y: ty, Z: tz},
					BlockDim:  blk.Dim,
					GridDim:   blk.Grid,
				}
				wg.Add(1)
				go func(tid ThreadID) {
					defer wg.Done()
					// Rethrown below on the launching goroutine: a panic in a
					// thread goroutine would otherwise kill the process before
					// the caller can observe it.
					defer func() {
						if r := recover(); r != nil {
							mu.Lock()
							if failure == nil {
								failure = r
							}
							mu.Unlock()
						}
					}()
					kern(tid)
				}(tid)
			}
		}
	}
	wg.Wait()

	if failure != nil {
		panic(failure)
	}
}

// barrier is a reusable all-threads rendezvous: no participant proceeds past
// await until all have arrived, and it can be reused for the next phase.
type barrier struct {
	mu    sync.Mutex
	cond  *sync.Cond
	n     int
	count int
	phase int
}

func newBarrier(n int) *barrier {
	b := &barrier{n: n}
	b.cond = sync.NewCond(&b.mu)
	return b
}

func (b *barrier) await() {
	b.mu.Lock()
	defer b.mu.Unlock()

	phase := b.phase
	b.count++
	if b.count == b.n {
		b.count = 0
		b.phase++
		b.cond.Broadcast()
		return
	}
	for phase == b.phase {
		b.cond.Wait()
	}
}
