package kernel

import (
	"fmt"

	"github.com/stride-hpc/stride/internal/device"
	"github.com/stride-hpc/stride/internal/segment"
)

// Segment is the iteration-space descriptor type the engine loops over.
// Typed ranges convert via Range.AsIndex.
type Segment = segment.Range[int]

// Body is a user callback invoked at Lambda statements with the current
// execution context.
type Body func(c *Context)

// window is the live iteration window of one dimension; Tile statements
// narrow it, For statements iterate it.
type window struct {
	begin int
	size  int
}

// Context is the run-time execution context threaded by reference through
// the compiled closure tree: the segments, the current multi-index, the
// callback tuple and the parameter tuple. A single logical thread of
// control mutates it; parallel and device forks hand each physical worker
// its own copy of the descent state from the fork point down.
type Context struct {
	segs    []Segment
	wins    []window
	index   []int
	lambdas []Body
	params  []any

	worker int
	shmWin []int

	tid device.ThreadID
	blk *device.Block
}

// Index returns the current coordinate of dimension dim.
func (c *Context) Index(dim int) int { return c.index[dim] }

// Worker returns the worker tag of the innermost parallel region, the
// linearized thread id under a device Launch, or 0 outside both. Reduction
// accumulators key their privatized slots on it.
func (c *Context) Worker() int { return c.worker }

// Param returns parameter slot i.
func (c *Context) Param(i int) any { return c.params[i] }

// TileWindow returns the current window of dimension dim as (begin, size).
// Outside any Tile statement it covers the whole segment.
func (c *Context) TileWindow(dim int) (begin, size int) {
	w := c.wins[dim]
	return w.begin, w.size
}

// ShmemWindow returns the window origin coordinate recorded for dim by the
// innermost SetShmemWindow statement.
func (c *Context) ShmemWindow(dim int) int { return c.shmWin[dim] }

// ThreadID returns the device thread identity. Valid only under a Launch
// statement.
func (c *Context) ThreadID() device.ThreadID { return c.tid }

// Block returns the device block scope. Valid only under a Launch statement.
func (c *Context) Block() *device.Block { return c.blk }

// forkWorker clones the descent state for one worker of a parallel region.
// Index and window storage is privatized; parameters are privatized through
// their own hooks so accumulators stay shared (they are worker-slot safe)
// while scoped arrays get per-worker backing.
func (c *Context) forkWorker(w int) *Context {
	cc := *c
	cc.index = append([]int(nil), c.index...)
	cc.wins = append([]window(nil), c.wins...)
	cc.shmWin = append([]int(nil), c.shmWin...)
	cc.worker = w
	cc.params = privatizeParams(c.params)
	return &cc
}

// forkBlock clones the descent state for one device block; block-scoped
// parameters (shared-memory tiles) allocate their per-block backing here,
// before any thread of the block starts.
func (c *Context) forkBlock(blk *device.Block) *Context {
	cc := *c
	cc.blk = blk
	cc.index = append([]int(nil), c.index...)
	cc.wins = append([]window(nil), c.wins...)
	cc.shmWin = append([]int(nil), c.shmWin...)
	params := make([]any, len(c.params))
	for i, p := range c.params {
		if bp, ok := p.(blockParam); ok {
			params[i] = bp.blockClone(blk)
		} else {
			params[i] = p
		}
	}
	cc.params = params
	return &cc
}

// forkThread clones the descent state for one device thread. Block-scoped
// parameters stay shared with the block clone (shared-memory tiles must
// alias across the block's threads), but scoped parameters get private
// handles: the block's threads run concurrently, so a shared handle would
// race on its acquire/release bracket.
func (c *Context) forkThread(tid device.ThreadID) *Context {
	cc := *c
	cc.tid = tid
	cc.worker = threadSlot(tid)
	cc.index = append([]int(nil), c.index...)
	cc.wins = append([]window(nil), c.wins...)
	cc.shmWin = append([]int(nil), c.shmWin...)
	params := make([]any, len(c.params))
	for i, p := range c.params {
		if _, scoped := p.(scopedParam); scoped {
			if wp, ok := p.(workerParam); ok {
				params[i] = wp.workerClone()
				continue
			}
		}
		params[i] = p
	}
	cc.params = params
	return &cc
}

// threadSlot linearizes a thread's position in the launch into a dense tag
// in [0, gridCount*blockCount); reducers privatize their slots on it.
func threadSlot(tid device.ThreadID) int {
	blockLin := (tid.BlockIdx.Z*tid.GridDim.Y+tid.BlockIdx.Y)*tid.GridDim.X + tid.BlockIdx.X
	threadLin := (tid.ThreadIdx.Z*tid.BlockDim.Y+tid.ThreadIdx.Y)*tid.BlockDim.X + tid.ThreadIdx.X
	return blockLin*tid.BlockDim.Count() + threadLin
}

func privatizeParams(params []any) []any {
	out := make([]any, len(params))
	for i, p := range params {
		if wp, ok := p.(workerParam); ok {
			out[i] = wp.workerClone()
		} else {
			out[i] = p
		}
	}
	return out
}

// workerParam is implemented by parameters that need private backing per
// parallel worker.
type workerParam interface {
	workerClone() any
}

// blockParam is implemented by parameters that allocate per-device-block
// backing shared by the block's threads.
type blockParam interface {
	blockClone(blk *device.Block) any
}

// scopedParam is implemented by parameters whose storage lifetime is
// bracketed by an InitScopedMem statement.
type scopedParam interface {
	acquire()
	release()
}

func requireScoped(p any, slot int) scopedParam {
	sp, ok := p.(scopedParam)
	if !ok {
		panic(fmt.Sprintf("kernel: param slot %d (%T) is named by InitScopedMem but is not a scoped parameter", slot, p))
	}
	return sp
}
