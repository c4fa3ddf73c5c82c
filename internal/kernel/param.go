package kernel

import (
	"fmt"

	"github.com/stride-hpc/stride/internal/device"
)

// ScopedArray is an auxiliary scratch-array parameter whose storage lifetime
// is bracketed by an enclosing InitScopedMem statement: backing is allocated
// fresh on every entry of the node and the handle is invalidated on every
// exit. Sibling invocations at different outer-loop iterations never see
// each other's storage.
type ScopedArray[T any] struct {
	n    int
	data []T
}

// NewScopedArray declares a scoped array of n elements. No storage is
// allocated until an InitScopedMem statement naming this slot is entered.
func NewScopedArray[T any](n int) *ScopedArray[T] {
	if n < 0 {
		panic(fmt.Sprintf("kernel: scoped array with negative element count %d", n))
	}
	return &ScopedArray[T]{n: n}
}

// Get returns the live backing slice. It is a fatal error to touch the array
// outside its InitScopedMem scope.
func (a *ScopedArray[T]) Get() []T {
	if a.data == nil {
		panic("kernel: scoped array accessed outside its InitScopedMem scope")
	}
	return a.data
}

// Len returns the declared element count.
func (a *ScopedArray[T]) Len() int { return a.n }

func (a *ScopedArray[T]) acquire() { a.data = make([]T, a.n) }
func (a *ScopedArray[T]) release() { a.data = nil }

func (a *ScopedArray[T]) workerClone() any {
	clone := &ScopedArray[T]{n: a.n}
	if a.data != nil {
		// The bracket was entered before the fork; the private handle must
		// stay live for the rest of the subtree.
		clone.data = make([]T, a.n)
	}
	return clone
}

// ShmemTile is a scoped shared-memory window parameter: a small dense array
// indexed by logical iteration coordinates relative to the window origin
// recorded by the innermost SetShmemWindow statement.
//
// Under a Launch statement each block gets one backing array shared by all
// of the block's threads; a SyncThreads barrier orders writes by one subset
// of threads against reads by another. Outside a Launch the tile is plain
// scratch storage.
type ShmemTile[T any] struct {
	segDims []int
	extents []int
	strides []int
	data    []T
}

// NewShmemTile declares a shared tile tracking the given iteration-space
// dimensions with the given per-dimension window extents.
func NewShmemTile[T any](segDims, extents []int) *ShmemTile[T] {
	if len(segDims) != len(extents) {
		panic(fmt.Sprintf("kernel: shmem tile dims/extents rank mismatch: %d vs %d", len(segDims), len(extents)))
	}
	total := 1
	strides := make([]int, len(extents))
	for i := len(extents) - 1; i >= 0; i-- {
		if extents[i] <= 0 {
			panic(fmt.Sprintf("kernel: shmem tile extent %d for dim %d must be positive", extents[i], segDims[i]))
		}
		strides[i] = total
		total *= extents[i]
	}
	return &ShmemTile[T]{
		segDims: append([]int(nil), segDims...),
		extents: append([]int(nil), extents...),
		strides: strides,
		data:    make([]T, total),
	}
}

// At returns a pointer to the element for the given logical coordinates,
// one per tracked dimension, translated against the current window origin.
func (s *ShmemTile[T]) At(c *Context, coords ...int) *T {
	if len(coords) != len(s.segDims) {
		panic(fmt.Sprintf("kernel: shmem tile expects %d coordinates, got %d", len(s.segDims), len(coords)))
	}
	off := 0
	for k, coord := range coords {
		rel := coord - c.ShmemWindow(s.segDims[k])
		if rel < 0 || rel >= s.extents[k] {
			panic(fmt.Sprintf("kernel: shmem tile coordinate %d out of window [%d, %d) for dim %d",
				coord, c.ShmemWindow(s.segDims[k]), c.ShmemWindow(s.segDims[k])+s.extents[k], s.segDims[k]))
		}
		off += rel * s.strides[k]
	}
	return &s.data[off]
}

func (s *ShmemTile[T]) workerClone() any {
	clone := *s
	clone.data = make([]T, len(s.data))
	return &clone
}

func (s *ShmemTile[T]) blockClone(*device.Block) any {
	clone := *s
	clone.data = make([]T, len(s.data))
	return &clone
}
