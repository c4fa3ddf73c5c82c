// Package device emulates an accelerator's grid/block/thread execution
// hierarchy on the host. Each block's threads run as goroutines that can
// synchronize on a per-block barrier and share a per-block memory arena;
// blocks are independent of each other, exactly as on real device targets.
//
// The package exists so statement trees using device-dimension policies can
// be developed and tested on machines without an accelerator while keeping
// device semantics: barrier visibility rules, direct-vs-strided axis
// mapping, and per-block shared state.
package device

import "fmt"

// Axis identifies one dimension of the grid/block hierarchy.
type Axis int

// Grid and block axes.
const (
	X Axis = iota
	Y
	Z
)

// String returns the axis name.
func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	default:
		return "?"
	}
}

// Dim3 represents 3D dimensions for the grid and for thread blocks.
type Dim3 struct {
	X, Y, Z int
}

// Dim1 returns a Dim3 spanning n along X.
func Dim1(n int) Dim3 { return Dim3{X: n, Y: 1, Z: 1} }

// Count returns the total number of positions in the dimension box.
func (d Dim3) Count() int { return d.X * d.Y * d.Z }

// Axis returns the extent along a.
func (d Dim3) Axis(a Axis) int {
	switch a {
	case X:
		return d.X
	case Y:
		return d.Y
	default:
		return d.Z
	}
}

// ThreadID identifies a thread within the execution hierarchy.
type ThreadID struct {
	BlockIdx  Dim3
	ThreadIdx Dim3
	BlockDim  Dim3
	GridDim   Dim3
}

// GlobalX returns the global X index.
func (tid ThreadID) GlobalX() int {
	return tid.BlockIdx.X*tid.BlockDim.X + tid.ThreadIdx.X
}

// GlobalY returns the global Y index.
func (tid ThreadID) GlobalY() int {
	return tid.BlockIdx.Y*tid.BlockDim.Y + tid.ThreadIdx.Y
}

// GlobalZ returns the global Z index.
func (tid ThreadID) GlobalZ() int {
	return tid.BlockIdx.Z*tid.BlockDim.Z + tid.ThreadIdx.Z
}

// Validate checks that a launch configuration is well formed.
func Validate(grid, block Dim3) error {
	if grid.X < 1 || grid.Y < 1 || grid.Z < 1 {
		return fmt.Errorf("device: invalid grid %+v: all extents must be >= 1", grid)
	}
	if block.X < 1 || block.Y < 1 || block.Z < 1 {
		return fmt.Errorf("device: invalid block %+v: all extents must be >= 1", block)
	}
	return nil
}
