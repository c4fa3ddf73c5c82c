// Package kernel implements the statement-tree execution engine: a
// declarative description of a nested loop structure (iterate a dimension,
// tile a dimension, invoke a callback, bracket scoped memory, launch a
// device grid) is compiled into a closure tree once, then run against
// concrete segments, parameters and callbacks.
//
// All structural validation happens in Compile; a plan that compiled never
// fails mid-iteration.
package kernel

import "github.com/stride-hpc/stride/internal/device"

// Statement is one node of the loop-structure tree. The set of
// implementations is closed; trees are immutable once built.
type Statement interface {
	stmtNode()
}

// ForStmt iterates one dimension of the iteration space under a policy and
// executes its body once per index.
type ForStmt struct {
	Dim  int
	Pol  Policy
	Body []Statement
}

// For returns a statement iterating segment dim under pol.
func For(dim int, pol Policy, body ...Statement) *ForStmt {
	return &ForStmt{Dim: dim, Pol: pol, Body: body}
}

// TileStmt partitions one dimension into width-sized windows and executes
// its body once per window; For statements on the same dimension inside the
// body iterate within the current window only.
type TileStmt struct {
	Dim   int
	Width int
	Pol   Policy
	Body  []Statement
}

// Tile returns a statement tiling segment dim into width-sized windows.
func Tile(dim, width int, pol Policy, body ...Statement) *TileStmt {
	return &TileStmt{Dim: dim, Width: width, Pol: pol, Body: body}
}

// LambdaStmt invokes callback N with the current execution context.
type LambdaStmt struct {
	N int
}

// Lambda returns a statement invoking callback n.
func Lambda(n int) *LambdaStmt {
	return &LambdaStmt{N: n}
}

// InitScopedMemStmt allocates fresh backing storage for the listed scoped
// parameter slots, executes its body, then invalidates the slots' handles in
// the same listed order. Every entry of the node gets fresh storage.
type InitScopedMemStmt struct {
	Slots []int
	Body  []Statement
}

// InitScopedMem returns a scoped-memory bracket around body for the given
// parameter slots.
func InitScopedMem(slots []int, body ...Statement) *InitScopedMemStmt {
	return &InitScopedMemStmt{Slots: slots, Body: body}
}

// IfStmt executes its body only when the condition holds for the current
// context.
type IfStmt struct {
	Cond func(c *Context) bool
	Body []Statement
}

// If returns a conditional statement.
func If(cond func(c *Context) bool, body ...Statement) *IfStmt {
	return &IfStmt{Cond: cond, Body: body}
}

// SetShmemWindowStmt records the begin of every dimension's current
// iteration window as the origin of the shared-memory window before
// executing its body; ShmemTile accesses inside the body are relative to
// that origin. Placed inside Tile statements, the origin tracks the
// current tile.
type SetShmemWindowStmt struct {
	Body []Statement
}

// SetShmemWindow returns a window-setting statement around body.
func SetShmemWindow(body ...Statement) *SetShmemWindowStmt {
	return &SetShmemWindowStmt{Body: body}
}

// LaunchStmt executes its body under the emulated device model with the
// given grid and block shape. Device-axis policies and SyncThreads are only
// legal inside a Launch.
type LaunchStmt struct {
	Grid  device.Dim3
	Block device.Dim3
	Body  []Statement
}

// Launch returns a device-launch statement around body.
func Launch(grid, block device.Dim3, body ...Statement) *LaunchStmt {
	return &LaunchStmt{Grid: grid, Block: block, Body: body}
}

// SyncStmt is the all-threads block barrier.
type SyncStmt struct{}

// SyncThreads returns a barrier statement. Every thread of the block must
// reach it before any proceeds; shared-memory writes made before the barrier
// are visible to all threads after it.
func SyncThreads() *SyncStmt {
	return &SyncStmt{}
}

func (*ForStmt) stmtNode()           {}
func (*TileStmt) stmtNode()          {}
func (*LambdaStmt) stmtNode()        {}
func (*InitScopedMemStmt) stmtNode() {}
func (*IfStmt) stmtNode()            {}
func (*SetShmemWindowStmt) stmtNode() {}
func (*LaunchStmt) stmtNode()        {}
func (*SyncStmt) stmtNode()          {}
