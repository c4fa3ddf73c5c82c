// Copyright 2026 The Stride Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package kernel provides the public API for the statement-tree execution
// engine. A statement tree declares a nested loop structure; Compile
// validates it and resolves every policy into a concrete loop construct,
// and the resulting Plan runs against concrete segments, parameters and
// callbacks.
//
// Example (matrix-multiply style triple nest with a scalar accumulator):
//
//	plan := kernel.MustCompile(kernel.Arity{Segments: 3, Lambdas: 3, Params: 1},
//	    kernel.For(1, kernel.Seq{},
//	        kernel.For(0, kernel.Seq{},
//	            kernel.Lambda(0), // dot = 0
//	            kernel.For(2, kernel.Seq{},
//	                kernel.Lambda(1)), // dot += A(row,k) * B(k,col)
//	            kernel.Lambda(2)))) // C(row,col) = dot
//	plan.Run(segs, params, l0, l1, l2)
package kernel

import "github.com/stride-hpc/stride/internal/kernel"

// Statement is one node of the loop-structure tree.
type Statement = kernel.Statement

// Policy selects the loop construct a For or Tile statement compiles to.
type Policy = kernel.Policy

// Seq executes a loop as an ordinary counted loop.
type Seq = kernel.Seq

// Par executes a loop on the worker pool with privatized descent state.
type Par = kernel.Par

// DeviceMap assigns a loop's dimension to one axis of the device hierarchy.
type DeviceMap = kernel.DeviceMap

// DeviceLevel distinguishes thread-axis from block-axis mapping.
type DeviceLevel = kernel.DeviceLevel

// Device mapping levels.
const (
	ThreadLevel = kernel.ThreadLevel
	BlockLevel  = kernel.BlockLevel
)

// Device-axis mapping policies. Direct mappings require the iteration count
// to fit the physical width; Loop variants stride over it.
var (
	ThreadX     = kernel.ThreadX
	ThreadY     = kernel.ThreadY
	ThreadZ     = kernel.ThreadZ
	ThreadXLoop = kernel.ThreadXLoop
	ThreadYLoop = kernel.ThreadYLoop
	ThreadZLoop = kernel.ThreadZLoop
	BlockX      = kernel.BlockX
	BlockY      = kernel.BlockY
	BlockZ      = kernel.BlockZ
	BlockXLoop  = kernel.BlockXLoop
	BlockYLoop  = kernel.BlockYLoop
	BlockZLoop  = kernel.BlockZLoop
)

// Context is the execution context passed to callbacks.
type Context = kernel.Context

// Body is a user callback invoked at Lambda statements.
type Body = kernel.Body

// Segment is the iteration-space descriptor the engine loops over.
type Segment = kernel.Segment

// Arity fixes the context shape a plan runs against.
type Arity = kernel.Arity

// Plan is a compiled statement tree.
type Plan = kernel.Plan

// Compile validates a statement tree and resolves it into a Plan. All
// structural errors are reported here; a compiled plan never fails
// mid-iteration.
func Compile(arity Arity, stmts ...Statement) (*Plan, error) {
	return kernel.Compile(arity, stmts...)
}

// MustCompile is Compile that panics on a malformed tree.
func MustCompile(arity Arity, stmts ...Statement) *Plan {
	return kernel.MustCompile(arity, stmts...)
}

// Statement constructors.

// For iterates segment dim under pol and executes body once per index.
func For(dim int, pol Policy, body ...Statement) Statement {
	return kernel.For(dim, pol, body...)
}

// Tile partitions segment dim into width-sized windows; For statements on
// the same dimension inside the body iterate within the current window.
func Tile(dim, width int, pol Policy, body ...Statement) Statement {
	return kernel.Tile(dim, width, pol, body...)
}

// Lambda invokes callback n with the current context.
func Lambda(n int) Statement { return kernel.Lambda(n) }

// InitScopedMem brackets body with fresh allocation and release of the
// named scoped parameter slots.
func InitScopedMem(slots []int, body ...Statement) Statement {
	return kernel.InitScopedMem(slots, body...)
}

// If executes body only when cond holds for the current context.
func If(cond func(c *Context) bool, body ...Statement) Statement {
	return kernel.If(cond, body...)
}

// SetShmemWindow records the begin of every dimension's current iteration
// window as the shared-memory window origin before executing body.
func SetShmemWindow(body ...Statement) Statement {
	return kernel.SetShmemWindow(body...)
}

// SyncThreads is the all-threads block barrier; legal only under Launch.
func SyncThreads() Statement { return kernel.SyncThreads() }
