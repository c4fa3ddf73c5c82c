// Copyright 2026 The Stride Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package device provides the public API for the emulated accelerator
// execution model: grid/block/thread launches with per-block barriers and
// block-shared memory. Kernel statement trees reference it through Launch
// statements and device-axis policies; it can also be driven directly.
package device

import "github.com/stride-hpc/stride/internal/device"

// Axis identifies one dimension of the grid/block hierarchy.
type Axis = device.Axis

// Grid and block axes.
const (
	X = device.X
	Y = device.Y
	Z = device.Z
)

// Dim3 represents 3D dimensions for the grid and for thread blocks.
type Dim3 = device.Dim3

// ThreadID identifies a thread within the execution hierarchy.
type ThreadID = device.ThreadID

// Block is the per-block execution scope with barrier and shared memory.
type Block = device.Block

// Kernel runs once per thread of a block.
type Kernel = device.Kernel

// Dim1 returns a Dim3 spanning n along X.
func Dim1(n int) Dim3 { return device.Dim1(n) }

// Launch executes a device-style kernel: setup runs once per block and
// returns the per-thread kernel; all threads of a block run concurrently so
// barrier synchronization can complete.
func Launch(grid, block Dim3, setup func(blk *Block) Kernel) {
	device.Launch(grid, block, setup)
}

// Validate checks that a launch configuration is well formed.
func Validate(grid, block Dim3) error {
	return device.Validate(grid, block)
}
