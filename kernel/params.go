// Copyright 2026 The Stride Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package kernel

import (
	"github.com/stride-hpc/stride/internal/device"
	"github.com/stride-hpc/stride/internal/kernel"
)

// Launch executes body under the emulated device model with the given grid
// and block shape. Device-axis policies and SyncThreads are only legal
// inside a Launch.
func Launch(grid, block device.Dim3, body ...Statement) Statement {
	return kernel.Launch(grid, block, body...)
}

// ScopedArray is a scratch-array parameter whose storage lifetime is
// bracketed by an enclosing InitScopedMem statement.
type ScopedArray[T any] = kernel.ScopedArray[T]

// NewScopedArray declares a scoped array of n elements.
func NewScopedArray[T any](n int) *ScopedArray[T] {
	return kernel.NewScopedArray[T](n)
}

// ShmemTile is a shared-memory window parameter indexed by logical
// iteration coordinates relative to the current SetShmemWindow origin.
type ShmemTile[T any] = kernel.ShmemTile[T]

// NewShmemTile declares a shared tile tracking the given iteration-space
// dimensions with the given per-dimension window extents.
func NewShmemTile[T any](segDims, extents []int) *ShmemTile[T] {
	return kernel.NewShmemTile[T](segDims, extents)
}
