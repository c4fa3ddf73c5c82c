// Copyright 2026 The Stride Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tile provides the public API for the register tile executor: it
// covers an arbitrary-sized multi-dimensional extent with full-width
// register tiles plus one partial (remainder) tile per dimension, telling
// the callback which it is executing so it can choose unmasked or masked
// register operations.
//
// Example:
//
//	st := tile.NewVecStorage(4) // float32 lanes for the detected SIMD level
//	tile.Exec(st, tile.NewDesc([]int{0}, []int{n}), func(t *tile.Desc) {
//	    if t.Full() {
//	        // unmasked full-register body over st.Lanes() elements
//	    } else {
//	        // masked body over t.Size[0] elements
//	    }
//	})
package tile

import "github.com/stride-hpc/stride/internal/rtile"

// MaxDims is the maximum tile rank the executor supports.
const MaxDims = rtile.MaxDims

// Desc is the mutable working view over a tile of the iteration space.
type Desc = rtile.Desc

// Storage is the register storage collaborator fixing elements-per-register
// for each tile dimension.
type Storage = rtile.Storage

// FixedStorage is a storage policy with explicit per-dimension widths.
type FixedStorage = rtile.FixedStorage

// VecStorage is one-dimensional register storage sized from the detected
// SIMD width.
type VecStorage = rtile.VecStorage

// MatStorage is two-dimensional register-file storage.
type MatStorage = rtile.MatStorage

// NewDesc builds a tile descriptor from per-dimension begins and sizes.
func NewDesc(begin, size []int) Desc { return rtile.NewDesc(begin, size) }

// NewVecStorage returns vector storage for elements of elemSize bytes.
func NewVecStorage(elemSize int) VecStorage { return rtile.NewVecStorage(elemSize) }

// NewMatStorage returns matrix storage with the given register rows and
// detected lanes for elemSize-byte elements.
func NewMatStorage(rows, elemSize int) MatStorage { return rtile.NewMatStorage(rows, elemSize) }

// Exec covers orig exactly once with full and partial sub-tiles, invoking
// body for each.
func Exec(st Storage, orig Desc, body func(*Desc)) {
	rtile.Exec(st, orig, body)
}
