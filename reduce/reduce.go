// Copyright 2026 The Stride Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package reduce provides the public API for reduction accumulators.
//
// Accumulators privatize their state per worker inside a parallel region and
// combine it afterwards with commutative-associative operations, so results
// are identical for any worker count.
//
// Example:
//
//	sum := reduce.NewSum(0.0)
//	forall.Reduce(kernel.Par{}, seg, []reduce.Reducer{sum}, func(w, i int) {
//	    sum.Add(w, data[i])
//	})
//	total := sum.Get()
package reduce

import "github.com/stride-hpc/stride/internal/reduce"

// Number is the constraint for reducible value types.
type Number = reduce.Number

// Reducer is the engine-facing contract of every accumulator.
type Reducer = reduce.Reducer

// ValLoc pairs a reduced value with the loop index it was observed at.
type ValLoc[T Number] = reduce.ValLoc[T]

// Sum accumulates a total.
type Sum[T Number] = reduce.Sum[T]

// Min tracks a minimum value.
type Min[T Number] = reduce.Min[T]

// Max tracks a maximum value.
type Max[T Number] = reduce.Max[T]

// MinLoc tracks a minimum value and the index where it occurred.
type MinLoc[T Number] = reduce.MinLoc[T]

// MaxLoc tracks a maximum value and the index where it occurred.
type MaxLoc[T Number] = reduce.MaxLoc[T]

// NewSum returns a Sum reducer starting at init.
func NewSum[T Number](init T) *Sum[T] { return reduce.NewSum(init) }

// NewMin returns a Min reducer starting at init.
func NewMin[T Number](init T) *Min[T] { return reduce.NewMin(init) }

// NewMax returns a Max reducer starting at init.
func NewMax[T Number](init T) *Max[T] { return reduce.NewMax(init) }

// NewMinLoc returns a MinLoc reducer starting at init with location loc.
func NewMinLoc[T Number](init T, loc int) *MinLoc[T] { return reduce.NewMinLoc(init, loc) }

// NewMaxLoc returns a MaxLoc reducer starting at init with location loc.
func NewMaxLoc[T Number](init T, loc int) *MaxLoc[T] { return reduce.NewMaxLoc(init, loc) }
