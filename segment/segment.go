// Copyright 2026 The Stride Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package segment provides the public API for iteration-space descriptors.
//
// A Range describes one logical dimension of an iteration space as a
// half-open interval [begin, end). Ranges are immutable; Slice produces new
// descriptors over sub-intervals.
//
// Example:
//
//	r := segment.New(0, 125)
//	s := r.Slice(10, 100) // [10, 110)
package segment

import "github.com/stride-hpc/stride/internal/segment"

// Element is the constraint for range element types.
type Element = segment.Element

// Range describes the half-open interval [begin, end).
type Range[T Element] = segment.Range[T]

// New constructs a Range over [begin, end). Construction with begin > end
// fails fatally.
func New[T Element](begin, end T) Range[T] {
	return segment.New(begin, end)
}

// NewUnchecked constructs a Range without the begin <= end check, for
// device-side code paths that have already established the precondition.
func NewUnchecked[T Element](begin, end T) Range[T] {
	return segment.NewUnchecked(begin, end)
}

// WithSize constructs a Range over [begin, begin+size).
func WithSize[T Element](begin, size T) Range[T] {
	return segment.WithSize(begin, size)
}
