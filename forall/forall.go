// Copyright 2026 The Stride Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package forall provides the public single-loop API: one segment, one
// policy, one body, with optional privatized reductions.
//
// Example:
//
//	forall.Run(kernel.Par{}, segment.New(0, n), func(i int) {
//	    out[i] = in[i] * 2
//	})
package forall

import (
	"github.com/stride-hpc/stride/internal/forall"
	"github.com/stride-hpc/stride/internal/kernel"
	"github.com/stride-hpc/stride/internal/reduce"
	"github.com/stride-hpc/stride/internal/segment"
)

// Run executes body(v) for every element v of seg under pol.
func Run(pol kernel.Policy, seg segment.Range[int], body func(v int)) {
	forall.Run(pol, seg, body)
}

// Reduce executes body(worker, v) for every element v of seg under pol,
// privatizing every reducer per worker before the region and combining
// after it.
func Reduce(pol kernel.Policy, seg segment.Range[int], reducers []reduce.Reducer, body func(worker, v int)) {
	forall.Reduce(pol, seg, reducers, body)
}
