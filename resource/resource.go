// Copyright 2026 The Stride Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package resource provides the public API for the memory resources kernels
// run against: host slices and WebGPU device buffers.
package resource

import "github.com/stride-hpc/stride/internal/resource"

// Host is the host-memory resource.
type Host = resource.Host

// HostBuffer is host memory allocated through the Host resource.
type HostBuffer = resource.HostBuffer

// GPU is the WebGPU-backed device memory resource.
type GPU = resource.GPU

// DeviceBuffer is device memory allocated through the GPU resource.
type DeviceBuffer = resource.DeviceBuffer

// NewGPU initializes the WebGPU device resource. Returns an error when no
// adapter is available on this host.
func NewGPU() (*GPU, error) { return resource.NewGPU() }
