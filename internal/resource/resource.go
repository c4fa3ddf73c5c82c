// Package resource provides the memory resources kernels run against: a
// host resource backed by ordinary slices and a GPU resource backed by
// WebGPU buffers. The execution engine itself never allocates through this
// package; it is the collaborator callers use to stage kernel data on the
// side the loops will touch it.
package resource

import "fmt"

// HostBuffer is host memory allocated through the Host resource.
type HostBuffer struct {
	data []byte
}

// Bytes returns the live backing slice.
func (b *HostBuffer) Bytes() []byte {
	if b.data == nil {
		panic("resource: host buffer used after Free")
	}
	return b.data
}

// Size returns the buffer size in bytes.
func (b *HostBuffer) Size() int { return len(b.data) }

// Host is the host-memory resource.
type Host struct{}

// Allocate returns a zeroed host buffer of the given size.
func (Host) Allocate(size int) *HostBuffer {
	if size < 0 {
		panic(fmt.Sprintf("resource: negative allocation size %d", size))
	}
	return &HostBuffer{data: make([]byte, size)}
}

// Memcpy copies src into dst; the sizes must match.
func (Host) Memcpy(dst, src *HostBuffer) {
	if dst.Size() != src.Size() {
		panic(fmt.Sprintf("resource: memcpy size mismatch: dst %d, src %d", dst.Size(), src.Size()))
	}
	copy(dst.Bytes(), src.Bytes())
}

// Free releases the buffer; further use is a fatal error.
func (Host) Free(b *HostBuffer) {
	b.data = nil
}
