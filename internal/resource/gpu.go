package resource

import (
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/pkg/errors"
)

// GPU is a device memory resource backed by WebGPU buffers. It exists so
// kernel data can be staged on an accelerator and copied back around a
// launch; compute dispatch itself is outside this package's contract.
type GPU struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	pool     *bufferPool
}

// DeviceBuffer is device memory allocated through the GPU resource.
type DeviceBuffer struct {
	buf  *wgpu.Buffer
	size uint64
}

// Size returns the buffer size in bytes.
func (b *DeviceBuffer) Size() int { return int(b.size) }

// NewGPU initializes the WebGPU instance, adapter, device and queue.
// Returns an error when no adapter is available (headless CI, missing
// native library); callers treat that as "no device resource on this host".
func NewGPU() (g *GPU, err error) {
	// Recover from panic if the wgpu native library is not found.
	defer func() {
		if r := recover(); r != nil {
			g = nil
			err = errors.Errorf("resource: webgpu native library not available: %v", r)
		}
	}()

	instance, instanceErr := wgpu.CreateInstance(nil)
	if instanceErr != nil {
		return nil, errors.Wrap(instanceErr, "resource: create instance")
	}
	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, errors.Wrap(adapterErr, "resource: request adapter")
	}

	device, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		adapter.Release()
		instance.Release()
		return nil, errors.Wrap(deviceErr, "resource: request device")
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, errors.New("resource: failed to get device queue")
	}

	return &GPU{
		instance: instance,
		adapter:  adapter,
		device:   device,
		queue:    queue,
		pool:     newBufferPool(device),
	}, nil
}

// Allocate returns a device buffer of at least the given size, reusing a
// pooled buffer when one fits.
func (g *GPU) Allocate(size int) *DeviceBuffer {
	if size < 0 {
		panic(errors.Errorf("resource: negative allocation size %d", size).Error())
	}
	usage := wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst
	//nolint:gosec // size checked non-negative above
	buf := g.pool.acquire(uint64(size), usage)
	return &DeviceBuffer{buf: buf, size: uint64(size)}
}

// Upload copies host bytes into a new device buffer.
func (g *GPU) Upload(data []byte) *DeviceBuffer {
	size := uint64(len(data))
	buffer := g.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})
	mappedPtr := buffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	copy(mappedSlice, data)
	buffer.Unmap()
	return &DeviceBuffer{buf: buffer, size: size}
}

// Download reads a device buffer back to host memory through a staging
// buffer, since storage buffers cannot be mapped directly.
func (g *GPU) Download(src *DeviceBuffer) ([]byte, error) {
	staging := g.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  src.size,
	})
	defer staging.Release()

	encoder := g.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(src.buf, 0, staging, 0, src.size)
	cmdBuffer := encoder.Finish(nil)
	g.queue.Submit(cmdBuffer)

	if err := staging.MapAsync(g.device, wgpu.MapModeRead, 0, src.size); err != nil {
		return nil, errors.Wrap(err, "resource: map staging buffer")
	}
	mappedPtr := staging.GetMappedRange(0, src.size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), src.size)
	result := make([]byte, src.size)
	copy(result, mappedSlice)
	staging.Unmap()

	return result, nil
}

// Memcpy copies between two device buffers; the sizes must match.
func (g *GPU) Memcpy(dst, src *DeviceBuffer) {
	if dst.size != src.size {
		panic(errors.Errorf("resource: memcpy size mismatch: dst %d, src %d", dst.size, src.size).Error())
	}
	encoder := g.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(src.buf, 0, dst.buf, 0, src.size)
	cmdBuffer := encoder.Finish(nil)
	g.queue.Submit(cmdBuffer)
}

// Free returns the buffer to the pool for reuse.
func (g *GPU) Free(b *DeviceBuffer) {
	usage := wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst
	g.pool.release(b.buf, b.size, usage)
	b.buf = nil
}

// Release destroys all pooled buffers and the WebGPU objects. The resource
// must not be used afterwards.
func (g *GPU) Release() {
	if g.pool != nil {
		g.pool.clear()
		g.pool = nil
	}
	if g.device != nil {
		g.device.Release()
		g.device = nil
	}
	if g.adapter != nil {
		g.adapter.Release()
		g.adapter = nil
	}
	if g.instance != nil {
		g.instance.Release()
		g.instance = nil
	}
}
