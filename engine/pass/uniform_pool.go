package pass

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// BufferAllocator abstracts uniform buffer creation so the pool can be tested
// without a GPU device.
type BufferAllocator interface {
	// AllocUniformBuffer creates a uniform buffer writable via queue copies.
	//
	// Parameters:
	//   - label: debug label for the buffer
	//   - size: buffer size in bytes
	//
	// Returns:
	//   - *wgpu.Buffer: the created buffer
	//   - error: an error if creation failed
	AllocUniformBuffer(label string, size uint64) (*wgpu.Buffer, error)
}

type deviceAllocator struct {
	device *wgpu.Device
}

var _ BufferAllocator = &deviceAllocator{}

// NewDeviceAllocator wraps a wgpu device as a BufferAllocator.
//
// Parameters:
//   - device: the GPU device to allocate from
//
// Returns:
//   - BufferAllocator: the device-backed allocator
func NewDeviceAllocator(device *wgpu.Device) BufferAllocator {
	return &deviceAllocator{device: device}
}

func (a *deviceAllocator) AllocUniformBuffer(label string, size uint64) (*wgpu.Buffer, error) {
	return a.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label,
		Size:             size,
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
}

// UniformPool manages a growing set of fixed-size per-object uniform buffers.
// Growth is append-only: buffer i keeps the same GPU buffer for the lifetime
// of the pool, so bind groups referencing it stay valid across growth.
type UniformPool struct {
	Buffers []*wgpu.Buffer

	size  uint64
	label string
	alloc BufferAllocator

	labelCounter int
}

// NewUniformPool creates an empty pool of fixed-size uniform buffers.
//
// Parameters:
//   - alloc: the buffer allocator
//   - size: size in bytes of each buffer in the pool
//   - label: base debug label; each buffer gets a counter suffix
//
// Returns:
//   - *UniformPool: the newly created pool
func NewUniformPool(alloc BufferAllocator, size uint64, label string) *UniformPool {
	return &UniformPool{
		size:  size,
		label: label,
		alloc: alloc,
	}
}

// Len returns the number of buffers currently in the pool.
//
// Returns:
//   - int: the buffer count
func (p *UniformPool) Len() int {
	return len(p.Buffers)
}

// AllocBuffers grows the pool until it holds at least total buffers. Existing
// buffers are never replaced or moved. A total at or below the current length
// is a no-op.
//
// Parameters:
//   - total: the required buffer count
//
// Returns:
//   - error: an error if an allocation failed
func (p *UniformPool) AllocBuffers(total int) error {
	for len(p.Buffers) < total {
		buf, err := p.alloc.AllocUniformBuffer(
			fmt.Sprintf("%s %d", p.label, p.labelCounter), p.size,
		)
		if err != nil {
			return fmt.Errorf("failed to grow uniform pool to %d: %w", total, err)
		}
		p.Buffers = append(p.Buffers, buf)
		p.labelCounter++
	}
	return nil
}

// UpdateUniform writes data into buffer index at offset 0. An out-of-range
// index is a programmer error and panics.
//
// Parameters:
//   - index: the buffer slot to write
//   - data: the bytes to upload
//   - queue: the GPU queue to write through
func (p *UniformPool) UpdateUniform(index int, data []byte, queue *wgpu.Queue) {
	if index < 0 || index >= len(p.Buffers) {
		panic(fmt.Sprintf("uniform pool index %d out of range (len %d)", index, len(p.Buffers)))
	}
	queue.WriteBuffer(p.Buffers[index], 0, data)
}

// Release frees every buffer in the pool.
func (p *UniformPool) Release() {
	for _, buf := range p.Buffers {
		if buf != nil {
			buf.Release()
		}
	}
	p.Buffers = nil
}
