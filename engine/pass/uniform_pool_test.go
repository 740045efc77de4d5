package pass

import (
	"errors"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAllocator struct {
	labels []string
	sizes  []uint64
	err    error
}

func (f *fakeAllocator) AllocUniformBuffer(label string, size uint64) (*wgpu.Buffer, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.labels = append(f.labels, label)
	f.sizes = append(f.sizes, size)
	return &wgpu.Buffer{}, nil
}

func TestUniformPoolGrowsToTotal(t *testing.T) {
	alloc := &fakeAllocator{}
	pool := NewUniformPool(alloc, 64, "Locals Uniform Buffer")

	require.NoError(t, pool.AllocBuffers(3))
	assert.Equal(t, 3, pool.Len())
	assert.Equal(t, []uint64{64, 64, 64}, alloc.sizes)
}

func TestUniformPoolGrowthIsAppendOnly(t *testing.T) {
	alloc := &fakeAllocator{}
	pool := NewUniformPool(alloc, 64, "Locals Uniform Buffer")

	require.NoError(t, pool.AllocBuffers(2))
	first := pool.Buffers[0]
	second := pool.Buffers[1]

	require.NoError(t, pool.AllocBuffers(5))
	assert.Equal(t, 5, pool.Len())
	assert.Same(t, first, pool.Buffers[0])
	assert.Same(t, second, pool.Buffers[1])
}

func TestUniformPoolShrinkIsNoOp(t *testing.T) {
	alloc := &fakeAllocator{}
	pool := NewUniformPool(alloc, 64, "Locals Uniform Buffer")

	require.NoError(t, pool.AllocBuffers(4))
	require.NoError(t, pool.AllocBuffers(1))
	assert.Equal(t, 4, pool.Len())
	assert.Len(t, alloc.labels, 4)
}

func TestUniformPoolLabelCounterNeverRepeats(t *testing.T) {
	alloc := &fakeAllocator{}
	pool := NewUniformPool(alloc, 64, "Locals Uniform Buffer")

	require.NoError(t, pool.AllocBuffers(2))
	require.NoError(t, pool.AllocBuffers(4))

	assert.Equal(t, []string{
		"Locals Uniform Buffer 0",
		"Locals Uniform Buffer 1",
		"Locals Uniform Buffer 2",
		"Locals Uniform Buffer 3",
	}, alloc.labels)
}

func TestUniformPoolAllocFailurePropagates(t *testing.T) {
	alloc := &fakeAllocator{err: errors.New("device lost")}
	pool := NewUniformPool(alloc, 64, "Locals Uniform Buffer")

	err := pool.AllocBuffers(1)
	require.Error(t, err)
	assert.Equal(t, 0, pool.Len())
}

func TestUniformPoolUpdateOutOfRangePanics(t *testing.T) {
	alloc := &fakeAllocator{}
	pool := NewUniformPool(alloc, 64, "Locals Uniform Buffer")
	require.NoError(t, pool.AllocBuffers(2))

	assert.Panics(t, func() { pool.UpdateUniform(2, make([]byte, 64), nil) })
	assert.Panics(t, func() { pool.UpdateUniform(-1, make([]byte, 64), nil) })
}
