package pass

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/mjolnir-gfx/mjolnir/engine/instance"
	"github.com/mjolnir-gfx/mjolnir/engine/node"
	"github.com/mjolnir-gfx/mjolnir/engine/texture"
	"github.com/stretchr/testify/assert"
)

func TestResizeZeroDimensionIsNoOp(t *testing.T) {
	depth := &texture.Texture{}
	p := &phongPassImpl{depth: depth}

	// A nil device would blow up on any depth texture rebuild; the zero
	// guard has to return before reaching it.
	assert.NotPanics(t, func() {
		p.Resize(nil, 0, 720)
		p.Resize(nil, 1280, 0)
	})
	assert.Same(t, depth, p.depth)
}

func TestWriteNodeInstancesSkipsFittingBuffer(t *testing.T) {
	buf := &wgpu.Buffer{}
	p := &phongPassImpl{
		instanceBuffers:     []*wgpu.Buffer{buf},
		instanceBufferSizes: []uint64{128},
	}
	n := node.Node{
		Instances: []instance.Instance{instance.NewInstance(), instance.NewInstance()},
	}

	// Two instances need exactly 128 bytes, which the cached buffer already
	// holds. A nil device and queue would blow up on any create or upload.
	assert.NotPanics(t, func() {
		p.writeNodeInstances(nil, nil, 0, &n)
	})
	assert.Same(t, buf, p.instanceBuffers[0])
	assert.Equal(t, uint64(128), p.instanceBufferSizes[0])
}

func TestWriteNodeInstancesEmptyNodeIsNoOp(t *testing.T) {
	p := &phongPassImpl{
		instanceBuffers:     []*wgpu.Buffer{nil},
		instanceBufferSizes: []uint64{0},
	}

	assert.NotPanics(t, func() {
		p.writeNodeInstances(nil, nil, 0, &node.Node{})
	})
	assert.Nil(t, p.instanceBuffers[0])
}
