// package node holds the scene graph entries rendered each frame. A node
// pairs a model with its per-object uniforms and the instance transforms it
// is drawn with.
package node

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/mjolnir-gfx/mjolnir/engine/instance"
	"github.com/mjolnir-gfx/mjolnir/engine/model"
)

// Locals is the GPU-aligned per-object uniform block.
// Matches the WGSL Locals struct layout exactly (four vec4 fields).
// Size: 64 bytes (std140 aligned, no padding required).
type Locals struct {
	Position [4]float32 // offset  0: object position, w unused (16 bytes)
	Color    [4]float32 // offset 16: object color tint (16 bytes)
	Normal   [4]float32 // offset 32: object normal override, w unused (16 bytes)
	Lights   [4]float32 // offset 48: per-object light factors (16 bytes)
}

// Size returns the size of the Locals struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (l *Locals) Size() int {
	return int(unsafe.Sizeof(*l))
}

// Marshal serializes the Locals struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload.
func (l *Locals) Marshal() []byte {
	buf := make([]byte, 64)
	fields := [][4]float32{l.Position, l.Color, l.Normal, l.Lights}
	for fi, f := range fields {
		for i := 0; i < 4; i++ {
			off := fi*16 + i*4
			binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(f[i]))
		}
	}
	return buf
}

// Node is one renderable scene entry.
type Node struct {
	// Parent is the arena index of the parent node. A node with no parent
	// uses its own index.
	Parent uint32

	// Locals are the per-object uniforms uploaded each frame.
	Locals Locals

	// Model is the mesh and material data drawn for this node.
	Model *model.Model

	// Instances holds one transform per rendered copy of the model.
	// A single-instance node has exactly one entry.
	Instances []instance.Instance
}

// NewNode creates a node at arena index idx that is its own parent, drawing
// the model with a single identity instance.
//
// Parameters:
//   - idx: the arena index this node will occupy
//   - m: the model to draw
//
// Returns:
//   - Node: the initialized node
func NewNode(idx uint32, m *model.Model) Node {
	return Node{
		Parent:    idx,
		Model:     m,
		Instances: []instance.Instance{instance.NewInstance()},
	}
}

// RawInstances packs the node's instance transforms for buffer upload.
//
// Returns:
//   - []instance.InstanceRaw: packed matrices in instance order
func (n *Node) RawInstances() []instance.InstanceRaw {
	return instance.RawSlice(n.Instances)
}
