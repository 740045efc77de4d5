// package instance holds per-instance transform data for instanced draws.
// An Instance is the CPU-side transform; InstanceRaw is the packed matrix
// streamed to the per-instance vertex buffer.
package instance

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/mjolnir-gfx/mjolnir/common"
)

// Instance is the transform of one rendered copy of a mesh.
type Instance struct {
	// Position is the world-space translation.
	Position [3]float32

	// Rotation is a unit quaternion in (x, y, z, w) order.
	Rotation [4]float32

	// Scale holds per-axis scale factors.
	Scale [3]float32
}

// NewInstance returns an instance at the origin with identity rotation and
// unit scale.
//
// Returns:
//   - Instance: the default instance
func NewInstance() Instance {
	return Instance{
		Rotation: [4]float32{0, 0, 0, 1},
		Scale:    [3]float32{1, 1, 1},
	}
}

// Raw packs the instance transform into the GPU representation.
// The model matrix is composed as translation * rotation * scale.
//
// Returns:
//   - InstanceRaw: the packed model matrix
func (i *Instance) Raw() InstanceRaw {
	var raw InstanceRaw
	common.BuildModelMatrix(raw.Model[:], i.Position, i.Rotation, i.Scale)
	return raw
}

// InstanceRaw is the GPU-aligned per-instance data.
// Matches the WGSL InstanceInput struct layout (four vec4 columns).
// Size: 64 bytes (mat4x4<f32> = 16 × float32, std430 aligned, no padding required).
type InstanceRaw struct {
	Model [16]float32 // offset 0: 4×4 model-to-world transform matrix, column-major (64 bytes)
}

// Size returns the size of the InstanceRaw struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (r *InstanceRaw) Size() int {
	return int(unsafe.Sizeof(*r))
}

// RawSlice packs a slice of instances for a whole-buffer upload.
//
// Parameters:
//   - instances: the instances to pack
//
// Returns:
//   - []InstanceRaw: packed matrices in the same order
func RawSlice(instances []Instance) []InstanceRaw {
	raws := make([]InstanceRaw, len(instances))
	for i := range instances {
		raws[i] = instances[i].Raw()
	}
	return raws
}

// VertexBufferLayout returns the vertex buffer layout for the per-instance
// buffer. The matrix occupies shader locations 3 through 6, one vec4 column
// each, stepped per instance.
//
// Returns:
//   - wgpu.VertexBufferLayout: the instance buffer layout
func VertexBufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: 64,
		StepMode:    wgpu.VertexStepModeInstance,
		Attributes: []wgpu.VertexAttribute{
			{Offset: 0, ShaderLocation: 3, Format: wgpu.VertexFormatFloat32x4},
			{Offset: 16, ShaderLocation: 4, Format: wgpu.VertexFormatFloat32x4},
			{Offset: 32, ShaderLocation: 5, Format: wgpu.VertexFormatFloat32x4},
			{Offset: 48, ShaderLocation: 6, Format: wgpu.VertexFormatFloat32x4},
		},
	}
}
