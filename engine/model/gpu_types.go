package model

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

// ModelVertex is the GPU-aligned representation of a single mesh vertex.
// Matches the WGSL VertexInput struct layout exactly.
// Size: 32 bytes (std430 aligned, no padding required).
type ModelVertex struct {
	Position  [3]float32 // offset  0: vertex position in model space (12 bytes)
	TexCoords [2]float32 // offset 12: UV texture coordinate (8 bytes)
	Normal    [3]float32 // offset 20: vertex normal for lighting (12 bytes)
}

// Size returns the size of the ModelVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (v *ModelVertex) Size() int {
	return int(unsafe.Sizeof(*v))
}

// VertexBufferLayout returns the vertex buffer layout for mesh vertices.
// Position, texture coordinate and normal occupy shader locations 0 to 2.
//
// Returns:
//   - wgpu.VertexBufferLayout: the mesh vertex buffer layout
func VertexBufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: 32,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Offset: 0, ShaderLocation: 0, Format: wgpu.VertexFormatFloat32x3},
			{Offset: 12, ShaderLocation: 1, Format: wgpu.VertexFormatFloat32x2},
			{Offset: 20, ShaderLocation: 2, Format: wgpu.VertexFormatFloat32x3},
		},
	}
}
