package model

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/mjolnir-gfx/mjolnir/common"
	"github.com/mjolnir-gfx/mjolnir/engine/texture"
)

// PlaneVertices returns the four corners of an axis-aligned square plane at
// z = scale, spanning [-scale, scale] on x and y.
//
// Parameters:
//   - scale: half-extent of the plane
//
// Returns:
//   - []ModelVertex: the four plane corners
func PlaneVertices(scale float32) []ModelVertex {
	return []ModelVertex{
		{Position: [3]float32{-scale, -scale, scale}, TexCoords: [2]float32{0, 0}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{scale, -scale, scale}, TexCoords: [2]float32{1, 0}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{scale, scale, scale}, TexCoords: [2]float32{1, 1}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{-scale, scale, scale}, TexCoords: [2]float32{0, 1}, Normal: [3]float32{0, 0, 1}},
	}
}

// PlaneIndices returns the two triangles of the plane quad.
//
// Returns:
//   - []uint32: six indices forming two counter-clockwise triangles
func PlaneIndices() []uint32 {
	return []uint32{0, 1, 2, 0, 2, 3}
}

// NewPlane builds a single-material square plane model. The material uses the
// given diffuse texture; shaders require every material to bind one, so a
// plain quad still carries a texture (typically a 1x1 placeholder).
//
// Parameters:
//   - device: the GPU device
//   - queue: the GPU queue
//   - scale: half-extent of the plane
//   - diffuse: the diffuse texture for the plane's material
//
// Returns:
//   - *Model: the plane model
//   - error: an error if buffer creation failed
func NewPlane(device *wgpu.Device, queue *wgpu.Queue, scale float32, diffuse *texture.Texture) (*Model, error) {
	vertices := PlaneVertices(scale)
	indices := PlaneIndices()

	vertexBuffer, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            "Plane Vertex Buffer",
		Size:             uint64(len(common.SliceToBytes(vertices))),
		Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create plane vertex buffer: %w", err)
	}
	queue.WriteBuffer(vertexBuffer, 0, common.SliceToBytes(vertices))

	indexBuffer, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            "Plane Index Buffer",
		Size:             uint64(len(indices) * 4),
		Usage:            wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		vertexBuffer.Release()
		return nil, fmt.Errorf("failed to create plane index buffer: %w", err)
	}
	queue.WriteBuffer(indexBuffer, 0, common.SliceToBytes(indices))

	return &Model{
		Meshes: []Mesh{
			{
				Name:          "Plane",
				VertexBuffer:  vertexBuffer,
				IndexBuffer:   indexBuffer,
				NumElements:   uint32(len(indices)),
				MaterialIndex: 0,
			},
		},
		Materials: []Material{
			{Name: "Plane", DiffuseTexture: diffuse},
		},
	}, nil
}
