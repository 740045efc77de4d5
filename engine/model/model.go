// package model contains the mesh, material and animation data types produced
// by the asset loader and consumed by the render passes. They are plain
// structs; GPU buffers are created once at load time and referenced by draws.
package model

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/mjolnir-gfx/mjolnir/engine/texture"
)

// Material holds the surface properties of a mesh.
type Material struct {
	// Name is the material identifier from the source file.
	Name string

	// DiffuseTexture is the sampled color texture.
	DiffuseTexture *texture.Texture
}

// Mesh is one indexed triangle list with its GPU buffers.
type Mesh struct {
	// Name is the mesh identifier from the source file.
	Name string

	// VertexBuffer holds the packed ModelVertex data.
	VertexBuffer *wgpu.Buffer

	// IndexBuffer holds uint32 triangle indices.
	IndexBuffer *wgpu.Buffer

	// NumElements is the number of indices to draw.
	NumElements uint32

	// MaterialIndex selects into the parent model's Materials slice.
	MaterialIndex int
}

// Model groups the meshes, materials and animations loaded from one file.
type Model struct {
	// Meshes are the indexed triangle lists.
	Meshes []Mesh

	// Materials are referenced by mesh MaterialIndex.
	Materials []Material

	// Animations are the clips attached to this model.
	Animations []AnimationClip
}

// Release frees the GPU buffers and textures held by the model.
// Safe to call on nil.
func (m *Model) Release() {
	if m == nil {
		return
	}
	for i := range m.Meshes {
		if m.Meshes[i].VertexBuffer != nil {
			m.Meshes[i].VertexBuffer.Release()
		}
		if m.Meshes[i].IndexBuffer != nil {
			m.Meshes[i].IndexBuffer.Release()
		}
	}
	for i := range m.Materials {
		m.Materials[i].DiffuseTexture.Release()
	}
}
