package model

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Free draw functions that record mesh draws onto an open render pass.
// The caller is responsible for setting the pipeline and the shared bind
// group at index 0 before drawing; these functions bind per-object data at
// index 1.

// DrawMeshInstanced records an instanced draw of one mesh.
//
// Parameters:
//   - pass: the open render pass
//   - mesh: the mesh to draw
//   - firstInstance: index of the first instance to draw
//   - instanceCount: number of instances to draw
//   - localBindGroup: per-object uniforms bound at group index 1
func DrawMeshInstanced(pass *wgpu.RenderPassEncoder, mesh *Mesh, firstInstance, instanceCount uint32, localBindGroup *wgpu.BindGroup) {
	pass.SetVertexBuffer(0, mesh.VertexBuffer, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(mesh.IndexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	pass.SetBindGroup(1, localBindGroup, nil)
	pass.DrawIndexed(mesh.NumElements, instanceCount, 0, 0, firstInstance)
}

// DrawModelInstanced records an instanced draw of every mesh in the model.
// Bind groups are selected per mesh by material index, so meshes with
// different materials use their own local bind group.
//
// Parameters:
//   - pass: the open render pass
//   - m: the model to draw
//   - firstInstance: index of the first instance to draw
//   - instanceCount: number of instances to draw
//   - localBindGroups: per-material bind groups indexed by MaterialIndex
func DrawModelInstanced(pass *wgpu.RenderPassEncoder, m *Model, firstInstance, instanceCount uint32, localBindGroups []*wgpu.BindGroup) {
	for i := range m.Meshes {
		mesh := &m.Meshes[i]
		DrawMeshInstanced(pass, mesh, firstInstance, instanceCount, localBindGroups[mesh.MaterialIndex])
	}
}

// DrawLightModel records a draw of the light gizmo model. Unlike the regular
// drawers this also binds the global group, because the light pipeline keeps
// its own pipeline state.
//
// Parameters:
//   - pass: the open render pass
//   - m: the model to draw
//   - globalBindGroup: camera and light uniforms bound at group index 0
//   - localBindGroup: per-object uniforms bound at group index 1
func DrawLightModel(pass *wgpu.RenderPassEncoder, m *Model, globalBindGroup, localBindGroup *wgpu.BindGroup) {
	for i := range m.Meshes {
		mesh := &m.Meshes[i]
		pass.SetVertexBuffer(0, mesh.VertexBuffer, 0, wgpu.WholeSize)
		pass.SetIndexBuffer(mesh.IndexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		pass.SetBindGroup(0, globalBindGroup, nil)
		pass.SetBindGroup(1, localBindGroup, nil)
		pass.DrawIndexed(mesh.NumElements, 1, 0, 0, 0)
	}
}
