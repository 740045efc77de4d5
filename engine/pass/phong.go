// package pass encodes the per-frame render graph: one phong pass drawing the
// light marker, every particle system, and every node in a fixed order. The
// pass owns the GPU-side frame state (uniform pool, bind group caches,
// instance buffer caches, depth target, pipelines) and grows it lazily as the
// scene grows.
package pass

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/mjolnir-gfx/mjolnir/common"
	"github.com/mjolnir-gfx/mjolnir/engine/camera"
	"github.com/mjolnir-gfx/mjolnir/engine/instance"
	"github.com/mjolnir-gfx/mjolnir/engine/model"
	"github.com/mjolnir-gfx/mjolnir/engine/node"
	"github.com/mjolnir-gfx/mjolnir/engine/particle"
	"github.com/mjolnir-gfx/mjolnir/engine/texture"
	"github.com/mjolnir-gfx/mjolnir/shaders"
)

const localsSize = 64

// PhongPass is the render pass orchestrator. Draw encodes and submits one
// complete frame; Resize rebuilds the depth target.
type PhongPass interface {
	// Light returns the current point light state.
	//
	// Returns:
	//   - LightUniform: the light position and color
	Light() LightUniform

	// SetLight replaces the point light state. The new value is uploaded on
	// the next Draw.
	//
	// Parameters:
	//   - light: the light position and color
	SetLight(light LightUniform)

	// Draw renders one frame: acquires the swapchain image, uploads frame
	// uniforms, grows the uniform pool and caches to cover every node and
	// particle system, then encodes the light marker, particle systems, and
	// nodes in that order and presents.
	//
	// Uniform slot convention: node i owns slot i, particle system j owns
	// slot len(nodes)+j. Slots are never reused across kinds.
	//
	// Parameters:
	//   - surface: the window surface to acquire from and present to
	//   - device: the GPU device
	//   - queue: the GPU queue
	//   - cam: the camera supplying view position and view-projection
	//   - nodes: the scene nodes, drawn instanced
	//   - systems: the particle systems, drawn instanced from their own buffers
	//
	// Returns:
	//   - error: a *FrameError when the swapchain image could not be acquired
	Draw(surface *wgpu.Surface, device *wgpu.Device, queue *wgpu.Queue, cam camera.Camera, nodes []node.Node, systems []*particle.System) error

	// Resize rebuilds the depth texture for a new surface size. Zero width or
	// height is a no-op.
	//
	// Parameters:
	//   - device: the GPU device
	//   - width: new surface width in pixels
	//   - height: new surface height in pixels
	Resize(device *wgpu.Device, width, height uint32)

	// Release frees every GPU resource owned by the pass.
	Release()
}

type phongPassImpl struct {
	globalBuffer    *wgpu.Buffer
	lightBuffer     *wgpu.Buffer
	sampler         *wgpu.Sampler
	globalBindGroup *wgpu.BindGroup
	globalLayout    *wgpu.BindGroupLayout
	localLayout     *wgpu.BindGroupLayout

	pipeline      *wgpu.RenderPipeline
	lightPipeline *wgpu.RenderPipeline

	depth *texture.Texture
	pool  *UniformPool

	// Arena caches indexed by uniform slot. localBindGroups[i] holds one bind
	// group per material of the model in slot i. instanceBuffers covers node
	// slots only; particle systems carry their own buffers.
	localBindGroups     [][]*wgpu.BindGroup
	instanceBuffers     []*wgpu.Buffer
	instanceBufferSizes []uint64

	light        LightUniform
	ambient      [4]float32
	clearColor   wgpu.Color
	drawLight    bool
	labelCounter int
}

var _ PhongPass = &phongPassImpl{}

// NewPhongPass creates the phong render pass: bind group layouts, the global
// bind group (frame globals + light + shared sampler), both pipelines, the
// depth target, and an empty uniform pool. Resource creation failures panic.
//
// Parameters:
//   - device: the GPU device
//   - surfaceFormat: the configured swapchain texture format
//   - width: initial surface width in pixels
//   - height: initial surface height in pixels
//   - options: functional options to configure the pass
//
// Returns:
//   - PhongPass: the newly created pass
func NewPhongPass(device *wgpu.Device, surfaceFormat wgpu.TextureFormat, width, height uint32, options ...PhongPassOption) PhongPass {
	p := &phongPassImpl{
		light: LightUniform{
			Position: [3]float32{2, 4, 2},
			Color:    [3]float32{1, 1, 1},
		},
		ambient:    [4]float32{0.1, 0.1, 0.1, 1},
		clearColor: wgpu.Color{R: 0.1, G: 0.2, B: 0.3, A: 1.0},
		drawLight:  true,
	}
	for _, option := range options {
		option(p)
	}

	globalLayout, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Phong Global Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStageFragment,
				Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		panic(fmt.Sprintf("failed to create global bind group layout: %v", err))
	}
	p.globalLayout = globalLayout

	localLayout, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Phong Local Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
		},
	})
	if err != nil {
		panic(fmt.Sprintf("failed to create local bind group layout: %v", err))
	}
	p.localLayout = localLayout

	globals := Globals{Ambient: p.ambient}
	p.globalBuffer, err = device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            "Phong Global Uniform Buffer",
		Size:             uint64(globals.Size()),
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to create global uniform buffer: %v", err))
	}
	// Ambient never changes after construction; Draw only rewrites the
	// camera slice at the head of the block.
	device.GetQueue().WriteBuffer(p.globalBuffer, 0, globals.Marshal())

	p.lightBuffer, err = device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            "Phong Light Uniform Buffer",
		Size:             uint64(p.light.Size()),
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to create light uniform buffer: %v", err))
	}

	p.sampler, err = device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Phong Shared Sampler",
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMinClamp:   0.0,
		LodMaxClamp:   32.0,
		MaxAnisotropy: 1,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to create shared sampler: %v", err))
	}

	p.globalBindGroup, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Phong Global Bind Group",
		Layout: globalLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: p.globalBuffer, Offset: 0, Size: wgpu.WholeSize},
			{Binding: 1, Buffer: p.lightBuffer, Offset: 0, Size: wgpu.WholeSize},
			{Binding: 2, Sampler: p.sampler},
		},
	})
	if err != nil {
		panic(fmt.Sprintf("failed to create global bind group: %v", err))
	}

	pipelineLayout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Phong Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{globalLayout, localLayout},
	})
	if err != nil {
		panic(fmt.Sprintf("failed to create pipeline layout: %v", err))
	}
	defer pipelineLayout.Release()

	p.pipeline = createPipeline(device, pipelineLayout, surfaceFormat,
		"Phong Render Pipeline", shaders.Model,
		[]wgpu.VertexBufferLayout{model.VertexBufferLayout(), instance.VertexBufferLayout()},
	)
	p.lightPipeline = createPipeline(device, pipelineLayout, surfaceFormat,
		"Light Render Pipeline", shaders.Light,
		[]wgpu.VertexBufferLayout{model.VertexBufferLayout()},
	)

	depth, err := texture.NewDepthTexture(device, width, height, "Phong Depth Texture")
	if err != nil {
		panic(fmt.Sprintf("failed to create depth texture: %v", err))
	}
	p.depth = depth

	p.pool = NewUniformPool(NewDeviceAllocator(device), localsSize, "Locals Uniform Buffer")

	return p
}

// createPipeline builds one render pipeline over the shared phong pipeline
// layout: back-face culling, less-equal depth with writes enabled, replace
// blending.
func createPipeline(device *wgpu.Device, layout *wgpu.PipelineLayout, surfaceFormat wgpu.TextureFormat, label, source string, vertexLayouts []wgpu.VertexBufferLayout) *wgpu.RenderPipeline {
	module, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: label + " Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: source,
		},
	})
	if err != nil {
		panic(fmt.Sprintf("failed to create shader module for %s: %v", label, err))
	}
	defer module.Release()

	created, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  label,
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers:    vertexLayouts,
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format: surfaceFormat,
					Blend: &wgpu.BlendState{
						Color: wgpu.BlendComponent{
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorZero,
							Operation: wgpu.BlendOperationAdd,
						},
						Alpha: wgpu.BlendComponent{
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorZero,
							Operation: wgpu.BlendOperationAdd,
						},
					},
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            texture.DepthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLessEqual,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		panic(fmt.Sprintf("failed to create %s: %v", label, err))
	}
	return created
}

func (p *phongPassImpl) Light() LightUniform {
	return p.light
}

func (p *phongPassImpl) SetLight(light LightUniform) {
	p.light = light
}

func (p *phongPassImpl) Draw(surface *wgpu.Surface, device *wgpu.Device, queue *wgpu.Queue, cam camera.Camera, nodes []node.Node, systems []*particle.System) error {
	surfaceTexture, err := surface.GetCurrentTexture()
	if err != nil {
		return classifySurfaceError(err)
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return classifySurfaceError(err)
	}

	// Ambient occupies the tail of the global block and was written at
	// construction; only the camera slice changes per frame.
	u := cam.Uniform()
	queue.WriteBuffer(p.globalBuffer, 0, u.Marshal())
	queue.WriteBuffer(p.lightBuffer, 0, p.light.Marshal())

	total := len(nodes) + len(systems)
	if err := p.pool.AllocBuffers(total); err != nil {
		panic(err)
	}
	for len(p.localBindGroups) < total {
		p.localBindGroups = append(p.localBindGroups, nil)
	}
	for len(p.instanceBuffers) < len(nodes) {
		p.instanceBuffers = append(p.instanceBuffers, nil)
		p.instanceBufferSizes = append(p.instanceBufferSizes, 0)
	}

	for i := range nodes {
		p.pool.UpdateUniform(i, nodes[i].Locals.Marshal(), queue)
		p.ensureLocalBindGroups(device, i, nodes[i].Model)
		p.writeNodeInstances(device, queue, i, &nodes[i])
	}
	for j := range systems {
		slot := len(nodes) + j
		p.pool.UpdateUniform(slot, systems[j].Locals.Marshal(), queue)
		p.ensureLocalBindGroups(device, slot, systems[j].Model)
	}

	encoder, err := device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return classifySurfaceError(err)
	}

	rpass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "Phong Render Pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: p.clearColor,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            p.depth.View,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})

	// Light marker first: node 0's model drawn unlit at the light position.
	if p.drawLight && len(nodes) > 0 && len(p.localBindGroups[0]) > 0 {
		rpass.SetPipeline(p.lightPipeline)
		model.DrawLightModel(rpass, nodes[0].Model, p.globalBindGroup, p.localBindGroups[0][0])
	}

	rpass.SetPipeline(p.pipeline)
	rpass.SetBindGroup(0, p.globalBindGroup, nil)

	for j, s := range systems {
		slot := len(nodes) + j
		rpass.SetVertexBuffer(1, s.InstanceBuffer, 0, wgpu.WholeSize)
		model.DrawModelInstanced(rpass, s.Model, 0, uint32(len(s.Particles)), p.localBindGroups[slot])
	}
	for i := range nodes {
		rpass.SetVertexBuffer(1, p.instanceBuffers[i], 0, wgpu.WholeSize)
		model.DrawModelInstanced(rpass, nodes[i].Model, 0, uint32(len(nodes[i].Instances)), p.localBindGroups[i])
	}

	rpass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		encoder.Release()
		view.Release()
		surfaceTexture.Release()
		return classifySurfaceError(err)
	}
	queue.Submit(commandBuffer)
	commandBuffer.Release()
	encoder.Release()

	surface.Present()
	view.Release()
	surfaceTexture.Release()

	return nil
}

// ensureLocalBindGroups fills the slot's bind group cache with one bind group
// per material, pairing the slot's pool buffer with the material's diffuse
// texture. Already-populated slots are left alone; pool buffers never move, so
// cached groups stay valid.
func (p *phongPassImpl) ensureLocalBindGroups(device *wgpu.Device, slot int, m *model.Model) {
	if m == nil || len(p.localBindGroups[slot]) >= len(m.Materials) {
		return
	}

	groups := make([]*wgpu.BindGroup, 0, len(m.Materials))
	for _, mat := range m.Materials {
		bg, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:  fmt.Sprintf("Phong Local Bind Group %d", p.labelCounter),
			Layout: p.localLayout,
			Entries: []wgpu.BindGroupEntry{
				{Binding: 0, Buffer: p.pool.Buffers[slot], Offset: 0, Size: wgpu.WholeSize},
				{Binding: 1, TextureView: mat.DiffuseTexture.View},
			},
		})
		if err != nil {
			panic(fmt.Sprintf("failed to create local bind group for slot %d: %v", slot, err))
		}
		p.labelCounter++
		groups = append(groups, bg)
	}
	p.localBindGroups[slot] = groups
}

// writeNodeInstances uploads the node's packed instance matrices, creating or
// growing the slot's instance buffer first when needed. Node instances are
// fixed after setup, so a buffer that already fits was uploaded when it was
// created; only particle systems stream their buffers every frame.
func (p *phongPassImpl) writeNodeInstances(device *wgpu.Device, queue *wgpu.Queue, slot int, n *node.Node) {
	if len(n.Instances) == 0 {
		return
	}
	var r instance.InstanceRaw
	needed := uint64(len(n.Instances) * r.Size())

	if p.instanceBuffers[slot] != nil && p.instanceBufferSizes[slot] >= needed {
		return
	}

	if p.instanceBuffers[slot] != nil {
		p.instanceBuffers[slot].Release()
	}
	buf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            fmt.Sprintf("Node Instance Buffer %d", p.labelCounter),
		Size:             needed,
		Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to create instance buffer for slot %d: %v", slot, err))
	}
	p.labelCounter++
	p.instanceBuffers[slot] = buf
	p.instanceBufferSizes[slot] = needed

	queue.WriteBuffer(buf, 0, common.SliceToBytes(n.RawInstances()))
}

func (p *phongPassImpl) Resize(device *wgpu.Device, width, height uint32) {
	if width == 0 || height == 0 {
		return
	}

	depth, err := texture.NewDepthTexture(device, width, height, "Phong Depth Texture")
	if err != nil {
		panic(fmt.Sprintf("failed to recreate depth texture: %v", err))
	}
	if p.depth != nil {
		p.depth.Release()
	}
	p.depth = depth
}

func (p *phongPassImpl) Release() {
	for _, groups := range p.localBindGroups {
		for _, bg := range groups {
			if bg != nil {
				bg.Release()
			}
		}
	}
	p.localBindGroups = nil
	for _, buf := range p.instanceBuffers {
		if buf != nil {
			buf.Release()
		}
	}
	p.instanceBuffers = nil
	p.instanceBufferSizes = nil

	if p.pool != nil {
		p.pool.Release()
	}
	if p.depth != nil {
		p.depth.Release()
	}
	if p.pipeline != nil {
		p.pipeline.Release()
	}
	if p.lightPipeline != nil {
		p.lightPipeline.Release()
	}
	if p.globalBindGroup != nil {
		p.globalBindGroup.Release()
	}
	if p.sampler != nil {
		p.sampler.Release()
	}
	if p.lightBuffer != nil {
		p.lightBuffer.Release()
	}
	if p.globalBuffer != nil {
		p.globalBuffer.Release()
	}
	if p.localLayout != nil {
		p.localLayout.Release()
	}
	if p.globalLayout != nil {
		p.globalLayout.Release()
	}
}
