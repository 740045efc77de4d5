// package engine owns the scene state and the frame loop. One State pairs a
// window with a GPU device, a phong pass, and the scene content (nodes,
// particle systems, camera); Run drives everything from the window's message
// loop on a single thread.
package engine

import (
	"errors"
	"time"

	"github.com/chewxy/math32"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/mjolnir-gfx/mjolnir/engine/camera"
	"github.com/mjolnir-gfx/mjolnir/engine/config"
	"github.com/mjolnir-gfx/mjolnir/engine/core"
	"github.com/mjolnir-gfx/mjolnir/engine/node"
	"github.com/mjolnir-gfx/mjolnir/engine/particle"
	"github.com/mjolnir-gfx/mjolnir/engine/pass"
	"github.com/mjolnir-gfx/mjolnir/engine/profiler"
	"github.com/mjolnir-gfx/mjolnir/engine/window"
)

// lightOrbitRate is the light's angular speed around the Y axis in radians
// per second.
const lightOrbitRate = math32.Pi / 3

// State holds everything one running scene needs: the window surface, GPU
// handles, the render pass, and the scene content updated every frame.
type State struct {
	window window.Window
	cfg    config.Config

	instance      *wgpu.Instance
	surface       *wgpu.Surface
	adapter       *wgpu.Adapter
	device        *wgpu.Device
	queue         *wgpu.Queue
	surfaceFormat wgpu.TextureFormat

	phong      pass.PhongPass
	cam        camera.Camera
	controller camera.CameraController

	nodes   []node.Node
	systems []*particle.System

	sessionTime float32
	prof        *profiler.Profiler

	fatal error
}

// NewState creates the GPU device and render pass for a window and wires the
// camera controller to the window's input callbacks. GPU initialization
// failures panic; there is nothing to render without a device.
//
// Parameters:
//   - win: the platform window to render into
//   - cfg: the engine configuration
//   - options: functional options to configure the state
//
// Returns:
//   - *State: the initialized state
func NewState(win window.Window, cfg config.Config, options ...StateBuilderOption) *State {
	s := &State{
		window: win,
		cfg:    cfg,
		prof:   profiler.NewProfiler(),
	}

	s.instance = wgpu.CreateInstance(nil)
	s.surface = s.instance.CreateSurface(win.SurfaceDescriptor())

	adapter, err := s.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: s.surface,
	})
	if err != nil {
		panic(err)
	}
	s.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		panic(err)
	}
	s.device = device
	s.queue = device.GetQueue()

	s.configureSurface(uint32(win.Width()), uint32(win.Height()))

	s.controller = camera.NewCameraController(
		camera.WithSpeed(cfg.Camera.Speed),
	)
	s.cam = camera.NewCamera(
		camera.WithController(s.controller),
		camera.WithFov(cfg.Camera.Fov*(math32.Pi/180)),
		camera.WithAspect(float32(win.Width())/float32(win.Height())),
	)

	for _, option := range options {
		option(s)
	}

	if s.phong == nil {
		s.phong = pass.NewPhongPass(
			s.device, s.surfaceFormat,
			uint32(win.Width()), uint32(win.Height()),
			pass.WithLightMarker(cfg.Scene.LightMarker),
		)
	}

	win.SetResizeCallback(func(width, height int) {
		s.Resize(uint32(width), uint32(height))
	})
	win.SetKeyDownCallback(func(keyCode uint32) {
		s.controller.ProcessKeyDown(keyCode)
	})
	win.SetKeyUpCallback(func(keyCode uint32) {
		s.controller.ProcessKeyUp(keyCode)
	})
	win.SetScrollCallback(func(delta float32) {
		s.controller.ProcessScroll(delta)
	})

	return s
}

// Device returns the GPU device.
//
// Returns:
//   - *wgpu.Device: the device
func (s *State) Device() *wgpu.Device {
	return s.device
}

// Queue returns the GPU queue.
//
// Returns:
//   - *wgpu.Queue: the queue
func (s *State) Queue() *wgpu.Queue {
	return s.queue
}

// Camera returns the scene camera.
//
// Returns:
//   - camera.Camera: the camera
func (s *State) Camera() camera.Camera {
	return s.cam
}

// AddNode appends a node to the scene and returns its arena index.
//
// Parameters:
//   - n: the node to add
//
// Returns:
//   - uint32: the index the node occupies
func (s *State) AddNode(n node.Node) uint32 {
	s.nodes = append(s.nodes, n)
	return uint32(len(s.nodes) - 1)
}

// AddParticleSystem appends a particle system to the scene.
//
// Parameters:
//   - sys: the system to add
func (s *State) AddParticleSystem(sys *particle.System) {
	s.systems = append(s.systems, sys)
}

// Update advances the scene by dt seconds: camera integration, light orbit,
// animation sampling, and particle simulation.
//
// Parameters:
//   - dt: elapsed time since the previous update, in seconds
func (s *State) Update(dt float32) {
	s.sessionTime += dt

	s.controller.Update(dt)
	s.cam.Update()

	// The light orbits the Y axis at constant height and radius.
	light := s.phong.Light()
	sin, cos := math32.Sincos(lightOrbitRate * dt)
	x, z := light.Position[0], light.Position[2]
	light.Position[0] = x*cos - z*sin
	light.Position[2] = x*sin + z*cos
	s.phong.SetLight(light)

	// Animation playback holds on the last keyframe once the session time
	// passes the clip's end.
	for i := range s.nodes {
		n := &s.nodes[i]
		if n.Model == nil || len(n.Model.Animations) == 0 {
			continue
		}
		if pos, ok := n.Model.Animations[0].SampleTranslation(s.sessionTime); ok {
			n.Locals.Position[0] = pos[0]
			n.Locals.Position[1] = pos[1]
			n.Locals.Position[2] = pos[2]
		}
	}

	for _, sys := range s.systems {
		sys.Update(dt, s.queue)
	}
}

// Render draws one frame. Transient surface errors are logged and skipped; a
// lost surface triggers a reconfigure; out-of-memory is fatal and stops the
// loop.
//
// Returns:
//   - error: the fatal error, if rendering cannot continue
func (s *State) Render() error {
	err := s.phong.Draw(s.surface, s.device, s.queue, s.cam, s.nodes, s.systems)
	if err == nil {
		return nil
	}

	var fe *pass.FrameError
	if !errors.As(err, &fe) {
		return err
	}

	switch fe.Kind {
	case pass.SurfaceLost:
		core.LogWarn("surface lost, reconfiguring: %v", fe.Err)
		s.Resize(uint32(s.window.Width()), uint32(s.window.Height()))
	case pass.SurfaceOutdated, pass.SurfaceTimeout, pass.SurfaceUnknown:
		core.LogWarn("skipping frame (%s): %v", fe.Kind, fe.Err)
	case pass.SurfaceOutOfMemory:
		return fe
	}
	return nil
}

// Resize reconfigures the surface and rebuilds size-dependent resources.
// Zero width or height (minimized window) is a no-op.
//
// Parameters:
//   - width: new surface width in pixels
//   - height: new surface height in pixels
func (s *State) Resize(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}

	s.configureSurface(width, height)
	s.cam.SetAspect(float32(width) / float32(height))
	s.phong.Resize(s.device, width, height)
}

// Run drives the frame loop from the window's message loop: poll events,
// advance the scene, render. Blocks until the window closes or rendering
// fails fatally.
//
// Returns:
//   - error: the fatal rendering error, or nil on a normal close
func (s *State) Run() error {
	lastFrame := time.Now()

	s.window.SetUpdateCallback(func() {
		now := time.Now()
		dt := float32(now.Sub(lastFrame).Seconds())
		lastFrame = now

		s.Update(dt)
		if err := s.Render(); err != nil {
			s.fatal = err
			s.window.Close()
			return
		}

		if s.cfg.Profiler {
			s.prof.Tick()
		}
	})

	s.window.ProcessMessages()
	return s.fatal
}

// Release frees the scene's GPU resources.
func (s *State) Release() {
	for _, sys := range s.systems {
		sys.Release()
	}
	for i := range s.nodes {
		if s.nodes[i].Model != nil {
			s.nodes[i].Model.Release()
		}
	}
	if s.phong != nil {
		s.phong.Release()
	}
}

// configureSurface (re)configures the swapchain for the current size and the
// configured present mode.
func (s *State) configureSurface(width, height uint32) {
	capabilities := s.surface.GetCapabilities(s.adapter)
	s.surfaceFormat = capabilities.Formats[0]

	presentMode := wgpu.PresentModeFifo
	if s.cfg.Window.PresentMode == config.PresentUncapped {
		presentMode = wgpu.PresentModeImmediate
	}

	s.surface.Configure(s.adapter, s.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      s.surfaceFormat,
		Width:       width,
		Height:      height,
		PresentMode: presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})
}
