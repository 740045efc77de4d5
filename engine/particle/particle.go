// package particle implements the wheel effects: short-lived instances that
// spawn at the rear wheel anchors and either drift backwards as smoke puffs
// or orbit the wheel rim as sparks. All particle state lives on the CPU; each
// update rewrites the whole instance buffer.
package particle

import (
	"fmt"
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/mjolnir-gfx/mjolnir/common"
	"github.com/mjolnir-gfx/mjolnir/engine/instance"
	"github.com/mjolnir-gfx/mjolnir/engine/model"
	"github.com/mjolnir-gfx/mjolnir/engine/node"
)

const (
	// Radius is the wheel radius particles spawn under and orbit around.
	Radius   = 0.25
	Diameter = Radius * 2

	// driftSpeed scales the per-particle drift direction.
	driftSpeed = 8

	// orbitShare is the fraction of respawned particles that become sparks.
	orbitShare = 0.2
)

// Rear wheel anchor points in model space.
var (
	wheelBackLeft  = [3]float32{0.66, 0, -0.98}
	wheelBackRight = [3]float32{-0.66, 0, -0.98}
)

// Kinematics integrates a particle position over time. Each variant also
// fixes the constants of the lifetime scale curve, so puffs and sparks read
// at different sizes.
type Kinematics interface {
	// Integrate advances the particle position by dt seconds.
	//
	// Parameters:
	//   - pos: the position to update in place
	//   - dt: elapsed time in seconds
	Integrate(pos *[3]float32, dt float32)

	// ScaleCurve returns the (gain, floor) constants of the lifetime scale
	// curve: scale = sin(elapsed/total * pi) * gain + floor.
	//
	// Returns:
	//   - float32: curve gain
	//   - float32: curve floor
	ScaleCurve() (float32, float32)
}

// Movement drifts a particle along a fixed random direction once it falls
// below or behind the wheel, with a vertical ramp behind the rear axle and a
// clamped minimum height.
type Movement struct {
	// Direction is the per-particle drift, unit-ish with z always -1.
	Direction [3]float32
}

var _ Kinematics = &Movement{}

func (m *Movement) Integrate(pos *[3]float32, dt float32) {
	isBack := pos[2] < wheelBackLeft[2]-Radius*1.5
	isBottom := pos[1] < -Radius/2

	if isBack {
		pos[1] += dt * math32.Sqrt(-pos[2])
	}
	if isBottom || isBack {
		pos[0] += m.Direction[0] * dt * driftSpeed
		pos[1] += m.Direction[1] * dt * driftSpeed
		pos[2] += m.Direction[2] * dt * driftSpeed
	}
	pos[1] = math32.Max(pos[1], -Radius)
}

func (m *Movement) ScaleCurve() (float32, float32) {
	return 0.015, 0.01
}

// Orbit pins a particle to a fixed-radius circle around an anchor, advancing
// an angular phase each step. The circle lies in the YZ plane, matching the
// wheel's spin plane.
type Orbit struct {
	// Anchor is the circle center in model space.
	Anchor [3]float32

	// Phase is the current angle in radians.
	Phase float32

	// Rate is the angular velocity in radians per second.
	Rate float32

	// Radius is the circle radius.
	Radius float32
}

var _ Kinematics = &Orbit{}

func (o *Orbit) Integrate(pos *[3]float32, dt float32) {
	o.Phase += dt * o.Rate
	pos[0] = o.Anchor[0]
	pos[1] = o.Anchor[1] + o.Radius*math32.Cos(o.Phase)
	pos[2] = o.Anchor[2] + o.Radius*math32.Sin(o.Phase)
}

func (o *Orbit) ScaleCurve() (float32, float32) {
	return 0.006, 0.003
}

// Particle is one live particle: its transform plus lifetime bookkeeping and
// its kinematics variant.
type Particle struct {
	// Instance is the transform streamed to the instance buffer.
	Instance instance.Instance

	// Elapsed is how long the particle has been alive, in seconds.
	Elapsed float32

	// Lifetime is the total time before respawn, in seconds.
	Lifetime float32

	// Kinematics integrates the position and fixes the scale constants.
	Kinematics Kinematics
}

// System animates a set of particles sharing one model and instance buffer.
type System struct {
	// Parent is the arena index of the node the system is attached to.
	Parent uint32

	// Locals are the per-object uniforms for the particle draw.
	Locals node.Locals

	// Model is the quad (or mesh) drawn once per particle.
	Model *model.Model

	// Particles holds the live particle state, one per instance.
	Particles []Particle

	// InstanceBuffer is the GPU buffer rewritten on every update.
	InstanceBuffer *wgpu.Buffer

	rng *rand.Rand
}

// NewSystem converts a node into a particle system. Each of the node's
// instances becomes one particle; the instance buffer is created from their
// initial transforms and sized for whole-buffer rewrites.
//
// Parameters:
//   - device: the GPU device
//   - queue: the queue used for the initial buffer upload
//   - n: the node providing parent, locals, model and initial instances
//   - options: functional options to configure the system
//
// Returns:
//   - *System: the created system
//   - error: error if the instance buffer cannot be created
func NewSystem(device *wgpu.Device, queue *wgpu.Queue, n node.Node, options ...SystemBuilderOption) (*System, error) {
	s := &System{
		Parent: n.Parent,
		Locals: n.Locals,
		Model:  n.Model,
	}
	for _, opt := range options {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(rand.Int63()))
	}

	s.Particles = make([]Particle, len(n.Instances))
	for i, inst := range n.Instances {
		s.Particles[i] = Particle{
			Instance:   inst,
			Lifetime:   s.randomLifetime(),
			Kinematics: s.randomKinematics(),
		}
	}

	raws := n.RawInstances()
	data := common.SliceToBytes(raws)

	buf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            fmt.Sprintf("Particle System %d Instance Buffer", n.Parent),
		Size:             uint64(len(data)),
		Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, err
	}
	queue.WriteBuffer(buf, 0, data)
	s.InstanceBuffer = buf

	return s, nil
}

// randomKinematics draws a variant from the spawn mixture: mostly drifting
// puffs, occasionally orbiting sparks.
func (s *System) randomKinematics() Kinematics {
	if s.rng.Float32() < orbitShare {
		center := s.randomAnchor()
		return &Orbit{
			Anchor: center,
			Phase:  s.rng.Float32() * 2 * math32.Pi,
			Rate:   (s.rng.Float32()*4 + 2) * math32.Pi,
			Radius: Radius,
		}
	}
	return &Movement{
		Direction: [3]float32{
			(s.rng.Float32()*2 - 1) * 0.2,
			(s.rng.Float32()*2 - 1) * 0.2,
			-1,
		},
	}
}

// randomAnchor picks one of the two rear wheel centers.
func (s *System) randomAnchor() [3]float32 {
	if s.rng.Intn(2) == 0 {
		return wheelBackRight
	}
	return wheelBackLeft
}

// resample replaces an expired particle with a brand-new one: fresh
// kinematics, fresh spawn position under a wheel, fresh lifetime.
func (s *System) resample(p *Particle) {
	center := s.randomAnchor()
	center[1] -= Radius

	randAngle := func() float32 {
		return s.rng.Float32() * 2 * math32.Pi
	}
	rotation := common.QuatMul(
		common.QuatMul(
			common.QuatFromAxisAngle(1, 0, 0, randAngle()),
			common.QuatFromAxisAngle(0, 1, 0, randAngle()),
		),
		common.QuatFromAxisAngle(0, 0, 1, randAngle()),
	)

	*p = Particle{
		Instance: instance.Instance{
			Position: center,
			Rotation: rotation,
			Scale:    [3]float32{0, 0, 0},
		},
		Lifetime:   s.randomLifetime(),
		Kinematics: s.randomKinematics(),
	}
}

// randomLifetime draws from (0, 1]. A zero lifetime would divide by zero in
// the scale curve.
func (s *System) randomLifetime() float32 {
	return 1 - s.rng.Float32()
}

// Simulate advances every particle by delta seconds without touching the GPU.
// Live particles integrate their kinematics and follow the lifetime scale
// curve; particles that outlive their lifetime are resampled with elapsed
// reset to zero.
//
// Parameters:
//   - delta: elapsed time since the previous update, in seconds
func (s *System) Simulate(delta float32) {
	for i := range s.Particles {
		p := &s.Particles[i]

		p.Elapsed += delta
		if p.Elapsed > p.Lifetime {
			s.resample(p)
			continue
		}

		p.Kinematics.Integrate(&p.Instance.Position, delta)

		gain, floor := p.Kinematics.ScaleCurve()
		size := math32.Sin(p.Elapsed/p.Lifetime*math32.Pi)*gain + floor
		p.Instance.Scale = [3]float32{size, size, size}
	}
}

// Update simulates the system and rewrites the whole instance buffer.
//
// Parameters:
//   - delta: elapsed time since the previous update, in seconds
//   - queue: the queue used for the buffer upload
func (s *System) Update(delta float32, queue *wgpu.Queue) {
	s.Simulate(delta)

	raws := make([]instance.InstanceRaw, len(s.Particles))
	for i := range s.Particles {
		raws[i] = s.Particles[i].Instance.Raw()
	}
	queue.WriteBuffer(s.InstanceBuffer, 0, common.SliceToBytes(raws))
}

// Release frees the GPU buffer held by the system. The model is owned by the
// originating node and is not released here.
func (s *System) Release() {
	if s == nil || s.InstanceBuffer == nil {
		return
	}
	s.InstanceBuffer.Release()
	s.InstanceBuffer = nil
}
