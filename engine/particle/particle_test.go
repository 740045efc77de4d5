package particle

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/mjolnir-gfx/mjolnir/engine/instance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSystem(particles ...Particle) *System {
	return &System{
		Particles: particles,
		rng:       rand.New(rand.NewSource(42)),
	}
}

func TestSimulateResamplesExpiredParticles(t *testing.T) {
	inst := instance.NewInstance()
	inst.Position = [3]float32{5, 5, 5}

	s := testSystem(Particle{
		Instance:   inst,
		Elapsed:    0.9,
		Lifetime:   1,
		Kinematics: &Movement{Direction: [3]float32{0, 0, -1}},
	})
	s.Simulate(0.2)

	p := s.Particles[0]
	assert.Zero(t, p.Elapsed, "elapsed resets on resample")
	assert.Greater(t, p.Lifetime, float32(0))
	assert.LessOrEqual(t, p.Lifetime, float32(1))
	assert.Contains(t, []float32{0.66, -0.66}, p.Instance.Position[0], "spawns under a wheel anchor")
	assert.InDelta(t, -Radius, p.Instance.Position[1], 1e-6)
	assert.InDelta(t, -0.98, p.Instance.Position[2], 1e-6)
	assert.Equal(t, [3]float32{0, 0, 0}, p.Instance.Scale, "born at zero scale")
	assert.NotNil(t, p.Kinematics)
}

func TestRandomLifetimeSupport(t *testing.T) {
	s := testSystem()

	// The scale curve divides by the lifetime, so zero must be out of support.
	for range 10000 {
		lt := s.randomLifetime()
		require.Greater(t, lt, float32(0))
		require.LessOrEqual(t, lt, float32(1))
	}
}

func TestSimulateScaleCurve(t *testing.T) {
	// Half-life is the curve peak: sin(pi/2) * gain + floor.
	s := testSystem(Particle{
		Instance:   instance.NewInstance(),
		Lifetime:   1,
		Kinematics: &Movement{},
	})
	s.Simulate(0.5)
	assert.InDelta(t, 0.025, s.Particles[0].Instance.Scale[0], 1e-5)

	// Near the ends of life the scale falls back toward the floor.
	s2 := testSystem(Particle{
		Instance:   instance.NewInstance(),
		Elapsed:    0.989,
		Lifetime:   1,
		Kinematics: &Movement{},
	})
	s2.Simulate(0.01)
	assert.InDelta(t, 0.01, s2.Particles[0].Instance.Scale[0], 1e-3)
}

func TestSimulateUniformScale(t *testing.T) {
	s := testSystem(Particle{
		Instance:   instance.NewInstance(),
		Lifetime:   1,
		Kinematics: &Orbit{Anchor: wheelBackLeft, Radius: Radius, Rate: 1},
	})
	s.Simulate(0.25)

	sc := s.Particles[0].Instance.Scale
	assert.Equal(t, sc[0], sc[1])
	assert.Equal(t, sc[1], sc[2])
}

func TestMovementClampsFloorHeight(t *testing.T) {
	pos := [3]float32{0, -1, 0}
	m := &Movement{Direction: [3]float32{0, -0.2, -1}}
	m.Integrate(&pos, 0.1)

	assert.GreaterOrEqual(t, pos[1], float32(-Radius))
}

func TestMovementDriftBehindWheel(t *testing.T) {
	// Behind the rear axle: rises with the sqrt ramp and drifts along direction.
	pos := [3]float32{0, 1, -4}
	m := &Movement{Direction: [3]float32{0, 0, -1}}
	m.Integrate(&pos, 0.1)

	assert.InDelta(t, 1+0.1*math32.Sqrt(4), pos[1], 1e-5)
	assert.InDelta(t, -4-0.1*8, pos[2], 1e-5)
}

func TestMovementIdleNearOrigin(t *testing.T) {
	// Above the floor threshold and in front of the axle: no drift applies.
	pos := [3]float32{0.1, 0.2, 0}
	m := &Movement{Direction: [3]float32{1, 1, -1}}
	m.Integrate(&pos, 0.1)

	assert.Equal(t, [3]float32{0.1, 0.2, 0}, pos)
}

func TestOrbitPositionOnCircle(t *testing.T) {
	anchor := [3]float32{0.66, 0, -0.98}
	o := &Orbit{Anchor: anchor, Radius: Radius, Rate: 2}

	var pos [3]float32
	for i := 0; i < 50; i++ {
		o.Integrate(&pos, 0.05)
		theta := o.Phase
		require.InDelta(t, anchor[0], pos[0], 1e-6)
		require.InDelta(t, anchor[1]+Radius*math32.Cos(theta), pos[1], 1e-5)
		require.InDelta(t, anchor[2]+Radius*math32.Sin(theta), pos[2], 1e-5)
	}
}

func TestOrbitPhaseAdvance(t *testing.T) {
	o := &Orbit{Anchor: wheelBackLeft, Radius: Radius, Rate: 3}
	var pos [3]float32
	o.Integrate(&pos, 0.5)
	assert.InDelta(t, 1.5, o.Phase, 1e-6)
}

func TestRandomKinematicsMixture(t *testing.T) {
	s := testSystem()

	var movements, orbits int
	for i := 0; i < 1000; i++ {
		switch k := s.randomKinematics().(type) {
		case *Movement:
			movements++
			assert.Equal(t, float32(-1), k.Direction[2], "drift is always backwards")
		case *Orbit:
			orbits++
			assert.Equal(t, float32(Radius), k.Radius)
			assert.Contains(t, []float32{0.66, -0.66}, k.Anchor[0])
		default:
			t.Fatalf("unexpected kinematics %T", k)
		}
	}

	assert.Greater(t, movements, orbits, "puffs dominate the mixture")
	assert.Greater(t, orbits, 0, "sparks are present")
}

func TestResampleRotationIsUnit(t *testing.T) {
	s := testSystem()
	var p Particle
	s.resample(&p)

	q := p.Instance.Rotation
	norm := q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3]
	assert.InDelta(t, 1.0, norm, 1e-5)
}
