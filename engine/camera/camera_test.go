package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/mjolnir-gfx/mjolnir/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func radius(cc CameraController) float32 {
	px, py, pz := cc.Position()
	tx, ty, tz := cc.Target()
	dx, dy, dz := tx-px, ty-py, tz-pz
	return math32.Sqrt(dx*dx + dy*dy + dz*dz)
}

func TestControllerDefaults(t *testing.T) {
	cc := NewCameraController()

	px, py, pz := cc.Position()
	assert.Equal(t, float32(0), px)
	assert.Equal(t, float32(5), py)
	assert.Equal(t, float32(10), pz)

	tx, ty, tz := cc.Target()
	assert.Equal(t, float32(0), tx)
	assert.Equal(t, float32(0), ty)
	assert.Equal(t, float32(0), tz)

	assert.Equal(t, float32(4.0), cc.Speed())
}

func TestControllerForwardMovesTowardTarget(t *testing.T) {
	cc := NewCameraController(
		WithPosition(0, 0, 10),
		WithTarget(0, 0, 0),
		WithSpeed(2),
	)

	require.True(t, cc.ProcessKeyDown(common.KeyW))
	cc.Update(1.0)

	_, _, pz := cc.Position()
	assert.InDelta(t, 8.0, pz, 1e-5)
}

func TestControllerForwardStopsShortOfTarget(t *testing.T) {
	cc := NewCameraController(
		WithPosition(0, 0, 1),
		WithTarget(0, 0, 0),
		WithSpeed(2),
	)

	cc.ProcessKeyDown(common.KeyW)
	// the remaining distance (1.0) is inside the speed radius (2.0), so the
	// eye stays put
	cc.Update(1.0)

	_, _, pz := cc.Position()
	assert.InDelta(t, 1.0, pz, 1e-5)
}

func TestControllerForwardHoldsSpeedRadius(t *testing.T) {
	cc := NewCameraController(
		WithPosition(0, 0, 2),
		WithTarget(0, 0, 0),
		WithSpeed(4),
	)

	cc.ProcessKeyDown(common.KeyW)
	// The step (4 * 0.25 = 1) fits in the remaining distance (2), but the
	// distance is already inside the speed radius (4), so the eye stays put.
	cc.Update(0.25)

	_, _, pz := cc.Position()
	assert.InDelta(t, 2.0, pz, 1e-5)
}

func TestControllerBackwardUnguarded(t *testing.T) {
	cc := NewCameraController(
		WithPosition(0, 0, 1),
		WithTarget(0, 0, 0),
		WithSpeed(2),
	)

	cc.ProcessKeyDown(common.KeyS)
	cc.Update(1.0)

	_, _, pz := cc.Position()
	assert.InDelta(t, 3.0, pz, 1e-5)
}

func TestControllerStrafePreservesRadius(t *testing.T) {
	cc := NewCameraController(
		WithPosition(3, 2, 7),
		WithTarget(0, 0, 0),
		WithSpeed(5),
	)
	before := radius(cc)

	cc.ProcessKeyDown(common.KeyD)
	for range 20 {
		cc.Update(0.016)
	}

	assert.InDelta(t, before, radius(cc), 1e-4)
}

func TestControllerStrafeDirections(t *testing.T) {
	left := NewCameraController(WithPosition(0, 0, 10), WithTarget(0, 0, 0))
	right := NewCameraController(WithPosition(0, 0, 10), WithTarget(0, 0, 0))

	left.ProcessKeyDown(common.KeyA)
	right.ProcessKeyDown(common.KeyD)
	left.Update(0.1)
	right.Update(0.1)

	lx, _, _ := left.Position()
	rx, _, _ := right.Position()
	assert.Negative(t, lx)
	assert.Positive(t, rx)
	assert.NotEqual(t, lx, rx)
}

func TestControllerKeyUpStopsMovement(t *testing.T) {
	cc := NewCameraController(WithPosition(0, 0, 10), WithTarget(0, 0, 0))

	cc.ProcessKeyDown(common.KeyW)
	cc.Update(0.1)
	_, _, afterMove := cc.Position()

	require.True(t, cc.ProcessKeyUp(common.KeyW))
	cc.Update(0.1)
	_, _, afterStop := cc.Position()

	assert.Equal(t, afterMove, afterStop)
}

func TestControllerIgnoresUnmappedKeys(t *testing.T) {
	cc := NewCameraController()
	assert.False(t, cc.ProcessKeyDown(common.KeySpace))
	assert.False(t, cc.ProcessKeyUp(common.KeySpace))
}

func TestControllerArrowKeyAliases(t *testing.T) {
	cc := NewCameraController(WithPosition(0, 0, 10), WithTarget(0, 0, 0))

	require.True(t, cc.ProcessKeyDown(common.KeyUp))
	cc.Update(0.1)
	_, _, pz := cc.Position()
	assert.Less(t, pz, float32(10))
}

func TestControllerScrollZoomClamped(t *testing.T) {
	cc := NewCameraController(
		WithPosition(0, 0, 10),
		WithTarget(0, 0, 0),
		WithZoomSpeed(1),
		WithRadiusBounds(2, 20),
	)

	// Zoom in far past the minimum radius.
	for range 50 {
		cc.ProcessScroll(1)
	}
	assert.InDelta(t, 2.0, radius(cc), 1e-4)

	// Zoom out far past the maximum radius.
	for range 100 {
		cc.ProcessScroll(-1)
	}
	assert.InDelta(t, 20.0, radius(cc), 1e-4)
}

func TestCameraUniformPacksControllerPosition(t *testing.T) {
	cc := NewCameraController(WithPosition(1, 2, 3), WithTarget(0, 0, 0))
	cam := NewCamera(WithController(cc), WithAspect(16.0/9.0))

	u := cam.Uniform()
	assert.Equal(t, [4]float32{1, 2, 3, 1}, u.ViewPosition)
	assert.Equal(t, cam.ViewProjectionMatrix(), u.ViewProj)
	assert.Equal(t, 80, u.Size())
	assert.Len(t, u.Marshal(), 80)
}

func TestCameraSetAspectRecomputesProjection(t *testing.T) {
	cc := NewCameraController(WithPosition(0, 0, 10), WithTarget(0, 0, 0))
	cam := NewCamera(WithController(cc), WithAspect(1.0))

	before := cam.ProjectionMatrix()
	cam.SetAspect(2.0)
	after := cam.ProjectionMatrix()

	assert.NotEqual(t, before, after)
	// Widening the aspect halves the x focal term.
	assert.InDelta(t, before[0]/2, after[0], 1e-5)
}

func TestCameraUpdateTracksController(t *testing.T) {
	cc := NewCameraController(WithPosition(0, 0, 10), WithTarget(0, 0, 0))
	cam := NewCamera(WithController(cc))

	before := cam.ViewMatrix()
	cc.SetPosition(5, 5, 5)
	cam.Update()
	after := cam.ViewMatrix()

	assert.NotEqual(t, before, after)
}

func TestCameraWithoutControllerKeepsIdentity(t *testing.T) {
	cam := NewCamera()
	cam.Update()

	identity := [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	assert.Equal(t, identity, cam.ViewMatrix())
	assert.Nil(t, cam.Controller())
}
