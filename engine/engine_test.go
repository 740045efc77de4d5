package engine

import (
	"testing"

	"github.com/mjolnir-gfx/mjolnir/engine/camera"
	"github.com/stretchr/testify/assert"
)

func TestStateResizeZeroDimensionIsNoOp(t *testing.T) {
	cam := camera.NewCamera(camera.WithAspect(16.0 / 9.0))
	s := &State{cam: cam}

	// The state has no surface or pass; a resize that slipped past the zero
	// guard would dereference them.
	before := cam.Uniform()
	assert.NotPanics(t, func() {
		s.Resize(0, 720)
		s.Resize(1280, 0)
	})
	assert.Equal(t, before, cam.Uniform())
}
