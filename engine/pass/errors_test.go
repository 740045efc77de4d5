package pass

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifySurfaceError(t *testing.T) {
	cases := []struct {
		msg  string
		kind SurfaceErrorKind
	}{
		{"Surface image is lost", SurfaceLost},
		{"surface is outdated, needs reconfiguration", SurfaceOutdated},
		{"timeout while acquiring next swapchain texture", SurfaceTimeout},
		{"acquisition timed out", SurfaceTimeout},
		{"Out of Memory", SurfaceOutOfMemory},
		{"validation error: something else", SurfaceUnknown},
	}

	for _, tc := range cases {
		fe := classifySurfaceError(errors.New(tc.msg))
		assert.Equal(t, tc.kind, fe.Kind, "message %q", tc.msg)
	}
}

func TestFrameErrorWrapsCause(t *testing.T) {
	cause := errors.New("surface lost")
	fe := classifySurfaceError(cause)

	require.ErrorIs(t, fe, cause)
	assert.Contains(t, fe.Error(), "lost")
}

func TestSurfaceErrorKindString(t *testing.T) {
	assert.Equal(t, "lost", SurfaceLost.String())
	assert.Equal(t, "outdated", SurfaceOutdated.String())
	assert.Equal(t, "timeout", SurfaceTimeout.String())
	assert.Equal(t, "out of memory", SurfaceOutOfMemory.String())
	assert.Equal(t, "unknown", SurfaceUnknown.String())
}
