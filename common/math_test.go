package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMul4Identity(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	for i := range m {
		m[i] = float32(i) * 0.5
	}

	Mul4(out[:], id[:], m[:])
	assert.Equal(t, m, out)

	Mul4(out[:], m[:], id[:])
	assert.Equal(t, m, out)
}

func TestQuatFromAxisAngleIdentity(t *testing.T) {
	q := QuatFromAxisAngle(0, 0, 0, 1.2)
	assert.Equal(t, [4]float32{0, 0, 0, 1}, q)

	q = QuatFromAxisAngle(0, 1, 0, 0)
	assert.InDelta(t, 1.0, q[3], 1e-6)
}

func TestBuildModelMatrixQuarterTurn(t *testing.T) {
	// 90 degrees about Y maps +X to -Z.
	q := QuatFromAxisAngle(0, 1, 0, math32.Pi/2)
	var m [16]float32
	BuildModelMatrix(m[:], [3]float32{0, 0, 0}, q, [3]float32{1, 1, 1})

	x, y, z := m[0], m[1], m[2]
	assert.InDelta(t, 0, x, 1e-6)
	assert.InDelta(t, 0, y, 1e-6)
	assert.InDelta(t, -1, z, 1e-6)
}

func TestBuildModelMatrixTranslationScale(t *testing.T) {
	var m [16]float32
	BuildModelMatrix(m[:], [3]float32{4, 5, 6}, [4]float32{0, 0, 0, 1}, [3]float32{2, 3, 4})

	assert.InDelta(t, 2, m[0], 1e-6)
	assert.InDelta(t, 3, m[5], 1e-6)
	assert.InDelta(t, 4, m[10], 1e-6)
	assert.InDelta(t, 4, m[12], 1e-6)
	assert.InDelta(t, 5, m[13], 1e-6)
	assert.InDelta(t, 6, m[14], 1e-6)
}

func TestQuatMulComposes(t *testing.T) {
	a := QuatFromAxisAngle(0, 1, 0, 0.4)
	b := QuatFromAxisAngle(0, 1, 0, 0.6)
	ab := QuatMul(a, b)
	want := QuatFromAxisAngle(0, 1, 0, 1.0)
	for i := range want {
		assert.InDelta(t, want[i], ab[i], 1e-6)
	}
}

func TestSliceToBytesLength(t *testing.T) {
	data := []float32{1, 2, 3}
	b := SliceToBytes(data)
	require.Len(t, b, 12)
	assert.Nil(t, SliceToBytes[float32](nil))
}
