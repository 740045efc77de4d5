package instance

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/chewxy/math32"
	"github.com/mjolnir-gfx/mjolnir/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInstanceDefaults(t *testing.T) {
	inst := NewInstance()
	assert.Equal(t, [4]float32{0, 0, 0, 1}, inst.Rotation)
	assert.Equal(t, [3]float32{1, 1, 1}, inst.Scale)

	raw := inst.Raw()
	var id [16]float32
	id[0], id[5], id[10], id[15] = 1, 1, 1, 1
	assert.Equal(t, id, raw.Model)
}

func TestRawTranslationColumn(t *testing.T) {
	inst := NewInstance()
	inst.Position = [3]float32{7, -2, 3.5}

	raw := inst.Raw()
	assert.Equal(t, float32(7), raw.Model[12])
	assert.Equal(t, float32(-2), raw.Model[13])
	assert.Equal(t, float32(3.5), raw.Model[14])
	assert.Equal(t, float32(1), raw.Model[15])
}

func TestRawRotationAboutY(t *testing.T) {
	inst := NewInstance()
	half := math32.Pi / 4
	inst.Rotation = [4]float32{0, math32.Sin(half), 0, math32.Cos(half)}

	// 90 degrees about Y maps +X to -Z.
	raw := inst.Raw()
	assert.InDelta(t, 0, raw.Model[0], 1e-6)
	assert.InDelta(t, -1, raw.Model[2], 1e-6)
	assert.InDelta(t, 1, raw.Model[10], 1e-6, "Y column unaffected")
}

func TestRawByteViewRoundTrip(t *testing.T) {
	inst := NewInstance()
	inst.Position = [3]float32{1, 2, 3}
	inst.Scale = [3]float32{2, 2, 2}
	raw := inst.Raw()

	// The upload path views the packed matrices as raw little-endian bytes.
	buf := common.SliceToBytes([]InstanceRaw{raw})
	require.Len(t, buf, raw.Size())
	require.Len(t, buf, 64)

	for i := 0; i < 16; i++ {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4 : (i+1)*4]))
		assert.Equal(t, raw.Model[i], got, "element %d", i)
	}
}

func TestRawSliceOrder(t *testing.T) {
	insts := make([]Instance, 3)
	for i := range insts {
		insts[i] = NewInstance()
		insts[i].Position[0] = float32(i)
	}

	raws := RawSlice(insts)
	require.Len(t, raws, 3)
	for i := range raws {
		assert.Equal(t, float32(i), raws[i].Model[12])
	}
}

func TestVertexBufferLayout(t *testing.T) {
	layout := VertexBufferLayout()
	assert.Equal(t, uint64(64), layout.ArrayStride)
	require.Len(t, layout.Attributes, 4)
	for i, attr := range layout.Attributes {
		assert.Equal(t, uint32(3+i), attr.ShaderLocation)
		assert.Equal(t, uint64(16*i), attr.Offset)
	}
}
