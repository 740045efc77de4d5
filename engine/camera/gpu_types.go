package camera

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// CameraUniform is the GPU-aligned representation of the camera's slice of the
// global uniform buffer. The view position is padded to a vec4 so the matrix
// that follows starts on a 16-byte boundary.
// Size: 80 bytes (std140 / WGSL aligned).
type CameraUniform struct {
	ViewPosition [4]float32  // offset  0: world-space camera position (vec4<f32>, w unused)
	ViewProj     [16]float32 // offset 16: combined view-projection matrix (mat4x4<f32>)
}

// Size returns the size of the CameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (u *CameraUniform) Size() int {
	return int(unsafe.Sizeof(*u))
}

// Marshal serializes the CameraUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (u *CameraUniform) Marshal() []byte {
	buf := make([]byte, u.Size())
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(u.ViewPosition[i]))
	}
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(u.ViewProj[i]))
	}
	return buf
}
