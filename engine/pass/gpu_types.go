package pass

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// Globals is the GPU-aligned representation of the per-frame global uniform
// buffer (bind group 0, binding 0).
// Size: 96 bytes (std140 / WGSL aligned).
type Globals struct {
	ViewPosition [4]float32  // offset  0: world-space camera position (vec4<f32>, w unused)
	ViewProj     [16]float32 // offset 16: combined view-projection matrix (mat4x4<f32>)
	Ambient      [4]float32  // offset 80: ambient light color (vec4<f32>)
}

// Size returns the size of the Globals struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (96)
func (g *Globals) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the Globals struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *Globals) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.ViewPosition[i]))
	}
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(g.ViewProj[i]))
	}
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[80+i*4:], math.Float32bits(g.Ambient[i]))
	}
	return buf
}

// LightUniform is the GPU-aligned representation of the point light uniform
// buffer (bind group 0, binding 1). Position and color are vec3s padded to
// 16-byte alignment.
// Size: 32 bytes (std140 / WGSL aligned).
type LightUniform struct {
	Position [3]float32 // offset  0: world-space light position (vec3<f32>)
	_pad0    float32    // offset 12: padding
	Color    [3]float32 // offset 16: light color (vec3<f32>)
	_pad1    float32    // offset 28: padding to 32 bytes
}

// Size returns the size of the LightUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (32)
func (l *LightUniform) Size() int {
	return int(unsafe.Sizeof(*l))
}

// Marshal serializes the LightUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (l *LightUniform) Marshal() []byte {
	buf := make([]byte, l.Size())
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(l.Position[i]))
	}
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(l.Color[i]))
	}
	return buf
}
