package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaneVertices(t *testing.T) {
	vertices := PlaneVertices(2)

	assert.Len(t, vertices, 4)
	assert.Equal(t, [3]float32{-2, -2, 2}, vertices[0].Position)
	assert.Equal(t, [3]float32{2, 2, 2}, vertices[2].Position)
	for _, v := range vertices {
		assert.Equal(t, [3]float32{0, 0, 1}, v.Normal)
	}
	assert.Equal(t, [2]float32{1, 1}, vertices[2].TexCoords)
}

func TestPlaneIndices(t *testing.T) {
	indices := PlaneIndices()
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, indices)
	for _, i := range indices {
		assert.Less(t, int(i), 4)
	}
}
