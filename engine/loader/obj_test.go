package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cubeFaceOBJ = `
# one quad with full v/vt/vn references
mtllib cube.mtl
o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
usemtl body
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestParseOBJQuad(t *testing.T) {
	data, err := parseOBJ(cubeFaceOBJ)
	require.NoError(t, err)

	require.Len(t, data.meshes, 1)
	mesh := data.meshes[0]
	assert.Equal(t, "quad", mesh.name)
	assert.Equal(t, 0, mesh.materialIndex)

	// four unique corners, fan-triangulated into two triangles
	assert.Len(t, mesh.vertices, 4)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, mesh.indices)

	assert.Equal(t, [3]float32{1, 1, 0}, mesh.vertices[2].Position)
	assert.Equal(t, [3]float32{0, 0, 1}, mesh.vertices[0].Normal)

	// V is flipped to the top-left origin
	assert.Equal(t, [2]float32{1, 1}, mesh.vertices[1].TexCoords)
	assert.Equal(t, [2]float32{1, 0}, mesh.vertices[2].TexCoords)

	assert.Equal(t, []string{"cube.mtl"}, data.mtlLibs)
	require.Len(t, data.materials, 1)
	assert.Equal(t, "body", data.materials[0].name)
}

func TestParseOBJSharedCornersDeduped(t *testing.T) {
	data, err := parseOBJ(`
v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 0
f 1 2 3
f 3 2 4
`)
	require.NoError(t, err)

	mesh := data.meshes[0]
	assert.Len(t, mesh.vertices, 4)
	assert.Len(t, mesh.indices, 6)
}

func TestParseOBJNegativeIndices(t *testing.T) {
	data, err := parseOBJ(`
v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`)
	require.NoError(t, err)
	assert.Equal(t, [3]float32{0, 0, 0}, data.meshes[0].vertices[0].Position)
	assert.Equal(t, [3]float32{0, 1, 0}, data.meshes[0].vertices[2].Position)
}

func TestParseOBJMultipleMaterialGroups(t *testing.T) {
	data, err := parseOBJ(`
v 0 0 0
v 1 0 0
v 0 1 0
usemtl a
f 1 2 3
usemtl b
f 1 2 3
usemtl a
f 1 3 2
`)
	require.NoError(t, err)

	require.Len(t, data.meshes, 3)
	assert.Equal(t, 0, data.meshes[0].materialIndex)
	assert.Equal(t, 1, data.meshes[1].materialIndex)
	assert.Equal(t, 0, data.meshes[2].materialIndex)
	require.Len(t, data.materials, 2)
}

func TestParseOBJErrors(t *testing.T) {
	cases := []string{
		"v 0 0\nf 1 1 1",       // short position
		"v a b c\nf 1 1 1",     // bad float
		"v 0 0 0\nf 1 2 3",     // index out of range
		"v 0 0 0\nf 1/x/1 1 1", // bad sub-index
		"v 0 0 0",              // no faces
		"",                     // empty
	}
	for _, src := range cases {
		_, err := parseOBJ(src)
		assert.ErrorIs(t, err, ErrParse, "source %q", src)
	}
}

func TestParseMTL(t *testing.T) {
	mats, err := parseMTL(`
# comment
newmtl body
Kd 0.8 0.8 0.8
map_Kd body_diffuse.png
newmtl trim
`)
	require.NoError(t, err)

	require.Len(t, mats, 2)
	assert.Equal(t, "body", mats[0].name)
	assert.Equal(t, "body_diffuse.png", mats[0].diffuseMap)
	assert.Equal(t, "trim", mats[1].name)
	assert.Empty(t, mats[1].diffuseMap)
}

func TestParseMTLMapBeforeMaterial(t *testing.T) {
	_, err := parseMTL("map_Kd tex.png")
	assert.ErrorIs(t, err, ErrParse)
}

func TestResolveMaterials(t *testing.T) {
	data := &objData{
		materials: []mtlMaterial{{name: "body"}, {name: "missing"}},
	}
	data.resolveMaterials([]mtlMaterial{
		{name: "body", diffuseMap: "body.png"},
		{name: "unused", diffuseMap: "unused.png"},
	})

	assert.Equal(t, "body.png", data.materials[0].diffuseMap)
	// unmatched names keep their stub and fall back to the white texture
	assert.Empty(t, data.materials[1].diffuseMap)
}
