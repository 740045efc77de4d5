package loader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mjolnir-gfx/mjolnir/engine/model"
)

// objMesh is the CPU-side result of one OBJ face group, ready for buffer upload.
type objMesh struct {
	name          string
	vertices      []model.ModelVertex
	indices       []uint32
	materialIndex int
}

// mtlMaterial is one parsed MTL entry.
type mtlMaterial struct {
	name       string
	diffuseMap string
}

// objData is the full CPU-side parse result of an OBJ file and its material
// libraries.
type objData struct {
	meshes    []objMesh
	materials []mtlMaterial
	mtlLibs   []string
}

// parseOBJ parses a Wavefront OBJ document into triangulated, single-indexed
// mesh groups. Faces with more than three corners are fan-triangulated. A new
// mesh group starts at every usemtl directive; geometry before the first
// usemtl lands in a default group with material index 0.
//
// Material indices refer to the order of usemtl names as first encountered;
// resolveMaterials maps them onto the parsed MTL entries afterwards.
//
// Parameters:
//   - source: the OBJ document text
//
// Returns:
//   - *objData: the parsed meshes and referenced material names
//   - error: an error wrapping ErrParse for malformed input
func parseOBJ(source string) (*objData, error) {
	var (
		positions [][3]float32
		texCoords [][2]float32
		normals   [][3]float32
	)

	data := &objData{}
	materialIndices := make(map[string]int)
	currentName := "default"
	var current *objMesh
	// corner key ("v/vt/vn") → index within the current mesh
	var cornerIndex map[string]uint32

	beginMesh := func(materialIdx int) {
		data.meshes = append(data.meshes, objMesh{
			name:          currentName,
			materialIndex: materialIdx,
		})
		current = &data.meshes[len(data.meshes)-1]
		cornerIndex = make(map[string]uint32)
	}

	for lineNo, line := range strings.Split(source, "\n") {
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			p, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrParse, lineNo+1, err)
			}
			positions = append(positions, p)
		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("%w: line %d: vt needs two components", ErrParse, lineNo+1)
			}
			u, err1 := parseFloat(fields[1])
			v, err2 := parseFloat(fields[2])
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("%w: line %d: bad texture coordinate", ErrParse, lineNo+1)
			}
			// OBJ uses a bottom-left UV origin; WebGPU samples top-left.
			texCoords = append(texCoords, [2]float32{u, 1 - v})
		case "vn":
			n, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrParse, lineNo+1, err)
			}
			normals = append(normals, n)
		case "o", "g":
			if len(fields) > 1 {
				currentName = fields[1]
			}
		case "mtllib":
			data.mtlLibs = append(data.mtlLibs, fields[1:]...)
		case "usemtl":
			if len(fields) < 2 {
				return nil, fmt.Errorf("%w: line %d: usemtl needs a name", ErrParse, lineNo+1)
			}
			idx, ok := materialIndices[fields[1]]
			if !ok {
				idx = len(materialIndices)
				materialIndices[fields[1]] = idx
				data.materials = append(data.materials, mtlMaterial{name: fields[1]})
			}
			beginMesh(idx)
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: line %d: face needs at least three corners", ErrParse, lineNo+1)
			}
			if current == nil {
				beginMesh(0)
			}

			corners := make([]uint32, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				idx, ok := cornerIndex[ref]
				if !ok {
					vtx, err := resolveCorner(ref, positions, texCoords, normals)
					if err != nil {
						return nil, fmt.Errorf("%w: line %d: %v", ErrParse, lineNo+1, err)
					}
					idx = uint32(len(current.vertices))
					current.vertices = append(current.vertices, vtx)
					cornerIndex[ref] = idx
				}
				corners = append(corners, idx)
			}
			for i := 1; i+1 < len(corners); i++ {
				current.indices = append(current.indices, corners[0], corners[i], corners[i+1])
			}
		}
	}

	if len(data.meshes) == 0 {
		return nil, fmt.Errorf("%w: no face data", ErrParse)
	}
	if len(data.materials) == 0 {
		data.materials = append(data.materials, mtlMaterial{name: "default"})
	}
	return data, nil
}

// parseMTL parses a Wavefront MTL document, keeping only the fields the
// renderer consumes (material name and diffuse texture map).
//
// Parameters:
//   - source: the MTL document text
//
// Returns:
//   - []mtlMaterial: the parsed materials in declaration order
//   - error: an error wrapping ErrParse for malformed input
func parseMTL(source string) ([]mtlMaterial, error) {
	var materials []mtlMaterial
	var current *mtlMaterial

	for lineNo, line := range strings.Split(source, "\n") {
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "newmtl":
			if len(fields) < 2 {
				return nil, fmt.Errorf("%w: line %d: newmtl needs a name", ErrParse, lineNo+1)
			}
			materials = append(materials, mtlMaterial{name: fields[1]})
			current = &materials[len(materials)-1]
		case "map_Kd":
			if current == nil {
				return nil, fmt.Errorf("%w: line %d: map_Kd before newmtl", ErrParse, lineNo+1)
			}
			if len(fields) < 2 {
				return nil, fmt.Errorf("%w: line %d: map_Kd needs a file", ErrParse, lineNo+1)
			}
			current.diffuseMap = fields[len(fields)-1]
		}
	}

	return materials, nil
}

// resolveMaterials replaces the OBJ's usemtl-order material stubs with the
// matching MTL entries. Names referenced by the OBJ but missing from the MTL
// libraries keep their stub (no diffuse map → fallback texture at upload).
func (d *objData) resolveMaterials(libs []mtlMaterial) {
	byName := make(map[string]mtlMaterial, len(libs))
	for _, m := range libs {
		byName[m.name] = m
	}
	for i := range d.materials {
		if resolved, ok := byName[d.materials[i].name]; ok {
			d.materials[i] = resolved
		}
	}
}

// resolveCorner converts one face corner reference ("v", "v/vt", "v//vn",
// "v/vt/vn", 1-based, negatives relative to the end) into a packed vertex.
func resolveCorner(ref string, positions [][3]float32, texCoords [][2]float32, normals [][3]float32) (model.ModelVertex, error) {
	var vtx model.ModelVertex

	parts := strings.Split(ref, "/")
	if len(parts) == 0 || parts[0] == "" {
		return vtx, fmt.Errorf("empty vertex reference %q", ref)
	}

	pi, err := resolveIndex(parts[0], len(positions))
	if err != nil {
		return vtx, err
	}
	vtx.Position = positions[pi]

	if len(parts) > 1 && parts[1] != "" {
		ti, err := resolveIndex(parts[1], len(texCoords))
		if err != nil {
			return vtx, err
		}
		vtx.TexCoords = texCoords[ti]
	}
	if len(parts) > 2 && parts[2] != "" {
		ni, err := resolveIndex(parts[2], len(normals))
		if err != nil {
			return vtx, err
		}
		vtx.Normal = normals[ni]
	}
	return vtx, nil
}

func resolveIndex(field string, count int) (int, error) {
	raw, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("bad index %q", field)
	}
	idx := raw - 1
	if raw < 0 {
		idx = count + raw
	}
	if idx < 0 || idx >= count {
		return 0, fmt.Errorf("index %d out of range (count %d)", raw, count)
	}
	return idx, nil
}

func parseFloat(field string) (float32, error) {
	v, err := strconv.ParseFloat(field, 32)
	return float32(v), err
}

func parseFloats3(fields []string) ([3]float32, error) {
	var out [3]float32
	if len(fields) < 3 {
		return out, fmt.Errorf("need three components, got %d", len(fields))
	}
	for i := range 3 {
		v, err := parseFloat(fields[i])
		if err != nil {
			return out, fmt.Errorf("bad component %q", fields[i])
		}
		out[i] = v
	}
	return out, nil
}
