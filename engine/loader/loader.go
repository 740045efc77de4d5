// package loader reads models and textures from a configured asset source and
// uploads them to the GPU. All loading happens before the frame loop starts;
// the loader is not used mid-frame.
package loader

import (
	"context"
	"fmt"
	"path"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/mjolnir-gfx/mjolnir/common"
	"github.com/mjolnir-gfx/mjolnir/engine/model"
	"github.com/mjolnir-gfx/mjolnir/engine/texture"
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	src    Source
	device *wgpu.Device
	queue  *wgpu.Queue

	modelCache map[string]*model.Model

	workers int
}

// Loader reads OBJ models and their textures from a Source and builds
// GPU-ready engine models. Loaded models are cached by asset name.
type Loader interface {
	// LoadModel reads and parses an OBJ file, its MTL libraries, and the
	// referenced diffuse textures, and uploads everything to the GPU. The
	// result is cached; a second call with the same name returns the cached
	// model.
	//
	// Parameters:
	//   - ctx: context for cancellation
	//   - name: the OBJ asset name, relative to the source root
	//
	// Returns:
	//   - *model.Model: the loaded model
	//   - error: wraps ErrNotFound or ErrParse on failure
	LoadModel(ctx context.Context, name string) (*model.Model, error)

	// LoadModels loads several models concurrently on a worker pool and
	// waits for all of them. The result slice matches the order of names.
	//
	// Parameters:
	//   - ctx: context for cancellation
	//   - names: the OBJ asset names to load
	//
	// Returns:
	//   - []*model.Model: the loaded models, in input order
	//   - error: the first load failure, if any
	LoadModels(ctx context.Context, names []string) ([]*model.Model, error)

	// LoadTexture reads and decodes an image asset and uploads it as an
	// RGBA texture.
	//
	// Parameters:
	//   - ctx: context for cancellation
	//   - name: the image asset name, relative to the source root
	//
	// Returns:
	//   - *texture.Texture: the uploaded texture
	//   - error: wraps ErrNotFound or ErrParse on failure
	LoadTexture(ctx context.Context, name string) (*texture.Texture, error)

	// Get retrieves a cached model by name. Returns nil if not loaded.
	//
	// Parameters:
	//   - name: the asset name used to load the model
	//
	// Returns:
	//   - *model.Model: the cached model or nil
	Get(name string) *model.Model
}

var _ Loader = &loader{}

// NewLoader creates a Loader reading from the given source and uploading to
// the given device.
//
// Parameters:
//   - src: the asset source (file or HTTP, selected by configuration)
//   - device: the GPU device
//   - queue: the GPU queue
//   - options: functional options to configure the loader
//
// Returns:
//   - Loader: the newly created loader
func NewLoader(src Source, device *wgpu.Device, queue *wgpu.Queue, options ...LoaderBuilderOption) Loader {
	l := &loader{
		src:        src,
		device:     device,
		queue:      queue,
		modelCache: make(map[string]*model.Model),
		workers:    max(runtime.NumCPU()-1, 1),
	}
	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) LoadModel(ctx context.Context, name string) (*model.Model, error) {
	l.mu.RLock()
	if cached, ok := l.modelCache[name]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	source, err := l.src.LoadString(ctx, name)
	if err != nil {
		return nil, err
	}

	data, err := parseOBJ(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	// MTL libraries resolve relative to the OBJ's own directory.
	dir := path.Dir(name)
	var libMaterials []mtlMaterial
	for _, lib := range data.mtlLibs {
		mtlSource, err := l.src.LoadString(ctx, path.Join(dir, lib))
		if err != nil {
			return nil, fmt.Errorf("failed to load material library %s: %w", lib, err)
		}
		parsed, err := parseMTL(mtlSource)
		if err != nil {
			return nil, fmt.Errorf("failed to parse material library %s: %w", lib, err)
		}
		libMaterials = append(libMaterials, parsed...)
	}
	data.resolveMaterials(libMaterials)

	m, err := l.upload(ctx, name, dir, data)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.modelCache[name] = m
	l.mu.Unlock()

	return m, nil
}

func (l *loader) LoadModels(ctx context.Context, names []string) ([]*model.Model, error) {
	results := make([]*model.Model, len(names))
	errs := make([]error, len(names))

	pool := worker.NewDynamicWorkerPool(l.workers, 256, 1*time.Second)

	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		idx, n := i, name
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				results[idx], errs[idx] = l.LoadModel(ctx, n)
				return nil, nil
			},
		})
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", names[i], err)
		}
	}
	return results, nil
}

func (l *loader) LoadTexture(ctx context.Context, name string) (*texture.Texture, error) {
	data, err := l.src.LoadBinary(ctx, name)
	if err != nil {
		return nil, err
	}

	staging, err := common.DecodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w: %v", name, ErrParse, err)
	}
	staging = clampStaging(staging, maxTextureDim)

	tex, err := texture.FromStagingData(l.device, l.queue, staging, name)
	if err != nil {
		return nil, fmt.Errorf("failed to upload texture %s: %w", name, err)
	}
	return tex, nil
}

// maxTextureDim is the largest texture edge uploaded as-is; WebGPU guarantees
// 2D texture support only up to 8192, and half of that is plenty for diffuse
// maps.
const maxTextureDim = 4096

// clampStaging downscales oversized images to fit within limit on both axes,
// preserving aspect ratio. Images already within the limit pass through
// untouched.
func clampStaging(staging common.TextureStagingData, limit uint32) common.TextureStagingData {
	if staging.Width <= limit && staging.Height <= limit {
		return staging
	}

	width, height := staging.Width, staging.Height
	if width >= height {
		height = max(height*limit/width, 1)
		width = limit
	} else {
		width = max(width*limit/height, 1)
		height = limit
	}
	return common.ResizeImage(staging, width, height)
}

func (l *loader) Get(name string) *model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[name]
}

// upload turns parsed CPU mesh data into GPU buffers and textures.
func (l *loader) upload(ctx context.Context, name, dir string, data *objData) (*model.Model, error) {
	m := &model.Model{}

	for _, mat := range data.materials {
		var tex *texture.Texture
		var err error
		if mat.diffuseMap != "" {
			tex, err = l.LoadTexture(ctx, path.Join(dir, mat.diffuseMap))
		} else {
			tex, err = l.fallbackTexture(mat.name)
		}
		if err != nil {
			return nil, err
		}
		m.Materials = append(m.Materials, model.Material{
			Name:           mat.name,
			DiffuseTexture: tex,
		})
	}

	for _, om := range data.meshes {
		if len(om.indices) == 0 {
			continue
		}

		vertexBuffer, err := l.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label:            fmt.Sprintf("%s %s Vertex Buffer", name, om.name),
			Size:             uint64(len(common.SliceToBytes(om.vertices))),
			Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
			MappedAtCreation: false,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create vertex buffer for %s: %w", name, err)
		}
		l.queue.WriteBuffer(vertexBuffer, 0, common.SliceToBytes(om.vertices))

		indexBuffer, err := l.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label:            fmt.Sprintf("%s %s Index Buffer", name, om.name),
			Size:             uint64(len(om.indices) * 4),
			Usage:            wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
			MappedAtCreation: false,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create index buffer for %s: %w", name, err)
		}
		l.queue.WriteBuffer(indexBuffer, 0, common.SliceToBytes(om.indices))

		m.Meshes = append(m.Meshes, model.Mesh{
			Name:          om.name,
			VertexBuffer:  vertexBuffer,
			IndexBuffer:   indexBuffer,
			NumElements:   uint32(len(om.indices)),
			MaterialIndex: om.materialIndex,
		})
	}

	return m, nil
}

// fallbackTexture uploads a 1x1 white texture for materials without a diffuse
// map, so every material can bind a texture view.
func (l *loader) fallbackTexture(materialName string) (*texture.Texture, error) {
	staging := common.TextureStagingData{
		Pixels: []byte{255, 255, 255, 255},
		Width:  1,
		Height: 1,
	}
	tex, err := texture.FromStagingData(l.device, l.queue, staging, materialName+" Fallback")
	if err != nil {
		return nil, fmt.Errorf("failed to create fallback texture for %s: %w", materialName, err)
	}
	return tex, nil
}
