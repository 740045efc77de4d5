// package texture wraps wgpu texture creation for the two kinds of textures
// the renderer needs: sampled color textures uploaded from image data, and the
// depth attachment recreated on every resize.
package texture

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/mjolnir-gfx/mjolnir/common"
)

// DepthFormat is the texture format used for the depth attachment.
const DepthFormat = wgpu.TextureFormatDepth32Float

// Texture bundles a GPU texture with its view and sampler.
type Texture struct {
	// Texture is the underlying GPU texture.
	Texture *wgpu.Texture

	// View is the full-texture view used in bind groups and attachments.
	View *wgpu.TextureView

	// Sampler is the sampler paired with this texture.
	Sampler *wgpu.Sampler
}

// FromStagingData creates an RGBA texture from decoded pixel data and uploads
// the pixels through the queue. The texture uses sRGB storage with a
// linear/repeat sampler.
//
// Parameters:
//   - device: the GPU device
//   - queue: the queue used for the pixel upload
//   - staging: decoded RGBA pixel data with dimensions
//   - label: debug label attached to the GPU objects
//
// Returns:
//   - *Texture: the created texture
//   - error: error if any GPU object creation fails
func FromStagingData(device *wgpu.Device, queue *wgpu.Queue, staging common.TextureStagingData, label string) (*Texture, error) {
	size := wgpu.Extent3D{
		Width:              staging.Width,
		Height:             staging.Height,
		DepthOrArrayLayers: 1,
	}

	tex, err := device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		Size:          size,
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, err
	}

	queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		staging.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  staging.Width * 4,
			RowsPerImage: staging.Height,
		},
		&size,
	)

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, err
	}

	samp, err := device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         label + " Sampler",
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMinClamp:   0.0,
		LodMaxClamp:   32.0,
		MaxAnisotropy: 1,
	})
	if err != nil {
		view.Release()
		tex.Release()
		return nil, err
	}

	return &Texture{Texture: tex, View: view, Sampler: samp}, nil
}

// NewDepthTexture creates a Depth32Float render attachment matching the
// surface dimensions. Recreated whenever the surface is reconfigured.
//
// Parameters:
//   - device: the GPU device
//   - width, height: attachment dimensions in pixels
//   - label: debug label attached to the GPU objects
//
// Returns:
//   - *Texture: the created depth texture
//   - error: error if any GPU object creation fails
func NewDepthTexture(device *wgpu.Device, width, height uint32, label string) (*Texture, error) {
	tex, err := device.CreateTexture(&wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        DepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, err
	}

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, err
	}

	samp, err := device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         label + " Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0.0,
		LodMaxClamp:   100.0,
		Compare:       wgpu.CompareFunctionLessEqual,
		MaxAnisotropy: 1,
	})
	if err != nil {
		view.Release()
		tex.Release()
		return nil, err
	}

	return &Texture{Texture: tex, View: view, Sampler: samp}, nil
}

// Release frees the GPU objects held by the texture. Safe to call on nil.
func (t *Texture) Release() {
	if t == nil {
		return
	}
	if t.Sampler != nil {
		t.Sampler.Release()
	}
	if t.View != nil {
		t.View.Release()
	}
	if t.Texture != nil {
		t.Texture.Release()
	}
}
