// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

// TextureStagingData holds RGBA pixel data for a texture pending GPU upload.
// Produced by the asset loader and consumed when creating GPU textures.
type TextureStagingData struct {
	// Pixels is the byte slice representing the actual pixel data for the texture. It should be in RGBA format, with 4 bytes per pixel.
	Pixels []byte
	// Width is the width of the texture in pixels. This is required to correctly create the GPU texture and interpret the pixel data.
	Width uint32
	// Height is the height of the texture in pixels. This is required to correctly create the GPU texture and interpret the pixel data.
	Height uint32
}

// DecodeImage decodes PNG or JPEG bytes to raw RGBA staging data.
// Reference: https://pkg.go.dev/image
//
// Parameters:
//   - data: raw image file bytes
//
// Returns:
//   - TextureStagingData: decoded RGBA pixels with dimensions
//   - error: error if decoding fails
func DecodeImage(data []byte) (TextureStagingData, error) {
	if len(data) == 0 {
		return TextureStagingData{}, fmt.Errorf("image data is empty")
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return TextureStagingData{}, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)

	return TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}, nil
}

// ResizeImage scales staging data to the given dimensions using approximate
// bi-linear interpolation. Returns the input unchanged when the dimensions
// already match.
//
// Parameters:
//   - src: source RGBA staging data
//   - width, height: target dimensions in pixels
//
// Returns:
//   - TextureStagingData: scaled RGBA pixels
func ResizeImage(src TextureStagingData, width, height uint32) TextureStagingData {
	if src.Width == width && src.Height == height {
		return src
	}

	srcImg := &image.RGBA{
		Pix:    src.Pixels,
		Stride: int(src.Width) * 4,
		Rect:   image.Rect(0, 0, int(src.Width), int(src.Height)),
	}
	dst := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	draw.ApproxBiLinear.Scale(dst, dst.Rect, srcImg, srcImg.Rect, draw.Src, nil)

	return TextureStagingData{
		Pixels: dst.Pix,
		Width:  width,
		Height: height,
	}
}
