package pass

import "github.com/cogentcore/webgpu/wgpu"

type PhongPassOption func(*phongPassImpl)

// WithAmbient sets the ambient light color.
//
// Parameters:
//   - r, g, b, a: ambient color components
//
// Returns:
//   - PhongPassOption: a function that sets the ambient color
func WithAmbient(r, g, b, a float32) PhongPassOption {
	return func(p *phongPassImpl) {
		p.ambient = [4]float32{r, g, b, a}
	}
}

// WithClearColor sets the render pass clear color.
//
// Parameters:
//   - r, g, b, a: clear color components
//
// Returns:
//   - PhongPassOption: a function that sets the clear color
func WithClearColor(r, g, b, a float64) PhongPassOption {
	return func(p *phongPassImpl) {
		p.clearColor = wgpu.Color{R: r, G: g, B: b, A: a}
	}
}

// WithLight sets the initial point light state.
//
// Parameters:
//   - light: the light position and color
//
// Returns:
//   - PhongPassOption: a function that sets the light
func WithLight(light LightUniform) PhongPassOption {
	return func(p *phongPassImpl) {
		p.light = light
	}
}

// WithLightMarker toggles drawing node 0's model at the light position.
//
// Parameters:
//   - enabled: whether to draw the light marker
//
// Returns:
//   - PhongPassOption: a function that toggles the light marker
func WithLightMarker(enabled bool) PhongPassOption {
	return func(p *phongPassImpl) {
		p.drawLight = enabled
	}
}
