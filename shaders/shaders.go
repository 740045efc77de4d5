// Package shaders holds the embedded WGSL sources for the render pipelines.
package shaders

import _ "embed"

// Model is the instanced textured phong shader (vertex + fragment).
//
//go:embed model.wgsl
var Model string

// Light is the unlit light-marker shader (vertex + fragment).
//
//go:embed light.wgsl
var Light string
