package engine

import (
	"github.com/mjolnir-gfx/mjolnir/engine/camera"
	"github.com/mjolnir-gfx/mjolnir/engine/pass"
)

// StateBuilderOption is a functional option for configuring a State.
// Use the With* functions to create options that are applied directly to the state instance.
type StateBuilderOption func(*State)

// WithCamera replaces the default camera and controller. Input callbacks are
// wired to whatever controller the state holds when NewState returns.
//
// Parameters:
//   - cam: the camera to render with
//   - ctrl: the controller driving it
//
// Returns:
//   - StateBuilderOption: option function to apply
func WithCamera(cam camera.Camera, ctrl camera.CameraController) StateBuilderOption {
	return func(s *State) {
		s.cam = cam
		s.controller = ctrl
	}
}

// WithPass replaces the default phong pass. The state takes ownership;
// Release frees it with the rest of the scene resources.
//
// Parameters:
//   - p: the pass to render with
//
// Returns:
//   - StateBuilderOption: option function to apply
func WithPass(p pass.PhongPass) StateBuilderOption {
	return func(s *State) {
		s.phong = p
	}
}
