package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithPosition sets the initial eye position.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - CameraControllerOption: functional option to set the position
func WithPosition(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.position = [3]float32{x, y, z}
	}
}

// WithTarget sets the look-at point.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - CameraControllerOption: functional option to set the target
func WithTarget(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.target = [3]float32{x, y, z}
	}
}

// WithSpeed sets the movement speed in units per second.
//
// Parameters:
//   - speed: the movement speed
//
// Returns:
//   - CameraControllerOption: functional option to set the speed
func WithSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.speed = speed
	}
}

// WithZoomSpeed sets the scroll zoom speed multiplier.
//
// Parameters:
//   - zoomSpeed: units moved per scroll step
//
// Returns:
//   - CameraControllerOption: functional option to set the zoom speed
func WithZoomSpeed(zoomSpeed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomSpeed = zoomSpeed
	}
}

// WithRadiusBounds sets the zoom distance clamp range.
//
// Parameters:
//   - minRadius: closest allowed distance to the target
//   - maxRadius: farthest allowed distance from the target
//
// Returns:
//   - CameraControllerOption: functional option to set the bounds
func WithRadiusBounds(minRadius, maxRadius float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minRadius = minRadius
		cc.maxRadius = maxRadius
	}
}
