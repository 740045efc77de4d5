package camera

// CameraController defines the interface for input-driven camera movement.
// Controllers own positional state (position, target). Camera reads from the
// controller and computes view/projection matrices. Input events only flip
// internal key state; Update integrates that state into the position.
type CameraController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float32)

	// SetPosition sets the camera's world-space position directly.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetPosition(x, y, z float32)

	// Target returns the look-at point.
	//
	// Returns:
	//   - x, y, z: world-space target position
	Target() (x, y, z float32)

	// SetTarget sets the look-at/pivot point.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetTarget(x, y, z float32)

	// ProcessKeyDown records a key press. Returns whether the key is one the
	// controller responds to.
	//
	// Parameters:
	//   - keyCode: the virtual key code
	//
	// Returns:
	//   - bool: true if the controller handled the key
	ProcessKeyDown(keyCode uint32) bool

	// ProcessKeyUp records a key release. Returns whether the key is one the
	// controller responds to.
	//
	// Parameters:
	//   - keyCode: the virtual key code
	//
	// Returns:
	//   - bool: true if the controller handled the key
	ProcessKeyUp(keyCode uint32) bool

	// ProcessScroll zooms the camera along its forward axis, clamped so the
	// eye never crosses the target or exceeds the maximum distance.
	//
	// Parameters:
	//   - delta: scroll amount (positive = zoom in)
	ProcessScroll(delta float32)

	// Update integrates the held-key state into the camera position.
	// Forward/backward move the eye along the view direction; left/right
	// rotate the eye around the target at constant radius.
	//
	// Parameters:
	//   - dt: elapsed time since the previous update, in seconds
	Update(dt float32)

	// Speed returns the movement speed in units per second.
	//
	// Returns:
	//   - float32: the movement speed
	Speed() float32
}
