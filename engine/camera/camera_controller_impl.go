package camera

import (
	"sync"

	"github.com/chewxy/math32"
	"github.com/mjolnir-gfx/mjolnir/common"
)

// cameraControllerImpl is the single implementation of CameraController.
// It keeps an eye/target pair and four held-key flags. Update derives the
// forward and right basis vectors from target - eye each call, so movement
// always follows the current view direction.
type cameraControllerImpl struct {
	mu *sync.Mutex

	position [3]float32
	target   [3]float32

	speed     float32
	zoomSpeed float32

	minRadius float32
	maxRadius float32

	forwardPressed  bool
	backwardPressed bool
	leftPressed     bool
	rightPressed    bool
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new camera controller with sensible defaults.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:       &sync.Mutex{},
		position: [3]float32{0, 5, 10},
		target:   [3]float32{0, 0, 0},

		speed:     4.0,
		zoomSpeed: 0.5,

		minRadius: 0.5,
		maxRadius: 100.0,
	}

	for _, option := range options {
		option(cc)
	}

	return cc
}

func (cc *cameraControllerImpl) Position() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position[0], cc.position[1], cc.position[2]
}

func (cc *cameraControllerImpl) SetPosition(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position = [3]float32{x, y, z}
}

func (cc *cameraControllerImpl) Target() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target[0], cc.target[1], cc.target[2]
}

func (cc *cameraControllerImpl) SetTarget(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = [3]float32{x, y, z}
}

func (cc *cameraControllerImpl) ProcessKeyDown(keyCode uint32) bool {
	return cc.setPressed(keyCode, true)
}

func (cc *cameraControllerImpl) ProcessKeyUp(keyCode uint32) bool {
	return cc.setPressed(keyCode, false)
}

func (cc *cameraControllerImpl) setPressed(keyCode uint32, pressed bool) bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	switch keyCode {
	case common.KeyW, common.KeyUp:
		cc.forwardPressed = pressed
	case common.KeyS, common.KeyDown:
		cc.backwardPressed = pressed
	case common.KeyA, common.KeyLeft:
		cc.leftPressed = pressed
	case common.KeyD, common.KeyRight:
		cc.rightPressed = pressed
	default:
		return false
	}
	return true
}

func (cc *cameraControllerImpl) ProcessScroll(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	fx := cc.target[0] - cc.position[0]
	fy := cc.target[1] - cc.position[1]
	fz := cc.target[2] - cc.position[2]
	radius := math32.Sqrt(fx*fx + fy*fy + fz*fz)
	if radius == 0 {
		return
	}

	newRadius := radius - delta*cc.zoomSpeed
	if newRadius < cc.minRadius {
		newRadius = cc.minRadius
	}
	if newRadius > cc.maxRadius {
		newRadius = cc.maxRadius
	}

	scale := newRadius / radius
	cc.position[0] = cc.target[0] - fx*scale
	cc.position[1] = cc.target[1] - fy*scale
	cc.position[2] = cc.target[2] - fz*scale
}

func (cc *cameraControllerImpl) Update(dt float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	step := cc.speed * dt

	fx := cc.target[0] - cc.position[0]
	fy := cc.target[1] - cc.position[1]
	fz := cc.target[2] - cc.position[2]
	forwardMag := math32.Sqrt(fx*fx + fy*fy + fz*fz)
	if forwardMag == 0 {
		return
	}
	nx, ny, nz := fx/forwardMag, fy/forwardMag, fz/forwardMag

	// Moving forward stops short of the target to avoid flipping through it.
	// The guard compares against speed, not the dt-scaled step, so the eye
	// holds a full speed-radius away from the target.
	if cc.forwardPressed && forwardMag > cc.speed {
		cc.position[0] += nx * step
		cc.position[1] += ny * step
		cc.position[2] += nz * step
	}
	if cc.backwardPressed {
		cc.position[0] -= nx * step
		cc.position[1] -= ny * step
		cc.position[2] -= nz * step
	}

	// right = up × forward with worldUp = (0, 1, 0)
	rx := nz
	rz := -nx

	// Recompute the radius in case forward/backward moved the eye.
	fx = cc.target[0] - cc.position[0]
	fy = cc.target[1] - cc.position[1]
	fz = cc.target[2] - cc.position[2]
	forwardMag = math32.Sqrt(fx*fx + fy*fy + fz*fz)

	// Strafing orbits the target: the new offset is renormalized to the
	// current radius so the eye stays on the same circle.
	orbit := func(sign float32) {
		ox := fx + rx*step*sign
		oy := fy
		oz := fz + rz*step*sign
		mag := math32.Sqrt(ox*ox + oy*oy + oz*oz)
		if mag == 0 {
			return
		}
		cc.position[0] = cc.target[0] - ox/mag*forwardMag
		cc.position[1] = cc.target[1] - oy/mag*forwardMag
		cc.position[2] = cc.target[2] - oz/mag*forwardMag
	}
	if cc.rightPressed {
		orbit(1)
	}
	if cc.leftPressed {
		orbit(-1)
	}
}

func (cc *cameraControllerImpl) Speed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.speed
}
