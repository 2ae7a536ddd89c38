package camera

import (
	"sync"
)

// LookSource supplies the point the camera looks at for a given viewing radius.
// The orientation controller satisfies this interface.
type LookSource interface {
	LookTarget(radius float32) (x, y, z float32)
}

// lookController is the implementation of CameraController.
// The eye stays fixed at the sphere center plus an optional offset while the target
// follows the attached LookSource on a sphere of the configured radius.
type lookController struct {
	mu *sync.Mutex

	source LookSource
	radius float32
	offset [3]float32
}

// CameraController defines the interface for the first-person look controller.
// Controllers own positional state (position, target). Camera reads from the controller
// and computes view/projection matrices.
type CameraController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float32)

	// Target returns the look-at point for the current orientation.
	//
	// Returns:
	//   - x, y, z: world-space target position
	Target() (x, y, z float32)

	// SetOffset moves the eye away from the sphere center.
	//
	// Parameters:
	//   - x, y, z: offset from the origin
	SetOffset(x, y, z float32)

	// Radius returns the distance of the look target from the origin.
	//
	// Returns:
	//   - float32: the look radius
	Radius() float32

	// SetSource replaces the LookSource driving the target.
	//
	// Parameters:
	//   - source: the new look source, nil looks down +X
	SetSource(source LookSource)
}

var _ CameraController = &lookController{}

// NewCameraController creates a look controller reading its target from source.
// Defaults to a look radius of 500 and an eye at the origin.
//
// Parameters:
//   - source: the orientation that drives the target
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(source LookSource, options ...CameraControllerOption) CameraController {
	cc := &lookController{
		mu:     &sync.Mutex{},
		source: source,
		radius: 500,
	}
	for _, option := range options {
		option(cc)
	}
	return cc
}

func (cc *lookController) Position() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.offset[0], cc.offset[1], cc.offset[2]
}

func (cc *lookController) Target() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if cc.source == nil {
		return cc.radius, 0, 0
	}
	return cc.source.LookTarget(cc.radius)
}

func (cc *lookController) SetOffset(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.offset = [3]float32{x, y, z}
}

func (cc *lookController) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *lookController) SetSource(source LookSource) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.source = source
}
