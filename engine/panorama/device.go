package panorama

import (
	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/camera"
)

// Handle is an opaque GPU resource created by a Device.
// Release must be safe to call more than once.
type Handle interface {
	// Label returns the debug label the resource was created with.
	//
	// Returns:
	//   - string: the resource label
	Label() string

	// Release frees the GPU resources owned by the handle.
	Release()
}

// Frame is the set of handles drawn by a single Device.Render call.
// A nil Texture clears the surface without drawing the sphere.
type Frame struct {
	Mesh    Handle
	Texture Handle
	Camera  Handle
}

// Device is the GPU abstraction the viewer renders through.
// All methods are called from the frame loop.
type Device interface {
	// CreateMesh uploads the given geometry as vertex and index buffers.
	//
	// Parameters:
	//   - label: debug label for the GPU resources
	//   - geometry: the triangle list to upload
	//
	// Returns:
	//   - Handle: the mesh handle
	//   - error: error if the upload fails
	CreateMesh(label string, geometry Geometry) (Handle, error)

	// CreateTexture uploads RGBA pixels as a sampled 2D texture with its sampler and bind group.
	//
	// Parameters:
	//   - label: debug label for the GPU resources
	//   - texture: the decoded pixel data
	//
	// Returns:
	//   - Handle: the texture handle
	//   - error: error if the staging data is invalid or the upload fails
	CreateTexture(label string, texture common.TextureStagingData) (Handle, error)

	// CreateCameraUniform allocates the camera uniform buffer and its bind group.
	//
	// Parameters:
	//   - label: debug label for the GPU resources
	//
	// Returns:
	//   - Handle: the camera uniform handle
	//   - error: error if the allocation fails
	CreateCameraUniform(label string) (Handle, error)

	// WriteCameraUniform uploads the camera block to a handle created by CreateCameraUniform.
	//
	// Parameters:
	//   - handle: the camera uniform handle
	//   - uniform: the packed camera block
	//
	// Returns:
	//   - error: error if the handle does not belong to this device
	WriteCameraUniform(handle Handle, uniform camera.GPUCameraUniform) error

	// Render draws one frame and presents it.
	//
	// Parameters:
	//   - frame: the handles to draw
	//
	// Returns:
	//   - error: error if acquiring or presenting the surface fails
	Render(frame Frame) error

	// Resize reconfigures the drawable surface.
	//
	// Parameters:
	//   - width, height: the new size in pixels
	Resize(width, height int)
}

// Surface is what a viewer mounts onto: a drawable area and the device that draws on it.
type Surface struct {
	Width  int
	Height int
	Device Device
}

// Valid reports whether the surface can be mounted.
func (s Surface) Valid() bool {
	return s.Device != nil && s.Width > 0 && s.Height > 0
}
