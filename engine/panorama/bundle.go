package panorama

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/camera"
)

// Bundle owns the GPU resources of one mounted panorama: the sphere mesh, the camera uniform
// and, once loaded, the texture. It is created on mount and released as a whole before the
// next scene's bundle is built.
type Bundle struct {
	device Device
	label  string
	cam    camera.Camera

	mesh          Handle
	cameraUniform Handle
	texture       Handle
	released      bool
}

// NewBundle uploads geometry and allocates the camera uniform on device.
// On failure every resource created so far is released.
//
// Parameters:
//   - device: the device to create resources on
//   - label: prefix for resource debug labels
//   - geometry: the sphere to upload
//   - cam: the camera whose matrices feed the uniform
//
// Returns:
//   - *Bundle: the new bundle without a texture
//   - error: error if any resource could not be created
func NewBundle(device Device, label string, geometry Geometry, cam camera.Camera) (*Bundle, error) {
	b := &Bundle{device: device, label: label, cam: cam}

	mesh, err := device.CreateMesh(label+"_sphere", geometry)
	if err != nil {
		return nil, fmt.Errorf("create sphere mesh: %w", err)
	}
	b.mesh = mesh

	uniform, err := device.CreateCameraUniform(label + "_camera")
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("create camera uniform: %w", err)
	}
	b.cameraUniform = uniform
	return b, nil
}

// Camera returns the camera rendered by this bundle.
func (b *Bundle) Camera() camera.Camera {
	return b.cam
}

// HasTexture reports whether a panorama texture has been attached.
func (b *Bundle) HasTexture() bool {
	return b.texture != nil
}

// SetTexture uploads pixels as the sphere texture, releasing any previous texture.
//
// Parameters:
//   - texture: decoded RGBA pixels
//
// Returns:
//   - error: error if the bundle is released or the upload fails
func (b *Bundle) SetTexture(texture common.TextureStagingData) error {
	if b.released {
		return fmt.Errorf("bundle %s already released", b.label)
	}
	h, err := b.device.CreateTexture(b.label+"_panorama", texture)
	if err != nil {
		return fmt.Errorf("create panorama texture: %w", err)
	}
	if b.texture != nil {
		b.texture.Release()
	}
	b.texture = h
	return nil
}

// Render updates the camera, uploads its uniform and draws one frame.
//
// Returns:
//   - error: error if the uniform write or the frame fails
func (b *Bundle) Render() error {
	if b.released {
		return nil
	}
	b.cam.Update()
	if err := b.device.WriteCameraUniform(b.cameraUniform, b.cam.Uniform()); err != nil {
		return fmt.Errorf("write camera uniform: %w", err)
	}
	return b.device.Render(Frame{
		Mesh:    b.mesh,
		Texture: b.texture,
		Camera:  b.cameraUniform,
	})
}

// Release frees every resource owned by the bundle. Safe to call more than once.
func (b *Bundle) Release() {
	if b.released {
		return
	}
	b.released = true
	for _, h := range []Handle{b.texture, b.cameraUniform, b.mesh} {
		if h != nil {
			h.Release()
		}
	}
	b.texture, b.cameraUniform, b.mesh = nil, nil, nil
}
