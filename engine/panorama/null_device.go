package panorama

import (
	"errors"
	"sync"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/camera"
)

// ErrInvalidTexture is returned when staging data does not describe a usable image.
var ErrInvalidTexture = errors.New("invalid texture staging data")

// NullDevice is a Device that keeps no GPU state. It backs the headless runner and tests,
// recording the frames it is asked to draw.
type NullDevice struct {
	mu *sync.Mutex

	frames       int
	texturedDraw int
	width        int
	height       int
	lastUniform  camera.GPUCameraUniform
}

var _ Device = &NullDevice{}

// NewNullDevice creates a NullDevice.
func NewNullDevice() *NullDevice {
	return &NullDevice{mu: &sync.Mutex{}}
}

type nullHandle struct {
	label string
}

func (h *nullHandle) Label() string { return h.label }
func (h *nullHandle) Release()      {}

func (d *NullDevice) CreateMesh(label string, geometry Geometry) (Handle, error) {
	if len(geometry.Indices) == 0 {
		return nil, errors.New("empty geometry")
	}
	return &nullHandle{label: label}, nil
}

func (d *NullDevice) CreateTexture(label string, texture common.TextureStagingData) (Handle, error) {
	if !texture.Valid() {
		return nil, ErrInvalidTexture
	}
	return &nullHandle{label: label}, nil
}

func (d *NullDevice) CreateCameraUniform(label string) (Handle, error) {
	return &nullHandle{label: label}, nil
}

func (d *NullDevice) WriteCameraUniform(handle Handle, uniform camera.GPUCameraUniform) error {
	if _, ok := handle.(*nullHandle); !ok {
		return errors.New("camera uniform handle not created by this device")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastUniform = uniform
	return nil
}

func (d *NullDevice) Render(frame Frame) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frames++
	if frame.Texture != nil {
		d.texturedDraw++
	}
	return nil
}

func (d *NullDevice) Resize(width, height int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.width, d.height = width, height
}

// Frames returns the number of frames rendered and how many of them drew a textured sphere.
func (d *NullDevice) Frames() (total, textured int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames, d.texturedDraw
}

// Size returns the last size passed to Resize.
func (d *NullDevice) Size() (width, height int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.width, d.height
}

// LastUniform returns the most recently written camera block.
func (d *NullDevice) LastUniform() camera.GPUCameraUniform {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastUniform
}
