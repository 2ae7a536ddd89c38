package panorama

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/camera"
)

// Counts is a snapshot of live resources created through a Tracker.
type Counts struct {
	Meshes   int
	Textures int
	Cameras  int
}

// Total returns the number of live handles of any kind.
func (c Counts) Total() int {
	return c.Meshes + c.Textures + c.Cameras
}

type resourceKind int

const (
	kindMesh resourceKind = iota
	kindTexture
	kindCamera
)

// Tracker wraps a Device and counts the handles it has created but not yet released.
// One Tracker belongs to one viewer.
type Tracker struct {
	mu    *sync.Mutex
	inner Device
	live  Counts
}

var _ Device = &Tracker{}

// NewTracker wraps device with resource accounting.
//
// Parameters:
//   - device: the device to wrap
//
// Returns:
//   - *Tracker: the accounting wrapper
func NewTracker(device Device) *Tracker {
	return &Tracker{
		mu:    &sync.Mutex{},
		inner: device,
	}
}

// Live returns the current number of unreleased handles.
func (t *Tracker) Live() Counts {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.live
}

// Unwrap returns the wrapped device.
func (t *Tracker) Unwrap() Device {
	return t.inner
}

func (t *Tracker) CreateMesh(label string, geometry Geometry) (Handle, error) {
	h, err := t.inner.CreateMesh(label, geometry)
	if err != nil {
		return nil, err
	}
	return t.track(h, kindMesh), nil
}

func (t *Tracker) CreateTexture(label string, texture common.TextureStagingData) (Handle, error) {
	h, err := t.inner.CreateTexture(label, texture)
	if err != nil {
		return nil, err
	}
	return t.track(h, kindTexture), nil
}

func (t *Tracker) CreateCameraUniform(label string) (Handle, error) {
	h, err := t.inner.CreateCameraUniform(label)
	if err != nil {
		return nil, err
	}
	return t.track(h, kindCamera), nil
}

func (t *Tracker) WriteCameraUniform(handle Handle, uniform camera.GPUCameraUniform) error {
	return t.inner.WriteCameraUniform(unwrapHandle(handle), uniform)
}

func (t *Tracker) Render(frame Frame) error {
	return t.inner.Render(Frame{
		Mesh:    unwrapHandle(frame.Mesh),
		Texture: unwrapHandle(frame.Texture),
		Camera:  unwrapHandle(frame.Camera),
	})
}

func (t *Tracker) Resize(width, height int) {
	t.inner.Resize(width, height)
}

func (t *Tracker) track(h Handle, kind resourceKind) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.adjust(kind, 1)
	return &trackedHandle{inner: h, kind: kind, owner: t}
}

// adjust must be called with the mutex held.
func (t *Tracker) adjust(kind resourceKind, delta int) {
	switch kind {
	case kindMesh:
		t.live.Meshes += delta
	case kindTexture:
		t.live.Textures += delta
	case kindCamera:
		t.live.Cameras += delta
	}
}

type trackedHandle struct {
	inner    Handle
	kind     resourceKind
	owner    *Tracker
	released bool
}

func (h *trackedHandle) Label() string {
	return h.inner.Label()
}

func (h *trackedHandle) Release() {
	h.owner.mu.Lock()
	if h.released {
		h.owner.mu.Unlock()
		return
	}
	h.released = true
	h.owner.adjust(h.kind, -1)
	h.owner.mu.Unlock()

	h.inner.Release()
}

func unwrapHandle(h Handle) Handle {
	if th, ok := h.(*trackedHandle); ok {
		return th.inner
	}
	return h
}
