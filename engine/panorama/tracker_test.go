package panorama

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/camera"
)

func texture(w, h uint32) common.TextureStagingData {
	return common.TextureStagingData{Pixels: make([]byte, w*h*4), Width: w, Height: h}
}

func TestTracker_CountsAndIdempotentRelease(t *testing.T) {
	tr := NewTracker(NewNullDevice())
	mesh, err := tr.CreateMesh("m", NewSphere(10, 8, 4))
	if err != nil {
		t.Fatal(err)
	}
	tex, err := tr.CreateTexture("t", texture(2, 1))
	if err != nil {
		t.Fatal(err)
	}
	cam, err := tr.CreateCameraUniform("c")
	if err != nil {
		t.Fatal(err)
	}
	if got := tr.Live(); got != (Counts{Meshes: 1, Textures: 1, Cameras: 1}) {
		t.Errorf("live = %+v", got)
	}

	tex.Release()
	tex.Release()
	if got := tr.Live(); got.Textures != 0 || got.Total() != 2 {
		t.Errorf("after double release live = %+v", got)
	}
	mesh.Release()
	cam.Release()
	if got := tr.Live().Total(); got != 0 {
		t.Errorf("live total = %d, want 0", got)
	}
}

func TestTracker_FailedCreateNotCounted(t *testing.T) {
	tr := NewTracker(NewNullDevice())
	if _, err := tr.CreateTexture("bad", common.TextureStagingData{}); !errors.Is(err, ErrInvalidTexture) {
		t.Fatalf("err = %v, want ErrInvalidTexture", err)
	}
	if got := tr.Live().Total(); got != 0 {
		t.Errorf("live total = %d, want 0", got)
	}
}

func TestBundle_Lifecycle(t *testing.T) {
	dev := NewNullDevice()
	tr := NewTracker(dev)
	cam := camera.NewCamera()

	b, err := NewBundle(tr, "view", NewSphere(500, 60, 40), cam)
	if err != nil {
		t.Fatal(err)
	}
	if b.HasTexture() {
		t.Error("new bundle already textured")
	}
	if err := b.Render(); err != nil {
		t.Fatal(err)
	}
	if err := b.SetTexture(texture(4, 2)); err != nil {
		t.Fatal(err)
	}
	if err := b.SetTexture(texture(4, 2)); err != nil {
		t.Fatal(err)
	}
	if got := tr.Live(); got != (Counts{Meshes: 1, Textures: 1, Cameras: 1}) {
		t.Errorf("live after texture swap = %+v", got)
	}
	if err := b.Render(); err != nil {
		t.Fatal(err)
	}
	if total, textured := dev.Frames(); total != 2 || textured != 1 {
		t.Errorf("frames = (%d, %d), want (2, 1)", total, textured)
	}

	b.Release()
	b.Release()
	if got := tr.Live().Total(); got != 0 {
		t.Errorf("live after release = %d, want 0", got)
	}
	if err := b.SetTexture(texture(2, 1)); err == nil {
		t.Error("SetTexture on a released bundle succeeded")
	}
}

type failingCameraDevice struct {
	*NullDevice
}

func (failingCameraDevice) CreateCameraUniform(string) (Handle, error) {
	return nil, errors.New("out of memory")
}

func TestNewBundle_RollsBackOnFailure(t *testing.T) {
	tr := NewTracker(failingCameraDevice{NewNullDevice()})
	if _, err := NewBundle(tr, "view", NewSphere(500, 8, 4), camera.NewCamera()); err == nil {
		t.Fatal("expected an error")
	}
	if got := tr.Live().Total(); got != 0 {
		t.Errorf("live after failed bundle = %d, want 0", got)
	}
}
