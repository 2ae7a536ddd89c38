package tour

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-tour/common"
)

// fakeInput stores callbacks so tests can fire them.
type fakeInput struct {
	down   func(x, y float64)
	up     func(x, y float64)
	move   func(x, y float64)
	leave  func()
	scroll func(delta float32)
	key    func(keyCode uint32)
	resize func(width, height int)
}

func (f *fakeInput) SetMouseDownCallback(cb func(x, y float64))   { f.down = cb }
func (f *fakeInput) SetMouseUpCallback(cb func(x, y float64))     { f.up = cb }
func (f *fakeInput) SetMouseMoveCallback(cb func(x, y float64))   { f.move = cb }
func (f *fakeInput) SetMouseLeaveCallback(cb func())              { f.leave = cb }
func (f *fakeInput) SetScrollCallback(cb func(delta float32))     { f.scroll = cb }
func (f *fakeInput) SetKeyDownCallback(cb func(keyCode uint32))   { f.key = cb }
func (f *fakeInput) SetResizeCallback(cb func(width, height int)) { f.resize = cb }

func TestAttach_DrivesViewerAndDetachesOnUnmount(t *testing.T) {
	v, _ := newTestViewer(t)
	_, dev := mountTracked(t, v)
	in := &fakeInput{}
	v.Attach(in)

	in.down(0, 0)
	in.move(-50, 0)
	in.up(-50, 0)
	if got := v.Orientation().Longitude; got != 10 {
		t.Errorf("longitude = %v, want 10", got)
	}

	// one notch away from the user zooms in by 100px * 0.05
	in.scroll(1)
	if got := v.Orientation().FieldOfView; got != 70 {
		t.Errorf("fov = %v, want 70", got)
	}

	in.key(common.KeyI)
	if !v.State().ShowInfo {
		t.Error("info key not handled")
	}

	in.resize(640, 320)
	if w, h := dev.Size(); w != 640 || h != 320 {
		t.Errorf("size = %dx%d", w, h)
	}

	v.Unmount()
	if in.down != nil || in.scroll != nil || in.key != nil || in.resize != nil || in.leave != nil {
		t.Error("callbacks still attached after unmount")
	}
}

func TestHandleKey(t *testing.T) {
	closed := false
	v, _ := newTestViewer(t, WithCloseCallback(func() { closed = true }))

	cases := []struct {
		key   uint32
		check func() bool
	}{
		{common.KeyEqual, func() bool { return v.Orientation().FieldOfView == 65 }},
		{common.KeyKPAdd, func() bool { return v.Orientation().FieldOfView == 55 }},
		{common.KeyMinus, func() bool { return v.Orientation().FieldOfView == 65 }},
		{common.KeyKPSubtract, func() bool { return v.Orientation().FieldOfView == 75 }},
		{common.KeyC, func() bool { return !v.State().ShowCarousel }},
		{common.KeyM, func() bool { return !v.State().ShowFloorplan }},
		{common.KeyH, func() bool { return !v.State().ShowHotspots }},
		{common.KeyS, func() bool { return v.State().ShareURL != "" }},
		{common.Key1 + 2, func() bool { return v.CurrentScene().ID == "c" }},
		{common.KeyR, func() bool { return v.Orientation().FieldOfView == 75 }},
		{common.KeyEsc, func() bool { return closed }},
	}
	for _, tc := range cases {
		if !v.HandleKey(tc.key) {
			t.Errorf("key %d not handled", tc.key)
			continue
		}
		if !tc.check() {
			t.Errorf("key %d had no effect", tc.key)
		}
	}

	if v.HandleKey(common.Key1 + 5) {
		t.Error("digit beyond the scene list handled")
	}
	if v.HandleKey(0x7F) {
		t.Error("unmapped key handled")
	}
}
