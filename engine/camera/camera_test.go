package camera

import (
	"encoding/binary"
	"math"
	"testing"
)

type fixedSource struct {
	x, y, z float32
}

func (f fixedSource) LookTarget(radius float32) (x, y, z float32) {
	return f.x * radius, f.y * radius, f.z * radius
}

func project(m [16]float32, x, y, z float32) (nx, ny, nz float32) {
	cx := m[0]*x + m[4]*y + m[8]*z + m[12]
	cy := m[1]*x + m[5]*y + m[9]*z + m[13]
	cz := m[2]*x + m[6]*y + m[10]*z + m[14]
	cw := m[3]*x + m[7]*y + m[11]*z + m[15]
	return cx / cw, cy / cw, cz / cw
}

func TestCamera_TargetProjectsToScreenCenter(t *testing.T) {
	sources := []fixedSource{{1, 0, 0}, {0, 0, 1}, {-1, 0, 0}, {0.6, 0.8, 0}}
	for _, src := range sources {
		cam := NewCamera(WithAspect(16.0/9.0), WithController(NewCameraController(src)))
		tx, ty, tz := cam.Controller().Target()
		nx, ny, nz := project(cam.ViewProjectionMatrix(), tx, ty, tz)
		if math.Abs(float64(nx)) > 1e-3 || math.Abs(float64(ny)) > 1e-3 {
			t.Errorf("source %+v: target at ndc (%v, %v), want (0, 0)", src, nx, ny)
		}
		if nz < 0 || nz > 1 {
			t.Errorf("source %+v: target depth %v outside [0, 1]", src, nz)
		}
	}
}

func TestCamera_UpdateFollowsSource(t *testing.T) {
	src := &mutableSource{fixedSource{1, 0, 0}}
	cam := NewCamera(WithController(NewCameraController(src)))
	before := cam.ViewMatrix()

	src.f = fixedSource{0, 0, 1}
	cam.Update()
	if cam.ViewMatrix() == before {
		t.Error("view matrix unchanged after the look source moved")
	}
}

type mutableSource struct {
	f fixedSource
}

func (m *mutableSource) LookTarget(radius float32) (x, y, z float32) {
	return m.f.LookTarget(radius)
}

func TestCamera_SetAspectIgnoresNonPositive(t *testing.T) {
	cam := NewCamera(WithAspect(2))
	cam.SetAspect(0)
	cam.SetAspect(-1)
	if cam.Aspect() != 2 {
		t.Errorf("aspect = %v, want 2", cam.Aspect())
	}
}

func TestCamera_SetFovDegrees(t *testing.T) {
	cam := NewCamera()
	cam.SetFovDegrees(90)
	if math.Abs(float64(cam.Fov())-math.Pi/2) > 1e-6 {
		t.Errorf("fov = %v, want pi/2", cam.Fov())
	}
}

func TestCamera_WithFovDegrees(t *testing.T) {
	cam := NewCamera(WithFovDegrees(60))
	if math.Abs(float64(cam.Fov())-math.Pi/3) > 1e-6 {
		t.Errorf("fov = %v, want pi/3", cam.Fov())
	}
	if def := NewCamera(WithFovDegrees(0)).Fov(); def != NewCamera().Fov() {
		t.Errorf("zero degrees changed fov to %v", def)
	}
}

func TestCamera_LabelsAreUnique(t *testing.T) {
	a, b := NewCamera(), NewCamera()
	if a.Label() == b.Label() {
		t.Errorf("two cameras share label %q", a.Label())
	}
}

func TestLookController_Defaults(t *testing.T) {
	cc := NewCameraController(nil)
	if cc.Radius() != 500 {
		t.Errorf("radius = %v, want 500", cc.Radius())
	}
	if x, y, z := cc.Position(); x != 0 || y != 0 || z != 0 {
		t.Errorf("position = (%v, %v, %v), want origin", x, y, z)
	}
	if x, y, z := cc.Target(); x != 500 || y != 0 || z != 0 {
		t.Errorf("target without a source = (%v, %v, %v), want (500, 0, 0)", x, y, z)
	}

	cc = NewCameraController(fixedSource{0, 1, 0}, WithLookRadius(10), WithEyeOffset(1, 2, 3), WithLookRadius(-4))
	if _, y, _ := cc.Target(); y != 10 {
		t.Errorf("target y = %v, want 10", y)
	}
	if x, y, z := cc.Position(); x != 1 || y != 2 || z != 3 {
		t.Errorf("position = (%v, %v, %v), want (1, 2, 3)", x, y, z)
	}
}

func TestGPUCameraUniform_Marshal(t *testing.T) {
	u := GPUCameraUniform{Eye: [3]float32{1, 2, 3}}
	u.ViewProj[0] = 4
	buf := u.Marshal()
	if len(buf) != 80 {
		t.Fatalf("len = %d, want 80", len(buf))
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])); got != 4 {
		t.Errorf("view_proj[0] = %v, want 4", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[68:])); got != 2 {
		t.Errorf("eye.y = %v, want 2", got)
	}
}
