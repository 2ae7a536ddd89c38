package common

import (
	"math"
	"testing"
)

const epsilon = 1e-3

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < epsilon
}

func TestClamp(t *testing.T) {
	cases := []struct {
		v, lo, hi, want float64
	}{
		{50, 30, 100, 50},
		{-10, 30, 100, 30},
		{130, 30, 100, 100},
		{30, 30, 100, 30},
		{100, 30, 100, 100},
	}
	for _, c := range cases {
		if got := Clamp(c.v, c.lo, c.hi); got != c.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", c.v, c.lo, c.hi, got, c.want)
		}
	}
	if got := Clamp(7, 0, 3); got != 3 {
		t.Errorf("Clamp(int) = %d, want 3", got)
	}
}

func TestSphericalToCartesian_Axes(t *testing.T) {
	cases := []struct {
		name     string
		lon, lat float64
		want     [3]float32
	}{
		{"forward", 0, 0, [3]float32{500, 0, 0}},
		{"quarter turn", 90, 0, [3]float32{0, 0, 500}},
		{"half turn", 180, 0, [3]float32{-500, 0, 0}},
		{"up", 0, 90, [3]float32{0, 500, 0}},
		{"down", 0, -90, [3]float32{0, -500, 0}},
		{"wrapped", 450, 0, [3]float32{0, 0, 500}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			x, y, z := SphericalToCartesian(c.lon, c.lat, 500)
			if !near(x, c.want[0]) || !near(y, c.want[1]) || !near(z, c.want[2]) {
				t.Errorf("SphericalToCartesian(%v, %v) = (%v, %v, %v), want %v", c.lon, c.lat, x, y, z, c.want)
			}
		})
	}
}

func TestSphericalToCartesian_StaysOnSphere(t *testing.T) {
	for lon := -720.0; lon <= 720; lon += 37.5 {
		for lat := -85.0; lat <= 85; lat += 17 {
			x, y, z := SphericalToCartesian(lon, lat, 500)
			r := float32(math.Sqrt(float64(x*x + y*y + z*z)))
			if math.Abs(float64(r-500)) > 0.05 {
				t.Fatalf("radius at (%v, %v) = %v, want 500", lon, lat, r)
			}
		}
	}
}

func TestMul4_Identity(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	for i := range m {
		m[i] = float32(i + 1)
	}
	Mul4(out[:], id[:], m[:])
	if out != m {
		t.Errorf("I * M = %v, want %v", out, m)
	}
	Mul4(out[:], m[:], id[:])
	if out != m {
		t.Errorf("M * I = %v, want %v", out, m)
	}
}

func TestLookAt_TargetLandsOnNegativeZ(t *testing.T) {
	var view [16]float32
	LookAt(view[:], 0, 0, 0, 500, 0, 0, 0, 1, 0)

	// transform the target into view space; it must sit straight ahead at -500 on z.
	tx, ty, tz := float32(500), float32(0), float32(0)
	vx := view[0]*tx + view[4]*ty + view[8]*tz + view[12]
	vy := view[1]*tx + view[5]*ty + view[9]*tz + view[13]
	vz := view[2]*tx + view[6]*ty + view[10]*tz + view[14]
	if !near(vx, 0) || !near(vy, 0) || !near(vz, -500) {
		t.Errorf("view-space target = (%v, %v, %v), want (0, 0, -500)", vx, vy, vz)
	}
}

func TestPerspective_DepthRange(t *testing.T) {
	var proj [16]float32
	Perspective(proj[:], float32(DegToRad(75)), 16.0/9.0, 1, 1100)

	depth := func(viewZ float32) float32 {
		clipZ := proj[10]*viewZ + proj[14]
		clipW := proj[11] * viewZ
		return clipZ / clipW
	}
	if d := depth(-1); !near(d, 0) {
		t.Errorf("near plane depth = %v, want 0", d)
	}
	if d := depth(-1100); !near(d, 1) {
		t.Errorf("far plane depth = %v, want 1", d)
	}
	if d := depth(-500); d <= 0 || d >= 1 {
		t.Errorf("sphere depth = %v, want inside (0, 1)", d)
	}
}

func TestSceneKey(t *testing.T) {
	if i, ok := SceneKey(Key1); !ok || i != 0 {
		t.Errorf("SceneKey(1) = %d, %v", i, ok)
	}
	if i, ok := SceneKey(Key9); !ok || i != 8 {
		t.Errorf("SceneKey(9) = %d, %v", i, ok)
	}
	if _, ok := SceneKey(KeyF); ok {
		t.Error("SceneKey(F) reported a scene index")
	}
}
