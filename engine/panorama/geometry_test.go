package panorama

import (
	"math"
	"testing"
)

func TestNewSphere_Counts(t *testing.T) {
	g := NewSphere(500, 60, 40)
	if got, want := len(g.Vertices), 61*41; got != want {
		t.Errorf("vertices = %d, want %d", got, want)
	}
	// two triangles per quad, minus one per quad on each pole row
	if got, want := g.TriangleCount(), 60*40*2-2*60; got != want {
		t.Errorf("triangles = %d, want %d", got, want)
	}
	for _, idx := range g.Indices {
		if int(idx) >= len(g.Vertices) {
			t.Fatalf("index %d out of range", idx)
		}
	}
}

func TestNewSphere_VerticesOnSphere(t *testing.T) {
	g := NewSphere(500, 60, 40)
	for i, v := range g.Vertices {
		p := v.Position
		r := math.Sqrt(float64(p[0]*p[0] + p[1]*p[1] + p[2]*p[2]))
		if math.Abs(r-500) > 0.05 {
			t.Fatalf("vertex %d at radius %v, want 500", i, r)
		}
		if v.UV[0] < 0 || v.UV[0] > 1 || v.UV[1] < 0 || v.UV[1] > 1 {
			t.Fatalf("vertex %d uv %v outside [0, 1]", i, v.UV)
		}
	}
}

func TestNewSphere_TrianglesFaceCenter(t *testing.T) {
	g := NewSphere(500, 60, 40)
	for i := 0; i < len(g.Indices); i += 3 {
		p0 := g.Vertices[g.Indices[i]].Position
		p1 := g.Vertices[g.Indices[i+1]].Position
		p2 := g.Vertices[g.Indices[i+2]].Position

		e1 := [3]float64{float64(p1[0] - p0[0]), float64(p1[1] - p0[1]), float64(p1[2] - p0[2])}
		e2 := [3]float64{float64(p2[0] - p0[0]), float64(p2[1] - p0[1]), float64(p2[2] - p0[2])}
		n := [3]float64{
			e1[1]*e2[2] - e1[2]*e2[1],
			e1[2]*e2[0] - e1[0]*e2[2],
			e1[0]*e2[1] - e1[1]*e2[0],
		}
		c := [3]float64{
			float64(p0[0]+p1[0]+p2[0]) / 3,
			float64(p0[1]+p1[1]+p2[1]) / 3,
			float64(p0[2]+p1[2]+p2[2]) / 3,
		}
		if dot := n[0]*c[0] + n[1]*c[1] + n[2]*c[2]; dot >= 0 {
			t.Fatalf("triangle %d faces outward (n·c = %v)", i/3, dot)
		}
	}
}

func TestNewSphere_Defaults(t *testing.T) {
	g := NewSphere(0, 1, 1)
	if len(g.Vertices) != 4*3 {
		t.Errorf("vertices = %d, want 12 for the minimum 3x2 sphere", len(g.Vertices))
	}
	top := g.Vertices[0].Position
	if math.Abs(float64(top[1]-DefaultRadius)) > 1e-3 {
		t.Errorf("top pole y = %v, want %v", top[1], DefaultRadius)
	}
}
