package bind_group_provider

import "testing"

func TestNewBindGroupProvider_Empty(t *testing.T) {
	p := NewBindGroupProvider("panorama_camera")
	if p.Label() != "panorama_camera" {
		t.Errorf("label = %q", p.Label())
	}
	if p.BindGroup() != nil || p.Buffer(0) != nil || p.TextureView(0) != nil || p.Sampler(1) != nil {
		t.Error("new provider already holds GPU resources")
	}
	if p.VertexBuffer() != nil || p.IndexBuffer() != nil || p.IndexCount() != 0 {
		t.Error("new provider already holds mesh buffers")
	}
}

func TestRelease_Idempotent(t *testing.T) {
	var released []string
	p := NewBindGroupProvider("mesh", WithOnRelease(func(label string) { released = append(released, label) }))
	p.SetIndexCount(42)
	p.Release()
	p.Release()
	if !p.Released() {
		t.Error("Released() = false after Release")
	}
	if p.IndexCount() != 0 {
		t.Errorf("index count after release = %d, want 0", p.IndexCount())
	}
	if len(released) != 1 || released[0] != "mesh" {
		t.Errorf("release hook calls = %v, want [mesh]", released)
	}
}

func TestUniformWrite(t *testing.T) {
	p := NewBindGroupProvider("camera")
	w := UniformWrite(p, []byte{1, 2, 3, 4})
	if w.Provider != p || w.Binding != 0 || w.Offset != 0 || len(w.Data) != 4 {
		t.Errorf("write = %+v", w)
	}
}
