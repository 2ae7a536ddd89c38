package pipeline

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestNewPipeline_Defaults(t *testing.T) {
	p := NewPipeline("panorama")
	if p.PipelineKey() != "panorama" {
		t.Errorf("key = %q", p.PipelineKey())
	}
	if p.VertexEntryPoint() != "vs_main" || p.FragmentEntryPoint() != "fs_main" {
		t.Errorf("entry points = %q, %q", p.VertexEntryPoint(), p.FragmentEntryPoint())
	}
	if p.CullMode() != wgpu.CullModeNone || p.FrontFace() != wgpu.FrontFaceCCW {
		t.Errorf("raster state = %v, %v", p.CullMode(), p.FrontFace())
	}
	if !p.DepthTestEnabled() || !p.DepthWriteEnabled() || p.BlendEnabled() {
		t.Error("unexpected depth/blend defaults")
	}
	if p.Pipeline() != nil {
		t.Error("pipeline created before registration")
	}
}

func TestNewPipeline_Options(t *testing.T) {
	camera := wgpu.BindGroupLayoutDescriptor{Label: "camera"}
	texture := wgpu.BindGroupLayoutDescriptor{Label: "texture"}
	p := NewPipeline("panorama",
		WithShaderSource("// wgsl"),
		WithEntryPoints("vert", "frag"),
		WithCullMode(wgpu.CullModeBack),
		WithBindGroupLayouts(camera, texture),
		WithVertexLayouts(wgpu.VertexBufferLayout{ArrayStride: 20}),
	)
	if p.Source() != "// wgsl" || p.VertexEntryPoint() != "vert" || p.FragmentEntryPoint() != "frag" {
		t.Error("shader options not applied")
	}
	if p.CullMode() != wgpu.CullModeBack {
		t.Errorf("cull mode = %v, want back", p.CullMode())
	}
	if got := p.BindGroupLayout(1).Label; got != "texture" {
		t.Errorf("group 1 label = %q, want texture", got)
	}
	if got := p.BindGroupLayout(5); len(got.Entries) != 0 || got.Label != "" {
		t.Errorf("undeclared group = %+v, want empty", got)
	}
	if len(p.VertexLayouts()) != 1 || p.VertexLayouts()[0].ArrayStride != 20 {
		t.Errorf("vertex layouts = %+v", p.VertexLayouts())
	}
	p.Release()
}
