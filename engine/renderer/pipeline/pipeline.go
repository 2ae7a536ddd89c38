package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
// It holds the WGSL source, the layouts the source declares, and the created render pipeline.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used for caching and lookups
	pipelineKey string

	// source is the WGSL module holding both entry points
	source             string
	vertexEntryPoint   string
	fragmentEntryPoint string

	// vertexLayouts describes the vertex buffers bound at slots 0..n-1
	vertexLayouts []wgpu.VertexBufferLayout
	// bindGroupLayouts is indexed by @group
	bindGroupLayouts []wgpu.BindGroupLayoutDescriptor

	// renderPipeline is nil until the renderer registers this pipeline
	renderPipeline *wgpu.RenderPipeline

	depthTestEnabled  bool
	depthWriteEnabled bool
	blendEnabled      bool
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask
	blendState        *wgpu.BlendState
}

// Pipeline defines the interface for a GPU render pipeline description. It carries the WGSL
// source with its vertex and fragment entry points, the vertex and bind group layouts that source
// expects, and the raster state used when the renderer creates the GPU object.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline, used for caching and lookups.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Source returns the WGSL source of the shader module.
	//
	// Returns:
	//   - string: the WGSL source
	Source() string

	// VertexEntryPoint returns the name of the vertex stage entry point.
	//
	// Returns:
	//   - string: the vertex entry point
	VertexEntryPoint() string

	// FragmentEntryPoint returns the name of the fragment stage entry point.
	//
	// Returns:
	//   - string: the fragment entry point
	FragmentEntryPoint() string

	// VertexLayouts returns the vertex buffer layouts in slot order.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the vertex buffer layouts
	VertexLayouts() []wgpu.VertexBufferLayout

	// BindGroupLayouts returns the bind group layout descriptors indexed by group number.
	//
	// Returns:
	//   - []wgpu.BindGroupLayoutDescriptor: the bind group layouts
	BindGroupLayouts() []wgpu.BindGroupLayoutDescriptor

	// BindGroupLayout returns the descriptor for a single group, or an empty descriptor when
	// the group is not declared.
	//
	// Parameters:
	//   - group: the @group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the descriptor for the group
	BindGroupLayout(group int) wgpu.BindGroupLayoutDescriptor

	// Pipeline returns the created render pipeline, or nil before registration.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the GPU pipeline object
	Pipeline() *wgpu.RenderPipeline

	// DepthTestEnabled returns whether depth testing is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if depth testing is enabled, false otherwise
	DepthTestEnabled() bool

	// DepthWriteEnabled returns whether depth writing is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if depth writing is enabled, false otherwise
	DepthWriteEnabled() bool

	// BlendEnabled returns whether blending is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if blending is enabled, false otherwise
	BlendEnabled() bool

	// CullMode returns the cull mode configured for this pipeline.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode for this pipeline
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology configured for this pipeline.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the primitive topology for this pipeline
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the front face winding order configured for this pipeline.
	//
	// Returns:
	//   - wgpu.FrontFace: the front face winding order for this pipeline
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask configured for this pipeline.
	//
	// Returns:
	//   - wgpu.ColorWriteMask: the color write mask for this pipeline
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the blend state configured for this pipeline.
	//
	// Returns:
	//   - *wgpu.BlendState: the blend state for this pipeline
	BlendState() *wgpu.BlendState

	// SetRenderPipeline stores the GPU pipeline once the renderer has created it.
	//
	// Parameters:
	//   - p: the WebGPU render pipeline to set
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// Release frees the GPU pipeline object.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline is the entry point to create a new render Pipeline description.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:        pipelineKey,
		vertexEntryPoint:   "vs_main",
		fragmentEntryPoint: "fs_main",
		depthTestEnabled:   true,
		depthWriteEnabled:  true,
		blendEnabled:       false,
		cullMode:           wgpu.CullModeNone,
		topology:           wgpu.PrimitiveTopologyTriangleList,
		frontFace:          wgpu.FrontFaceCCW,
		writeMask:          wgpu.ColorWriteMaskAll,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Source() string {
	return p.source
}

func (p *pipeline) VertexEntryPoint() string {
	return p.vertexEntryPoint
}

func (p *pipeline) FragmentEntryPoint() string {
	return p.fragmentEntryPoint
}

func (p *pipeline) VertexLayouts() []wgpu.VertexBufferLayout {
	return p.vertexLayouts
}

func (p *pipeline) BindGroupLayouts() []wgpu.BindGroupLayoutDescriptor {
	return p.bindGroupLayouts
}

func (p *pipeline) BindGroupLayout(group int) wgpu.BindGroupLayoutDescriptor {
	if group < 0 || group >= len(p.bindGroupLayouts) {
		return wgpu.BindGroupLayoutDescriptor{}
	}
	return p.bindGroupLayouts[group]
}

func (p *pipeline) Pipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
