package renderer

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/camera"
	"github.com/Carmen-Shannon/oxy-tour/engine/panorama"
	"github.com/Carmen-Shannon/oxy-tour/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-tour/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-tour/internal/logging"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/rs/zerolog"
)

//go:embed assets/panorama.wgsl
var panoramaShaderBody string

// PanoramaPipelineKey is the pipeline cache key of the equirectangular sphere pipeline.
const PanoramaPipelineKey = "panorama"

// Bind group 0 holds the camera block, bind group 1 the panorama texture and its sampler.
var (
	cameraBindGroupLayout = wgpu.BindGroupLayoutDescriptor{
		Label: "Camera Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: 80,
				},
			},
		},
	}

	textureBindGroupLayout = wgpu.BindGroupLayoutDescriptor{
		Label: "Panorama Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	}

	sphereVertexLayout = wgpu.VertexBufferLayout{
		ArrayStride: 20,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 1},
		},
	}

	// Longitude wraps at the seam, latitude must not bleed across the poles.
	panoramaSampler = common.SamplerStagingData{
		AddressModeU: wgpu.AddressModeRepeat,
		AddressModeV: wgpu.AddressModeClampToEdge,
		AddressModeW: wgpu.AddressModeClampToEdge,
		MagFilter:    wgpu.FilterModeLinear,
		MinFilter:    wgpu.FilterModeLinear,
		LodMaxClamp:  1,
	}
)

// NewPanoramaPipeline describes the sphere pipeline: front faces wound counter-clockwise as seen
// from the sphere's center, back faces culled, depth tested.
//
// Returns:
//   - pipeline.Pipeline: the unregistered pipeline description
func NewPanoramaPipeline() pipeline.Pipeline {
	return pipeline.NewPipeline(PanoramaPipelineKey,
		pipeline.WithShaderSource(camera.GPUCameraUniformSource+"\n"+panoramaShaderBody),
		pipeline.WithEntryPoints("vs_main", "fs_main"),
		pipeline.WithVertexLayouts(sphereVertexLayout),
		pipeline.WithBindGroupLayouts(cameraBindGroupLayout, textureBindGroupLayout),
		pipeline.WithCullMode(wgpu.CullModeBack),
		pipeline.WithFrontFace(wgpu.FrontFaceCCW),
		pipeline.WithTopology(wgpu.PrimitiveTopologyTriangleList),
		pipeline.WithDepthTestEnabled(true),
		pipeline.WithDepthWriteEnabled(true),
	)
}

// gpuHandle is a panorama.Handle backed by a BindGroupProvider.
type gpuHandle struct {
	kind     string
	provider bind_group_provider.BindGroupProvider
}

func (h *gpuHandle) Label() string { return h.provider.Label() }
func (h *gpuHandle) Release()      { h.provider.Release() }

// PanoramaDevice is the WebGPU implementation of panorama.Device.
type PanoramaDevice struct {
	r   Renderer
	log zerolog.Logger
}

var _ panorama.Device = &PanoramaDevice{}

// NewPanoramaDevice registers the panorama pipeline on r and returns a device drawing through it.
//
// Parameters:
//   - r: the renderer owning the surface
//
// Returns:
//   - *PanoramaDevice: the device
//   - error: an error if the pipeline could not be created
func NewPanoramaDevice(r Renderer) (*PanoramaDevice, error) {
	if r == nil {
		return nil, errors.New("nil renderer")
	}
	if err := r.RegisterPipelines(NewPanoramaPipeline()); err != nil {
		return nil, err
	}
	return &PanoramaDevice{
		r:   r,
		log: logging.With().Str("component", "renderer").Logger(),
	}, nil
}

func (d *PanoramaDevice) newProvider(label string) bind_group_provider.BindGroupProvider {
	return bind_group_provider.NewBindGroupProvider(label, bind_group_provider.WithOnRelease(func(l string) {
		d.log.Debug().Str("label", l).Msg("gpu resources released")
	}))
}

func (d *PanoramaDevice) CreateMesh(label string, geometry panorama.Geometry) (panorama.Handle, error) {
	if len(geometry.Vertices) == 0 || len(geometry.Indices) == 0 {
		return nil, fmt.Errorf("mesh %q: empty geometry", label)
	}
	provider := d.newProvider(label)
	err := d.r.InitMeshBuffers(provider,
		common.SliceToBytes(geometry.Vertices),
		common.SliceToBytes(geometry.Indices),
		len(geometry.Indices),
	)
	if err != nil {
		provider.Release()
		return nil, err
	}
	return &gpuHandle{kind: "mesh", provider: provider}, nil
}

func (d *PanoramaDevice) CreateTexture(label string, texture common.TextureStagingData) (panorama.Handle, error) {
	if !texture.Valid() {
		return nil, panorama.ErrInvalidTexture
	}
	provider := d.newProvider(label)
	if err := d.r.InitTextureView(provider, 0, texture); err != nil {
		provider.Release()
		return nil, err
	}
	if err := d.r.InitSampler(provider, 1, panoramaSampler); err != nil {
		provider.Release()
		return nil, err
	}
	if err := d.r.InitBindGroup(provider, textureBindGroupLayout); err != nil {
		provider.Release()
		return nil, err
	}
	d.log.Debug().
		Str("label", label).
		Uint32("width", texture.Width).
		Uint32("height", texture.Height).
		Msg("panorama texture uploaded")
	return &gpuHandle{kind: "texture", provider: provider}, nil
}

func (d *PanoramaDevice) CreateCameraUniform(label string) (panorama.Handle, error) {
	provider := d.newProvider(label)
	if err := d.r.InitBindGroup(provider, cameraBindGroupLayout); err != nil {
		provider.Release()
		return nil, err
	}
	return &gpuHandle{kind: "camera", provider: provider}, nil
}

func (d *PanoramaDevice) WriteCameraUniform(handle panorama.Handle, uniform camera.GPUCameraUniform) error {
	h, err := d.handle(handle, "camera")
	if err != nil {
		return err
	}
	d.r.WriteBuffers([]bind_group_provider.BufferWrite{
		bind_group_provider.UniformWrite(h.provider, uniform.Marshal()),
	})
	return nil
}

func (d *PanoramaDevice) Render(frame panorama.Frame) error {
	if err := d.r.BeginFrame(); err != nil {
		return err
	}

	if frame.Texture != nil {
		mesh, err := d.handle(frame.Mesh, "mesh")
		if err != nil {
			d.endFrame()
			return err
		}
		cam, err := d.handle(frame.Camera, "camera")
		if err != nil {
			d.endFrame()
			return err
		}
		tex, err := d.handle(frame.Texture, "texture")
		if err != nil {
			d.endFrame()
			return err
		}
		err = d.r.DrawCall(PanoramaPipelineKey, mesh.provider, 1,
			[]bind_group_provider.BindGroupProvider{cam.provider, tex.provider},
		)
		if err != nil {
			d.endFrame()
			return err
		}
	}

	d.endFrame()
	return nil
}

func (d *PanoramaDevice) Resize(width, height int) {
	if err := d.r.Resize(width, height); err != nil {
		d.log.Error().Err(err).Int("width", width).Int("height", height).Msg("surface resize failed")
	}
}

func (d *PanoramaDevice) endFrame() {
	d.r.EndFrame()
	d.r.Present()
}

// handle checks that h was created by this device for the given resource kind and is still live.
func (d *PanoramaDevice) handle(h panorama.Handle, kind string) (*gpuHandle, error) {
	gh, ok := h.(*gpuHandle)
	if !ok || gh == nil {
		return nil, fmt.Errorf("%s handle not created by this device", kind)
	}
	if gh.kind != kind {
		return nil, fmt.Errorf("expected %s handle, got %s", kind, gh.kind)
	}
	if gh.provider.Released() {
		return nil, fmt.Errorf("%s handle %q already released", kind, gh.provider.Label())
	}
	return gh, nil
}
