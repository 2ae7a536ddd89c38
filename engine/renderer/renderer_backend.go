package renderer

// RendererBackendType selects the GPU API behind a Renderer. WebGPU is the only one.
type RendererBackendType int

const (
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode picks between vsync and immediate presentation.
type PresentMode int

const (
	// PresentModeVSync presents on vertical blank.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents as soon as a frame is done. The engine's frame cap, when
	// set, is then the only limit.
	PresentModeUncapped
)

// MSAASampleCount is the sample count of the main render pass. WebGPU guarantees 1 and 4, so
// those are the only counts the renderer offers.
type MSAASampleCount uint32

const (
	MSAAOff MSAASampleCount = 1
	MSAA4x  MSAASampleCount = 4
)

// MSAAFromSamples maps a configured sample count to a supported one: 1 or less turns MSAA
// off, anything else selects MSAA4x.
//
// Parameters:
//   - samples: the configured sample count
//
// Returns:
//   - MSAASampleCount: MSAAOff or MSAA4x
func MSAAFromSamples(samples int) MSAASampleCount {
	if samples <= 1 {
		return MSAAOff
	}
	return MSAA4x
}

// RendererBackend is the backend a Renderer drives.
type RendererBackend interface {
	wgpuRendererBackend
}
