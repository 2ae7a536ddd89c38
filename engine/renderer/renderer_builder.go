package renderer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithClearColor sets the color the render pass clears to before drawing.
// The viewer uses it as the backdrop shown while no panorama texture is loaded.
//
// Parameters:
//   - c: the clear color
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color option to a renderer
func WithClearColor(c wgpu.Color) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingClearColor = &c
	}
}

// ParseClearColor converts a "#rrggbb" hex string to an opaque wgpu.Color.
//
// Parameters:
//   - hex: the color, with or without the leading '#'
//
// Returns:
//   - wgpu.Color: the color with channels in [0, 1]
//   - error: error if hex is not six hex digits
func ParseClearColor(hex string) (wgpu.Color, error) {
	digits := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(digits) != 6 {
		return wgpu.Color{}, fmt.Errorf("clear color %q: want #rrggbb", hex)
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return wgpu.Color{}, fmt.Errorf("clear color %q: %w", hex, err)
	}
	return wgpu.Color{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
		A: 1,
	}, nil
}

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingPresentMode = &mode
	}
}

// WithMSAA sets the sample count of the main render pass. Defaults to MSAA4x.
//
// Parameters:
//   - count: MSAAOff or MSAA4x
//
// Returns:
//   - RendererBuilderOption: a function that applies the MSAA option to a renderer
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingMSAA = &count
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe). Useful for benchmarking CPU vs GPU rendering performance.
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}
