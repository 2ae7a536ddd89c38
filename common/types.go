// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// TextureStagingData holds RGBA pixel data for a texture binding pending GPU upload.
// Loaders produce it off the frame loop; the renderer consumes it when creating the GPU texture.
type TextureStagingData struct {
	// Pixels is the RGBA8 pixel data, 4 bytes per pixel, rows top to bottom.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// Valid reports whether the staging data describes a non-empty image whose pixel buffer
// matches its dimensions.
func (t TextureStagingData) Valid() bool {
	return t.Width > 0 && t.Height > 0 && len(t.Pixels) == int(t.Width)*int(t.Height)*4
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
// Zero values fall back to the renderer defaults (linear filtering, repeat addressing).
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode outside the [0, 1] range.
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp specify the minimum and maximum level of detail.
	LodMinClamp, LodMaxClamp float32
	// MaxAnisotropy specifies the maximum anisotropy level for anisotropic filtering.
	MaxAnisotropy uint16
}

// Vertex is the interleaved vertex layout used by the panorama sphere: a position followed by
// an equirectangular texture coordinate. Size: 20 bytes.
type Vertex struct {
	Position [3]float32
	UV       [2]float32
}
