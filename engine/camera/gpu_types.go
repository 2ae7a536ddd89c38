package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUCameraUniformSource declares the WGSL CameraUniform block that the panorama shader reads
// at group 0, binding 0.
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniform mirrors CameraUniform: the view-projection matrix followed by the eye
// position, padded to 80 bytes.
type GPUCameraUniform struct {
	ViewProj [16]float32 // offset 0
	Eye      [3]float32  // offset 64, the sphere center plus any configured offset
	_        float32     // offset 76
}

// Size returns the uniform block size in bytes.
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal packs the block little-endian for a buffer write.
//
// Returns:
//   - []byte: Size() bytes ready for upload
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, 0, g.Size())
	for _, f := range g.ViewProj {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
	}
	for _, f := range g.Eye {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
	}
	return binary.LittleEndian.AppendUint32(buf, 0)
}
