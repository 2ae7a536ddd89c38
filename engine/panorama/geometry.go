package panorama

import (
	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/chewxy/math32"
)

// Default sphere parameters for a panorama mount.
const (
	DefaultRadius         float32 = 500
	DefaultWidthSegments          = 60
	DefaultHeightSegments         = 40
)

// Geometry is an indexed triangle list ready for upload.
type Geometry struct {
	Vertices []common.Vertex
	Indices  []uint32
}

// TriangleCount returns the number of triangles described by the index list.
func (g Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// NewSphere builds a UV sphere centered on the origin whose triangles face inward, so an
// equirectangular texture reads correctly from a camera placed at the center.
//
// Vertex (ix, iy) sits at u = ix/W, v = iy/H with θ = u·2π around +Y starting at +X and φ = v·π
// down from the +Y pole. The seam column is duplicated so UVs do not wrap. The degenerate
// triangles at both poles are skipped.
//
// Parameters:
//   - radius: sphere radius, non-positive values fall back to DefaultRadius
//   - widthSegments: segments around the equator, minimum 3
//   - heightSegments: segments from pole to pole, minimum 2
//
// Returns:
//   - Geometry: the inward-facing sphere
func NewSphere(radius float32, widthSegments, heightSegments int) Geometry {
	if radius <= 0 {
		radius = DefaultRadius
	}
	widthSegments = max(3, widthSegments)
	heightSegments = max(2, heightSegments)

	stride := widthSegments + 1
	vertices := make([]common.Vertex, 0, stride*(heightSegments+1))
	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)
		sinPhi, cosPhi := math32.Sincos(v * math32.Pi)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			sinTheta, cosTheta := math32.Sincos(u * 2 * math32.Pi)
			vertices = append(vertices, common.Vertex{
				Position: [3]float32{
					radius * sinPhi * cosTheta,
					radius * cosPhi,
					radius * sinPhi * sinTheta,
				},
				UV: [2]float32{u, v},
			})
		}
	}

	indices := make([]uint32, 0, widthSegments*(heightSegments-1)*6)
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := uint32(iy*stride + ix)
			b := uint32(iy*stride + ix + 1)
			c := uint32((iy+1)*stride + ix)
			d := uint32((iy+1)*stride + ix + 1)
			if iy != 0 {
				indices = append(indices, a, c, b)
			}
			if iy != heightSegments-1 {
				indices = append(indices, b, c, d)
			}
		}
	}

	return Geometry{Vertices: vertices, Indices: indices}
}
