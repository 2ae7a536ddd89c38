package loader

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/webp"
)

// Equirectangular images are expected to be 2:1. Anything outside this band is used but logged.
const (
	minAspect = 1.8
	maxAspect = 2.2
)

type decoded struct {
	texture common.TextureStagingData
	format  string
	// sourceWidth and sourceHeight are the dimensions before any downscale.
	sourceWidth  int
	sourceHeight int
}

// aspectOK reports whether the decoded source is close enough to 2:1.
func (d decoded) aspectOK() bool {
	if d.sourceHeight == 0 {
		return false
	}
	aspect := float64(d.sourceWidth) / float64(d.sourceHeight)
	return aspect >= minAspect && aspect <= maxAspect
}

// decodePanorama decodes a JPEG, PNG or WebP stream into tightly packed RGBA pixels, scaling it
// down so neither side exceeds maxSize. A maxSize of zero disables scaling.
func decodePanorama(r io.Reader, maxSize int) (decoded, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return decoded{}, ErrUnsupportedFormat
		}
		return decoded{}, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return decoded{}, fmt.Errorf("decode image: empty %dx%d image", w, h)
	}

	var rgba *image.RGBA
	if tw, th, scale := fitWithin(w, h, maxSize); scale {
		rgba = transform.Resize(img, tw, th, transform.Linear)
	} else {
		rgba = clone.AsRGBA(img)
	}

	return decoded{
		texture:      packRGBA(rgba),
		format:       format,
		sourceWidth:  w,
		sourceHeight: h,
	}, nil
}

// fitWithin returns the largest size with the same aspect ratio whose sides do not exceed
// maxSize, and whether that differs from the input.
func fitWithin(w, h, maxSize int) (int, int, bool) {
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return w, h, false
	}
	if w >= h {
		return maxSize, max(1, h*maxSize/w), true
	}
	return max(1, w*maxSize/h), maxSize, true
}

// packRGBA copies img into staging data with a stride of exactly 4*width.
func packRGBA(img *image.RGBA) common.TextureStagingData {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	rowBytes := w * 4

	if img.Stride == rowBytes && len(img.Pix) == rowBytes*h {
		return common.TextureStagingData{Pixels: img.Pix, Width: uint32(w), Height: uint32(h)}
	}

	pixels := make([]byte, rowBytes*h)
	for y := 0; y < h; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+rowBytes]
		copy(pixels[y*rowBytes:], src)
	}
	return common.TextureStagingData{Pixels: pixels, Width: uint32(w), Height: uint32(h)}
}
