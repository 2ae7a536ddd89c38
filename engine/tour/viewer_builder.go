package tour

import (
	"time"

	"github.com/Carmen-Shannon/oxy-tour/engine/loader"
	"github.com/Carmen-Shannon/oxy-tour/engine/orientation"
)

// ViewerBuilderOption is a functional option applied to a viewer during construction via NewViewer.
type ViewerBuilderOption func(*viewer)

// WithInitialScene selects the scene shown first. Ids not in the scene list fall back to the first scene.
//
// Parameters:
//   - id: the scene id
//
// Returns:
//   - ViewerBuilderOption: a function that applies the initial scene option to a viewer
func WithInitialScene(id string) ViewerBuilderOption {
	return func(v *viewer) {
		v.initialSceneID = id
	}
}

// WithEmbedded marks the viewer as inline. Embedded viewers have no close affordance.
//
// Parameters:
//   - embedded: true for inline presentation
//
// Returns:
//   - ViewerBuilderOption: a function that applies the embed option to a viewer
func WithEmbedded(embedded bool) ViewerBuilderOption {
	return func(v *viewer) {
		v.embedded = embedded
	}
}

// WithLoader replaces the default panorama loader.
//
// Parameters:
//   - l: the loader used for panorama textures
//
// Returns:
//   - ViewerBuilderOption: a function that applies the loader option to a viewer
func WithLoader(l loader.Loader) ViewerBuilderOption {
	return func(v *viewer) {
		if l != nil {
			v.loader = l
		}
	}
}

// WithOrientationOptions forwards options to the orientation controller (sensitivities,
// field of view bounds, auto-rotate step, latitude limit).
//
// Parameters:
//   - options: the orientation options
//
// Returns:
//   - ViewerBuilderOption: a function that applies the orientation options to a viewer
func WithOrientationOptions(options ...orientation.ControllerBuilderOption) ViewerBuilderOption {
	return func(v *viewer) {
		v.orientOpts = append(v.orientOpts, options...)
	}
}

// WithSphere sets the sphere radius and tessellation. Non-positive values keep the defaults.
//
// Parameters:
//   - radius: the sphere radius in world units
//   - widthSegments: the number of longitude segments
//   - heightSegments: the number of latitude segments
//
// Returns:
//   - ViewerBuilderOption: a function that applies the sphere option to a viewer
func WithSphere(radius float32, widthSegments, heightSegments int) ViewerBuilderOption {
	return func(v *viewer) {
		if radius > 0 {
			v.sphereRadius = radius
		}
		if widthSegments > 0 {
			v.widthSegments = widthSegments
		}
		if heightSegments > 0 {
			v.heightSegments = heightSegments
		}
	}
}

// WithCameraOffset moves the eye away from the sphere center.
//
// Parameters:
//   - x, y, z: the eye offset in world units
//
// Returns:
//   - ViewerBuilderOption: a function that applies the camera offset option to a viewer
func WithCameraOffset(x, y, z float32) ViewerBuilderOption {
	return func(v *viewer) {
		v.cameraOffset = [3]float32{x, y, z}
	}
}

// WithCarouselWindow sets how many thumbnails the scene picker shows at once.
//
// Parameters:
//   - visible: the window size
//
// Returns:
//   - ViewerBuilderOption: a function that applies the carousel option to a viewer
func WithCarouselWindow(visible int) ViewerBuilderOption {
	return func(v *viewer) {
		if visible > 0 {
			v.carouselLen = visible
		}
	}
}

// WithShareBaseURL sets the page URL share links point at. The scene id is added as a query parameter.
func WithShareBaseURL(base string) ViewerBuilderOption {
	return func(v *viewer) {
		if base != "" {
			v.shareBaseURL = base
		}
	}
}

// WithLinkCopiedDuration sets how long the link-copied flag stays raised.
func WithLinkCopiedDuration(d time.Duration) ViewerBuilderOption {
	return func(v *viewer) {
		if d > 0 {
			v.linkCopiedFor = d.Seconds()
		}
	}
}

// WithWheelNotch sets the scroll distance in pixels of one wheel notch reported by an InputSource.
func WithWheelNotch(pixels float64) ViewerBuilderOption {
	return func(v *viewer) {
		if pixels > 0 {
			v.wheelNotch = pixels
		}
	}
}

// WithFullscreen sets the fullscreen capability.
func WithFullscreen(c FullscreenCapability) ViewerBuilderOption {
	return func(v *viewer) {
		if c != nil {
			v.fullscreen = c
		}
	}
}

// WithShare sets the share capability.
func WithShare(c ShareCapability) ViewerBuilderOption {
	return func(v *viewer) {
		if c != nil {
			v.share = c
		}
	}
}

// WithClipboard sets the clipboard capability used when sharing is unavailable.
func WithClipboard(c ClipboardCapability) ViewerBuilderOption {
	return func(v *viewer) {
		if c != nil {
			v.clipboard = c
		}
	}
}

// WithCursor sets the capability that shows the drag cursor.
func WithCursor(c CursorCapability) ViewerBuilderOption {
	return func(v *viewer) {
		if c != nil {
			v.cursor = c
		}
	}
}

// WithCloseCallback sets the function Close invokes on non-embedded viewers.
func WithCloseCallback(fn func()) ViewerBuilderOption {
	return func(v *viewer) {
		v.onClose = fn
	}
}
