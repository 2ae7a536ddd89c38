package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*lookController)

// WithLookRadius sets the distance of the look target from the origin.
// Non-positive values are ignored.
//
// Parameters:
//   - radius: the look radius
//
// Returns:
//   - CameraControllerOption: functional option to set the radius
func WithLookRadius(radius float32) CameraControllerOption {
	return func(cc *lookController) {
		if radius > 0 {
			cc.radius = radius
		}
	}
}

// WithEyeOffset places the eye away from the sphere center.
//
// Parameters:
//   - x: X offset
//   - y: Y offset
//   - z: Z offset
//
// Returns:
//   - CameraControllerOption: functional option to set the eye offset
func WithEyeOffset(x, y, z float32) CameraControllerOption {
	return func(cc *lookController) {
		cc.offset = [3]float32{x, y, z}
	}
}
