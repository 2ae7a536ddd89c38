package orientation

// ControllerBuilderOption is a functional option for configuring a Controller.
type ControllerBuilderOption func(*controller)

// WithYawSensitivity sets the degrees of longitude per pixel of horizontal drag.
//
// Parameters:
//   - k: yaw sensitivity (default 0.2)
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithYawSensitivity(k float64) ControllerBuilderOption {
	return func(c *controller) {
		c.yawSensitivity = k
	}
}

// WithPitchSensitivity sets the degrees of latitude per pixel of vertical drag.
//
// Parameters:
//   - k: pitch sensitivity (default 0.2)
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithPitchSensitivity(k float64) ControllerBuilderOption {
	return func(c *controller) {
		c.pitchSensitivity = k
	}
}

// WithZoomSensitivity sets the degrees of field of view per pixel of wheel delta.
//
// Parameters:
//   - k: zoom sensitivity (default 0.05)
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithZoomSensitivity(k float64) ControllerBuilderOption {
	return func(c *controller) {
		c.zoomSensitivity = k
	}
}

// WithZoomStep sets the field of view change applied by ZoomIn and ZoomOut.
//
// Parameters:
//   - step: zoom step in degrees (default 10)
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithZoomStep(step float64) ControllerBuilderOption {
	return func(c *controller) {
		c.zoomStep = step
	}
}

// WithAutoRotateStep sets the longitude advance per frame while auto-rotating.
//
// Parameters:
//   - step: degrees per frame (default 0.1)
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithAutoRotateStep(step float64) ControllerBuilderOption {
	return func(c *controller) {
		c.autoRotateStep = step
	}
}

// WithDefaultFieldOfView sets the field of view used at start and restored by ResetView.
//
// Parameters:
//   - fov: default field of view in degrees (default 75)
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithDefaultFieldOfView(fov float64) ControllerBuilderOption {
	return func(c *controller) {
		c.defaultFieldOfView = fov
	}
}

// WithFieldOfViewBounds sets the inclusive zoom bounds.
//
// Parameters:
//   - min: narrowest field of view in degrees (default 30)
//   - max: widest field of view in degrees (default 100)
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithFieldOfViewBounds(min, max float64) ControllerBuilderOption {
	return func(c *controller) {
		c.minFieldOfView = min
		c.maxFieldOfView = max
	}
}

// WithLatitudeLimit sets the symmetric pitch limit that keeps the view away from the poles.
//
// Parameters:
//   - limit: maximum absolute latitude in degrees (default 85)
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithLatitudeLimit(limit float64) ControllerBuilderOption {
	return func(c *controller) {
		if limit < 0 {
			limit = -limit
		}
		c.latitudeLimit = limit
	}
}
