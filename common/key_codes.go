package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyC     = 67 // C key (ASCII), toggle thumbnail carousel
	KeyF     = 70 // F key (ASCII), toggle fullscreen
	KeyH     = 72 // H key (ASCII), toggle hotspots
	KeyI     = 73 // I key (ASCII), toggle info panel
	KeyM     = 77 // M key (ASCII), toggle floorplan
	KeyR     = 82 // R key (ASCII), reset view
	KeyS     = 83 // S key (ASCII), share
	KeyMinus = 45 // - key (ASCII), zoom out
	KeyEqual = 61 // = key (ASCII), zoom in (unshifted +)

	Key1 = 49 // 1 key (ASCII)
	Key9 = 57 // 9 key (ASCII)
)

// Non-printable keys (GLFW)
const (
	KeyEsc        = 256
	KeyRight      = 262
	KeyLeft       = 263
	KeyKPSubtract = 333
	KeyKPAdd      = 334
)
