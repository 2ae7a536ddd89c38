package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-tour/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithFrameRate sets the target frames per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target frames per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.frameInterval = time.Duration(float64(time.Second) / fps)
	}
}

// WithUncappedFrameRate removes the frame cap of a windowed engine. Presentation is then paced
// by the surface present mode alone. Has no effect on headless engines.
func WithUncappedFrameRate() EngineBuilderOption {
	return func(e *engine) {
		if e.window != nil {
			e.frameInterval = 0
		}
	}
}

// WithWindow attaches a window. Without one the engine runs headless.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithFrameCallback registers the per-frame callback during construction.
//
// Parameters:
//   - callback: function receiving the delta time in seconds
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameCallback(callback func(deltaTime float32)) EngineBuilderOption {
	return func(e *engine) {
		e.frameCallback = callback
	}
}
