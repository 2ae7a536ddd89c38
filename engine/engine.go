package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-tour/engine/profiler"
	"github.com/Carmen-Shannon/oxy-tour/engine/window"
	"github.com/Carmen-Shannon/oxy-tour/internal/logging"
	"github.com/rs/zerolog"
)

// engine implements the Engine interface.
// Input callbacks, the frame callback and rendering all run on the goroutine that calls Run.
type engine struct {
	running atomic.Bool

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window

	profiler         *profiler.Profiler
	profilingEnabled bool

	frameCallback func(deltaTime float32)
	frameInterval time.Duration // headless tick interval and windowed frame cap; 0 = uncapped when windowed
	lastFrame     time.Time

	panicErr error
	log      zerolog.Logger
}

// Engine is the frame driver. With a window it runs inside the window's message loop so input
// and rendering share the platform thread. Without a window it ticks on a timer (headless mode).
type Engine interface {
	// Window returns the underlying window, or nil when headless.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Headless reports whether the engine runs without a window.
	Headless() bool

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetFrameRate sets the target frames per second. Headless engines tick at this rate,
	// windowed engines cap their frame rate to it. Values <= 0 default to 60.
	//
	// Parameters:
	//   - fps: target frames per second
	SetFrameRate(fps float64)

	// SetFrameCallback registers the function called once per frame.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds since the previous frame
	SetFrameCallback(callback func(deltaTime float32))

	// Run drives frames until the window closes, Quit is called or ctx is cancelled.
	// It blocks the calling goroutine, which must be the main thread when a window is attached.
	//
	// Parameters:
	//   - ctx: cancels the loop
	//
	// Returns:
	//   - error: non-nil if a frame panicked
	Run(ctx context.Context) error

	// Quit signals the loop to stop after the current frame.
	// Safe to call multiple times and from any goroutine.
	Quit()

	// Running reports whether Run is currently driving frames.
	Running() bool
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - options: functional options for engine configuration (window, profiling, frame rate)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel:   make(chan struct{}),
		profiler:      profiler.NewProfiler(time.Second),
		frameInterval: time.Second / 60,
		log:           logging.With().Str("component", "engine").Logger(),
	}

	for _, opt := range options {
		opt(e)
	}
	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Headless() bool {
	return e.window == nil
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetFrameRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	e.frameInterval = time.Duration(float64(time.Second) / fps)
}

func (e *engine) SetFrameCallback(callback func(deltaTime float32)) {
	e.frameCallback = callback
}

func (e *engine) Running() bool {
	return e.running.Load()
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) Run(ctx context.Context) error {
	if !e.running.CompareAndSwap(false, true) {
		return fmt.Errorf("engine already running")
	}
	defer e.running.Store(false)

	e.lastFrame = time.Now()
	e.log.Info().Bool("headless", e.Headless()).Dur("frame_interval", e.frameInterval).Msg("engine started")

	if e.window == nil {
		e.runHeadless(ctx)
	} else {
		e.runWindowed(ctx)
	}

	e.log.Info().Msg("engine stopped")
	return e.panicErr
}

// runWindowed drives frames from the window's message loop. The loop exits once the window
// is asked to close.
func (e *engine) runWindowed(ctx context.Context) {
	e.window.SetUpdateCallback(func() {
		if e.stopRequested(ctx) {
			e.window.RequestClose()
			return
		}
		e.frame()
		if e.panicErr != nil {
			e.window.RequestClose()
			return
		}
		e.limitFrameRate()
	})
	defer e.window.SetUpdateCallback(nil)
	e.window.ProcessMessages()
}

// runHeadless drives frames from a ticker.
func (e *engine) runHeadless(ctx context.Context) {
	ticker := time.NewTicker(e.frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-e.quitChannel:
			return
		case <-ticker.C:
			if e.stopRequested(ctx) {
				return
			}
			e.frame()
			if e.panicErr != nil {
				return
			}
		}
	}
}

// frame runs a single frame callback, recovering from panics so a faulty frame stops the
// engine instead of crashing the process.
func (e *engine) frame() {
	defer func() {
		if r := recover(); r != nil {
			e.panicErr = fmt.Errorf("frame panicked: %v", r)
			e.log.Error().Interface("panic", r).Msg("frame recovered from panic")
			e.Quit()
		}
	}()

	now := time.Now()
	dt := float32(now.Sub(e.lastFrame).Seconds())
	e.lastFrame = now

	if e.frameCallback != nil {
		e.frameCallback(dt)
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
}

func (e *engine) limitFrameRate() {
	if e.frameInterval <= 0 {
		return
	}
	if remaining := e.frameInterval - time.Since(e.lastFrame); remaining > 0 {
		time.Sleep(remaining)
	}
}

func (e *engine) stopRequested(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	case <-e.quitChannel:
		return true
	default:
		return false
	}
}
