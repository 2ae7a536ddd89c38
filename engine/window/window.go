package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

// CursorShape is a standard pointer shape the window can display.
type CursorShape int

const (
	// CursorArrow is the platform default pointer.
	CursorArrow CursorShape = iota

	// CursorHand signals that the content can be grabbed and dragged.
	CursorHand

	// CursorCrosshair is shown while a drag is in progress.
	CursorCrosshair
)

// Window provides platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
// All callbacks fire on the thread that calls ProcessMessages.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the window framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving the vertical scroll offset in notches (positive = away from the user)
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the callback for key press and repeat events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetMouseDownCallback sets the callback for primary (left) mouse button press.
	//
	// Parameters:
	//   - callback: function receiving the cursor x, y position
	SetMouseDownCallback(callback func(x, y float64))

	// SetMouseUpCallback sets the callback for primary (left) mouse button release.
	//
	// Parameters:
	//   - callback: function receiving the cursor x, y position
	SetMouseUpCallback(callback func(x, y float64))

	// SetMouseMoveCallback sets the callback for mouse movement.
	//
	// Parameters:
	//   - callback: function receiving the cursor x, y position
	SetMouseMoveCallback(callback func(x, y float64))

	// SetMouseLeaveCallback sets the callback fired when the cursor leaves the client area.
	//
	// Parameters:
	//   - callback: function to call
	SetMouseLeaveCallback(callback func())

	// SetCursor changes the pointer shape shown over the client area.
	//
	// Parameters:
	//   - shape: the cursor shape
	SetCursor(shape CursorShape)

	// IsFullscreen reports whether the window currently covers the primary monitor.
	//
	// Returns:
	//   - bool: true while fullscreen
	IsFullscreen() bool

	// SetFullscreen moves the window onto the primary monitor or restores its windowed placement.
	//
	// Parameters:
	//   - fullscreen: true to enter fullscreen, false to leave it
	//
	// Returns:
	//   - error: error if no monitor is available
	SetFullscreen(fullscreen bool) error

	// SetClipboard places text on the system clipboard.
	//
	// Parameters:
	//   - text: the text to copy
	//
	// Returns:
	//   - error: error if the window is not initialized
	SetClipboard(text string) error

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// RequestClose asks the message loop to stop after the current iteration.
	RequestClose()

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls OnUpdate callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// minWidth and minHeight bound interactive resizing.
	minWidth  int
	minHeight int

	// width is the current framebuffer width in pixels.
	width int

	// height is the current framebuffer height in pixels.
	height int

	// startFullscreen places the window on the primary monitor at creation.
	startFullscreen bool

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onUpdate     func()
	onResize     func(width, height int)
	onScroll     func(delta float32)
	onKeyDown    func(keyCode uint32)
	onKeyUp      func(keyCode uint32)
	onMouseDown  func(x, y float64)
	onMouseUp    func(x, y float64)
	onMouseMove  func(x, y float64)
	onMouseLeave func()
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the created window
//   - error: error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:     "Virtual Tour",
		minWidth:  320,
		minHeight: 240,
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetMouseDownCallback(callback func(x, y float64)) {
	w.onMouseDown = callback
}

func (w *engineWindow) SetMouseUpCallback(callback func(x, y float64)) {
	w.onMouseUp = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y float64)) {
	w.onMouseMove = callback
}

func (w *engineWindow) SetMouseLeaveCallback(callback func()) {
	w.onMouseLeave = callback
}

func (w *engineWindow) SetCursor(shape CursorShape) {
	platformSetCursor(w, shape)
}

func (w *engineWindow) IsFullscreen() bool {
	return platformIsFullscreen(w)
}

func (w *engineWindow) SetFullscreen(fullscreen bool) error {
	return platformSetFullscreen(w, fullscreen)
}

func (w *engineWindow) SetClipboard(text string) error {
	return platformSetClipboard(w, text)
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
