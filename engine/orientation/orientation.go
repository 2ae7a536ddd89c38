package orientation

import (
	"github.com/Carmen-Shannon/oxy-tour/common"
)

// Cursor is the pointer affordance the host should display over the viewer.
type Cursor int

const (
	// CursorGrab is shown while idle: the panorama can be dragged.
	CursorGrab Cursor = iota

	// CursorGrabbing is shown while a drag is in progress.
	CursorGrabbing
)

// Point is a pointer or touch position in surface pixels.
type Point struct {
	X, Y float64
}

// State is a snapshot of the orientation model.
type State struct {
	// Longitude is the yaw in degrees. It is unbounded; trigonometry wraps it.
	Longitude float64
	// Latitude is the pitch in degrees, always inside [-LatitudeLimit, LatitudeLimit].
	Latitude float64
	// FieldOfView is the vertical field of view in degrees, always inside the zoom bounds.
	FieldOfView float64
	// AutoRotating is true while the idle spin is enabled.
	AutoRotating bool
	// Dragging is true between a pointer/touch press and its release.
	Dragging bool
	// LastPointer is the last recorded drag position. Only meaningful while Dragging.
	LastPointer Point
}

// controller is the implementation of the Controller interface.
// It is owned by a single frame loop and is not safe for concurrent use.
type controller struct {
	state State

	yawSensitivity   float64
	pitchSensitivity float64
	zoomSensitivity  float64
	zoomStep         float64
	autoRotateStep   float64

	defaultFieldOfView float64
	minFieldOfView     float64
	maxFieldOfView     float64
	latitudeLimit      float64
}

// Controller translates pointer, touch and wheel gestures into a look orientation
// (longitude/latitude) and a field of view.
//
// The model has two states: Idle and Dragging. A press enters Dragging and disables
// auto-rotation; a release returns to Idle without re-enabling it. Only ResetOrientation
// and ResetView turn auto-rotation back on.
type Controller interface {
	// State returns a copy of the current orientation state.
	//
	// Returns:
	//   - State: the current state snapshot
	State() State

	// Cursor returns the cursor affordance matching the current state.
	//
	// Returns:
	//   - Cursor: CursorGrabbing while dragging, CursorGrab otherwise
	Cursor() Cursor

	// PointerDown starts a drag at the given position and stops auto-rotation.
	//
	// Parameters:
	//   - x, y: pointer position in surface pixels
	PointerDown(x, y float64)

	// PointerMove applies the delta since the last recorded position while dragging.
	// Longitude decreases with horizontal movement and latitude increases with vertical
	// movement, scaled by the yaw and pitch sensitivities. Ignored when not dragging.
	//
	// Parameters:
	//   - x, y: pointer position in surface pixels
	PointerMove(x, y float64)

	// PointerUp ends the current drag. Auto-rotation stays off.
	PointerUp()

	// PointerLeave ends the current drag when the pointer leaves the surface.
	PointerLeave()

	// TouchStart starts a drag when exactly one touch point is active.
	//
	// Parameters:
	//   - touches: all active touch points
	TouchStart(touches []Point)

	// TouchMove behaves like PointerMove for a single active touch point.
	//
	// Parameters:
	//   - touches: all active touch points
	TouchMove(touches []Point)

	// TouchEnd ends the current drag.
	TouchEnd()

	// Wheel adjusts the field of view by deltaY scaled by the zoom sensitivity.
	// Positive deltaY (scrolling down) widens the view.
	//
	// Parameters:
	//   - deltaY: wheel delta in pixels
	//
	// Returns:
	//   - bool: true, signalling the host to suppress its default scroll handling
	Wheel(deltaY float64) bool

	// Tick advances one frame. While auto-rotating and not dragging, longitude grows by
	// the auto-rotate step.
	Tick()

	// ZoomIn narrows the field of view by one zoom step.
	ZoomIn()

	// ZoomOut widens the field of view by one zoom step.
	ZoomOut()

	// SetFieldOfView sets the field of view directly, clamped to the zoom bounds.
	//
	// Parameters:
	//   - fov: field of view in degrees
	SetFieldOfView(fov float64)

	// ResetOrientation zeroes longitude and latitude, ends any drag and re-enables
	// auto-rotation. The field of view is preserved.
	ResetOrientation()

	// ResetView performs ResetOrientation and restores the default field of view.
	ResetView()

	// LookTarget converts the current longitude/latitude into a point on a sphere of the
	// given radius centered at the origin.
	//
	// Parameters:
	//   - radius: the sphere radius
	//
	// Returns:
	//   - x, y, z: the look target in world space
	LookTarget(radius float32) (x, y, z float32)

	// FieldOfViewBounds returns the zoom bounds in degrees.
	//
	// Returns:
	//   - min, max: the inclusive field of view bounds
	FieldOfViewBounds() (min, max float64)
}

var _ Controller = &controller{}

// NewController creates an orientation controller facing longitude 0, latitude 0 with the
// default field of view and auto-rotation enabled.
//
// Parameters:
//   - options: functional options to configure sensitivities and bounds
//
// Returns:
//   - Controller: the newly created controller
func NewController(options ...ControllerBuilderOption) Controller {
	c := &controller{
		yawSensitivity:     0.2,
		pitchSensitivity:   0.2,
		zoomSensitivity:    0.05,
		zoomStep:           10,
		autoRotateStep:     0.1,
		defaultFieldOfView: 75,
		minFieldOfView:     30,
		maxFieldOfView:     100,
		latitudeLimit:      85,
	}
	for _, option := range options {
		option(c)
	}
	if c.minFieldOfView > c.maxFieldOfView {
		c.minFieldOfView, c.maxFieldOfView = c.maxFieldOfView, c.minFieldOfView
	}
	c.defaultFieldOfView = common.Clamp(c.defaultFieldOfView, c.minFieldOfView, c.maxFieldOfView)

	c.state = State{
		FieldOfView:  c.defaultFieldOfView,
		AutoRotating: true,
	}
	return c
}

func (c *controller) State() State {
	return c.state
}

func (c *controller) Cursor() Cursor {
	if c.state.Dragging {
		return CursorGrabbing
	}
	return CursorGrab
}

func (c *controller) PointerDown(x, y float64) {
	c.state.Dragging = true
	c.state.AutoRotating = false
	c.state.LastPointer = Point{X: x, Y: y}
}

func (c *controller) PointerMove(x, y float64) {
	if !c.state.Dragging {
		return
	}
	dx := x - c.state.LastPointer.X
	dy := y - c.state.LastPointer.Y

	c.state.Longitude -= dx * c.yawSensitivity
	c.state.Latitude = c.clampLatitude(c.state.Latitude + dy*c.pitchSensitivity)
	c.state.LastPointer = Point{X: x, Y: y}
}

func (c *controller) PointerUp() {
	c.endDrag()
}

func (c *controller) PointerLeave() {
	c.endDrag()
}

func (c *controller) TouchStart(touches []Point) {
	if len(touches) != 1 {
		return
	}
	c.PointerDown(touches[0].X, touches[0].Y)
}

func (c *controller) TouchMove(touches []Point) {
	if len(touches) != 1 {
		return
	}
	c.PointerMove(touches[0].X, touches[0].Y)
}

func (c *controller) TouchEnd() {
	c.endDrag()
}

func (c *controller) Wheel(deltaY float64) bool {
	c.SetFieldOfView(c.state.FieldOfView + deltaY*c.zoomSensitivity)
	return true
}

func (c *controller) Tick() {
	if c.state.AutoRotating && !c.state.Dragging {
		c.state.Longitude += c.autoRotateStep
	}
	// latitude is re-clamped before every render
	c.state.Latitude = c.clampLatitude(c.state.Latitude)
}

func (c *controller) ZoomIn() {
	c.SetFieldOfView(c.state.FieldOfView - c.zoomStep)
}

func (c *controller) ZoomOut() {
	c.SetFieldOfView(c.state.FieldOfView + c.zoomStep)
}

func (c *controller) SetFieldOfView(fov float64) {
	c.state.FieldOfView = common.Clamp(fov, c.minFieldOfView, c.maxFieldOfView)
}

func (c *controller) ResetOrientation() {
	c.state.Longitude = 0
	c.state.Latitude = 0
	c.state.Dragging = false
	c.state.LastPointer = Point{}
	c.state.AutoRotating = true
}

func (c *controller) ResetView() {
	c.ResetOrientation()
	c.state.FieldOfView = c.defaultFieldOfView
}

func (c *controller) LookTarget(radius float32) (x, y, z float32) {
	return common.SphericalToCartesian(c.state.Longitude, c.clampLatitude(c.state.Latitude), radius)
}

func (c *controller) FieldOfViewBounds() (min, max float64) {
	return c.minFieldOfView, c.maxFieldOfView
}

// endDrag returns to Idle without touching auto-rotation.
func (c *controller) endDrag() {
	c.state.Dragging = false
	c.state.LastPointer = Point{}
}

func (c *controller) clampLatitude(lat float64) float64 {
	return common.Clamp(lat, -c.latitudeLimit, c.latitudeLimit)
}
