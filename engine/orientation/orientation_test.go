package orientation

import (
	"math"
	"math/rand"
	"testing"
)

func TestNewController_Defaults(t *testing.T) {
	c := NewController()
	s := c.State()
	if s.Longitude != 0 || s.Latitude != 0 {
		t.Errorf("initial lon/lat = (%v, %v), want (0, 0)", s.Longitude, s.Latitude)
	}
	if s.FieldOfView != 75 {
		t.Errorf("initial fov = %v, want 75", s.FieldOfView)
	}
	if !s.AutoRotating {
		t.Error("expected auto-rotation on at start")
	}
	if s.Dragging {
		t.Error("expected not dragging at start")
	}
	if c.Cursor() != CursorGrab {
		t.Errorf("cursor = %v, want CursorGrab", c.Cursor())
	}
}

func TestPointerDrag_UpdatesLongitudeAndLatitude(t *testing.T) {
	c := NewController()
	c.PointerDown(100, 100)
	c.PointerMove(150, 80)

	s := c.State()
	if math.Abs(s.Longitude-(-10)) > 1e-9 {
		t.Errorf("longitude = %v, want -10", s.Longitude)
	}
	if math.Abs(s.Latitude-(-4)) > 1e-9 {
		t.Errorf("latitude = %v, want -4", s.Latitude)
	}
	if s.LastPointer != (Point{X: 150, Y: 80}) {
		t.Errorf("last pointer = %+v, want {150 80}", s.LastPointer)
	}
	if c.Cursor() != CursorGrabbing {
		t.Errorf("cursor = %v, want CursorGrabbing", c.Cursor())
	}
}

func TestPointerMove_IgnoredWhenNotDragging(t *testing.T) {
	c := NewController()
	c.PointerMove(500, 500)
	if s := c.State(); s.Longitude != 0 || s.Latitude != 0 {
		t.Errorf("move without drag changed orientation: %+v", s)
	}
}

func TestRepeatedMovesUseLatestPosition(t *testing.T) {
	a := NewController()
	a.PointerDown(0, 0)
	a.PointerMove(10, 0)
	a.PointerMove(30, 0)

	b := NewController()
	b.PointerDown(0, 0)
	b.PointerMove(30, 0)

	if a.State().Longitude != b.State().Longitude {
		t.Errorf("split moves lon = %v, single move lon = %v", a.State().Longitude, b.State().Longitude)
	}
}

func TestClampInvariants_RandomInput(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	c := NewController()

	for i := 0; i < 5000; i++ {
		switch rng.Intn(6) {
		case 0:
			c.PointerDown(rng.Float64()*2000-1000, rng.Float64()*2000-1000)
		case 1, 2:
			c.PointerMove(rng.Float64()*1e6-5e5, rng.Float64()*1e6-5e5)
		case 3:
			c.PointerUp()
		case 4:
			c.Wheel(rng.Float64()*1e5 - 5e4)
		case 5:
			c.Tick()
		}

		s := c.State()
		if s.Latitude < -85 || s.Latitude > 85 {
			t.Fatalf("step %d: latitude %v out of [-85, 85]", i, s.Latitude)
		}
		if s.FieldOfView < 30 || s.FieldOfView > 100 {
			t.Fatalf("step %d: fov %v out of [30, 100]", i, s.FieldOfView)
		}
	}
}

func TestLatitudeClampsAtPoles(t *testing.T) {
	c := NewController()
	c.PointerDown(0, 0)
	c.PointerMove(0, 10000)
	if got := c.State().Latitude; got != 85 {
		t.Errorf("latitude = %v, want 85", got)
	}
	c.PointerMove(0, -20000)
	if got := c.State().Latitude; got != -85 {
		t.Errorf("latitude = %v, want -85", got)
	}
}

func TestDragSuppressesAutoRotation(t *testing.T) {
	c := NewController()
	if !c.State().AutoRotating {
		t.Fatal("precondition: auto-rotation should be on")
	}

	c.PointerDown(10, 10)
	if c.State().AutoRotating {
		t.Error("auto-rotation still on after drag start")
	}

	lon := c.State().Longitude
	c.Tick()
	if c.State().Longitude != lon {
		t.Error("tick rotated while dragging")
	}

	c.PointerUp()
	if c.State().AutoRotating {
		t.Error("auto-rotation restored by drag end")
	}
	c.Tick()
	if c.State().Longitude != lon {
		t.Error("tick rotated after drag end without reset")
	}

	c.ResetOrientation()
	if !c.State().AutoRotating {
		t.Error("auto-rotation not restored by reset")
	}
}

func TestTouch_SingleFingerOnly(t *testing.T) {
	c := NewController()
	c.TouchStart([]Point{{X: 0, Y: 0}, {X: 50, Y: 50}})
	if c.State().Dragging {
		t.Fatal("two-finger touch started a drag")
	}

	c.TouchStart([]Point{{X: 0, Y: 0}})
	if !c.State().Dragging || c.State().AutoRotating {
		t.Fatalf("single touch did not start a drag: %+v", c.State())
	}
	c.TouchMove([]Point{{X: 10, Y: 5}})
	if got := c.State().Longitude; math.Abs(got-(-2)) > 1e-9 {
		t.Errorf("longitude = %v, want -2", got)
	}
	c.TouchMove([]Point{{X: 100, Y: 100}, {X: 0, Y: 0}})
	if got := c.State().Longitude; math.Abs(got-(-2)) > 1e-9 {
		t.Errorf("multi-touch move changed longitude to %v", got)
	}
	c.TouchEnd()
	if c.State().Dragging {
		t.Error("touch end did not end the drag")
	}
}

func TestPointerLeave_EndsDrag(t *testing.T) {
	c := NewController()
	c.PointerDown(0, 0)
	c.PointerLeave()
	if c.State().Dragging {
		t.Error("pointer leave did not end the drag")
	}
	c.PointerMove(100, 100)
	if c.State().Longitude != 0 {
		t.Error("move after leave changed longitude")
	}
}

func TestWheel(t *testing.T) {
	c := NewController()
	if !c.Wheel(100) {
		t.Error("wheel should report the event as consumed")
	}
	if got := c.State().FieldOfView; got != 80 {
		t.Errorf("fov = %v, want 80", got)
	}
	c.Wheel(-1e6)
	if got := c.State().FieldOfView; got != 30 {
		t.Errorf("fov = %v, want 30", got)
	}
	c.Wheel(1e6)
	if got := c.State().FieldOfView; got != 100 {
		t.Errorf("fov = %v, want 100", got)
	}
}

func TestTick_AutoRotates(t *testing.T) {
	c := NewController()
	for i := 0; i < 10; i++ {
		c.Tick()
	}
	if got := c.State().Longitude; math.Abs(got-1) > 1e-9 {
		t.Errorf("longitude after 10 ticks = %v, want 1", got)
	}
}

func TestZoomIn_TenTimesClampsAtMinimum(t *testing.T) {
	c := NewController()
	for i := 0; i < 10; i++ {
		c.ZoomIn()
	}
	if got := c.State().FieldOfView; got != 30 {
		t.Errorf("fov = %v, want 30", got)
	}
	for i := 0; i < 10; i++ {
		c.ZoomOut()
	}
	if got := c.State().FieldOfView; got != 100 {
		t.Errorf("fov = %v, want 100", got)
	}
}

func TestResetOrientation_PreservesZoom(t *testing.T) {
	c := NewController()
	c.SetFieldOfView(45)
	c.PointerDown(0, 0)
	c.PointerMove(-600, 200)
	c.ResetOrientation()

	s := c.State()
	if s.Longitude != 0 || s.Latitude != 0 || s.FieldOfView != 45 || !s.AutoRotating || s.Dragging {
		t.Errorf("after ResetOrientation: %+v", s)
	}
}

func TestResetView_IdempotentAndFull(t *testing.T) {
	c := NewController()
	c.SetFieldOfView(40)
	c.PointerDown(0, 0)
	c.PointerMove(200, 100)

	c.ResetView()
	once := c.State()
	c.ResetView()
	twice := c.State()

	if once != twice {
		t.Errorf("reset not idempotent: %+v vs %+v", once, twice)
	}
	want := State{FieldOfView: 75, AutoRotating: true}
	if twice != want {
		t.Errorf("after reset = %+v, want %+v", twice, want)
	}
}

func TestOptions(t *testing.T) {
	c := NewController(
		WithYawSensitivity(1),
		WithPitchSensitivity(0.5),
		WithZoomStep(5),
		WithFieldOfViewBounds(100, 20),
		WithDefaultFieldOfView(150),
		WithLatitudeLimit(-60),
		WithAutoRotateStep(2),
	)
	if min, max := c.FieldOfViewBounds(); min != 20 || max != 100 {
		t.Errorf("bounds = (%v, %v), want (20, 100)", min, max)
	}
	if got := c.State().FieldOfView; got != 100 {
		t.Errorf("default fov = %v, want clamped 100", got)
	}
	c.Tick()
	if got := c.State().Longitude; got != 2 {
		t.Errorf("longitude after tick = %v, want 2", got)
	}
	c.PointerDown(0, 0)
	c.PointerMove(10, 1000)
	s := c.State()
	if s.Longitude != -8 {
		t.Errorf("longitude = %v, want -8", s.Longitude)
	}
	if s.Latitude != 60 {
		t.Errorf("latitude = %v, want 60", s.Latitude)
	}
	c.ZoomIn()
	if got := c.State().FieldOfView; got != 95 {
		t.Errorf("fov = %v, want 95", got)
	}
}

func TestLookTarget(t *testing.T) {
	c := NewController()
	x, y, z := c.LookTarget(500)
	if math.Abs(float64(x-500)) > 1e-3 || math.Abs(float64(y)) > 1e-3 || math.Abs(float64(z)) > 1e-3 {
		t.Errorf("look target at origin orientation = (%v, %v, %v), want (500, 0, 0)", x, y, z)
	}

	c.PointerDown(0, 0)
	c.PointerMove(0, 1000)
	_, y, _ = c.LookTarget(500)
	want := 500 * math.Cos((90-85)*math.Pi/180)
	if math.Abs(float64(y)-want) > 0.05 {
		t.Errorf("look target y at the latitude limit = %v, want %v", y, want)
	}
}
