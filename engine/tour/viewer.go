package tour

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-tour/engine/camera"
	"github.com/Carmen-Shannon/oxy-tour/engine/carousel"
	"github.com/Carmen-Shannon/oxy-tour/engine/loader"
	"github.com/Carmen-Shannon/oxy-tour/engine/orientation"
	"github.com/Carmen-Shannon/oxy-tour/engine/panorama"
	"github.com/Carmen-Shannon/oxy-tour/internal/logging"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrReleased is returned by Mount after Release.
var ErrReleased = errors.New("viewer released")

// floorplanSize is the number of scenes shown on the floorplan thumbnail map.
const floorplanSize = 4

// completion is a finished texture load waiting for the frame loop.
type completion struct {
	generation uint64
	scene      Scene
	result     loader.Result
}

// viewer is the implementation of the Viewer interface.
// Everything except the completion queue is owned by the frame loop.
type viewer struct {
	id  string
	log zerolog.Logger

	scenes  []Scene
	index   map[string]int
	current int

	initialSceneID string
	embedded       bool

	orient      orientation.Controller
	orientOpts  []orientation.ControllerBuilderOption
	carousel    carousel.Carousel
	carouselLen int

	loader         loader.Loader
	ownsLoader     bool
	released       bool
	geometry       panorama.Geometry
	sphereRadius   float32
	widthSegments  int
	heightSegments int
	cameraOffset   [3]float32

	surface    panorama.Surface
	mounted    bool
	bundle     *panorama.Bundle
	cancelLoad context.CancelFunc
	generation uint64

	mu      sync.Mutex
	pending []completion

	loading       bool
	errMsg        string
	lastRenderErr string

	showInfo       bool
	showCarousel   bool
	showFloorplan  bool
	showHotspots   bool
	linkCopiedLeft float64
	linkCopiedFor  float64
	shareURL       string
	shareBaseURL   string
	wheelNotch     float64

	fullscreen FullscreenCapability
	share      ShareCapability
	clipboard  ClipboardCapability
	cursor     CursorCapability
	onClose    func()
	detach     func()

	listeners    map[int]Listener
	nextListener int
	last         ViewState
	emitted      bool
}

// Viewer is the panorama viewer engine. One Viewer owns one orientation state, one set of GPU
// resources and one scene list. All methods must be called from the frame loop goroutine.
type Viewer interface {
	// ID returns the unique id of this viewer instance.
	ID() string

	// Scenes returns the scene list in display order.
	Scenes() []Scene

	// CurrentScene returns the active scene.
	CurrentScene() Scene

	// Mount builds the sphere, camera and GPU resources on surface and starts loading the
	// current scene's panorama. A mounted viewer is unmounted first.
	//
	// Parameters:
	//   - surface: the drawable area and its device
	//
	// Returns:
	//   - error: error if the surface is unusable or GPU resources could not be created
	Mount(surface panorama.Surface) error

	// Unmount releases every GPU resource, detaches input and invalidates in-flight loads.
	// Safe to call when not mounted.
	Unmount()

	// Release unmounts the viewer and stops the loader it created when none was supplied via
	// WithLoader. Mount fails with ErrReleased afterwards.
	Release()

	// Mounted reports whether the viewer currently owns a surface.
	Mounted() bool

	// Resize updates the surface size and camera aspect. Ignored when not mounted or when
	// either dimension is zero.
	//
	// Parameters:
	//   - width, height: the new size in pixels
	Resize(width, height int)

	// Frame advances one animation frame: applies finished loads, auto-rotates, renders and
	// emits view state changes.
	//
	// Parameters:
	//   - dt: seconds since the previous frame
	Frame(dt float64)

	// PointerDown starts a drag.
	PointerDown(x, y float64)

	// PointerMove rotates the view while dragging.
	PointerMove(x, y float64)

	// PointerUp ends a drag.
	PointerUp()

	// PointerLeave ends a drag when the pointer leaves the surface.
	PointerLeave()

	// TouchStart starts a drag for a single touch point.
	TouchStart(touches []orientation.Point)

	// TouchMove rotates the view while a single touch drags.
	TouchMove(touches []orientation.Point)

	// TouchEnd ends a touch drag.
	TouchEnd()

	// Wheel zooms by a scroll delta in pixels (positive = zoom out).
	//
	// Returns:
	//   - bool: true when the host must suppress its default scroll
	Wheel(deltaY float64) bool

	// HandleKey applies a keyboard shortcut.
	//
	// Parameters:
	//   - keyCode: the virtual key code
	//
	// Returns:
	//   - bool: true if the key was handled
	HandleKey(keyCode uint32) bool

	// SwitchScene makes the scene with the given id current. Unknown ids are a no-op.
	//
	// Parameters:
	//   - id: the scene id
	//
	// Returns:
	//   - bool: false if id is unknown
	SwitchScene(id string) bool

	// SwitchSceneIndex makes the i-th scene current. Out-of-range indices are a no-op.
	//
	// Parameters:
	//   - i: the zero-based scene index
	//
	// Returns:
	//   - bool: false if i is out of range
	SwitchSceneIndex(i int) bool

	// ResetView restores longitude, latitude, default field of view and auto-rotation.
	ResetView()

	// ZoomIn narrows the field of view by one step.
	ZoomIn()

	// ZoomOut widens the field of view by one step.
	ZoomOut()

	// ToggleFullscreen asks the host to enter or leave fullscreen. Failures are ignored.
	ToggleFullscreen()

	// CarouselNext slides the scene picker forward by one thumbnail.
	CarouselNext()

	// CarouselPrev slides the scene picker back by one thumbnail.
	CarouselPrev()

	// VisibleScenes returns the scenes inside the picker window.
	VisibleScenes() []Scene

	// FloorplanScenes returns the scenes shown on the floorplan map.
	FloorplanScenes() []Scene

	// ToggleInfo shows or hides the scene info panel.
	ToggleInfo()

	// ToggleCarousel shows or hides the thumbnail picker.
	ToggleCarousel()

	// ToggleFloorplan shows or hides the floorplan map.
	ToggleFloorplan()

	// ToggleHotspots shows or hides hotspot markers.
	ToggleHotspots()

	// Share offers a link to the current scene through the share capability, falling back to
	// the clipboard.
	//
	// Parameters:
	//   - ctx: cancels the share request
	//
	// Returns:
	//   - string: the shared link
	Share(ctx context.Context) string

	// Retry reloads the current scene's panorama after a failure.
	//
	// Returns:
	//   - bool: false when not mounted
	Retry() bool

	// Embedded reports whether the viewer is shown inline rather than as a modal.
	Embedded() bool

	// Close invokes the host close callback. Embedded viewers have no close affordance.
	//
	// Returns:
	//   - bool: true if the callback ran
	Close() bool

	// Orientation returns the current orientation state.
	Orientation() orientation.State

	// State returns the current view state snapshot.
	State() ViewState

	// Subscribe registers a view state listener. It receives the current state immediately.
	//
	// Parameters:
	//   - l: the listener
	//
	// Returns:
	//   - func(): removes the listener
	Subscribe(l Listener) func()

	// Attach wires window input to the viewer until Unmount.
	//
	// Parameters:
	//   - src: the input source
	Attach(src InputSource)
}

var _ Viewer = &viewer{}

// NewViewer creates a viewer over scenes. The first scene is current unless WithInitialScene
// names another one.
//
// Parameters:
//   - scenes: the tour's scenes in display order
//   - options: functional options to configure the viewer
//
// Returns:
//   - Viewer: the unmounted viewer
//   - error: ErrNoScenes, or a validation error for duplicate or incomplete scenes
func NewViewer(scenes []Scene, options ...ViewerBuilderOption) (Viewer, error) {
	if err := (Manifest{Scenes: scenes}).Validate(); err != nil {
		return nil, err
	}

	v := &viewer{
		id:             uuid.NewString(),
		scenes:         slices.Clone(scenes),
		index:          make(map[string]int, len(scenes)),
		carouselLen:    5,
		sphereRadius:   panorama.DefaultRadius,
		widthSegments:  panorama.DefaultWidthSegments,
		heightSegments: panorama.DefaultHeightSegments,
		linkCopiedFor:  2,
		showCarousel:   true,
		showFloorplan:  true,
		showHotspots:   true,
		wheelNotch:     100,
		shareBaseURL:   "https://localhost/tour",
		fullscreen:     NoopFullscreen{},
		share:          NoopShare{},
		clipboard:      NoopClipboard{},
		cursor:         NoopCursor{},
		listeners:      make(map[int]Listener),
	}
	for i, s := range v.scenes {
		v.index[s.ID] = i
	}

	for _, option := range options {
		option(v)
	}
	v.geometry = panorama.NewSphere(v.sphereRadius, v.widthSegments, v.heightSegments)

	v.log = logging.With().Str("component", "viewer").Str("viewer_id", v.id).Logger()
	v.orient = orientation.NewController(v.orientOpts...)
	v.carousel = carousel.NewCarousel(len(v.scenes), v.carouselLen)

	if idx, ok := v.index[v.initialSceneID]; ok {
		v.current = idx
	} else if v.initialSceneID != "" {
		v.log.Warn().Str("scene", v.initialSceneID).Msg("initial scene not in tour, starting at the first scene")
	}
	v.carousel.Reveal(v.current)

	if v.loader == nil {
		v.loader = loader.NewLoader()
		v.ownsLoader = true
	}
	return v, nil
}

// NewViewerFromManifest creates a viewer from a manifest, applying its initial scene and
// embed flag before options.
func NewViewerFromManifest(m Manifest, options ...ViewerBuilderOption) (Viewer, error) {
	base := []ViewerBuilderOption{WithInitialScene(m.InitialSceneID), WithEmbedded(m.Embedded)}
	return NewViewer(m.Scenes, append(base, options...)...)
}

func (v *viewer) ID() string {
	return v.id
}

func (v *viewer) Scenes() []Scene {
	return slices.Clone(v.scenes)
}

func (v *viewer) CurrentScene() Scene {
	return v.scenes[v.current]
}

func (v *viewer) Mount(surface panorama.Surface) error {
	if v.released {
		return ErrReleased
	}
	if !surface.Valid() {
		return fmt.Errorf("cannot mount on a %dx%d surface without a device", surface.Width, surface.Height)
	}
	if v.mounted {
		v.Unmount()
	}

	v.surface = surface
	v.mounted = true
	v.log.Info().Int("width", surface.Width).Int("height", surface.Height).Msg("viewer mounted")

	err := v.buildBundle()
	if err == nil {
		v.startLoad()
	}
	v.emit()
	return err
}

func (v *viewer) Unmount() {
	if !v.mounted {
		return
	}
	v.teardownBundle()
	// Loads still in flight now carry a stale generation.
	v.generation++
	v.mu.Lock()
	v.pending = nil
	v.mu.Unlock()

	if v.detach != nil {
		v.detach()
		v.detach = nil
	}
	v.orient.PointerLeave()
	v.cursor.SetCursor(v.orient.Cursor())

	v.mounted = false
	v.loading = false
	v.surface = panorama.Surface{}
	v.log.Info().Msg("viewer unmounted")
	v.emit()
}

func (v *viewer) Release() {
	if v.released {
		return
	}
	v.Unmount()
	v.released = true
	if v.ownsLoader {
		v.loader.Close()
	}
}

func (v *viewer) Mounted() bool {
	return v.mounted
}

func (v *viewer) Resize(width, height int) {
	if !v.mounted || width <= 0 || height <= 0 {
		return
	}
	v.surface.Width, v.surface.Height = width, height
	v.surface.Device.Resize(width, height)
	if v.bundle != nil {
		v.bundle.Camera().SetAspect(float32(width) / float32(height))
	}
}

func (v *viewer) Frame(dt float64) {
	v.applyCompletions()
	if !v.mounted {
		return
	}

	v.orient.Tick()

	if v.linkCopiedLeft > 0 {
		v.linkCopiedLeft = math.Max(0, v.linkCopiedLeft-dt)
	}

	if v.bundle != nil {
		cam := v.bundle.Camera()
		cam.SetFovDegrees(v.orient.State().FieldOfView)
		if err := v.bundle.Render(); err != nil {
			if msg := err.Error(); msg != v.lastRenderErr {
				v.log.Error().Err(err).Msg("frame render failed")
				v.lastRenderErr = msg
			}
		} else {
			v.lastRenderErr = ""
		}
	}
	v.emit()
}

func (v *viewer) PointerDown(x, y float64) {
	if !v.mounted {
		return
	}
	v.orient.PointerDown(x, y)
	v.cursor.SetCursor(v.orient.Cursor())
}

func (v *viewer) PointerMove(x, y float64) {
	if !v.mounted {
		return
	}
	v.orient.PointerMove(x, y)
}

func (v *viewer) PointerUp() {
	v.orient.PointerUp()
	v.cursor.SetCursor(v.orient.Cursor())
}

func (v *viewer) PointerLeave() {
	v.orient.PointerLeave()
	v.cursor.SetCursor(v.orient.Cursor())
}

func (v *viewer) TouchStart(touches []orientation.Point) {
	if !v.mounted {
		return
	}
	v.orient.TouchStart(touches)
}

func (v *viewer) TouchMove(touches []orientation.Point) {
	if !v.mounted {
		return
	}
	v.orient.TouchMove(touches)
}

func (v *viewer) TouchEnd() {
	v.orient.TouchEnd()
}

func (v *viewer) Wheel(deltaY float64) bool {
	if !v.mounted {
		return false
	}
	return v.orient.Wheel(deltaY)
}

func (v *viewer) SwitchScene(id string) bool {
	idx, ok := v.index[id]
	if !ok {
		v.log.Warn().Str("scene", id).Msg("switch to unknown scene ignored")
		return false
	}
	return v.switchTo(idx)
}

func (v *viewer) SwitchSceneIndex(i int) bool {
	if i < 0 || i >= len(v.scenes) {
		return false
	}
	return v.switchTo(i)
}

func (v *viewer) ResetView() {
	v.orient.ResetView()
	v.cursor.SetCursor(v.orient.Cursor())
	v.emit()
}

func (v *viewer) ZoomIn() {
	v.orient.ZoomIn()
	v.emit()
}

func (v *viewer) ZoomOut() {
	v.orient.ZoomOut()
	v.emit()
}

func (v *viewer) ToggleFullscreen() {
	want := !v.fullscreen.IsFullscreen()
	if err := v.fullscreen.SetFullscreen(want); err != nil {
		v.log.Debug().Err(err).Bool("fullscreen", want).Msg("fullscreen request refused")
	}
	v.emit()
}

func (v *viewer) CarouselNext() {
	v.carousel.Next()
	v.emit()
}

func (v *viewer) CarouselPrev() {
	v.carousel.Prev()
	v.emit()
}

func (v *viewer) VisibleScenes() []Scene {
	start, end := v.carousel.Window()
	return slices.Clone(v.scenes[start:end])
}

func (v *viewer) FloorplanScenes() []Scene {
	return slices.Clone(v.scenes[:min(floorplanSize, len(v.scenes))])
}

func (v *viewer) ToggleInfo() {
	v.showInfo = !v.showInfo
	v.emit()
}

func (v *viewer) ToggleCarousel() {
	v.showCarousel = !v.showCarousel
	v.emit()
}

func (v *viewer) ToggleFloorplan() {
	v.showFloorplan = !v.showFloorplan
	v.emit()
}

func (v *viewer) ToggleHotspots() {
	v.showHotspots = !v.showHotspots
	v.emit()
}

func (v *viewer) Share(ctx context.Context) string {
	scene := v.CurrentScene()
	link := v.shareLink(scene)
	data := ShareData{
		Title: scene.Name + " - 360° Virtual Tour",
		Text:  "Check out this 360° view of " + scene.Name,
		URL:   link,
	}

	v.shareURL = ""
	err := v.share.Share(ctx, data)
	if err == nil {
		v.emit()
		return link
	}
	v.log.Debug().Err(err).Msg("share unavailable, copying link")

	if err := v.clipboard.WriteText(ctx, link); err != nil {
		v.log.Warn().Err(err).Msg("clipboard unavailable, showing link")
		v.shareURL = link
	} else {
		v.linkCopiedLeft = v.linkCopiedFor
	}
	v.emit()
	return link
}

func (v *viewer) Retry() bool {
	if !v.mounted {
		return false
	}
	if v.bundle == nil {
		if err := v.buildBundle(); err != nil {
			v.emit()
			return true
		}
	}
	v.startLoad()
	v.emit()
	return true
}

func (v *viewer) Embedded() bool {
	return v.embedded
}

func (v *viewer) Close() bool {
	if v.embedded || v.onClose == nil {
		return false
	}
	v.onClose()
	return true
}

func (v *viewer) Orientation() orientation.State {
	return v.orient.State()
}

func (v *viewer) State() ViewState {
	scene := v.CurrentScene()
	st := v.orient.State()
	start, _ := v.carousel.Window()
	return ViewState{
		ViewerID:      v.id,
		SceneID:       scene.ID,
		SceneName:     scene.Name,
		Mounted:       v.mounted,
		Loading:       v.loading,
		Error:         v.errMsg,
		Fullscreen:    v.fullscreen.IsFullscreen(),
		AutoRotating:  st.AutoRotating,
		FieldOfView:   st.FieldOfView,
		CarouselIndex: start,
		VisibleScenes: v.VisibleScenes(),
		CanScrollPrev: v.carousel.CanPrev(),
		CanScrollNext: v.carousel.CanNext(),
		ShowInfo:      v.showInfo,
		ShowCarousel:  v.showCarousel,
		ShowFloorplan: v.showFloorplan,
		ShowHotspots:  v.showHotspots,
		LinkCopied:    v.linkCopiedLeft > 0,
		ShareURL:      v.shareURL,
		Embedded:      v.embedded,
	}
}

func (v *viewer) Subscribe(l Listener) func() {
	if l == nil {
		return func() {}
	}
	id := v.nextListener
	v.nextListener++
	v.listeners[id] = l
	l(v.State())
	return func() {
		delete(v.listeners, id)
	}
}

// switchTo makes scenes[idx] current, resets orientation and rebuilds GPU resources when the
// panorama changes. Field of view is kept.
func (v *viewer) switchTo(idx int) bool {
	prev := v.scenes[v.current]
	v.current = idx
	v.orient.ResetOrientation()
	v.cursor.SetCursor(v.orient.Cursor())
	v.carousel.Reveal(idx)
	v.shareURL = ""

	next := v.scenes[idx]
	v.log.Info().Str("from", prev.ID).Str("scene", next.ID).Msg("switching scene")

	if v.mounted && (prev.ID != next.ID || v.bundle == nil) {
		v.teardownBundle()
		if err := v.buildBundle(); err == nil {
			v.startLoad()
		}
	}
	v.emit()
	return true
}

// buildBundle creates the camera and sphere resources for the current scene.
func (v *viewer) buildBundle() error {
	scene := v.CurrentScene()
	ctrl := camera.NewCameraController(v.orient,
		camera.WithLookRadius(v.sphereRadius),
		camera.WithEyeOffset(v.cameraOffset[0], v.cameraOffset[1], v.cameraOffset[2]),
	)
	cam := camera.NewCamera(
		camera.WithAspect(float32(v.surface.Width)/float32(v.surface.Height)),
		camera.WithClipPlanes(1, v.sphereRadius*2.2),
		camera.WithController(ctrl),
		camera.WithFovDegrees(v.orient.State().FieldOfView),
	)

	label := fmt.Sprintf("viewer_%s_%s", v.id[:8], scene.ID)
	bundle, err := panorama.NewBundle(v.surface.Device, label, v.geometry, cam)
	if err != nil {
		v.loading = false
		v.errMsg = fmt.Sprintf("failed to prepare %q", scene.Name)
		v.log.Error().Err(err).Str("scene", scene.ID).Msg("failed to create panorama resources")
		return err
	}
	v.bundle = bundle
	return nil
}

// teardownBundle cancels the in-flight load and releases the current bundle.
func (v *viewer) teardownBundle() {
	if v.cancelLoad != nil {
		v.cancelLoad()
		v.cancelLoad = nil
	}
	if v.bundle != nil {
		v.bundle.Release()
		v.bundle = nil
	}
}

// startLoad requests the current scene's panorama. The completion is queued for the frame loop
// and tagged with a fresh generation so older loads are discarded.
func (v *viewer) startLoad() {
	if v.cancelLoad != nil {
		v.cancelLoad()
	}
	ctx, cancel := context.WithCancel(context.Background())
	v.cancelLoad = cancel

	v.generation++
	gen := v.generation
	scene := v.CurrentScene()

	v.loading = true
	v.errMsg = ""
	v.log.Debug().Str("scene", scene.ID).Str("locator", scene.PanoramaURL).Uint64("generation", gen).Msg("loading panorama")

	v.loader.LoadAsync(ctx, scene.PanoramaURL, func(r loader.Result) {
		v.mu.Lock()
		v.pending = append(v.pending, completion{generation: gen, scene: scene, result: r})
		v.mu.Unlock()
	})
}

// applyCompletions drains the completion queue on the frame loop.
func (v *viewer) applyCompletions() {
	v.mu.Lock()
	done := v.pending
	v.pending = nil
	v.mu.Unlock()

	for _, c := range done {
		if c.generation != v.generation || !v.mounted || v.bundle == nil {
			v.log.Debug().Str("scene", c.scene.ID).Uint64("generation", c.generation).Msg("discarding stale panorama load")
			continue
		}
		v.loading = false
		if c.result.Err != nil {
			v.errMsg = fmt.Sprintf("failed to load panorama for %q", c.scene.Name)
			v.log.Error().Err(c.result.Err).Str("scene", c.scene.ID).Msg("panorama load failed")
			continue
		}
		if err := v.bundle.SetTexture(c.result.Texture); err != nil {
			v.errMsg = fmt.Sprintf("failed to load panorama for %q", c.scene.Name)
			v.log.Error().Err(err).Str("scene", c.scene.ID).Msg("panorama upload failed")
			continue
		}
		if v.cancelLoad != nil {
			v.cancelLoad()
			v.cancelLoad = nil
		}
		v.log.Info().Str("scene", c.scene.ID).Uint32("width", c.result.Texture.Width).Msg("panorama ready")
	}
}

func (v *viewer) shareLink(scene Scene) string {
	u, err := url.Parse(v.shareBaseURL)
	if err != nil {
		return v.shareBaseURL + "?scene=" + url.QueryEscape(scene.ID)
	}
	q := u.Query()
	q.Set("scene", scene.ID)
	u.RawQuery = q.Encode()
	return u.String()
}

// emit notifies listeners when the view state changed since the last emission.
func (v *viewer) emit() {
	st := v.State()
	if v.emitted && st.Equal(v.last) {
		return
	}
	v.last = st
	v.emitted = true
	for _, l := range v.listeners {
		l(st)
	}
}
