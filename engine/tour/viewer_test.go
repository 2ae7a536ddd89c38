package tour

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/loader"
	"github.com/Carmen-Shannon/oxy-tour/engine/orientation"
	"github.com/Carmen-Shannon/oxy-tour/engine/panorama"
)

type loadRequest struct {
	ctx     context.Context
	locator string
	done    func(loader.Result)
}

// fakeLoader records requests and resolves them on demand.
type fakeLoader struct {
	mu       sync.Mutex
	requests []loadRequest
	closed   bool
}

func (f *fakeLoader) Decode(ctx context.Context, locator string) (common.TextureStagingData, error) {
	return testTexture(), nil
}

func (f *fakeLoader) LoadAsync(ctx context.Context, locator string, done func(loader.Result)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, loadRequest{ctx: ctx, locator: locator, done: done})
}

func (f *fakeLoader) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func (f *fakeLoader) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeLoader) request(i int) loadRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[i]
}

func (f *fakeLoader) resolve(i int, err error) {
	r := f.request(i)
	res := loader.Result{Locator: r.locator, Err: err}
	if err == nil {
		res.Texture = testTexture()
	}
	r.done(res)
}

func testTexture() common.TextureStagingData {
	return common.TextureStagingData{Pixels: make([]byte, 4*2*4), Width: 4, Height: 2}
}

func testScenes() []Scene {
	return []Scene{
		{ID: "a", Name: "Lobby", PanoramaURL: "a.jpg"},
		{ID: "b", Name: "Suite", PanoramaURL: "b.jpg"},
		{ID: "c", Name: "Pool", PanoramaURL: "c.jpg"},
	}
}

func newTestViewer(t *testing.T, options ...ViewerBuilderOption) (*viewer, *fakeLoader) {
	t.Helper()
	fl := &fakeLoader{}
	v, err := NewViewer(testScenes(), append([]ViewerBuilderOption{WithLoader(fl), WithSphere(50, 8, 4)}, options...)...)
	if err != nil {
		t.Fatalf("NewViewer: %v", err)
	}
	return v.(*viewer), fl
}

func mountTracked(t *testing.T, v Viewer) (*panorama.Tracker, *panorama.NullDevice) {
	t.Helper()
	dev := panorama.NewNullDevice()
	tr := panorama.NewTracker(dev)
	if err := v.Mount(panorama.Surface{Width: 800, Height: 600, Device: tr}); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return tr, dev
}

func TestNewViewer_Validation(t *testing.T) {
	if _, err := NewViewer(nil); !errors.Is(err, ErrNoScenes) {
		t.Errorf("err = %v, want ErrNoScenes", err)
	}
	dup := []Scene{{ID: "a", Name: "A", PanoramaURL: "a.jpg"}, {ID: "a", Name: "B", PanoramaURL: "b.jpg"}}
	if _, err := NewViewer(dup); err == nil {
		t.Error("expected error for duplicate ids")
	}
}

func TestNewViewer_InitialScene(t *testing.T) {
	v, _ := newTestViewer(t, WithInitialScene("c"))
	if got := v.CurrentScene().ID; got != "c" {
		t.Errorf("current = %q, want c", got)
	}

	v, _ = newTestViewer(t, WithInitialScene("missing"))
	if got := v.CurrentScene().ID; got != "a" {
		t.Errorf("current = %q, want fallback a", got)
	}
}

func TestViewer_MountRejectsInvalidSurface(t *testing.T) {
	v, fl := newTestViewer(t)
	if err := v.Mount(panorama.Surface{Width: 0, Height: 600, Device: panorama.NewNullDevice()}); err == nil {
		t.Fatal("expected error for zero width")
	}
	if v.Mounted() || fl.count() != 0 {
		t.Errorf("mounted = %v, loads = %d", v.Mounted(), fl.count())
	}
}

func TestViewer_LoadLifecycle(t *testing.T) {
	v, fl := newTestViewer(t)
	tr, dev := mountTracked(t, v)

	if fl.count() != 1 || fl.request(0).locator != "a.jpg" {
		t.Fatalf("expected one load for a.jpg, got %d", fl.count())
	}
	if !v.State().Loading {
		t.Error("expected loading state after mount")
	}

	v.Frame(1.0 / 60)
	if _, textured := dev.Frames(); textured != 0 {
		t.Errorf("textured frames before load = %d", textured)
	}

	fl.resolve(0, nil)
	v.Frame(1.0 / 60)
	if v.State().Loading {
		t.Error("loading still set after completion")
	}
	if got := tr.Live(); got != (panorama.Counts{Meshes: 1, Textures: 1, Cameras: 1}) {
		t.Errorf("live = %+v", got)
	}
	if _, textured := dev.Frames(); textured != 1 {
		t.Errorf("textured frames = %d, want 1", textured)
	}

	v.Unmount()
	if got := tr.Live().Total(); got != 0 {
		t.Errorf("live after unmount = %d, want 0", got)
	}
}

func TestViewer_LoadFailureAndRetry(t *testing.T) {
	v, fl := newTestViewer(t)
	tr, _ := mountTracked(t, v)

	fl.resolve(0, errors.New("404"))
	v.Frame(0.016)
	st := v.State()
	if st.Loading {
		t.Error("loading still set after failure")
	}
	if want := `failed to load panorama for "Lobby"`; st.Error != want {
		t.Errorf("error = %q, want %q", st.Error, want)
	}

	if !v.Retry() {
		t.Fatal("Retry returned false while mounted")
	}
	if fl.count() != 2 || v.State().Error != "" || !v.State().Loading {
		t.Fatalf("retry state: loads=%d state=%+v", fl.count(), v.State())
	}
	fl.resolve(1, nil)
	v.Frame(0.016)
	if v.State().Error != "" || tr.Live().Textures != 1 {
		t.Errorf("after retry state=%+v live=%+v", v.State(), tr.Live())
	}

	v.Unmount()
	if v.Retry() {
		t.Error("Retry should fail when unmounted")
	}
}

func TestViewer_StaleLoadDiscarded(t *testing.T) {
	v, fl := newTestViewer(t)
	tr, _ := mountTracked(t, v)

	v.SwitchScene("b")
	if fl.count() != 2 {
		t.Fatalf("loads = %d, want 2", fl.count())
	}
	if fl.request(0).ctx.Err() == nil {
		t.Error("superseded load context not cancelled")
	}

	// the old scene finishes after the switch
	fl.resolve(0, nil)
	v.Frame(0.016)
	if tr.Live().Textures != 0 {
		t.Error("stale texture was applied")
	}
	if !v.State().Loading {
		t.Error("stale completion cleared loading")
	}

	fl.resolve(1, nil)
	v.Frame(0.016)
	if tr.Live().Textures != 1 || v.State().Loading {
		t.Errorf("live=%+v state=%+v", tr.Live(), v.State())
	}
}

func TestViewer_LoadAfterUnmountIgnored(t *testing.T) {
	v, fl := newTestViewer(t)
	tr, _ := mountTracked(t, v)
	v.Unmount()

	fl.resolve(0, nil)
	v.Frame(0.016)
	if got := tr.Live().Total(); got != 0 {
		t.Errorf("live = %d after late load, want 0", got)
	}
}

func TestViewer_SwitchResetsOrientationKeepsZoom(t *testing.T) {
	v, _ := newTestViewer(t)
	mountTracked(t, v)

	v.ZoomIn()
	v.ZoomIn()
	v.ZoomIn()
	v.PointerDown(0, 0)
	v.PointerMove(-600, 200)
	v.PointerUp()

	st := v.Orientation()
	if st.Longitude != 120 || st.Latitude != 40 || st.FieldOfView != 45 || st.AutoRotating {
		t.Fatalf("setup state = %+v", st)
	}

	if !v.SwitchScene("c") {
		t.Fatal("SwitchScene(c) = false")
	}
	st = v.Orientation()
	if st.Longitude != 0 || st.Latitude != 0 || st.FieldOfView != 45 || !st.AutoRotating {
		t.Errorf("after switch state = %+v", st)
	}
}

func TestViewer_ResetViewIdempotent(t *testing.T) {
	v, _ := newTestViewer(t)
	v.ZoomOut()
	v.PointerDown(0, 0)
	v.PointerUp()

	v.ResetView()
	once := v.Orientation()
	v.ResetView()
	twice := v.Orientation()
	if once != twice {
		t.Errorf("reset not idempotent: %+v vs %+v", once, twice)
	}
	if twice.Longitude != 0 || twice.Latitude != 0 || twice.FieldOfView != 75 || !twice.AutoRotating {
		t.Errorf("reset state = %+v", twice)
	}
}

func TestViewer_RepeatedSwitchesDoNotLeak(t *testing.T) {
	v, fl := newTestViewer(t)
	tr, _ := mountTracked(t, v)

	ids := []string{"b", "c", "a", "c", "b", "a", "b"}
	for i, id := range ids {
		v.SwitchScene(id)
		// resolve every other load so some switches happen mid-load
		if i%2 == 0 {
			fl.resolve(fl.count()-1, nil)
			v.Frame(0.016)
		}
	}
	fl.resolve(fl.count()-1, nil)
	v.Frame(0.016)

	live := tr.Live()
	if live.Meshes != 1 || live.Cameras != 1 || live.Textures > 1 {
		t.Errorf("live = %+v, want one resource set", live)
	}
}

func TestViewer_SwitchScenario(t *testing.T) {
	v, _ := newTestViewer(t, WithInitialScene("a"))
	v.SwitchScene("b")
	if v.SwitchScene("z") {
		t.Error("SwitchScene(z) = true for unknown id")
	}
	v.ResetView()

	st := v.Orientation()
	if got := v.CurrentScene().ID; got != "b" {
		t.Errorf("current = %q, want b", got)
	}
	if st.Longitude != 0 || st.Latitude != 0 || st.FieldOfView != 75 {
		t.Errorf("state = %+v", st)
	}
}

func TestViewer_ZoomInClamps(t *testing.T) {
	v, _ := newTestViewer(t)
	for range 10 {
		v.ZoomIn()
	}
	if got := v.Orientation().FieldOfView; got != 30 {
		t.Errorf("fov = %v, want 30", got)
	}
}

func TestViewer_SwitchToCurrentKeepsResources(t *testing.T) {
	v, fl := newTestViewer(t)
	mountTracked(t, v)
	v.PointerDown(0, 0)
	v.PointerMove(-100, 0)
	v.PointerUp()

	v.SwitchScene("a")
	if fl.count() != 1 {
		t.Errorf("loads = %d, want no reload", fl.count())
	}
	if st := v.Orientation(); st.Longitude != 0 || !st.AutoRotating {
		t.Errorf("orientation not reset: %+v", st)
	}
}

func TestViewer_InputIgnoredWhenUnmounted(t *testing.T) {
	v, _ := newTestViewer(t)
	v.PointerDown(0, 0)
	v.PointerMove(100, 100)
	if v.Wheel(-500) {
		t.Error("Wheel handled while unmounted")
	}
	st := v.Orientation()
	if st.Dragging || st.Longitude != 0 || st.FieldOfView != 75 {
		t.Errorf("state = %+v", st)
	}
}

func TestViewer_Resize(t *testing.T) {
	v, _ := newTestViewer(t)
	v.Resize(100, 100)

	_, dev := mountTracked(t, v)
	v.Resize(1024, 0)
	if w, h := dev.Size(); w != 0 || h != 0 {
		t.Errorf("zero-height resize reached device: %dx%d", w, h)
	}
	v.Resize(1024, 512)
	if w, h := dev.Size(); w != 1024 || h != 512 {
		t.Errorf("device size = %dx%d", w, h)
	}
	if got := v.bundle.Camera().Aspect(); got != 2 {
		t.Errorf("aspect = %v, want 2", got)
	}
}

func TestViewer_AutoRotateAdvancesOnFrame(t *testing.T) {
	v, _ := newTestViewer(t, WithOrientationOptions(orientation.WithAutoRotateStep(0.5)))
	mountTracked(t, v)
	v.Frame(0.016)
	v.Frame(0.016)
	if got := v.Orientation().Longitude; got != 1 {
		t.Errorf("longitude = %v, want 1", got)
	}
}

func TestViewer_SubscribeDedupes(t *testing.T) {
	v, _ := newTestViewer(t)
	var got []ViewState
	unsubscribe := v.Subscribe(func(s ViewState) { got = append(got, s) })
	if len(got) != 1 {
		t.Fatalf("initial emissions = %d, want 1", len(got))
	}

	v.ToggleInfo()
	v.ToggleInfo()
	v.ToggleInfo()
	if len(got) != 4 || !got[3].ShowInfo {
		t.Fatalf("emissions = %d, last = %+v", len(got), got[len(got)-1])
	}

	// nothing changes while unmounted
	v.Frame(0.016)
	v.ResetView()
	if len(got) != 4 {
		t.Errorf("duplicate emissions: %d", len(got))
	}

	unsubscribe()
	v.ToggleFloorplan()
	if len(got) != 4 {
		t.Errorf("listener called after unsubscribe")
	}
}

type recordingShare struct {
	err  error
	data []ShareData
}

func (r *recordingShare) Share(_ context.Context, d ShareData) error {
	r.data = append(r.data, d)
	return r.err
}

type recordingClipboard struct {
	err  error
	text []string
}

func (r *recordingClipboard) WriteText(_ context.Context, text string) error {
	r.text = append(r.text, text)
	return r.err
}

func TestViewer_ShareNative(t *testing.T) {
	sh := &recordingShare{}
	cb := &recordingClipboard{}
	v, _ := newTestViewer(t, WithShare(sh), WithClipboard(cb), WithShareBaseURL("https://hotel.example/tour"))
	v.SwitchScene("b")

	link := v.Share(context.Background())
	if link != "https://hotel.example/tour?scene=b" {
		t.Errorf("link = %q", link)
	}
	if len(sh.data) != 1 || sh.data[0].Title != "Suite - 360° Virtual Tour" || sh.data[0].URL != link {
		t.Errorf("share data = %+v", sh.data)
	}
	if len(cb.text) != 0 || v.State().LinkCopied {
		t.Error("clipboard used although sharing succeeded")
	}
}

func TestViewer_ShareFallsBackToClipboard(t *testing.T) {
	cb := &recordingClipboard{}
	v, _ := newTestViewer(t, WithClipboard(cb), WithLinkCopiedDuration(2*time.Second))
	mountTracked(t, v)

	link := v.Share(context.Background())
	if len(cb.text) != 1 || cb.text[0] != link {
		t.Fatalf("clipboard = %v", cb.text)
	}
	if !v.State().LinkCopied {
		t.Fatal("link copied flag not raised")
	}
	v.Frame(1.5)
	if !v.State().LinkCopied {
		t.Error("flag cleared too early")
	}
	v.Frame(0.6)
	if v.State().LinkCopied {
		t.Error("flag still raised after 2s")
	}
}

func TestViewer_ShareShowsLinkWithoutClipboard(t *testing.T) {
	v, _ := newTestViewer(t)
	link := v.Share(context.Background())
	st := v.State()
	if st.ShareURL != link || st.LinkCopied {
		t.Errorf("state = %+v", st)
	}
	if !strings.Contains(link, "scene=a") {
		t.Errorf("link = %q", link)
	}
	v.SwitchScene("b")
	if v.State().ShareURL != "" {
		t.Error("share url kept after scene switch")
	}
}

type fakeFullscreen struct {
	on  bool
	err error
}

func (f *fakeFullscreen) IsFullscreen() bool { return f.on }

func (f *fakeFullscreen) SetFullscreen(on bool) error {
	if f.err != nil {
		return f.err
	}
	f.on = on
	return nil
}

func TestViewer_ToggleFullscreen(t *testing.T) {
	fs := &fakeFullscreen{}
	v, _ := newTestViewer(t, WithFullscreen(fs))
	v.ToggleFullscreen()
	if !v.State().Fullscreen {
		t.Error("not fullscreen after toggle")
	}
	v.ToggleFullscreen()
	if v.State().Fullscreen {
		t.Error("still fullscreen after second toggle")
	}

	fs.err = errors.New("denied")
	v.ToggleFullscreen()
	if v.State().Fullscreen {
		t.Error("refused request changed state")
	}
}

func TestViewer_Close(t *testing.T) {
	closed := 0
	v, _ := newTestViewer(t, WithCloseCallback(func() { closed++ }))
	if !v.Close() || closed != 1 {
		t.Errorf("close ran %d times", closed)
	}

	e, _ := newTestViewer(t, WithEmbedded(true), WithCloseCallback(func() { closed++ }))
	if e.Close() || closed != 1 {
		t.Error("embedded viewer closed")
	}
	if !e.State().Embedded {
		t.Error("embedded flag missing from state")
	}
}

func TestViewer_CursorFollowsDrag(t *testing.T) {
	var cursors []orientation.Cursor
	v, _ := newTestViewer(t, WithCursor(CursorFunc(func(c orientation.Cursor) { cursors = append(cursors, c) })))
	mountTracked(t, v)

	v.PointerDown(10, 10)
	v.PointerLeave()
	if len(cursors) != 2 || cursors[0] != orientation.CursorGrabbing || cursors[1] != orientation.CursorGrab {
		t.Errorf("cursors = %v", cursors)
	}
}

func TestViewer_CursorReleasedBySwitchAndReset(t *testing.T) {
	var cursors []orientation.Cursor
	v, _ := newTestViewer(t, WithCursor(CursorFunc(func(c orientation.Cursor) { cursors = append(cursors, c) })))
	mountTracked(t, v)

	v.PointerDown(10, 10)
	v.SwitchScene("b")
	if last := cursors[len(cursors)-1]; last != orientation.CursorGrab || v.Orientation().Dragging {
		t.Errorf("after switch: cursor = %v, dragging = %v", last, v.Orientation().Dragging)
	}

	v.PointerDown(10, 10)
	v.ResetView()
	if last := cursors[len(cursors)-1]; last != orientation.CursorGrab || v.Orientation().Dragging {
		t.Errorf("after reset: cursor = %v, dragging = %v", last, v.Orientation().Dragging)
	}
}

func TestViewer_PanelDefaults(t *testing.T) {
	v, _ := newTestViewer(t)

	st := v.State()
	if !st.ShowCarousel || !st.ShowFloorplan || !st.ShowHotspots || st.ShowInfo {
		t.Fatalf("initial panels = carousel %v, floorplan %v, hotspots %v, info %v",
			st.ShowCarousel, st.ShowFloorplan, st.ShowHotspots, st.ShowInfo)
	}

	var got []ViewState
	unsubscribe := v.Subscribe(func(s ViewState) { got = append(got, s) })
	defer unsubscribe()

	v.ToggleCarousel()
	if len(got) != 2 || got[1].ShowCarousel {
		t.Errorf("carousel toggle not emitted: %d states", len(got))
	}
	v.ToggleCarousel()
	if !v.State().ShowCarousel {
		t.Error("carousel hidden after second toggle")
	}
}

func TestViewer_Release(t *testing.T) {
	v, err := NewViewer(testScenes())
	if err != nil {
		t.Fatal(err)
	}
	owned := v.(*viewer).loader

	if err := v.Mount(panorama.Surface{Width: 8, Height: 8, Device: panorama.NewNullDevice()}); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	v.Release()
	v.Release()
	if v.Mounted() {
		t.Error("still mounted after Release")
	}
	if err := v.Mount(panorama.Surface{Width: 8, Height: 8, Device: panorama.NewNullDevice()}); !errors.Is(err, ErrReleased) {
		t.Errorf("Mount after Release err = %v, want ErrReleased", err)
	}

	var res loader.Result
	owned.LoadAsync(context.Background(), "a.jpg", func(r loader.Result) { res = r })
	if !errors.Is(res.Err, loader.ErrClosed) {
		t.Errorf("owned loader still accepting work: %+v", res)
	}
}

func TestViewer_ReleaseKeepsSuppliedLoader(t *testing.T) {
	v, fl := newTestViewer(t)
	v.Release()
	if fl.closed {
		t.Error("supplied loader closed by Release")
	}
}

func TestViewer_CarouselAndFloorplan(t *testing.T) {
	scenes := make([]Scene, 7)
	for i := range scenes {
		id := string(rune('a' + i))
		scenes[i] = Scene{ID: id, Name: strings.ToUpper(id), PanoramaURL: id + ".jpg"}
	}
	v, err := NewViewer(scenes, WithLoader(&fakeLoader{}), WithCarouselWindow(3))
	if err != nil {
		t.Fatal(err)
	}

	st := v.State()
	if len(st.VisibleScenes) != 3 || st.CanScrollPrev || !st.CanScrollNext {
		t.Fatalf("initial window = %+v", st)
	}
	for range 10 {
		v.CarouselNext()
	}
	st = v.State()
	if st.CarouselIndex != 4 || st.VisibleScenes[2].ID != "g" || st.CanScrollNext {
		t.Errorf("window after next = %+v", st)
	}

	v.SwitchScene("a")
	if v.State().CarouselIndex != 0 {
		t.Error("switch did not reveal the current scene")
	}

	fp := v.FloorplanScenes()
	if len(fp) != 4 || fp[3].ID != "d" {
		t.Errorf("floorplan = %+v", fp)
	}
}

func TestNewViewerFromManifest(t *testing.T) {
	m := Manifest{InitialSceneID: "b", Embedded: true, Scenes: testScenes()}
	v, err := NewViewerFromManifest(m, WithLoader(&fakeLoader{}))
	if err != nil {
		t.Fatal(err)
	}
	if v.CurrentScene().ID != "b" || !v.Embedded() {
		t.Errorf("scene = %q embedded = %v", v.CurrentScene().ID, v.Embedded())
	}
}
