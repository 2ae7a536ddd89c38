package loader

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/internal/logging"
	"github.com/rs/zerolog"
)

var (
	// ErrUnsupportedFormat is returned when the image is not JPEG, PNG or WebP.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrNotFound is returned when the locator does not point to an existing image.
	ErrNotFound = errors.New("panorama not found")

	// ErrClosed is delivered by LoadAsync after Close.
	ErrClosed = errors.New("loader closed")
)

// Result is the outcome of an asynchronous load.
type Result struct {
	// Locator is the path or URL that was loaded.
	Locator string
	// Texture holds the decoded pixels when Err is nil.
	Texture common.TextureStagingData
	// Err is the load error, if any.
	Err error
}

// loader is the implementation of the Loader interface.
type loader struct {
	file *fileLoaderBackend
	http *httpLoaderBackend

	root       string
	client     *http.Client
	breaker    BreakerConfig
	maxSize    int
	maxBytes   int64
	timeout    time.Duration
	workers    int
	pool       worker.DynamicWorkerPool
	nextTaskID atomic.Int64
	closed     atomic.Bool
	closeOnce  sync.Once
	log        zerolog.Logger
}

// Loader defines the public-facing interface for fetching and decoding equirectangular panoramas.
// Locators starting with http:// or https:// are fetched remotely; everything else is read from disk.
type Loader interface {
	// Decode fetches and decodes the image synchronously.
	//
	// Parameters:
	//   - ctx: cancels the fetch
	//   - locator: the path or URL of the panorama
	//
	// Returns:
	//   - common.TextureStagingData: tightly packed RGBA pixels
	//   - error: ErrNotFound, ErrUnsupportedFormat or a wrapped transport/decode error
	Decode(ctx context.Context, locator string) (common.TextureStagingData, error)

	// LoadAsync runs Decode on the worker pool and hands the outcome to done.
	// done runs on a pool goroutine; callers that own single-threaded state must hand the
	// Result back to their own loop.
	//
	// Parameters:
	//   - ctx: cancels the fetch
	//   - locator: the path or URL of the panorama
	//   - done: receives the Result exactly once
	LoadAsync(ctx context.Context, locator string, done func(Result))

	// Close stops the worker pool. Loads submitted afterwards complete immediately with
	// ErrClosed. Safe to call more than once.
	Close()
}

var _ Loader = &loader{}

// NewLoader creates a Loader with the options applied.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: the configured loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		breaker:  DefaultBreakerConfig(),
		maxSize:  8192,
		maxBytes: 64 << 20,
		timeout:  30 * time.Second,
		workers:  2,
		log:      logging.With().Str("component", "loader").Logger(),
	}
	for _, option := range options {
		option(l)
	}
	if l.client == nil {
		l.client = &http.Client{Timeout: l.timeout}
	}

	l.file = newFileLoaderBackend(l.root)
	l.http = newHTTPLoaderBackend(l.client, l.breaker, l.maxBytes)
	l.pool = worker.NewDynamicWorkerPool(max(1, l.workers), 256, 1*time.Second)
	return l
}

func (l *loader) Decode(ctx context.Context, locator string) (common.TextureStagingData, error) {
	if strings.TrimSpace(locator) == "" {
		return common.TextureStagingData{}, fmt.Errorf("%w: empty locator", ErrNotFound)
	}

	rc, err := l.resolveBackend(locator).Open(ctx, locator)
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("failed to open %s: %w", locator, err)
	}
	defer rc.Close()

	d, err := decodePanorama(rc, l.maxSize)
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("failed to decode %s: %w", locator, err)
	}

	if !d.aspectOK() {
		l.log.Warn().
			Str("locator", locator).
			Int("width", d.sourceWidth).
			Int("height", d.sourceHeight).
			Msg("panorama is not 2:1, it will look stretched")
	}
	l.log.Debug().
		Str("locator", locator).
		Str("format", d.format).
		Int("source_width", d.sourceWidth).
		Uint32("width", d.texture.Width).
		Uint32("height", d.texture.Height).
		Msg("panorama decoded")
	return d.texture, nil
}

func (l *loader) LoadAsync(ctx context.Context, locator string, done func(Result)) {
	if l.closed.Load() {
		done(Result{Locator: locator, Err: ErrClosed})
		return
	}
	id := int(l.nextTaskID.Add(1))
	l.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			tex, err := l.Decode(ctx, locator)
			done(Result{Locator: locator, Texture: tex, Err: err})
			return nil, err
		},
	})
}

func (l *loader) Close() {
	l.closeOnce.Do(func() {
		l.closed.Store(true)
		l.pool.ClearTaskQueue()
		l.pool.Stop()
		l.log.Debug().Msg("loader closed")
	})
}

func (l *loader) resolveBackend(locator string) loaderBackend {
	lower := strings.ToLower(locator)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return l.http
	}
	return l.file
}
