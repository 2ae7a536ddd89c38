package loader

import (
	"net/http"
	"time"
)

// LoaderBuilderOption is a functional option for configuring a Loader.
type LoaderBuilderOption func(*loader)

// WithRoot sets the directory relative file locators resolve against.
//
// Parameters:
//   - root: the base directory
//
// Returns:
//   - LoaderBuilderOption: a function that applies the root to a loader instance
func WithRoot(root string) LoaderBuilderOption {
	return func(l *loader) {
		l.root = root
	}
}

// WithHTTPClient sets the client used for remote panoramas.
//
// Parameters:
//   - client: the HTTP client
//
// Returns:
//   - LoaderBuilderOption: a function that applies the client to a loader instance
func WithHTTPClient(client *http.Client) LoaderBuilderOption {
	return func(l *loader) {
		l.client = client
	}
}

// WithTimeout sets the request timeout of the default HTTP client.
// Ignored when WithHTTPClient is also given.
//
// Parameters:
//   - timeout: the per-request timeout
//
// Returns:
//   - LoaderBuilderOption: a function that applies the timeout to a loader instance
func WithTimeout(timeout time.Duration) LoaderBuilderOption {
	return func(l *loader) {
		if timeout > 0 {
			l.timeout = timeout
		}
	}
}

// WithBreaker sets the circuit breaker settings for remote fetches.
//
// Parameters:
//   - cfg: the breaker configuration
//
// Returns:
//   - LoaderBuilderOption: a function that applies the breaker settings to a loader instance
func WithBreaker(cfg BreakerConfig) LoaderBuilderOption {
	return func(l *loader) {
		l.breaker = cfg
	}
}

// WithMaxTextureSize caps the longest side of decoded panoramas. Zero disables downscaling.
//
// Parameters:
//   - size: the maximum side length in pixels
//
// Returns:
//   - LoaderBuilderOption: a function that applies the cap to a loader instance
func WithMaxTextureSize(size int) LoaderBuilderOption {
	return func(l *loader) {
		if size >= 0 {
			l.maxSize = size
		}
	}
}

// WithMaxBytes caps the size of a remote response body.
//
// Parameters:
//   - n: the maximum body size in bytes, zero for unlimited
//
// Returns:
//   - LoaderBuilderOption: a function that applies the cap to a loader instance
func WithMaxBytes(n int64) LoaderBuilderOption {
	return func(l *loader) {
		l.maxBytes = n
	}
}

// WithWorkers sets the number of decode workers.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker count to a loader instance
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.workers = n
	}
}
