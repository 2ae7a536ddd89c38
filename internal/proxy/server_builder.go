package proxy

import (
	"net/http"
	"time"
)

// ServerBuilderOption is a functional option applied to a server during construction via NewServer.
type ServerBuilderOption func(*server)

// WithListenAddr sets the address Serve listens on.
//
// Parameters:
//   - addr: host:port, e.g. ":8080"
//
// Returns:
//   - ServerBuilderOption: a function that applies the listen address to a server
func WithListenAddr(addr string) ServerBuilderOption {
	return func(s *server) {
		if addr != "" {
			s.listen = addr
		}
	}
}

// WithAPIBaseURL sets the backend base URL. A trailing /api is removed.
//
// Parameters:
//   - base: the backend URL
//
// Returns:
//   - ServerBuilderOption: a function that applies the base URL to a server
func WithAPIBaseURL(base string) ServerBuilderOption {
	return func(s *server) {
		s.apiBaseURL = base
	}
}

// WithHTTPClient replaces the client used for backend fetches. The upstream timeout is
// ignored when a client is supplied.
func WithHTTPClient(client *http.Client) ServerBuilderOption {
	return func(s *server) {
		s.client = client
	}
}

// WithUpstreamTimeout bounds each backend fetch.
func WithUpstreamTimeout(timeout time.Duration) ServerBuilderOption {
	return func(s *server) {
		if timeout > 0 {
			s.upstreamTimeout = timeout
		}
	}
}

// WithShutdownTimeout bounds graceful shutdown.
func WithShutdownTimeout(timeout time.Duration) ServerBuilderOption {
	return func(s *server) {
		if timeout > 0 {
			s.shutdownTimeout = timeout
		}
	}
}

// WithRateLimit limits /api requests per client IP. A zero limit disables rate limiting.
//
// Parameters:
//   - requests: the number of requests allowed per window
//   - window: the window length
//
// Returns:
//   - ServerBuilderOption: a function that applies the rate limit to a server
func WithRateLimit(requests int, window time.Duration) ServerBuilderOption {
	return func(s *server) {
		s.rateLimit = requests
		if window > 0 {
			s.rateWindow = window
		}
	}
}

// WithCORSOrigins sets the allowed CORS origins.
func WithCORSOrigins(origins ...string) ServerBuilderOption {
	return func(s *server) {
		s.corsOrigins = origins
	}
}

// WithMaxImageBytes caps the size of relayed bodies.
func WithMaxImageBytes(n int64) ServerBuilderOption {
	return func(s *server) {
		if n > 0 {
			s.maxImageBytes = n
		}
	}
}

// WithBreaker sets the circuit breaker guarding backend fetches.
func WithBreaker(cfg BreakerConfig) ServerBuilderOption {
	return func(s *server) {
		s.breaker = cfg
	}
}
