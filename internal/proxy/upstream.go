package proxy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-tour/internal/metrics"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
)

// ErrUpstream is wrapped by every failed backend fetch.
var ErrUpstream = errors.New("upstream fetch failed")

// BreakerConfig configures the circuit breaker guarding backend fetches.
type BreakerConfig struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

// fetched is a buffered backend response.
type fetched struct {
	body        []byte
	contentType string
}

// upstream fetches paths from the backend API behind a circuit breaker.
type upstream struct {
	base     string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker[*fetched]
	maxBytes int64
}

func newUpstream(base string, client *http.Client, cfg BreakerConfig, maxBytes int64, log zerolog.Logger) *upstream {
	settings := gobreaker.Settings{
		Name:        "backend",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			// 4xx responses and cancellations do not count as failures
			var se *statusError
			if errors.As(err, &se) && se.code < 500 {
				return true
			}
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.BreakerState.WithLabelValues(name).Set(float64(to))
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
		},
	}
	metrics.BreakerState.WithLabelValues(settings.Name).Set(float64(gobreaker.StateClosed))
	return &upstream{
		base:     normalizeBaseURL(base),
		client:   client,
		breaker:  gobreaker.NewCircuitBreaker[*fetched](settings),
		maxBytes: maxBytes,
	}
}

// normalizeBaseURL strips trailing slashes and a trailing /api so backend paths can be
// appended verbatim.
func normalizeBaseURL(base string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	base = strings.TrimSuffix(base, "/api")
	if base == "" {
		return "http://localhost:8000"
	}
	return base
}

// statusError is a non-2xx backend response.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.code)
}

// get fetches base+path. kind labels the metrics.
func (u *upstream) get(ctx context.Context, kind, path string) (*fetched, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	start := time.Now()
	res, err := u.breaker.Execute(func() (*fetched, error) {
		return u.do(ctx, u.base+path)
	})

	reason := ""
	var se *statusError
	switch {
	case err == nil:
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		reason = "breaker_open"
	case errors.As(err, &se):
		reason = "status"
	default:
		reason = "transport"
	}
	metrics.RecordUpstream(kind, time.Since(start), reason)

	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUpstream, path, err)
	}
	return res, nil
}

func (u *upstream) do(ctx context.Context, target string) (*fetched, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &statusError{code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, u.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > u.maxBytes {
		return nil, fmt.Errorf("body exceeds %d bytes", u.maxBytes)
	}
	return &fetched{body: body, contentType: resp.Header.Get("Content-Type")}, nil
}
