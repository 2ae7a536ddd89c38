package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Carmen-Shannon/oxy-tour/internal/logging"
	gobreaker "github.com/sony/gobreaker/v2"
)

// BreakerConfig configures the circuit breaker guarding remote panorama fetches.
type BreakerConfig struct {
	// MaxRequests is the number of trial requests allowed while half-open.
	MaxRequests uint32
	// Interval is the cyclic period of the closed state used to clear counts.
	Interval time.Duration
	// Timeout is how long the breaker stays open before going half-open.
	Timeout time.Duration
	// FailureThreshold is the number of consecutive failures that opens the breaker.
	FailureThreshold uint32
}

// DefaultBreakerConfig returns the breaker settings used when none are configured.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// httpLoaderBackend fetches panoramas over HTTP(S) behind a circuit breaker.
// The response body is buffered in full before decoding.
type httpLoaderBackend struct {
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	maxSize int64
}

var _ loaderBackend = &httpLoaderBackend{}

func newHTTPLoaderBackend(client *http.Client, cfg BreakerConfig, maxSize int64) *httpLoaderBackend {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	log := logging.With().Str("component", "loader").Logger()
	settings := gobreaker.Settings{
		Name:        "panorama-fetch",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
		},
	}
	return &httpLoaderBackend{
		client:  client,
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
		maxSize: maxSize,
	}
}

func (b *httpLoaderBackend) Open(ctx context.Context, locator string) (io.ReadCloser, error) {
	body, err := b.breaker.Execute(func() ([]byte, error) {
		return b.fetch(ctx, locator)
	})
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}

func (b *httpLoaderBackend) fetch(ctx context.Context, locator string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, locator)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("fetch %s: unexpected status %d", locator, resp.StatusCode)
	}

	reader := io.Reader(resp.Body)
	if b.maxSize > 0 {
		reader = io.LimitReader(resp.Body, b.maxSize+1)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", locator, err)
	}
	if b.maxSize > 0 && int64(len(body)) > b.maxSize {
		return nil, fmt.Errorf("fetch %s: body exceeds %d bytes", locator, b.maxSize)
	}
	return body, nil
}
