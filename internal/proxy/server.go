// Package proxy serves the HTTP routes the tour host uses to reach the hotel backend: image and
// panorama relays that sidestep browser CORS limits, and a tour manifest route that turns a
// room record into a scene list.
package proxy

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Carmen-Shannon/oxy-tour/internal/logging"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

// server is the implementation of the Server interface.
type server struct {
	listen          string
	apiBaseURL      string
	client          *http.Client
	upstreamTimeout time.Duration
	shutdownTimeout time.Duration
	rateLimit       int
	rateWindow      time.Duration
	corsOrigins     []string
	maxImageBytes   int64
	breaker         BreakerConfig

	up      *upstream
	handler http.Handler
	log     zerolog.Logger
}

// Server is the panorama proxy. It is a suture.Service: Serve blocks until ctx is cancelled and
// then shuts the listener down gracefully.
type Server interface {
	suture.Service

	// Handler returns the routed HTTP handler, for mounting elsewhere or testing.
	//
	// Returns:
	//   - http.Handler: the router with all middleware applied
	Handler() http.Handler

	// Addr returns the configured listen address.
	Addr() string

	// String names the service in supervisor events.
	String() string
}

var _ Server = &server{}

// NewServer creates a proxy server with the options applied.
//
// Parameters:
//   - options: a variadic list of ServerBuilderOption functions to configure the server
//
// Returns:
//   - Server: the configured, not yet listening server
func NewServer(options ...ServerBuilderOption) Server {
	s := &server{
		listen:          ":8080",
		apiBaseURL:      "http://localhost:8000",
		upstreamTimeout: 30 * time.Second,
		shutdownTimeout: 10 * time.Second,
		rateLimit:       120,
		rateWindow:      time.Minute,
		corsOrigins:     []string{"*"},
		maxImageBytes:   64 << 20,
		breaker: BreakerConfig{
			MaxRequests:      1,
			Interval:         time.Minute,
			Timeout:          30 * time.Second,
			FailureThreshold: 5,
		},
		log: logging.With().Str("component", "proxy").Logger(),
	}
	for _, option := range options {
		option(s)
	}
	if s.client == nil {
		s.client = &http.Client{Timeout: s.upstreamTimeout}
	}

	s.up = newUpstream(s.apiBaseURL, s.client, s.breaker, s.maxImageBytes, s.log)
	s.handler = s.routes()
	return s
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         86400,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		if s.rateLimit > 0 {
			r.Use(httprate.Limit(s.rateLimit, s.rateWindow,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
					writeError(w, http.StatusTooManyRequests, "Too many requests")
				}),
			))
		}
		r.Get("/panorama", s.handlePanorama)
		r.Get("/image", s.handleImage)
		r.Get("/tours/{roomID}", s.handleTour)
	})
	return r
}

func (s *server) Handler() http.Handler {
	return s.handler
}

func (s *server) Addr() string {
	return s.listen
}

func (s *server) String() string {
	return "tour-proxy"
}

func (s *server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.listen,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.listen).Msg("proxy listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("proxy server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("proxy server shutdown failed: %w", err)
		}
		<-errCh
		s.log.Info().Msg("proxy stopped")
		return ctx.Err()
	}
}
