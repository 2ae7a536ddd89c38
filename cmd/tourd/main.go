// Command tourd serves the tour HTTP proxy: panorama and image relays plus room manifests,
// supervised so a crashed listener is restarted.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Carmen-Shannon/oxy-tour/internal/config"
	"github.com/Carmen-Shannon/oxy-tour/internal/logging"
	"github.com/Carmen-Shannon/oxy-tour/internal/proxy"
	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (overrides "+config.ConfigPathEnvVar+")")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath); err != nil {
		logging.Error().Err(err).Msg("tourd exited with error")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logging.Init(cfg.Log.Logging())

	srv := proxy.NewServer(serverOptions(cfg.Proxy)...)

	sup := suture.New("tourd", suture.Spec{
		EventHook: eventHook(logging.With().Str("component", "supervisor").Logger()),
		Timeout:   cfg.Proxy.ShutdownTimeout + time.Second,
	})
	sup.Add(srv)

	logging.Info().Str("addr", cfg.Proxy.Listen).Str("api", cfg.Proxy.APIBaseURL).Msg("tourd starting")
	if err := sup.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logging.Info().Msg("tourd stopped")
	return nil
}

func serverOptions(cfg config.ProxyConfig) []proxy.ServerBuilderOption {
	return []proxy.ServerBuilderOption{
		proxy.WithListenAddr(cfg.Listen),
		proxy.WithAPIBaseURL(cfg.APIBaseURL),
		proxy.WithUpstreamTimeout(cfg.UpstreamTimeout),
		proxy.WithShutdownTimeout(cfg.ShutdownTimeout),
		proxy.WithRateLimit(cfg.RateLimit, cfg.RateWindow),
		proxy.WithCORSOrigins(cfg.CORSOrigins...),
		proxy.WithMaxImageBytes(cfg.MaxImageBytes),
		proxy.WithBreaker(proxy.BreakerConfig{
			MaxRequests:      cfg.Breaker.MaxRequests,
			Interval:         cfg.Breaker.Interval,
			Timeout:          cfg.Breaker.Timeout,
			FailureThreshold: cfg.Breaker.FailureThreshold,
		}),
	}
}

// eventHook forwards supervisor events to zerolog. Failures and backoff are warnings.
func eventHook(log zerolog.Logger) suture.EventHook {
	return func(e suture.Event) {
		ev := log.Info()
		switch e.Type() {
		case suture.EventTypeServicePanic, suture.EventTypeServiceTerminate, suture.EventTypeBackoff:
			ev = log.Warn()
		}
		ev.Fields(e.Map()).Msg(e.String())
	}
}
