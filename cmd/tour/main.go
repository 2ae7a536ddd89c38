// Command tour opens a panorama tour in a desktop window, or drives it headless for a fixed
// number of frames.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Carmen-Shannon/oxy-tour/engine"
	"github.com/Carmen-Shannon/oxy-tour/engine/loader"
	"github.com/Carmen-Shannon/oxy-tour/engine/orientation"
	"github.com/Carmen-Shannon/oxy-tour/engine/panorama"
	"github.com/Carmen-Shannon/oxy-tour/engine/renderer"
	"github.com/Carmen-Shannon/oxy-tour/engine/tour"
	"github.com/Carmen-Shannon/oxy-tour/engine/window"
	"github.com/Carmen-Shannon/oxy-tour/internal/config"
	"github.com/Carmen-Shannon/oxy-tour/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (overrides "+config.ConfigPathEnvVar+")")
	manifest := flag.String("manifest", "", "manifest file or URL (overrides viewer.manifest)")
	headless := flag.Bool("headless", false, "run without a window")
	frames := flag.Int("frames", 120, "frames to run before exiting in headless mode")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath, *manifest, *headless, *frames); err != nil {
		logging.Error().Err(err).Msg("tour exited with error")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath, manifestFlag string, headless bool, frames int) error {
	// ── Config + Logging ────────────────────────────────────────────────
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logging.Init(cfg.Log.Logging())

	locator := manifestFlag
	if locator == "" {
		locator = cfg.Viewer.Manifest
	}

	// ── Manifest ────────────────────────────────────────────────────────
	client := &http.Client{Timeout: cfg.Loader.Timeout}
	m, err := loadManifest(ctx, client, locator)
	if err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}
	logging.Info().Str("manifest", locator).Int("scenes", len(m.Scenes)).Msg("manifest loaded")

	// ── Viewer ──────────────────────────────────────────────────────────
	ld := loader.NewLoader(loaderOptions(cfg.Loader, locator)...)
	defer ld.Close()
	options := append(viewerOptions(cfg.Viewer), tour.WithLoader(ld))

	if headless {
		return runHeadless(ctx, cfg, m, options, frames)
	}
	return runWindowed(ctx, cfg, m, options)
}

func runHeadless(ctx context.Context, cfg *config.Config, m tour.Manifest, options []tour.ViewerBuilderOption, frames int) error {
	v, err := tour.NewViewerFromManifest(m, options...)
	if err != nil {
		return err
	}
	unsubscribe := v.Subscribe(logState)
	defer unsubscribe()

	device := panorama.NewNullDevice()
	if err := v.Mount(panorama.Surface{Width: cfg.Window.Width, Height: cfg.Window.Height, Device: device}); err != nil {
		return err
	}
	defer v.Release()

	var eng engine.Engine
	count := 0
	eng = engine.NewEngine(
		engine.WithProfiling(cfg.Renderer.Profiling),
		engine.WithFrameRate(60),
		engine.WithFrameCallback(func(dt float32) {
			v.Frame(float64(dt))
			count++
			if frames > 0 && count >= frames {
				eng.Quit()
			}
		}),
	)
	if err := eng.Run(ctx); err != nil {
		return err
	}

	total, textured := device.Frames()
	logging.Info().Int("frames", total).Int("textured", textured).Str("scene", v.CurrentScene().ID).Msg("headless run finished")
	return nil
}

func runWindowed(ctx context.Context, cfg *config.Config, m tour.Manifest, options []tour.ViewerBuilderOption) error {
	// ── Window ──────────────────────────────────────────────────────────
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithMinSize(320, 240),
		window.WithFullscreen(cfg.Window.Fullscreen),
	)
	if err != nil {
		return err
	}
	defer win.Close()

	// ── Renderer ────────────────────────────────────────────────────────
	rendererOpts, err := rendererOptions(cfg.Renderer)
	if err != nil {
		return err
	}
	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win, rendererOpts...)
	if err != nil {
		return err
	}
	defer r.Release()

	device, err := renderer.NewPanoramaDevice(r)
	if err != nil {
		return err
	}

	// ── Viewer ──────────────────────────────────────────────────────────
	options = append(options,
		tour.WithFullscreen(win),
		tour.WithClipboard(tour.ClipboardFunc(win.SetClipboard)),
		tour.WithCursor(tour.CursorFunc(func(c orientation.Cursor) { win.SetCursor(cursorShape(c)) })),
		tour.WithCloseCallback(win.RequestClose),
	)
	v, err := tour.NewViewerFromManifest(m, options...)
	if err != nil {
		return err
	}
	unsubscribe := v.Subscribe(logState)
	defer unsubscribe()

	if err := v.Mount(panorama.Surface{Width: win.Width(), Height: win.Height(), Device: device}); err != nil {
		return err
	}
	defer v.Release()
	v.Attach(win)

	// ── Engine ──────────────────────────────────────────────────────────
	engineOpts := []engine.EngineBuilderOption{
		engine.WithWindow(win),
		engine.WithProfiling(cfg.Renderer.Profiling),
		engine.WithFrameCallback(func(dt float32) { v.Frame(float64(dt)) }),
	}
	if cfg.Renderer.FrameRate > 0 {
		engineOpts = append(engineOpts, engine.WithFrameRate(float64(cfg.Renderer.FrameRate)))
	} else {
		engineOpts = append(engineOpts, engine.WithUncappedFrameRate())
	}
	return engine.NewEngine(engineOpts...).Run(ctx)
}

// logState reports load failures and share links as they appear.
func logState(s tour.ViewState) {
	if s.Error != "" {
		logging.Warn().Str("scene", s.SceneID).Str("error", s.Error).Msg("panorama failed to load")
	}
	if s.ShareURL != "" {
		logging.Info().Str("url", s.ShareURL).Msg("share link")
	}
}
