package main

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-tour/engine/loader"
	"github.com/Carmen-Shannon/oxy-tour/engine/orientation"
	"github.com/Carmen-Shannon/oxy-tour/engine/renderer"
	"github.com/Carmen-Shannon/oxy-tour/engine/tour"
	"github.com/Carmen-Shannon/oxy-tour/engine/window"
	"github.com/Carmen-Shannon/oxy-tour/internal/config"
)

var errNoManifest = errors.New("no manifest given: pass -manifest or set viewer.manifest")

func isRemote(locator string) bool {
	return strings.HasPrefix(locator, "http://") || strings.HasPrefix(locator, "https://")
}

// loadManifest reads the manifest from a URL or a local file.
func loadManifest(ctx context.Context, client *http.Client, locator string) (tour.Manifest, error) {
	if locator == "" {
		return tour.Manifest{}, errNoManifest
	}
	if isRemote(locator) {
		return tour.FetchManifest(ctx, client, locator)
	}
	return tour.LoadManifest(locator)
}

// loaderOptions maps the loader config. Local panoramas resolve against the manifest's
// directory unless a root is configured.
func loaderOptions(cfg config.LoaderConfig, manifest string) []loader.LoaderBuilderOption {
	root := cfg.Root
	if root == "" && manifest != "" && !isRemote(manifest) {
		root = filepath.Dir(manifest)
	}
	return []loader.LoaderBuilderOption{
		loader.WithRoot(root),
		loader.WithTimeout(cfg.Timeout),
		loader.WithMaxTextureSize(cfg.MaxTextureSize),
		loader.WithMaxBytes(cfg.MaxBytes),
		loader.WithWorkers(cfg.Workers),
		loader.WithBreaker(loader.BreakerConfig{
			MaxRequests:      cfg.Breaker.MaxRequests,
			Interval:         cfg.Breaker.Interval,
			Timeout:          cfg.Breaker.Timeout,
			FailureThreshold: cfg.Breaker.FailureThreshold,
		}),
	}
}

// viewerOptions maps the platform independent part of the viewer config.
func viewerOptions(cfg config.ViewerConfig) []tour.ViewerBuilderOption {
	return []tour.ViewerBuilderOption{
		tour.WithOrientationOptions(
			orientation.WithDefaultFieldOfView(cfg.DefaultFieldOfView),
			orientation.WithFieldOfViewBounds(cfg.MinFieldOfView, cfg.MaxFieldOfView),
			orientation.WithZoomStep(cfg.ZoomStep),
			orientation.WithZoomSensitivity(cfg.ZoomSensitivity),
			orientation.WithYawSensitivity(cfg.YawSensitivity),
			orientation.WithPitchSensitivity(cfg.PitchSensitivity),
			orientation.WithAutoRotateStep(cfg.AutoRotateStep),
			orientation.WithLatitudeLimit(cfg.LatitudeLimit),
		),
		tour.WithSphere(cfg.SphereRadius, cfg.WidthSegments, cfg.HeightSegments),
		tour.WithCameraOffset(cfg.EyeOffset.X, cfg.EyeOffset.Y, cfg.EyeOffset.Z),
		tour.WithCarouselWindow(cfg.CarouselWindow),
		tour.WithWheelNotch(cfg.WheelNotch),
		tour.WithShareBaseURL(cfg.ShareBaseURL),
	}
}

// cursorShape maps the drag cursor onto the shapes the window can show.
func cursorShape(c orientation.Cursor) window.CursorShape {
	switch c {
	case orientation.CursorGrab:
		return window.CursorHand
	case orientation.CursorGrabbing:
		return window.CursorCrosshair
	default:
		return window.CursorArrow
	}
}

func rendererOptions(cfg config.RendererConfig) ([]renderer.RendererBuilderOption, error) {
	clear, err := renderer.ParseClearColor(cfg.ClearColor)
	if err != nil {
		return nil, err
	}
	mode := renderer.PresentModeUncapped
	if cfg.VSync {
		mode = renderer.PresentModeVSync
	}
	return []renderer.RendererBuilderOption{
		renderer.WithClearColor(clear),
		renderer.WithPresentMode(mode),
		renderer.WithMSAA(renderer.MSAAFromSamples(cfg.MSAA)),
		renderer.WithForceSoftwareRenderer(cfg.ForceSoftware),
	}, nil
}
