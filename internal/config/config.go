// Package config loads the settings shared by the desktop viewer and the proxy service.
//
// Values are layered, later layers winning:
//
//  1. built-in defaults (Default)
//  2. an optional YAML file, named by the -config flag or TOUR_CONFIG_PATH
//  3. environment variables prefixed with TOUR_, where a double underscore separates sections:
//     TOUR_VIEWER__ZOOM_STEP=5, TOUR_PROXY__API_BASE_URL=http://backend:8000/api
package config

import (
	"time"

	"github.com/Carmen-Shannon/oxy-tour/internal/logging"
)

// Config is the root configuration.
type Config struct {
	Viewer   ViewerConfig   `koanf:"viewer"`
	Window   WindowConfig   `koanf:"window"`
	Renderer RendererConfig `koanf:"renderer"`
	Loader   LoaderConfig   `koanf:"loader"`
	Proxy    ProxyConfig    `koanf:"proxy"`
	Log      LogConfig      `koanf:"log"`
}

// ViewerConfig tunes the panorama viewer.
type ViewerConfig struct {
	// Manifest is a tour manifest file path or URL.
	Manifest string `koanf:"manifest"`

	DefaultFieldOfView float64 `koanf:"default_fov" validate:"gt=0,lt=180"`
	MinFieldOfView     float64 `koanf:"min_fov" validate:"gt=0,lt=180"`
	MaxFieldOfView     float64 `koanf:"max_fov" validate:"gt=0,lt=180,gtefield=MinFieldOfView"`
	ZoomStep           float64 `koanf:"zoom_step" validate:"gt=0"`
	ZoomSensitivity    float64 `koanf:"zoom_sensitivity" validate:"gte=0"`
	YawSensitivity     float64 `koanf:"yaw_sensitivity" validate:"gte=0"`
	PitchSensitivity   float64 `koanf:"pitch_sensitivity" validate:"gte=0"`
	AutoRotateStep     float64 `koanf:"auto_rotate_step"`
	LatitudeLimit      float64 `koanf:"latitude_limit" validate:"gte=0,lte=90"`

	SphereRadius   float32 `koanf:"sphere_radius" validate:"gt=0"`
	WidthSegments  int     `koanf:"width_segments" validate:"gte=3"`
	HeightSegments int     `koanf:"height_segments" validate:"gte=2"`
	EyeOffset      Vec3    `koanf:"eye_offset"`

	CarouselWindow int     `koanf:"carousel_window" validate:"gte=1"`
	WheelNotch     float64 `koanf:"wheel_notch" validate:"gt=0"`
	ShareBaseURL   string  `koanf:"share_base_url" validate:"omitempty,url"`
}

// Vec3 is a position in world units.
type Vec3 struct {
	X float32 `koanf:"x"`
	Y float32 `koanf:"y"`
	Z float32 `koanf:"z"`
}

// WindowConfig sizes the desktop window.
type WindowConfig struct {
	Title      string `koanf:"title"`
	Width      int    `koanf:"width" validate:"gte=320"`
	Height     int    `koanf:"height" validate:"gte=240"`
	Fullscreen bool   `koanf:"fullscreen"`
}

// RendererConfig selects GPU presentation settings.
type RendererConfig struct {
	VSync         bool   `koanf:"vsync"`
	MSAA          int    `koanf:"msaa" validate:"oneof=1 4"`
	ForceSoftware bool   `koanf:"force_software"`
	ClearColor    string `koanf:"clear_color" validate:"hexcolor"`
	// FrameRate caps the frame loop; zero leaves it uncapped.
	FrameRate int  `koanf:"frame_rate" validate:"gte=0"`
	Profiling bool `koanf:"profiling"`
}

// LoaderConfig tunes panorama fetching and decoding.
type LoaderConfig struct {
	// Root is the base directory for relative panorama paths.
	Root           string        `koanf:"root"`
	Timeout        time.Duration `koanf:"timeout" validate:"gt=0"`
	MaxTextureSize int           `koanf:"max_texture_size" validate:"gte=256"`
	MaxBytes       int64         `koanf:"max_bytes" validate:"gte=0"`
	Workers        int           `koanf:"workers" validate:"gte=1"`
	Breaker        BreakerConfig `koanf:"breaker"`
}

// BreakerConfig configures a circuit breaker around an upstream.
type BreakerConfig struct {
	MaxRequests      uint32        `koanf:"max_requests" validate:"gte=1"`
	Interval         time.Duration `koanf:"interval"`
	Timeout          time.Duration `koanf:"timeout" validate:"gt=0"`
	FailureThreshold uint32        `koanf:"failure_threshold" validate:"gte=1"`
}

// ProxyConfig configures the panorama proxy service.
type ProxyConfig struct {
	Listen string `koanf:"listen" validate:"required"`
	// APIBaseURL is the backend URL. A trailing /api is removed before use.
	APIBaseURL      string        `koanf:"api_base_url" validate:"required,url"`
	UpstreamTimeout time.Duration `koanf:"upstream_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	RateLimit       int           `koanf:"rate_limit" validate:"gte=0"`
	RateWindow      time.Duration `koanf:"rate_window" validate:"gt=0"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	MaxImageBytes   int64         `koanf:"max_image_bytes" validate:"gt=0"`
	Breaker         BreakerConfig `koanf:"breaker"`
}

// LogConfig mirrors logging.Config without the output writer.
type LogConfig struct {
	Level     string `koanf:"level" validate:"omitempty,oneof=trace debug info warn warning error fatal panic disabled"`
	Format    string `koanf:"format" validate:"omitempty,oneof=json console"`
	Caller    bool   `koanf:"caller"`
	Timestamp bool   `koanf:"timestamp"`
}

// Logging converts the section to a logging.Config writing to stderr.
func (c LogConfig) Logging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Level
	cfg.Format = c.Format
	cfg.Caller = c.Caller
	cfg.Timestamp = c.Timestamp
	return cfg
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Viewer: ViewerConfig{
			DefaultFieldOfView: 75,
			MinFieldOfView:     30,
			MaxFieldOfView:     100,
			ZoomStep:           10,
			ZoomSensitivity:    0.05,
			YawSensitivity:     0.2,
			PitchSensitivity:   0.2,
			AutoRotateStep:     0.1,
			LatitudeLimit:      85,
			SphereRadius:       500,
			WidthSegments:      60,
			HeightSegments:     40,
			CarouselWindow:     5,
			WheelNotch:         100,
		},
		Window: WindowConfig{
			Title:  "Virtual Tour",
			Width:  1280,
			Height: 720,
		},
		Renderer: RendererConfig{
			VSync:      true,
			MSAA:       4,
			ClearColor: "#1a0a10",
		},
		Loader: LoaderConfig{
			Timeout:        30 * time.Second,
			MaxTextureSize: 8192,
			MaxBytes:       64 << 20,
			Workers:        2,
			Breaker: BreakerConfig{
				MaxRequests:      1,
				Interval:         time.Minute,
				Timeout:          30 * time.Second,
				FailureThreshold: 5,
			},
		},
		Proxy: ProxyConfig{
			Listen:          ":8080",
			APIBaseURL:      "http://localhost:8000",
			UpstreamTimeout: 30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimit:       120,
			RateWindow:      time.Minute,
			CORSOrigins:     []string{"*"},
			MaxImageBytes:   64 << 20,
			Breaker: BreakerConfig{
				MaxRequests:      1,
				Interval:         time.Minute,
				Timeout:          30 * time.Second,
				FailureThreshold: 5,
			},
		},
		Log: LogConfig{
			Level:     "info",
			Format:    "console",
			Timestamp: true,
		},
	}
}
