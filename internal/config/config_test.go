package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoad_DefaultsOnly(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Viewer.DefaultFieldOfView != 75 || cfg.Viewer.ZoomStep != 10 || cfg.Proxy.Listen != ":8080" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Loader.Timeout != 30*time.Second {
		t.Errorf("loader timeout = %v", cfg.Loader.Timeout)
	}
}

func TestLoad_Layering(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tour.yaml")
	yml := `
viewer:
  zoom_step: 5
  manifest: tours/hotel.yaml
  eye_offset:
    z: 1.5
window:
  title: Grand Hotel
proxy:
  api_base_url: http://backend:8000/api
  rate_window: 30s
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TOUR_VIEWER__ZOOM_STEP", "7.5")
	t.Setenv("TOUR_PROXY__CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("TOUR_LOADER__BREAKER__FAILURE_THRESHOLD", "9")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Viewer.ZoomStep != 7.5 {
		t.Errorf("zoom step = %v, env should win", cfg.Viewer.ZoomStep)
	}
	if cfg.Viewer.Manifest != "tours/hotel.yaml" || cfg.Window.Title != "Grand Hotel" {
		t.Errorf("file values missing: %+v %+v", cfg.Viewer, cfg.Window)
	}
	if cfg.Viewer.EyeOffset.Z != 1.5 {
		t.Errorf("eye offset = %+v", cfg.Viewer.EyeOffset)
	}
	if cfg.Proxy.RateWindow != 30*time.Second {
		t.Errorf("rate window = %v", cfg.Proxy.RateWindow)
	}
	if got := cfg.Proxy.CORSOrigins; len(got) != 2 || got[1] != "https://b.example" {
		t.Errorf("cors origins = %v", got)
	}
	if cfg.Loader.Breaker.FailureThreshold != 9 {
		t.Errorf("failure threshold = %d", cfg.Loader.Breaker.FailureThreshold)
	}
	// untouched defaults survive
	if cfg.Viewer.MaxFieldOfView != 100 {
		t.Errorf("max fov = %v", cfg.Viewer.MaxFieldOfView)
	}
}

func TestLoad_PathFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	if err := os.WriteFile(path, []byte("window:\n  width: 1920\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.Width != 1920 {
		t.Errorf("width = %d", cfg.Window.Width)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   []string
	}{
		{
			name:   "fov bounds inverted",
			mutate: func(c *Config) { c.Viewer.MinFieldOfView = 90; c.Viewer.MaxFieldOfView = 60 },
			want:   []string{"MaxFieldOfView", "default_fov"},
		},
		{
			name:   "msaa",
			mutate: func(c *Config) { c.Renderer.MSAA = 2 },
			want:   []string{"MSAA"},
		},
		{
			name: "several at once",
			mutate: func(c *Config) {
				c.Proxy.APIBaseURL = "not a url"
				c.Renderer.ClearColor = "red"
				c.Log.Format = "xml"
			},
			want: []string{"APIBaseURL", "ClearColor", "Format"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			for _, w := range tt.want {
				if !strings.Contains(err.Error(), w) {
					t.Errorf("error %q does not mention %s", err, w)
				}
			}
		})
	}
}

func TestLogConfig_Logging(t *testing.T) {
	lc := LogConfig{Level: "debug", Format: "json", Caller: true}
	got := lc.Logging()
	if got.Level != "debug" || got.Format != "json" || !got.Caller || got.Output == nil {
		t.Errorf("logging config = %+v", got)
	}
}
