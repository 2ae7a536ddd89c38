package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-tour/engine/orientation"
	"github.com/Carmen-Shannon/oxy-tour/engine/window"
	"github.com/Carmen-Shannon/oxy-tour/internal/config"
)

func TestCursorShape(t *testing.T) {
	tests := []struct {
		in   orientation.Cursor
		want window.CursorShape
	}{
		{orientation.CursorGrab, window.CursorHand},
		{orientation.CursorGrabbing, window.CursorCrosshair},
		{orientation.Cursor(42), window.CursorArrow},
	}
	for _, tt := range tests {
		if got := cursorShape(tt.in); got != tt.want {
			t.Errorf("cursorShape(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestLoadManifest_Empty(t *testing.T) {
	if _, err := loadManifest(context.Background(), http.DefaultClient, ""); !errors.Is(err, errNoManifest) {
		t.Errorf("err = %v, want errNoManifest", err)
	}
}

func TestLoadManifest_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tour.yaml")
	data := "scenes:\n  - id: lobby\n    name: Lobby\n    panorama_url: lobby.jpg\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := loadManifest(context.Background(), http.DefaultClient, path)
	if err != nil {
		t.Fatalf("loadManifest: %v", err)
	}
	if len(m.Scenes) != 1 || m.Scenes[0].ID != "lobby" {
		t.Errorf("scenes = %+v", m.Scenes)
	}
}

func TestLoadManifest_Remote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"scenes":[{"id":"a","name":"A","panoramaUrl":"/img/a.jpg"}]}`))
	}))
	defer srv.Close()

	m, err := loadManifest(context.Background(), srv.Client(), srv.URL+"/tour.json")
	if err != nil {
		t.Fatalf("loadManifest: %v", err)
	}
	if got, want := m.Scenes[0].PanoramaURL, srv.URL+"/img/a.jpg"; got != want {
		t.Errorf("panorama url = %q, want %q", got, want)
	}
}

func TestLoaderOptions_Root(t *testing.T) {
	cfg := config.Default().Loader
	if n := len(loaderOptions(cfg, "tours/hotel/tour.yaml")); n != 6 {
		t.Errorf("options = %d, want 6", n)
	}
	if isRemote("tours/hotel/tour.yaml") || !isRemote("https://example.com/t.json") {
		t.Error("isRemote misclassified a locator")
	}
}

func TestRendererOptions(t *testing.T) {
	cfg := config.Default().Renderer
	opts, err := rendererOptions(cfg)
	if err != nil {
		t.Fatalf("rendererOptions: %v", err)
	}
	if len(opts) != 4 {
		t.Errorf("options = %d, want 4", len(opts))
	}

	cfg.ClearColor = "nope"
	if _, err := rendererOptions(cfg); err == nil {
		t.Error("bad clear color accepted")
	}
}

func TestViewerOptions(t *testing.T) {
	if n := len(viewerOptions(config.Default().Viewer)); n != 6 {
		t.Errorf("options = %d, want 6", n)
	}
}
