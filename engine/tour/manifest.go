package tour

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ErrNoScenes is returned when a tour has no scenes to show.
var ErrNoScenes = errors.New("tour has no scenes")

// Scene is one switchable 360° viewpoint of a tour.
type Scene struct {
	ID           string `yaml:"id" json:"id"`
	Name         string `yaml:"name" json:"name"`
	PanoramaURL  string `yaml:"panorama_url" json:"panoramaUrl"`
	ThumbnailURL string `yaml:"thumbnail_url" json:"thumbnailUrl"`
	Description  string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Manifest is the scene list a host hands to the viewer.
type Manifest struct {
	InitialSceneID string  `yaml:"initial_scene" json:"initialSceneId,omitempty"`
	Embedded       bool    `yaml:"embedded" json:"embedded"`
	Scenes         []Scene `yaml:"scenes" json:"scenes"`
}

// Validate checks that the manifest has at least one scene and that every scene has a unique
// id and a panorama locator. All problems are reported together.
func (m Manifest) Validate() error {
	if len(m.Scenes) == 0 {
		return ErrNoScenes
	}
	var errs []error
	seen := make(map[string]struct{}, len(m.Scenes))
	for i, s := range m.Scenes {
		if s.ID == "" {
			errs = append(errs, fmt.Errorf("scene %d: missing id", i))
			continue
		}
		if _, dup := seen[s.ID]; dup {
			errs = append(errs, fmt.Errorf("scene %d: duplicate id %q", i, s.ID))
		}
		seen[s.ID] = struct{}{}
		if s.PanoramaURL == "" {
			errs = append(errs, fmt.Errorf("scene %q: missing panorama url", s.ID))
		}
	}
	return errors.Join(errs...)
}

// ParseManifest decodes a manifest. format is "json" or "yaml"; anything else is treated as yaml.
//
// Parameters:
//   - data: the encoded manifest
//   - format: the encoding
//
// Returns:
//   - Manifest: the decoded and validated manifest
//   - error: a decode or validation error
func ParseManifest(data []byte, format string) (Manifest, error) {
	var m Manifest
	var err error
	switch strings.ToLower(format) {
	case "json":
		err = json.Unmarshal(data, &m)
	default:
		err = yaml.Unmarshal(data, &m)
	}
	if err != nil {
		return Manifest{}, fmt.Errorf("decode %s manifest: %w", format, err)
	}
	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// LoadManifest reads a manifest file, picking the decoder from the extension (.json, otherwise yaml).
//
// Parameters:
//   - path: the manifest file path
//
// Returns:
//   - Manifest: the decoded and validated manifest
//   - error: a read, decode or validation error
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	format := "yaml"
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = "json"
	}
	return ParseManifest(data, format)
}

// FetchManifest downloads a JSON manifest, as served by the proxy's tour route. Relative scene
// locators are resolved against the manifest URL.
//
// Parameters:
//   - ctx: cancels the request
//   - client: the HTTP client, http.DefaultClient when nil
//   - manifestURL: the manifest URL
//
// Returns:
//   - Manifest: the decoded and validated manifest
//   - error: a transport, status, decode or validation error
func FetchManifest(ctx context.Context, client *http.Client, manifestURL string) (Manifest, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, manifestURL, nil)
	if err != nil {
		return Manifest{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return Manifest{}, fmt.Errorf("fetch manifest: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Manifest{}, fmt.Errorf("fetch manifest: unexpected status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	m, err := ParseManifest(data, "json")
	if err != nil {
		return Manifest{}, err
	}
	m.resolve(resp.Request.URL)
	return m, nil
}

// resolve rewrites relative scene locators against base.
func (m *Manifest) resolve(base *url.URL) {
	if base == nil {
		return
	}
	abs := func(ref string) string {
		if ref == "" {
			return ref
		}
		u, err := url.Parse(ref)
		if err != nil || u.IsAbs() {
			return ref
		}
		return base.ResolveReference(u).String()
	}
	for i := range m.Scenes {
		m.Scenes[i].PanoramaURL = abs(m.Scenes[i].PanoramaURL)
		m.Scenes[i].ThumbnailURL = abs(m.Scenes[i].ThumbnailURL)
	}
}
