package proxy

import (
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

// immutableCache is sent with every relayed image.
const immutableCache = "public, max-age=31536000, immutable"

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// handlePanorama relays a panorama image. The backend content type wins, defaulting to WebP.
func (s *server) handlePanorama(w http.ResponseWriter, r *http.Request) {
	s.relay(w, r, "panorama", "Failed to fetch panorama image", func(string) string {
		return "image/webp"
	})
}

// handleImage relays a regular image, inferring the content type from the extension when the
// backend sends none.
func (s *server) handleImage(w http.ResponseWriter, r *http.Request) {
	s.relay(w, r, "image", "Failed to fetch image", contentTypeFromPath)
}

func (s *server) relay(w http.ResponseWriter, r *http.Request, kind, failure string, fallbackType func(string) string) {
	p := r.URL.Query().Get("path")
	if p == "" {
		writeError(w, http.StatusBadRequest, "Path parameter is required")
		return
	}

	res, err := s.up.get(r.Context(), kind, p)
	if err != nil {
		s.log.Error().Err(err).Str("kind", kind).Str("path", p).Msg("relay failed")
		writeError(w, http.StatusInternalServerError, failure)
		return
	}

	contentType := res.contentType
	if contentType == "" {
		contentType = fallbackType(p)
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", immutableCache)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.body)
}

func contentTypeFromPath(p string) string {
	if u, err := url.Parse(p); err == nil {
		p = u.Path
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".webp":
		return "image/webp"
	case ".png":
		return "image/png"
	default:
		return "image/jpeg"
	}
}

// room is the subset of the backend room record the tour route reads.
type room struct {
	Name            string         `json:"name"`
	FullDescription string         `json:"full_description"`
	Panoramas       []roomPanorama `json:"panoramas"`
}

type roomPanorama struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PanoramaURL string `json:"panoramaUrl"`
	Thumbnail   string `json:"thumbnail"`
}

type roomEnvelope struct {
	Data room `json:"data"`
}

// tourScene and tourManifest use the JSON layout of the viewer's manifest.
type tourScene struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	PanoramaURL  string `json:"panoramaUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Description  string `json:"description,omitempty"`
}

type tourManifest struct {
	InitialSceneID string      `json:"initialSceneId,omitempty"`
	Embedded       bool        `json:"embedded"`
	Scenes         []tourScene `json:"scenes"`
}

// handleTour maps a backend room to a tour manifest whose images go through this proxy.
func (s *server) handleTour(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")

	res, err := s.up.get(r.Context(), "room", "/api/rooms/"+url.PathEscape(roomID))
	if err != nil {
		s.log.Error().Err(err).Str("room", roomID).Msg("room fetch failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch room")
		return
	}

	var env roomEnvelope
	if err := json.Unmarshal(res.body, &env); err != nil {
		s.log.Error().Err(err).Str("room", roomID).Msg("room decode failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch room")
		return
	}

	m := manifestFromRoom(env.Data)
	if len(m.Scenes) == 0 {
		writeError(w, http.StatusNotFound, "Room has no panoramas")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func manifestFromRoom(rm room) tourManifest {
	m := tourManifest{Scenes: make([]tourScene, 0, len(rm.Panoramas))}
	for _, p := range rm.Panoramas {
		if p.ID == "" || p.PanoramaURL == "" {
			continue
		}
		sc := tourScene{
			ID:          p.ID,
			Name:        p.Name,
			PanoramaURL: proxiedPanorama(p.PanoramaURL),
			Description: rm.FullDescription,
		}
		if p.Thumbnail != "" {
			sc.ThumbnailURL = proxiedPanorama(p.Thumbnail)
		}
		m.Scenes = append(m.Scenes, sc)
	}
	if len(m.Scenes) > 0 {
		m.InitialSceneID = m.Scenes[0].ID
	}
	return m
}

func proxiedPanorama(original string) string {
	return "/api/panorama?path=" + url.QueryEscape(original)
}
