package tour

import (
	"slices"
)

// ViewState is the UI-facing snapshot the viewer emits to its host. The host renders overlays
// from it and never observes errors any other way.
type ViewState struct {
	ViewerID      string
	SceneID       string
	SceneName     string
	Mounted       bool
	Loading       bool
	Error         string
	Fullscreen    bool
	AutoRotating  bool
	FieldOfView   float64
	CarouselIndex int
	VisibleScenes []Scene
	CanScrollPrev bool
	CanScrollNext bool
	ShowInfo      bool
	ShowCarousel  bool
	ShowFloorplan bool
	ShowHotspots  bool
	LinkCopied    bool
	ShareURL      string
	Embedded      bool
}

// Equal reports whether two snapshots describe the same UI.
func (s ViewState) Equal(o ViewState) bool {
	return s.ViewerID == o.ViewerID &&
		s.SceneID == o.SceneID &&
		s.SceneName == o.SceneName &&
		s.Mounted == o.Mounted &&
		s.Loading == o.Loading &&
		s.Error == o.Error &&
		s.Fullscreen == o.Fullscreen &&
		s.AutoRotating == o.AutoRotating &&
		s.FieldOfView == o.FieldOfView &&
		s.CarouselIndex == o.CarouselIndex &&
		s.CanScrollPrev == o.CanScrollPrev &&
		s.CanScrollNext == o.CanScrollNext &&
		s.ShowInfo == o.ShowInfo &&
		s.ShowCarousel == o.ShowCarousel &&
		s.ShowFloorplan == o.ShowFloorplan &&
		s.ShowHotspots == o.ShowHotspots &&
		s.LinkCopied == o.LinkCopied &&
		s.ShareURL == o.ShareURL &&
		s.Embedded == o.Embedded &&
		slices.Equal(s.VisibleScenes, o.VisibleScenes)
}

// Listener receives view state changes on the frame loop.
type Listener func(ViewState)
