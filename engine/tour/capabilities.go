package tour

import (
	"context"
	"errors"

	"github.com/Carmen-Shannon/oxy-tour/engine/orientation"
)

// ErrUnavailable is returned by the no-op capabilities.
var ErrUnavailable = errors.New("capability unavailable")

// FullscreenCapability switches the host presentation in and out of fullscreen.
type FullscreenCapability interface {
	// IsFullscreen reports the current presentation state.
	//
	// Returns:
	//   - bool: true while fullscreen
	IsFullscreen() bool

	// SetFullscreen requests a presentation change. The viewer ignores the error.
	//
	// Parameters:
	//   - fullscreen: the requested state
	//
	// Returns:
	//   - error: error if the host refused
	SetFullscreen(fullscreen bool) error
}

// ShareData is what the viewer asks the host to share.
type ShareData struct {
	Title string
	Text  string
	URL   string
}

// ShareCapability hands a link to the host's native share sheet.
type ShareCapability interface {
	// Share opens the share flow.
	//
	// Parameters:
	//   - ctx: cancels the request
	//   - data: the content to share
	//
	// Returns:
	//   - error: error if sharing is unavailable or was cancelled
	Share(ctx context.Context, data ShareData) error
}

// ClipboardCapability writes text to the host clipboard.
type ClipboardCapability interface {
	// WriteText copies text to the clipboard.
	//
	// Parameters:
	//   - ctx: cancels the request
	//   - text: the text to copy
	//
	// Returns:
	//   - error: error if the clipboard is unavailable
	WriteText(ctx context.Context, text string) error
}

// CursorCapability shows the drag affordance.
type CursorCapability interface {
	SetCursor(cursor orientation.Cursor)
}

// NoopFullscreen never changes presentation.
type NoopFullscreen struct{}

func (NoopFullscreen) IsFullscreen() bool       { return false }
func (NoopFullscreen) SetFullscreen(bool) error { return ErrUnavailable }

// NoopShare reports sharing as unavailable.
type NoopShare struct{}

func (NoopShare) Share(context.Context, ShareData) error { return ErrUnavailable }

// NoopClipboard reports the clipboard as unavailable.
type NoopClipboard struct{}

func (NoopClipboard) WriteText(context.Context, string) error { return ErrUnavailable }

// NoopCursor ignores cursor changes.
type NoopCursor struct{}

func (NoopCursor) SetCursor(orientation.Cursor) {}

// ClipboardFunc adapts a plain function, such as a window's clipboard setter, to ClipboardCapability.
type ClipboardFunc func(text string) error

func (f ClipboardFunc) WriteText(_ context.Context, text string) error {
	return f(text)
}

// CursorFunc adapts a plain function to CursorCapability.
type CursorFunc func(cursor orientation.Cursor)

func (f CursorFunc) SetCursor(cursor orientation.Cursor) {
	f(cursor)
}
