package loader

import (
	"context"
	"io"
)

// loaderBackend defines the generic interface for opening panorama images by locator.
// Concrete implementations (fileLoaderBackend, httpLoaderBackend) handle the transport.
type loaderBackend interface {
	// Open returns a reader over the encoded image bytes.
	// A missing image must be reported as ErrNotFound.
	//
	// Parameters:
	//   - ctx: cancels the request
	//   - locator: the path or URL to open
	//
	// Returns:
	//   - io.ReadCloser: the encoded image stream, closed by the caller
	//   - error: error if the image cannot be opened
	Open(ctx context.Context, locator string) (io.ReadCloser, error)
}
