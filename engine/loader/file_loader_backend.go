package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// fileLoaderBackend opens panoramas from the local filesystem.
// Relative locators resolve against root when it is set.
type fileLoaderBackend struct {
	root string
}

var _ loaderBackend = &fileLoaderBackend{}

func newFileLoaderBackend(root string) *fileLoaderBackend {
	return &fileLoaderBackend{root: root}
}

func (b *fileLoaderBackend) Open(ctx context.Context, locator string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := strings.TrimPrefix(locator, "file://")
	if b.root != "" && !filepath.IsAbs(path) {
		path = filepath.Join(b.root, filepath.FromSlash(path))
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	return f, nil
}
