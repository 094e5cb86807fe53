// Package dir provides a filesystem-backed implementation of the images store.
package dir

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fantasy-forge/forge-api/pkg/server/store"
)

// Ensure ImagesStore implements store.ImagesStore
var _ store.ImagesStore = (*ImagesStore)(nil)

// ImagesStore serves image files from a single flat directory.
type ImagesStore struct {
	root string
}

// NewImagesStore creates an ImagesStore rooted at the given directory.
func NewImagesStore(root string) *ImagesStore {
	return &ImagesStore{root: root}
}

// SanitizeFilename reduces a requested filename to a bare name inside the
// flat namespace. Anything that tries to name a path rather than a file is
// rejected.
func SanitizeFilename(name string) (string, bool) {
	if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return "", false
	}
	base := filepath.Base(name)
	if base == "." || base == ".." {
		return "", false
	}
	return base, true
}

// ListImages returns the filenames in the root directory, top level only.
func (s *ImagesStore) ListImages() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, entry.Name())
	}
	return files, nil
}

// OpenImage returns a reader for the named image, or store.ErrNotFound for
// missing files and for names that escape the flat namespace.
func (s *ImagesStore) OpenImage(filename string) (io.ReadCloser, error) {
	clean, ok := SanitizeFilename(filename)
	if !ok {
		return nil, store.ErrNotFound
	}

	f, err := os.Open(filepath.Join(s.root, clean))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, store.ErrNotFound
	}

	return f, nil
}
