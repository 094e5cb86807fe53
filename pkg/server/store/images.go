package store

import "io"

// ImagesStore abstracts the image file collaborator. Images live in a flat
// namespace with no ownership concept.
type ImagesStore interface {
	// ListImages returns the filenames available, top level only.
	ListImages() ([]string, error)

	// OpenImage returns a reader for the named image. Filenames are
	// sanitized by the implementation; anything that escapes the flat
	// namespace behaves as ErrNotFound.
	OpenImage(filename string) (io.ReadCloser, error)
}
