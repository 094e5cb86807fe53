package dir

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fantasy-forge/forge-api/pkg/server/store"
)

func newTestStore(t *testing.T) (*ImagesStore, string) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "dragon.png"), []byte("png-bytes"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "castle.png"), []byte("more-bytes"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "subdir"), 0o755))
	return NewImagesStore(root), root
}

func TestListImages(t *testing.T) {
	s, _ := newTestStore(t)

	files, err := s.ListImages()
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"dragon.png", "castle.png"}, files,
		"directories are not listed")
}

func TestListImages_MissingRoot(t *testing.T) {
	s := NewImagesStore("/nonexistent/images")

	files, err := s.ListImages()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestOpenImage(t *testing.T) {
	s, _ := newTestStore(t)

	rc, err := s.OpenImage("dragon.png")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestOpenImage_NotFound(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.OpenImage("missing.png")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.OpenImage("subdir")
	assert.ErrorIs(t, err, store.ErrNotFound, "directories are not images")
}

func TestOpenImage_Traversal(t *testing.T) {
	s, root := newTestStore(t)

	// Plant a file outside the root that traversal would reach.
	outside := filepath.Join(filepath.Dir(root), "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("secret"), 0o644))
	defer os.Remove(outside)

	for _, name := range []string{
		"../secret.txt",
		"..\\secret.txt",
		"/etc/passwd",
		"sub/../../secret.txt",
		"..",
		".",
		"",
	} {
		_, err := s.OpenImage(name)
		assert.ErrorIs(t, err, store.ErrNotFound, "name %q must not resolve", name)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"dragon.png", "dragon.png", true},
		{"with space.png", "with space.png", true},
		{"../evil", "", false},
		{"a/b.png", "", false},
		{"a\\b.png", "", false},
		{"..", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := SanitizeFilename(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, "input %q", tt.in)
		}
	}
}
