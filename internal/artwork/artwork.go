// Package artwork stores cover and profile images under the data
// directory, one subdirectory per entity kind.
package artwork

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Entity kinds with their own artwork subdirectory.
const (
	KindArtist   = "artists"
	KindAlbum    = "albums"
	KindPlaylist = "playlists"
)

var knownKinds = map[string]bool{
	KindArtist:   true,
	KindAlbum:    true,
	KindPlaylist: true,
}

// Errors reported by the writer.
var (
	ErrUnknownKind  = errors.New("unknown artwork kind")
	ErrEmptyID      = errors.New("artwork id must not be empty")
	ErrBadExtension = errors.New("unsupported artwork extension")
)

// imageExts lists the accepted image formats.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Writer manages the artwork tree rooted at <dataDir>/artwork.
type Writer struct {
	root string
}

// NewWriter returns a writer rooted under the given data directory.
func NewWriter(dataDir string) *Writer {
	return &Writer{root: filepath.Join(dataDir, "artwork")}
}

// EnsureLayout creates the artwork directory tree if absent.
func (w *Writer) EnsureLayout() error {
	for kind := range knownKinds {
		if err := os.MkdirAll(filepath.Join(w.root, kind), 0o755); err != nil {
			return fmt.Errorf("create artwork dir %s: %w", kind, err)
		}
	}
	return nil
}

// Save writes one image as <root>/<kind>/<id><ext> and returns the stored
// path. An existing image for the same entity is replaced, regardless of
// its previous extension.
func (w *Writer) Save(kind, id, ext string, data []byte) (string, error) {
	if !knownKinds[kind] {
		return "", ErrUnknownKind
	}
	if id == "" {
		return "", ErrEmptyID
	}
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if !imageExts[ext] {
		return "", ErrBadExtension
	}

	dir := filepath.Join(w.root, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create artwork dir %s: %w", kind, err)
	}
	if err := w.Remove(kind, id); err != nil {
		return "", err
	}

	path := filepath.Join(dir, id+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write artwork %s: %w", path, err)
	}
	return path, nil
}

// Remove deletes every stored image for the entity. Removing artwork that
// was never saved is not an error.
func (w *Writer) Remove(kind, id string) error {
	if !knownKinds[kind] {
		return ErrUnknownKind
	}
	if id == "" {
		return ErrEmptyID
	}
	for ext := range imageExts {
		path := filepath.Join(w.root, kind, id+ext)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove artwork %s: %w", path, err)
		}
	}
	return nil
}

// Lookup returns the stored image path for the entity, or empty when none
// exists.
func (w *Writer) Lookup(kind, id string) string {
	for ext := range imageExts {
		path := filepath.Join(w.root, kind, id+ext)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
