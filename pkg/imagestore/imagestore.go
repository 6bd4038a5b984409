package imagestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// Sanitize reduces an uploaded filename to a filesystem-safe token. Path
// components are stripped, whitespace and unsafe characters collapse to
// underscores, and the extension is preserved. Returns "" if nothing safe
// remains.
func Sanitize(name string) string {
	// Drop any directory part, whichever separator the client used.
	name = name[strings.LastIndexByte(name, '/')+1:]
	name = name[strings.LastIndexByte(name, '\\')+1:]

	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._-")
	return name
}

// Store keeps uploaded images as plain files in one directory, addressed by
// their sanitized filename.
type Store struct {
	dir string
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory the store writes to.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the image under name, overwriting any existing file with that
// exact name.
func (s *Store) Save(name string, r io.Reader) error {
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return fmt.Errorf("failed to create image file %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("failed to write image file %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close image file %s: %w", name, err)
	}
	return nil
}

// Remove deletes the image with the given name. A file that is already gone
// is not an error.
func (s *Store) Remove(name string) error {
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove image file %s: %w", name, err)
	}
	return nil
}
