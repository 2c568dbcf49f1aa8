// Package board gives the engine its file access: board-relative paths are
// resolved against a single root directory, with traversal guards, and
// writes go through a temp file + rename so a document on disk is always
// either the old version or the new one.
package board

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Store reads and writes ticket documents under a board root.
type Store struct {
	root string
}

// NewStore creates a Store rooted at the given directory.
func NewStore(root string) (*Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve board root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat board root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("board root is not a directory: %s", abs)
	}
	return &Store{root: abs}, nil
}

// Root returns the absolute board root directory.
func (s *Store) Root() string { return s.root }

// Read returns the raw bytes of the document at the board-relative path.
func (s *Store) Read(relPath string) ([]byte, error) {
	abs, err := s.absPath(relPath)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(abs)
}

// Write atomically replaces the document at the board-relative path: the
// data is written to a temp file in the same directory and renamed over the
// target, so readers never observe a half-written document.
func (s *Store) Write(relPath string, data []byte) error {
	abs, err := s.absPath(relPath)
	if err != nil {
		return err
	}

	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".ticket-*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", abs, err)
	}
	return nil
}

// absPath joins a board-relative path onto the root, rejecting anything
// that would escape it.
func (s *Store) absPath(relPath string) (string, error) {
	cleaned, err := cleanRelPath(relPath)
	if err != nil {
		return "", err
	}
	abs := filepath.Join(s.root, filepath.FromSlash(cleaned))
	if !strings.HasPrefix(abs, s.root+string(os.PathSeparator)) && abs != s.root {
		return "", errors.New("path escapes board root")
	}
	return abs, nil
}

func cleanRelPath(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.New("empty path")
	}

	slashed := filepath.ToSlash(trimmed)
	for _, segment := range strings.Split(slashed, "/") {
		if segment == ".." {
			return "", errors.New("path traversal detected")
		}
	}

	cleaned := strings.TrimPrefix(path.Clean("/"+slashed), "/")
	if cleaned == "" || cleaned == "." {
		return "", errors.New("invalid path")
	}

	return cleaned, nil
}
