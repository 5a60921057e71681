package render

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/nikolalohinski/gonja/v2/loaders"

	"github.com/arthur-debert/j2go/pkg/errors"
)

// FileLoader resolves template paths against a root directory and reads
// them from disk. Relative paths are joined to the root, absolute paths are
// used as-is; the same rule applies to includes. Reads are never cached, so
// every render observes the file's current content.
type FileLoader struct {
	root string
}

// NewFileLoader creates a loader rooted at the given directory. An empty
// root means the process working directory.
func NewFileLoader(root string) *FileLoader {
	if root == "" {
		root = "."
	}
	return &FileLoader{root: root}
}

// Resolve resolves a template path to the path that will be opened.
func (l *FileLoader) Resolve(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	return filepath.Join(l.root, path), nil
}

// Read returns the template content. An unreadable file is a
// TEMPLATE_NOT_FOUND condition carrying the resolved path, never a bare
// I/O error.
func (l *FileLoader) Read(path string) (io.Reader, error) {
	data, _, err := l.Source(path)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

// Inherit derives a loader for resolving includes from the given root.
func (l *FileLoader) Inherit(root string) (loaders.Loader, error) {
	if root == "" {
		return NewFileLoader(l.root), nil
	}
	return NewFileLoader(root), nil
}

// Source reads the whole template at once, returning its raw content and
// the resolved path it was read from.
func (l *FileLoader) Source(path string) ([]byte, string, error) {
	resolved, err := l.Resolve(path)
	if err != nil {
		return nil, "", err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, resolved, errors.Wrapf(err, errors.ErrTemplateNotFound, "template %s not found", resolved).
			WithDetail("path", resolved)
	}
	return data, resolved, nil
}
