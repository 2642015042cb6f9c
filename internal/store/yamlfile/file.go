// Package yamlfile implements the todo and reminder stores on top of YAML
// documents, one file per store.
package yamlfile

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// File is a YAML document of type T on disk. Every operation reads the whole
// file and Update rewrites it atomically.
type File[T any] struct {
	path string
	mu   sync.RWMutex
}

// NewFile returns a File stored at path. Nothing is touched on disk until the
// first Update.
func NewFile[T any](path string) *File[T] {
	return &File[T]{path: path}
}

// Path returns the location of the backing file.
func (f *File[T]) Path() string {
	return f.path
}

// Load returns the document, or the zero value of T if the file does not
// exist or is empty.
func (f *File[T]) Load() (T, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.load()
}

// Update loads the document, applies fn and writes the result back. Nothing
// is written when fn returns an error.
func (f *File[T]) Update(fn func(doc *T) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return err
	}

	if err := fn(&doc); err != nil {
		return err
	}

	return f.save(doc)
}

func (f *File[T]) load() (T, error) {
	var doc T

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return doc, nil
		}
		return doc, fmt.Errorf("read %s: %w", f.path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("parse %s: %w", f.path, err)
	}

	return doc, nil
}

func (f *File[T]) save(doc T) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode %s: %w", f.path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode %s: %w", f.path, err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}

	return os.Rename(tmp, f.path)
}
