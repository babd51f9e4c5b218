package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileWriter persists rendered export content.
type FileWriter interface {
	// WriteFile writes content to path, creating parent directories as
	// needed. The destination must never hold partial content.
	WriteFile(path, content, encoding string) error
}

// OSFileWriter writes files on the local filesystem through a temporary
// file and rename, so a failed write never leaves a partial destination.
type OSFileWriter struct{}

// NewFileWriter creates the default filesystem writer.
func NewFileWriter() *OSFileWriter {
	return &OSFileWriter{}
}

// WriteFile writes content to path atomically, creating parent
// directories as needed. Only UTF-8 content is supported.
func (w *OSFileWriter) WriteFile(path, content, encoding string) error {
	if err := checkEncoding(encoding); err != nil {
		return NewPersistenceError(path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return NewPersistenceError(path, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return NewPersistenceError(path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return NewPersistenceError(path, err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return NewPersistenceError(path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return NewPersistenceError(path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return NewPersistenceError(path, err)
	}

	return nil
}

// checkEncoding validates the requested content encoding.
func checkEncoding(encoding string) error {
	switch strings.ToLower(encoding) {
	case "", "utf-8", "utf8":
		return nil
	default:
		return fmt.Errorf("unsupported encoding %q", encoding)
	}
}
