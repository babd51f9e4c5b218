package export

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestOSFileWriter_WriteFile tests a basic write and read-back.
func TestOSFileWriter_WriteFile(t *testing.T) {
	w := NewFileWriter()
	path := filepath.Join(t.TempDir(), "out.json")

	if err := w.WriteFile(path, `{"a":1}`, "utf-8"); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if string(data) != `{"a":1}` {
		t.Errorf("Expected content preserved, got %q", string(data))
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() failed: %v", err)
	}
	if info.Mode().Perm() != 0644 {
		t.Errorf("Expected mode 0644, got %v", info.Mode().Perm())
	}
}

// TestOSFileWriter_CreatesParentDirs tests recursive directory creation.
func TestOSFileWriter_CreatesParentDirs(t *testing.T) {
	w := NewFileWriter()
	path := filepath.Join(t.TempDir(), "a", "b", "c", "out.csv")

	if err := w.WriteFile(path, "id\n1", ""); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected file to exist, got %v", err)
	}
}

// TestOSFileWriter_Overwrite tests that a second write replaces the
// first.
func TestOSFileWriter_Overwrite(t *testing.T) {
	w := NewFileWriter()
	path := filepath.Join(t.TempDir(), "out.txt")

	if err := w.WriteFile(path, "first", ""); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	if err := w.WriteFile(path, "second", ""); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("Expected 'second', got %q", string(data))
	}
}

// TestOSFileWriter_NoTempFilesLeft tests that a successful write leaves
// only the destination behind.
func TestOSFileWriter_NoTempFilesLeft(t *testing.T) {
	w := NewFileWriter()
	dir := t.TempDir()
	path := filepath.Join(dir, "out.yaml")

	if err := w.WriteFile(path, "a: 1\n", ""); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "out.yaml" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("Expected only the destination file, got %v", names)
	}
}

// TestOSFileWriter_EncodingAliases tests the accepted encoding names.
func TestOSFileWriter_EncodingAliases(t *testing.T) {
	w := NewFileWriter()
	dir := t.TempDir()

	for i, encoding := range []string{"", "utf-8", "UTF-8", "utf8"} {
		path := filepath.Join(dir, "out-"+strings.Repeat("x", i+1))
		if err := w.WriteFile(path, "data", encoding); err != nil {
			t.Errorf("WriteFile() with encoding %q failed: %v", encoding, err)
		}
	}
}

// TestOSFileWriter_UnsupportedEncoding tests rejection of non-UTF-8
// encodings.
func TestOSFileWriter_UnsupportedEncoding(t *testing.T) {
	w := NewFileWriter()
	path := filepath.Join(t.TempDir(), "out.json")

	err := w.WriteFile(path, "data", "latin-1")
	var persistenceErr *PersistenceError
	if !errors.As(err, &persistenceErr) {
		t.Fatalf("Expected PersistenceError, got %v", err)
	}
	if persistenceErr.Path != path {
		t.Errorf("Expected path preserved in error, got '%s'", persistenceErr.Path)
	}

	// Nothing must be written for a rejected encoding.
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("Expected no file for rejected encoding")
	}
}

// TestOSFileWriter_ParentIsFile tests failure when a path component is
// an existing file.
func TestOSFileWriter_ParentIsFile(t *testing.T) {
	w := NewFileWriter()
	dir := t.TempDir()

	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create blocker file: %v", err)
	}

	err := w.WriteFile(filepath.Join(blocker, "out.json"), "data", "")
	var persistenceErr *PersistenceError
	if !errors.As(err, &persistenceErr) {
		t.Errorf("Expected PersistenceError, got %v", err)
	}
}
