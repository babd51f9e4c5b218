package export

import (
	"errors"
	"reflect"
	"testing"
)

// stubStrategy is a minimal strategy for registry tests.
type stubStrategy struct {
	name string
	ext  string
}

func (s *stubStrategy) Name() string                                  { return s.name }
func (s *stubStrategy) Extension() string                             { return s.ext }
func (s *stubStrategy) DefaultOptions() Options                       { return Options{} }
func (s *stubStrategy) Validate(data any) error                       { return nil }
func (s *stubStrategy) Transform(data any, opts Options) (any, error) { return data, nil }
func (s *stubStrategy) Serialize(v any, opts Options) (string, error) { return "stub", nil }

// TestRegistry_Builtins tests that the built-in formats are
// pre-registered.
func TestRegistry_Builtins(t *testing.T) {
	r := NewRegistry()

	formats := r.ListFormats()
	expected := []string{"csv", "json", "yaml"}
	if !reflect.DeepEqual(formats, expected) {
		t.Errorf("Expected %v, got %v", expected, formats)
	}
	if r.Count() != 3 {
		t.Errorf("Expected 3 formats, got %d", r.Count())
	}
}

// TestRegistry_ResolveCaseInsensitive tests identifier normalization.
func TestRegistry_ResolveCaseInsensitive(t *testing.T) {
	r := NewRegistry()

	for _, id := range []string{"json", "JSON", " Json "} {
		s, err := r.Resolve(id)
		if err != nil {
			t.Fatalf("Resolve(%q) failed: %v", id, err)
		}
		if s.Name() != "json" {
			t.Errorf("Resolve(%q) returned strategy '%s'", id, s.Name())
		}
	}
}

// TestRegistry_ResolveUnknown tests the unsupported-format error.
func TestRegistry_ResolveUnknown(t *testing.T) {
	r := NewRegistry()

	_, err := r.Resolve("xml")
	var unsupportedErr *UnsupportedFormatError
	if !errors.As(err, &unsupportedErr) {
		t.Fatalf("Expected UnsupportedFormatError, got %v", err)
	}
	if unsupportedErr.Format != "xml" {
		t.Errorf("Expected format 'xml', got '%s'", unsupportedErr.Format)
	}
	if len(unsupportedErr.Known) != 3 {
		t.Errorf("Expected 3 known formats, got %v", unsupportedErr.Known)
	}
}

// TestRegistry_ResolveFreshInstances tests that each Resolve constructs
// a new strategy.
func TestRegistry_ResolveFreshInstances(t *testing.T) {
	r := NewRegistry()

	constructed := 0
	err := r.Register("counted", func() Strategy {
		constructed++
		return &stubStrategy{name: "counted", ext: "cnt"}
	})
	if err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	// Registration probes the factory once.
	if constructed != 1 {
		t.Fatalf("Expected 1 probe construction, got %d", constructed)
	}

	for i := 0; i < 3; i++ {
		if _, err := r.Resolve("counted"); err != nil {
			t.Fatalf("Resolve() failed: %v", err)
		}
	}
	if constructed != 4 {
		t.Errorf("Expected a fresh instance per Resolve, got %d constructions", constructed)
	}
}

// TestRegistry_RegisterOverwrite tests silent replacement of an
// existing identifier.
func TestRegistry_RegisterOverwrite(t *testing.T) {
	r := NewRegistry()

	err := r.Register("json", func() Strategy {
		return &stubStrategy{name: "replacement", ext: "json"}
	})
	if err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	s, err := r.Resolve("json")
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if s.Name() != "replacement" {
		t.Errorf("Expected replacement strategy, got '%s'", s.Name())
	}
	if r.Count() != 3 {
		t.Errorf("Expected count unchanged after overwrite, got %d", r.Count())
	}
}

// TestRegistry_RegisterNormalizesID tests case-insensitive registration.
func TestRegistry_RegisterNormalizesID(t *testing.T) {
	r := NewRegistry()

	err := r.Register("  TSV  ", func() Strategy {
		return &stubStrategy{name: "tsv", ext: "tsv"}
	})
	if err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	if _, err := r.Resolve("tsv"); err != nil {
		t.Errorf("Expected normalized identifier to resolve, got %v", err)
	}
}

// TestRegistry_RegisterRejections tests registration capability checks.
func TestRegistry_RegisterRejections(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name     string
		formatID string
		factory  Factory
	}{
		{"empty identifier", "", func() Strategy { return &stubStrategy{name: "x", ext: "x"} }},
		{"blank identifier", "   ", func() Strategy { return &stubStrategy{name: "x", ext: "x"} }},
		{"nil factory", "x", nil},
		{"factory yields nil", "x", func() Strategy { return nil }},
		{"empty strategy name", "x", func() Strategy { return &stubStrategy{name: "", ext: "x"} }},
		{"empty extension", "x", func() Strategy { return &stubStrategy{name: "x", ext: ""} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Register(tt.formatID, tt.factory)
			var configErr *ConfigurationError
			if !errors.As(err, &configErr) {
				t.Errorf("Expected ConfigurationError, got %v", err)
			}
		})
	}

	if r.Count() != 3 {
		t.Errorf("Expected rejected registrations to leave the registry unchanged, got %d", r.Count())
	}
}
