package export

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"mercator-hq/callisto/pkg/dataset"
)

// serializeJSON runs the JSON strategy pipeline steps directly.
func serializeJSON(t *testing.T, data any, opts Options) string {
	t.Helper()

	s := NewJSONStrategy()
	merged := MergeOptions(s.DefaultOptions(), opts)

	if err := s.Validate(data); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	intermediate, err := s.Transform(data, merged)
	if err != nil {
		t.Fatalf("Transform() failed: %v", err)
	}
	out, err := s.Serialize(intermediate, merged)
	if err != nil {
		t.Fatalf("Serialize() failed: %v", err)
	}
	return out
}

// TestJSONStrategy_Serialize tests compact output.
func TestJSONStrategy_Serialize(t *testing.T) {
	tests := []struct {
		name     string
		data     any
		expected string
	}{
		{"single record", map[string]any{"name": "test"}, `{"name":"test"}`},
		{"record sequence", []map[string]any{{"id": 1}}, `[{"id":1}]`},
		{"empty sequence", []any{}, "[]"},
		{"scalar", 42, "42"},
		{"string scalar", "text", `"text"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := serializeJSON(t, tt.data, Options{})
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

// TestJSONStrategy_Prettify tests indented output.
func TestJSONStrategy_Prettify(t *testing.T) {
	got := serializeJSON(t, map[string]any{"name": "test"}, Options{Prettify: Bool(true)})

	expected := "{\n  \"name\": \"test\"\n}"
	if got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}

	compact := serializeJSON(t, map[string]any{"name": "test"}, Options{Prettify: Bool(false)})
	if strings.Contains(compact, "\n") {
		t.Errorf("Expected compact output, got %q", compact)
	}
}

// TestJSONStrategy_Validate tests rejection of nil and non-encodable
// datasets.
func TestJSONStrategy_Validate(t *testing.T) {
	s := NewJSONStrategy()

	var validationErr *ValidationError
	if err := s.Validate(nil); !errors.As(err, &validationErr) {
		t.Errorf("Expected ValidationError for nil dataset, got %v", err)
	}

	var serializationErr *SerializationError
	if err := s.Validate(map[string]any{"ch": make(chan int)}); !errors.As(err, &serializationErr) {
		t.Errorf("Expected SerializationError for channel value, got %v", err)
	}
}

// TestJSONStrategy_Envelope_SingleRecord tests metadata injection into a
// single record.
func TestJSONStrategy_Envelope_SingleRecord(t *testing.T) {
	s := NewJSONStrategy()
	data := map[string]any{"name": "test", "metadata": "old"}

	out, err := s.Transform(data, Options{IncludeMetadata: Bool(true)})
	if err != nil {
		t.Fatalf("Transform() failed: %v", err)
	}

	rec, ok := dataset.AsRecord(out)
	if !ok {
		t.Fatalf("Expected a record, got %T", out)
	}
	if rec["name"] != "test" {
		t.Error("Expected original fields preserved")
	}

	meta, ok := rec["metadata"].(map[string]any)
	if !ok {
		t.Fatalf("Expected metadata to be replaced with a mapping, got %T", rec["metadata"])
	}
	if meta["format"] != "json" {
		t.Errorf("Expected format 'json', got %v", meta["format"])
	}
	if meta["recordCount"] != 1 {
		t.Errorf("Expected record count 1, got %v", meta["recordCount"])
	}
	if meta["exporter"] != ExporterID {
		t.Errorf("Expected exporter '%s', got %v", ExporterID, meta["exporter"])
	}
	if _, err := time.Parse(time.RFC3339, meta["exportedAt"].(string)); err != nil {
		t.Errorf("Expected RFC 3339 exportedAt, got %v", meta["exportedAt"])
	}
}

// TestJSONStrategy_Envelope_Sequence tests the wrapper shape for
// sequences.
func TestJSONStrategy_Envelope_Sequence(t *testing.T) {
	s := NewJSONStrategy()
	data := []map[string]any{{"id": 1}, {"id": 2}}

	out, err := s.Transform(data, Options{IncludeMetadata: Bool(true)})
	if err != nil {
		t.Fatalf("Transform() failed: %v", err)
	}

	wrapper, ok := out.(map[string]any)
	if !ok {
		t.Fatalf("Expected a wrapper mapping, got %T", out)
	}
	if _, ok := wrapper["metadata"]; !ok {
		t.Error("Expected metadata key in wrapper")
	}
	if !reflect.DeepEqual(wrapper["data"], data) {
		t.Error("Expected data preserved inside wrapper")
	}

	meta := wrapper["metadata"].(map[string]any)
	if meta["recordCount"] != 2 {
		t.Errorf("Expected record count 2, got %v", meta["recordCount"])
	}
}

// TestJSONStrategy_Envelope_Scalar tests the wrapper shape for scalars.
func TestJSONStrategy_Envelope_Scalar(t *testing.T) {
	s := NewJSONStrategy()

	out, err := s.Transform(42, Options{IncludeMetadata: Bool(true)})
	if err != nil {
		t.Fatalf("Transform() failed: %v", err)
	}

	wrapper, ok := out.(map[string]any)
	if !ok {
		t.Fatalf("Expected a wrapper mapping, got %T", out)
	}
	if wrapper["data"] != 42 {
		t.Errorf("Expected scalar preserved, got %v", wrapper["data"])
	}
}

// TestJSONStrategy_Envelope_Disabled tests that data passes through
// untouched by default.
func TestJSONStrategy_Envelope_Disabled(t *testing.T) {
	s := NewJSONStrategy()
	data := map[string]any{"name": "test"}

	out, err := s.Transform(data, Options{})
	if err != nil {
		t.Fatalf("Transform() failed: %v", err)
	}
	if !reflect.DeepEqual(out, data) {
		t.Errorf("Expected data unchanged, got %v", out)
	}
}
