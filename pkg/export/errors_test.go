package export

import (
	"errors"
	"strings"
	"testing"
)

// TestValidationError tests message formatting with and without a cause.
func TestValidationError(t *testing.T) {
	err := NewValidationError("csv", "dataset must be a record", nil)
	expected := "validation error [format=csv]: dataset must be a record"
	if err.Error() != expected {
		t.Errorf("Expected %q, got %q", expected, err.Error())
	}

	cause := errors.New("bad shape")
	wrapped := NewValidationError("csv", "dataset must be a record", cause)
	if !strings.Contains(wrapped.Error(), "bad shape") {
		t.Errorf("Expected cause in message, got %q", wrapped.Error())
	}
	if !errors.Is(wrapped, cause) {
		t.Error("Expected errors.Is to match the wrapped cause")
	}
}

// TestSerializationError tests message formatting and unwrapping.
func TestSerializationError(t *testing.T) {
	cause := errors.New("unsupported type: chan int")
	err := NewSerializationError("json", 3, cause)

	msg := err.Error()
	if !strings.Contains(msg, "format=json") {
		t.Errorf("Expected format in message, got %q", msg)
	}
	if !strings.Contains(msg, "record_count=3") {
		t.Errorf("Expected record count in message, got %q", msg)
	}
	if !errors.Is(err, cause) {
		t.Error("Expected errors.Is to match the wrapped cause")
	}
}

// TestUnsupportedFormatError tests message formatting with and without
// known formats.
func TestUnsupportedFormatError(t *testing.T) {
	err := NewUnsupportedFormatError("xml", []string{"csv", "json", "yaml"})
	expected := `unsupported format "xml" (registered: csv, json, yaml)`
	if err.Error() != expected {
		t.Errorf("Expected %q, got %q", expected, err.Error())
	}

	bare := NewUnsupportedFormatError("xml", nil)
	if bare.Error() != `unsupported format "xml"` {
		t.Errorf("Unexpected message without known formats: %q", bare.Error())
	}
}

// TestConfigurationError tests message formatting.
func TestConfigurationError(t *testing.T) {
	err := NewConfigurationError("factory", "strategy factory must not be nil")
	expected := "configuration error [option=factory]: strategy factory must not be nil"
	if err.Error() != expected {
		t.Errorf("Expected %q, got %q", expected, err.Error())
	}

	bare := NewConfigurationError("", "something is off")
	if bare.Error() != "configuration error: something is off" {
		t.Errorf("Unexpected message without option: %q", bare.Error())
	}
}

// TestPersistenceError tests message formatting and unwrapping.
func TestPersistenceError(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewPersistenceError("/data/out.json", cause)

	msg := err.Error()
	if !strings.Contains(msg, "path=/data/out.json") {
		t.Errorf("Expected path in message, got %q", msg)
	}
	if !errors.Is(err, cause) {
		t.Error("Expected errors.Is to match the wrapped cause")
	}
}

// TestErrorTypes tests that errors.As distinguishes the error types.
func TestErrorTypes(t *testing.T) {
	var validationErr *ValidationError
	var serializationErr *SerializationError

	err := error(NewValidationError("csv", "nope", nil))
	if !errors.As(err, &validationErr) {
		t.Error("Expected errors.As to match *ValidationError")
	}
	if errors.As(err, &serializationErr) {
		t.Error("Did not expect errors.As to match *SerializationError")
	}
}
