package export

import (
	"fmt"
	"strings"
)

// ValidationError indicates a dataset that cannot be exported in the
// requested format.
type ValidationError struct {
	// Format is the format identifier being exported.
	Format string

	// Reason describes why validation failed.
	Reason string

	// Cause is the underlying error, if any.
	Cause error
}

// Error returns a formatted error message.
func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("validation error [format=%s]: %s: %v", e.Format, e.Reason, e.Cause)
	}
	return fmt.Sprintf("validation error [format=%s]: %s", e.Format, e.Reason)
}

// Unwrap returns the underlying cause.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new ValidationError.
func NewValidationError(format, reason string, cause error) *ValidationError {
	return &ValidationError{Format: format, Reason: reason, Cause: cause}
}

// SerializationError indicates that content generation failed because a
// value is not representable in the target format.
type SerializationError struct {
	// Format is the format identifier being exported.
	Format string

	// RecordCount is the number of records in the failing dataset.
	RecordCount int

	// Cause is the underlying error.
	Cause error
}

// Error returns a formatted error message.
func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialization error [format=%s, record_count=%d]: %v", e.Format, e.RecordCount, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *SerializationError) Unwrap() error {
	return e.Cause
}

// NewSerializationError creates a new SerializationError.
func NewSerializationError(format string, recordCount int, cause error) *SerializationError {
	return &SerializationError{Format: format, RecordCount: recordCount, Cause: cause}
}

// UnsupportedFormatError indicates a format identifier with no
// registered strategy.
type UnsupportedFormatError struct {
	// Format is the requested identifier.
	Format string

	// Known lists the registered identifiers.
	Known []string
}

// Error returns a formatted error message.
func (e *UnsupportedFormatError) Error() string {
	if len(e.Known) > 0 {
		return fmt.Sprintf("unsupported format %q (registered: %s)", e.Format, strings.Join(e.Known, ", "))
	}
	return fmt.Sprintf("unsupported format %q", e.Format)
}

// NewUnsupportedFormatError creates a new UnsupportedFormatError.
func NewUnsupportedFormatError(format string, known []string) *UnsupportedFormatError {
	return &UnsupportedFormatError{Format: format, Known: known}
}

// ConfigurationError indicates an invalid strategy registration or
// option value.
type ConfigurationError struct {
	// Option names the offending option or registration argument.
	Option string

	// Reason describes the problem.
	Reason string
}

// Error returns a formatted error message.
func (e *ConfigurationError) Error() string {
	if e.Option != "" {
		return fmt.Sprintf("configuration error [option=%s]: %s", e.Option, e.Reason)
	}
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// NewConfigurationError creates a new ConfigurationError.
func NewConfigurationError(option, reason string) *ConfigurationError {
	return &ConfigurationError{Option: option, Reason: reason}
}

// PersistenceError indicates a failed write of rendered content.
type PersistenceError struct {
	// Path is the destination that could not be written.
	Path string

	// Cause is the underlying error.
	Cause error
}

// Error returns a formatted error message.
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error [path=%s]: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

// NewPersistenceError creates a new PersistenceError.
func NewPersistenceError(path string, cause error) *PersistenceError {
	return &PersistenceError{Path: path, Cause: cause}
}
