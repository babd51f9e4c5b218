package export

import (
	"gopkg.in/yaml.v3"
)

// YAMLStrategy serializes datasets as YAML documents.
type YAMLStrategy struct{}

// NewYAMLStrategy creates the built-in YAML strategy.
func NewYAMLStrategy() *YAMLStrategy {
	return &YAMLStrategy{}
}

// Name returns the canonical format identifier.
func (s *YAMLStrategy) Name() string { return "yaml" }

// Extension returns the synthesized-file extension.
func (s *YAMLStrategy) Extension() string { return "yaml" }

// DefaultOptions returns the YAML strategy defaults.
func (s *YAMLStrategy) DefaultOptions() Options {
	return Options{
		IncludeMetadata: Bool(false),
	}
}

// Validate accepts any non-nil dataset; unsupported value types surface
// as serialization errors at the serialize step.
func (s *YAMLStrategy) Validate(data any) error {
	if data == nil {
		return NewValidationError(s.Name(), "dataset is nil", nil)
	}
	return nil
}

// Transform wraps the dataset in a metadata envelope when requested.
func (s *YAMLStrategy) Transform(data any, opts Options) (any, error) {
	return envelope(s.Name(), data, opts), nil
}

// Serialize renders the intermediate value as YAML text.
func (s *YAMLStrategy) Serialize(v any, opts Options) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", NewSerializationError(s.Name(), recordCount(v), err)
	}
	return string(data), nil
}
