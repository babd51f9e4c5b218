package export

import (
	"encoding/json"
)

// JSONStrategy serializes datasets as JSON documents. Any JSON-encodable
// dataset shape is accepted, including bare scalars and sequences of
// scalars.
type JSONStrategy struct{}

// NewJSONStrategy creates the built-in JSON strategy.
func NewJSONStrategy() *JSONStrategy {
	return &JSONStrategy{}
}

// Name returns the canonical format identifier.
func (s *JSONStrategy) Name() string { return "json" }

// Extension returns the synthesized-file extension.
func (s *JSONStrategy) Extension() string { return "json" }

// DefaultOptions returns the JSON strategy defaults.
func (s *JSONStrategy) DefaultOptions() Options {
	return Options{
		Prettify:        Bool(false),
		IncludeMetadata: Bool(false),
	}
}

// Validate checks that the dataset is JSON-encodable. Cycles and
// unsupported value types are reported as serialization errors.
func (s *JSONStrategy) Validate(data any) error {
	if data == nil {
		return NewValidationError(s.Name(), "dataset is nil", nil)
	}
	if _, err := json.Marshal(data); err != nil {
		return NewSerializationError(s.Name(), recordCount(data), err)
	}
	return nil
}

// Transform wraps the dataset in a metadata envelope when requested.
func (s *JSONStrategy) Transform(data any, opts Options) (any, error) {
	return envelope(s.Name(), data, opts), nil
}

// Serialize renders the intermediate value as JSON text, indented with
// two spaces when Prettify is set.
func (s *JSONStrategy) Serialize(v any, opts Options) (string, error) {
	var data []byte
	var err error

	if boolOpt(opts.Prettify, false) {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", NewSerializationError(s.Name(), recordCount(v), err)
	}

	return string(data), nil
}
