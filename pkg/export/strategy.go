package export

import (
	"time"

	"mercator-hq/callisto/pkg/dataset"
)

// Strategy is the capability set a format implementation provides. The
// exporter drives each strategy through a fixed pipeline: Validate,
// Transform, Serialize, then optional persistence.
type Strategy interface {
	// Name returns the canonical format identifier.
	Name() string

	// Extension returns the file extension used for synthesized file
	// names, without a leading dot.
	Extension() string

	// DefaultOptions returns the strategy's default options, the lowest
	// tier of the option merge.
	DefaultOptions() Options

	// Validate checks a dataset against format-specific constraints.
	Validate(data any) error

	// Transform converts a dataset into a format-ready intermediate
	// shape. The input is never mutated.
	Transform(data any, opts Options) (any, error)

	// Serialize renders the intermediate shape as textual content.
	Serialize(v any, opts Options) (string, error)
}

// Factory constructs a fresh Strategy instance.
type Factory func() Strategy

// runPipeline drives a strategy through validate, transform, serialize,
// and the optional persistence step. Only the persistence step touches
// external state, and only when an output path is set.
func runPipeline(s Strategy, data any, opts Options, writer FileWriter) (*Result, error) {
	if data == nil {
		return nil, NewValidationError(s.Name(), "dataset is nil", nil)
	}
	if err := s.Validate(data); err != nil {
		return nil, err
	}

	intermediate, err := s.Transform(data, opts)
	if err != nil {
		return nil, err
	}

	content, err := s.Serialize(intermediate, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Format:      s.Name(),
		RecordCount: recordCount(data),
		Bytes:       len(content),
	}

	if opts.OutputPath != "" {
		if err := writer.WriteFile(opts.OutputPath, content, opts.encoding()); err != nil {
			return nil, err
		}
		result.Path = opts.OutputPath
	} else {
		result.Content = content
	}

	return result, nil
}

// recordCount reports the number of records in a dataset: the sequence
// length, or 1 for a single value.
func recordCount(data any) int {
	if dataset.IsSequence(data) {
		return dataset.SequenceLen(data)
	}
	return 1
}

// envelope wraps a dataset with export metadata when IncludeMetadata is
// set. Sequences and bare scalars get a {metadata, data} wrapper; a
// single record receives the metadata as a sibling field, overwriting
// any existing "metadata" key.
func envelope(formatName string, data any, opts Options) any {
	if !boolOpt(opts.IncludeMetadata, false) {
		return data
	}

	meta := map[string]any{
		"exportedAt":  time.Now().UTC().Format(time.RFC3339),
		"format":      formatName,
		"recordCount": recordCount(data),
		"exporter":    ExporterID,
	}

	if !dataset.IsSequence(data) {
		if rec, ok := dataset.AsRecord(data); ok {
			merged := make(dataset.Record, len(rec)+1)
			for k, v := range rec {
				merged[k] = v
			}
			merged["metadata"] = meta
			return merged
		}
	}

	return map[string]any{
		"metadata": meta,
		"data":     data,
	}
}
