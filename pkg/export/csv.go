package export

import (
	"strings"

	"mercator-hq/callisto/pkg/dataset"
)

// CSVStrategy serializes record datasets as delimited text. Nested
// mappings are optionally flattened into dotted columns; the header set
// is the union of keys across all records in order of first appearance.
type CSVStrategy struct{}

// NewCSVStrategy creates the built-in CSV strategy.
func NewCSVStrategy() *CSVStrategy {
	return &CSVStrategy{}
}

// Name returns the canonical format identifier.
func (s *CSVStrategy) Name() string { return "csv" }

// Extension returns the synthesized-file extension.
func (s *CSVStrategy) Extension() string { return "csv" }

// DefaultOptions returns the CSV strategy defaults.
func (s *CSVStrategy) DefaultOptions() Options {
	return Options{
		Delimiter:      DefaultDelimiter,
		IncludeHeaders: Bool(true),
		QuoteStrings:   Bool(true),
		EscapeQuotes:   Bool(true),
		NullValue:      String(DefaultNullValue),
		FlattenObjects: Bool(true),
		MaxDepth:       Int(DefaultMaxDepth),
	}
}

// Validate checks that the dataset is a record or a sequence of records.
// Bare scalars and sequences of scalars are rejected.
func (s *CSVStrategy) Validate(data any) error {
	if data == nil {
		return NewValidationError(s.Name(), "dataset is nil", nil)
	}
	if _, _, err := dataset.Normalize(data); err != nil {
		return NewValidationError(s.Name(), "dataset must be a record or a sequence of records", err)
	}
	return nil
}

// Transform normalizes the dataset to a record slice and flattens nested
// mappings when FlattenObjects is set.
func (s *CSVStrategy) Transform(data any, opts Options) (any, error) {
	records, _, err := dataset.Normalize(data)
	if err != nil {
		return nil, NewValidationError(s.Name(), "dataset must be a record or a sequence of records", err)
	}

	if !boolOpt(opts.FlattenObjects, true) {
		return records, nil
	}

	maxDepth := intOpt(opts.MaxDepth, DefaultMaxDepth)
	flattened := make([]dataset.Record, len(records))
	for i, rec := range records {
		flattened[i] = dataset.FlattenRecord(rec, maxDepth)
	}
	return flattened, nil
}

// Serialize renders records as delimiter-separated rows joined with
// newlines, without a trailing newline. Missing keys render as the
// configured null value. An empty record sequence serializes to an
// empty string even when headers are requested.
func (s *CSVStrategy) Serialize(v any, opts Options) (string, error) {
	records, ok := v.([]dataset.Record)
	if !ok {
		normalized, _, err := dataset.Normalize(v)
		if err != nil {
			return "", NewSerializationError(s.Name(), recordCount(v), err)
		}
		records = normalized
	}

	if len(records) == 0 {
		return "", nil
	}

	headers := headerUnion(records)
	formatter := NewValueFormatter(opts)
	delimiter := opts.delimiter()

	rows := make([]string, 0, len(records)+1)
	if boolOpt(opts.IncludeHeaders, true) {
		rows = append(rows, strings.Join(headers, delimiter))
	}

	cells := make([]string, len(headers))
	for _, rec := range records {
		for i, header := range headers {
			cells[i] = formatter.Format(rec[header])
		}
		rows = append(rows, strings.Join(cells, delimiter))
	}

	return strings.Join(rows, "\n"), nil
}

// headerUnion computes the ordered union of record keys. Keys within a
// record are visited in sorted order; across records the union keeps
// first-appearance order.
func headerUnion(records []dataset.Record) []string {
	var headers []string
	seen := make(map[string]struct{})
	for _, rec := range records {
		for _, key := range dataset.Keys(rec) {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			headers = append(headers, key)
		}
	}
	return headers
}
