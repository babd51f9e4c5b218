package dataset

import (
	"encoding/json"
	"time"
)

// Info summarizes the shape of a dataset without transforming it.
type Info struct {
	// IsSequence reports whether the dataset is a sequence of records.
	IsSequence bool `json:"is_sequence"`

	// RecordCount is the number of records: the sequence length, or 1
	// for a single value.
	RecordCount int `json:"record_count"`

	// ValueType is a coarse type tag: "record", "sequence", "string",
	// "number", "bool", "timestamp", "scalar", or "nil".
	ValueType string `json:"value_type"`

	// HasNested reports whether any record carries nested mappings or
	// sequences as values.
	HasNested bool `json:"has_nested"`

	// EstimatedBytes is the approximate serialized size of the dataset.
	EstimatedBytes int `json:"estimated_bytes"`
}

// Describe inspects a dataset and reports its shape.
func Describe(dataset any) *Info {
	info := &Info{
		ValueType:   TypeTag(dataset),
		RecordCount: 1,
	}

	if dataset == nil {
		info.RecordCount = 0
		return info
	}

	if IsSequence(dataset) {
		info.IsSequence = true
		info.RecordCount = SequenceLen(dataset)
	}

	if records, _, err := Normalize(dataset); err == nil {
		for _, rec := range records {
			if hasNestedValue(rec) {
				info.HasNested = true
				break
			}
		}
	}

	if data, err := json.Marshal(dataset); err == nil {
		info.EstimatedBytes = len(data)
	}

	return info
}

// TypeTag returns a coarse type label for a dataset value.
func TypeTag(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case time.Time:
		return "timestamp"
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return "number"
	}

	if IsSequence(v) {
		return "sequence"
	}
	if _, ok := AsRecord(v); ok {
		return "record"
	}
	return "scalar"
}

// hasNestedValue reports whether any value in the record is a mapping or
// a sequence.
func hasNestedValue(rec Record) bool {
	for _, v := range rec {
		if v == nil {
			continue
		}
		if IsSequence(v) {
			return true
		}
		if _, ok := AsRecord(v); ok {
			return true
		}
	}
	return false
}
