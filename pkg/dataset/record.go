package dataset

import (
	"fmt"
	"reflect"
	"sort"
)

// Record is a single data record: a string-keyed mapping with
// heterogeneous values.
type Record map[string]any

// AsRecord reports whether v is record-shaped and converts it to a
// Record. Any mapping with string keys qualifies; sequences and scalars
// do not.
func AsRecord(v any) (Record, bool) {
	switch m := v.(type) {
	case nil:
		return nil, false
	case Record:
		return m, true
	case map[string]any:
		return m, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}

	out := make(Record, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// IsSequence reports whether v is a sequence of values. Byte slices are
// treated as scalar blobs, not sequences.
func IsSequence(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.([]byte); ok {
		return false
	}
	kind := reflect.ValueOf(v).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}

// SequenceLen returns the length of a sequence value, or 0 when v is not
// a sequence.
func SequenceLen(v any) int {
	if !IsSequence(v) {
		return 0
	}
	return reflect.ValueOf(v).Len()
}

// Elements returns the members of a sequence value as a slice, or nil
// when v is not a sequence.
func Elements(v any) []any {
	if !IsSequence(v) {
		return nil
	}
	rv := reflect.ValueOf(v)
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// Keys returns the record's keys in sorted order.
func Keys(rec Record) []string {
	keys := make([]string, 0, len(rec))
	for key := range rec {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Normalize converts a dataset into a slice of records. It returns the
// records, whether the input was a sequence, and an error when the input
// is nil or contains elements that are not record-shaped.
func Normalize(dataset any) ([]Record, bool, error) {
	switch d := dataset.(type) {
	case nil:
		return nil, false, fmt.Errorf("dataset is nil")
	case Record:
		return []Record{d}, false, nil
	case map[string]any:
		return []Record{Record(d)}, false, nil
	case []Record:
		records := make([]Record, len(d))
		copy(records, d)
		return records, true, nil
	case []map[string]any:
		records := make([]Record, len(d))
		for i, m := range d {
			records[i] = Record(m)
		}
		return records, true, nil
	case []any:
		records := make([]Record, 0, len(d))
		for i, elem := range d {
			rec, ok := AsRecord(elem)
			if !ok {
				return nil, true, fmt.Errorf("sequence element %d is not a record (got %T)", i, elem)
			}
			records = append(records, rec)
		}
		return records, true, nil
	}

	if rec, ok := AsRecord(dataset); ok {
		return []Record{rec}, false, nil
	}

	if IsSequence(dataset) {
		elems := Elements(dataset)
		records := make([]Record, 0, len(elems))
		for i, elem := range elems {
			rec, ok := AsRecord(elem)
			if !ok {
				return nil, true, fmt.Errorf("sequence element %d is not a record (got %T)", i, elem)
			}
			records = append(records, rec)
		}
		return records, true, nil
	}

	return nil, false, fmt.Errorf("dataset must be a record or a sequence of records, got %T", dataset)
}
