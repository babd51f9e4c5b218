// Package dataset provides the shared dataset model for Callisto.
//
// A dataset is either a single record (a string-keyed mapping with
// heterogeneous values) or a sequence of records. The package normalizes
// caller-supplied values into that shape, flattens nested mappings into
// dotted key paths, loads datasets from JSON and YAML files, and reports
// shape information for inspection.
package dataset
