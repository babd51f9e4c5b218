// Callisto is a data-export toolkit for JSON and YAML datasets.
//
// It renders datasets through pluggable format strategies, providing:
//   - JSON, CSV, and YAML export with per-call options
//   - Nested-record flattening for tabular output
//   - Export job history with memory and SQLite backends
//   - Scheduled exports on cron expressions
//   - Watch mode that re-exports datasets when they change
//
// Usage:
//
//	# Export a dataset to CSV on stdout
//	callisto export data.json --format csv
//
//	# Export to files in a directory, JSON and CSV at once
//	callisto export data.json --format json --format csv --output-dir out/
//
//	# Inspect a dataset without exporting
//	callisto inspect data.json
//
//	# Start the daemon (scheduled exports, watch mode, metrics)
//	callisto run --config /path/to/config.yaml
//
//	# Show export history
//	callisto history list
//
// For complete documentation, see: https://github.com/mercator-hq/callisto
package main

func main() {
	Execute()
}
