package config

import "time"

// Config is the root configuration structure for Callisto. It contains
// all configuration sections for exporter defaults, job history,
// scheduled exports, watch mode, and telemetry.
type Config struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Export contains exporter-level default export options. These sit
	// between the per-strategy defaults and per-call options in the
	// option merge order.
	Export ExportConfig `yaml:"export"`

	// History contains export job history configuration including
	// backend selection and retention.
	History HistoryConfig `yaml:"history"`

	// Schedule contains scheduled export configuration.
	Schedule ScheduleConfig `yaml:"schedule"`

	// Watch contains watch-mode re-export configuration.
	Watch WatchConfig `yaml:"watch"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// ExportConfig contains exporter-level default export options. Field
// names match the option vocabulary of the export package, so a config
// file section and a per-call option set read the same. Pointer fields
// distinguish "not configured" from an explicit false or zero, which
// keeps strategy defaults intact when a field is omitted.
type ExportConfig struct {
	// OutputPath is an explicit destination file for exports.
	OutputPath string `yaml:"outputPath,omitempty"`

	// OutputDir is the directory used to synthesize a destination path
	// when OutputPath is empty.
	OutputDir string `yaml:"outputDir,omitempty"`

	// Filename overrides the generated file name inside OutputDir.
	Filename string `yaml:"filename,omitempty"`

	// CreateTimestamp inserts a filesystem-safe UTC timestamp into the
	// synthesized file name.
	CreateTimestamp *bool `yaml:"createTimestamp,omitempty"`

	// Encoding names the output encoding. Only UTF-8 is supported.
	Encoding string `yaml:"encoding,omitempty"`

	// Prettify enables indented JSON output.
	Prettify *bool `yaml:"prettify,omitempty"`

	// IncludeMetadata wraps exports in a metadata envelope.
	IncludeMetadata *bool `yaml:"includeMetadata,omitempty"`

	// DateFormat selects timestamp rendering. "iso" produces ISO-8601.
	DateFormat string `yaml:"dateFormat,omitempty"`

	// Delimiter separates CSV fields.
	Delimiter string `yaml:"delimiter,omitempty"`

	// IncludeHeaders emits the CSV header row.
	IncludeHeaders *bool `yaml:"includeHeaders,omitempty"`

	// QuoteStrings wraps values containing the delimiter, a quote, or a
	// line break in double quotes.
	QuoteStrings *bool `yaml:"quoteStrings,omitempty"`

	// EscapeQuotes doubles embedded quote characters in CSV values.
	EscapeQuotes *bool `yaml:"escapeQuotes,omitempty"`

	// NullValue substitutes null and missing values in CSV output.
	NullValue *string `yaml:"nullValue,omitempty"`

	// FlattenObjects collapses nested mappings into dotted key paths
	// before CSV serialization.
	FlattenObjects *bool `yaml:"flattenObjects,omitempty"`

	// MaxDepth bounds recursive flattening of nested mappings.
	MaxDepth *int `yaml:"maxDepth,omitempty"`
}

// HistoryConfig contains export job history configuration.
type HistoryConfig struct {
	// Enabled controls whether export jobs are recorded.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Backend specifies the storage backend for job records.
	// Options: "memory", "sqlite"
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLite contains SQLite-specific configuration.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// RetentionDays is the number of days to keep job records.
	// 0 means keep records forever (no pruning).
	// Default: 30
	RetentionDays int `yaml:"retention_days"`
}

// SQLiteConfig contains SQLite-specific configuration.
type SQLiteConfig struct {
	// Path is the file path for the SQLite database.
	// Default: "data/history.db"
	Path string `yaml:"path"`

	// MaxOpenConns is the maximum number of open database connections.
	// Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle database connections.
	// Default: 5
	MaxIdleConns int `yaml:"max_idle_conns"`

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// ScheduleConfig contains scheduled export configuration.
type ScheduleConfig struct {
	// Enabled controls whether the scheduler runs in daemon mode.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// StatePath is the SQLite database file recording job runs.
	// Default: "data/schedule.db"
	StatePath string `yaml:"state_path"`

	// Jobs is the list of scheduled export jobs.
	Jobs []JobConfig `yaml:"jobs"`
}

// JobConfig describes a single scheduled export job.
type JobConfig struct {
	// Name identifies the job in logs and run records.
	Name string `yaml:"name"`

	// Schedule is a standard five-field cron expression.
	// Example: "*/15 * * * *" (every 15 minutes)
	Schedule string `yaml:"schedule"`

	// Input is the dataset file to export (.json, .yaml, or .yml).
	Input string `yaml:"input"`

	// Formats lists the format identifiers to export to.
	Formats []string `yaml:"formats"`

	// Options are per-job export options, merged over the exporter
	// defaults.
	Options ExportConfig `yaml:"options"`
}

// WatchConfig contains watch-mode re-export configuration.
type WatchConfig struct {
	// Enabled controls whether watch mode runs in daemon mode.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Paths lists the files and directories to watch for changes.
	Paths []string `yaml:"paths"`

	// Debounce is the quiet period after the last change before a
	// re-export triggers. Bursts of changes collapse into one export.
	// Default: 500ms
	Debounce time.Duration `yaml:"debounce"`

	// Extensions restricts watched files by extension.
	// Default: [".json", ".yaml", ".yml"]
	Extensions []string `yaml:"extensions"`

	// Formats lists the format identifiers to re-export to.
	// Default: ["json"]
	Formats []string `yaml:"formats"`

	// Options are per-watch export options, merged over the exporter
	// defaults.
	Options ExportConfig `yaml:"options"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether the metrics endpoint is served.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Address is the listen address for the metrics HTTP server.
	// Format: "host:port"
	// Default: "127.0.0.1:9090"
	Address string `yaml:"address"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "callisto"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "export"
	Subsystem string `yaml:"subsystem"`

	// DurationBuckets defines histogram buckets for export duration (seconds).
	// Default: [0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0]
	DurationBuckets []float64 `yaml:"duration_buckets"`
}
