package config

import "time"

// ConfigBuilder provides a fluent API for building Config instances in tests.
// It starts with default values and allows selective overrides.
type ConfigBuilder struct {
	cfg Config
}

// NewTestConfig creates a new ConfigBuilder with sensible defaults for testing.
// The resulting configuration is valid and can be used immediately.
func NewTestConfig() *ConfigBuilder {
	var cfg Config
	ApplyDefaults(&cfg)
	return &ConfigBuilder{cfg: cfg}
}

// Build returns the built Config instance.
func (b *ConfigBuilder) Build() *Config {
	return &b.cfg
}

// WithLoggingLevel sets the logging level.
func (b *ConfigBuilder) WithLoggingLevel(level string) *ConfigBuilder {
	b.cfg.Logging.Level = level
	return b
}

// WithLoggingFormat sets the logging format.
func (b *ConfigBuilder) WithLoggingFormat(format string) *ConfigBuilder {
	b.cfg.Logging.Format = format
	return b
}

// WithOutputDir sets the export output directory.
func (b *ConfigBuilder) WithOutputDir(dir string) *ConfigBuilder {
	b.cfg.Export.OutputDir = dir
	return b
}

// WithExportOption applies a mutation to the export defaults section.
func (b *ConfigBuilder) WithExportOption(mutate func(*ExportConfig)) *ConfigBuilder {
	mutate(&b.cfg.Export)
	return b
}

// WithHistoryEnabled enables history recording with the given backend.
func (b *ConfigBuilder) WithHistoryEnabled(backend string) *ConfigBuilder {
	b.cfg.History.Enabled = true
	b.cfg.History.Backend = backend
	return b
}

// WithSQLitePath enables the SQLite history backend at the given path.
func (b *ConfigBuilder) WithSQLitePath(path string) *ConfigBuilder {
	b.cfg.History.Enabled = true
	b.cfg.History.Backend = "sqlite"
	b.cfg.History.SQLite.Path = path
	return b
}

// WithRetentionDays sets the history retention window.
func (b *ConfigBuilder) WithRetentionDays(days int) *ConfigBuilder {
	b.cfg.History.RetentionDays = days
	return b
}

// WithScheduleJob enables the scheduler and appends a job.
func (b *ConfigBuilder) WithScheduleJob(job JobConfig) *ConfigBuilder {
	b.cfg.Schedule.Enabled = true
	b.cfg.Schedule.Jobs = append(b.cfg.Schedule.Jobs, job)
	return b
}

// WithWatchPaths enables watch mode on the given paths.
func (b *ConfigBuilder) WithWatchPaths(paths ...string) *ConfigBuilder {
	b.cfg.Watch.Enabled = true
	b.cfg.Watch.Paths = paths
	return b
}

// WithWatchDebounce sets the watch debounce interval.
func (b *ConfigBuilder) WithWatchDebounce(d time.Duration) *ConfigBuilder {
	b.cfg.Watch.Debounce = d
	return b
}

// WithMetricsEnabled enables the metrics endpoint on the given address.
func (b *ConfigBuilder) WithMetricsEnabled(address string) *ConfigBuilder {
	b.cfg.Metrics.Enabled = true
	b.cfg.Metrics.Address = address
	return b
}

// MinimalConfig returns the smallest valid configuration: defaults only,
// with every optional subsystem disabled.
func MinimalConfig() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}
