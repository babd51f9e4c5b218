package config

import "time"

// Default values for configuration fields.
const (
	// Logging defaults
	DefaultLoggingLevel  = "info"
	DefaultLoggingFormat = "json"

	// History defaults
	DefaultHistoryBackend            = "sqlite"
	DefaultHistorySQLitePath         = "data/history.db"
	DefaultHistorySQLiteMaxOpenConns = 10
	DefaultHistorySQLiteMaxIdleConns = 5
	DefaultHistorySQLiteWALMode      = true
	DefaultHistorySQLiteBusyTimeout  = 5 * time.Second
	DefaultHistoryRetentionDays      = 30

	// Schedule defaults
	DefaultScheduleStatePath = "data/schedule.db"

	// Watch defaults
	DefaultWatchDebounce = 500 * time.Millisecond

	// Metrics defaults
	DefaultMetricsAddress   = "127.0.0.1:9090"
	DefaultMetricsPath      = "/metrics"
	DefaultMetricsNamespace = "callisto"
	DefaultMetricsSubsystem = "export"
)

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
//
// Export option fields are left untouched: an unset pointer there means
// "defer to the strategy default", and filling it in would change the
// option merge order.
func ApplyDefaults(cfg *Config) {
	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLoggingFormat
	}

	// History defaults
	if cfg.History.Backend == "" {
		cfg.History.Backend = DefaultHistoryBackend
	}
	if cfg.History.SQLite.Path == "" {
		cfg.History.SQLite.Path = DefaultHistorySQLitePath
	}
	if cfg.History.SQLite.MaxOpenConns == 0 {
		cfg.History.SQLite.MaxOpenConns = DefaultHistorySQLiteMaxOpenConns
	}
	if cfg.History.SQLite.MaxIdleConns == 0 {
		cfg.History.SQLite.MaxIdleConns = DefaultHistorySQLiteMaxIdleConns
	}
	if !cfg.History.SQLite.WALMode {
		cfg.History.SQLite.WALMode = DefaultHistorySQLiteWALMode
	}
	if cfg.History.SQLite.BusyTimeout == 0 {
		cfg.History.SQLite.BusyTimeout = DefaultHistorySQLiteBusyTimeout
	}
	if cfg.History.RetentionDays == 0 {
		cfg.History.RetentionDays = DefaultHistoryRetentionDays
	}

	// Schedule defaults
	if cfg.Schedule.StatePath == "" {
		cfg.Schedule.StatePath = DefaultScheduleStatePath
	}

	// Watch defaults
	applyWatchDefaults(cfg)

	// Metrics defaults
	applyMetricsDefaults(cfg)
}

// applyWatchDefaults applies default values to watch configuration.
func applyWatchDefaults(cfg *Config) {
	watch := &cfg.Watch

	if watch.Debounce == 0 {
		watch.Debounce = DefaultWatchDebounce
	}
	if len(watch.Extensions) == 0 {
		watch.Extensions = []string{".json", ".yaml", ".yml"}
	}
	if len(watch.Formats) == 0 {
		watch.Formats = []string{"json"}
	}
}

// applyMetricsDefaults applies default values to metrics configuration.
func applyMetricsDefaults(cfg *Config) {
	metrics := &cfg.Metrics

	if metrics.Address == "" {
		metrics.Address = DefaultMetricsAddress
	}
	if metrics.Path == "" {
		metrics.Path = DefaultMetricsPath
	}
	if metrics.Namespace == "" {
		metrics.Namespace = DefaultMetricsNamespace
	}
	if metrics.Subsystem == "" {
		metrics.Subsystem = DefaultMetricsSubsystem
	}
	if len(metrics.DurationBuckets) == 0 {
		metrics.DurationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0}
	}
}
