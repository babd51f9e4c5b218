package config

import (
	"fmt"
	"strings"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "history.backend").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	// Validate logging configuration
	errs = append(errs, validateLogging(&cfg.Logging)...)

	// Validate export defaults
	errs = append(errs, validateExport("export", &cfg.Export)...)

	// Validate history configuration
	errs = append(errs, validateHistory(&cfg.History)...)

	// Validate schedule configuration
	errs = append(errs, validateSchedule(&cfg.Schedule)...)

	// Validate watch configuration
	errs = append(errs, validateWatch(&cfg.Watch)...)

	// Validate metrics configuration
	errs = append(errs, validateMetrics(&cfg.Metrics)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// validateLogging validates logging configuration.
func validateLogging(cfg *LoggingConfig) []FieldError {
	var errs []FieldError

	// Validate logging level
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if cfg.Level == "" {
		errs = append(errs, FieldError{
			Field:   "logging.level",
			Message: "logging level is required",
		})
	} else if !validLevels[cfg.Level] {
		errs = append(errs, FieldError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid logging level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.Level),
		})
	}

	// Validate logging format
	validFormats := map[string]bool{"json": true, "text": true}
	if cfg.Format == "" {
		errs = append(errs, FieldError{
			Field:   "logging.format",
			Message: "logging format is required",
		})
	} else if !validFormats[cfg.Format] {
		errs = append(errs, FieldError{
			Field:   "logging.format",
			Message: fmt.Sprintf("invalid logging format %q: must be 'json' or 'text'", cfg.Format),
		})
	}

	return errs
}

// validateExport validates an export option section. The same rules apply
// to the top-level export defaults and to per-job and per-watch options,
// so the field prefix is passed in.
func validateExport(prefix string, cfg *ExportConfig) []FieldError {
	var errs []FieldError

	// Validate encoding (only UTF-8 variants are supported)
	if cfg.Encoding != "" {
		switch strings.ToLower(cfg.Encoding) {
		case "utf-8", "utf8":
		default:
			errs = append(errs, FieldError{
				Field:   prefix + ".encoding",
				Message: fmt.Sprintf("unsupported encoding %q: only UTF-8 is supported", cfg.Encoding),
			})
		}
	}

	// Validate max depth
	if cfg.MaxDepth != nil && *cfg.MaxDepth < 1 {
		errs = append(errs, FieldError{
			Field:   prefix + ".maxDepth",
			Message: "max depth must be at least 1",
		})
	}

	return errs
}

// validateHistory validates history configuration.
func validateHistory(cfg *HistoryConfig) []FieldError {
	var errs []FieldError

	// If history is disabled, skip validation
	if !cfg.Enabled {
		return errs
	}

	// Validate backend
	validBackends := map[string]bool{"memory": true, "sqlite": true}
	if cfg.Backend == "" {
		errs = append(errs, FieldError{
			Field:   "history.backend",
			Message: "backend is required when history is enabled",
		})
	} else if !validBackends[cfg.Backend] {
		errs = append(errs, FieldError{
			Field:   "history.backend",
			Message: fmt.Sprintf("invalid backend %q: must be 'memory' or 'sqlite'", cfg.Backend),
		})
	}

	// Validate backend-specific configuration
	if cfg.Backend == "sqlite" {
		if cfg.SQLite.Path == "" {
			errs = append(errs, FieldError{
				Field:   "history.sqlite.path",
				Message: "SQLite path is required when backend is 'sqlite'",
			})
		}
		if cfg.SQLite.MaxOpenConns < 0 {
			errs = append(errs, FieldError{
				Field:   "history.sqlite.max_open_conns",
				Message: "max open connections must be non-negative",
			})
		}
		if cfg.SQLite.MaxIdleConns < 0 {
			errs = append(errs, FieldError{
				Field:   "history.sqlite.max_idle_conns",
				Message: "max idle connections must be non-negative",
			})
		}
		if cfg.SQLite.BusyTimeout < 0 {
			errs = append(errs, FieldError{
				Field:   "history.sqlite.busy_timeout",
				Message: "busy timeout must be positive",
			})
		}
	}

	// Validate retention days
	if cfg.RetentionDays < 0 {
		errs = append(errs, FieldError{
			Field:   "history.retention_days",
			Message: "retention days must be non-negative",
		})
	}
	if cfg.RetentionDays > 3650 { // 10 years is excessive
		errs = append(errs, FieldError{
			Field:   "history.retention_days",
			Message: "retention days exceeds reasonable limit (3650 days / 10 years)",
		})
	}

	return errs
}

// validateSchedule validates schedule configuration.
func validateSchedule(cfg *ScheduleConfig) []FieldError {
	var errs []FieldError

	// If the scheduler is disabled, skip validation
	if !cfg.Enabled {
		return errs
	}

	if cfg.StatePath == "" {
		errs = append(errs, FieldError{
			Field:   "schedule.state_path",
			Message: "state path is required when the scheduler is enabled",
		})
	}

	for i, job := range cfg.Jobs {
		prefix := fmt.Sprintf("schedule.jobs[%d]", i)

		if job.Name == "" {
			errs = append(errs, FieldError{
				Field:   prefix + ".name",
				Message: "job name is required",
			})
		}
		if job.Schedule == "" {
			errs = append(errs, FieldError{
				Field:   prefix + ".schedule",
				Message: "cron schedule is required",
			})
		}
		if job.Input == "" {
			errs = append(errs, FieldError{
				Field:   prefix + ".input",
				Message: "input dataset path is required",
			})
		}
		if len(job.Formats) == 0 {
			errs = append(errs, FieldError{
				Field:   prefix + ".formats",
				Message: "at least one export format is required",
			})
		}

		errs = append(errs, validateExport(prefix+".options", &cfg.Jobs[i].Options)...)
	}

	return errs
}

// validateWatch validates watch configuration.
func validateWatch(cfg *WatchConfig) []FieldError {
	var errs []FieldError

	// If watch mode is disabled, skip validation
	if !cfg.Enabled {
		return errs
	}

	if len(cfg.Paths) == 0 {
		errs = append(errs, FieldError{
			Field:   "watch.paths",
			Message: "at least one watch path is required when watch mode is enabled",
		})
	}
	if cfg.Debounce < 0 {
		errs = append(errs, FieldError{
			Field:   "watch.debounce",
			Message: "debounce must be positive",
		})
	}
	if len(cfg.Formats) == 0 {
		errs = append(errs, FieldError{
			Field:   "watch.formats",
			Message: "at least one export format is required when watch mode is enabled",
		})
	}

	errs = append(errs, validateExport("watch.options", &cfg.Options)...)

	return errs
}

// validateMetrics validates metrics configuration.
func validateMetrics(cfg *MetricsConfig) []FieldError {
	var errs []FieldError

	// If metrics are disabled, skip validation
	if !cfg.Enabled {
		return errs
	}

	if cfg.Address == "" {
		errs = append(errs, FieldError{
			Field:   "metrics.address",
			Message: "listen address is required when metrics are enabled",
		})
	}
	if cfg.Path == "" {
		errs = append(errs, FieldError{
			Field:   "metrics.path",
			Message: "metrics path is required when metrics are enabled",
		})
	} else if cfg.Path[0] != '/' {
		errs = append(errs, FieldError{
			Field:   "metrics.path",
			Message: "metrics path must start with /",
		})
	}

	return errs
}
