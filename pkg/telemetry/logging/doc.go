// Package logging provides structured logging for export runs.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging with JSON and text formats
//   - Context-aware logging with run IDs, job names, and paths
//   - Configurable log levels (debug, info, warn, error)
//   - A bridge from the application configuration via FromConfig
//
// # Usage
//
//	// Create a logger from the application config
//	logger, err := logging.New(logging.FromConfig(cfg.Logging))
//	if err != nil {
//	    return err
//	}
//
//	// Log structured data
//	logger.Info("export complete",
//	    "format", "csv",
//	    "records", 42,
//	    "duration_ms", 12,
//	)
//
//	// Route package-level slog calls through the same handler
//	slog.SetDefault(logger.Slog())
//
// # Context Fields
//
// Export runs carry identifying fields in their context. The *Context
// logging methods extract and prepend them automatically:
//
//	ctx := logging.WithRunID(ctx, runID)
//	ctx = logging.WithTrigger(ctx, "schedule")
//	logger.InfoContext(ctx, "job started")  // Includes run_id and trigger
//
// # Performance
//
// Disabled levels short-circuit before any allocation:
//   - <1µs when log level filters out the message
package logging
