package logging

import (
	"context"
	"log/slog"
)

// Context keys for common log fields.
type contextKey string

const (
	// RunIDKey is the context key for export run identifiers.
	RunIDKey contextKey = "run_id"

	// JobKey is the context key for scheduled job names.
	JobKey contextKey = "job"

	// FormatKey is the context key for export format identifiers.
	FormatKey contextKey = "format"

	// InputPathKey is the context key for input file paths.
	InputPathKey contextKey = "input_path"

	// OutputPathKey is the context key for output file paths.
	OutputPathKey contextKey = "output_path"

	// TriggerKey is the context key for what initiated an export
	// ("cli", "schedule", "watch").
	TriggerKey contextKey = "trigger"
)

// WithRunID adds an export run identifier to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// GetRunID retrieves the export run identifier from the context.
func GetRunID(ctx context.Context) string {
	if runID, ok := ctx.Value(RunIDKey).(string); ok {
		return runID
	}
	return ""
}

// WithJob adds a scheduled job name to the context.
func WithJob(ctx context.Context, job string) context.Context {
	return context.WithValue(ctx, JobKey, job)
}

// GetJob retrieves the scheduled job name from the context.
func GetJob(ctx context.Context) string {
	if job, ok := ctx.Value(JobKey).(string); ok {
		return job
	}
	return ""
}

// WithFormat adds an export format identifier to the context.
func WithFormat(ctx context.Context, format string) context.Context {
	return context.WithValue(ctx, FormatKey, format)
}

// GetFormat retrieves the export format identifier from the context.
func GetFormat(ctx context.Context) string {
	if format, ok := ctx.Value(FormatKey).(string); ok {
		return format
	}
	return ""
}

// WithInputPath adds an input file path to the context.
func WithInputPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, InputPathKey, path)
}

// GetInputPath retrieves the input file path from the context.
func GetInputPath(ctx context.Context) string {
	if path, ok := ctx.Value(InputPathKey).(string); ok {
		return path
	}
	return ""
}

// WithOutputPath adds an output file path to the context.
func WithOutputPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, OutputPathKey, path)
}

// GetOutputPath retrieves the output file path from the context.
func GetOutputPath(ctx context.Context) string {
	if path, ok := ctx.Value(OutputPathKey).(string); ok {
		return path
	}
	return ""
}

// WithTrigger adds an export trigger to the context.
func WithTrigger(ctx context.Context, trigger string) context.Context {
	return context.WithValue(ctx, TriggerKey, trigger)
}

// GetTrigger retrieves the export trigger from the context.
func GetTrigger(ctx context.Context) string {
	if trigger, ok := ctx.Value(TriggerKey).(string); ok {
		return trigger
	}
	return ""
}

// extractContextFields extracts common fields from context for logging.
// Returns a slice of key-value pairs suitable for logger.With().
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if runID := GetRunID(ctx); runID != "" {
		fields = append(fields, "run_id", runID)
	}

	if job := GetJob(ctx); job != "" {
		fields = append(fields, "job", job)
	}

	if format := GetFormat(ctx); format != "" {
		fields = append(fields, "format", format)
	}

	if path := GetInputPath(ctx); path != "" {
		fields = append(fields, "input_path", path)
	}

	if path := GetOutputPath(ctx); path != "" {
		fields = append(fields, "output_path", path)
	}

	if trigger := GetTrigger(ctx); trigger != "" {
		fields = append(fields, "trigger", trigger)
	}

	return fields
}

// ContextLogger is a logger that automatically includes context fields.
type ContextLogger struct {
	logger *Logger
	ctx    context.Context
}

// NewContextLogger creates a logger that automatically includes context fields.
func NewContextLogger(logger *Logger, ctx context.Context) *ContextLogger {
	return &ContextLogger{
		logger: logger.WithContext(ctx),
		ctx:    ctx,
	}
}

// Debug logs a debug message with context fields.
func (cl *ContextLogger) Debug(msg string, args ...any) {
	cl.logger.log(cl.ctx, slog.LevelDebug, msg, args...)
}

// Info logs an info message with context fields.
func (cl *ContextLogger) Info(msg string, args ...any) {
	cl.logger.log(cl.ctx, slog.LevelInfo, msg, args...)
}

// Warn logs a warning message with context fields.
func (cl *ContextLogger) Warn(msg string, args ...any) {
	cl.logger.log(cl.ctx, slog.LevelWarn, msg, args...)
}

// Error logs an error message with context fields.
func (cl *ContextLogger) Error(msg string, args ...any) {
	cl.logger.log(cl.ctx, slog.LevelError, msg, args...)
}

// With creates a new context logger with additional fields.
func (cl *ContextLogger) With(args ...any) *ContextLogger {
	return &ContextLogger{
		logger: cl.logger.With(args...),
		ctx:    cl.ctx,
	}
}
