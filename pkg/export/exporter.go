package export

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"mercator-hq/callisto/pkg/dataset"
	"mercator-hq/callisto/pkg/history"
)

// ExporterID identifies this exporter in envelope metadata.
const ExporterID = "callisto/1.0"

// Result describes one completed export.
type Result struct {
	// Format is the canonical format identifier.
	Format string `json:"format"`

	// RecordCount is the number of records exported.
	RecordCount int `json:"record_count"`

	// Content holds the rendered output for in-memory exports.
	Content string `json:"content,omitempty"`

	// Path is the destination file for persisted exports.
	Path string `json:"path,omitempty"`

	// Bytes is the rendered content length.
	Bytes int `json:"bytes"`

	// Duration is the total export time.
	Duration time.Duration `json:"duration"`
}

// Persisted reports whether the result was written to a file.
func (r *Result) Persisted() bool {
	return r.Path != ""
}

// Outcome is the per-format outcome of ExportMany. Exactly one of
// Result and Err is set.
type Outcome struct {
	Result *Result
	Err    error
}

// MetricsRecorder receives one observation per export attempt. The
// telemetry metrics package satisfies it without this package
// importing it.
type MetricsRecorder interface {
	RecordExport(format, status, mode string, records, bytes int, duration time.Duration)
}

// Config contains configuration for the Exporter.
type Config struct {
	// Defaults are exporter-level default options. They sit between
	// strategy defaults and per-call options in the merge order.
	Defaults Options

	// Writer persists rendered content. Defaults to the OS writer.
	Writer FileWriter

	// History records one job per export attempt when set.
	History history.Store

	// Metrics receives one observation per export attempt when set.
	Metrics MetricsRecorder
}

// DefaultConfig returns the default exporter configuration.
func DefaultConfig() *Config {
	return &Config{
		Writer: NewFileWriter(),
	}
}

// Exporter is the facade over the strategy registry. It merges options,
// synthesizes output paths, drives the export pipeline, and feeds
// history and metrics.
type Exporter struct {
	config   *Config
	registry *Registry
	logger   *slog.Logger
}

// New creates an Exporter with the built-in formats registered. A nil
// config uses defaults.
func New(config *Config) *Exporter {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Writer == nil {
		config.Writer = NewFileWriter()
	}

	return &Exporter{
		config:   config,
		registry: NewRegistry(),
		logger:   slog.Default().With("component", "export"),
	}
}

// Export renders a dataset in the given format. Options are merged in
// three tiers: strategy defaults, exporter defaults, then the per-call
// options, with later tiers winning per field. When the merged options
// name no explicit output path but an output directory, a path is
// synthesized from the directory, the file name, and the strategy's
// extension.
func (e *Exporter) Export(ctx context.Context, data any, formatID string, opts Options) (*Result, error) {
	start := time.Now().UTC()

	strategy, err := e.registry.Resolve(formatID)
	if err != nil {
		e.observe(ctx, normalizeFormatID(formatID), "", nil, start, time.Since(start), err)
		return nil, err
	}

	merged := MergeOptions(strategy.DefaultOptions(), e.config.Defaults, opts)
	resolveOutputPath(strategy, &merged, start)

	e.logger.Debug("Starting export",
		"format", strategy.Name(),
		"output_path", merged.OutputPath,
	)

	result, err := runPipeline(strategy, data, merged, e.config.Writer)
	duration := time.Since(start)
	if result != nil {
		result.Duration = duration
	}

	e.observe(ctx, strategy.Name(), merged.OutputPath, result, start, duration, err)

	if err != nil {
		e.logger.Error("Export failed",
			"format", strategy.Name(),
			"duration", duration,
			"error", err,
		)
		return nil, err
	}

	e.logger.Info("Export completed",
		"format", strategy.Name(),
		"records", result.RecordCount,
		"bytes", result.Bytes,
		"duration", duration,
		"persisted", result.Persisted(),
	)

	return result, nil
}

// ExportMany renders a dataset in several formats. Failures are
// isolated per format; the batch itself never fails. The returned map
// is keyed by the requested format identifiers.
func (e *Exporter) ExportMany(ctx context.Context, data any, formatIDs []string, opts Options) map[string]Outcome {
	outcomes := make(map[string]Outcome, len(formatIDs))
	for _, formatID := range formatIDs {
		result, err := e.Export(ctx, data, formatID, opts)
		outcomes[formatID] = Outcome{Result: result, Err: err}
	}
	return outcomes
}

// Validate runs only the validation step of the pipeline for the given
// format.
func (e *Exporter) Validate(data any, formatID string) error {
	strategy, err := e.registry.Resolve(formatID)
	if err != nil {
		return err
	}
	if data == nil {
		return NewValidationError(strategy.Name(), "dataset is nil", nil)
	}
	return strategy.Validate(data)
}

// RegisterStrategy adds a custom format to the exporter's registry.
func (e *Exporter) RegisterStrategy(formatID string, factory Factory) error {
	if err := e.registry.Register(formatID, factory); err != nil {
		return err
	}
	e.logger.Info("Export strategy registered", "format", normalizeFormatID(formatID))
	return nil
}

// ListSupportedFormats returns the registered format identifiers,
// sorted.
func (e *Exporter) ListSupportedFormats() []string {
	return e.registry.ListFormats()
}

// Describe reports the shape of a dataset without exporting it.
func (e *Exporter) Describe(data any) *dataset.Info {
	return dataset.Describe(data)
}

// observe feeds one export attempt into metrics and history. History
// failures are logged and swallowed so they never fail the export.
func (e *Exporter) observe(ctx context.Context, formatID, outputPath string, result *Result, start time.Time, duration time.Duration, exportErr error) {
	status := history.StatusSuccess
	if exportErr != nil {
		status = history.StatusError
	}

	mode := history.ModeContent
	if outputPath != "" {
		mode = history.ModeFile
	}

	records, bytes := 0, 0
	path := ""
	if result != nil {
		records = result.RecordCount
		bytes = result.Bytes
		path = result.Path
	}

	if e.config.Metrics != nil {
		e.config.Metrics.RecordExport(formatID, status, mode, records, bytes, duration)
	}

	if e.config.History == nil {
		return
	}

	job := history.NewJobRecord(formatID)
	job.Mode = mode
	job.Path = path
	job.RecordCount = records
	job.Bytes = bytes
	job.Status = status
	job.StartedAt = start
	job.Duration = duration
	if exportErr != nil {
		job.Error = exportErr.Error()
	}

	if err := e.config.History.Record(ctx, job); err != nil {
		e.logger.Warn("Failed to record export job",
			"job_id", job.ID,
			"format", formatID,
			"error", err,
		)
	}
}

// resolveOutputPath synthesizes an output path from OutputDir, Filename
// and CreateTimestamp when no explicit OutputPath is set.
func resolveOutputPath(s Strategy, opts *Options, now time.Time) {
	if opts.OutputPath != "" || opts.OutputDir == "" {
		return
	}

	name := opts.Filename
	if name == "" {
		name = "export." + s.Extension()
	}

	if boolOpt(opts.CreateTimestamp, false) {
		ext := filepath.Ext(name)
		base := strings.TrimSuffix(name, ext)
		name = base + "-" + timestampToken(now) + ext
	}

	opts.OutputPath = filepath.Join(opts.OutputDir, name)
}

// timestampToken renders a UTC timestamp safe for file names. Colons
// and dots are replaced so the token survives on every filesystem.
func timestampToken(t time.Time) string {
	stamp := t.UTC().Format(time.RFC3339)
	stamp = strings.ReplaceAll(stamp, ":", "-")
	return strings.ReplaceAll(stamp, ".", "-")
}
