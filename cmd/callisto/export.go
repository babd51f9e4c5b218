package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"mercator-hq/callisto/pkg/cli"
	"mercator-hq/callisto/pkg/dataset"
	"mercator-hq/callisto/pkg/export"
	"mercator-hq/callisto/pkg/history"
)

var exportFlags struct {
	formats    []string
	output     string
	outputDir  string
	filename   string
	timestamp  bool
	pretty     bool
	metadata   bool
	dateFormat string
	delimiter  string
	noHeaders  bool
	nullValue  string
	noFlatten  bool
	maxDepth   int
	encoding   string
	history    bool
}

var exportCmd = &cobra.Command{
	Use:   "export <input-file>",
	Short: "Export a dataset",
	Long: `Export a JSON or YAML dataset in one or more formats.

With a single format and no output destination, the rendered content is
written to stdout. With --output-dir (or --output), content is persisted
and a per-format summary is printed instead.

Examples:
  # CSV on stdout
  callisto export data.json --format csv

  # Pretty JSON with a metadata envelope
  callisto export data.json --pretty --metadata

  # Several formats into a directory, timestamped file names
  callisto export data.json -f json -f csv -f yaml --output-dir out/ --timestamp

  # Tab-separated output without headers
  callisto export data.json -f csv --delimiter "	" --no-headers

  # Record the export in the history store
  callisto export data.json -f csv --output-dir out/ --history`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringSliceVarP(&exportFlags.formats, "format", "f", []string{"json"}, "output format (repeatable): json, csv, yaml")
	exportCmd.Flags().StringVarP(&exportFlags.output, "output", "o", "", "explicit output file (single format only)")
	exportCmd.Flags().StringVar(&exportFlags.outputDir, "output-dir", "", "directory for generated output files")
	exportCmd.Flags().StringVar(&exportFlags.filename, "filename", "", "file name inside --output-dir (used verbatim)")
	exportCmd.Flags().BoolVar(&exportFlags.timestamp, "timestamp", false, "insert a UTC timestamp into generated file names")
	exportCmd.Flags().BoolVar(&exportFlags.pretty, "pretty", false, "indent JSON output")
	exportCmd.Flags().BoolVar(&exportFlags.metadata, "metadata", false, "wrap the export in a metadata envelope")
	exportCmd.Flags().StringVar(&exportFlags.dateFormat, "date-format", "", `timestamp rendering: "iso" for ISO-8601`)
	exportCmd.Flags().StringVar(&exportFlags.delimiter, "delimiter", "", `CSV field delimiter (default ",")`)
	exportCmd.Flags().BoolVar(&exportFlags.noHeaders, "no-headers", false, "omit the CSV header row")
	exportCmd.Flags().StringVar(&exportFlags.nullValue, "null-value", "", "substitute for null and missing CSV values")
	exportCmd.Flags().BoolVar(&exportFlags.noFlatten, "no-flatten", false, "disable flattening of nested mappings in CSV")
	exportCmd.Flags().IntVar(&exportFlags.maxDepth, "max-depth", -1, "max flattening depth for nested mappings (0 disables)")
	exportCmd.Flags().StringVar(&exportFlags.encoding, "encoding", "", "content encoding (only utf-8 supported)")
	exportCmd.Flags().BoolVar(&exportFlags.history, "history", false, "record this export in the history store")
}

func runExport(cmd *cobra.Command, args []string) error {
	input := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	formats := exportFlags.formats
	if len(formats) == 0 {
		formats = []string{"json"}
	}
	if exportFlags.output != "" && len(formats) > 1 {
		return fmt.Errorf("--output targets a single file; use --output-dir with multiple formats")
	}

	data, err := dataset.Load(input)
	if err != nil {
		return fmt.Errorf("failed to load dataset %q: %w", input, err)
	}

	// Optional history recording
	var store history.Store
	if exportFlags.history {
		store, err = openHistoryStore(cfg, "")
		if err != nil {
			return cli.NewCommandError("export", err)
		}
		defer store.Close()
	}

	exporter := export.New(&export.Config{
		Defaults: export.OptionsFromConfig(cfg.Export),
		History:  store,
	})

	opts := exportOptionsFromFlags()

	// Progress only makes sense for multi-format batches, and never on
	// stdout where it would mix with content.
	var progress cli.ProgressReporter
	if verbose && len(formats) > 1 {
		progress = cli.NewProgressReporter(os.Stderr)
		progress.Start(int64(len(formats)))
	}

	ctx := context.Background()
	single := len(formats) == 1

	failed := 0
	var firstErr error
	for i, formatID := range formats {
		result, exportErr := exporter.Export(ctx, data, formatID, opts)
		if progress != nil {
			progress.Update(int64(i + 1))
		}

		if exportErr != nil {
			failed++
			if firstErr == nil {
				firstErr = exportErr
			}
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", formatID, exportErr)
			continue
		}

		switch {
		case result.Persisted():
			fmt.Printf("✓ %s → %s (%d records, %d bytes)\n",
				result.Format, result.Path, result.RecordCount, result.Bytes)
		case single:
			// Exact content bytes, so stdout can be redirected.
			os.Stdout.WriteString(result.Content)
		default:
			fmt.Printf("✓ %s (%d records, %d bytes, in memory; use --output-dir to persist)\n",
				result.Format, result.RecordCount, result.Bytes)
		}
	}

	if progress != nil {
		progress.Finish()
	}

	if failed > 0 {
		return cli.NewCommandError("export",
			fmt.Errorf("%d of %d formats failed: %w", failed, len(formats), firstErr))
	}
	return nil
}

// exportOptionsFromFlags builds the per-call option set. Only flags the
// user can meaningfully set are mapped; everything else stays unset so
// strategy and config defaults apply.
func exportOptionsFromFlags() export.Options {
	opts := export.Options{
		OutputPath: exportFlags.output,
		OutputDir:  exportFlags.outputDir,
		Filename:   exportFlags.filename,
		Encoding:   exportFlags.encoding,
		DateFormat: exportFlags.dateFormat,
		Delimiter:  exportFlags.delimiter,
	}

	if exportFlags.timestamp {
		opts.CreateTimestamp = export.Bool(true)
	}
	if exportFlags.pretty {
		opts.Prettify = export.Bool(true)
	}
	if exportFlags.metadata {
		opts.IncludeMetadata = export.Bool(true)
	}
	if exportFlags.noHeaders {
		opts.IncludeHeaders = export.Bool(false)
	}
	if exportFlags.nullValue != "" {
		opts.NullValue = export.String(exportFlags.nullValue)
	}
	if exportFlags.noFlatten {
		opts.FlattenObjects = export.Bool(false)
	}
	if exportFlags.maxDepth >= 0 {
		opts.MaxDepth = export.Int(exportFlags.maxDepth)
	}

	return opts
}
