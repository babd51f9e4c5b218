package watch

import (
	"context"
	"fmt"

	"mercator-hq/callisto/pkg/dataset"
	"mercator-hq/callisto/pkg/export"
	"mercator-hq/callisto/pkg/telemetry/logging"
)

// ExportHandler returns a ChangeHandler that reloads the changed
// dataset file and exports it in every configured format. Per-format
// failures are isolated; the handler reports the first failure after
// attempting all formats.
func ExportHandler(exporter *export.Exporter, formats []string, opts export.Options, logger *logging.Logger) ChangeHandler {
	if logger == nil {
		// The zero logging config is valid.
		logger, _ = logging.New(logging.Config{})
	}
	logger = logger.With("component", "watch")

	return func(ctx context.Context, path string) error {
		data, err := dataset.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load dataset %q: %w", path, err)
		}

		outcomes := exporter.ExportMany(ctx, data, formats, opts)

		var firstErr error
		failed := 0
		for _, formatID := range formats {
			outcome := outcomes[formatID]
			if outcome.Err != nil {
				failed++
				if firstErr == nil {
					firstErr = outcome.Err
				}
				logger.ErrorContext(ctx, "format re-export failed",
					"format", formatID,
					"error", outcome.Err,
				)
				continue
			}

			logger.InfoContext(ctx, "format re-exported",
				"format", formatID,
				"records", outcome.Result.RecordCount,
				"bytes", outcome.Result.Bytes,
			)
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d formats failed: %w", failed, len(formats), firstErr)
		}
		return nil
	}
}
