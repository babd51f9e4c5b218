package export

import "mercator-hq/callisto/pkg/config"

// OptionsFromConfig converts a configuration export section into an
// Options value. Pointer fields are copied, so later mutation of the
// configuration cannot leak into option sets already handed out.
//
// The conversion is used both for the exporter-level defaults and for
// the per-job and per-watch option sections, which share the same
// configuration shape.
func OptionsFromConfig(cfg config.ExportConfig) Options {
	opts := Options{
		OutputPath: cfg.OutputPath,
		OutputDir:  cfg.OutputDir,
		Filename:   cfg.Filename,
		Encoding:   cfg.Encoding,
		DateFormat: cfg.DateFormat,
		Delimiter:  cfg.Delimiter,
	}

	if cfg.CreateTimestamp != nil {
		opts.CreateTimestamp = Bool(*cfg.CreateTimestamp)
	}
	if cfg.Prettify != nil {
		opts.Prettify = Bool(*cfg.Prettify)
	}
	if cfg.IncludeMetadata != nil {
		opts.IncludeMetadata = Bool(*cfg.IncludeMetadata)
	}
	if cfg.IncludeHeaders != nil {
		opts.IncludeHeaders = Bool(*cfg.IncludeHeaders)
	}
	if cfg.QuoteStrings != nil {
		opts.QuoteStrings = Bool(*cfg.QuoteStrings)
	}
	if cfg.EscapeQuotes != nil {
		opts.EscapeQuotes = Bool(*cfg.EscapeQuotes)
	}
	if cfg.NullValue != nil {
		opts.NullValue = String(*cfg.NullValue)
	}
	if cfg.FlattenObjects != nil {
		opts.FlattenObjects = Bool(*cfg.FlattenObjects)
	}
	if cfg.MaxDepth != nil {
		opts.MaxDepth = Int(*cfg.MaxDepth)
	}

	return opts
}
