package export

// Default option values shared by the built-in strategies.
const (
	// DefaultDelimiter separates CSV fields.
	DefaultDelimiter = ","

	// DefaultMaxDepth bounds recursive flattening of nested mappings.
	DefaultMaxDepth = 3

	// DefaultEncoding is the only content encoding the file writer
	// accepts.
	DefaultEncoding = "utf-8"

	// DefaultNullValue substitutes null and missing values in CSV cells.
	DefaultNullValue = ""
)

// Options configures a single export call. Option sets are merged in
// three tiers of increasing precedence: strategy defaults, exporter
// defaults, per-call options. Pointer fields distinguish "unset" from an
// explicit zero value so a later tier can override in either direction.
type Options struct {
	// OutputPath is the explicit destination file. When set, content is
	// persisted instead of returned.
	OutputPath string `yaml:"outputPath,omitempty"`

	// OutputDir is the directory used to synthesize a destination path
	// when OutputPath is empty.
	OutputDir string `yaml:"outputDir,omitempty"`

	// Filename overrides the generated file name inside OutputDir. Used
	// verbatim; no extension is appended.
	Filename string `yaml:"filename,omitempty"`

	// CreateTimestamp inserts a filesystem-safe ISO-8601 token into the
	// synthesized file name.
	CreateTimestamp *bool `yaml:"createTimestamp,omitempty"`

	// Encoding names the content encoding. Only UTF-8 is supported.
	Encoding string `yaml:"encoding,omitempty"`

	// Prettify enables indented JSON output.
	Prettify *bool `yaml:"prettify,omitempty"`

	// IncludeMetadata wraps the dataset in an export envelope.
	IncludeMetadata *bool `yaml:"includeMetadata,omitempty"`

	// DateFormat selects timestamp rendering; "iso" produces ISO-8601,
	// anything else the default locale-free form.
	DateFormat string `yaml:"dateFormat,omitempty"`

	// Delimiter separates CSV fields.
	Delimiter string `yaml:"delimiter,omitempty"`

	// IncludeHeaders emits the CSV header row.
	IncludeHeaders *bool `yaml:"includeHeaders,omitempty"`

	// QuoteStrings wraps values containing the delimiter, a quote, or a
	// line break in quotes.
	QuoteStrings *bool `yaml:"quoteStrings,omitempty"`

	// EscapeQuotes doubles embedded quote characters.
	EscapeQuotes *bool `yaml:"escapeQuotes,omitempty"`

	// NullValue substitutes null and missing values.
	NullValue *string `yaml:"nullValue,omitempty"`

	// FlattenObjects collapses nested mappings into dotted key paths
	// before CSV serialization.
	FlattenObjects *bool `yaml:"flattenObjects,omitempty"`

	// MaxDepth bounds recursive flattening. Zero disables flattening.
	MaxDepth *int `yaml:"maxDepth,omitempty"`
}

// Bool returns a pointer to b for use in Options fields.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to i for use in Options fields.
func Int(i int) *int { return &i }

// String returns a pointer to s for use in Options fields.
func String(s string) *string { return &s }

// MergeOptions layers option sets in increasing precedence. A later
// layer overrides an earlier one only where a field is set. Pointer
// values are copied, so the merged result shares no memory with its
// inputs and is never observed to change mid-export.
func MergeOptions(layers ...Options) Options {
	var merged Options
	for _, layer := range layers {
		merged.apply(layer)
	}
	return merged
}

func (o *Options) apply(layer Options) {
	if layer.OutputPath != "" {
		o.OutputPath = layer.OutputPath
	}
	if layer.OutputDir != "" {
		o.OutputDir = layer.OutputDir
	}
	if layer.Filename != "" {
		o.Filename = layer.Filename
	}
	if layer.CreateTimestamp != nil {
		o.CreateTimestamp = Bool(*layer.CreateTimestamp)
	}
	if layer.Encoding != "" {
		o.Encoding = layer.Encoding
	}
	if layer.Prettify != nil {
		o.Prettify = Bool(*layer.Prettify)
	}
	if layer.IncludeMetadata != nil {
		o.IncludeMetadata = Bool(*layer.IncludeMetadata)
	}
	if layer.DateFormat != "" {
		o.DateFormat = layer.DateFormat
	}
	if layer.Delimiter != "" {
		o.Delimiter = layer.Delimiter
	}
	if layer.IncludeHeaders != nil {
		o.IncludeHeaders = Bool(*layer.IncludeHeaders)
	}
	if layer.QuoteStrings != nil {
		o.QuoteStrings = Bool(*layer.QuoteStrings)
	}
	if layer.EscapeQuotes != nil {
		o.EscapeQuotes = Bool(*layer.EscapeQuotes)
	}
	if layer.NullValue != nil {
		o.NullValue = String(*layer.NullValue)
	}
	if layer.FlattenObjects != nil {
		o.FlattenObjects = Bool(*layer.FlattenObjects)
	}
	if layer.MaxDepth != nil {
		o.MaxDepth = Int(*layer.MaxDepth)
	}
}

// boolOpt resolves an optional bool against its default.
func boolOpt(p *bool, def bool) bool {
	if p != nil {
		return *p
	}
	return def
}

// intOpt resolves an optional int against its default.
func intOpt(p *int, def int) int {
	if p != nil {
		return *p
	}
	return def
}

// stringOpt resolves an optional string against its default.
func stringOpt(p *string, def string) string {
	if p != nil {
		return *p
	}
	return def
}

// delimiter returns the effective CSV delimiter.
func (o Options) delimiter() string {
	if o.Delimiter != "" {
		return o.Delimiter
	}
	return DefaultDelimiter
}

// encoding returns the effective content encoding.
func (o Options) encoding() string {
	if o.Encoding != "" {
		return o.Encoding
	}
	return DefaultEncoding
}
