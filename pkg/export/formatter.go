package export

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"mercator-hq/callisto/pkg/dataset"
)

// ValueFormatter renders individual record values as delimited-text
// cells according to the merged export options.
type ValueFormatter struct {
	// NullValue substitutes null and missing values.
	NullValue string

	// DateFormat selects timestamp rendering; "iso" produces ISO-8601.
	DateFormat string

	// Delimiter is the field separator rendered values must not leak
	// into unquoted.
	Delimiter string

	// QuoteStrings wraps values containing the delimiter, a quote, or a
	// line break in quotes.
	QuoteStrings bool

	// EscapeQuotes doubles embedded quote characters.
	EscapeQuotes bool
}

// NewValueFormatter builds a formatter from merged options.
func NewValueFormatter(opts Options) *ValueFormatter {
	return &ValueFormatter{
		NullValue:    stringOpt(opts.NullValue, DefaultNullValue),
		DateFormat:   opts.DateFormat,
		Delimiter:    opts.delimiter(),
		QuoteStrings: boolOpt(opts.QuoteStrings, true),
		EscapeQuotes: boolOpt(opts.EscapeQuotes, true),
	}
}

// Format renders a single value as cell text. Null values become the
// configured substitute, sequences are joined with "; " and quoted,
// nested mappings are JSON-encoded and quoted, and scalars are
// stringified with quote escaping and conditional wrapping applied.
func (f *ValueFormatter) Format(value any) string {
	if value == nil {
		return f.NullValue
	}
	if t, ok := value.(time.Time); ok {
		return f.quoteScalar(f.formatTime(t))
	}
	if dataset.IsSequence(value) {
		return f.formatSequence(value)
	}
	if rec, ok := dataset.AsRecord(value); ok {
		return f.formatMapping(rec)
	}
	return f.quoteScalar(stringify(value))
}

// formatTime renders a timestamp. Zero times render as empty text.
func (f *ValueFormatter) formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if f.DateFormat == "iso" {
		return t.UTC().Format(time.RFC3339)
	}
	return t.String()
}

// formatSequence joins sequence elements with "; " and wraps the result
// in quotes unconditionally.
func (f *ValueFormatter) formatSequence(value any) string {
	elems := dataset.Elements(value)
	parts := make([]string, 0, len(elems))
	for _, elem := range elems {
		parts = append(parts, f.elementString(elem))
	}

	joined := strings.Join(parts, "; ")
	if f.EscapeQuotes {
		joined = strings.ReplaceAll(joined, `"`, `""`)
	}
	return `"` + joined + `"`
}

// elementString renders one sequence element without quoting; escaping
// is applied to the joined result.
func (f *ValueFormatter) elementString(elem any) string {
	if elem == nil {
		return f.NullValue
	}
	if t, ok := elem.(time.Time); ok {
		return f.formatTime(t)
	}
	if dataset.IsSequence(elem) {
		return jsonText(elem)
	}
	if rec, ok := dataset.AsRecord(elem); ok {
		return jsonText(rec)
	}
	return stringify(elem)
}

// formatMapping JSON-encodes a nested mapping and wraps it in quotes
// unconditionally.
func (f *ValueFormatter) formatMapping(rec dataset.Record) string {
	text := jsonText(rec)
	if f.EscapeQuotes {
		text = strings.ReplaceAll(text, `"`, `""`)
	}
	return `"` + text + `"`
}

// quoteScalar applies quote escaping and conditional wrapping to an
// already-stringified scalar.
func (f *ValueFormatter) quoteScalar(s string) string {
	if f.EscapeQuotes {
		s = strings.ReplaceAll(s, `"`, `""`)
	}
	if f.QuoteStrings && f.needsQuoting(s) {
		return `"` + s + `"`
	}
	return s
}

// needsQuoting reports whether a rendered value must be wrapped to keep
// the row parseable.
func (f *ValueFormatter) needsQuoting(s string) bool {
	if f.Delimiter != "" && strings.Contains(s, f.Delimiter) {
		return true
	}
	return strings.Contains(s, `"`) || strings.ContainsAny(s, "\n\r")
}

// stringify renders a scalar value as text.
func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case json.Number:
		return v.String()
	case fmt.Stringer:
		return v.String()
	case int8, int16, int32, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// jsonText marshals v to JSON, falling back to the default Go rendering
// when marshaling fails.
func jsonText(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
