package export

import (
	"testing"
)

// TestMergeOptions_Precedence tests that later layers win per field.
func TestMergeOptions_Precedence(t *testing.T) {
	strategyDefaults := Options{
		Delimiter: ",",
		Prettify:  Bool(false),
		MaxDepth:  Int(3),
	}
	exporterDefaults := Options{
		Prettify: Bool(true),
	}
	perCall := Options{
		Delimiter: "|",
	}

	merged := MergeOptions(strategyDefaults, exporterDefaults, perCall)

	if merged.Delimiter != "|" {
		t.Errorf("Expected delimiter '|', got '%s'", merged.Delimiter)
	}
	if !boolOpt(merged.Prettify, false) {
		t.Error("Expected exporter-level prettify to override strategy default")
	}
	if intOpt(merged.MaxDepth, 0) != 3 {
		t.Error("Expected strategy-level max depth to survive unset layers")
	}
}

// TestMergeOptions_ExplicitFalseOverrides tests that an explicit false
// in a later layer overrides an earlier true. This is why the option
// fields are pointers.
func TestMergeOptions_ExplicitFalseOverrides(t *testing.T) {
	lower := Options{IncludeHeaders: Bool(true), QuoteStrings: Bool(true)}
	upper := Options{IncludeHeaders: Bool(false)}

	merged := MergeOptions(lower, upper)

	if boolOpt(merged.IncludeHeaders, true) {
		t.Error("Expected explicit false to override earlier true")
	}
	if !boolOpt(merged.QuoteStrings, false) {
		t.Error("Expected untouched field to keep the earlier value")
	}
}

// TestMergeOptions_UnsetFieldsFallThrough tests that an empty layer
// changes nothing.
func TestMergeOptions_UnsetFieldsFallThrough(t *testing.T) {
	base := Options{
		OutputDir:  "/tmp/exports",
		NullValue:  String("N/A"),
		DateFormat: "iso",
	}

	merged := MergeOptions(base, Options{})

	if merged.OutputDir != "/tmp/exports" {
		t.Errorf("Expected output dir preserved, got '%s'", merged.OutputDir)
	}
	if stringOpt(merged.NullValue, "") != "N/A" {
		t.Error("Expected null value preserved")
	}
	if merged.DateFormat != "iso" {
		t.Error("Expected date format preserved")
	}
}

// TestMergeOptions_Immutability tests that the merged set shares no
// pointers with its input layers.
func TestMergeOptions_Immutability(t *testing.T) {
	layer := Options{Prettify: Bool(true), MaxDepth: Int(5), NullValue: String("-")}

	merged := MergeOptions(layer)

	// Mutating the input layer must not change the merged set.
	*layer.Prettify = false
	*layer.MaxDepth = 99
	*layer.NullValue = "mutated"

	if !boolOpt(merged.Prettify, false) {
		t.Error("Merged prettify changed when input layer was mutated")
	}
	if intOpt(merged.MaxDepth, 0) != 5 {
		t.Error("Merged max depth changed when input layer was mutated")
	}
	if stringOpt(merged.NullValue, "") != "-" {
		t.Error("Merged null value changed when input layer was mutated")
	}

	// Mutating the merged set must not change the input layer.
	*merged.Prettify = true
	if *layer.Prettify {
		t.Error("Input layer changed when merged set was mutated")
	}
}

// TestMergeOptions_Empty tests that merging nothing yields the zero set.
func TestMergeOptions_Empty(t *testing.T) {
	merged := MergeOptions()

	if merged.OutputPath != "" || merged.Delimiter != "" {
		t.Error("Expected zero string fields")
	}
	if merged.Prettify != nil || merged.IncludeHeaders != nil || merged.MaxDepth != nil || merged.NullValue != nil {
		t.Error("Expected all pointer fields unset")
	}
}

// TestOptionResolvers tests the optional-field resolution helpers.
func TestOptionResolvers(t *testing.T) {
	if boolOpt(nil, true) != true {
		t.Error("Expected nil bool to resolve to the default")
	}
	if boolOpt(Bool(false), true) != false {
		t.Error("Expected explicit false to win over the default")
	}
	if intOpt(nil, 7) != 7 {
		t.Error("Expected nil int to resolve to the default")
	}
	if intOpt(Int(0), 7) != 0 {
		t.Error("Expected explicit zero to win over the default")
	}
	if stringOpt(nil, "x") != "x" {
		t.Error("Expected nil string to resolve to the default")
	}
	if stringOpt(String(""), "x") != "" {
		t.Error("Expected explicit empty string to win over the default")
	}
}

// TestOptions_EffectiveDefaults tests the delimiter and encoding
// accessors.
func TestOptions_EffectiveDefaults(t *testing.T) {
	var opts Options
	if opts.delimiter() != DefaultDelimiter {
		t.Errorf("Expected default delimiter, got '%s'", opts.delimiter())
	}
	if opts.encoding() != DefaultEncoding {
		t.Errorf("Expected default encoding, got '%s'", opts.encoding())
	}

	opts = Options{Delimiter: ";", Encoding: "utf8"}
	if opts.delimiter() != ";" {
		t.Errorf("Expected ';', got '%s'", opts.delimiter())
	}
	if opts.encoding() != "utf8" {
		t.Errorf("Expected 'utf8', got '%s'", opts.encoding())
	}
}
