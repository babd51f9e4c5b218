// Package export renders datasets into textual output formats.
//
// Each format is implemented as a Strategy driven through a fixed
// pipeline: Validate, Transform, Serialize, then optional persistence.
// Strategies are resolved by identifier through a Registry that
// pre-registers the built-in JSON, CSV, and YAML formats and accepts
// caller-defined ones.
//
// The Exporter facade merges options in three tiers (strategy defaults,
// then exporter-level defaults, then per-call options), synthesizes
// output paths from an output directory when no explicit path is given,
// and reports results either as in-memory content or as the path the
// content was written to.
package export
