// Package logging builds the slog loggers used across kartoteka.
//
// Two output formats are supported: a compact console format for interactive
// use and JSON for machine consumption. All components log through a shared
// set of standardized field names so that scan runs can be traced by category
// and run id.
package logging
