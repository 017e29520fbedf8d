// Package config loads and validates the kartoteka configuration file.
//
// Configuration is TOML with repository defaults applied first, then the
// file contents, then normalization (path expansion, env fallbacks) and
// validation. A missing config file is not an error; defaults target the
// ./data layout populated by the manual download step.
package config
