// Package main hosts the kartoteka CLI entrypoint and command graph.
//
// The Cobra-based command tree surfaces the internal packages to the terminal:
// scanning and validating the data root, browsing the dataset catalog,
// previewing loaded tables, running the review-cleaning pipeline, and
// configuration scaffolding. Configuration resolution and logger setup happen
// once per invocation in commandContext so subcommands stay declarative.
package main
