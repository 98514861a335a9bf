// Package model defines the domain types and value objects for the
// rsnc CLI.
//
// This package contains pure data structures with no external dependencies.
// RawOptions, ResolvedConfig and Mode are created fresh for each process
// invocation and never mutated after resolution.
//
// The package also defines exit codes (ExitCode), the configuration error
// taxonomy (ConfigError) and a custom error type (CLIError) that carries
// exit codes for proper OS process exit handling.
package model
