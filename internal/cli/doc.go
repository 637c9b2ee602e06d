// Package cli defines the Cobra command tree for the subsample CLI. Each file
// in this package registers one top-level command (run, verify, config,
// version) with the root command. Command implementations delegate to
// internal packages for the actual work and only handle flag parsing,
// logging setup, and output formatting.
package cli
