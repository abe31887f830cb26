// Package cli constructs the manifest-audit command-line interface, wiring the
// Cobra command hierarchy, the Viper configuration loader with its embedded
// defaults, and zap logging to standard error.
package cli
