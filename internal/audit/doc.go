// Package audit reconciles the source list declared in a build manifest with
// the source files present on disk.
//
// It exposes CommandBuilder for wiring the audit Cobra command, Service for
// driving the workflow programmatically, ComputeMissingEntries and
// ComputeStaleDeclarations for the set reconciliation itself, and report
// renderers for the plain, table, and YAML output formats.
package audit
