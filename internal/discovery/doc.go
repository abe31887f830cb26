// Package discovery enumerates source files present on disk beneath the audit search roots.
package discovery
