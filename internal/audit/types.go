package audit

import (
	"github.com/temirov/manifest-audit/internal/manifest"
)

// OutputFormat enumerates supported report encodings.
type OutputFormat string

// Report formats supported by the audit command.
const (
	OutputFormatPlain OutputFormat = "plain"
	OutputFormatTable OutputFormat = "table"
	OutputFormatYAML  OutputFormat = "yaml"
)

// SupportedOutputFormats lists every format accepted by the --format flag.
var SupportedOutputFormats = []string{string(OutputFormatPlain), string(OutputFormatTable), string(OutputFormatYAML)}

// FindingKind distinguishes the two directions of the reconciliation.
type FindingKind string

// Finding kinds reported by the audit.
const (
	// FindingKindMissingEntry marks a file on disk that the manifest does not declare.
	FindingKindMissingEntry FindingKind = "missing from manifest"
	// FindingKindStaleDeclaration marks a declared path with no file on disk.
	FindingKindStaleDeclaration FindingKind = "missing from disk"
)

// CommandOptions captures the resolved parameters for one audit run.
type CommandOptions struct {
	WorkingDirectory string
	ManifestPath     string
	SearchRoots      []string
	Extensions       []string
	Markers          manifest.Markers
	ReportStale      bool
	FailOnMissing    bool
	OutputFormat     OutputFormat
}

// Report is the outcome of one audit run.
type Report struct {
	ManifestPath      string
	ManifestDigest    string
	MissingEntries    []string
	StaleDeclarations []string
}

// HasFindings reports whether the run found anything to print.
func (report Report) HasFindings() bool {
	return len(report.MissingEntries) > 0 || len(report.StaleDeclarations) > 0
}
