package audit

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

const (
	// MissingEntriesBanner precedes the files present on disk but absent from the manifest.
	MissingEntriesBanner = "==== MISSING ENTRIES ============================================"

	// MissingFilesBanner precedes the declared paths absent from disk.
	MissingFilesBanner = "==== MISSING FILES =============================================="

	reportLineTemplateConstant        = "%s\n"
	unsupportedFormatTemplateConstant = "unsupported report format %q (supported: %s)"
	tableStatusHeaderConstant         = "STATUS"
	tablePathHeaderConstant           = "PATH"
	supportedFormatsSeparatorConstant = ", "
)

// ReportRenderer writes a report in one output format. Renderers write nothing for a report without
// findings.
type ReportRenderer interface {
	Render(writer io.Writer, report Report) error
}

// NewReportRenderer returns the renderer for the requested format.
func NewReportRenderer(format OutputFormat) (ReportRenderer, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(string(format)))) {
	case OutputFormatPlain, "":
		return plainReportRenderer{}, nil
	case OutputFormatTable:
		return tableReportRenderer{}, nil
	case OutputFormatYAML:
		return yamlReportRenderer{}, nil
	default:
		return nil, fmt.Errorf(unsupportedFormatTemplateConstant, format, strings.Join(SupportedOutputFormats, supportedFormatsSeparatorConstant))
	}
}

type plainReportRenderer struct{}

func (plainReportRenderer) Render(writer io.Writer, report Report) error {
	if writeError := writeSection(writer, MissingEntriesBanner, report.MissingEntries); writeError != nil {
		return writeError
	}
	return writeSection(writer, MissingFilesBanner, report.StaleDeclarations)
}

func writeSection(writer io.Writer, banner string, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	if _, writeError := fmt.Fprintf(writer, reportLineTemplateConstant, banner); writeError != nil {
		return writeError
	}
	for _, reportedPath := range paths {
		if _, writeError := fmt.Fprintf(writer, reportLineTemplateConstant, reportedPath); writeError != nil {
			return writeError
		}
	}
	return nil
}

type tableReportRenderer struct{}

func (tableReportRenderer) Render(writer io.Writer, report Report) error {
	if !report.HasFindings() {
		return nil
	}

	tableWriter := table.NewWriter()
	tableWriter.SetStyle(table.StyleLight)
	tableWriter.AppendHeader(table.Row{tableStatusHeaderConstant, tablePathHeaderConstant})
	for _, missingEntry := range report.MissingEntries {
		tableWriter.AppendRow(table.Row{string(FindingKindMissingEntry), missingEntry})
	}
	for _, staleDeclaration := range report.StaleDeclarations {
		tableWriter.AppendRow(table.Row{string(FindingKindStaleDeclaration), staleDeclaration})
	}

	_, writeError := fmt.Fprintf(writer, reportLineTemplateConstant, tableWriter.Render())
	return writeError
}

type yamlReportDocument struct {
	Manifest          string   `yaml:"manifest"`
	ManifestDigest    string   `yaml:"manifest_digest,omitempty"`
	MissingEntries    []string `yaml:"missing_entries"`
	StaleDeclarations []string `yaml:"stale_declarations,omitempty"`
}

type yamlReportRenderer struct{}

func (yamlReportRenderer) Render(writer io.Writer, report Report) error {
	if !report.HasFindings() {
		return nil
	}

	document := yamlReportDocument{
		Manifest:          report.ManifestPath,
		ManifestDigest:    report.ManifestDigest,
		MissingEntries:    report.MissingEntries,
		StaleDeclarations: report.StaleDeclarations,
	}
	if document.MissingEntries == nil {
		document.MissingEntries = []string{}
	}

	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if encodeError := encoder.Encode(document); encodeError != nil {
		return encodeError
	}
	return encoder.Close()
}
