package audit

import (
	"context"
	"errors"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/manifest-audit/internal/utils"
)

const (
	manifestParsedMessageConstant    = "manifest parsed"
	manifestBlockMissingMessage      = "manifest source block not found; every discovered file will be reported"
	manifestBlockUnterminatedMessage = "manifest source block not terminated; entries collected to end of file"
	sourcesDiscoveredMessageConstant = "source files discovered"
	auditCompletedMessageConstant    = "manifest audit completed"
	logFieldManifestPathConstant     = "manifest_path"
	logFieldManifestDigestConstant   = "manifest_digest"
	logFieldDeclaredCountConstant    = "declared_entry_count"
	logFieldDeclaredPathsConstant    = "declared_paths"
	logFieldDiscoveredCountConstant  = "discovered_file_count"
	logFieldSearchRootsConstant      = "search_roots"
	logFieldExtensionsConstant       = "extensions"
	logFieldMissingCountConstant     = "missing_entry_count"
	logFieldStaleCountConstant       = "stale_declaration_count"
	logFieldOutputFormatConstant     = "output_format"
	missingDependencyMessageConstant = "audit service dependencies not configured"
)

var errServiceNotConfigured = errors.New(missingDependencyMessageConstant)

// Service coordinates manifest parsing, source discovery, reconciliation, and reporting.
type Service struct {
	parser       ManifestParser
	discoverer   SourceDiscoverer
	fileSystem   FileSystem
	logger       *zap.Logger
	outputWriter io.Writer
}

// NewService constructs a Service using the provided dependencies.
func NewService(parser ManifestParser, discoverer SourceDiscoverer, fileSystem FileSystem, logger *zap.Logger, outputWriter io.Writer) *Service {
	if fileSystem == nil {
		fileSystem = OSFileSystem{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if outputWriter == nil {
		outputWriter = io.Discard
	}
	return &Service{
		parser:       parser,
		discoverer:   discoverer,
		fileSystem:   fileSystem,
		logger:       logger,
		outputWriter: outputWriter,
	}
}

// Run audits the manifest and writes the report. Output is written only after the whole audit
// succeeds. When options.FailOnMissing is set and findings exist, the report is still written and a
// MissingEntriesError is returned.
func (service *Service) Run(executionContext context.Context, options CommandOptions) error {
	renderer, rendererError := NewReportRenderer(options.OutputFormat)
	if rendererError != nil {
		return rendererError
	}

	report, auditError := service.Audit(executionContext, options)
	if auditError != nil {
		return auditError
	}

	stagedWriter := utils.NewStagedWriter(service.outputWriter)
	if renderError := renderer.Render(stagedWriter, report); renderError != nil {
		stagedWriter.Discard()
		return renderError
	}
	if commitError := stagedWriter.Commit(); commitError != nil {
		return commitError
	}

	if options.FailOnMissing && report.HasFindings() {
		return MissingEntriesError{MissingCount: len(report.MissingEntries), StaleCount: len(report.StaleDeclarations)}
	}
	return nil
}

// Audit computes the report without writing it.
func (service *Service) Audit(executionContext context.Context, options CommandOptions) (Report, error) {
	if service.parser == nil || service.discoverer == nil {
		return Report{}, errServiceNotConfigured
	}

	manifestPath := resolvePath(options.WorkingDirectory, filepath.ToSlash(options.ManifestPath))
	document, parseError := service.parser.ParseFile(manifestPath)
	if parseError != nil {
		return Report{}, parseError
	}

	service.logger.Debug(
		manifestParsedMessageConstant,
		zap.String(logFieldManifestPathConstant, manifestPath),
		zap.Int(logFieldDeclaredCountConstant, len(document.Entries)),
		zap.Strings(logFieldDeclaredPathsConstant, document.Paths()),
		zap.String(logFieldManifestDigestConstant, document.Digest),
	)
	switch {
	case !document.BlockFound:
		service.logger.Warn(manifestBlockMissingMessage, zap.String(logFieldManifestPathConstant, manifestPath))
	case !document.BlockClosed:
		service.logger.Warn(manifestBlockUnterminatedMessage, zap.String(logFieldManifestPathConstant, manifestPath))
	}

	existingFiles, discoveryError := service.discoverer.DiscoverSources(executionContext, options.SearchRoots, options.Extensions)
	if discoveryError != nil {
		return Report{}, discoveryError
	}

	service.logger.Debug(
		sourcesDiscoveredMessageConstant,
		zap.Strings(logFieldSearchRootsConstant, options.SearchRoots),
		zap.Strings(logFieldExtensionsConstant, options.Extensions),
		zap.Int(logFieldDiscoveredCountConstant, len(existingFiles)),
	)

	report := Report{
		ManifestPath:   options.ManifestPath,
		ManifestDigest: document.Digest,
		MissingEntries: ComputeMissingEntries(document.Entries, existingFiles),
	}

	if options.ReportStale {
		staleDeclarations, staleError := ComputeStaleDeclarations(document.Entries, existingFiles, service.fileSystem, options.WorkingDirectory)
		if staleError != nil {
			return Report{}, staleError
		}
		report.StaleDeclarations = staleDeclarations
	}

	service.logger.Info(
		auditCompletedMessageConstant,
		zap.Int(logFieldMissingCountConstant, len(report.MissingEntries)),
		zap.Int(logFieldStaleCountConstant, len(report.StaleDeclarations)),
		zap.String(logFieldOutputFormatConstant, string(options.OutputFormat)),
	)

	return report, nil
}
