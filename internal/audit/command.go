package audit

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/manifest-audit/internal/discovery"
	"github.com/temirov/manifest-audit/internal/manifest"
	"github.com/temirov/manifest-audit/internal/utils"
	"github.com/temirov/manifest-audit/internal/utils/flags"
	pathutils "github.com/temirov/manifest-audit/internal/utils/path"
)

const (
	commandNameConstant               = "audit"
	commandShortDescription           = "Report source files missing from the build manifest"
	commandLongDescription            = "audit compares the MAIN_SOURCES block of the build manifest with the C and C++ sources under the search roots and prints every file on disk that the manifest does not declare."
	flagManifestName                  = "manifest"
	flagManifestDescription           = "Path to the build manifest"
	flagRootName                      = "root"
	flagRootDescription               = "Directory to search for source files (repeatable)"
	flagExtensionName                 = "extension"
	flagExtensionDescription          = "Source file extension to search for, without the dot (repeatable)"
	flagReportStaleName               = "report-stale"
	flagReportStaleDescription        = "Also report declared files that are missing from disk"
	flagFailOnMissingName             = "fail-on-missing"
	flagFailOnMissingDescription      = "Exit with a non-zero status when the audit has findings"
	flagFormatName                    = "format"
	flagFormatDescription             = "Report format"
	skippedRootMessageConstant        = "search root not found; skipping"
	logFieldRootConstant              = "root"
	logFieldWorkingDirectoryConstant  = "working_directory"
	logFieldConfigurationFileConstant = "config_file"
	commandStartedMessageConstant     = "manifest audit started"
)

// CommandBuilder assembles the audit cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	WorkingDirectory      string
	Parser                ManifestParser
	Discoverer            SourceDiscoverer
	FileSystem            FileSystem
	PathSanitizer         *pathutils.ConfiguredPathSanitizer
}

type commandFlagValues struct {
	manifestPath  string
	searchRoots   []string
	extensions    []string
	reportStale   bool
	failOnMissing bool
	outputFormat  string
}

// Build constructs the cobra command for the manifest audit.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	flagValues := &commandFlagValues{}

	command := &cobra.Command{
		Use:   commandNameConstant,
		Short: commandShortDescription,
		Long:  commandLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.run(command, flagValues)
		},
	}

	defaults := DefaultCommandConfiguration()
	command.Flags().StringVar(&flagValues.manifestPath, flagManifestName, defaults.ManifestPath, flagManifestDescription)
	command.Flags().StringSliceVar(&flagValues.searchRoots, flagRootName, nil, flagRootDescription)
	command.Flags().StringSliceVar(&flagValues.extensions, flagExtensionName, nil, flagExtensionDescription)
	flags.AddToggleFlag(command.Flags(), &flagValues.reportStale, flagReportStaleName, defaults.ReportStale, flagReportStaleDescription)
	flags.AddToggleFlag(command.Flags(), &flagValues.failOnMissing, flagFailOnMissingName, defaults.FailOnMissing, flagFailOnMissingDescription)
	flags.AddChoiceFlag(command.Flags(), &flagValues.outputFormat, flagFormatName, defaults.OutputFormat, SupportedOutputFormats, flagFormatDescription)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, flagValues *commandFlagValues) error {
	executionContext := command.Context()
	if executionContext == nil {
		executionContext = context.Background()
	}

	logger := builder.resolveLogger()
	options, optionsError := builder.parseOptions(command, executionContext, flagValues)
	if optionsError != nil {
		return optionsError
	}

	configurationFilePath, _ := utils.NewCommandContextAccessor().ConfigurationFilePath(executionContext)
	logger.Debug(
		commandStartedMessageConstant,
		zap.String(logFieldManifestPathConstant, options.ManifestPath),
		zap.String(logFieldWorkingDirectoryConstant, options.WorkingDirectory),
		zap.String(logFieldConfigurationFileConstant, configurationFilePath),
	)

	service := NewService(
		builder.resolveParser(options.Markers),
		builder.resolveDiscoverer(options.WorkingDirectory, logger),
		builder.FileSystem,
		logger,
		command.OutOrStdout(),
	)
	return service.Run(executionContext, options)
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, executionContext context.Context, flagValues *commandFlagValues) (CommandOptions, error) {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}

	commandFlags := command.Flags()
	if commandFlags.Changed(flagManifestName) {
		configuration.ManifestPath = flagValues.manifestPath
	}
	if commandFlags.Changed(flagRootName) {
		configuration.SearchRoots = flagValues.searchRoots
	}
	if commandFlags.Changed(flagExtensionName) {
		configuration.Extensions = flagValues.extensions
	}
	if commandFlags.Changed(flagReportStaleName) {
		configuration.ReportStale = flagValues.reportStale
	}
	if commandFlags.Changed(flagFailOnMissingName) {
		configuration.FailOnMissing = flagValues.failOnMissing
	}
	if commandFlags.Changed(flagFormatName) {
		configuration.OutputFormat = flagValues.outputFormat
	}

	sanitized := configuration.sanitize(builder.resolvePathSanitizer())

	workingDirectory, workingDirectoryError := builder.resolveWorkingDirectory(executionContext)
	if workingDirectoryError != nil {
		return CommandOptions{}, workingDirectoryError
	}

	return CommandOptions{
		WorkingDirectory: workingDirectory,
		ManifestPath:     sanitized.ManifestPath,
		SearchRoots:      sanitized.SearchRoots,
		Extensions:       sanitized.Extensions,
		Markers:          sanitized.markers(),
		ReportStale:      sanitized.ReportStale,
		FailOnMissing:    sanitized.FailOnMissing,
		OutputFormat:     OutputFormat(sanitized.OutputFormat),
	}, nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveWorkingDirectory(executionContext context.Context) (string, error) {
	if len(builder.WorkingDirectory) > 0 {
		return builder.WorkingDirectory, nil
	}
	if workingDirectory, available := utils.NewCommandContextAccessor().WorkingDirectory(executionContext); available {
		return workingDirectory, nil
	}
	return os.Getwd()
}

func (builder *CommandBuilder) resolveParser(markers manifest.Markers) ManifestParser {
	if builder.Parser != nil {
		return builder.Parser
	}
	return manifest.NewParser(markers)
}

func (builder *CommandBuilder) resolveDiscoverer(workingDirectory string, logger *zap.Logger) SourceDiscoverer {
	if builder.Discoverer != nil {
		return builder.Discoverer
	}
	return discovery.NewFilesystemSourceDiscoverer(workingDirectory, func(root string) {
		logger.Warn(skippedRootMessageConstant, zap.String(logFieldRootConstant, root))
	})
}

func (builder *CommandBuilder) resolvePathSanitizer() *pathutils.ConfiguredPathSanitizer {
	if builder.PathSanitizer != nil {
		return builder.PathSanitizer
	}
	return pathutils.NewConfiguredPathSanitizer()
}
