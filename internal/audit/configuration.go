package audit

import (
	"strings"

	"github.com/temirov/manifest-audit/internal/discovery"
	"github.com/temirov/manifest-audit/internal/manifest"
	pathutils "github.com/temirov/manifest-audit/internal/utils/path"
)

const (
	manifestPathConfigurationKeyConstant  = "manifest_path"
	searchRootsConfigurationKeyConstant   = "search_roots"
	extensionsConfigurationKeyConstant    = "extensions"
	blockStartConfigurationKeyConstant    = "block_start"
	blockEndConfigurationKeyConstant      = "block_end"
	entryPrefixConfigurationKeyConstant   = "entry_prefix"
	reportStaleConfigurationKeyConstant   = "report_stale"
	failOnMissingConfigurationKeyConstant = "fail_on_missing"
	outputFormatConfigurationKeyConstant  = "output_format"
	configurationKeySeparatorConstant     = "."
)

// CommandConfiguration captures persistent settings for the audit command.
type CommandConfiguration struct {
	ManifestPath  string   `mapstructure:"manifest_path"`
	SearchRoots   []string `mapstructure:"search_roots"`
	Extensions    []string `mapstructure:"extensions"`
	BlockStart    string   `mapstructure:"block_start"`
	BlockEnd      string   `mapstructure:"block_end"`
	EntryPrefix   string   `mapstructure:"entry_prefix"`
	ReportStale   bool     `mapstructure:"report_stale"`
	FailOnMissing bool     `mapstructure:"fail_on_missing"`
	OutputFormat  string   `mapstructure:"output_format"`
}

// DefaultCommandConfiguration returns baseline configuration values for the audit command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		ManifestPath:  manifest.DefaultManifestPath,
		SearchRoots:   append([]string{}, discovery.DefaultSearchRoots...),
		Extensions:    append([]string{}, discovery.DefaultExtensions...),
		BlockStart:    manifest.DefaultBlockStartMarker,
		BlockEnd:      manifest.DefaultBlockEndMarker,
		EntryPrefix:   manifest.DefaultEntryPrefix,
		ReportStale:   false,
		FailOnMissing: false,
		OutputFormat:  string(OutputFormatPlain),
	}
}

// DefaultConfigurationValues returns the viper defaults for the audit configuration nested under prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	keyPrefix := ""
	if trimmedPrefix := strings.TrimSpace(prefix); len(trimmedPrefix) > 0 {
		keyPrefix = trimmedPrefix + configurationKeySeparatorConstant
	}

	return map[string]any{
		keyPrefix + manifestPathConfigurationKeyConstant:  defaults.ManifestPath,
		keyPrefix + searchRootsConfigurationKeyConstant:   defaults.SearchRoots,
		keyPrefix + extensionsConfigurationKeyConstant:    defaults.Extensions,
		keyPrefix + blockStartConfigurationKeyConstant:    defaults.BlockStart,
		keyPrefix + blockEndConfigurationKeyConstant:      defaults.BlockEnd,
		keyPrefix + entryPrefixConfigurationKeyConstant:   defaults.EntryPrefix,
		keyPrefix + reportStaleConfigurationKeyConstant:   defaults.ReportStale,
		keyPrefix + failOnMissingConfigurationKeyConstant: defaults.FailOnMissing,
		keyPrefix + outputFormatConfigurationKeyConstant:  defaults.OutputFormat,
	}
}

// sanitize trims whitespace, expands home shortcuts, and applies defaults to unset values.
func (configuration CommandConfiguration) sanitize(pathSanitizer *pathutils.ConfiguredPathSanitizer) CommandConfiguration {
	defaults := DefaultCommandConfiguration()
	sanitized := configuration

	manifestPaths := pathSanitizer.Sanitize([]string{configuration.ManifestPath})
	if len(manifestPaths) == 0 {
		sanitized.ManifestPath = defaults.ManifestPath
	} else {
		sanitized.ManifestPath = manifestPaths[0]
	}

	sanitized.SearchRoots = pathSanitizer.Sanitize(configuration.SearchRoots)
	if len(sanitized.SearchRoots) == 0 {
		sanitized.SearchRoots = defaults.SearchRoots
	}

	sanitized.Extensions = pathutils.SanitizeExtensions(configuration.Extensions)
	if len(sanitized.Extensions) == 0 {
		sanitized.Extensions = defaults.Extensions
	}

	sanitized.OutputFormat = strings.ToLower(strings.TrimSpace(configuration.OutputFormat))
	if len(sanitized.OutputFormat) == 0 {
		sanitized.OutputFormat = defaults.OutputFormat
	}

	return sanitized
}

func (configuration CommandConfiguration) markers() manifest.Markers {
	return manifest.Markers{
		BlockStart:  configuration.BlockStart,
		BlockEnd:    configuration.BlockEnd,
		EntryPrefix: configuration.EntryPrefix,
	}
}
