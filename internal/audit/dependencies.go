package audit

import (
	"context"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/temirov/manifest-audit/internal/discovery"
	"github.com/temirov/manifest-audit/internal/manifest"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the persisted audit configuration.
type ConfigurationProvider func() CommandConfiguration

// ManifestParser extracts declared entries from a manifest file.
type ManifestParser interface {
	ParseFile(manifestPath string) (manifest.Document, error)
}

// SourceDiscoverer finds source files beneath the search roots.
type SourceDiscoverer interface {
	DiscoverSources(executionContext context.Context, roots []string, extensions []string) ([]discovery.ExistingFile, error)
}

// FileSystem provides the filesystem lookups needed to detect stale declarations.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
}

// OSFileSystem implements FileSystem using the operating system primitives.
type OSFileSystem struct{}

// Stat retrieves file metadata.
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}
