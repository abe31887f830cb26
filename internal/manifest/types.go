package manifest

import (
	pathutils "github.com/temirov/manifest-audit/internal/utils/path"
)

const (
	// DefaultBlockStartMarker opens the declared source list.
	DefaultBlockStartMarker = "set(MAIN_SOURCES"
	// DefaultBlockEndMarker closes the declared source list.
	DefaultBlockEndMarker = ")"
	// DefaultEntryPrefix precedes every declared path inside the block.
	DefaultEntryPrefix = "${CMAKE_CURRENT_SOURCE_DIR}/"
	// DefaultManifestPath is the build file audited when none is configured.
	DefaultManifestPath = "./CMakeLists.txt"
)

// DeclaredEntry is one source path listed inside the manifest block.
type DeclaredEntry struct {
	Path       string
	LineNumber int
}

// NewDeclaredEntry builds a DeclaredEntry with its path normalized to forward slashes.
func NewDeclaredEntry(rawPath string, lineNumber int) DeclaredEntry {
	return DeclaredEntry{Path: pathutils.NormalizeSeparators(rawPath), LineNumber: lineNumber}
}

// Markers configures the strings the parser searches for.
type Markers struct {
	BlockStart  string
	BlockEnd    string
	EntryPrefix string
}

// DefaultMarkers returns the CMake MAIN_SOURCES convention.
func DefaultMarkers() Markers {
	return Markers{
		BlockStart:  DefaultBlockStartMarker,
		BlockEnd:    DefaultBlockEndMarker,
		EntryPrefix: DefaultEntryPrefix,
	}
}

// Document is the result of parsing a manifest.
type Document struct {
	Entries     []DeclaredEntry
	BlockFound  bool
	BlockClosed bool
	Digest      string
}

// Paths returns the normalized paths of every declared entry in manifest order.
func (document Document) Paths() []string {
	paths := make([]string, 0, len(document.Entries))
	for _, entry := range document.Entries {
		paths = append(paths, entry.Path)
	}
	return paths
}
