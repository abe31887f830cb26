// Package pathutils normalizes the paths exchanged between the manifest and the filesystem.
package pathutils

import (
	"strings"
)

const (
	forwardSlashConstant     = "/"
	backslashConstant        = "\\"
	currentDirectoryConstant = "."
)

// NormalizeSeparators converts every separator to a forward slash and drops empty and `.` segments so
// that `a\b.h`, `a//b.h`, and `./a/b.h` compare equal. `..` segments are kept as written: `src/x/../a.h`
// names a different manifest entry than `src/a.h`.
func NormalizeSeparators(candidatePath string) string {
	trimmedPath := strings.TrimSpace(candidatePath)
	if len(trimmedPath) == 0 {
		return ""
	}

	slashed := strings.ReplaceAll(trimmedPath, backslashConstant, forwardSlashConstant)
	segments := strings.Split(slashed, forwardSlashConstant)
	keptSegments := make([]string, 0, len(segments))
	for _, segment := range segments {
		if len(segment) == 0 || segment == currentDirectoryConstant {
			continue
		}
		keptSegments = append(keptSegments, segment)
	}

	normalized := strings.Join(keptSegments, forwardSlashConstant)
	if strings.HasPrefix(slashed, forwardSlashConstant) {
		return forwardSlashConstant + normalized
	}
	return normalized
}
