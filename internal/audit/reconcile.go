package audit

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/temirov/manifest-audit/internal/discovery"
	"github.com/temirov/manifest-audit/internal/manifest"
)

// ComputeMissingEntries returns every existing file whose path is not declared in the manifest, sorted
// ascending and without duplicates. Declared entries without a backing file are not reported here.
func ComputeMissingEntries(declaredEntries []manifest.DeclaredEntry, existingFiles []discovery.ExistingFile) []string {
	declaredPaths := make(map[string]struct{}, len(declaredEntries))
	for _, declaredEntry := range declaredEntries {
		declaredPaths[declaredEntry.Path] = struct{}{}
	}

	reported := make(map[string]struct{})
	missingEntries := make([]string, 0)
	for _, existingFile := range existingFiles {
		if _, declared := declaredPaths[existingFile.Path]; declared {
			continue
		}
		if _, alreadyReported := reported[existingFile.Path]; alreadyReported {
			continue
		}
		reported[existingFile.Path] = struct{}{}
		missingEntries = append(missingEntries, existingFile.Path)
	}

	sort.Strings(missingEntries)
	return missingEntries
}

// ComputeStaleDeclarations returns every declared path that has no file on disk, sorted ascending and
// without duplicates. Declared paths matching a discovered file are never looked up; other paths are
// resolved against workingDirectory and checked with fileSystem.
func ComputeStaleDeclarations(declaredEntries []manifest.DeclaredEntry, existingFiles []discovery.ExistingFile, fileSystem FileSystem, workingDirectory string) ([]string, error) {
	existingPaths := make(map[string]struct{}, len(existingFiles))
	for _, existingFile := range existingFiles {
		existingPaths[existingFile.Path] = struct{}{}
	}

	checked := make(map[string]struct{}, len(declaredEntries))
	staleDeclarations := make([]string, 0)
	for _, declaredEntry := range declaredEntries {
		if _, exists := existingPaths[declaredEntry.Path]; exists {
			continue
		}
		if _, alreadyChecked := checked[declaredEntry.Path]; alreadyChecked {
			continue
		}
		checked[declaredEntry.Path] = struct{}{}

		_, statError := fileSystem.Stat(resolvePath(workingDirectory, declaredEntry.Path))
		if statError == nil {
			continue
		}
		if !errors.Is(statError, fs.ErrNotExist) {
			return nil, statError
		}
		staleDeclarations = append(staleDeclarations, declaredEntry.Path)
	}

	sort.Strings(staleDeclarations)
	return staleDeclarations, nil
}

func resolvePath(workingDirectory string, relativePath string) string {
	nativePath := filepath.FromSlash(relativePath)
	if filepath.IsAbs(nativePath) || len(workingDirectory) == 0 {
		return nativePath
	}
	return filepath.Join(workingDirectory, nativePath)
}
