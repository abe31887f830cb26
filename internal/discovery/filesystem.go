package discovery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"

	pathutils "github.com/temirov/manifest-audit/internal/utils/path"
)

const (
	recursiveWildcardPrefixConstant  = "**/*."
	globSpecialCharactersConstant    = "*?[]{}\\"
	globErrorTemplateConstant        = "unable to search %s for *.%s files: %w"
	rootNotDirectoryTemplateConstant = "search root %s is not a directory"
	pathSeparatorConstant            = "/"
)

// DefaultSearchRoots lists the directories searched when none are configured.
var DefaultSearchRoots = []string{"./src/"}

// DefaultExtensions lists the C and C++ source and header extensions recognized by default.
var DefaultExtensions = []string{"h", "hpp", "ixx", "c", "cxx", "cpp"}

// ExistingFile is a source file found on disk.
type ExistingFile struct {
	// Path is relative to the working directory and uses forward slashes.
	Path string
	// Root is the configured search root that produced the file.
	Root string
}

// NewExistingFile builds an ExistingFile with its path normalized to forward slashes.
func NewExistingFile(rawPath string, root string) ExistingFile {
	return ExistingFile{Path: pathutils.NormalizeSeparators(rawPath), Root: root}
}

// SkippedRootObserver is notified when a configured search root does not exist.
type SkippedRootObserver func(root string)

// FilesystemSourceDiscoverer finds source files with doublestar globs.
type FilesystemSourceDiscoverer struct {
	workingDirectory    string
	skippedRootObserver SkippedRootObserver
}

// NewFilesystemSourceDiscoverer constructs a discoverer resolving relative roots against workingDirectory.
// An empty workingDirectory resolves roots against the process working directory.
func NewFilesystemSourceDiscoverer(workingDirectory string, skippedRootObserver SkippedRootObserver) *FilesystemSourceDiscoverer {
	return &FilesystemSourceDiscoverer{
		workingDirectory:    workingDirectory,
		skippedRootObserver: skippedRootObserver,
	}
}

// DiscoverSources walks every root once per extension and returns the matching files sorted by path.
// Extensions match case-insensitively. Missing roots contribute nothing; any other filesystem error aborts
// the discovery.
func (discoverer *FilesystemSourceDiscoverer) DiscoverSources(executionContext context.Context, roots []string, extensions []string) ([]ExistingFile, error) {
	var existingFiles []ExistingFile

	for _, root := range roots {
		rootFileSystem, available, rootError := discoverer.openRoot(root)
		if rootError != nil {
			return nil, rootError
		}
		if !available {
			if discoverer.skippedRootObserver != nil {
				discoverer.skippedRootObserver(root)
			}
			continue
		}

		reportedRoot := pathutils.NormalizeSeparators(root)
		for _, extension := range extensions {
			if executionContext != nil {
				if contextError := executionContext.Err(); contextError != nil {
					return nil, contextError
				}
			}

			matches, globError := doublestar.Glob(
				rootFileSystem,
				CaseInsensitiveExtensionPattern(extension),
				doublestar.WithFilesOnly(),
				doublestar.WithNoFollow(),
				doublestar.WithFailOnIOErrors(),
			)
			if globError != nil {
				return nil, fmt.Errorf(globErrorTemplateConstant, root, extension, globError)
			}

			for _, match := range matches {
				if isDirectoryLink(rootFileSystem, match) {
					continue
				}
				existingFiles = append(existingFiles, NewExistingFile(joinRootPath(reportedRoot, match), root))
			}
		}
	}

	sort.SliceStable(existingFiles, func(first int, second int) bool {
		return existingFiles[first].Path < existingFiles[second].Path
	})
	return existingFiles, nil
}

func (discoverer *FilesystemSourceDiscoverer) openRoot(root string) (fs.FS, bool, error) {
	resolvedRoot := filepath.FromSlash(strings.ReplaceAll(root, "\\", "/"))
	if !filepath.IsAbs(resolvedRoot) && len(discoverer.workingDirectory) > 0 {
		resolvedRoot = filepath.Join(discoverer.workingDirectory, resolvedRoot)
	}

	rootInformation, statError := os.Stat(resolvedRoot)
	if statError != nil {
		if errors.Is(statError, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, statError
	}
	if !rootInformation.IsDir() {
		return nil, false, fmt.Errorf(rootNotDirectoryTemplateConstant, root)
	}

	return os.DirFS(resolvedRoot), true, nil
}

// isDirectoryLink reports whether a no-follow match is a symlink that resolves to a directory.
func isDirectoryLink(rootFileSystem fs.FS, match string) bool {
	matchInformation, statError := fs.Stat(rootFileSystem, match)
	return statError == nil && matchInformation.IsDir()
}

// joinRootPath prefixes match with the root without resolving `..` segments in the root.
func joinRootPath(reportedRoot string, match string) string {
	if len(reportedRoot) == 0 {
		return match
	}
	return strings.TrimSuffix(reportedRoot, pathSeparatorConstant) + pathSeparatorConstant + match
}

// CaseInsensitiveExtensionPattern builds a recursive glob matching the extension in any letter case, for
// example `**/*.[hH][pP][pP]` for "hpp".
func CaseInsensitiveExtensionPattern(extension string) string {
	var patternBuilder strings.Builder
	patternBuilder.WriteString(recursiveWildcardPrefixConstant)

	for _, character := range strings.TrimLeft(extension, ".") {
		lowerCharacter := unicode.ToLower(character)
		upperCharacter := unicode.ToUpper(character)
		switch {
		case lowerCharacter != upperCharacter:
			patternBuilder.WriteRune('[')
			patternBuilder.WriteRune(lowerCharacter)
			patternBuilder.WriteRune(upperCharacter)
			patternBuilder.WriteRune(']')
		case strings.ContainsRune(globSpecialCharactersConstant, character):
			patternBuilder.WriteRune('\\')
			patternBuilder.WriteRune(character)
		default:
			patternBuilder.WriteRune(character)
		}
	}

	return patternBuilder.String()
}
