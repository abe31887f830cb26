package pathutils

import "strings"

// ConfiguredPathSanitizer cleans path lists supplied through flags or configuration.
type ConfiguredPathSanitizer struct {
	homeExpander *HomeExpander
}

// NewConfiguredPathSanitizer constructs a sanitizer backed by the operating system home lookup.
func NewConfiguredPathSanitizer() *ConfiguredPathSanitizer {
	return NewConfiguredPathSanitizerWithExpander(nil)
}

// NewConfiguredPathSanitizerWithExpander constructs a sanitizer using the provided expander.
func NewConfiguredPathSanitizerWithExpander(homeExpander *HomeExpander) *ConfiguredPathSanitizer {
	if homeExpander == nil {
		homeExpander = NewHomeExpander()
	}
	return &ConfiguredPathSanitizer{homeExpander: homeExpander}
}

// Sanitize trims whitespace, expands the home directory, and drops empty and duplicate values while
// preserving input order.
func (sanitizer *ConfiguredPathSanitizer) Sanitize(candidatePaths []string) []string {
	expander := NewHomeExpander()
	if sanitizer != nil && sanitizer.homeExpander != nil {
		expander = sanitizer.homeExpander
	}

	seen := make(map[string]struct{}, len(candidatePaths))
	sanitizedPaths := make([]string, 0, len(candidatePaths))
	for _, candidatePath := range candidatePaths {
		trimmedPath := strings.TrimSpace(candidatePath)
		if len(trimmedPath) == 0 {
			continue
		}

		expandedPath := expander.Expand(trimmedPath)
		if _, duplicate := seen[expandedPath]; duplicate {
			continue
		}
		seen[expandedPath] = struct{}{}
		sanitizedPaths = append(sanitizedPaths, expandedPath)
	}

	if len(sanitizedPaths) == 0 {
		return nil
	}
	return sanitizedPaths
}

// SanitizeExtensions trims whitespace and leading dots from extension values and drops empty and duplicate
// entries, comparing case-insensitively.
func SanitizeExtensions(candidateExtensions []string) []string {
	seen := make(map[string]struct{}, len(candidateExtensions))
	sanitizedExtensions := make([]string, 0, len(candidateExtensions))
	for _, candidateExtension := range candidateExtensions {
		trimmedExtension := strings.TrimLeft(strings.TrimSpace(candidateExtension), currentDirectoryConstant)
		if len(trimmedExtension) == 0 {
			continue
		}

		comparisonKey := strings.ToLower(trimmedExtension)
		if _, duplicate := seen[comparisonKey]; duplicate {
			continue
		}
		seen[comparisonKey] = struct{}{}
		sanitizedExtensions = append(sanitizedExtensions, trimmedExtension)
	}

	if len(sanitizedExtensions) == 0 {
		return nil
	}
	return sanitizedExtensions
}
