package audit

import "fmt"

const (
	missingEntriesErrorTemplateConstant      = "manifest audit found %d file(s) missing from the manifest"
	missingEntriesStaleErrorTemplateConstant = "manifest audit found %d file(s) missing from the manifest and %d declared file(s) missing from disk"
)

// MissingEntriesError is returned when fail-on-missing is enabled and the audit has findings.
type MissingEntriesError struct {
	MissingCount int
	StaleCount   int
}

func (missingError MissingEntriesError) Error() string {
	if missingError.StaleCount > 0 {
		return fmt.Sprintf(missingEntriesStaleErrorTemplateConstant, missingError.MissingCount, missingError.StaleCount)
	}
	return fmt.Sprintf(missingEntriesErrorTemplateConstant, missingError.MissingCount)
}
