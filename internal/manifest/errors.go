package manifest

import "fmt"

const manifestReadErrorTemplateConstant = "unable to read manifest %s: %v"

// ManifestReadError reports a manifest that could not be opened or read.
type ManifestReadError struct {
	Path  string
	Cause error
}

func (readError ManifestReadError) Error() string {
	return fmt.Sprintf(manifestReadErrorTemplateConstant, readError.Path, readError.Cause)
}

// Unwrap exposes the underlying filesystem error.
func (readError ManifestReadError) Unwrap() error {
	return readError.Cause
}
