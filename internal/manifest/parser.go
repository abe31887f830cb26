package manifest

import (
	"bufio"
	"encoding/hex"
	"io"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"
)

const (
	maximumManifestLineLengthConstant = 1024 * 1024
	pathSeparatorCharactersConstant   = "/\\"
)

type scanState int

const (
	scanStateBeforeBlock scanState = iota
	scanStateWithinBlock
	scanStateAfterBlock
)

// Parser extracts declared entries from a manifest.
type Parser struct {
	markers          Markers
	entryMatchPrefix string
}

// NewParser constructs a Parser. Empty marker fields fall back to the defaults.
func NewParser(markers Markers) *Parser {
	defaults := DefaultMarkers()
	if len(strings.TrimSpace(markers.BlockStart)) == 0 {
		markers.BlockStart = defaults.BlockStart
	}
	if len(strings.TrimSpace(markers.BlockEnd)) == 0 {
		markers.BlockEnd = defaults.BlockEnd
	}
	if len(strings.TrimSpace(markers.EntryPrefix)) == 0 {
		markers.EntryPrefix = defaults.EntryPrefix
	}
	markers.BlockStart = strings.TrimSpace(markers.BlockStart)
	markers.BlockEnd = strings.TrimSpace(markers.BlockEnd)
	markers.EntryPrefix = strings.TrimSpace(markers.EntryPrefix)
	return &Parser{
		markers:          markers,
		entryMatchPrefix: strings.TrimRight(markers.EntryPrefix, pathSeparatorCharactersConstant),
	}
}

// ParseFile reads the manifest at manifestPath. The file is always closed before returning.
func (parser *Parser) ParseFile(manifestPath string) (Document, error) {
	manifestFile, openError := os.Open(manifestPath)
	if openError != nil {
		return Document{}, ManifestReadError{Path: manifestPath, Cause: openError}
	}
	defer manifestFile.Close()

	document, parseError := parser.Parse(manifestFile)
	if parseError != nil {
		return Document{}, ManifestReadError{Path: manifestPath, Cause: parseError}
	}
	return document, nil
}

// Parse scans the manifest in three states: before the block, within it, and after it. Scanning stops at
// the first end marker, so later blocks with the same start marker are ignored.
func (parser *Parser) Parse(reader io.Reader) (Document, error) {
	hasher := xxhash.New()
	lineScanner := bufio.NewScanner(io.TeeReader(reader, hasher))
	lineScanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maximumManifestLineLengthConstant)

	document := Document{}
	state := scanStateBeforeBlock
	lineNumber := 0

	for state != scanStateAfterBlock && lineScanner.Scan() {
		lineNumber++
		trimmedLine := strings.TrimSpace(lineScanner.Text())

		switch state {
		case scanStateBeforeBlock:
			if trimmedLine == parser.markers.BlockStart {
				document.BlockFound = true
				state = scanStateWithinBlock
			}
		case scanStateWithinBlock:
			if strings.HasPrefix(trimmedLine, parser.entryMatchPrefix) {
				declaredEntry := NewDeclaredEntry(parser.stripPrefix(trimmedLine), lineNumber)
				if len(declaredEntry.Path) > 0 {
					document.Entries = append(document.Entries, declaredEntry)
				}
				continue
			}
			if trimmedLine == parser.markers.BlockEnd {
				document.BlockClosed = true
				state = scanStateAfterBlock
			}
		}
	}

	if scanError := lineScanner.Err(); scanError != nil {
		return Document{}, scanError
	}

	// Drain the remainder so the digest covers the whole manifest.
	if _, drainError := io.Copy(io.Discard, io.TeeReader(reader, hasher)); drainError != nil {
		return Document{}, drainError
	}
	document.Digest = hex.EncodeToString(hasher.Sum(nil))

	return document, nil
}

// stripPrefix removes the entry prefix and the path separator that follows it. Either separator style is
// accepted after the prefix.
func (parser *Parser) stripPrefix(trimmedLine string) string {
	remainder := strings.TrimPrefix(trimmedLine, parser.entryMatchPrefix)
	remainder = strings.TrimLeft(remainder, pathSeparatorCharactersConstant)
	return strings.TrimSpace(remainder)
}
