// Package manifest parses METALOG-style package manifests: one filesystem
// entry per line in the form
//
//	filename key1=val1 key2=val2 ...
//
// Lines that are blank or start with '#' are skipped but still count toward
// physical line numbers. Attribute tokens that are not key=value are dropped,
// matching the leniency of the format's existing consumers. Filenames are
// treated as opaque text: escape sequences for embedded whitespace are
// preserved verbatim, never decoded.
package manifest

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/jamesainslie/metachk/pkg/metachk/types"
)

// ParseError describes a manifest line that could not be split into a
// filename and attribute list.
type ParseError struct {
	// Line is the 1-based physical line number of the offending line.
	Line int

	// Text is the offending line, verbatim.
	Text string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: malformed manifest entry %q", e.Line, e.Text)
}

// Parse reads an entire manifest and returns its records in file order,
// along with a ParseError for every malformed line. Malformed lines are
// skipped; they never produce a bogus record. A read failure on the
// underlying reader is returned as the error.
func Parse(r io.Reader) ([]types.Record, []*ParseError, error) {
	var (
		records  []types.Record
		parseErr []*ParseError
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		rec, err := ParseLine(scanner.Text(), line)
		if err != nil {
			parseErr = append(parseErr, err)
			continue
		}
		if rec == nil {
			// Comment or blank line.
			continue
		}
		records = append(records, *rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	return records, parseErr, nil
}

// ParseLine parses one physical manifest line. It returns (nil, nil) for
// blank and comment lines, a ParseError for a line with no whitespace split,
// and otherwise a Record carrying the given line number.
func ParseLine(text string, line int) (*types.Record, *ParseError) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil, nil
	}

	// Split on the first run of whitespace: filename, then attributes.
	cut := strings.IndexFunc(trimmed, unicode.IsSpace)
	if cut < 0 {
		return nil, &ParseError{Line: line, Text: text}
	}

	rec := &types.Record{
		Name: trimmed[:cut],
		Line: line,
	}

	for _, token := range strings.Fields(trimmed[cut:]) {
		key, value, ok := strings.Cut(token, "=")
		if !ok || key == "" || value == "" {
			// Not key=value; dropped per the format's leniency.
			continue
		}
		rec.Attrs = rec.Attrs.Set(key, value)
	}

	return rec, nil
}
