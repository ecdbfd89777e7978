package output

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/jamesainslie/metachk/pkg/metachk/report"
)

// PlainFormatter renders the canonical text report: package blocks, then
// duplicate-filename warnings, then duplicate-filename errors, then (when
// generated) hard-link errors. Output is plain text with no styling and is
// byte-identical across runs on unchanged input.
type PlainFormatter struct{}

// Format writes the formatted report to the buffer.
func (f *PlainFormatter) Format(w *bytes.Buffer, r *report.Report) error {
	for _, pkg := range r.Packages {
		fmt.Fprintf(w, "Package %s:%s\n", pkg.Name, setidSuffix(pkg))
		fmt.Fprintf(w, "\tfiles: %s\n", countOrUnknown(pkg))
		fmt.Fprintf(w, "\tsize: %s\n", sizeOrUnknown(pkg))
	}

	for _, d := range r.Warnings() {
		fmt.Fprintf(w, "warning: %s exists in multiple locations: line %s\n",
			d.Name, joinLines(d.Lines))
	}

	for _, d := range r.Errors() {
		fmt.Fprintf(w, "error: %s exists in multiple locations: line %s with different %s\n",
			d.Name, joinLines(d.Lines), d.ConflictKey)
	}

	for _, hl := range r.HardLinks {
		fmt.Fprintf(w, "error: %s (line %s) are hard links with different %s\n",
			strings.Join(hl.Names, ","), joinLines(hl.Lines), hl.ConflictKey)
	}

	return nil
}

// setidSuffix returns the " setuid"/" setgid" suffixes for a package line.
func setidSuffix(pkg report.PackageSummary) string {
	var s string
	if pkg.Setuid {
		s += " setuid"
	}
	if pkg.Setgid {
		s += " setgid"
	}
	return s
}

// countOrUnknown renders the file count, or "?" when the package contains an
// inconsistent duplicate.
func countOrUnknown(pkg report.PackageSummary) string {
	if !pkg.Known {
		return "?"
	}
	return strconv.Itoa(pkg.Files)
}

// sizeOrUnknown renders the total size, or "?" when unknown.
func sizeOrUnknown(pkg report.PackageSummary) string {
	if !pkg.Known {
		return "?"
	}
	return strconv.FormatInt(pkg.Size, 10)
}

// joinLines renders line numbers as a comma-joined list.
func joinLines(lines []int) string {
	parts := make([]string, len(lines))
	for i, n := range lines {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

func init() {
	Register("plain", func() Formatter {
		return &PlainFormatter{}
	})
}

// Ensure PlainFormatter implements Formatter.
var _ Formatter = (*PlainFormatter)(nil)
