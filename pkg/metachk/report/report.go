// Package report computes the audit findings from the manifest indices:
// per-package summaries, duplicate-filename findings, and hard-link
// consistency findings. Generators are pure read-only queries; the report
// for an unchanged manifest and filesystem is byte-for-byte reproducible.
package report

import (
	"github.com/jamesainslie/metachk/pkg/metachk/index"
	"github.com/jamesainslie/metachk/pkg/metachk/inode"
)

// PackageSummary aggregates one declared package.
type PackageSummary struct {
	// Name is the package name from the manifest's tags.
	Name string `json:"name" yaml:"name"`

	// Setuid is true if any record in the package carries the setuid bit.
	Setuid bool `json:"setuid" yaml:"setuid"`

	// Setgid is true if any record in the package carries the setgid bit.
	Setgid bool `json:"setgid" yaml:"setgid"`

	// Known is false when the package contains an inconsistent duplicate
	// filename; Files and Size are then undefined and render as "?".
	Known bool `json:"known" yaml:"known"`

	// Files counts distinct filenames in the package.
	Files int `json:"files" yaml:"files"`

	// Size sums the size attribute of file-type entries, in bytes.
	Size int64 `json:"size" yaml:"size"`
}

// Duplicate is a filename the manifest names more than once. A zero
// ConflictKey means the entries agree on their shared attributes and the
// duplication is merely suspicious; otherwise it is a real inconsistency.
type Duplicate struct {
	// Name is the duplicated filename.
	Name string `json:"name" yaml:"name"`

	// Lines are the manifest line numbers of every entry, in file order.
	Lines []int `json:"lines" yaml:"lines"`

	// ConflictKey names the first disagreeing attribute, or "" if none.
	ConflictKey string `json:"conflict_key,omitempty" yaml:"conflict_key,omitempty"`
}

// HardLink is a set of filenames sharing an inode whose records disagree.
type HardLink struct {
	// Inode is the shared inode number.
	Inode uint64 `json:"inode" yaml:"inode"`

	// Names are the filenames resolving to the inode, in index order.
	Names []string `json:"names" yaml:"names"`

	// Lines are the line numbers of each filename's first record,
	// parallel to Names.
	Lines []int `json:"lines" yaml:"lines"`

	// ConflictKey names the first disagreeing attribute.
	ConflictKey string `json:"conflict_key" yaml:"conflict_key"`
}

// Report is the complete audit result.
type Report struct {
	// Source is the manifest path the report was generated from.
	Source string `json:"source" yaml:"source"`

	// Packages holds one summary per package, sorted by name.
	Packages []PackageSummary `json:"packages" yaml:"packages"`

	// Duplicates holds all duplicate-filename findings, sorted by name.
	Duplicates []Duplicate `json:"duplicates" yaml:"duplicates"`

	// HardLinks holds inode findings; empty unless the inode report is
	// enabled.
	HardLinks []HardLink `json:"hard_links,omitempty" yaml:"hard_links,omitempty"`

	// ParseErrors counts manifest lines that could not be parsed.
	ParseErrors int `json:"parse_errors,omitempty" yaml:"parse_errors,omitempty"`
}

// Warnings returns the duplicates whose entries agree on shared attributes.
func (r *Report) Warnings() []Duplicate {
	var out []Duplicate
	for _, d := range r.Duplicates {
		if d.ConflictKey == "" {
			out = append(out, d)
		}
	}
	return out
}

// Errors returns the duplicates with a real attribute conflict.
func (r *Report) Errors() []Duplicate {
	var out []Duplicate
	for _, d := range r.Duplicates {
		if d.ConflictKey != "" {
			out = append(out, d)
		}
	}
	return out
}

// Options controls report generation.
type Options struct {
	// Source is recorded on the report for display.
	Source string

	// HardLinks enables the inode consistency report. Off by default:
	// it touches the live filesystem, which the other reports never do.
	HardLinks bool

	// Stater resolves inode numbers when HardLinks is set.
	Stater inode.Stater
}

// Generate runs all enabled generators over a built index.
func Generate(idx *index.Index, opts Options) *Report {
	r := &Report{
		Source:     opts.Source,
		Packages:   Packages(idx),
		Duplicates: Duplicates(idx),
	}
	if opts.HardLinks && opts.Stater != nil {
		r.HardLinks = HardLinks(idx, opts.Stater)
	}
	return r
}
