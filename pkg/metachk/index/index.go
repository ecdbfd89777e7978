// Package index builds the read-only lookup structures the reports run on:
// records bucketed by filename, filenames grouped into named packages, and
// the equivalence check that decides whether a group of records describing
// the same entity actually agree with each other.
//
// All indices are built in one pass over the parsed manifest and never
// mutated afterwards.
package index

import (
	"sort"
	"strings"

	"github.com/jamesainslie/metachk/pkg/metachk/types"
)

// packagePrefix marks the package sub-list inside a tags value.
const packagePrefix = "package="

// Index holds the manifest's records bucketed by filename and grouped by
// package. Build it once with Build; it is read-only afterwards.
type Index struct {
	// buckets maps filename to its records in file-scan order.
	buckets map[string][]types.Record

	// packages maps package name to the set of member filenames.
	packages map[string]map[string]struct{}
}

// Build indexes records in a single pass, preserving file-scan order inside
// each filename bucket.
func Build(records []types.Record) *Index {
	idx := &Index{
		buckets:  make(map[string][]types.Record),
		packages: make(map[string]map[string]struct{}),
	}

	for _, rec := range records {
		idx.buckets[rec.Name] = append(idx.buckets[rec.Name], rec)

		for _, pkg := range Packages(rec) {
			set, ok := idx.packages[pkg]
			if !ok {
				set = make(map[string]struct{})
				idx.packages[pkg] = set
			}
			set[rec.Name] = struct{}{}
		}
	}

	return idx
}

// Packages extracts the package names a record is tagged with. The tags
// grammar conflates the tag separator with the package-list separator, so
// only the FIRST "package=" match is honored and everything after it is the
// comma-separated package list. This mirrors the format's existing consumers
// and is deliberately not generalized.
func Packages(rec types.Record) []string {
	tags, ok := rec.Attr(types.KeyTags)
	if !ok {
		return nil
	}

	at := strings.Index(tags, packagePrefix)
	if at < 0 {
		return nil
	}

	var names []string
	for _, name := range strings.Split(tags[at+len(packagePrefix):], ",") {
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Bucket returns the records sharing filename, in file-scan order.
func (x *Index) Bucket(name string) []types.Record {
	return x.buckets[name]
}

// Filenames returns every indexed filename in lexicographic order.
func (x *Index) Filenames() []string {
	names := make([]string, 0, len(x.buckets))
	for name := range x.buckets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PackageNames returns every package name in lexicographic order.
func (x *Index) PackageNames() []string {
	names := make([]string, 0, len(x.packages))
	for name := range x.packages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Members returns the filenames belonging to a package, in lexicographic
// order. Membership only: duplicate manifest entries do not repeat here.
func (x *Index) Members(pkg string) []string {
	set := x.packages[pkg]
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
