package report

import (
	"github.com/jamesainslie/metachk/pkg/metachk/index"
	"github.com/jamesainslie/metachk/pkg/metachk/types"
)

// Packages summarizes every package in the index, sorted by package name.
//
// File counts are per distinct filename, and sizes sum the size attribute of
// each filename's first record when its type is "file"; directories, links,
// and devices contribute nothing. One inconsistent duplicate filename makes
// the WHOLE package's count and size unknown, not just that file's share.
// The setuid/setgid flags are independent of that: they scan every record of
// every filename in the package, duplicates included.
func Packages(idx *index.Index) []PackageSummary {
	var out []PackageSummary

	for _, pkg := range idx.PackageNames() {
		summary := PackageSummary{Name: pkg, Known: true}

		for _, name := range idx.Members(pkg) {
			bucket := idx.Bucket(name)

			for _, rec := range bucket {
				if rec.IsSetuid() {
					summary.Setuid = true
				}
				if rec.IsSetgid() {
					summary.Setgid = true
				}
			}

			if len(bucket) > 1 && !index.Compare(bucket, false).Equal {
				summary.Known = false
			}

			summary.Files++
			if bucket[0].Type() == types.TypeFile {
				summary.Size += bucket[0].Size()
			}
		}

		if !summary.Known {
			summary.Files = 0
			summary.Size = 0
		}
		out = append(out, summary)
	}

	return out
}
