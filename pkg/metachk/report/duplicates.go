package report

import (
	"github.com/jamesainslie/metachk/pkg/metachk/index"
)

// Duplicates finds every filename the manifest names more than once, sorted
// by filename. Entries that agree on their shared attributes produce a
// finding with no conflict key (a warning); entries that disagree carry the
// first conflicting key (an error).
func Duplicates(idx *index.Index) []Duplicate {
	var out []Duplicate

	for _, name := range idx.Filenames() {
		bucket := idx.Bucket(name)
		if len(bucket) < 2 {
			continue
		}

		lines := make([]int, len(bucket))
		for i, rec := range bucket {
			lines[i] = rec.Line
		}

		out = append(out, Duplicate{
			Name:        name,
			Lines:       lines,
			ConflictKey: index.Compare(bucket, false).ConflictKey,
		})
	}

	return out
}
