package report

import (
	"github.com/jamesainslie/metachk/pkg/metachk/index"
	"github.com/jamesainslie/metachk/pkg/metachk/inode"
	"github.com/jamesainslie/metachk/pkg/metachk/types"
)

// HardLinks finds inode groups whose member records disagree on shared
// attributes. Every indexed filename is resolved through st; failed lookups
// drop the filename from this report only. Within a group, each filename
// contributes only its FIRST manifest record, and link- and dir-type records
// are not compared: a link or directory sharing an inode is not itself
// contradictory. Filenames are compared with the filename field ignored.
func HardLinks(idx *index.Index, st inode.Stater) []HardLink {
	groups := inode.Group(idx.Filenames(), st)

	var out []HardLink
	for _, ino := range inode.Inodes(groups) {
		names := groups[ino]
		if len(names) < 2 {
			continue
		}

		lines := make([]int, len(names))
		var compared []types.Record
		for i, name := range names {
			first := idx.Bucket(name)[0]
			lines[i] = first.Line
			if t := first.Type(); t == types.TypeLink || t == types.TypeDir {
				continue
			}
			compared = append(compared, first)
		}

		result := index.Compare(compared, true)
		if result.Equal {
			continue
		}

		out = append(out, HardLink{
			Inode:       ino,
			Names:       names,
			Lines:       lines,
			ConflictKey: result.ConflictKey,
		})
	}

	return out
}
