// Package inode resolves manifest filenames to filesystem inode numbers and
// groups hard-link aliases. Lookups run against a root directory; manifest
// names carry a leading "./" marker which is stripped for the lookup and kept
// for display.
package inode

import (
	"path/filepath"
	"sort"
	"strings"
)

// Stater resolves a relative path to its inode number. Lookup failure means
// the path is simply excluded from inode analysis; it is never fatal.
type Stater interface {
	Inode(path string) (uint64, error)
}

// FSStater resolves inodes on the local filesystem, relative to Root.
type FSStater struct {
	// Root is the directory manifest paths are resolved against.
	Root string
}

// NewStater returns a Stater rooted at dir. An empty dir means the current
// directory.
func NewStater(dir string) *FSStater {
	if dir == "" {
		dir = "."
	}
	return &FSStater{Root: dir}
}

// Inode implements Stater using the platform stat call.
func (s *FSStater) Inode(path string) (uint64, error) {
	return lookup(filepath.Join(s.Root, path))
}

// Group resolves each filename through st and buckets them by inode.
// Filenames whose lookup fails are excluded. Each bucket keeps the
// filenames in the order given, with their display form intact.
func Group(names []string, st Stater) map[uint64][]string {
	groups := make(map[uint64][]string)
	for _, name := range names {
		ino, err := st.Inode(strings.TrimPrefix(name, "./"))
		if err != nil {
			continue
		}
		groups[ino] = append(groups[ino], name)
	}
	return groups
}

// Inodes returns the group keys in ascending order, for deterministic
// iteration over a Group result.
func Inodes(groups map[uint64][]string) []uint64 {
	keys := make([]uint64, 0, len(groups))
	for ino := range groups {
		keys = append(keys, ino)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
