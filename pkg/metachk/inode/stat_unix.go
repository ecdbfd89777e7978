//go:build unix

package inode

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// lookup stats path and returns its inode number.
func lookup(path string) (uint64, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}
	return st.Ino, nil
}
