//go:build !unix

package inode

import "errors"

// errUnsupported excludes every filename from inode analysis on platforms
// without stable inode numbers.
var errUnsupported = errors.New("inode lookup not supported on this platform")

// lookup always fails on non-unix platforms; the inode report is empty there.
func lookup(path string) (uint64, error) {
	return 0, errUnsupported
}
