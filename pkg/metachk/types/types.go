// Package types provides core data types for the metachk manifest auditor.
// It includes the parsed manifest Record, its insertion-ordered attribute
// list, and helpers for interpreting mode and size attribute values.
package types

import (
	"errors"
	"fmt"
	"strconv"
)

// Attribute keys recognized in manifest entries. The parser preserves any
// key=value token it encounters; these constants name the ones the reports
// interpret.
const (
	KeyUname = "uname"
	KeyGname = "gname"
	KeyMode  = "mode"
	KeySize  = "size"
	KeyTime  = "time"
	KeyType  = "type"
	KeyTags  = "tags"
)

// Entry type values carried in the "type" attribute.
const (
	TypeFile = "file"
	TypeDir  = "dir"
	TypeLink = "link"
)

// Permission bits checked by the package report, in the octal convention
// used by the manifest's "mode" attribute.
const (
	ModeSetuid uint32 = 0o4000
	ModeSetgid uint32 = 0o2000
)

// ConflictFilename is the pseudo-key reported when two records being compared
// as the same entity carry different filenames.
const ConflictFilename = "filename"

// Attr is a single key=value attribute from a manifest line.
type Attr struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// AttrList is an insertion-ordered attribute mapping. Order matters: the
// equivalence checker reports the FIRST conflicting key in attribute order,
// and that order must be stable across runs.
type AttrList []Attr

// Get returns the value for key and whether the key is present.
func (a AttrList) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// Set appends key=value, or replaces the value if key is already present.
func (a AttrList) Set(key, value string) AttrList {
	for i, attr := range a {
		if attr.Key == key {
			a[i].Value = value
			return a
		}
	}
	return append(a, Attr{Key: key, Value: value})
}

// Record is one parsed manifest line. Records are immutable once parsed.
type Record struct {
	// Name is the filename field of the manifest line, verbatim. Escaped
	// whitespace sequences in filenames are opaque text and never decoded.
	Name string `json:"name" yaml:"name"`

	// Line is the 1-based physical line number the record came from.
	// Comment and blank lines advance the counter without producing records.
	Line int `json:"line" yaml:"line"`

	// Attrs holds the key=value attributes in the order they appeared.
	Attrs AttrList `json:"attrs" yaml:"attrs"`
}

// Attr returns the value of the named attribute and whether it is present.
func (r Record) Attr(key string) (string, bool) {
	return r.Attrs.Get(key)
}

// Type returns the record's "type" attribute, or "" if absent.
func (r Record) Type() string {
	t, _ := r.Attrs.Get(KeyType)
	return t
}

// ErrNoMode indicates that a record has no "mode" attribute.
var ErrNoMode = errors.New("record has no mode attribute")

// Mode parses the record's "mode" attribute as an octal permission value.
// Returns ErrNoMode if the attribute is absent.
func (r Record) Mode() (uint32, error) {
	s, ok := r.Attrs.Get(KeyMode)
	if !ok {
		return 0, ErrNoMode
	}
	mode, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid mode %q: %w", s, err)
	}
	return uint32(mode), nil
}

// Size parses the record's "size" attribute as a decimal byte count.
// Returns 0 if the attribute is absent or not a number; sizes are advisory
// in the manifest format and a missing one never fails an audit.
func (r Record) Size() int64 {
	s, ok := r.Attrs.Get(KeySize)
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// IsSetuid reports whether the record's mode carries the setuid bit.
func (r Record) IsSetuid() bool {
	mode, err := r.Mode()
	return err == nil && mode&ModeSetuid != 0
}

// IsSetgid reports whether the record's mode carries the setgid bit.
func (r Record) IsSetgid() bool {
	mode, err := r.Mode()
	return err == nil && mode&ModeSetgid != 0
}
