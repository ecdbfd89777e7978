package index

import "github.com/jamesainslie/metachk/pkg/metachk/types"

// Result is the outcome of comparing a group of records that are believed
// to describe the same filesystem entity.
type Result struct {
	// Equal is true when no conflicting attribute was found.
	Equal bool

	// ConflictKey names the first conflicting attribute when Equal is false.
	// A filename mismatch is reported under types.ConflictFilename.
	ConflictKey string
}

// equal is the shared success result.
var equal = Result{Equal: true}

// Compare decides whether records agree on every attribute they share.
//
// records[0] is the reference. Each remaining record is checked against it:
// its attributes are walked in insertion order, and the first key that the
// reference also carries with a different value decides the result. A key
// the reference carries but the other record lacks is NOT a conflict: a
// record missing a field is compatible with any value for it. This asymmetry
// is a legacy quirk of the manifest format and is kept deliberately.
//
// With ignoreName false, a filename mismatch is itself an inequality and is
// reported before any attribute comparison.
func Compare(records []types.Record, ignoreName bool) Result {
	if len(records) < 2 {
		return equal
	}

	ref := records[0]
	for _, r := range records[1:] {
		if !ignoreName && r.Name != ref.Name {
			return Result{ConflictKey: types.ConflictFilename}
		}
		for _, attr := range r.Attrs {
			refVal, ok := ref.Attrs.Get(attr.Key)
			if ok && refVal != attr.Value {
				return Result{ConflictKey: attr.Key}
			}
		}
	}

	return equal
}
