package index

import (
	"testing"

	"github.com/jamesainslie/metachk/pkg/metachk/types"
)

func rec(name string, line int, attrs ...types.Attr) types.Record {
	return types.Record{Name: name, Line: line, Attrs: attrs}
}

func attr(key, value string) types.Attr {
	return types.Attr{Key: key, Value: value}
}

func TestCompareSingleRecordIsEqual(t *testing.T) {
	got := Compare([]types.Record{rec("./a", 1, attr("mode", "0644"))}, false)
	if !got.Equal {
		t.Errorf("single record should be Equal, got conflict on %q", got.ConflictKey)
	}
}

func TestCompareIdenticalRecords(t *testing.T) {
	records := []types.Record{
		rec("./a", 1, attr("mode", "0644"), attr("size", "10"), attr("type", "file")),
		rec("./a", 9, attr("mode", "0644"), attr("size", "10"), attr("type", "file")),
	}
	if got := Compare(records, false); !got.Equal {
		t.Errorf("identical records should be Equal, got conflict on %q", got.ConflictKey)
	}
}

func TestCompareReportsFirstConflictingKey(t *testing.T) {
	// The second record's attribute order decides which conflict is seen
	// first: uname differs before mode does.
	records := []types.Record{
		rec("./a", 1, attr("mode", "0644"), attr("uname", "root")),
		rec("./a", 2, attr("uname", "bin"), attr("mode", "0600")),
	}
	got := Compare(records, false)
	if got.Equal {
		t.Fatal("expected conflict")
	}
	if got.ConflictKey != "uname" {
		t.Errorf("ConflictKey = %q, want uname (first in the other record's order)", got.ConflictKey)
	}
}

func TestCompareModeConflict(t *testing.T) {
	records := []types.Record{
		rec("./etc/foo", 3, attr("mode", "0644"), attr("type", "file")),
		rec("./etc/foo", 8, attr("mode", "0640"), attr("type", "file")),
	}
	got := Compare(records, false)
	if got.Equal || got.ConflictKey != "mode" {
		t.Errorf("got %+v, want conflict on mode", got)
	}
}

func TestCompareMissingKeyIsCompatible(t *testing.T) {
	// The reference declares size; the other record does not. The format
	// treats a missing field as compatible with anything.
	records := []types.Record{
		rec("./a", 1, attr("mode", "0644"), attr("size", "10")),
		rec("./a", 2, attr("mode", "0644")),
	}
	if got := Compare(records, false); !got.Equal {
		t.Errorf("missing key should not conflict, got conflict on %q", got.ConflictKey)
	}
}

func TestCompareAsymmetry(t *testing.T) {
	// The other record declares a key the reference lacks: also compatible.
	// Only keys present in BOTH are compared, driven by the other record.
	records := []types.Record{
		rec("./a", 1, attr("mode", "0644")),
		rec("./a", 2, attr("mode", "0644"), attr("uname", "root")),
	}
	if got := Compare(records, false); !got.Equal {
		t.Errorf("extra key in non-reference record should not conflict, got %q", got.ConflictKey)
	}
}

func TestCompareFilenameMismatch(t *testing.T) {
	records := []types.Record{
		rec("./a", 1, attr("mode", "0644")),
		rec("./b", 2, attr("mode", "0644")),
	}

	got := Compare(records, false)
	if got.Equal || got.ConflictKey != types.ConflictFilename {
		t.Errorf("got %+v, want filename conflict", got)
	}

	if got := Compare(records, true); !got.Equal {
		t.Errorf("ignoreName should allow differing filenames, got conflict on %q", got.ConflictKey)
	}
}

func TestCompareFilenameCheckedBeforeAttributes(t *testing.T) {
	records := []types.Record{
		rec("./a", 1, attr("mode", "0644")),
		rec("./b", 2, attr("mode", "0755")),
	}
	got := Compare(records, false)
	if got.ConflictKey != types.ConflictFilename {
		t.Errorf("ConflictKey = %q, want filename before mode", got.ConflictKey)
	}
}

func TestComparePairwiseAgainstReferenceOnly(t *testing.T) {
	// Records 3 and 4 disagree on gname with each other, but the reference
	// has no gname, so neither is ever compared on it. The group is Equal:
	// every record is checked against the reference only.
	records := []types.Record{
		rec("./a", 1, attr("mode", "0644"), attr("uname", "root")),
		rec("./a", 5, attr("mode", "0644")),
		rec("./a", 9, attr("uname", "root"), attr("gname", "wheel")),
		rec("./a", 12, attr("gname", "operator")),
	}
	if got := Compare(records, false); !got.Equal {
		t.Errorf("got conflict on %q, want Equal under reference-pairwise semantics", got.ConflictKey)
	}
}

func TestCompareLaterRecordConflicts(t *testing.T) {
	records := []types.Record{
		rec("./a", 1, attr("mode", "0644"), attr("type", "file")),
		rec("./a", 5, attr("mode", "0644")),
		rec("./a", 9, attr("type", "dir")),
	}
	got := Compare(records, false)
	if got.Equal || got.ConflictKey != "type" {
		t.Errorf("got %+v, want conflict on type", got)
	}
}
