package index

import (
	"reflect"
	"testing"

	"github.com/jamesainslie/metachk/pkg/metachk/types"
)

func TestBuildBucketsPreserveScanOrder(t *testing.T) {
	records := []types.Record{
		rec("./etc/foo", 1, attr("mode", "0644")),
		rec("./etc/bar", 2, attr("mode", "0600")),
		rec("./etc/foo", 3, attr("mode", "0644")),
	}

	idx := Build(records)

	bucket := idx.Bucket("./etc/foo")
	if len(bucket) != 2 {
		t.Fatalf("bucket size = %d, want 2", len(bucket))
	}
	if bucket[0].Line != 1 || bucket[1].Line != 3 {
		t.Errorf("bucket lines = %d,%d; want 1,3", bucket[0].Line, bucket[1].Line)
	}

	if got := idx.Bucket("./missing"); got != nil {
		t.Errorf("Bucket(missing) = %v, want nil", got)
	}
}

func TestFilenamesSorted(t *testing.T) {
	idx := Build([]types.Record{
		rec("./z", 1, attr("mode", "0644")),
		rec("./a", 2, attr("mode", "0644")),
		rec("./m", 3, attr("mode", "0644")),
	})

	want := []string{"./a", "./m", "./z"}
	if got := idx.Filenames(); !reflect.DeepEqual(got, want) {
		t.Errorf("Filenames() = %v, want %v", got, want)
	}
}

func TestPackages(t *testing.T) {
	tests := []struct {
		name string
		tags string
		want []string
	}{
		{name: "single package", tags: "package=core", want: []string{"core"}},
		{name: "package sub-list", tags: "package=a,b,c", want: []string{"a", "b", "c"}},
		{name: "tag before package", tags: "etc,package=base", want: []string{"base"}},
		{
			// The conflated grammar: a tag after the package list is
			// swallowed into it. Preserved, not fixed.
			name: "trailing tag swallowed",
			tags: "package=base,etc",
			want: []string{"base", "etc"},
		},
		{name: "no package tag", tags: "etc,obsolete", want: nil},
		{name: "empty list entries dropped", tags: "package=a,,b", want: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := rec("./f", 1, attr("tags", tt.tags))
			if got := Packages(r); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Packages(tags=%q) = %v, want %v", tt.tags, got, tt.want)
			}
		})
	}
}

func TestPackagesNoTagsAttr(t *testing.T) {
	if got := Packages(rec("./f", 1, attr("mode", "0644"))); got != nil {
		t.Errorf("Packages() = %v, want nil", got)
	}
}

func TestPackageMembership(t *testing.T) {
	records := []types.Record{
		rec("./bin/x", 1, attr("type", "file"), attr("tags", "package=core")),
		rec("./bin/y", 2, attr("type", "file"), attr("tags", "package=core")),
		rec("./etc/z", 3, attr("type", "file"), attr("tags", "package=base,core")),
		// Duplicate entry: membership must not repeat.
		rec("./bin/x", 4, attr("type", "file"), attr("tags", "package=core")),
		rec("./var/untagged", 5, attr("type", "file")),
	}

	idx := Build(records)

	if got, want := idx.PackageNames(), []string{"base", "core"}; !reflect.DeepEqual(got, want) {
		t.Errorf("PackageNames() = %v, want %v", got, want)
	}

	if got, want := idx.Members("core"), []string{"./bin/x", "./bin/y", "./etc/z"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Members(core) = %v, want %v", got, want)
	}
	if got, want := idx.Members("base"), []string{"./etc/z"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Members(base) = %v, want %v", got, want)
	}
	if got := idx.Members("absent"); len(got) != 0 {
		t.Errorf("Members(absent) = %v, want empty", got)
	}
}
