package kpath

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseString(t *testing.T) {
	tests := []struct {
		in   string
		segs []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a.b.c", []string{"a", "b", "c"}},
		{"a[0][12]", []string{"a", "[0]", "[12]"}},
		{"[3].x", []string{"[3]", "x"}},
		{`CityObjects."a.b"[0]`, []string{"CityObjects", `"a.b"`, "[0]"}},
		{`"a \"q\""`, []string{`"a \"q\""`}},
		{`""`, []string{`""`}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, err := Parse(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			var segs []string
			for _, s := range p.Segments() {
				segs = append(segs, s.SegmentString())
			}
			if diff := cmp.Diff(tt.segs, segs); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
			if got := p.String(); got != tt.in {
				t.Errorf("String: got %q", got)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{".a", "a..b", "a[", "a[x]", "a[-1]", `"abc`, "a.[0]"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("%q: expected error", in)
		}
	}
}

func TestCompare(t *testing.T) {
	in := []string{"b", "a[10]", "a.z", "a[2]", "a", "a[2].x", "a.b"}
	ps := make([]*KPath, len(in))
	for i, s := range in {
		ps[i] = MustParse(s)
	}
	slices.SortFunc(ps, func(a, b *KPath) int { return a.Compare(b) })
	var got []string
	for _, p := range ps {
		got = append(got, p.String())
	}
	want := []string{"a", "a.b", "a.z", "a[2]", "a[2].x", "a[10]", "b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestStructure(t *testing.T) {
	p := MustParse("a.b[1]")
	if got := p.Parent().String(); got != "a.b" {
		t.Errorf("Parent: %q", got)
	}
	if l := p.Last(); l.Index == nil || *l.Index != 1 {
		t.Errorf("Last: %v", l)
	}
	if !p.HasPrefix(MustParse("a.b")) || p.HasPrefix(MustParse("a.c")) || !p.HasPrefix(nil) {
		t.Errorf("HasPrefix")
	}
	if p.Len() != 3 || MustParse("a").Parent() != nil {
		t.Errorf("Len or Parent of single segment")
	}
	for in, want := range map[[2]string]string{
		{"a", "b.c"}: "a.b.c",
		{"a", "[0]"}: "a[0]",
		{"", "b"}:    "b",
		{"a", ""}:    "a",
	} {
		if got := Join(in[0], in[1]); got != want {
			t.Errorf("Join(%q, %q) = %q", in[0], in[1], got)
		}
	}
}
