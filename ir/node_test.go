package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/cjdiff/ir/kpath"
)

func TestEdit(t *testing.T) {
	doc := obj("a", arr(FromInt(0), FromInt(1)), "b", obj("c", FromString("x")))

	a := Get(doc, "a")
	if err := a.InsertAt(2, FromInt(2)); err != nil {
		t.Fatal(err)
	}
	if err := a.InsertAt(0, FromInt(-1)); err != nil {
		t.Fatal(err)
	}
	if err := a.InsertAt(9, FromInt(9)); err == nil {
		t.Error("expected out of bounds insert to fail")
	}
	if err := a.RemoveAt(1); err != nil {
		t.Fatal(err)
	}
	want := arr(FromInt(-1), FromInt(1), FromInt(2))
	if !Equal(a, want) {
		t.Errorf("got %v", ToAny(a))
	}
	for i, v := range a.Values {
		if v.ParentIndex != i || v.Parent != a {
			t.Errorf("element %d not reindexed", i)
		}
	}

	b := Get(doc, "b")
	if err := b.SetField("d", FromBool(true)); err != nil {
		t.Fatal(err)
	}
	if err := b.SetField("c", Null()); err != nil {
		t.Fatal(err)
	}
	if !b.DeleteField("d") || b.DeleteField("d") {
		t.Error("DeleteField")
	}
	if diff := cmp.Diff(map[string]any{"c": nil}, ToAny(b)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got := Get(b, "c").KPath(); got != "b.c" {
		t.Errorf("kpath %q", got)
	}
	if err := a.SetField("x", Null()); err == nil {
		t.Error("SetField on array must fail")
	}
}

func TestLookup(t *testing.T) {
	doc := obj("CityObjects", obj("id 1", obj("geometry", arr(obj("lod", FromString("2"))))))
	n, err := doc.Lookup(kpath.MustParse(`CityObjects."id 1".geometry[0].lod`))
	if err != nil {
		t.Fatal(err)
	}
	if n.String != "2" {
		t.Errorf("got %v", ToAny(n))
	}
	if got := n.KPath(); got != `CityObjects."id 1".geometry[0].lod` {
		t.Errorf("kpath %q", got)
	}
	for _, bad := range []string{"CityObjects.x", "CityObjects[0]", `CityObjects."id 1".geometry[1]`, `CityObjects."id 1".geometry.x`} {
		if _, err := doc.Lookup(kpath.MustParse(bad)); err == nil {
			t.Errorf("%s: expected error", bad)
		}
	}
	root, err := doc.Lookup(nil)
	if err != nil || root != doc {
		t.Errorf("nil path must resolve to the root")
	}
}

func TestCloneIndependent(t *testing.T) {
	doc := obj("a", arr(FromFloat(1.5)))
	c := doc.Clone()
	*Get(c, "a").Values[0].Float64 = 2
	if *Get(doc, "a").Values[0].Float64 != 1.5 {
		t.Error("clone shares numbers")
	}
	if w := doc.Without("a"); len(w.Fields) != 0 || len(doc.Fields) != 1 {
		t.Error("Without")
	}
}
