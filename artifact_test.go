package cjdiff

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/cjdiff/encode"
	"github.com/signadot/cjdiff/ir"
	"github.com/signadot/cjdiff/ir/kpath"
	"github.com/signadot/cjdiff/libdiff"
	"github.com/signadot/cjdiff/parse"
)

func TestArtifact(t *testing.T) {
	a, b := readFixture(t, "a.city.json"), readFixture(t, "b.city.json")
	res, err := Diff(context.Background(), a, b, nil)
	if err != nil {
		t.Fatal(err)
	}
	res.Truncated = []string{"x"}
	node := res.Artifact().ToIR()
	if rep := ir.Get(node, "representation"); rep == nil || rep.String != Representation {
		t.Fatalf("no representation in %s", encode.MustString(node))
	}
	back, err := ArtifactFromIR(mustParse(t, encode.MustString(node)))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"x"}, back.Truncated); diff != "" {
		t.Errorf("truncated (-want +got):\n%s", diff)
	}
	got, err := PatchArtifact(a, back)
	if err != nil {
		t.Fatal(err)
	}
	checkEqual(t, withoutVertices(got), withoutVertices(b))
}

func TestArtifactRepresentation(t *testing.T) {
	tests := []string{
		`{"values_changed": {}}`,
		`{"representation": "normalized", "values_changed": {}}`,
		`{"representation": 1}`,
	}
	for _, in := range tests {
		if _, err := ArtifactFromIR(mustParse(t, in)); !errors.Is(err, libdiff.ErrApply) {
			t.Errorf("%s: expected ErrApply, got %v", in, err)
		}
	}
	if _, err := ArtifactFromIR(mustParse(t, `{"representation": "raw", "truncated": "b1"}`)); err == nil {
		t.Errorf("expected error for malformed truncated")
	}
}

func TestArtifactSmallFloats(t *testing.T) {
	a := mustParse(t, strings.Replace(single, `"type": "CityJSON",`, `"type": "CityJSON", "metadata": {"h": 1.5},`, 1))
	b := mustParse(t, strings.Replace(single, `"type": "CityJSON",`, `"type": "CityJSON", "metadata": {"h": 0.00001},`, 1))
	res, err := Diff(context.Background(), a, b, nil)
	if err != nil {
		t.Fatal(err)
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(res.Artifact().ToIR(), buf); err != nil {
		t.Fatal(err)
	}
	node, err := parse.Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("%v\n%s", err, buf)
	}
	art, err := ArtifactFromIR(node)
	if err != nil {
		t.Fatal(err)
	}
	got, err := PatchArtifact(a, art)
	if err != nil {
		t.Fatal(err)
	}
	h, err := got.Lookup(kpath.MustParse("metadata.h"))
	if err != nil {
		t.Fatal(err)
	}
	if h.TypeName() != "float" || *h.Float64 != 0.00001 {
		t.Errorf("metadata.h = %s (%s)", encode.MustString(h), h.TypeName())
	}
	checkEqual(t, got, b)
}
