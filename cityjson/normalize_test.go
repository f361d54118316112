package cityjson

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/cjdiff/encode"
	"github.com/signadot/cjdiff/ir"
	"github.com/signadot/cjdiff/ir/kpath"
	"github.com/signadot/cjdiff/parse"
)

func mustLoad(t *testing.T, s string) *Document {
	t.Helper()
	raw, err := parse.Parse([]byte(s))
	if err != nil {
		t.Fatal(err)
	}
	doc, err := Load(raw)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestNormalizeTriangle(t *testing.T) {
	doc := mustLoad(t, `{
  "type": "CityJSON",
  "version": "1.1",
  "transform": {"scale": [1, 1, 1], "translate": [0, 0, 0]},
  "CityObjects": {
    "b1": {"type": "Building", "geometry": [{"type": "MultiSurface", "lod": "1", "boundaries": [[[0, 1, 2]]]}]}
  },
  "vertices": [[0, 0, 0], [1, 0, 0], [1, 1, 0]]
}`)
	got, err := NewNormalizer(doc).Object("b1")
	if err != nil {
		t.Fatal(err)
	}
	bounds, err := got.Lookup(kpath.MustParse("geometry[0].boundaries"))
	if err != nil {
		t.Fatal(err)
	}
	want, _ := parse.Parse([]byte(`[[[[0.0, 0.0, 0.0], [1.0, 0.0, 0.0], [1.0, 1.0, 0.0]]]]`))
	if !ir.Equal(bounds, want) {
		t.Errorf("got %s want %s", encode.MustString(bounds), encode.MustString(want))
	}
	if lod, _ := got.Lookup(kpath.MustParse("geometry[0].lod")); lod == nil || lod.String != "1" {
		t.Errorf("opaque geometry member lost")
	}
	if raw, _ := doc.Raw.Lookup(kpath.MustParse("CityObjects.b1.geometry[0].boundaries[0][0][2]")); raw == nil || raw.Int64 == nil || *raw.Int64 != 2 {
		t.Errorf("raw document modified")
	}
}

func TestNormalizeTransformRounding(t *testing.T) {
	doc := mustLoad(t, `{
  "type": "CityJSON",
  "transform": {"scale": [0.001, 0.001, 0.01], "translate": [100, 200.5, -1]},
  "CityObjects": {
    "a": {"type": "Building", "geometry": [{"boundaries": [0, 1]}, {"type": "Empty"}]}
  },
  "vertices": [[1234, 5, 7], [1, 1, 1]]
}`)
	got, err := NewNormalizer(doc).Object("a")
	if err != nil {
		t.Fatal(err)
	}
	want, _ := parse.Parse([]byte(`{"type": "Building", "geometry": [
  {"boundaries": [[101.234, 200.505, -0.93], [100.001, 200.501, -0.99]]},
  {"type": "Empty"}
]}`))
	if !ir.Equal(got, want) {
		t.Errorf("got %s want %s", encode.MustString(got), encode.MustString(want))
	}
}

func TestNormalizeExponentScale(t *testing.T) {
	doc := mustLoad(t, `{
  "type": "CityJSON",
  "transform": {"scale": [1e-05, 1E-5, 1e-3], "translate": [0, 0, 0]},
  "CityObjects": {"a": {"geometry": [{"boundaries": [0]}]}},
  "vertices": [[100000, 250000, 7]]
}`)
	got, err := NewNormalizer(doc).Object("a")
	if err != nil {
		t.Fatal(err)
	}
	want, _ := parse.Parse([]byte(`{"geometry": [{"boundaries": [[1.0, 2.5, 0.007]]}]}`))
	if !ir.Equal(got, want) {
		t.Errorf("got %s want %s", encode.MustString(got), encode.MustString(want))
	}
}

func TestRound(t *testing.T) {
	tests := map[float64]float64{
		0:          0,
		1.0005:     1.0,
		2.675:      2.675,
		1.23456:    1.235,
		-1.23456:   -1.235,
		1e-7:       0,
		123456.789: 123456.789,
	}
	for in, want := range tests {
		if got := Round(in); got != want {
			t.Errorf("Round(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestNormalizeOutOfRange(t *testing.T) {
	for _, boundaries := range []string{"[[0, 3]]", "[[0, -1]]", "[[[-7]]]"} {
		doc := mustLoad(t, `{
  "type": "CityJSON",
  "CityObjects": {"b1": {"geometry": [{"boundaries": `+boundaries+`}]}},
  "vertices": [[0, 0, 0], [1, 0, 0], [1, 1, 0]]
}`)
		_, err := Normalize(doc)
		if !errors.Is(err, ErrReferenceOutOfRange) {
			t.Errorf("%s: expected ErrReferenceOutOfRange, got %v", boundaries, err)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not an object", `[]`},
		{"missing type", `{"CityObjects": {}, "vertices": []}`},
		{"wrong type", `{"type": "GeoJSON", "CityObjects": {}, "vertices": []}`},
		{"missing CityObjects", `{"type": "CityJSON", "vertices": []}`},
		{"missing vertices", `{"type": "CityJSON", "CityObjects": {}}`},
		{"short vertex", `{"type": "CityJSON", "CityObjects": {}, "vertices": [[0, 0]]}`},
		{"bad transform", `{"type": "CityJSON", "CityObjects": {}, "vertices": [], "transform": {"scale": [1, 1, 1]}}`},
		{"missing geometry", `{"type": "CityJSON", "CityObjects": {"a": {"type": "Building"}}, "vertices": []}`},
		{"float index", `{"type": "CityJSON", "CityObjects": {"a": {"geometry": [{"boundaries": [0.5]}]}}, "vertices": []}`},
		{"string index", `{"type": "CityJSON", "CityObjects": {"a": {"geometry": [{"boundaries": ["x"]}]}}, "vertices": []}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := parse.Parse([]byte(tc.doc))
			if err != nil {
				t.Fatal(err)
			}
			if _, err := Load(raw); !errors.Is(err, ErrSchema) {
				t.Errorf("expected ErrSchema, got %v", err)
			}
		})
	}
}

func TestNormalizeDocument(t *testing.T) {
	doc := mustLoad(t, `{
  "type": "CityJSON",
  "metadata": {"title": "t"},
  "transform": {"scale": [1, 1, 1], "translate": [0, 0, 0]},
  "CityObjects": {"z": {"geometry": []}, "a": {"geometry": [{"boundaries": [0]}]}},
  "vertices": [[1, 2, 3]]
}`)
	got, err := NormalizeDocument(doc)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"type", "metadata", "CityObjects"}, got.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"z", "a"}, ir.Get(got, "CityObjects").Keys()); diff != "" {
		t.Errorf("object order (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "z"}, doc.IDs()); diff != "" {
		t.Errorf("ids (-want +got):\n%s", diff)
	}
}
