package changeset

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/cjdiff/cityjson"
	"github.com/signadot/cjdiff/parse"
)

func TestOfKeyOrder(t *testing.T) {
	a, err := parse.Parse([]byte(`{"type": "Building", "attributes": {"h": 1.5, "n": "x"}, "geometry": [{"lod": "2", "boundaries": [[1.0, 2.0, 3.0]]}]}`))
	if err != nil {
		t.Fatal(err)
	}
	b, err := parse.Parse([]byte(`{"geometry": [{"boundaries": [[1.0, 2.0, 3.0]], "lod": "2"}], "attributes": {"n": "x", "h": 1.5}, "type": "Building"}`))
	if err != nil {
		t.Fatal(err)
	}
	fa, err := Of(a)
	if err != nil {
		t.Fatal(err)
	}
	fb, err := Of(b)
	if err != nil {
		t.Fatal(err)
	}
	if fa != fb {
		t.Errorf("fingerprints differ: %s %s", fa, fb)
	}
	if len(fa.String()) != 40 {
		t.Errorf("bad hex form %q", fa)
	}
	c, _ := parse.Parse([]byte(`{"geometry": [{"boundaries": [[1.0, 2.0, 3.0]], "lod": "2"}], "attributes": {"n": "x", "h": 1.5}, "type": "Bridge"}`))
	if fc, _ := Of(c); fc == fa {
		t.Errorf("distinct objects share fingerprint %s", fc)
	}
}

func TestLocate(t *testing.T) {
	fp := func(b byte) Fingerprint { return Fingerprint{b} }
	src := Fingerprints{"a": fp(1), "b": fp(2), "c": fp(3), "d": fp(4)}
	dst := Fingerprints{"b": fp(2), "c": fp(9), "e": fp(5), "a": fp(1)}
	cs := Locate(src, dst)
	want := &ChangeSet{
		Added:     []string{"e"},
		Removed:   []string{"d"},
		Changed:   []string{"c"},
		Unchanged: []string{"a", "b"},
	}
	if diff := cmp.Diff(want, cs); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	seen := map[string]int{}
	for _, ids := range [][]string{cs.Added, cs.Removed, cs.Changed, cs.Unchanged} {
		for _, id := range ids {
			seen[id]++
		}
	}
	for _, fps := range []Fingerprints{src, dst} {
		for id := range fps {
			if seen[id] != 1 {
				t.Errorf("%s classified %d times", id, seen[id])
			}
		}
	}
	if cs.Empty() {
		t.Error("not empty")
	}
	if !Locate(src, src).Empty() {
		t.Error("identical inputs must give an empty change set")
	}
}

const model = `{
  "type": "CityJSON",
  "transform": {"scale": [0.5, 0.5, 0.5], "translate": [0, 0, 0]},
  "CityObjects": {
    "b1": {"type": "Building", "geometry": [{"boundaries": [[0, 1, 2]]}]},
    "b2": {"type": "Building", "geometry": [{"boundaries": [[2, 1, 0]]}]},
    "b3": {"type": "Building", "geometry": [{"boundaries": [[0, 1, 2]]}]},
    "r1": {"type": "Road", "geometry": []}
  },
  "vertices": [[0, 0, 0], [2, 0, 0], [2, 2, 0]]
}`

// same geometry as model with the vertex table reordered
const reindexed = `{
  "type": "CityJSON",
  "transform": {"scale": [0.5, 0.5, 0.5], "translate": [0, 0, 0]},
  "CityObjects": {
    "b1": {"type": "Building", "geometry": [{"boundaries": [[2, 1, 0]]}]},
    "b2": {"type": "Building", "geometry": [{"boundaries": [[0, 1, 2]]}]},
    "b3": {"type": "Building", "geometry": [{"boundaries": [[2, 1, 0]]}]},
    "r1": {"type": "Road", "geometry": []}
  },
  "vertices": [[2, 2, 0], [2, 0, 0], [0, 0, 0]]
}`

func load(t *testing.T, s string) *cityjson.Document {
	t.Helper()
	raw, err := parse.Parse([]byte(s))
	if err != nil {
		t.Fatal(err)
	}
	doc, err := cityjson.Load(raw)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestComputeIgnoresVertexOrder(t *testing.T) {
	a, b := load(t, model), load(t, reindexed)
	for _, workers := range []int{1, 4} {
		fa, err := Compute(context.Background(), a, workers)
		if err != nil {
			t.Fatal(err)
		}
		fb, err := Compute(context.Background(), b, workers)
		if err != nil {
			t.Fatal(err)
		}
		if cs := Locate(fa, fb); !cs.Empty() {
			t.Errorf("workers=%d: %+v", workers, cs)
		}
		if fa["b1"] != fa["b3"] {
			t.Errorf("identical objects b1 and b3 differ")
		}
		if fa["b1"] == fa["b2"] {
			t.Errorf("b1 and b2 must differ")
		}
	}
}

func TestComputeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Compute(ctx, load(t, model), 1); err == nil {
		t.Error("expected error from canceled context")
	}
}
