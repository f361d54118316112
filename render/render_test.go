package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/cjdiff"
	"github.com/signadot/cjdiff/parse"
)

const a = `{
  "type": "CityJSON",
  "metadata": {"title": "x"},
  "CityObjects": {
    "b1": {"type": "Building", "attributes": {"storeys": 2}, "geometry": []},
    "b2": {"type": "Building", "geometry": []}
  },
  "vertices": []
}`

const b = `{
  "type": "CityJSON",
  "metadata": {"title": "y"},
  "CityObjects": {
    "b1": {"type": "Building", "attributes": {"storeys": 3, "h": 1.5}, "geometry": []},
    "b3": {"type": "Road", "geometry": []}
  },
  "vertices": []
}`

func TestResult(t *testing.T) {
	src, err := parse.Parse([]byte(a))
	if err != nil {
		t.Fatal(err)
	}
	dst, err := parse.Parse([]byte(b))
	if err != nil {
		t.Fatal(err)
	}
	res, err := cjdiff.Diff(context.Background(), src, dst, nil)
	if err != nil {
		t.Fatal(err)
	}
	buf := bytes.NewBuffer(nil)
	if err := New(buf).Result(res); err != nil {
		t.Fatal(err)
	}
	want := `
--- a/CityObjects.b1
+++ b/CityObjects.b1
@@ attributes.storeys @@ changed
-2
+3
@@ attributes.h @@ added
+1.5

--- a/CityObjects.b2
@@ geometry @@ deleted
-[]
@@ type @@ deleted
-"Building"

+++ b/CityObjects.b3
@@ geometry @@ added
+[]
@@ type @@ added
+"Road"

--- a
+++ b
@@ metadata.title @@ changed
-"x"
+"y"

1 changed, 1 removed, 1 added, 0 unchanged
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestColors(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	d := cjdiff.DiffEntity("x", nil, nil)
	if err := New(buf, WithColors(NewColors())).Delta("a/x", "b/x", d); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\x1b[1m--- a/x") {
		t.Errorf("header not bold: %q", buf.String())
	}
}
