package encode

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"

	"github.com/signadot/cjdiff/ir"
)

func TestEncodeYAML(t *testing.T) {
	node := ir.FromKeyVals([]ir.KeyVal{
		{Key: "name", Val: ir.FromString("b1")},
		{Key: "tags", Val: ir.FromSlice([]*ir.Node{ir.FromString("x"), ir.FromString("y: z")})},
		{Key: "attributes", Val: ir.FromKeyVals([]ir.KeyVal{{Key: "roof", Val: ir.FromBool(true)}})},
		{Key: "empty", Val: ir.Null()},
	})
	buf := bytes.NewBuffer(nil)
	if err := EncodeYAML(node, buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	var got map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("%v\n%s", err, out)
	}
	want := map[string]any{
		"name":       "b1",
		"tags":       []any{"x", "y: z"},
		"attributes": map[string]any{"roof": true},
		"empty":      nil,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	last := -1
	for _, k := range []string{"name:", "tags:", "attributes:", "empty:"} {
		i := strings.Index(out, k)
		if i <= last {
			t.Errorf("%s out of order in\n%s", k, out)
		}
		last = i
	}
}
