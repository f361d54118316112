package parse

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/cjdiff/encode"
	"github.com/signadot/cjdiff/ir"
)

func TestParse(t *testing.T) {
	n, err := Parse([]byte(`{"b": 1, "a": [1.5, 2.0, -3, true, null, "s"], "c": {"x y": "é"}}`))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"b", "a", "c"}, n.Keys()); diff != "" {
		t.Errorf("key order (-want +got):\n%s", diff)
	}
	a := ir.Get(n, "a")
	var types []string
	for _, v := range a.Values {
		types = append(types, v.TypeName())
	}
	if diff := cmp.Diff([]string{"float", "float", "int", "bool", "null", "str"}, types); diff != "" {
		t.Errorf("types (-want +got):\n%s", diff)
	}
	if got := encode.MustString(n); got != `{"b":1,"a":[1.5,2.0,-3,true,null,"s"],"c":{"x y":"é"}}` {
		t.Errorf("round trip: %s", got)
	}
}

func TestParseNumbers(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"0", int64(0)},
		{"-0", int64(0)},
		{"9223372036854775807", int64(9223372036854775807)},
		{"9223372036854775808", float64(9223372036854775808)},
		{"123456789012345678901234567890", 1.2345678901234568e+29},
		{"1E+2", 100.0},
		{"1e-05", 1e-05},
		{"2.5e3", 2500.0},
		{"-0.001", -0.001},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			n, err := Parse([]byte(tt.in))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, ir.ToAny(n)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseEncodedFloats(t *testing.T) {
	for _, f := range []float64{1e-05, 3.2e-7, 1e20, -4.5e16, 0.0001} {
		s := encode.FormatFloat(f)
		n, err := Parse([]byte(s))
		if err != nil {
			t.Fatalf("%s: %v", s, err)
		}
		if n.Float64 == nil || *n.Float64 != f {
			t.Errorf("%s read back as %v", s, ir.ToAny(n))
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{
		`{"a": 1, "a": 2}`,
		`{"a": [1, 2}`,
		"",
		"   ",
		`{"a": 1} {"b": 2}`,
		`{a: 1}`,
		`{"a": 1,}`,
		`[1, 2,]`,
		`0x10`,
		`'a'`,
		`01`,
		"a: 1\nb: 2\n",
		`NaN`,
		`1e400`,
		"{\"a\": \"\xff\"}",
		`[1`,
	} {
		if _, err := Parse([]byte(in)); !errors.Is(err, ErrParse) {
			t.Errorf("%q: expected ErrParse, got %v", in, err)
		}
	}
}
