package cityjson

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/signadot/cjdiff/ir"
)

// Filter selects city objects with a boolean expression over the
// variables id, type and attributes.
type Filter struct {
	src string
	prg *vm.Program
}

func filterEnv(id, typ string, attrs map[string]any) map[string]any {
	return map[string]any{
		"id":         id,
		"type":       typ,
		"attributes": attrs,
	}
}

// CompileFilter compiles src, e.g.
//
//	type == "Building" && attributes.storeys > 2
func CompileFilter(src string) (*Filter, error) {
	prg, err := expr.Compile(src, expr.Env(filterEnv("", "", map[string]any{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("filter %q: %w", src, err)
	}
	return &Filter{src: src, prg: prg}, nil
}

func (f *Filter) String() string {
	return f.src
}

// Match evaluates f against the raw city object obj. A nil filter matches
// everything.
func (f *Filter) Match(id string, obj *ir.Node) (bool, error) {
	if f == nil {
		return true, nil
	}
	var typ string
	if tn := ir.Get(obj, "type"); tn != nil && tn.Type == ir.StringType {
		typ = tn.String
	}
	attrs := map[string]any{}
	if an := ir.Get(obj, "attributes"); an != nil && an.Type == ir.ObjectType {
		attrs = ir.ToAny(an).(map[string]any)
	}
	out, err := expr.Run(f.prg, filterEnv(id, typ, attrs))
	if err != nil {
		return false, fmt.Errorf("filter %q on %s: %w", f.src, ObjectPath(id), err)
	}
	ok, _ := out.(bool)
	return ok, nil
}
