package libdiff

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/cjdiff/encode"
	"github.com/signadot/cjdiff/ir"
	"github.com/signadot/cjdiff/ir/kpath"
	"github.com/signadot/cjdiff/parse"

	jsonpatch "github.com/evanphx/json-patch"
)

// ToJSONPatch renders d as an RFC 6902 JSON Patch whose operations run in
// the same order as Apply: a test and a replace per change, a test and a
// remove per removal, then an add per addition.
//
// A change at the root path has no JSON Patch form and is an error.
func ToJSONPatch(d Delta) (*ir.Node, error) {
	changes, err := steps(d, Kind.IsChange)
	if err != nil {
		return nil, err
	}
	removals, err := steps(d, Kind.IsRemoval)
	if err != nil {
		return nil, err
	}
	additions, err := steps(d, Kind.IsAddition)
	if err != nil {
		return nil, err
	}
	ops := []*ir.Node{}
	for _, s := range changes {
		if s.kp == nil {
			return nil, fmt.Errorf("%s at root has no JSON Patch form", s.kind)
		}
		ptr := Pointer(s.kp)
		ops = append(ops, patchOp("test", ptr, s.op.Old), patchOp("replace", ptr, s.op.New))
	}
	for i := len(removals) - 1; i >= 0; i-- {
		s := removals[i]
		ptr := Pointer(s.kp)
		if s.op.Old != nil {
			ops = append(ops, patchOp("test", ptr, s.op.Old))
		}
		ops = append(ops, patchOp("remove", ptr, nil))
	}
	for _, s := range additions {
		ops = append(ops, patchOp("add", Pointer(s.kp), s.op.New))
	}
	return ir.FromSlice(ops), nil
}

func patchOp(op, ptr string, val *ir.Node) *ir.Node {
	kvs := []ir.KeyVal{
		{Key: "op", Val: ir.FromString(op)},
		{Key: "path", Val: ir.FromString(ptr)},
	}
	if val != nil {
		kvs = append(kvs, ir.KeyVal{Key: "value", Val: val.Clone()})
	}
	return ir.FromKeyVals(kvs)
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Pointer returns the RFC 6901 JSON Pointer addressing kp.
func Pointer(kp *kpath.KPath) string {
	var sb strings.Builder
	for x := kp; x != nil; x = x.Next {
		sb.WriteByte('/')
		switch {
		case x.Field != nil:
			sb.WriteString(pointerEscaper.Replace(*x.Field))
		case x.Index != nil:
			sb.WriteString(strconv.Itoa(*x.Index))
		}
	}
	return sb.String()
}

// ApplyJSONPatch applies the JSON Patch patch to a copy of doc.
func ApplyJSONPatch(doc, patch *ir.Node) (*ir.Node, error) {
	docBytes, err := wire(doc)
	if err != nil {
		return nil, err
	}
	patchBytes, err := wire(patch)
	if err != nil {
		return nil, err
	}
	ops, err := jsonpatch.DecodePatch(patchBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrApply, err)
	}
	out, err := ops.Apply(docBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrApply, err)
	}
	return parse.Parse(out)
}

func wire(node *ir.Node) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(node, buf, encode.EncodeWire(true)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
