package cjdiff

import (
	"fmt"

	"github.com/signadot/cjdiff/ir"
	"github.com/signadot/cjdiff/libdiff"
)

// Representation names the document form a delta addresses. Deltas only
// ever address raw documents, never normalized ones.
const Representation = "raw"

const (
	representationField = "representation"
	truncatedField      = "truncated"
)

// Artifact is the serialized outcome of a diff: a delta, the
// representation it addresses, and the changed ids it leaves out.
type Artifact struct {
	Delta     libdiff.Delta
	Truncated []string
}

// ToIR returns the JSON form of a: the operation buckets of the delta
// plus a representation member, and a truncated member when a is
// incomplete.
func (a *Artifact) ToIR() *ir.Node {
	res := a.Delta.ToIR()
	res.SetField(representationField, ir.FromString(Representation))
	if len(a.Truncated) != 0 {
		ids := make([]*ir.Node, len(a.Truncated))
		for i, id := range a.Truncated {
			ids[i] = ir.FromString(id)
		}
		res.SetField(truncatedField, ir.FromSlice(ids))
	}
	return res
}

// ArtifactFromIR reads the form written by ToIR. An artifact addressing
// any representation other than Representation, or none, fails with
// libdiff.ErrApply.
func ArtifactFromIR(node *ir.Node) (*Artifact, error) {
	if node.Type != ir.ObjectType {
		return nil, fmt.Errorf("artifact: expected object, got %s", node.Type)
	}
	rep := ir.Get(node, representationField)
	switch {
	case rep == nil:
		return nil, fmt.Errorf("%w: artifact has no %s", libdiff.ErrApply, representationField)
	case rep.Type != ir.StringType || rep.String != Representation:
		return nil, fmt.Errorf("%w: artifact addresses representation %v, expected %q",
			libdiff.ErrApply, ir.ToAny(rep), Representation)
	}
	a := &Artifact{}
	if tn := ir.Get(node, truncatedField); tn != nil {
		if tn.Type != ir.ArrayType {
			return nil, fmt.Errorf("artifact: %s is %s, not an array", truncatedField, tn.Type)
		}
		for _, v := range tn.Values {
			if v.Type != ir.StringType {
				return nil, fmt.Errorf("artifact: %s holds %s", truncatedField, v.Type)
			}
			a.Truncated = append(a.Truncated, v.String)
		}
	}
	d, err := libdiff.FromIR(node.Without(representationField, truncatedField))
	if err != nil {
		return nil, fmt.Errorf("artifact: %w", err)
	}
	a.Delta = d
	return a, nil
}
