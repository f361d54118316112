package cityjson

import (
	"fmt"
	"strconv"

	"github.com/signadot/cjdiff/ir"
)

// Boundary is a node of a geometry's boundaries: either a leaf holding a
// vertex index or a branch holding nested boundaries.
type Boundary struct {
	Index    *int
	Children []*Boundary
}

func (b *Boundary) IsLeaf() bool {
	return b.Index != nil
}

// boundaryError locates a malformed boundary node by its path below the
// boundaries member.
type boundaryError struct {
	path string
	msg  string
}

func (e *boundaryError) Error() string {
	return e.path + ": " + e.msg
}

// ParseBoundary reads a boundaries tree. Leaves must be integers; their
// range is checked by Dereference.
func ParseBoundary(n *ir.Node) (*Boundary, error) {
	b, err := parseBoundary(n, "")
	if err != nil {
		return nil, err
	}
	return b, nil
}

func parseBoundary(n *ir.Node, path string) (*Boundary, error) {
	switch n.Type {
	case ir.NumberType:
		if n.Int64 == nil {
			return nil, &boundaryError{path, "non-integer vertex index " + n.TypeName()}
		}
		i := int(*n.Int64)
		return &Boundary{Index: &i}, nil
	case ir.ArrayType:
		res := &Boundary{Children: make([]*Boundary, len(n.Values))}
		for i, v := range n.Values {
			c, err := parseBoundary(v, path+"["+strconv.Itoa(i)+"]")
			if err != nil {
				return nil, err
			}
			res.Children[i] = c
		}
		return res, nil
	}
	return nil, &boundaryError{path, "expected array or vertex index, got " + n.TypeName()}
}

// Dereference returns b with every leaf replaced by the rounded coordinate
// triple of the vertex it indexes.
func (b *Boundary) Dereference(verts [][3]float64) (*ir.Node, error) {
	if b.IsLeaf() {
		i := *b.Index
		if i < 0 || i >= len(verts) {
			return nil, fmt.Errorf("%w: vertex index %d, %d vertices", ErrReferenceOutOfRange, i, len(verts))
		}
		v := verts[i]
		return ir.FromSlice([]*ir.Node{
			ir.FromFloat(Round(v[0])),
			ir.FromFloat(Round(v[1])),
			ir.FromFloat(Round(v[2])),
		}), nil
	}
	vals := make([]*ir.Node, len(b.Children))
	for i, c := range b.Children {
		v, err := c.Dereference(verts)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return ir.FromSlice(vals), nil
}

// Round rounds x to 3 decimal places, correctly rounding its exact binary
// value.
func Round(x float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 3, 64), 64)
	if err != nil {
		return x
	}
	return r
}
