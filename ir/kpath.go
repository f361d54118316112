package ir

import (
	"fmt"

	"github.com/signadot/cjdiff/ir/kpath"
)

// KPath returns the kinded path string representation of this node's position in the tree.
//
// Examples:
//   - Root node → ""
//   - Object field "a" → "a"
//   - Array element at index 0 → "[0]"
//   - Mixed "a[0].b" → "a[0].b"
func (node *Node) KPath() string {
	if node.Parent == nil {
		return ""
	}
	prefix := node.Parent.KPath()
	switch node.Parent.Type {
	case ObjectType:
		return kpath.Join(prefix, kpath.QuoteField(node.ParentField))
	case ArrayType:
		return kpath.Join(prefix, kpath.Index(node.ParentIndex).SegmentString())
	default:
		panic("parent but not in container")
	}
}

// Lookup returns the node at kp within node itself (not a copy).
func (node *Node) Lookup(kp *kpath.KPath) (*Node, error) {
	res := node
	for x := kp; x != nil; x = x.Next {
		switch {
		case x.Index != nil:
			if res.Type != ArrayType {
				return nil, fmt.Errorf("at %q: expected array, got %s", res.KPath(), res.Type)
			}
			index := *x.Index
			if index < 0 || index >= len(res.Values) {
				return nil, fmt.Errorf("at %q: index out of bounds %d (len %d)", res.KPath(), index, len(res.Values))
			}
			res = res.Values[index]
		case x.Field != nil:
			if res.Type != ObjectType {
				return nil, fmt.Errorf("at %q: expected object, got %s", res.KPath(), res.Type)
			}
			next := Get(res, *x.Field)
			if next == nil {
				return nil, fmt.Errorf("at %q: no field %q", res.KPath(), *x.Field)
			}
			res = next
		default:
			return nil, fmt.Errorf("empty path segment")
		}
	}
	return res, nil
}
