package libdiff

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/signadot/cjdiff/ir"
	"github.com/signadot/cjdiff/ir/kpath"
)

// Op is the payload of one operation. Changes carry Old and New, removals
// carry Old and additions carry New.
type Op struct {
	Old *ir.Node
	New *ir.Node
}

// Bucket maps kinded paths to operations of a single kind.
type Bucket map[string]*Op

// Delta is an aggregate diff: operations grouped by kind, keyed by path.
type Delta map[Kind]Bucket

// Add records op at path under kind k, replacing any previous entry.
func (d Delta) Add(k Kind, path string, op *Op) {
	b := d[k]
	if b == nil {
		b = Bucket{}
		d[k] = b
	}
	b[path] = op
}

// Get returns the operation of kind k at path, or nil.
func (d Delta) Get(k Kind, path string) *Op {
	return d[k][path]
}

// Count returns the number of operations of kind k.
func (d Delta) Count(k Kind) int {
	return len(d[k])
}

// Len returns the number of operations of all kinds.
func (d Delta) Len() int {
	n := 0
	for _, b := range d {
		n += len(b)
	}
	return n
}

func (d Delta) Empty() bool {
	return d.Len() == 0
}

// Paths returns the paths of kind k in ascending path order.
func (d Delta) Paths(k Kind) []string {
	return SortPaths(slices.Collect(maps.Keys(d[k])))
}

// Clone returns a deep copy of d.
func (d Delta) Clone() Delta {
	res := make(Delta, len(d))
	for k, b := range d {
		for path, op := range b {
			res.Add(k, path, op.clone())
		}
	}
	return res
}

func (op *Op) clone() *Op {
	res := &Op{}
	if op.Old != nil {
		res.Old = op.Old.Clone()
	}
	if op.New != nil {
		res.New = op.New.Clone()
	}
	return res
}

// Remaster returns d with every path re-rooted under prefix. A diff
// computed between two sub-trees is thereby addressed against the document
// that contains them.
func (d Delta) Remaster(prefix string) Delta {
	res := make(Delta, len(d))
	for k, b := range d {
		nb := make(Bucket, len(b))
		for path, op := range b {
			nb[kpath.Join(prefix, path)] = op
		}
		res[k] = nb
	}
	return res
}

// Merge folds partial into into and returns into, allocating it when nil.
// Buckets are unioned path by path; where both hold an operation at the
// same path, the one from partial wins.
func Merge(partial, into Delta) Delta {
	if into == nil {
		into = Delta{}
	}
	for k, b := range partial {
		for path, op := range b {
			into.Add(k, path, op)
		}
	}
	return into
}

// SortPaths sorts kinded paths in ascending path order in place and
// returns them. Unparseable paths sort after the others, lexically.
func SortPaths(paths []string) []string {
	parsed := make(map[string]*kpath.KPath, len(paths))
	bad := make(map[string]bool)
	for _, p := range paths {
		kp, err := kpath.Parse(p)
		if err != nil {
			bad[p] = true
			continue
		}
		parsed[p] = kp
	}
	slices.SortFunc(paths, func(a, b string) int {
		switch {
		case bad[a] && bad[b]:
			return strings.Compare(a, b)
		case bad[a]:
			return 1
		case bad[b]:
			return -1
		}
		return parsed[a].Compare(parsed[b])
	})
	return paths
}

const (
	oldValueField = "old_value"
	newValueField = "new_value"
	oldTypeField  = "old_type"
	newTypeField  = "new_type"
)

// ToIR returns the serializable form of d: an object keyed by kind name,
// omitting empty kinds.
func (d Delta) ToIR() *ir.Node {
	kvs := []ir.KeyVal{}
	for _, k := range Kinds() {
		if d.Count(k) == 0 {
			continue
		}
		paths := d.Paths(k)
		items := make([]ir.KeyVal, 0, len(paths))
		for _, path := range paths {
			items = append(items, ir.KeyVal{Key: path, Val: opToIR(k, d[k][path])})
		}
		kvs = append(kvs, ir.KeyVal{Key: k.String(), Val: ir.FromKeyVals(items)})
	}
	return ir.FromKeyVals(kvs)
}

func opToIR(k Kind, op *Op) *ir.Node {
	switch {
	case k.IsRemoval():
		return op.Old.Clone()
	case k.IsAddition():
		return op.New.Clone()
	}
	kvs := []ir.KeyVal{}
	if k == TypeChanges {
		kvs = append(kvs,
			ir.KeyVal{Key: oldTypeField, Val: ir.FromString(op.Old.TypeName())},
			ir.KeyVal{Key: newTypeField, Val: ir.FromString(op.New.TypeName())})
	}
	kvs = append(kvs,
		ir.KeyVal{Key: oldValueField, Val: op.Old.Clone()},
		ir.KeyVal{Key: newValueField, Val: op.New.Clone()})
	return ir.FromKeyVals(kvs)
}

// FromIR reads a Delta from the form produced by ToIR.
func FromIR(node *ir.Node) (Delta, error) {
	if node.Type != ir.ObjectType {
		return nil, fmt.Errorf("delta: expected object, got %s", node.Type)
	}
	res := Delta{}
	for i, f := range node.Fields {
		k, err := ParseKind(f.String)
		if err != nil {
			return nil, fmt.Errorf("delta: %w", err)
		}
		bucket := node.Values[i]
		if bucket.Type != ir.ObjectType {
			return nil, fmt.Errorf("delta: %s: expected object, got %s", k, bucket.Type)
		}
		for j, pf := range bucket.Fields {
			path := pf.String
			if _, err := kpath.Parse(path); err != nil {
				return nil, fmt.Errorf("delta: %s: %w", k, err)
			}
			op, err := opFromIR(k, bucket.Values[j])
			if err != nil {
				return nil, fmt.Errorf("delta: %s at %q: %w", k, path, err)
			}
			res.Add(k, path, op)
		}
	}
	return res, nil
}

func opFromIR(k Kind, v *ir.Node) (*Op, error) {
	switch {
	case k.IsRemoval():
		return &Op{Old: v.Clone()}, nil
	case k.IsAddition():
		return &Op{New: v.Clone()}, nil
	}
	if v.Type != ir.ObjectType {
		return nil, fmt.Errorf("expected object, got %s", v.Type)
	}
	oldV, newV := ir.Get(v, oldValueField), ir.Get(v, newValueField)
	if oldV == nil || newV == nil {
		return nil, fmt.Errorf("missing %s or %s", oldValueField, newValueField)
	}
	return &Op{Old: oldV.Clone(), New: newV.Clone()}, nil
}
