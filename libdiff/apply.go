package libdiff

import (
	"errors"
	"fmt"
	"slices"

	"github.com/signadot/cjdiff/debug"
	"github.com/signadot/cjdiff/ir"
	"github.com/signadot/cjdiff/ir/kpath"
)

var ErrApply = errors.New("apply")

type step struct {
	kind Kind
	path string
	kp   *kpath.KPath
	op   *Op
}

// Apply applies d to a copy of root and returns the copy. It runs in three
// phases: value and type changes, then removals in descending path order,
// then additions in ascending path order. The value being replaced or
// removed must equal the one recorded in d.
//
// All errors wrap ErrApply and name the offending path.
func Apply(root *ir.Node, d Delta) (*ir.Node, error) {
	res := root.Clone()
	res.Parent = nil
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
	slices.Reverse(removals)

	for _, s := range changes {
		if res, err = applyChange(res, s); err != nil {
			return nil, err
		}
	}
	for _, s := range removals {
		if err := applyRemoval(res, s); err != nil {
			return nil, err
		}
	}
	for _, s := range additions {
		if err := applyAddition(res, s); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// steps returns the operations of the kinds selected by sel in ascending
// path order.
func steps(d Delta, sel func(Kind) bool) ([]step, error) {
	var res []step
	for _, k := range Kinds() {
		if !sel(k) {
			continue
		}
		for path, op := range d[k] {
			kp, err := kpath.Parse(path)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrApply, k, err)
			}
			res = append(res, step{kind: k, path: path, kp: kp, op: op})
		}
	}
	slices.SortFunc(res, func(a, b step) int {
		return a.kp.Compare(b.kp)
	})
	return res, nil
}

func applyChange(root *ir.Node, s step) (*ir.Node, error) {
	if s.op.Old == nil || s.op.New == nil {
		return nil, fmt.Errorf("%w: %s at %q: missing old or new value", ErrApply, s.kind, s.path)
	}
	target, err := root.Lookup(s.kp)
	if err != nil {
		return nil, fmt.Errorf("%w: %s at %q: %w", ErrApply, s.kind, s.path, err)
	}
	if !ir.Equal(target, s.op.Old) {
		return nil, fmt.Errorf("%w: %s at %q: current value %s does not match recorded old value",
			ErrApply, s.kind, s.path, target.TypeName())
	}
	if debug.Patch() {
		debug.Logf("patch: %s at %q: %v -> %v\n", s.kind, s.path, s.op.Old, s.op.New)
	}
	val := s.op.New.Clone()
	if s.kp == nil {
		val.Parent = nil
		return val, nil
	}
	target.Replace(val)
	return root, nil
}

// container resolves the parent of the item s addresses.
func container(root *ir.Node, s step) (*ir.Node, *kpath.KPath, error) {
	if s.kp == nil {
		return nil, nil, fmt.Errorf("%w: %s at root", ErrApply, s.kind)
	}
	parent, err := root.Lookup(s.kp.Parent())
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s at %q: %w", ErrApply, s.kind, s.path, err)
	}
	last := s.kp.Last()
	switch s.kind {
	case DictionaryItemRemoved, DictionaryItemAdded:
		if last.Field == nil || parent.Type != ir.ObjectType {
			return nil, nil, fmt.Errorf("%w: %s at %q: not an object field", ErrApply, s.kind, s.path)
		}
	case IterableItemRemoved, IterableItemAdded:
		if last.Index == nil || parent.Type != ir.ArrayType {
			return nil, nil, fmt.Errorf("%w: %s at %q: not an array element", ErrApply, s.kind, s.path)
		}
	}
	return parent, last, nil
}

func applyRemoval(root *ir.Node, s step) error {
	parent, last, err := container(root, s)
	if err != nil {
		return err
	}
	var cur *ir.Node
	if last.Field != nil {
		cur = ir.Get(parent, *last.Field)
	} else if i := *last.Index; i < len(parent.Values) {
		cur = parent.Values[i]
	}
	if cur == nil {
		return fmt.Errorf("%w: %s at %q: no such item", ErrApply, s.kind, s.path)
	}
	if s.op.Old != nil && !ir.Equal(cur, s.op.Old) {
		return fmt.Errorf("%w: %s at %q: current value does not match recorded value", ErrApply, s.kind, s.path)
	}
	if debug.Patch() {
		debug.Logf("patch: %s at %q\n", s.kind, s.path)
	}
	if last.Field != nil {
		parent.DeleteField(*last.Field)
		return nil
	}
	if err := parent.RemoveAt(*last.Index); err != nil {
		return fmt.Errorf("%w: %s at %q: %w", ErrApply, s.kind, s.path, err)
	}
	return nil
}

func applyAddition(root *ir.Node, s step) error {
	if s.op.New == nil {
		return fmt.Errorf("%w: %s at %q: missing value", ErrApply, s.kind, s.path)
	}
	parent, last, err := container(root, s)
	if err != nil {
		return err
	}
	if debug.Patch() {
		debug.Logf("patch: %s at %q: %v\n", s.kind, s.path, s.op.New)
	}
	val := s.op.New.Clone()
	if last.Field != nil {
		if parent.FieldIndex(*last.Field) >= 0 {
			return fmt.Errorf("%w: %s at %q: field already present", ErrApply, s.kind, s.path)
		}
		return parent.SetField(*last.Field, val)
	}
	if err := parent.InsertAt(*last.Index, val); err != nil {
		return fmt.Errorf("%w: %s at %q: %w", ErrApply, s.kind, s.path, err)
	}
	return nil
}
