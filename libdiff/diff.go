package libdiff

import (
	"time"

	"github.com/signadot/cjdiff/debug"
	"github.com/signadot/cjdiff/ir"
	"github.com/signadot/cjdiff/ir/kpath"
)

type diffOpts struct {
	ignoreOrder bool
	timeout     time.Duration
	exclude     map[string]bool
}

type DiffOption func(*diffOpts)

// IgnoreOrder makes array comparison order-insensitive: arrays holding the
// same elements with the same multiplicities are equal and yield no
// operations.
func IgnoreOrder(v bool) DiffOption {
	return func(o *diffOpts) { o.ignoreOrder = v }
}

// DiffTimeout bounds the time spent matching a single pair of arrays. On
// expiry the match is still valid but may be coarser than minimal. Zero,
// the default, means no bound.
func DiffTimeout(d time.Duration) DiffOption {
	return func(o *diffOpts) { o.timeout = d }
}

// Exclude skips the given root-relative paths, and everything below them,
// on both sides.
func Exclude(paths ...string) DiffOption {
	return func(o *diffOpts) {
		if o.exclude == nil {
			o.exclude = map[string]bool{}
		}
		for _, p := range paths {
			if kp, err := kpath.Parse(p); err == nil {
				p = kp.String()
			}
			o.exclude[p] = true
		}
	}
}

type differ struct {
	diffOpts
	delta Delta
}

// Diff computes the operations turning from into to. Paths are relative to
// the roots of from and to; a difference at the roots themselves is
// recorded at the empty path.
func Diff(from, to *ir.Node, opts ...DiffOption) Delta {
	d := &differ{delta: Delta{}}
	for _, opt := range opts {
		opt(&d.diffOpts)
	}
	d.diff("", from, to)
	if debug.Diff() {
		debug.Logf("diff: %d operations\n", d.delta.Len())
	}
	return d.delta
}

func (d *differ) diff(path string, from, to *ir.Node) {
	if d.exclude[path] {
		return
	}
	if from.TypeName() != to.TypeName() {
		d.delta.Add(TypeChanges, path, &Op{Old: from.Clone(), New: to.Clone()})
		return
	}
	switch from.Type {
	case ir.ObjectType:
		d.diffObject(path, from, to)
	case ir.ArrayType:
		d.diffArray(path, from, to)
	default:
		if !ir.Equal(from, to) {
			d.delta.Add(ValuesChanged, path, &Op{Old: from.Clone(), New: to.Clone()})
		}
	}
}

func (d *differ) diffObject(path string, from, to *ir.Node) {
	for i, f := range from.Fields {
		sub := kpath.Join(path, kpath.QuoteField(f.String))
		if d.exclude[sub] {
			continue
		}
		if tv := ir.Get(to, f.String); tv != nil {
			d.diff(sub, from.Values[i], tv)
			continue
		}
		d.delta.Add(DictionaryItemRemoved, sub, &Op{Old: from.Values[i].Clone()})
	}
	for i, f := range to.Fields {
		if from.FieldIndex(f.String) >= 0 {
			continue
		}
		sub := kpath.Join(path, kpath.QuoteField(f.String))
		if d.exclude[sub] {
			continue
		}
		d.delta.Add(DictionaryItemAdded, sub, &Op{New: to.Values[i].Clone()})
	}
}
