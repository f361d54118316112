package libdiff

import (
	"github.com/signadot/cjdiff/debug"
	"github.com/signadot/cjdiff/ir"
	"github.com/signadot/cjdiff/ir/kpath"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// diffArray matches the elements of from and to by value and reports
// the rest as removals and additions.
//
//  1. every element is mapped to a rune naming its equivalence class
//  2. the two rune sequences are diffed
//  3. a run of deletions and insertions starting at the same index on both
//     sides is paired element by element, and the pairs are recursed into;
//     the surplus of the run is removed or added
//  4. any other run is removed and added whole
//
// Paired elements keep the same index in source and destination, so the
// paths below them address both documents.
func (d *differ) diffArray(path string, from, to *ir.Node) {
	if d.ignoreOrder {
		d.diffMultiset(path, from, to)
		return
	}
	c := &classifier{classes: map[uint64][]*ir.Node{}}
	fromRunes := c.runes(from.Values)
	toRunes := c.runes(to.Values)
	diffCfg := diffpatch.New()
	diffCfg.DiffTimeout = d.timeout
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)

	var h hunk
	fi, ti := 0, 0
	for i := range diffs {
		diff := &diffs[i]
		switch diff.Type {
		case diffpatch.DiffEqual:
			d.flush(path, from, to, &h)
			for range diff.Text {
				fi++
				ti++
			}
			h = hunk{from: fi, to: ti}
		case diffpatch.DiffDelete:
			for range diff.Text {
				h.dels++
				fi++
			}
		case diffpatch.DiffInsert:
			for range diff.Text {
				h.ins++
				ti++
			}
		}
	}
	d.flush(path, from, to, &h)
}

// diffMultiset matches the elements of from and to as multisets, ignoring
// their order. Per equivalence class the leading occurrences present on
// both sides are kept; the surplus in from is removed and the surplus in to
// is added. A removed and an added element at the same index are paired
// and recursed into.
func (d *differ) diffMultiset(path string, from, to *ir.Node) {
	c := &classifier{unordered: true, classes: map[uint64][]*ir.Node{}}
	fromRunes := c.runes(from.Values)
	toRunes := c.runes(to.Values)
	removed := surplus(fromRunes, toRunes)
	added := surplus(toRunes, fromRunes)
	if debug.Diff() {
		debug.Logf("diff: multiset at %q: -%d +%d\n", path, len(removed), len(added))
	}
	for i := range removed {
		if !added[i] {
			continue
		}
		delete(removed, i)
		delete(added, i)
		sub := kpath.Join(path, kpath.Index(i).SegmentString())
		d.diff(sub, from.Values[i], to.Values[i])
	}
	for i := range removed {
		sub := kpath.Join(path, kpath.Index(i).SegmentString())
		if d.exclude[sub] {
			continue
		}
		d.delta.Add(IterableItemRemoved, sub, &Op{Old: from.Values[i].Clone()})
	}
	for i := range added {
		sub := kpath.Join(path, kpath.Index(i).SegmentString())
		if d.exclude[sub] {
			continue
		}
		d.delta.Add(IterableItemAdded, sub, &Op{New: to.Values[i].Clone()})
	}
}

// surplus returns the indices of the elements of xs whose class occurs more
// often in xs than in ys, beyond the first occurrences.
func surplus(xs, ys []rune) map[int]bool {
	avail := map[rune]int{}
	for _, r := range ys {
		avail[r]++
	}
	res := map[int]bool{}
	for i, r := range xs {
		if avail[r] > 0 {
			avail[r]--
			continue
		}
		res[i] = true
	}
	return res
}

// hunk is a run of deletions and insertions between two equal runs.
type hunk struct {
	from, to  int
	dels, ins int
}

func (d *differ) flush(path string, from, to *ir.Node, h *hunk) {
	if h.dels == 0 && h.ins == 0 {
		return
	}
	paired := 0
	if h.from == h.to {
		paired = min(h.dels, h.ins)
	}
	if debug.Diff() {
		debug.Logf("diff: hunk at %q from %d to %d: -%d +%d paired %d\n",
			path, h.from, h.to, h.dels, h.ins, paired)
	}
	for k := range paired {
		sub := kpath.Join(path, kpath.Index(h.from+k).SegmentString())
		d.diff(sub, from.Values[h.from+k], to.Values[h.to+k])
	}
	for k := paired; k < h.dels; k++ {
		i := h.from + k
		sub := kpath.Join(path, kpath.Index(i).SegmentString())
		if d.exclude[sub] {
			continue
		}
		d.delta.Add(IterableItemRemoved, sub, &Op{Old: from.Values[i].Clone()})
	}
	for k := paired; k < h.ins; k++ {
		i := h.to + k
		sub := kpath.Join(path, kpath.Index(i).SegmentString())
		if d.exclude[sub] {
			continue
		}
		d.delta.Add(IterableItemAdded, sub, &Op{New: to.Values[i].Clone()})
	}
}

// classifier assigns one rune per equivalence class of values. Classes are
// found through Identity and confirmed with equality, so hash collisions
// never merge distinct values.
type classifier struct {
	unordered bool
	classes   map[uint64][]*ir.Node
	runeOf    map[*ir.Node]rune
	n         int
}

func (c *classifier) runes(vs []*ir.Node) []rune {
	if c.runeOf == nil {
		c.runeOf = map[*ir.Node]rune{}
	}
	res := make([]rune, len(vs))
	for i, v := range vs {
		res[i] = c.classify(v)
	}
	return res
}

func (c *classifier) classify(v *ir.Node) rune {
	h := v.Identity(c.unordered)
	for _, rep := range c.classes[h] {
		if c.equal(rep, v) {
			return c.runeOf[rep]
		}
	}
	r := classRune(c.n)
	c.n++
	c.classes[h] = append(c.classes[h], v)
	c.runeOf[v] = r
	return r
}

func (c *classifier) equal(a, b *ir.Node) bool {
	if c.unordered {
		return ir.EqualUnordered(a, b)
	}
	return ir.Equal(a, b)
}

// classRune maps a class number to a rune which survives conversion to
// and from a string, skipping the surrogate range.
func classRune(n int) rune {
	r := rune(n)
	if r >= 0xD800 {
		r += 0x800
	}
	if r > 0x10FFFF {
		panic("libdiff: too many distinct array elements")
	}
	return r
}
