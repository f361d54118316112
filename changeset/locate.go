package changeset

import (
	"slices"
)

// ChangeSet classifies every id of two documents. The four slices are
// sorted, pairwise disjoint, and together hold every id of either side.
type ChangeSet struct {
	Added     []string
	Removed   []string
	Changed   []string
	Unchanged []string
}

// Locate compares the fingerprints of a source and a destination document.
func Locate(src, dst Fingerprints) *ChangeSet {
	cs := &ChangeSet{}
	for id, sfp := range src {
		dfp, ok := dst[id]
		switch {
		case !ok:
			cs.Removed = append(cs.Removed, id)
		case sfp != dfp:
			cs.Changed = append(cs.Changed, id)
		default:
			cs.Unchanged = append(cs.Unchanged, id)
		}
	}
	for id := range dst {
		if _, ok := src[id]; !ok {
			cs.Added = append(cs.Added, id)
		}
	}
	slices.Sort(cs.Added)
	slices.Sort(cs.Removed)
	slices.Sort(cs.Changed)
	slices.Sort(cs.Unchanged)
	return cs
}

// Empty reports whether no id was added, removed or changed.
func (cs *ChangeSet) Empty() bool {
	return len(cs.Added) == 0 && len(cs.Removed) == 0 && len(cs.Changed) == 0
}
