package libdiff

// Reverse returns the delta undoing d: changes swap their old and new
// values, removals become additions and additions become removals.
//
// Reverse(d) applies to the result of applying d. Paths carry over
// unchanged since removals address the source and additions the
// destination.
func Reverse(d Delta) Delta {
	res := make(Delta, len(d))
	for k, b := range d {
		for path, op := range b {
			res.Add(k.Inverse(), path, &Op{Old: op.New, New: op.Old})
		}
	}
	return res
}
