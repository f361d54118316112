package libdiff

import (
	"strings"

	"github.com/signadot/cjdiff/ir/kpath"
)

// Extract returns the operations of d at or below prefix, with paths made
// relative to prefix. It undoes Remaster.
func (d Delta) Extract(prefix string) Delta {
	pk, err := kpath.Parse(prefix)
	if err != nil {
		return Delta{}
	}
	res := Delta{}
	for k, b := range d {
		for path, op := range b {
			kp, err := kpath.Parse(path)
			if err != nil || !kp.HasPrefix(pk) {
				continue
			}
			rest := kp
			for range pk.Len() {
				rest = rest.Next
			}
			res.Add(k, rest.String(), op)
		}
	}
	return res
}

// Roots returns the distinct first n segments of all paths in d, in
// ascending path order. Paths shorter than n are returned whole.
func (d Delta) Roots(n int) []string {
	seen := map[string]bool{}
	for _, b := range d {
		for path := range b {
			kp, err := kpath.Parse(path)
			if err != nil {
				continue
			}
			segs := kp.Segments()
			if len(segs) > n {
				segs = segs[:n]
			}
			var sb strings.Builder
			for i, seg := range segs {
				if i > 0 && seg.Field != nil {
					sb.WriteByte('.')
				}
				sb.WriteString(seg.SegmentString())
			}
			seen[sb.String()] = true
		}
	}
	res := make([]string, 0, len(seen))
	for r := range seen {
		res = append(res, r)
	}
	return SortPaths(res)
}
