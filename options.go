package cjdiff

import (
	"time"

	"github.com/signadot/cjdiff/cityjson"
	"github.com/signadot/cjdiff/libdiff"
)

// Options configures Diff. The zero value runs the fast, sequential,
// order-sensitive pipeline with no limits.
type Options struct {
	// Slow diffs the whole raw documents, minus the vertex table, with no
	// fingerprinting.
	Slow bool
	// IgnoreOrder compares arrays as multisets. Arrays which are
	// permutations of one another then yield no operations, so a patch
	// does not reproduce the permutation.
	IgnoreOrder bool
	// IncludeVertices also diffs the vertex table.
	IncludeVertices bool
	// MaxEntityDiffs caps the number of changed objects which are diffed;
	// 0 means no cap. Ids beyond the cap are listed in Result.Truncated.
	MaxEntityDiffs int
	// Workers bounds the concurrency of fingerprinting and object diffing.
	// Values below 2 run sequentially.
	Workers int
	// Filter restricts comparison to the city objects it matches on
	// either side.
	Filter *cityjson.Filter
	// DiffTimeout bounds the matching of a single pair of arrays.
	DiffTimeout time.Duration
}

func (o *Options) diffOpts() []libdiff.DiffOption {
	return []libdiff.DiffOption{
		libdiff.IgnoreOrder(o.IgnoreOrder),
		libdiff.DiffTimeout(o.DiffTimeout),
	}
}
