// Package libdiff computes, transforms and applies structural differences
// between IR trees.
//
// # Usage
//
//	// Compute a diff between two nodes
//	d := libdiff.Diff(oldNode, newNode, libdiff.IgnoreOrder(true))
//
//	// Re-root it and fold it into a running aggregate
//	agg = libdiff.Merge(d.Remaster("CityObjects.b1"), agg)
//
//	// Apply it
//	patched, err := libdiff.Apply(oldNode, agg)
//
// A [Delta] maps each operation [Kind] to a set of kinded paths (see
// package kpath) and their payloads. Paths of removals address the source
// tree, paths of additions address the destination tree and paths of
// value and type changes address both: the differ only descends into
// array elements which sit at the same index on both sides, so every
// prefix of a reported path resolves identically in source and
// destination.
//
// Apply runs in three phases: changes, then removals in descending path
// order, then additions in ascending path order. Under that order every
// path resolves against the partially patched tree.
//
// # Related Packages
//
//   - github.com/signadot/cjdiff/ir - IR representation
//   - github.com/signadot/cjdiff/ir/kpath - Paths used as Delta keys
package libdiff
