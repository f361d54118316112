package cjdiff

import (
	"github.com/signadot/cjdiff/changeset"
	"github.com/signadot/cjdiff/ir"
	"github.com/signadot/cjdiff/libdiff"
)

// Result is the outcome of Diff.
type Result struct {
	// Delta turns the source document into the destination document.
	Delta libdiff.Delta
	// ChangeSet classifies city object ids. It is nil in slow mode.
	ChangeSet *changeset.ChangeSet
	// Entities holds the delta of each diffed changed object, relative to
	// the object.
	Entities map[string]libdiff.Delta
	// Envelope holds the operations outside CityObjects, relative to the
	// document.
	Envelope libdiff.Delta
	// Added and Removed hold whole city objects by id.
	Added   map[string]*ir.Node
	Removed map[string]*ir.Node
	// Truncated lists the changed ids left out by Options.MaxEntityDiffs.
	// Delta is incomplete when it is not empty.
	Truncated []string
}

// Empty reports whether the documents compared equal. Objects whose
// geometry moved only through the vertex table make r non-empty even when
// Delta, which leaves the vertex table out, is empty.
func (r *Result) Empty() bool {
	if r.ChangeSet != nil && !r.ChangeSet.Empty() {
		return false
	}
	return r.Delta.Empty() && len(r.Truncated) == 0
}

// VerticesOnly reports whether the only differences are vertex coordinates
// outside Delta.
func (r *Result) VerticesOnly() bool {
	return !r.Empty() && r.Delta.Empty() && len(r.Truncated) == 0
}

// Complete reports whether Delta holds every difference found.
func (r *Result) Complete() bool {
	return len(r.Truncated) == 0
}

// Artifact returns the serializable form of r.
func (r *Result) Artifact() *Artifact {
	return &Artifact{Delta: r.Delta, Truncated: r.Truncated}
}
