package cjdiff

import (
	"fmt"

	"github.com/signadot/cjdiff/cityjson"
	"github.com/signadot/cjdiff/debug"
	"github.com/signadot/cjdiff/ir"
	"github.com/signadot/cjdiff/libdiff"
)

// Patch applies d to the raw CityJSON document src and returns the
// patched copy. src is validated first; errors from applying d wrap
// libdiff.ErrApply.
func Patch(src *ir.Node, d libdiff.Delta) (*ir.Node, error) {
	if _, err := cityjson.Load(src); err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	if debug.Pipeline() {
		debug.Logf("patch: %d operations\n", d.Len())
	}
	return libdiff.Apply(src, d)
}

// PatchArtifact is like Patch for a decoded artifact. An incomplete
// artifact is applied as is.
func PatchArtifact(src *ir.Node, a *Artifact) (*ir.Node, error) {
	return Patch(src, a.Delta)
}
