// Package cjdiff compares and patches CityJSON documents at the
// granularity of city objects.
//
// Diff runs in two phases. Every city object of both documents is first
// normalized (boundaries dereferenced into rounded world coordinates) and
// fingerprinted, and the fingerprints classify each id as added, removed,
// changed or unchanged. Only changed objects are then diffed, on their raw
// trees, and the per-object deltas are re-rooted at CityObjects.<id> and
// merged into one libdiff.Delta addressed against the raw source document.
//
// Patch applies such a delta to the raw source document. The vertex table
// is not part of a delta unless Options.IncludeVertices is set.
package cjdiff
