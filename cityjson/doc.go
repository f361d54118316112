// Package cityjson reads CityJSON documents into typed structures and
// normalizes city objects into a form independent of the vertex table.
//
// A normalized city object is the raw object with every geometry's
// boundaries dereferenced into literal coordinate triples, after applying
// the document transform and rounding to three decimals. Normalized
// objects are used for change detection only; diffs and patches always
// address the raw document.
package cityjson
