// Package encode encodes IR nodes as JSON text.
//
// # Usage
//
//	// Indented, document order
//	err := encode.Encode(node, w)
//
//	// Canonical: compact with keys sorted at every level
//	err := encode.Encode(node, w, encode.EncodeWire(true), encode.EncodeSorted(true))
//
// Canonical output is stable for equal trees regardless of the key order
// they were built with, which makes it suitable for content hashing.
//
// # Related Packages
//
//   - github.com/signadot/cjdiff/ir - IR representation
//   - github.com/signadot/cjdiff/parse - Parse text to IR
package encode
