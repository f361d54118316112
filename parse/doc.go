// Package parse reads JSON documents into IR nodes.
//
// Object members keep their document order. Numbers written without a
// fraction or exponent that fit in 64 bits become integers, all others
// floats. Input must be strict JSON (RFC 8259) in valid UTF-8, holding
// exactly one value; duplicate object keys are rejected.
//
// # Usage
//
//	node, err := parse.Parse(data)
//
// All failures wrap [ErrParse].
//
// # Related Packages
//
//   - github.com/signadot/cjdiff/ir - IR representation
//   - github.com/signadot/cjdiff/encode - Encode IR to text
package parse
