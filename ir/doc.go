// Package ir provides the in-memory tree on which documents are compared
// and patched.
//
// # Overview
//
// Every document, whether a CityJSON model, a normalized city object or a
// serialized diff, is held as a tree of *Node values. A Node is a tagged
// union: the Type field says which of the value fields is meaningful.
//
//   - NullType: null
//   - BoolType: Bool
//   - NumberType: Int64 or Float64
//   - StringType: String
//   - ArrayType: Values
//   - ObjectType: Fields (keys, string typed) and Values, index aligned
//
// Objects keep their key order as read, so encoding a parsed document gives
// back the same member order. Functions that need an order independent
// view (Equal, canonical encoding, Identity) sort keys themselves.
//
// Integers and floats are distinct: 1 and 1.0 are different values and a
// change from one to the other is a type change.
//
// # Navigating Nodes
//
// Nodes maintain parent links (Parent, ParentIndex, ParentField) so that
// a node can report its own path with KPath.
//
// # Thread Safety
//
// Node structures are not thread-safe. Concurrent readers are fine;
// writers must own the tree, usually by working on a Clone.
package ir
