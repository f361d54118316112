package ir

import (
	"encoding/binary"
	"hash/maphash"
	"math"
	"slices"
)

var identitySeed = maphash.MakeSeed()

// Identity returns a 64-bit hash of the value of n, consistent with Equal
// (or with EqualUnordered when unordered is set): equal values have equal
// identities. Object key order never contributes. The seed is chosen per
// process, so identities must not be persisted.
//
// It panics if n is nil.
func (n *Node) Identity(unordered bool) uint64 {
	if n == nil {
		panic("ir: Identity called on nil node")
	}
	var h maphash.Hash
	h.SetSeed(identitySeed)
	h.WriteByte(byte(n.Type))

	var b [8]byte
	switch n.Type {
	case NullType:
	case BoolType:
		if n.Bool {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	case NumberType:
		if n.Int64 != nil {
			h.WriteByte('i')
			binary.LittleEndian.PutUint64(b[:], uint64(*n.Int64))
			h.Write(b[:])
		} else if n.Float64 != nil {
			h.WriteByte('f')
			f := *n.Float64
			if f == 0 {
				// -0 == 0
				f = 0
			}
			binary.LittleEndian.PutUint64(b[:], math.Float64bits(f))
			h.Write(b[:])
		}
	case StringType:
		h.WriteString(n.String)
	case ArrayType:
		sums := make([]uint64, len(n.Values))
		for i, v := range n.Values {
			sums[i] = v.Identity(unordered)
		}
		if unordered {
			slices.Sort(sums)
		}
		for _, s := range sums {
			binary.LittleEndian.PutUint64(b[:], s)
			h.Write(b[:])
		}
	case ObjectType:
		sums := make([]uint64, len(n.Fields))
		for i, field := range n.Fields {
			var fh maphash.Hash
			fh.SetSeed(identitySeed)
			fh.WriteString(field.String)
			binary.LittleEndian.PutUint64(b[:], n.Values[i].Identity(unordered))
			fh.Write(b[:])
			sums[i] = fh.Sum64()
		}
		slices.Sort(sums)
		for _, s := range sums {
			binary.LittleEndian.PutUint64(b[:], s)
			h.Write(b[:])
		}
	}
	return h.Sum64()
}
