package ir

// Equal reports whether a and b hold the same value. Object key order is
// ignored, array order is not. Integers and floats never compare equal.
func Equal(a, b *Node) bool {
	return equal(a, b, false)
}

// EqualUnordered is like Equal but compares arrays as multisets.
func EqualUnordered(a, b *Node) bool {
	return equal(a, b, true)
}

func equal(a, b *Node, unordered bool) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case NullType:
		return true
	case BoolType:
		return a.Bool == b.Bool
	case StringType:
		return a.String == b.String
	case NumberType:
		return equalNumbers(a, b)
	case ArrayType:
		if len(a.Values) != len(b.Values) {
			return false
		}
		if unordered {
			return equalMultiset(a.Values, b.Values)
		}
		for i := range a.Values {
			if !equal(a.Values[i], b.Values[i], false) {
				return false
			}
		}
		return true
	case ObjectType:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i, f := range a.Fields {
			bv := Get(b, f.String)
			if bv == nil || !equal(a.Values[i], bv, unordered) {
				return false
			}
		}
		return true
	}
	return false
}

func equalNumbers(a, b *Node) bool {
	switch {
	case a.Int64 != nil && b.Int64 != nil:
		return *a.Int64 == *b.Int64
	case a.Float64 != nil && b.Float64 != nil:
		return *a.Float64 == *b.Float64
	}
	return false
}

func equalMultiset(as, bs []*Node) bool {
	buckets := make(map[uint64][]*Node, len(bs))
	for _, b := range bs {
		h := b.Identity(true)
		buckets[h] = append(buckets[h], b)
	}
	for _, a := range as {
		h := a.Identity(true)
		cands := buckets[h]
		found := -1
		for i, c := range cands {
			if equal(a, c, true) {
				found = i
				break
			}
		}
		if found < 0 {
			return false
		}
		cands[found] = cands[len(cands)-1]
		buckets[h] = cands[:len(cands)-1]
	}
	return true
}
