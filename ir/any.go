package ir

// ToAny converts y into plain Go values: nil, bool, int64, float64,
// string, []any and map[string]any.
func ToAny(y *Node) any {
	if y == nil {
		return nil
	}
	switch y.Type {
	case BoolType:
		return y.Bool
	case NumberType:
		if y.Int64 != nil {
			return *y.Int64
		}
		if y.Float64 != nil {
			return *y.Float64
		}
		return nil
	case StringType:
		return y.String
	case ArrayType:
		res := make([]any, len(y.Values))
		for i, v := range y.Values {
			res[i] = ToAny(v)
		}
		return res
	case ObjectType:
		res := make(map[string]any, len(y.Fields))
		for i, f := range y.Fields {
			res[f.String] = ToAny(y.Values[i])
		}
		return res
	}
	return nil
}
