package ir

type Type int

const (
	NullType Type = iota
	NumberType
	StringType
	BoolType
	ObjectType
	ArrayType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		ObjectType: "Object",
		ArrayType:  "Array",
		StringType: "String",
		NumberType: "Number",
		BoolType:   "Bool",
		NullType:   "Null",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

// TypeName gives the finer grained name used when reporting type changes:
// numbers are split into "int" and "float".
func (y *Node) TypeName() string {
	switch y.Type {
	case NumberType:
		if y.Float64 != nil {
			return "float"
		}
		return "int"
	case StringType:
		return "str"
	case BoolType:
		return "bool"
	case NullType:
		return "null"
	case ArrayType:
		return "list"
	case ObjectType:
		return "dict"
	}
	return "unknown"
}
