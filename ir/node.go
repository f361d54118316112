package ir

import (
	"fmt"
	"slices"
)

type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string
	Fields      []*Node
	Values      []*Node

	String  string
	Bool    bool
	Float64 *float64
	Int64   *int64
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Parent = y.Parent
	dst.ParentIndex = y.ParentIndex
	dst.ParentField = y.ParentField
	dst.Type = y.Type
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
	}
	if y.Fields != nil {
		dst.Fields = make([]*Node, len(y.Fields))
	}
	for i, yv := range y.Values {
		dstI := &Node{}
		yv.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dstI.ParentField = yv.ParentField
		dst.Values[i] = dstI
	}
	for i, yf := range y.Fields {
		dstI := &Node{}
		yf.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dstI.ParentField = yf.String
		dst.Fields[i] = dstI
	}
	dst.String = y.String
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	dst.Bool = y.Bool
	return dst
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func Null() *Node {
	return &Node{Type: NullType}
}

// Number returns the numeric value of a number node as a float64.
func (y *Node) Number() (float64, bool) {
	if y == nil || y.Type != NumberType {
		return 0, false
	}
	switch {
	case y.Int64 != nil:
		return float64(*y.Int64), true
	case y.Float64 != nil:
		return *y.Float64, true
	}
	return 0, false
}

type KeyVal struct {
	Key string
	Val *Node
}

// FromKeyVals builds an object keeping the order of kvs.
func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{
		Type:   ObjectType,
		Fields: make([]*Node, len(kvs)),
		Values: make([]*Node, len(kvs)),
	}
	for i := range kvs {
		kv := &kvs[i]
		key := FromString(kv.Key)
		key.Parent = res
		key.ParentIndex = i
		key.ParentField = kv.Key
		kv.Val.Parent = res
		kv.Val.ParentIndex = i
		kv.Val.ParentField = kv.Key
		res.Fields[i] = key
		res.Values[i] = kv.Val
	}
	return res
}

func FromSlice(ySlice []*Node) *Node {
	res := &Node{
		Type:   ArrayType,
		Values: make([]*Node, len(ySlice)),
	}
	for i, y := range ySlice {
		res.Values[i] = y
		y.Parent = res
		y.ParentIndex = i
		y.ParentField = ""
	}
	return res
}

// Get returns the value of field in object y, or nil.
func Get(y *Node, field string) *Node {
	if i := y.FieldIndex(field); i >= 0 {
		return y.Values[i]
	}
	return nil
}

// FieldIndex returns the position of field in object y, or -1.
func (y *Node) FieldIndex(field string) int {
	if y == nil || y.Type != ObjectType {
		return -1
	}
	for i := range y.Fields {
		if y.Fields[i].String == field {
			return i
		}
	}
	return -1
}

// Keys returns the keys of object y in document order.
func (y *Node) Keys() []string {
	res := make([]string, len(y.Fields))
	for i, f := range y.Fields {
		res[i] = f.String
	}
	return res
}

// Without returns a copy of object y lacking the given fields.
func (y *Node) Without(fields ...string) *Node {
	kvs := make([]KeyVal, 0, len(y.Fields))
	for i, f := range y.Fields {
		if slices.Contains(fields, f.String) {
			continue
		}
		kvs = append(kvs, KeyVal{Key: f.String, Val: y.Values[i].Clone()})
	}
	return FromKeyVals(kvs)
}

// SetField replaces the value of field, appending it when absent.
func (y *Node) SetField(field string, val *Node) error {
	if y.Type != ObjectType {
		return fmt.Errorf("cannot set field %q on %s", field, y.Type)
	}
	val.Parent = y
	val.ParentField = field
	if i := y.FieldIndex(field); i >= 0 {
		val.ParentIndex = i
		y.Values[i] = val
		return nil
	}
	key := FromString(field)
	key.Parent = y
	key.ParentField = field
	key.ParentIndex = len(y.Fields)
	val.ParentIndex = len(y.Values)
	y.Fields = append(y.Fields, key)
	y.Values = append(y.Values, val)
	return nil
}

// DeleteField removes field from object y, reporting whether it was present.
func (y *Node) DeleteField(field string) bool {
	i := y.FieldIndex(field)
	if i < 0 {
		return false
	}
	y.Fields = slices.Delete(y.Fields, i, i+1)
	y.Values = slices.Delete(y.Values, i, i+1)
	y.reindex(i)
	return true
}

// InsertAt inserts val at index i of array y; i may equal the length.
func (y *Node) InsertAt(i int, val *Node) error {
	if y.Type != ArrayType {
		return fmt.Errorf("cannot insert into %s", y.Type)
	}
	if i < 0 || i > len(y.Values) {
		return fmt.Errorf("index out of bounds %d (len %d)", i, len(y.Values))
	}
	val.Parent = y
	val.ParentField = ""
	y.Values = slices.Insert(y.Values, i, val)
	y.reindex(i)
	return nil
}

// RemoveAt removes the element at index i of array y.
func (y *Node) RemoveAt(i int) error {
	if y.Type != ArrayType {
		return fmt.Errorf("cannot remove from %s", y.Type)
	}
	if i < 0 || i >= len(y.Values) {
		return fmt.Errorf("index out of bounds %d (len %d)", i, len(y.Values))
	}
	y.Values = slices.Delete(y.Values, i, i+1)
	y.reindex(i)
	return nil
}

// Replace puts val in the place of y within y's parent. y must not be a root.
func (y *Node) Replace(val *Node) {
	p := y.Parent
	val.Parent = p
	val.ParentIndex = y.ParentIndex
	val.ParentField = y.ParentField
	p.Values[y.ParentIndex] = val
}

func (y *Node) reindex(from int) {
	for i := from; i < len(y.Values); i++ {
		y.Values[i].ParentIndex = i
		if y.Type == ObjectType {
			y.Fields[i].ParentIndex = i
		}
	}
}
