package encode

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/signadot/cjdiff/ir"
)

// EncodeYAML writes node as block style YAML, keeping object member order.
// The output is meant for reading; floats are not guaranteed to read back
// as floats.
func EncodeYAML(node *ir.Node, w io.Writer) error {
	d, err := yaml.MarshalWithOptions(toYAML(node), yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	_, err = w.Write(d)
	return err
}

func toYAML(node *ir.Node) any {
	if node == nil {
		return nil
	}
	switch node.Type {
	case ir.BoolType:
		return node.Bool
	case ir.NumberType:
		if node.Int64 != nil {
			return *node.Int64
		}
		if node.Float64 != nil {
			return *node.Float64
		}
	case ir.StringType:
		return node.String
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			res[i] = toYAML(v)
		}
		return res
	case ir.ObjectType:
		res := make(yaml.MapSlice, len(node.Fields))
		for i, f := range node.Fields {
			res[i] = yaml.MapItem{Key: f.String, Value: toYAML(node.Values[i])}
		}
		return res
	}
	return nil
}
