package encode

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/signadot/cjdiff/ir"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	depth, indent int
	wire          bool
	sorted        bool
}

func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	bw := bufio.NewWriter(w)
	if err := encode(node, bw, es); err != nil {
		return err
	}
	if !es.wire {
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func encode(node *ir.Node, w *bufio.Writer, es *EncState) error {
	if node == nil {
		_, err := w.WriteString("null")
		return err
	}
	switch node.Type {
	case ir.NullType:
		_, err := w.WriteString("null")
		return err
	case ir.BoolType:
		_, err := w.WriteString(strconv.FormatBool(node.Bool))
		return err
	case ir.NumberType:
		s, err := formatNumber(node)
		if err != nil {
			return err
		}
		_, err = w.WriteString(s)
		return err
	case ir.StringType:
		return writeQuoted(w, node.String)
	case ir.ArrayType:
		return encodeArray(node, w, es)
	case ir.ObjectType:
		return encodeObject(node, w, es)
	}
	return fmt.Errorf("%w: unknown node type %s at %q", ErrEncoding, node.Type, node.KPath())
}

func encodeArray(node *ir.Node, w *bufio.Writer, es *EncState) error {
	if len(node.Values) == 0 {
		_, err := w.WriteString("[]")
		return err
	}
	w.WriteByte('[')
	es.depth++
	for i, v := range node.Values {
		if i > 0 {
			w.WriteByte(',')
		}
		writeNL(w, es)
		if err := encode(v, w, es); err != nil {
			return err
		}
	}
	es.depth--
	writeNL(w, es)
	return w.WriteByte(']')
}

func encodeObject(node *ir.Node, w *bufio.Writer, es *EncState) error {
	if len(node.Fields) == 0 {
		_, err := w.WriteString("{}")
		return err
	}
	order := make([]int, len(node.Fields))
	for i := range order {
		order[i] = i
	}
	if es.sorted {
		slices.SortStableFunc(order, func(a, b int) int {
			return strings.Compare(node.Fields[a].String, node.Fields[b].String)
		})
	}
	w.WriteByte('{')
	es.depth++
	for n, i := range order {
		if n > 0 {
			w.WriteByte(',')
		}
		writeNL(w, es)
		if err := writeQuoted(w, node.Fields[i].String); err != nil {
			return err
		}
		w.WriteByte(':')
		if !es.wire {
			w.WriteByte(' ')
		}
		if err := encode(node.Values[i], w, es); err != nil {
			return err
		}
	}
	es.depth--
	writeNL(w, es)
	return w.WriteByte('}')
}

func writeNL(w *bufio.Writer, es *EncState) {
	if es.wire {
		return
	}
	w.WriteByte('\n')
	w.WriteString(strings.Repeat(" ", es.indent*es.depth))
}

func formatNumber(node *ir.Node) (string, error) {
	switch {
	case node.Int64 != nil:
		return strconv.FormatInt(*node.Int64, 10), nil
	case node.Float64 != nil:
		return FormatFloat(*node.Float64), nil
	}
	return "", fmt.Errorf("%w: number without value at %q", ErrEncoding, node.KPath())
}

// FormatFloat prints f with the fewest digits that round trip. Integral
// values keep a ".0" so that they read back as floats; very large and very
// small magnitudes use an exponent.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

const hex = "0123456789abcdef"

func writeQuoted(w *bufio.Writer, s string) error {
	w.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch {
			case c == '"' || c == '\\':
				w.WriteByte('\\')
				w.WriteByte(c)
			case c == '\n':
				w.WriteString(`\n`)
			case c == '\r':
				w.WriteString(`\r`)
			case c == '\t':
				w.WriteString(`\t`)
			case c < 0x20:
				w.WriteString(`\u00`)
				w.WriteByte(hex[c>>4])
				w.WriteByte(hex[c&0xf])
			default:
				w.WriteByte(c)
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return fmt.Errorf("%w: invalid UTF-8 at byte %d of string", ErrEncoding, i)
		}
		w.WriteString(s[i : i+size])
		i += size
	}
	return w.WriteByte('"')
}
