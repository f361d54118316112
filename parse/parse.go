package parse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/signadot/cjdiff/ir"
)

// Parse parses a single JSON document.
func Parse(d []byte) (*ir.Node, error) {
	if !utf8.Valid(d) {
		return nil, fmt.Errorf("%w: invalid UTF-8 at offset %d", ErrParse, invalidAt(d))
	}
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	p := &parser{dec: dec}
	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty document", ErrParse)
	}
	if err != nil {
		return nil, p.errorf(err)
	}
	res, err := p.value(tok)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after offset %d", ErrParse, p.off)
	}
	return res, nil
}

// ParseFile reads and parses the file at path.
func ParseFile(path string) (*ir.Node, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	res, err := Parse(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

type parser struct {
	dec *json.Decoder
	off int64
}

func (p *parser) token() (json.Token, error) {
	p.off = p.dec.InputOffset()
	tok, err := p.dec.Token()
	if err != nil {
		return nil, p.errorf(err)
	}
	return tok, nil
}

func (p *parser) errorf(err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("%w: offset %d: %w", ErrParse, p.dec.InputOffset(), err)
}

func (p *parser) value(tok json.Token) (*ir.Node, error) {
	switch x := tok.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(x), nil
	case string:
		return ir.FromString(x), nil
	case json.Number:
		return p.number(x)
	case json.Delim:
		switch x {
		case '{':
			return p.object()
		case '[':
			return p.array()
		}
	}
	return nil, fmt.Errorf("%w: unexpected %v at offset %d", ErrParse, tok, p.off)
}

// number keeps integers that fit in 64 bits as integers. Anything written
// with a fraction or an exponent, and larger integers, become floats.
func (p *parser) number(n json.Number) (*ir.Node, error) {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return ir.FromInt(i), nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: number %s out of range at offset %d", ErrParse, s, p.off)
	}
	return ir.FromFloat(f), nil
}

func (p *parser) object() (*ir.Node, error) {
	kvs := []ir.KeyVal{}
	seen := map[string]bool{}
	for p.dec.More() {
		tok, err := p.token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected key at offset %d", ErrParse, p.off)
		}
		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate key %q at offset %d", ErrParse, key, p.off)
		}
		seen[key] = true
		tok, err = p.token()
		if err != nil {
			return nil, err
		}
		val, err := p.value(tok)
		if err != nil {
			return nil, err
		}
		kvs = append(kvs, ir.KeyVal{Key: key, Val: val})
	}
	if _, err := p.token(); err != nil {
		return nil, err
	}
	return ir.FromKeyVals(kvs), nil
}

func (p *parser) array() (*ir.Node, error) {
	vals := []*ir.Node{}
	for p.dec.More() {
		tok, err := p.token()
		if err != nil {
			return nil, err
		}
		val, err := p.value(tok)
		if err != nil {
			return nil, err
		}
		vals = append(vals, val)
	}
	if _, err := p.token(); err != nil {
		return nil, err
	}
	return ir.FromSlice(vals), nil
}

func invalidAt(d []byte) int {
	for i := 0; i < len(d); {
		r, size := utf8.DecodeRune(d[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(d)
}
