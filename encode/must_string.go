package encode

import (
	"bytes"
	"strings"

	"github.com/signadot/cjdiff/ir"
)

// MustString returns the compact encoding of node.
func MustString(node *ir.Node) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, EncodeWire(true)); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}

// CanonicalBytes returns the canonical encoding of node.
func CanonicalBytes(node *ir.Node) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, Canonical()...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
