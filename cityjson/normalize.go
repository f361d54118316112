package cityjson

import (
	"fmt"

	"github.com/signadot/cjdiff/debug"
	"github.com/signadot/cjdiff/ir"
)

// Normalizer produces normalized city objects of one document. It holds
// the transformed vertex table and is safe for concurrent use.
type Normalizer struct {
	doc   *Document
	verts [][3]float64
}

func NewNormalizer(doc *Document) *Normalizer {
	verts := make([][3]float64, len(doc.Vertices))
	for i, v := range doc.Vertices {
		verts[i] = doc.Transform.Apply(v)
	}
	return &Normalizer{doc: doc, verts: verts}
}

// Object returns the normalized form of city object id.
func (n *Normalizer) Object(id string) (*ir.Node, error) {
	co := n.doc.CityObjects[id]
	raw := n.doc.Object(id)
	if co == nil || raw == nil {
		return nil, fmt.Errorf("%w: no city object %q", ErrSchema, id)
	}
	res := raw.Clone()
	res.Parent = nil
	geoms := ir.Get(res, geometryField)
	for i, g := range co.Geometry {
		if g.Boundaries == nil {
			continue
		}
		bn, err := g.Boundaries.Dereference(n.verts)
		if err != nil {
			return nil, fmt.Errorf("%s.%s[%d]: %w", ObjectPath(id), geometryField, i, err)
		}
		if err := geoms.Values[i].SetField(boundariesField, bn); err != nil {
			return nil, err
		}
	}
	if debug.Normalize() {
		debug.Logf("normalize %s: %v\n", id, res)
	}
	return res, nil
}

// Normalize returns the normalized form of every city object of doc, keyed
// by id.
func Normalize(doc *Document) (map[string]*ir.Node, error) {
	n := NewNormalizer(doc)
	res := make(map[string]*ir.Node, len(doc.CityObjects))
	for _, id := range doc.IDs() {
		o, err := n.Object(id)
		if err != nil {
			return nil, err
		}
		res[id] = o
	}
	return res, nil
}

// NormalizeDocument returns a copy of the raw document with its city
// objects normalized and the vertices and transform members dropped.
func NormalizeDocument(doc *Document) (*ir.Node, error) {
	objs, err := Normalize(doc)
	if err != nil {
		return nil, err
	}
	res := doc.Raw.Without(verticesField, transformField, cityObjectsField)
	cos := ir.Get(doc.Raw, cityObjectsField)
	kvs := make([]ir.KeyVal, len(cos.Fields))
	for i, f := range cos.Fields {
		kvs[i] = ir.KeyVal{Key: f.String, Val: objs[f.String]}
	}
	if err := res.SetField(cityObjectsField, ir.FromKeyVals(kvs)); err != nil {
		return nil, err
	}
	return res, nil
}
