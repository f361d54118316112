package cityjson

import (
	"fmt"
	"maps"
	"slices"

	"github.com/signadot/cjdiff/ir"
	"github.com/signadot/cjdiff/ir/kpath"
)

// DocumentType is the value of the type member of every CityJSON document.
const DocumentType = "CityJSON"

const (
	cityObjectsField = "CityObjects"
	verticesField    = "vertices"
	transformField   = "transform"
	geometryField    = "geometry"
	boundariesField  = "boundaries"
)

// Document is a CityJSON document. Raw holds the tree it was read from,
// which is what diffs and patches address.
type Document struct {
	Type        string
	Version     string
	Vertices    [][3]float64
	Transform   *Transform
	CityObjects map[string]*CityObject
	Raw         *ir.Node
}

// Transform maps stored vertices to world coordinates, per axis:
// v*Scale + Translate.
type Transform struct {
	Scale     [3]float64
	Translate [3]float64
}

// Apply returns v transformed. A nil transform is the identity.
func (t *Transform) Apply(v [3]float64) [3]float64 {
	if t == nil {
		return v
	}
	for i := range v {
		v[i] = v[i]*t.Scale[i] + t.Translate[i]
	}
	return v
}

type CityObject struct {
	ID       string
	Type     string
	Geometry []*Geometry
	// Extra holds every member other than geometry.
	Extra *ir.Node
}

type Geometry struct {
	// Boundaries is nil when the geometry has none.
	Boundaries *Boundary
	// Extra holds every member other than boundaries.
	Extra *ir.Node
}

// Load validates raw as a CityJSON document and reads the parts of it that
// normalization interprets. Other members are left in Raw.
func Load(raw *ir.Node) (*Document, error) {
	if raw.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: document is %s, not an object", ErrSchema, raw.Type)
	}
	doc := &Document{Raw: raw}
	tn := ir.Get(raw, "type")
	if tn == nil || tn.Type != ir.StringType {
		return nil, fmt.Errorf("%w: missing or non-string type", ErrSchema)
	}
	if tn.String != DocumentType {
		return nil, fmt.Errorf("%w: type is %q, expected %q", ErrSchema, tn.String, DocumentType)
	}
	doc.Type = tn.String
	if vn := ir.Get(raw, "version"); vn != nil && vn.Type == ir.StringType {
		doc.Version = vn.String
	}
	var err error
	if doc.Vertices, err = loadVertices(ir.Get(raw, verticesField)); err != nil {
		return nil, err
	}
	if tn := ir.Get(raw, transformField); tn != nil {
		if doc.Transform, err = loadTransform(tn); err != nil {
			return nil, err
		}
	}
	cos := ir.Get(raw, cityObjectsField)
	if cos == nil || cos.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: missing or non-object %s", ErrSchema, cityObjectsField)
	}
	doc.CityObjects = make(map[string]*CityObject, len(cos.Fields))
	for i, f := range cos.Fields {
		co, err := loadCityObject(f.String, cos.Values[i])
		if err != nil {
			return nil, err
		}
		doc.CityObjects[f.String] = co
	}
	return doc, nil
}

// IDs returns the city object ids in sorted order.
func (d *Document) IDs() []string {
	return slices.Sorted(maps.Keys(d.CityObjects))
}

// Object returns the raw tree of city object id, or nil.
func (d *Document) Object(id string) *ir.Node {
	return ir.Get(ir.Get(d.Raw, cityObjectsField), id)
}

// ObjectPath returns the path of city object id within a document.
func ObjectPath(id string) string {
	return kpath.Join(cityObjectsField, kpath.QuoteField(id))
}

func loadVertices(vn *ir.Node) ([][3]float64, error) {
	if vn == nil || vn.Type != ir.ArrayType {
		return nil, fmt.Errorf("%w: missing or non-array %s", ErrSchema, verticesField)
	}
	res := make([][3]float64, len(vn.Values))
	for i, v := range vn.Values {
		t, err := triple(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s[%d]: %w", ErrSchema, verticesField, i, err)
		}
		res[i] = t
	}
	return res, nil
}

func loadTransform(tn *ir.Node) (*Transform, error) {
	if tn.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: %s is %s, not an object", ErrSchema, transformField, tn.Type)
	}
	res := &Transform{}
	for _, f := range []struct {
		name string
		dst  *[3]float64
	}{{"scale", &res.Scale}, {"translate", &res.Translate}} {
		v := ir.Get(tn, f.name)
		if v == nil {
			return nil, fmt.Errorf("%w: %s.%s missing", ErrSchema, transformField, f.name)
		}
		t, err := triple(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s.%s: %w", ErrSchema, transformField, f.name, err)
		}
		*f.dst = t
	}
	return res, nil
}

func triple(v *ir.Node) ([3]float64, error) {
	var res [3]float64
	if v.Type != ir.ArrayType || len(v.Values) != 3 {
		return res, fmt.Errorf("expected 3 numbers")
	}
	for i, c := range v.Values {
		x, ok := c.Number()
		if !ok {
			return res, fmt.Errorf("expected 3 numbers, got %s at %d", c.Type, i)
		}
		res[i] = x
	}
	return res, nil
}

func loadCityObject(id string, on *ir.Node) (*CityObject, error) {
	where := ObjectPath(id)
	if on.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: %s is %s, not an object", ErrSchema, where, on.Type)
	}
	co := &CityObject{ID: id, Extra: on.Without(geometryField)}
	if tn := ir.Get(on, "type"); tn != nil && tn.Type == ir.StringType {
		co.Type = tn.String
	}
	gn := ir.Get(on, geometryField)
	if gn == nil || gn.Type != ir.ArrayType {
		return nil, fmt.Errorf("%w: %s: missing or non-array %s", ErrSchema, where, geometryField)
	}
	co.Geometry = make([]*Geometry, len(gn.Values))
	for i, g := range gn.Values {
		if g.Type != ir.ObjectType {
			return nil, fmt.Errorf("%w: %s.%s[%d] is %s, not an object", ErrSchema, where, geometryField, i, g.Type)
		}
		geom := &Geometry{Extra: g.Without(boundariesField)}
		if bn := ir.Get(g, boundariesField); bn != nil {
			b, err := ParseBoundary(bn)
			if err != nil {
				return nil, fmt.Errorf("%w: %s.%s[%d].%s%s", ErrSchema, where, geometryField, i, boundariesField, err)
			}
			geom.Boundaries = b
		}
		co.Geometry[i] = geom
	}
	return co, nil
}
