// Package render prints diffs of CityJSON documents for people.
//
// Output resembles a unified diff. Each compared city object gets a
// header naming it in the source (a) and destination (b) documents,
// followed by one hunk per operation:
//
//	--- a/CityObjects.b1
//	+++ b/CityObjects.b1
//	@@ attributes.storeys @@ changed
//	-2
//	+3
package render

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/signadot/cjdiff"
	"github.com/signadot/cjdiff/encode"
	"github.com/signadot/cjdiff/ir"
	"github.com/signadot/cjdiff/libdiff"
)

type Printer struct {
	w      io.Writer
	colors *Colors
	err    error
}

type Option func(*Printer)

// WithColors colors the output. A nil c leaves it plain.
func WithColors(c *Colors) Option {
	return func(p *Printer) {
		if c != nil {
			p.colors = c
		}
	}
}

func New(w io.Writer, opts ...Option) *Printer {
	p := &Printer{w: w, colors: noColors()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// Result prints changed, removed and added city objects in id order, then
// the operations outside CityObjects, then a summary.
func (p *Printer) Result(res *cjdiff.Result) error {
	for _, id := range slices.Sorted(maps.Keys(res.Entities)) {
		path := cjdiff.ObjectPath(id)
		p.delta("a/"+path, "b/"+path, res.Entities[id])
	}
	for _, id := range slices.Sorted(maps.Keys(res.Removed)) {
		p.delta("a/"+cjdiff.ObjectPath(id), "", cjdiff.DiffEntity(id, res.Removed[id], nil))
	}
	for _, id := range slices.Sorted(maps.Keys(res.Added)) {
		p.delta("", "b/"+cjdiff.ObjectPath(id), cjdiff.DiffEntity(id, nil, res.Added[id]))
	}
	if !res.Envelope.Empty() {
		p.delta("a", "b", res.Envelope)
	}
	p.summary(res)
	return p.err
}

// Delta prints the operations of d under a header naming the source and
// destination. An empty name omits its header line.
func (p *Printer) Delta(src, dst string, d libdiff.Delta) error {
	p.delta(src, dst, d)
	return p.err
}

func (p *Printer) delta(src, dst string, d libdiff.Delta) {
	c := p.colors
	p.printf("\n")
	if src != "" {
		p.printf("%s\n", c.Header("--- "+src))
	}
	if dst != "" {
		p.printf("%s\n", c.Header("+++ "+dst))
	}
	for _, k := range []libdiff.Kind{libdiff.ValuesChanged, libdiff.TypeChanges} {
		for _, path := range d.Paths(k) {
			op := d[k][path]
			p.hunk(path, c.Changed("changed"))
			p.printf("%s\n", c.Deleted("-"+value(op.Old)))
			p.printf("%s\n", c.Added("+"+value(op.New)))
		}
	}
	for _, k := range []libdiff.Kind{libdiff.DictionaryItemRemoved, libdiff.IterableItemRemoved} {
		for _, path := range d.Paths(k) {
			p.hunk(path, c.Deleted("deleted"))
			p.printf("%s\n", c.Deleted("-"+value(d[k][path].Old)))
		}
	}
	for _, k := range []libdiff.Kind{libdiff.DictionaryItemAdded, libdiff.IterableItemAdded} {
		for _, path := range d.Paths(k) {
			p.hunk(path, c.Added("added"))
			p.printf("%s\n", c.Added("+"+value(d[k][path].New)))
		}
	}
}

func (p *Printer) hunk(path, what string) {
	p.printf("%s %s\n", p.colors.Hunk("@@ "+path+" @@"), what)
}

func value(n *ir.Node) string {
	if n == nil {
		return "null"
	}
	return encode.MustString(n)
}

func (p *Printer) summary(res *cjdiff.Result) {
	p.printf("\n")
	if cs := res.ChangeSet; cs != nil {
		p.printf("%d changed, %d removed, %d added, %d unchanged\n",
			len(cs.Changed), len(cs.Removed), len(cs.Added), len(cs.Unchanged))
	} else {
		p.printf("%d changed, %d removed, %d added\n",
			len(res.Entities), len(res.Removed), len(res.Added))
	}
	if n := len(res.Truncated); n != 0 {
		p.printf("%s\n", p.colors.Changed(fmt.Sprintf("%d changed objects not diffed: %v", n, res.Truncated)))
	}
}
