package kpath

import (
	"bytes"
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// KPath is a linked list of segments. Each segment carries exactly one of
// Field or Index. The nil *KPath is the root path.
type KPath struct {
	Field *string // Object field name
	Index *int    // Array index
	Next  *KPath  // Next segment in path (nil for leaf)
}

// Field returns the single segment path .name.
func Field(name string) *KPath {
	return &KPath{Field: &name}
}

// Index returns the single segment path [i].
func Index(i int) *KPath {
	return &KPath{Index: &i}
}

// String returns the kinded path string representation of this KPath.
func (p *KPath) String() string {
	if p == nil {
		return ""
	}
	buf := bytes.NewBuffer(nil)
	for x := p; x != nil; x = x.Next {
		if x.Field != nil && buf.Len() > 0 {
			buf.WriteByte('.')
		}
		buf.WriteString(x.SegmentString())
	}
	return buf.String()
}

// SegmentString returns the string form of the first segment only.
func (p *KPath) SegmentString() string {
	if p == nil {
		return ""
	}
	if p.Field != nil {
		return QuoteField(*p.Field)
	}
	if p.Index != nil {
		return "[" + strconv.Itoa(*p.Index) + "]"
	}
	return ""
}

// QuoteField returns field as it appears in a path, quoted if needed.
func QuoteField(field string) string {
	if NeedsQuote(field) {
		return strconv.Quote(field)
	}
	return field
}

// NeedsQuote reports whether field must be quoted in a path.
func NeedsQuote(field string) bool {
	if field == "" {
		return true
	}
	return strings.ContainsAny(field, ".[]\"\\ \t\n")
}

// Parse parses a kinded path string into a KPath structure.
//
//   - "a.b.c" → Object path with 3 segments
//   - "a[0][1]" → field then two array indices
//   - "\"x.y\".z" → quoted field then field
//   - "" → Root path (returns nil)
func Parse(kpath string) (*KPath, error) {
	if kpath == "" {
		return nil, nil
	}
	var (
		root, last *KPath
		rest       = kpath
		first      = true
	)
	for rest != "" {
		var (
			seg *KPath
			err error
		)
		switch {
		case rest[0] == '[':
			seg, rest, err = parseIndex(rest)
		case rest[0] == '.':
			if first {
				return nil, fmt.Errorf("kpath %q: unexpected leading '.'", kpath)
			}
			seg, rest, err = parseField(rest[1:])
		case first:
			seg, rest, err = parseField(rest)
		default:
			return nil, fmt.Errorf("kpath %q: expected '.' or '[' at %q", kpath, rest)
		}
		if err != nil {
			return nil, fmt.Errorf("kpath %q: %w", kpath, err)
		}
		first = false
		if root == nil {
			root = seg
		} else {
			last.Next = seg
		}
		last = seg
	}
	return root, nil
}

// MustParse is like Parse but panics on error.
func MustParse(kpath string) *KPath {
	p, err := Parse(kpath)
	if err != nil {
		panic(err)
	}
	return p
}

func parseIndex(frag string) (*KPath, string, error) {
	end := strings.IndexByte(frag, ']')
	if end == -1 {
		return nil, "", fmt.Errorf("expected '[' <index> ']'")
	}
	i, err := strconv.Atoi(frag[1:end])
	if err != nil || i < 0 {
		return nil, "", fmt.Errorf("invalid index %q", frag[1:end])
	}
	return Index(i), frag[end+1:], nil
}

func parseField(frag string) (*KPath, string, error) {
	if frag == "" {
		return nil, "", fmt.Errorf("empty field")
	}
	if frag[0] == '"' {
		i := 1
		for i < len(frag) {
			switch frag[i] {
			case '\\':
				i += 2
				continue
			case '"':
				field, err := strconv.Unquote(frag[:i+1])
				if err != nil {
					return nil, "", fmt.Errorf("invalid quoted field %s: %w", frag[:i+1], err)
				}
				return Field(field), frag[i+1:], nil
			}
			i++
		}
		return nil, "", fmt.Errorf("unterminated quoted field %s", frag)
	}
	end := strings.IndexAny(frag, ".[")
	if end == -1 {
		end = len(frag)
	}
	if end == 0 {
		return nil, "", fmt.Errorf("empty field")
	}
	return Field(frag[:end]), frag[end:], nil
}

// Len returns the number of segments.
func (p *KPath) Len() int {
	n := 0
	for x := p; x != nil; x = x.Next {
		n++
	}
	return n
}

// Segments returns copies of each segment, root first.
func (p *KPath) Segments() []*KPath {
	res := make([]*KPath, 0, p.Len())
	for x := p; x != nil; x = x.Next {
		res = append(res, x.copySegment())
	}
	return res
}

// Parent returns a copy of p without its last segment.
func (p *KPath) Parent() *KPath {
	segs := p.Segments()
	if len(segs) <= 1 {
		return nil
	}
	return chain(segs[:len(segs)-1])
}

// Last returns a copy of the last segment of p.
func (p *KPath) Last() *KPath {
	if p == nil {
		return nil
	}
	x := p
	for x.Next != nil {
		x = x.Next
	}
	return x.copySegment()
}

// Join joins a prefix path string with a suffix path string.
//
//   - Join("a", "b.c") → "a.b.c"
//   - Join("a", "[0]") → "a[0]"
//   - Join("", "b") → "b"
//   - Join("a", "") → "a"
func Join(prefix, rest string) string {
	switch {
	case prefix == "":
		return rest
	case rest == "":
		return prefix
	case rest[0] == '[':
		return prefix + rest
	}
	return prefix + "." + rest
}

// HasPrefix reports whether every segment of prefix starts p.
func (p *KPath) HasPrefix(prefix *KPath) bool {
	x := p
	for y := prefix; y != nil; y = y.Next {
		if x == nil || !segmentsEqual(x, y) {
			return false
		}
		x = x.Next
	}
	return true
}

// Compare orders paths segment by segment: fields before indices, fields
// lexically, indices numerically, and a path before its extensions.
func (p *KPath) Compare(q *KPath) int {
	x, y := p, q
	for x != nil && y != nil {
		if c := compareSegments(x, y); c != 0 {
			return c
		}
		x, y = x.Next, y.Next
	}
	switch {
	case x == nil && y == nil:
		return 0
	case x == nil:
		return -1
	}
	return 1
}

func compareSegments(a, b *KPath) int {
	switch {
	case a.Field != nil && b.Field != nil:
		return strings.Compare(*a.Field, *b.Field)
	case a.Index != nil && b.Index != nil:
		return cmp.Compare(*a.Index, *b.Index)
	case a.Field != nil:
		return -1
	}
	return 1
}

func segmentsEqual(a, b *KPath) bool {
	return compareSegments(a, b) == 0
}

func (p *KPath) copySegment() *KPath {
	if p.Field != nil {
		return Field(*p.Field)
	}
	if p.Index != nil {
		return Index(*p.Index)
	}
	return &KPath{}
}

func chain(segs []*KPath) *KPath {
	if len(segs) == 0 {
		return nil
	}
	for i := 0; i < len(segs)-1; i++ {
		segs[i].Next = segs[i+1]
	}
	segs[len(segs)-1].Next = nil
	return segs[0]
}
