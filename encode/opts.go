package encode

type EncodeOption func(*EncState)

// EncodeWire selects compact output with no whitespace.
func EncodeWire(v bool) EncodeOption {
	return func(es *EncState) { es.wire = v }
}

// EncodeSorted sorts object keys at every level.
func EncodeSorted(v bool) EncodeOption {
	return func(es *EncState) { es.sorted = v }
}

// EncodeIndent sets the number of spaces per indentation level.
func EncodeIndent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

// Canonical is shorthand for compact, key sorted output.
func Canonical() []EncodeOption {
	return []EncodeOption{EncodeWire(true), EncodeSorted(true)}
}
