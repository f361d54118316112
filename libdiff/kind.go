package libdiff

import "fmt"

// Kind is the kind of a recorded operation.
type Kind int

const (
	ValuesChanged Kind = iota
	TypeChanges
	DictionaryItemRemoved
	DictionaryItemAdded
	IterableItemRemoved
	IterableItemAdded
)

var kindNames = map[Kind]string{
	ValuesChanged:         "values_changed",
	TypeChanges:           "type_changes",
	DictionaryItemRemoved: "dictionary_item_removed",
	DictionaryItemAdded:   "dictionary_item_added",
	IterableItemRemoved:   "iterable_item_removed",
	IterableItemAdded:     "iterable_item_added",
}

// Kinds returns all kinds in serialization order.
func Kinds() []Kind {
	return []Kind{
		ValuesChanged,
		TypeChanges,
		DictionaryItemRemoved,
		DictionaryItemAdded,
		IterableItemRemoved,
		IterableItemAdded,
	}
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown operation kind %q", s)
}

// IsChange reports whether k replaces a value in place.
func (k Kind) IsChange() bool {
	return k == ValuesChanged || k == TypeChanges
}

// IsRemoval reports whether k removes an item.
func (k Kind) IsRemoval() bool {
	return k == DictionaryItemRemoved || k == IterableItemRemoved
}

// IsAddition reports whether k adds an item.
func (k Kind) IsAddition() bool {
	return k == DictionaryItemAdded || k == IterableItemAdded
}

// Inverse returns the kind which undoes k.
func (k Kind) Inverse() Kind {
	switch k {
	case DictionaryItemRemoved:
		return DictionaryItemAdded
	case DictionaryItemAdded:
		return DictionaryItemRemoved
	case IterableItemRemoved:
		return IterableItemAdded
	case IterableItemAdded:
		return IterableItemRemoved
	}
	return k
}
