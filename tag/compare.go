package tag

import (
	"bytes"
	"cmp"
	"strings"
)

// Equal reports deep structural equality: same types, same scalar
// values, same element order, same keys in the same order.
func Equal(a, b Tag) bool {
	return Compare(a, b) == 0
}

// Compare returns an integer comparing two tags. The result will be 0
// if a==b, -1 if a < b, and +1 if a > b. Ordering is total: nodes of
// different types order by type rank, scalars by value, containers
// lexicographically over their children.
func Compare(a, b Tag) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	if a.TagType() != b.TagType() {
		return cmp.Compare(a.TagType(), b.TagType())
	}
	switch x := a.(type) {
	case *Null:
		return 0
	case *Byte:
		return cmp.Compare(x.Value, b.(*Byte).Value)
	case *Short:
		return cmp.Compare(x.Value, b.(*Short).Value)
	case *Int:
		return cmp.Compare(x.Value, b.(*Int).Value)
	case *Long:
		return cmp.Compare(x.Value, b.(*Long).Value)
	case *Float:
		return cmp.Compare(x.Value, b.(*Float).Value)
	case *Double:
		return cmp.Compare(x.Value, b.(*Double).Value)
	case *String:
		return strings.Compare(x.Value, b.(*String).Value)
	case *ByteArray:
		return bytes.Compare(x.Value, b.(*ByteArray).Value)
	case *List:
		return compareLists(x, b.(*List))
	case *Compound:
		return compareCompounds(x, b.(*Compound))
	}
	return 0
}

func compareLists(a, b *List) int {
	if c := cmp.Compare(a.listType, b.listType); c != 0 {
		return c
	}
	n := min(len(a.elems), len(b.elems))
	for i := 0; i < n; i++ {
		if c := Compare(a.elems[i], b.elems[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a.elems), len(b.elems))
}

func compareCompounds(a, b *Compound) int {
	n := min(len(a.keys), len(b.keys))
	for i := 0; i < n; i++ {
		if c := strings.Compare(a.keys[i], b.keys[i]); c != 0 {
			return c
		}
		if c := Compare(a.vals[i], b.vals[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a.keys), len(b.keys))
}
