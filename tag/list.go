package tag

import (
	"fmt"
	"strings"
)

// List is an ordered, homogeneously-typed sequence of tags.
//
// The element type is locked: once any element is present, every
// element's type must equal ListType(). A list constructed without an
// explicit element type carries NullType as the "unconstrained"
// sentinel and is promoted to the type of its first inserted element.
type List struct {
	listType Type
	elems    []Tag
}

// NewList returns an empty list locked to the given element type. Pass
// NullType for an unconstrained list that promotes on first insert.
func NewList(listType Type) *List {
	return &List{listType: listType}
}

// FromSlice builds a list from the given elements, inferring the
// element type from the first element. An empty slice yields an
// unconstrained list; callers must not reach for elems[0] themselves.
func FromSlice(elems []Tag) (*List, error) {
	l := &List{}
	for _, e := range elems {
		if err := l.Add(e); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// ListType returns the locked element type, or NullType while the list
// is still unconstrained.
func (l *List) ListType() Type { return l.listType }

func (l *List) Len() int { return len(l.elems) }

// At returns the element at index i.
func (l *List) At(i int) (Tag, error) {
	if i < 0 || i >= len(l.elems) {
		return nil, fmt.Errorf("%w: %d (len %d)", ErrRange, i, len(l.elems))
	}
	return l.elems[i], nil
}

// Add appends t, promoting an unconstrained list to t's type. It
// returns ErrListType if t disagrees with the locked type; the list is
// left unchanged in that case.
func (l *List) Add(t Tag) error {
	if err := l.check(t); err != nil {
		return err
	}
	if l.listType == NullType {
		l.listType = t.TagType()
	}
	l.elems = append(l.elems, t)
	return nil
}

// Set replaces the element at index i. The list is dense: i must be in
// [0, Len()).
func (l *List) Set(i int, t Tag) error {
	if i < 0 || i >= len(l.elems) {
		return fmt.Errorf("%w: %d (len %d)", ErrRange, i, len(l.elems))
	}
	if err := l.check(t); err != nil {
		return err
	}
	if l.listType == NullType {
		l.listType = t.TagType()
	}
	l.elems[i] = t
	return nil
}

// SetListType changes the locked element type. It fails if any existing
// element disagrees with the new type.
func (l *List) SetListType(t Type) error {
	for i, e := range l.elems {
		if e.TagType() != t {
			return fmt.Errorf("%w: element %d is %s, want %s", ErrListType, i, e.TagType(), t)
		}
	}
	l.listType = t
	return nil
}

func (l *List) check(t Tag) error {
	if t == nil {
		return fmt.Errorf("%w: nil element", ErrListType)
	}
	if l.listType != NullType {
		if t.TagType() != l.listType {
			return fmt.Errorf("%w: got %s, list is locked to %s", ErrListType, t.TagType(), l.listType)
		}
		return nil
	}
	// Unconstrained only means empty. A list already holding Null
	// elements is a list of Nulls, not a wildcard; accepting anything
	// else would break homogeneity.
	if len(l.elems) > 0 && t.TagType() != NullType {
		return fmt.Errorf("%w: got %s, list holds Null elements", ErrListType, t.TagType())
	}
	return nil
}

func (*List) TagType() Type { return ListType }

// Clone returns a deep copy: every element is cloned recursively, so
// mutating the clone never affects the original.
func (l *List) Clone() Tag {
	cp := &List{listType: l.listType}
	cp.elems = make([]Tag, len(l.elems))
	for i, e := range l.elems {
		cp.elems[i] = e.Clone()
	}
	return cp
}

func (l *List) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "List<%s>(%d):", l.listType, len(l.elems))
	for _, e := range l.elems {
		b.WriteString("\n  ")
		b.WriteString(indentLines(e.String()))
	}
	return b.String()
}

// Get returns the element at index i asserted to the concrete tag type
// T, failing with ErrTypeMismatch if the stored node is something else.
func Get[T Tag](l *List, i int) (T, error) {
	var zero T
	e, err := l.At(i)
	if err != nil {
		return zero, err
	}
	v, ok := e.(T)
	if !ok {
		return zero, fmt.Errorf("%w: element %d is %s", ErrTypeMismatch, i, e.TagType())
	}
	return v, nil
}
