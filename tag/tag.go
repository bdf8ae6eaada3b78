// Package tag defines the tree model for serialized object graphs.
//
// A tag tree is a self-describing recursive structure: scalar tags wrap
// exactly one value, List holds a homogeneously-typed ordered sequence,
// and Compound holds an ordered key-to-tag mapping. The tree carries no
// position or identity information beyond its own structure, which
// makes it directly representable in binary, JSON, or text form.
//
// A tag's Type never changes after construction; its payload may be
// mutated in place.
package tag

import (
	"fmt"
	"strings"
)

// Tag is a node in the serialization tree.
type Tag interface {
	// TagType returns the node's type. It is stable for the node's
	// lifetime.
	TagType() Type
	// Clone returns a deep, fully independent copy of the node.
	Clone() Tag
	// String returns an indented diagnostic rendering. It is not a
	// wire format.
	String() string
}

// Null is the empty tag. It also serves as the "unconstrained" sentinel
// for a List that has not yet received an element.
type Null struct{}

func NewNull() *Null { return &Null{} }

func (*Null) TagType() Type  { return NullType }
func (*Null) Clone() Tag     { return &Null{} }
func (*Null) String() string { return "Null" }

type Byte struct{ Value byte }

func FromByte(v byte) *Byte { return &Byte{Value: v} }

func (*Byte) TagType() Type    { return ByteType }
func (t *Byte) Clone() Tag     { return &Byte{Value: t.Value} }
func (t *Byte) String() string { return fmt.Sprintf("Byte %d", t.Value) }

// FromBool stores a bool as a Byte tag, 1 for true and 0 for false.
// The tag set has no bool type; this is the conventional mapping.
func FromBool(v bool) *Byte {
	if v {
		return &Byte{Value: 1}
	}
	return &Byte{Value: 0}
}

// Bool interprets the byte payload as a bool.
func (t *Byte) Bool() bool { return t.Value != 0 }

type Short struct{ Value int16 }

func FromShort(v int16) *Short { return &Short{Value: v} }

func (*Short) TagType() Type    { return ShortType }
func (t *Short) Clone() Tag     { return &Short{Value: t.Value} }
func (t *Short) String() string { return fmt.Sprintf("Short %d", t.Value) }

type Int struct{ Value int32 }

func FromInt(v int32) *Int { return &Int{Value: v} }

func (*Int) TagType() Type    { return IntType }
func (t *Int) Clone() Tag     { return &Int{Value: t.Value} }
func (t *Int) String() string { return fmt.Sprintf("Int %d", t.Value) }

type Long struct{ Value int64 }

func FromLong(v int64) *Long { return &Long{Value: v} }

func (*Long) TagType() Type    { return LongType }
func (t *Long) Clone() Tag     { return &Long{Value: t.Value} }
func (t *Long) String() string { return fmt.Sprintf("Long %d", t.Value) }

type Float struct{ Value float32 }

func FromFloat(v float32) *Float { return &Float{Value: v} }

func (*Float) TagType() Type    { return FloatType }
func (t *Float) Clone() Tag     { return &Float{Value: t.Value} }
func (t *Float) String() string { return fmt.Sprintf("Float %v", t.Value) }

type Double struct{ Value float64 }

func FromDouble(v float64) *Double { return &Double{Value: v} }

func (*Double) TagType() Type    { return DoubleType }
func (t *Double) Clone() Tag     { return &Double{Value: t.Value} }
func (t *Double) String() string { return fmt.Sprintf("Double %v", t.Value) }

type String struct{ Value string }

func FromString(v string) *String { return &String{Value: v} }

func (*String) TagType() Type    { return StringType }
func (t *String) Clone() Tag     { return &String{Value: t.Value} }
func (t *String) String() string { return fmt.Sprintf("String %q", t.Value) }

// ByteArray wraps a raw byte payload, e.g. pixel data. Clone copies the
// underlying slice.
type ByteArray struct{ Value []byte }

func FromByteArray(v []byte) *ByteArray { return &ByteArray{Value: v} }

func (*ByteArray) TagType() Type { return ByteArrayType }

func (t *ByteArray) Clone() Tag {
	cp := make([]byte, len(t.Value))
	copy(cp, t.Value)
	return &ByteArray{Value: cp}
}

func (t *ByteArray) String() string {
	const max = 16
	var b strings.Builder
	fmt.Fprintf(&b, "ByteArray(%d)", len(t.Value))
	n := len(t.Value)
	if n > max {
		n = max
	}
	if n > 0 {
		b.WriteString(" ")
		for _, v := range t.Value[:n] {
			fmt.Fprintf(&b, "%02x", v)
		}
		if len(t.Value) > max {
			b.WriteString("...")
		}
	}
	return b.String()
}

// indentLines indents every line after the first by two spaces per
// level. Shared by the List and Compound String methods.
func indentLines(s string) string {
	return strings.ReplaceAll(s, "\n", "\n  ")
}
