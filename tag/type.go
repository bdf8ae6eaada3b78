package tag

import "fmt"

// Type discriminates the kinds of nodes a tag tree may contain. The set
// is closed: wire encodings and the serializer both depend on it being
// exhaustive.
type Type int

const (
	NullType Type = iota
	ByteType
	ShortType
	IntType
	LongType
	FloatType
	DoubleType
	StringType
	ByteArrayType
	ListType
	CompoundType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		NullType:      "Null",
		ByteType:      "Byte",
		ShortType:     "Short",
		IntType:       "Int",
		LongType:      "Long",
		FloatType:     "Float",
		DoubleType:    "Double",
		StringType:    "String",
		ByteArrayType: "ByteArray",
		ListType:      "List",
		CompoundType:  "Compound",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"Null":      NullType,
		"Byte":      ByteType,
		"Short":     ShortType,
		"Int":       IntType,
		"Long":      LongType,
		"Float":     FloatType,
		"Double":    DoubleType,
		"String":    StringType,
		"ByteArray": ByteArrayType,
		"List":      ListType,
		"Compound":  CompoundType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized tag type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		NullType,
		ByteType,
		ShortType,
		IntType,
		LongType,
		FloatType,
		DoubleType,
		StringType,
		ByteArrayType,
		ListType,
		CompoundType,
	}
}

// IsScalar reports whether the type holds a single value rather than
// children.
func (t Type) IsScalar() bool {
	switch t {
	case ListType, CompoundType:
		return false
	default:
		return true
	}
}
