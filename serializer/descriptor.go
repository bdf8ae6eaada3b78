package serializer

import (
	"fmt"
	"reflect"
	"sync"
)

// Reserved compound keys used by the engine itself. Fields may not be
// renamed to these.
const (
	typeKey = "$type"
	idKey   = "$id"
	refKey  = "$ref"
	nilKey  = "$nil"
	ptrKey  = "$ptr"
)

func isReservedKey(k string) bool {
	switch k {
	case typeKey, idKey, refKey, nilKey, ptrKey:
		return true
	}
	return false
}

// fieldDesc describes one serializable struct field.
type fieldDesc struct {
	// index is the reflect field index path; len > 1 for fields
	// reached through embedded structs.
	index []int

	// name is the declared struct field name, key the effective
	// (possibly renamed) compound key.
	name string
	key  string

	// formerly lists historical keys checked in declaration order when
	// key is absent during deserialization.
	formerly []string

	// omitZero skips the field when its value equals the type's zero
	// value.
	omitZero bool

	typ reflect.Type
}

// typeDesc is the cached per-type field table. Built once per struct
// type and reused by every traversal.
type typeDesc struct {
	typ    reflect.Type
	fields []*fieldDesc
	byKey  map[string]*fieldDesc
	// former maps every historical key to its field for O(1) lookups
	// during deserialization.
	former map[string]*fieldDesc
}

// descCache maps reflect.Type to *typeDesc or to the error produced
// while building it (validation failures are sticky).
var descCache sync.Map

func descriptorOf(t reflect.Type) (*typeDesc, error) {
	if v, ok := descCache.Load(t); ok {
		switch x := v.(type) {
		case *typeDesc:
			return x, nil
		case error:
			return nil, x
		}
	}
	d, err := buildDescriptor(t)
	if err != nil {
		descCache.Store(t, err)
		return nil, err
	}
	descCache.Store(t, d)
	return d, nil
}

func buildDescriptor(t reflect.Type) (*typeDesc, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("descriptor requires a struct type, got %s", t)
	}
	d := &typeDesc{
		typ:    t,
		byKey:  map[string]*fieldDesc{},
		former: map[string]*fieldDesc{},
	}
	if err := collectFields(t, nil, d); err != nil {
		return nil, err
	}
	// Former names may not shadow another field's effective key: a
	// document containing that key would deserialize ambiguously.
	for _, f := range d.fields {
		for _, old := range f.formerly {
			if other, ok := d.byKey[old]; ok && other != f {
				return nil, errAt(AmbiguousRename, "",
					"former name %q of field %s.%s is the effective key of field %s",
					old, t.Name(), f.name, other.name)
			}
			if prev, ok := d.former[old]; ok && prev != f {
				return nil, errAt(AmbiguousRename, "",
					"former name %q claimed by both %s.%s and %s.%s",
					old, t.Name(), prev.name, t.Name(), f.name)
			}
			d.former[old] = f
		}
	}
	return d, nil
}

// collectFields walks t's fields, flattening embedded structs into the
// parent table. idx is the reflect index prefix for embedded access.
func collectFields(t reflect.Type, idx []int, d *typeDesc) error {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldIdx := append(append([]int(nil), idx...), i)

		if field.Anonymous {
			ft := field.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct && field.Type.Kind() != reflect.Pointer {
				if err := collectFields(ft, fieldIdx, d); err != nil {
					return err
				}
				continue
			}
			// Embedded pointers and non-structs are not flattened;
			// fall through and treat them as ordinary fields.
		}

		if !field.IsExported() {
			continue
		}

		fd := &fieldDesc{
			index: fieldIdx,
			name:  field.Name,
			key:   field.Name,
			typ:   field.Type,
		}

		tagStr := field.Tag.Get("prowl")
		if tagStr == "-" {
			continue
		}
		entries, err := parseFieldTag(tagStr)
		if err != nil {
			return fmt.Errorf("field %s.%s: %w", t.Name(), field.Name, err)
		}
		skip := false
		for _, e := range entries {
			switch e.key {
			case "name":
				if e.value == "" {
					return fmt.Errorf("field %s.%s: name= requires a value", t.Name(), field.Name)
				}
				fd.key = e.value
			case "formerly":
				if e.value == "" {
					return fmt.Errorf("field %s.%s: formerly= requires a value", t.Name(), field.Name)
				}
				fd.formerly = append(fd.formerly, e.value)
			case "omitzero":
				fd.omitZero = true
			case "-":
				skip = true
			default:
				return fmt.Errorf("field %s.%s: unknown prowl tag key %q", t.Name(), field.Name, e.key)
			}
		}
		if skip {
			continue
		}

		if isReservedKey(fd.key) {
			return errAt(AmbiguousRename, "",
				"field %s.%s renamed to reserved key %q", t.Name(), field.Name, fd.key)
		}
		if other, ok := d.byKey[fd.key]; ok {
			return errAt(AmbiguousRename, "",
				"fields %s.%s and %s.%s both serialize under key %q",
				t.Name(), other.name, t.Name(), fd.name, fd.key)
		}

		d.byKey[fd.key] = fd
		d.fields = append(d.fields, fd)
	}
	return nil
}

// fieldValue resolves fd on a struct value. Pointer embeds are not
// flattened, so the index path never crosses a nil pointer.
func (fd *fieldDesc) fieldValue(structVal reflect.Value) reflect.Value {
	return structVal.FieldByIndex(fd.index)
}
