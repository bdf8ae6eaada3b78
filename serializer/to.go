package serializer

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/JaggerJo/Prowl/tag"
)

// ToTag converts a native value to a tag tree.
//
// Types implementing TagSerializable own their tag shape; everything
// else is reflected over using the cached per-type descriptor, with
// struct-tag metadata controlling inclusion and naming. Shared
// instances and cycles are handled per the ResolveReferences option.
func ToTag(v any, opts ...Option) (tag.Tag, error) {
	ctx := newContext(newConfig(opts))
	return ctx.ToTag(v)
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

func toTag(val reflect.Value, path string, ctx *Context) (tag.Tag, error) {
	if !val.IsValid() {
		return tag.NewNull(), nil
	}
	typ := val.Type()

	switch typ.Kind() {
	case reflect.Pointer:
		if val.IsNil() {
			return tag.NewNull(), nil
		}
		// Instance identity only applies to struct instances; they are
		// the only values that serialize to compounds, where "$id" and
		// "$ref" can live. Shared pointers to anything else duplicate.
		if typ.Elem().Kind() != reflect.Struct {
			return toTag(val.Elem(), path, ctx)
		}
		ptr := val.Pointer()
		if ref, release, err := ctx.track(ptr, path); err != nil {
			return nil, err
		} else if ref != nil {
			return ref, nil
		} else if release != nil {
			defer release()
		}
		node, err := toTag(val.Elem(), path, ctx)
		if err != nil {
			return nil, err
		}
		if comp, ok := node.(*tag.Compound); ok {
			ctx.noteEmitted(ptr, comp)
		}
		return node, nil

	case reflect.Interface:
		if val.IsNil() {
			return tag.NewNull(), nil
		}
		elem := val.Elem()
		node, err := toTag(elem, path, ctx)
		if err != nil {
			return nil, err
		}
		comp, ok := node.(*tag.Compound)
		if !ok {
			return nil, errAt(TypeMismatch, path,
				"polymorphic value of type %s serializes to %s; only compound-shaped values can record a type identity",
				elem.Type(), node.TagType())
		}
		// A back-reference inherits its identity from the original
		// instance; no need to stamp it again.
		if comp.Has(refKey) {
			return comp, nil
		}
		name, ok := identityOf(elem.Type())
		if !ok {
			return nil, errAt(UnknownType, path,
				"type %s is not registered; call serializer.Register before serializing it polymorphically",
				elem.Type())
		}
		comp.Set(typeKey, tag.FromString(name))
		// Record whether the interface held a pointer or a value, so the
		// round trip restores the same form.
		if elem.Kind() == reflect.Pointer {
			comp.Set(ptrKey, tag.FromBool(true))
		}
		return comp, nil
	}

	// Custom-serializable types bypass reflection entirely.
	if ts, ok := asTagSerializable(val); ok {
		comp, err := ts.SerializeTag(ctx)
		if err != nil {
			return nil, err
		}
		return comp, nil
	}

	switch typ.Kind() {
	case reflect.Bool:
		return tag.FromBool(val.Bool()), nil
	case reflect.Int8:
		return tag.FromByte(byte(val.Int())), nil
	case reflect.Uint8:
		return tag.FromByte(byte(val.Uint())), nil
	case reflect.Int16:
		return tag.FromShort(int16(val.Int())), nil
	case reflect.Uint16:
		return tag.FromShort(int16(val.Uint())), nil
	case reflect.Int32:
		return tag.FromInt(int32(val.Int())), nil
	case reflect.Uint32:
		return tag.FromInt(int32(val.Uint())), nil
	case reflect.Int, reflect.Int64:
		return tag.FromLong(val.Int()), nil
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		return tag.FromLong(int64(val.Uint())), nil
	case reflect.Float32:
		return tag.FromFloat(float32(val.Float())), nil
	case reflect.Float64:
		return tag.FromDouble(val.Float()), nil
	case reflect.String:
		return tag.FromString(val.String()), nil
	case reflect.Slice, reflect.Array:
		return sliceToTag(val, path, ctx)
	case reflect.Map:
		return mapToTag(val, path, ctx)
	case reflect.Struct:
		return structToTag(val, path, ctx)
	}
	return nil, errAt(TypeMismatch, path, "unsupported type %s", typ)
}

// asTagSerializable checks the value and, when addressable or copyable,
// its pointer for the custom-serializable capability.
func asTagSerializable(val reflect.Value) (TagSerializable, bool) {
	if val.Kind() != reflect.Struct {
		return nil, false
	}
	if ts, ok := val.Interface().(TagSerializable); ok {
		return ts, true
	}
	pt := reflect.PointerTo(val.Type())
	if pt.Implements(reflect.TypeOf((*TagSerializable)(nil)).Elem()) {
		if val.CanAddr() {
			return val.Addr().Interface().(TagSerializable), true
		}
		// Non-addressable value with a pointer-receiver implementation:
		// serialize a copy. DeserializeTag never lands here because the
		// engine always deserializes through settable values.
		pv := reflect.New(val.Type())
		pv.Elem().Set(val)
		return pv.Interface().(TagSerializable), true
	}
	return nil, false
}

func sliceToTag(val reflect.Value, path string, ctx *Context) (tag.Tag, error) {
	typ := val.Type()
	if typ.Kind() == reflect.Slice && typ.Elem().Kind() == reflect.Uint8 {
		cp := make([]byte, val.Len())
		reflect.Copy(reflect.ValueOf(cp), val)
		return tag.FromByteArray(cp), nil
	}
	if typ.Kind() == reflect.Slice && val.IsNil() {
		return tag.NewNull(), nil
	}
	// A nil pointer or interface element cannot appear as a bare Null
	// inside a list without breaking the locked element type, so it is
	// carried as a compound with the reserved "$nil" key instead.
	et := typ.Elem()
	boxNil := et.Kind() == reflect.Interface ||
		(et.Kind() == reflect.Pointer && et.Elem().Kind() == reflect.Struct)
	l := tag.NewList(tag.NullType)
	for i := 0; i < val.Len(); i++ {
		ev := val.Index(i)
		var elem tag.Tag
		var err error
		if boxNil && ev.IsNil() {
			elem = nilMarker()
		} else {
			elem, err = toTag(ev, indexPath(path, i), ctx)
		}
		if err != nil {
			return nil, err
		}
		if err := l.Add(elem); err != nil {
			return nil, wrapAt(ListTypeViolation, indexPath(path, i), err,
				"element type %s disagrees with list type %s", elem.TagType(), l.ListType())
		}
	}
	return l, nil
}

func nilMarker() *tag.Compound {
	comp := tag.NewCompound()
	comp.Set(nilKey, tag.FromBool(true))
	return comp
}

// mapToTag serializes string-keyed maps as compounds. Keys are sorted
// so output is deterministic regardless of map iteration order.
func mapToTag(val reflect.Value, path string, ctx *Context) (tag.Tag, error) {
	if val.IsNil() {
		return tag.NewNull(), nil
	}
	if val.Type().Key().Kind() != reflect.String {
		return nil, errAt(TypeMismatch, path, "map keys must be strings, got %s", val.Type().Key())
	}
	keys := make([]string, 0, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		keys = append(keys, iter.Key().String())
	}
	sort.Strings(keys)
	comp := tag.NewCompound()
	for _, k := range keys {
		node, err := toTag(val.MapIndex(reflect.ValueOf(k).Convert(val.Type().Key())), joinPath(path, k), ctx)
		if err != nil {
			return nil, err
		}
		comp.Set(k, node)
	}
	return comp, nil
}

func structToTag(val reflect.Value, path string, ctx *Context) (tag.Tag, error) {
	desc, err := descriptorOf(val.Type())
	if err != nil {
		return nil, descErr(err, path)
	}
	comp := tag.NewCompound()
	for _, fd := range desc.fields {
		fv := fd.fieldValue(val)
		if fd.omitZero && fv.IsZero() {
			continue
		}
		node, err := toTag(fv, joinPath(path, fd.key), ctx)
		if err != nil {
			return nil, err
		}
		comp.Set(fd.key, node)
	}
	return comp, nil
}

// descErr attaches the traversal path to a descriptor construction
// error while keeping its kind intact.
func descErr(err error, path string) error {
	if se, ok := err.(*Error); ok && se.FieldPath == "" {
		return &Error{Kind: se.Kind, FieldPath: path, Message: se.Message, Err: se.Err}
	}
	return err
}
