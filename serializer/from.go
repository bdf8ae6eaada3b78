package serializer

import (
	"fmt"
	"reflect"

	"github.com/JaggerJo/Prowl/tag"
)

// FromTag reconstructs a native value from a tag tree, deserializing
// into v, which must be a non-nil pointer. Fields absent from the tree
// (including fields only reachable through former names that are also
// absent) are left at their defaults, which is how newly added fields
// behave on old data.
func FromTag(t tag.Tag, v any, opts ...Option) error {
	ctx := newContext(newConfig(opts))
	return ctx.FromTag(t, v)
}

// New constructs a fresh T from a tag tree. It is the
// allocation-owning counterpart of FromTag: use FromTag to fill an
// existing instance, New when the caller wants the engine to allocate.
func New[T any](t tag.Tag, opts ...Option) (T, error) {
	var out T
	err := FromTag(t, &out, opts...)
	return out, err
}

// NewNamed constructs an instance of the concrete type recorded under
// the tree's "$type" key and returns it as a pointer to that type.
func NewNamed(t tag.Tag, opts ...Option) (any, error) {
	comp, ok := t.(*tag.Compound)
	if !ok {
		return nil, errAt(TypeMismatch, "", "expected a compound tag, got %s", t.TagType())
	}
	name, err := comp.GetString(typeKey)
	if err != nil {
		return nil, errAt(UnknownType, "", "compound carries no %q key", typeKey)
	}
	rt, ok := typeByIdentity(name)
	if !ok {
		return nil, errAt(UnknownType, "", "type identity %q is not registered", name)
	}
	pv := reflect.New(rt)
	ctx := newContext(newConfig(opts))
	if err := fromTag(comp, pv, "", ctx); err != nil {
		return nil, err
	}
	return pv.Interface(), nil
}

func targetValue(v any) (reflect.Value, error) {
	if v == nil {
		return reflect.Value{}, &Error{Kind: TypeMismatch, Message: "destination must be a non-nil pointer"}
	}
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Pointer || val.IsNil() {
		return reflect.Value{}, &Error{Kind: TypeMismatch, Message: fmt.Sprintf("destination must be a non-nil pointer, got %T", v)}
	}
	return val, nil
}

// fromTag fills val from t. val is either a settable value or a non-nil
// pointer obtained from the caller.
func fromTag(t tag.Tag, val reflect.Value, path string, ctx *Context) error {
	if t == nil {
		t = tag.NewNull()
	}

	switch val.Kind() {
	case reflect.Pointer:
		return pointerFromTag(t, val, path, ctx)
	case reflect.Interface:
		return interfaceFromTag(t, val, path, ctx)
	}

	if _, ok := t.(*tag.Null); ok {
		val.SetZero()
		return nil
	}

	switch val.Kind() {
	case reflect.Struct:
		return structFromTag(t, val, path, ctx)
	case reflect.Slice, reflect.Array:
		return sliceFromTag(t, val, path, ctx)
	case reflect.Map:
		return mapFromTag(t, val, path, ctx)
	case reflect.Bool:
		b, ok := t.(*tag.Byte)
		if !ok {
			return errAt(TypeMismatch, path, "expected Byte for bool, got %s", t.TagType())
		}
		val.SetBool(b.Bool())
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return intFromTag(t, val, path)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return uintFromTag(t, val, path)
	case reflect.Float32, reflect.Float64:
		var f float64
		switch x := t.(type) {
		case *tag.Float:
			f = float64(x.Value)
		case *tag.Double:
			f = x.Value
		default:
			return errAt(TypeMismatch, path, "expected Float or Double, got %s", t.TagType())
		}
		if val.OverflowFloat(f) {
			return errAt(TypeMismatch, path, "value %g overflows %s", f, val.Type())
		}
		val.SetFloat(f)
		return nil
	case reflect.String:
		s, ok := t.(*tag.String)
		if !ok {
			return errAt(TypeMismatch, path, "expected String, got %s", t.TagType())
		}
		val.SetString(s.Value)
		return nil
	}
	return errAt(TypeMismatch, path, "unsupported type %s", val.Type())
}

func pointerFromTag(t tag.Tag, val reflect.Value, path string, ctx *Context) error {
	if _, ok := t.(*tag.Null); ok {
		// Top-level destination pointers are not settable; zero what
		// they point at instead.
		if val.CanSet() {
			val.SetZero()
		} else {
			val.Elem().SetZero()
		}
		return nil
	}
	if comp, ok := t.(*tag.Compound); ok {
		if comp.Has(refKey) {
			return resolveBackRef(comp, val, path, ctx)
		}
		if comp.Has(nilKey) {
			if val.CanSet() {
				val.SetZero()
			} else {
				val.Elem().SetZero()
			}
			return nil
		}
		if val.IsNil() {
			if !val.CanSet() {
				return errAt(TypeMismatch, path, "cannot allocate through unsettable pointer")
			}
			val.Set(reflect.New(val.Type().Elem()))
		}
		// Register shared instances before filling fields so cycles
		// back to this instance resolve during the fill.
		if comp.Has(idKey) {
			id, err := comp.GetInt(idKey)
			if err != nil {
				return wrapAt(TypeMismatch, path, err, "malformed %q", idKey)
			}
			ctx.instances[int(id)] = val
		}
		if ts, ok := val.Interface().(TagSerializable); ok {
			return ts.DeserializeTag(comp, ctx)
		}
		return fromTag(comp, val.Elem(), path, ctx)
	}
	if val.IsNil() {
		if !val.CanSet() {
			return errAt(TypeMismatch, path, "cannot allocate through unsettable pointer")
		}
		val.Set(reflect.New(val.Type().Elem()))
	}
	return fromTag(t, val.Elem(), path, ctx)
}

func interfaceFromTag(t tag.Tag, val reflect.Value, path string, ctx *Context) error {
	if _, ok := t.(*tag.Null); ok {
		val.SetZero()
		return nil
	}
	comp, ok := t.(*tag.Compound)
	if !ok {
		return errAt(TypeMismatch, path, "expected Compound for interface value, got %s", t.TagType())
	}
	if comp.Has(refKey) {
		return resolveBackRef(comp, val, path, ctx)
	}
	if comp.Has(nilKey) {
		val.SetZero()
		return nil
	}
	name, err := comp.GetString(typeKey)
	if err != nil {
		return errAt(UnknownType, path, "compound carries no %q key for interface target %s", typeKey, val.Type())
	}
	rt, ok := typeByIdentity(name)
	if !ok {
		if ctx.cfg.strictTypes {
			return errAt(UnknownType, path, "type identity %q is not registered", name)
		}
		ctx.diag(path, "type identity %q is not registered; field left at default", name)
		return nil
	}
	pv := reflect.New(rt)
	if comp.Has(idKey) {
		id, err := comp.GetInt(idKey)
		if err != nil {
			return wrapAt(TypeMismatch, path, err, "malformed %q", idKey)
		}
		ctx.instances[int(id)] = pv
	}
	if ts, ok := pv.Interface().(TagSerializable); ok {
		if err := ts.DeserializeTag(comp, ctx); err != nil {
			return err
		}
	} else if err := fromTag(comp, pv.Elem(), path, ctx); err != nil {
		return err
	}
	// A "$ptr" or "$id" key marks an instance that was serialized from a
	// pointer; anything else goes back in as a value when the value form
	// satisfies the interface.
	wantPtr := comp.Has(ptrKey) || comp.Has(idKey)
	switch {
	case wantPtr && pv.Type().AssignableTo(val.Type()):
		val.Set(pv)
	case !wantPtr && rt.AssignableTo(val.Type()):
		val.Set(pv.Elem())
	case pv.Type().AssignableTo(val.Type()):
		val.Set(pv)
	case rt.AssignableTo(val.Type()):
		val.Set(pv.Elem())
	default:
		return errAt(TypeMismatch, path, "%s does not implement %s", rt, val.Type())
	}
	return nil
}

func resolveBackRef(comp *tag.Compound, val reflect.Value, path string, ctx *Context) error {
	id, err := comp.GetInt(refKey)
	if err != nil {
		return wrapAt(TypeMismatch, path, err, "malformed %q", refKey)
	}
	inst, ok := ctx.instances[int(id)]
	if !ok {
		return errAt(TypeMismatch, path, "dangling back-reference %d", id)
	}
	switch {
	case inst.Type().AssignableTo(val.Type()):
		val.Set(inst)
	case inst.Kind() == reflect.Pointer && inst.Elem().Type().AssignableTo(val.Type()):
		val.Set(inst.Elem())
	default:
		return errAt(TypeMismatch, path, "back-reference %d has type %s, want %s", id, inst.Type(), val.Type())
	}
	return nil
}

func structFromTag(t tag.Tag, val reflect.Value, path string, ctx *Context) error {
	comp, ok := t.(*tag.Compound)
	if !ok {
		return errAt(TypeMismatch, path, "expected Compound for struct %s, got %s", val.Type(), t.TagType())
	}
	if val.CanAddr() {
		if ts, ok := val.Addr().Interface().(TagSerializable); ok {
			return ts.DeserializeTag(comp, ctx)
		}
	}
	desc, err := descriptorOf(val.Type())
	if err != nil {
		return descErr(err, path)
	}
	for _, fd := range desc.fields {
		node, ok := comp.Get(fd.key)
		if !ok {
			for _, old := range fd.formerly {
				if node, ok = comp.Get(old); ok {
					break
				}
			}
		}
		if !ok {
			continue // absent: the field keeps its default
		}
		fv := fd.fieldValue(val)
		if err := fromTag(node, fv, joinPath(path, fd.key), ctx); err != nil {
			return err
		}
	}
	return nil
}

func sliceFromTag(t tag.Tag, val reflect.Value, path string, ctx *Context) error {
	typ := val.Type()
	if typ.Kind() == reflect.Slice && typ.Elem().Kind() == reflect.Uint8 {
		ba, ok := t.(*tag.ByteArray)
		if !ok {
			return errAt(TypeMismatch, path, "expected ByteArray, got %s", t.TagType())
		}
		cp := make([]byte, len(ba.Value))
		copy(cp, ba.Value)
		val.SetBytes(cp)
		return nil
	}
	l, ok := t.(*tag.List)
	if !ok {
		return errAt(TypeMismatch, path, "expected List, got %s", t.TagType())
	}
	n := l.Len()
	if typ.Kind() == reflect.Array {
		if n != typ.Len() {
			return errAt(TypeMismatch, path, "list has %d elements, array wants %d", n, typ.Len())
		}
	} else {
		val.Set(reflect.MakeSlice(typ, n, n))
	}
	for i := 0; i < n; i++ {
		elem, err := l.At(i)
		if err != nil {
			return wrapAt(TypeMismatch, indexPath(path, i), err, "list access failed")
		}
		if err := fromTag(elem, val.Index(i), indexPath(path, i), ctx); err != nil {
			return err
		}
	}
	return nil
}

func mapFromTag(t tag.Tag, val reflect.Value, path string, ctx *Context) error {
	comp, ok := t.(*tag.Compound)
	if !ok {
		return errAt(TypeMismatch, path, "expected Compound for map, got %s", t.TagType())
	}
	typ := val.Type()
	if typ.Key().Kind() != reflect.String {
		return errAt(TypeMismatch, path, "map keys must be strings, got %s", typ.Key())
	}
	m := reflect.MakeMapWithSize(typ, comp.Len())
	for i := 0; i < comp.Len(); i++ {
		key, node := comp.Entry(i)
		ev := reflect.New(typ.Elem()).Elem()
		if err := fromTag(node, ev, joinPath(path, key), ctx); err != nil {
			return err
		}
		m.SetMapIndex(reflect.ValueOf(key).Convert(typ.Key()), ev)
	}
	val.Set(m)
	return nil
}

// intFromTag converts integer tags into signed integer fields. A Byte
// payload is reinterpreted as signed so int8 round trips exactly.
func intFromTag(t tag.Tag, val reflect.Value, path string) error {
	var n int64
	switch x := t.(type) {
	case *tag.Byte:
		n = int64(int8(x.Value))
	case *tag.Short:
		n = int64(x.Value)
	case *tag.Int:
		n = int64(x.Value)
	case *tag.Long:
		n = x.Value
	default:
		return errAt(TypeMismatch, path, "expected an integer tag, got %s", t.TagType())
	}
	if val.OverflowInt(n) {
		return errAt(TypeMismatch, path, "value %d overflows %s", n, val.Type())
	}
	val.SetInt(n)
	return nil
}

func uintFromTag(t tag.Tag, val reflect.Value, path string) error {
	var u uint64
	switch x := t.(type) {
	case *tag.Byte:
		u = uint64(x.Value)
	case *tag.Short:
		u = uint64(uint16(x.Value))
	case *tag.Int:
		u = uint64(uint32(x.Value))
	case *tag.Long:
		u = uint64(x.Value)
	default:
		return errAt(TypeMismatch, path, "expected an integer tag, got %s", t.TagType())
	}
	if val.OverflowUint(u) {
		return errAt(TypeMismatch, path, "value %d overflows %s", u, val.Type())
	}
	val.SetUint(u)
	return nil
}
