package serializer

import (
	"fmt"
	"reflect"

	"github.com/JaggerJo/Prowl/tag"
)

// Context carries the state of one full graph traversal: configuration,
// the visited-instance table used for shared-reference and cycle
// handling, and collected diagnostics. A Context is created per
// top-level ToTag/FromTag call and discarded afterward; it is not safe
// for concurrent use.
type Context struct {
	cfg *config

	// Serialize side: pointer identity -> assigned id, and id -> the
	// compound emitted for it (so "$id" can be stamped lazily, only
	// when an instance is actually referenced a second time).
	nextID  int
	ids     map[uintptr]int
	emitted map[int]*tag.Compound
	// ids referenced before their compound finished building (true
	// cycles); stamped by noteEmitted instead.
	needsID map[int]bool

	// In-flight pointers for cycle rejection when reference resolution
	// is disabled. Keyed like the teacher's visited map: pointer
	// address -> field path of first visit.
	inFlight map[uintptr]string

	// Deserialize side: id -> reconstructed instance.
	instances map[int]reflect.Value

	diags []Diagnostic
}

func newContext(cfg *config) *Context {
	return &Context{
		cfg:       cfg,
		ids:       map[uintptr]int{},
		emitted:   map[int]*tag.Compound{},
		needsID:   map[int]bool{},
		inFlight:  map[uintptr]string{},
		instances: map[int]reflect.Value{},
	}
}

// Diagnostics returns the non-fatal conditions recorded during the
// traversal, in encounter order.
func (c *Context) Diagnostics() []Diagnostic { return c.diags }

func (c *Context) diag(path, format string, args ...any) {
	d := Diagnostic{FieldPath: path, Message: fmt.Sprintf(format, args...)}
	c.diags = append(c.diags, d)
	if c.cfg.diagSink != nil {
		*c.cfg.diagSink = append(*c.cfg.diagSink, d)
	}
}

// ToTag serializes v within this traversal, sharing the visited table.
// Custom-serializable types use it to serialize nested values.
func (c *Context) ToTag(v any) (tag.Tag, error) {
	if v == nil {
		return tag.NewNull(), nil
	}
	return toTag(reflect.ValueOf(v), "", c)
}

// FromTag deserializes t into v (a non-nil pointer) within this
// traversal.
func (c *Context) FromTag(t tag.Tag, v any) error {
	val, err := targetValue(v)
	if err != nil {
		return err
	}
	return fromTag(t, val, "", c)
}

// track registers a pointer on the serialize side. It returns:
//   - a back-reference compound if ptr was already serialized and
//     reference resolution is on,
//   - an error if ptr is in flight and reference resolution is off,
//   - otherwise nil, nil, and a release function to defer.
func (c *Context) track(ptr uintptr, path string) (*tag.Compound, func(), error) {
	if c.cfg.resolveReferences {
		if id, ok := c.ids[ptr]; ok {
			if orig := c.emitted[id]; orig != nil {
				if !orig.Has(idKey) {
					orig.Set(idKey, tag.FromInt(int32(id)))
				}
			} else {
				// Still being built (a true cycle); noteEmitted stamps it.
				c.needsID[id] = true
			}
			ref := tag.NewCompound()
			ref.Set(refKey, tag.FromInt(int32(id)))
			return ref, nil, nil
		}
		id := c.nextID
		c.nextID++
		c.ids[ptr] = id
		return nil, func() {}, nil
	}
	if prev, seen := c.inFlight[ptr]; seen {
		return nil, nil, errAt(CyclicReference, path,
			"instance first seen at %q revisited", prev)
	}
	c.inFlight[ptr] = path
	return nil, func() { delete(c.inFlight, ptr) }, nil
}

// noteEmitted associates the compound produced for ptr with its id so a
// later revisit can stamp "$id" on it.
func (c *Context) noteEmitted(ptr uintptr, comp *tag.Compound) {
	if !c.cfg.resolveReferences {
		return
	}
	if id, ok := c.ids[ptr]; ok {
		c.emitted[id] = comp
		if c.needsID[id] && !comp.Has(idKey) {
			comp.Set(idKey, tag.FromInt(int32(id)))
		}
	}
}
