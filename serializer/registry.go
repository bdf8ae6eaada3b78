package serializer

import (
	"fmt"
	"reflect"
	"sync"
)

// The polymorphic type registry maps stable string identities to
// concrete Go types. When a field's static type is an interface, the
// engine records the value's registered identity under the reserved
// "$type" key so deserialization can reconstruct the right concrete
// type. Identities must stay stable across releases; renaming a Go type
// is free as long as its registered identity is kept.
type typeRegistry struct {
	mu     sync.RWMutex
	byName map[string]reflect.Type
	byType map[reflect.Type]string
}

var registry = &typeRegistry{
	byName: map[string]reflect.Type{},
	byType: map[reflect.Type]string{},
}

// Register records T under the given identity. T must be a struct type;
// values are serialized through pointers to it. Registering the same
// identity or type twice is an error.
func Register[T any](name string) error {
	return RegisterType(name, reflect.TypeOf((*T)(nil)).Elem())
}

// MustRegister is Register but panics on error, for use in package init
// blocks.
func MustRegister[T any](name string) {
	if err := Register[T](name); err != nil {
		panic(err)
	}
}

// RegisterType is the non-generic form of Register.
func RegisterType(name string, rt reflect.Type) error {
	if name == "" {
		return fmt.Errorf("type identity must be non-empty")
	}
	if rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return fmt.Errorf("type identity %q: %s is not a struct type", name, rt)
	}
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if prev, ok := registry.byName[name]; ok {
		return fmt.Errorf("type identity %q already registered for %s", name, prev)
	}
	if prev, ok := registry.byType[rt]; ok {
		return fmt.Errorf("type %s already registered as %q", rt, prev)
	}
	registry.byName[name] = rt
	registry.byType[rt] = name
	return nil
}

// identityOf returns the registered identity for rt (pointer types are
// looked up by element).
func identityOf(rt reflect.Type) (string, bool) {
	if rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	name, ok := registry.byType[rt]
	return name, ok
}

// typeByIdentity resolves a recorded identity back to its struct type.
func typeByIdentity(name string) (reflect.Type, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	rt, ok := registry.byName[name]
	return rt, ok
}
