package tag

import (
	"fmt"
	"strings"
)

// Compound is an ordered mapping from string key to tag. Keys are
// unique and insertion order is preserved, which keeps text and binary
// renderings deterministic and diffable.
type Compound struct {
	keys  []string
	vals  []Tag
	index map[string]int
}

func NewCompound() *Compound {
	return &Compound{index: map[string]int{}}
}

func (c *Compound) Len() int { return len(c.keys) }

// Keys returns the keys in insertion order. The returned slice is a
// copy.
func (c *Compound) Keys() []string {
	cp := make([]string, len(c.keys))
	copy(cp, c.keys)
	return cp
}

// Set inserts or replaces the tag stored under key. Replacing keeps the
// key's original position.
func (c *Compound) Set(key string, t Tag) {
	if t == nil {
		t = &Null{}
	}
	if i, ok := c.index[key]; ok {
		c.vals[i] = t
		return
	}
	c.index[key] = len(c.keys)
	c.keys = append(c.keys, key)
	c.vals = append(c.vals, t)
}

func (c *Compound) Get(key string) (Tag, bool) {
	i, ok := c.index[key]
	if !ok {
		return nil, false
	}
	return c.vals[i], true
}

func (c *Compound) Has(key string) bool {
	_, ok := c.index[key]
	return ok
}

// Delete removes key, preserving the order of the remaining entries.
func (c *Compound) Delete(key string) {
	i, ok := c.index[key]
	if !ok {
		return
	}
	c.keys = append(c.keys[:i], c.keys[i+1:]...)
	c.vals = append(c.vals[:i], c.vals[i+1:]...)
	delete(c.index, key)
	for j := i; j < len(c.keys); j++ {
		c.index[c.keys[j]] = j
	}
}

// Entry returns the key and tag at insertion position i.
func (c *Compound) Entry(i int) (string, Tag) {
	return c.keys[i], c.vals[i]
}

func (*Compound) TagType() Type { return CompoundType }

func (c *Compound) Clone() Tag {
	cp := NewCompound()
	for i, k := range c.keys {
		cp.Set(k, c.vals[i].Clone())
	}
	return cp
}

func (c *Compound) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Compound(%d):", len(c.keys))
	for i, k := range c.keys {
		b.WriteString("\n  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(indentLines(c.vals[i].String()))
	}
	return b.String()
}

// getTyped fetches key as the concrete tag type T.
func getTyped[T Tag](c *Compound, key string) (T, error) {
	var zero T
	t, ok := c.Get(key)
	if !ok {
		return zero, fmt.Errorf("%w: no key %q", ErrPath, key)
	}
	v, ok := t.(T)
	if !ok {
		return zero, fmt.Errorf("%w: key %q holds %s", ErrTypeMismatch, key, t.TagType())
	}
	return v, nil
}

// Typed accessors. Each fails with ErrTypeMismatch if the stored node's
// actual type differs from the accessor's expected type, and ErrPath if
// the key is absent.

func (c *Compound) GetByte(key string) (byte, error) {
	t, err := getTyped[*Byte](c, key)
	if err != nil {
		return 0, err
	}
	return t.Value, nil
}

func (c *Compound) GetShort(key string) (int16, error) {
	t, err := getTyped[*Short](c, key)
	if err != nil {
		return 0, err
	}
	return t.Value, nil
}

func (c *Compound) GetInt(key string) (int32, error) {
	t, err := getTyped[*Int](c, key)
	if err != nil {
		return 0, err
	}
	return t.Value, nil
}

func (c *Compound) GetLong(key string) (int64, error) {
	t, err := getTyped[*Long](c, key)
	if err != nil {
		return 0, err
	}
	return t.Value, nil
}

func (c *Compound) GetFloat(key string) (float32, error) {
	t, err := getTyped[*Float](c, key)
	if err != nil {
		return 0, err
	}
	return t.Value, nil
}

func (c *Compound) GetDouble(key string) (float64, error) {
	t, err := getTyped[*Double](c, key)
	if err != nil {
		return 0, err
	}
	return t.Value, nil
}

func (c *Compound) GetString(key string) (string, error) {
	t, err := getTyped[*String](c, key)
	if err != nil {
		return "", err
	}
	return t.Value, nil
}

func (c *Compound) GetByteArray(key string) ([]byte, error) {
	t, err := getTyped[*ByteArray](c, key)
	if err != nil {
		return nil, err
	}
	return t.Value, nil
}

func (c *Compound) GetBool(key string) (bool, error) {
	t, err := getTyped[*Byte](c, key)
	if err != nil {
		return false, err
	}
	return t.Bool(), nil
}

func (c *Compound) GetList(key string) (*List, error) {
	return getTyped[*List](c, key)
}

func (c *Compound) GetCompound(key string) (*Compound, error) {
	return getTyped[*Compound](c, key)
}

// StringOrDefault returns the string stored under key, or def when the
// key is absent. A present key of the wrong type still errors via
// GetString; this helper is for optional fields only.
func (c *Compound) StringOrDefault(key, def string) string {
	if !c.Has(key) {
		return def
	}
	v, err := c.GetString(key)
	if err != nil {
		return def
	}
	return v
}

// IntOrDefault returns the int32 stored under key, or def when absent.
func (c *Compound) IntOrDefault(key string, def int32) int32 {
	if !c.Has(key) {
		return def
	}
	v, err := c.GetInt(key)
	if err != nil {
		return def
	}
	return v
}
