package tag

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCompound_PreservesInsertionOrder(t *testing.T) {
	c := NewCompound()
	c.Set("z", FromInt(1))
	c.Set("a", FromInt(2))
	c.Set("m", FromInt(3))

	want := []string{"z", "a", "m"}
	if diff := cmp.Diff(want, c.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}

	// Replacing keeps the key's position.
	c.Set("a", FromInt(42))
	if diff := cmp.Diff(want, c.Keys()); diff != "" {
		t.Errorf("keys after replace (-want +got):\n%s", diff)
	}
	v, err := c.GetInt("a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 42 {
		t.Errorf("a = %d, want 42", v)
	}
}

func TestCompound_Delete(t *testing.T) {
	c := NewCompound()
	c.Set("a", FromInt(1))
	c.Set("b", FromInt(2))
	c.Set("c", FromInt(3))
	c.Delete("b")

	if diff := cmp.Diff([]string{"a", "c"}, c.Keys()); diff != "" {
		t.Errorf("keys after delete (-want +got):\n%s", diff)
	}
	if c.Has("b") {
		t.Error("deleted key still present")
	}
	// Index map must be rebuilt for shifted entries.
	v, err := c.GetInt("c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 3 {
		t.Errorf("c = %d, want 3", v)
	}
}

func TestCompound_TypedAccessors(t *testing.T) {
	c := NewCompound()
	c.Set("b", FromByte(7))
	c.Set("s", FromString("hi"))
	c.Set("f", FromBool(true))

	if v, err := c.GetByte("b"); err != nil || v != 7 {
		t.Errorf("GetByte = %d, %v", v, err)
	}
	if v, err := c.GetBool("f"); err != nil || !v {
		t.Errorf("GetBool = %v, %v", v, err)
	}
	if _, err := c.GetInt("s"); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("expected ErrTypeMismatch, got %v", err)
	}
	if _, err := c.GetString("missing"); !errors.Is(err, ErrPath) {
		t.Errorf("expected ErrPath, got %v", err)
	}
}

func TestCompound_OrDefaults(t *testing.T) {
	c := NewCompound()
	c.Set("name", FromString("mesh0"))
	if got := c.StringOrDefault("name", "x"); got != "mesh0" {
		t.Errorf("got %q", got)
	}
	if got := c.StringOrDefault("other", "x"); got != "x" {
		t.Errorf("got %q", got)
	}
	if got := c.IntOrDefault("count", 9); got != 9 {
		t.Errorf("got %d", got)
	}
}

func TestCompound_CloneIsDeep(t *testing.T) {
	c := NewCompound()
	c.Set("data", FromByteArray([]byte{1, 2, 3}))
	cp := c.Clone().(*Compound)

	orig, err := c.GetByteArray("data")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	orig[0] = 99

	got, err := cp.GetByteArray("data")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0] != 1 {
		t.Errorf("clone shares byte array with original")
	}
}
