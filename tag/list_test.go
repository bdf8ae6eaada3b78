package tag

import (
	"errors"
	"testing"
)

func TestList_PromotesOnFirstInsert(t *testing.T) {
	l := NewList(NullType)
	if l.ListType() != NullType {
		t.Fatalf("fresh list has type %s, want Null", l.ListType())
	}
	if err := l.Add(FromInt(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.ListType() != IntType {
		t.Errorf("list type = %s, want Int", l.ListType())
	}
}

func TestList_RejectsMixedTypes(t *testing.T) {
	l := NewList(IntType)
	if err := l.Add(FromInt(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := l.Add(FromString("nope"))
	if !errors.Is(err, ErrListType) {
		t.Fatalf("expected ErrListType, got %v", err)
	}
	// A failed insert must leave the list unchanged.
	if l.Len() != 1 {
		t.Errorf("list has %d elements after failed insert, want 1", l.Len())
	}
	if l.ListType() != IntType {
		t.Errorf("list type = %s after failed insert, want Int", l.ListType())
	}
}

func TestList_NullElementsLockTheList(t *testing.T) {
	l := NewList(NullType)
	if err := l.Add(NewNull()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A list holding Null elements is a list of Nulls; it must not keep
	// accepting arbitrary types as if it were still empty.
	if err := l.Add(NewCompound()); !errors.Is(err, ErrListType) {
		t.Fatalf("expected ErrListType, got %v", err)
	}
	if l.Len() != 1 {
		t.Errorf("list has %d elements after failed insert, want 1", l.Len())
	}
	if err := l.Add(NewNull()); err != nil {
		t.Errorf("adding another Null: %v", err)
	}
}

func TestList_SetChecksType(t *testing.T) {
	l := NewList(StringType)
	if err := l.Add(FromString("a")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := l.Set(0, FromInt(1)); !errors.Is(err, ErrListType) {
		t.Errorf("expected ErrListType, got %v", err)
	}
	if err := l.Set(1, FromString("b")); !errors.Is(err, ErrRange) {
		t.Errorf("expected ErrRange, got %v", err)
	}
	if err := l.Set(0, FromString("b")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := Get[*String](l, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Value != "b" {
		t.Errorf("element = %q, want %q", got.Value, "b")
	}
}

func TestList_SetListType(t *testing.T) {
	l := NewList(NullType)
	if err := l.SetListType(FloatType); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := l.Add(FromDouble(1)); !errors.Is(err, ErrListType) {
		t.Errorf("expected ErrListType, got %v", err)
	}
	if err := l.Add(FromFloat(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := l.SetListType(DoubleType); !errors.Is(err, ErrListType) {
		t.Errorf("expected ErrListType retyping a non-empty list, got %v", err)
	}
}

func TestFromSlice_EmptyIsUnconstrained(t *testing.T) {
	l, err := FromSlice(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.ListType() != NullType {
		t.Errorf("empty list type = %s, want Null", l.ListType())
	}
	if err := l.Add(FromByte(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestList_CloneIsDeep(t *testing.T) {
	inner := NewCompound()
	inner.Set("a", FromInt(1))
	l := NewList(CompoundType)
	if err := l.Add(inner); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cp := l.Clone().(*List)
	inner.Set("a", FromInt(2))
	got, err := Get[*Compound](cp, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := got.GetInt("a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 1 {
		t.Errorf("clone saw mutation of original: a = %d, want 1", v)
	}
}

func TestGet_TypeMismatch(t *testing.T) {
	l := NewList(IntType)
	if err := l.Add(FromInt(7)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Get[*String](l, 0); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("expected ErrTypeMismatch, got %v", err)
	}
}
