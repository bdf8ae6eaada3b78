package encode

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JaggerJo/Prowl/tag"
)

func sceneFixture(t *testing.T) *tag.Compound {
	t.Helper()
	meshes, err := tag.FromSlice([]tag.Tag{
		kv("Name", tag.FromString("cube"), "Verts", tag.FromByteArray([]byte{0, 1, 2, 255})),
		kv("Name", tag.FromString("sphere"), "Verts", tag.FromByteArray(nil)),
	})
	if err != nil {
		t.Fatalf("building fixture: %v", err)
	}
	return kv(
		"Title", tag.FromString("scene"),
		"Version", tag.FromInt(3),
		"Tick", tag.FromLong(-1),
		"Rate", tag.FromShort(144),
		"Scale", tag.FromDouble(0.5),
		"FOV", tag.FromFloat(60),
		"On", tag.FromByte(1),
		"Nothing", tag.NewNull(),
		"Meshes", meshes,
	)
}

func kv(pairs ...any) *tag.Compound {
	c := tag.NewCompound()
	for i := 0; i < len(pairs); i += 2 {
		c.Set(pairs[i].(string), pairs[i+1].(tag.Tag))
	}
	return c
}

func TestBinary_RoundTrip(t *testing.T) {
	root := sceneFixture(t)

	var buf bytes.Buffer
	if err := Encode(root, &buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !tag.Equal(root, back) {
		t.Errorf("round trip changed the tree:\nbefore: %s\nafter:  %s", root, back)
	}
}

func TestBinary_PreservesKeyOrder(t *testing.T) {
	root := kv("z", tag.FromInt(1), "a", tag.FromInt(2), "m", tag.FromInt(3))

	var buf bytes.Buffer
	if err := Encode(root, &buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff([]string{"z", "a", "m"}, back.(*tag.Compound).Keys()); diff != "" {
		t.Errorf("key order (-want +got):\n%s", diff)
	}
}

func TestBinary_EmptyListKeepsListType(t *testing.T) {
	root := kv("Empty", tag.NewList(tag.StringType))

	var buf bytes.Buffer
	if err := Encode(root, &buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	l, err := back.(*tag.Compound).GetList("Empty")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.ListType() != tag.StringType {
		t.Errorf("list type = %s, want String", l.ListType())
	}
}

func TestBinary_ScalarRoot(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(tag.FromString("just me"), &buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	s, ok := back.(*tag.String)
	if !ok || s.Value != "just me" {
		t.Errorf("got %v", back)
	}
}

func TestDecode_BadMagic(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("GTAP\x01"))); !errors.Is(err, ErrBadMagic) {
		t.Errorf("expected ErrBadMagic, got %v", err)
	}
	if _, err := Decode(bytes.NewReader(nil)); !errors.Is(err, ErrBadMagic) {
		t.Errorf("expected ErrBadMagic for empty input, got %v", err)
	}
}

func TestDecode_BadVersion(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("PTAG\x07"))); !errors.Is(err, ErrBadVersion) {
		t.Errorf("expected ErrBadVersion, got %v", err)
	}
}

func TestDecode_Truncated(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(sceneFixture(t), &buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	d := buf.Bytes()
	if _, err := Decode(bytes.NewReader(d[:len(d)-3])); !errors.Is(err, ErrCorrupt) {
		t.Errorf("expected ErrCorrupt, got %v", err)
	}
}

func TestDecode_DuplicateKey(t *testing.T) {
	// Hand-built document: compound with the key "a" twice.
	var buf bytes.Buffer
	buf.WriteString("PTAG\x01")
	buf.WriteByte(byte(tag.CompoundType))
	buf.WriteByte(2) // two entries
	for i := 0; i < 2; i++ {
		buf.WriteByte(1) // key length
		buf.WriteString("a")
		buf.WriteByte(byte(tag.ByteType))
		buf.WriteByte(byte(i))
	}
	if _, err := Decode(&buf); !errors.Is(err, ErrCorrupt) {
		t.Errorf("expected ErrCorrupt for duplicate key, got %v", err)
	}
}

func TestDecode_HugeElementCount(t *testing.T) {
	// A handful of input bytes must not be able to demand millions of
	// decoded nodes; Null list elements cost no payload bytes at all.
	var buf bytes.Buffer
	buf.WriteString("PTAG\x01")
	buf.WriteByte(byte(tag.ListType))
	buf.WriteByte(byte(tag.NullType))
	// uvarint for 2^30 elements.
	buf.Write([]byte{0x80, 0x80, 0x80, 0x80, 0x04})
	if _, err := Decode(&buf); !errors.Is(err, ErrCorrupt) {
		t.Errorf("expected ErrCorrupt for list count, got %v", err)
	}

	buf.Reset()
	buf.WriteString("PTAG\x01")
	buf.WriteByte(byte(tag.CompoundType))
	buf.Write([]byte{0x80, 0x80, 0x80, 0x80, 0x04})
	if _, err := Decode(&buf); !errors.Is(err, ErrCorrupt) {
		t.Errorf("expected ErrCorrupt for compound count, got %v", err)
	}
}

func TestDecode_OversizedLength(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("PTAG\x01")
	buf.WriteByte(byte(tag.StringType))
	// uvarint for 2^40, far over the length cap.
	buf.Write([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x20})
	if _, err := Decode(&buf); !errors.Is(err, ErrCorrupt) {
		t.Errorf("expected ErrCorrupt, got %v", err)
	}
}
