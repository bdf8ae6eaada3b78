package serializer

import (
	"bytes"
	"testing"

	"github.com/JaggerJo/Prowl/tag"
)

// Texture stands in for a resource whose wire shape diverges from its
// in-memory shape: the live handle is never serialized.
type Texture struct {
	handle uintptr

	Width  int32
	Height int32
	Pixels []byte
}

func (t *Texture) SerializeTag(ctx *Context) (*tag.Compound, error) {
	c := tag.NewCompound()
	c.Set("w", tag.FromInt(t.Width))
	c.Set("h", tag.FromInt(t.Height))
	c.Set("px", tag.FromByteArray(t.Pixels))
	return c, nil
}

func (t *Texture) DeserializeTag(c *tag.Compound, ctx *Context) error {
	w, err := c.GetInt("w")
	if err != nil {
		return err
	}
	h, err := c.GetInt("h")
	if err != nil {
		return err
	}
	px, err := c.GetByteArray("px")
	if err != nil {
		return err
	}
	t.Width, t.Height, t.Pixels = w, h, px
	return nil
}

func TestCustomSerializable_OwnsItsShape(t *testing.T) {
	in := &Texture{handle: 0xdead, Width: 2, Height: 2, Pixels: []byte{1, 2, 3, 4}}
	node, err := ToTag(in)
	if err != nil {
		t.Fatalf("ToTag: %v", err)
	}
	comp := node.(*tag.Compound)
	// The engine must not reflect over the fields.
	if comp.Has("Width") || comp.Has("Pixels") {
		t.Errorf("reflected keys present: %v", comp.Keys())
	}
	if v, err := comp.GetInt("w"); err != nil || v != 2 {
		t.Errorf("w = %d, %v", v, err)
	}

	var out Texture
	if err := FromTag(node, &out); err != nil {
		t.Fatalf("FromTag: %v", err)
	}
	if out.Width != 2 || out.Height != 2 || !bytes.Equal(out.Pixels, in.Pixels) {
		t.Errorf("round trip: %+v", out)
	}
	if out.handle != 0 {
		t.Errorf("handle should stay at its default, got %#x", out.handle)
	}
}

func TestCustomSerializable_AsField(t *testing.T) {
	type Material struct {
		Name    string
		Diffuse Texture
	}
	in := Material{Name: "wood", Diffuse: Texture{Width: 4, Height: 4}}
	node, err := ToTag(in)
	if err != nil {
		t.Fatalf("ToTag: %v", err)
	}
	var out Material
	if err := FromTag(node, &out); err != nil {
		t.Fatalf("FromTag: %v", err)
	}
	if out.Diffuse.Width != 4 {
		t.Errorf("nested custom-serializable lost: %+v", out)
	}
}

// nestedDoc exercises Context.ToTag/FromTag from inside a custom
// implementation.
type nestedDoc struct {
	Inner Transform
}

func (d *nestedDoc) SerializeTag(ctx *Context) (*tag.Compound, error) {
	node, err := ctx.ToTag(d.Inner)
	if err != nil {
		return nil, err
	}
	c := tag.NewCompound()
	c.Set("inner", node)
	return c, nil
}

func (d *nestedDoc) DeserializeTag(c *tag.Compound, ctx *Context) error {
	inner, err := c.GetCompound("inner")
	if err != nil {
		return err
	}
	return ctx.FromTag(inner, &d.Inner)
}

func TestCustomSerializable_NestedContext(t *testing.T) {
	in := &nestedDoc{Inner: Transform{Scale: 2.5}}
	node, err := ToTag(in)
	if err != nil {
		t.Fatalf("ToTag: %v", err)
	}
	var out nestedDoc
	if err := FromTag(node, &out); err != nil {
		t.Fatalf("FromTag: %v", err)
	}
	if out.Inner.Scale != 2.5 {
		t.Errorf("Scale = %v", out.Inner.Scale)
	}
}
