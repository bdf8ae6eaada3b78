package serializer

import "github.com/JaggerJo/Prowl/tag"

// TagSerializable lets a type own its exact tag shape instead of being
// reflected over. The engine delegates entirely to it: no field of a
// TagSerializable type is inspected.
//
// Typical users are types whose wire shape must diverge from their
// in-memory shape, e.g. a GPU-backed texture serializing raw pixel
// bytes plus format metadata rather than its live handle. Resource
// re-acquisition belongs after deserialization, never inside it.
//
// DeserializeTag mutates the receiver in place; the engine owns
// instance construction for this path, so implementations are always
// declared on pointer receivers.
type TagSerializable interface {
	SerializeTag(ctx *Context) (*tag.Compound, error)
	DeserializeTag(c *tag.Compound, ctx *Context) error
}
