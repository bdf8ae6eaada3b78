// Package serializer converts native object graphs to tag trees and
// back.
//
// The engine reflects over struct fields using a per-type descriptor
// built once and cached. Field metadata lives in `prowl` struct tags:
//
//	type Material struct {
//	    Shader   string   `prowl:"name=ShaderPath"`
//	    Count    int32    `prowl:"formerly=NumItems"`
//	    Scratch  []byte   `prowl:"-"`
//	    Comment  string   `prowl:"omitzero"`
//	}
//
// Renames keep saved data readable after refactors; former names let a
// renamed field pick up its value from documents written under the old
// key, so schema migration needs no upgrade scripts.
//
// Polymorphism: fields with interface types serialize the value's
// registered identity under the reserved "$type" key (see Register).
// Shared instances and cycles serialize as "$id"/"$ref" pairs when
// reference resolution is on, and are rejected otherwise.
//
// Types that cannot be reflected over, such as a GPU-backed texture,
// implement TagSerializable and own their exact tag shape.
//
// One ToTag or FromTag call is one complete, synchronous traversal.
// Concurrent calls on independent graphs are safe; a single Context is
// not.
package serializer
